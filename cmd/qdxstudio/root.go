package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	verbose bool
	envFile string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "qdxstudio",
		Short:         "qdxstudio builds and previews qdx-renderer in-app popups",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringVar(&flags.envFile, "env-file", ".env", "Load environment variables from this file when it exists")

	cmd.AddCommand(newGenerateCmd(flags))
	cmd.AddCommand(newHTMLCmd(flags))
	cmd.AddCommand(newCatalogCmd(flags))
	cmd.AddCommand(newThemesCmd())
	cmd.AddCommand(newEditCmd(flags))
	cmd.AddCommand(newServeCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
