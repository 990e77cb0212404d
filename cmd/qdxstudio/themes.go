package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/qdxstudio/internal/catalog"
	"github.com/alexisbeaulieu97/qdxstudio/internal/theme"
)

type themesOptions struct {
	display    string
	jsonOutput bool
}

func newThemesCmd() *cobra.Command {
	opts := &themesOptions{}

	cmd := &cobra.Command{
		Use:   "themes",
		Short: "Print the theme table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runThemes(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.display, "display", "", "Only show themes of this display type")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Emit JSON")

	return cmd
}

func runThemes(cmd *cobra.Command, opts *themesOptions) error {
	var filter catalog.DisplayType
	if strings.TrimSpace(opts.display) != "" {
		dt, ok := catalog.ParseDisplayType(opts.display)
		if !ok {
			return newCommandError(
				"list themes",
				fmt.Sprintf("display %q", opts.display),
				errors.New("unknown display type"),
				"Use one of BAR, BOX, SLIDE or STAR",
			)
		}
		filter = dt
	}

	rows := []theme.Row{}
	for _, row := range theme.Table() {
		if filter == "" || row.Display == filter {
			rows = append(rows, row)
		}
	}

	if opts.jsonOutput {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(rows)
	}

	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "THEME\tDISPLAY\tSHOW\tCODE\tCLASS")
	for _, row := range rows {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\n", row.Theme, row.Display, row.Key, row.Code, row.CSSClass)
	}
	return writer.Flush()
}
