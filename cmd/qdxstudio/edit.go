package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/qdxstudio/internal/config"
	"github.com/alexisbeaulieu97/qdxstudio/internal/editor"
	"github.com/alexisbeaulieu97/qdxstudio/internal/logger"
	"github.com/alexisbeaulieu97/qdxstudio/internal/payload"
	"github.com/alexisbeaulieu97/qdxstudio/internal/preview"
	"github.com/alexisbeaulieu97/qdxstudio/internal/server"
	"github.com/alexisbeaulieu97/qdxstudio/internal/tui"
)

var errNotTerminal = errors.New("stdin and stdout must be a terminal")

type editOptions struct {
	OutPath      string
	SettingsOut  string
	FromPath     string
	Serve        bool
	Addr         string
	Verbose      bool
	Interactive  bool
	AllowOrigins []string
}

var (
	editCmdRunner = runEdit
	isTerminal    = func() bool {
		return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
	}
)

func newEditCmd(root *rootFlags) *cobra.Command {
	opts := editOptions{}

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit a popup interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Verbose = root.verbose
			opts.Interactive = isTerminal()
			if !opts.Interactive {
				return newCommandError(
					"start editor",
					"no terminal attached",
					errNotTerminal,
					"Run edit from an interactive terminal, or build the payload with generate -f settings.yaml",
				)
			}

			app, err := newAppContext(root, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if opts.Addr == "" {
				opts.Addr = app.Env.PreviewAddr
			}
			return editCmdRunner(cmd, app, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.OutPath, "out", "o", "", "Write the saved payload to this file instead of stdout")
	cmd.Flags().StringVar(&opts.SettingsOut, "settings", "", "Also save the edited settings as YAML")
	cmd.Flags().StringVar(&opts.FromPath, "from", "", "Start from an existing settings file")
	cmd.Flags().BoolVar(&opts.Serve, "serve", false, "Mirror the preview to the browser surface while editing")
	cmd.Flags().StringVar(&opts.Addr, "addr", "", "Preview server address used with --serve")
	cmd.Flags().StringSliceVar(&opts.AllowOrigins, "allow-origin", nil, "Origins allowed to call the API with --serve")

	return cmd
}

func runEdit(cmd *cobra.Command, app *appContext, opts editOptions) error {
	// Log lines would tear through the editor screen.
	log := logger.Nop()
	if opts.Verbose {
		log = app.Log
	}

	session := editor.NewSession(log)
	if opts.FromPath != "" {
		loaded, err := loadSession(opts.FromPath, log)
		if err != nil {
			return err
		}
		session = loaded
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	var (
		program   *tea.Program
		presenter *preview.Presenter
		srv       *server.Server
	)
	if opts.Serve {
		srv, presenter = newPreviewServer(app.Env, log, opts.Addr, opts.AllowOrigins,
			preview.WithTodayHandler(func(checked bool) {
				program.Send(tui.TodayOptionMsg{Checked: checked})
			}),
		)
	}

	model := tui.NewModel(session, tui.Options{Presenter: presenter})
	program = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if srv != nil {
		srv.RunHub(ctx)
		go func() {
			if err := srv.Start(); err != nil {
				log.Error(err, "preview server stopped")
			}
		}()
		defer func() {
			stopCtx, stopCancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer stopCancel()
			_ = srv.Stop(stopCtx)
		}()
	}

	final, err := program.Run()
	if err != nil {
		return newCommandError("run editor", "interactive session", err, "Re-run with --verbose to see editor logs")
	}

	result, ok := final.(tui.Model)
	if !ok || !result.Saved() {
		fmt.Fprintln(cmd.ErrOrStderr(), "Editor closed without saving")
		return nil
	}

	return saveEdit(cmd, result.Session(), opts)
}

func saveEdit(cmd *cobra.Command, session *editor.Session, opts editOptions) error {
	if opts.SettingsOut != "" {
		doc := session.Document()
		data, err := config.MarshalDocument(&doc)
		if err != nil {
			return newCommandError("encode settings", opts.SettingsOut, err, "Report this together with the payload below")
		}
		if err := writeOutput(cmd.OutOrStdout(), opts.SettingsOut, data); err != nil {
			return err
		}
	}

	data, err := payload.Encode(session.Payload(), false)
	if err != nil {
		return newCommandError("encode payload", "edited popup", err, "Report this together with the saved settings")
	}
	return writeOutput(cmd.OutOrStdout(), opts.OutPath, append(data, '\n'))
}
