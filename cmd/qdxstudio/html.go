package main

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/qdxstudio/internal/payload"
	"github.com/alexisbeaulieu97/qdxstudio/internal/preview"
)

type htmlOptions struct {
	SettingsPath string
	MessageID    string
	OutPath      string
	Sketch       bool
	Width        int
}

func newHTMLCmd(root *rootFlags) *cobra.Command {
	opts := htmlOptions{}

	cmd := &cobra.Command{
		Use:   "html",
		Short: "Write a standalone HTML page that renders the popup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(opts.SettingsPath) == "" {
				return newCommandError("build popup page", "settings file", errors.New("a settings file is required"), "Pass one with -f settings.yaml")
			}
			app, err := newAppContext(root, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return runHTML(cmd, app, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.SettingsPath, "file", "f", "", "Path to the popup settings YAML file")
	cmd.Flags().StringVar(&opts.MessageID, "id", "", "Message id passed to showMsg (generated when empty)")
	cmd.Flags().StringVarP(&opts.OutPath, "out", "o", "", "Write the page to this file instead of stdout")
	cmd.Flags().BoolVar(&opts.Sketch, "sketch", false, "Draw a text mock-up of the popup instead of writing HTML")
	cmd.Flags().IntVar(&opts.Width, "width", 60, "Width of the --sketch mock-up in columns")
	cmd.MarkFlagRequired("file") //nolint:errcheck

	return cmd
}

func runHTML(cmd *cobra.Command, app *appContext, opts htmlOptions) error {
	session, err := loadSession(opts.SettingsPath, app.Log)
	if err != nil {
		return err
	}

	id := opts.MessageID
	if id == "" {
		id = preview.NewMessageID()
	}

	if opts.Sketch {
		return sketchHTML(cmd, app, opts, id, session.Payload())
	}

	page := preview.NewPage(app.Env.SDKURLs)
	html, err := page.Popup(id, session.Payload())
	if err != nil {
		return newCommandError("build popup page", opts.SettingsPath, err, "Report this together with the settings file")
	}
	return writeOutput(cmd.OutOrStdout(), opts.OutPath, []byte(html))
}

// sketchHTML draws the popup through the presenter. When the sketch target
// cannot be opened the presenter falls back to printing the payload JSON.
func sketchHTML(cmd *cobra.Command, app *appContext, opts htmlOptions, id string, pl payload.Payload) error {
	presenterOpts := []preview.Option{preview.WithRawOutput(cmd.OutOrStdout())}

	var target io.Writer = cmd.OutOrStdout()
	if opts.OutPath != "" && opts.OutPath != "-" {
		f, err := os.Create(opts.OutPath)
		if err != nil {
			app.Log.Warn("cannot open sketch output", "path", opts.OutPath, "error", err.Error())
			target = nil
		} else {
			defer f.Close()
			target = f
		}
	}
	if target != nil {
		presenterOpts = append(presenterOpts, preview.WithRenderer(preview.NewTerminalRenderer(target, opts.Width)))
	}

	presenter := preview.NewPresenter(nil, preview.NewPage(app.Env.SDKURLs), app.Log, presenterOpts...)
	if err := presenter.Render(id, pl); err != nil {
		return newCommandError("sketch popup", opts.SettingsPath, err, "Check that the output path is writable")
	}
	return nil
}
