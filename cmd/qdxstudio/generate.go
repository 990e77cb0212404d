package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/qdxstudio/internal/config"
	"github.com/alexisbeaulieu97/qdxstudio/internal/editor"
	"github.com/alexisbeaulieu97/qdxstudio/internal/logger"
	"github.com/alexisbeaulieu97/qdxstudio/internal/payload"
	"github.com/alexisbeaulieu97/qdxstudio/pkg/diff"
)

var errPayloadDrift = errors.New("stored payload differs from the settings file")

type generateOptions struct {
	SettingsPath string
	OutPath      string
	Compact      bool
	Strict       bool
	Check        bool
	Today        bool
	TodaySet     bool
}

var generateCmdRunner = runGenerate

func newGenerateCmd(root *rootFlags) *cobra.Command {
	opts := generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Assemble a renderer payload from a settings file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.TodaySet = cmd.Flags().Changed("today")
			if err := validateGenerateOptions(opts); err != nil {
				return err
			}

			app, err := newAppContext(root, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return generateCmdRunner(cmd, app, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.SettingsPath, "file", "f", "", "Path to the popup settings YAML file")
	cmd.Flags().StringVarP(&opts.OutPath, "out", "o", "", "Write the payload to this file instead of stdout")
	cmd.Flags().BoolVar(&opts.Compact, "compact", false, "Emit single-line JSON")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Refuse to generate when required fields are missing")
	cmd.Flags().BoolVar(&opts.Check, "check", false, "Compare with the payload stored at --out instead of writing it")
	cmd.Flags().BoolVar(&opts.Today, "today", false, "Override the \"don't show again today\" option")
	cmd.MarkFlagRequired("file") //nolint:errcheck

	return cmd
}

func validateGenerateOptions(opts generateOptions) error {
	if strings.TrimSpace(opts.SettingsPath) == "" {
		return newCommandError("generate payload", "settings file", errors.New("a settings file is required"), "Pass one with -f settings.yaml")
	}
	if opts.Check && strings.TrimSpace(opts.OutPath) == "" {
		return newCommandError("check payload", "no stored payload", errors.New("--check needs --out"), "Name the stored payload with --out payload.json")
	}
	return nil
}

func runGenerate(cmd *cobra.Command, app *appContext, opts generateOptions) error {
	session, err := loadSession(opts.SettingsPath, app.Log)
	if err != nil {
		return err
	}
	if opts.TodaySet {
		session.SetToday(opts.Today)
	}

	if opts.Strict {
		if err := session.Validate(); err != nil {
			return newCommandError(
				"validate settings",
				opts.SettingsPath,
				err,
				"Fill in or switch off the listed fields, or drop --strict to generate the draft",
			)
		}
	}

	pl := session.Payload()
	if err := payload.CheckShow(pl); err != nil {
		return newCommandError("assemble payload", opts.SettingsPath, err, "Report this together with the settings file")
	}

	data, err := payload.Encode(pl, opts.Compact)
	if err != nil {
		return newCommandError("encode payload", opts.SettingsPath, err, "Report this together with the settings file")
	}
	data = append(data, '\n')

	if opts.Check {
		return checkPayload(cmd.OutOrStdout(), opts.OutPath, data)
	}

	app.Log.Debug("payload assembled", "display", pl.Display, "theme", pl.Theme, "template", pl.Template)
	return writeOutput(cmd.OutOrStdout(), opts.OutPath, data)
}

// loadSession parses a settings document and opens an editing session on it.
func loadSession(path string, log *logger.Logger) (*editor.Session, error) {
	doc, err := config.ParseDocument(path)
	if err != nil {
		return nil, newCommandError(
			"load settings",
			path,
			err,
			"Check the YAML syntax and the field values reported above",
		)
	}
	if !doc.IsKnownDisplay() {
		log.Warn("unknown display type, using BOX", "display", doc.Display, "file", path)
	}
	return editor.FromDocument(*doc, log), nil
}

func checkPayload(w io.Writer, path string, generated []byte) error {
	stored, err := os.ReadFile(path)
	if err != nil {
		return newCommandError("read stored payload", path, err, "Run generate without --check to create it")
	}

	if d := diff.Lines(stored, generated, path, "generated"); d != "" {
		fmt.Fprint(w, d)
		return newCommandError("check payload", path, errPayloadDrift, "Run generate without --check to rewrite it")
	}
	fmt.Fprintf(w, "%s is up to date\n", path)
	return nil
}

// writeOutput writes data to path, or to w when path is empty or "-".
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return newCommandError("write output", path, err, "Check that the directory exists and is writable")
	}
	return nil
}
