package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/qdxstudio/internal/catalog"
	"github.com/alexisbeaulieu97/qdxstudio/internal/config"
	"github.com/alexisbeaulieu97/qdxstudio/internal/logger"
	"github.com/alexisbeaulieu97/qdxstudio/internal/preview"
	"github.com/alexisbeaulieu97/qdxstudio/internal/server"
)

const shutdownTimeout = 5 * time.Second

type serveOptions struct {
	Addr         string
	SettingsPath string
	AllowOrigins []string
}

var serveCmdRunner = runServe

func newServeCmd(root *rootFlags) *cobra.Command {
	opts := serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the browser preview server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(root, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if opts.Addr == "" {
				opts.Addr = app.Env.PreviewAddr
			}
			return serveCmdRunner(cmd, app, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "", "Listen address (default QDX_PREVIEW_ADDR or 127.0.0.1:8089)")
	cmd.Flags().StringVarP(&opts.SettingsPath, "file", "f", "", "Settings file to show once a surface connects")
	cmd.Flags().StringSliceVar(&opts.AllowOrigins, "allow-origin", nil, "Origins allowed to call the API (default any)")

	return cmd
}

func runServe(cmd *cobra.Command, app *appContext, opts serveOptions) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, presenter := newPreviewServer(app.Env, app.Log, opts.Addr, opts.AllowOrigins)
	srv.RunHub(ctx)

	if opts.SettingsPath != "" {
		session, err := loadSession(opts.SettingsPath, app.Log)
		if err != nil {
			return err
		}
		if err := presenter.Preview(ctx, session.Payload()); err != nil {
			return newCommandError("queue preview", opts.SettingsPath, err, "Retry; the preview hub stopped early")
		}
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()
	fmt.Fprintf(cmd.OutOrStdout(), "Preview surface on http://%s/\n", opts.Addr)

	select {
	case err := <-errCh:
		if err != nil {
			return newCommandError("start preview server", opts.Addr, err, "Pick another address with --addr or QDX_PREVIEW_ADDR")
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Stop(shutdownCtx)
}

// newPreviewServer wires a server and a presenter around the same hub:
// previews go out through the hub and surface messages come back to the
// presenter.
func newPreviewServer(env config.Env, log *logger.Logger, addr string, origins []string, opts ...preview.Option) (*server.Server, *preview.Presenter) {
	page := preview.NewPage(env.SDKURLs)

	var source server.CatalogSource = server.BuiltinCatalog{}
	if env.Endpoints.Configured() {
		source = catalog.NewLoader(env.Endpoints, &http.Client{Timeout: env.HTTPTimeout}, log)
	}

	var presenter *preview.Presenter
	srv := server.New(server.Options{
		Addr:         addr,
		AllowOrigins: origins,
		Page:         page,
		Catalog:      source,
		Inbound: func(ctx context.Context, m preview.Message) error {
			return presenter.Handle(ctx, m)
		},
		Logger: log,
	})
	presenter = preview.NewPresenter(srv.Hub(), page, log, opts...)
	return srv, presenter
}
