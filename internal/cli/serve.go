package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/felipemebarak500-lgtm/mebawear/internal/httpapi"
	"github.com/felipemebarak500-lgtm/mebawear/internal/notify"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	var seedOnStart bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the storefront HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(seedOnStart)
		},
	}

	cmd.Flags().BoolVar(&seedOnStart, "seed", false, "seed catalog and first invite before serving")

	return cmd
}

func serve(seedOnStart bool) error {
	log := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()
	log.Info("database ready", "path", cfg.DatabasePath)

	if seedOnStart {
		if err := st.Seed(context.Background()); err != nil {
			return err
		}
		log.Info("seed applied")
	}

	var notifier notify.Notifier
	if cfg.SMTP.Enabled() {
		notifier = notify.NewMailNotifier(cfg.SMTP, log)
		log.Info("purchase mail enabled", "host", cfg.SMTP.Host, "to", cfg.SMTP.OwnerTo)
	} else {
		notifier = &notify.LogNotifier{Log: log}
	}

	api := httpapi.New(cfg, st, notifier, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", srv.Addr, "cors", cfg.CORSOrigins)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
