package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yuzeguitarist/loveqr/internal/netutil"
	"github.com/yuzeguitarist/loveqr/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server (web form + /api/love-qr)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if listen, _ := cmd.Flags().GetString("listen"); listen != "" {
			cfg.Listen = listen
		}
		log, err := cfg.Log.Build()
		if err != nil {
			return err
		}
		defer log.Sync()

		if err := netutil.CheckListen(cfg.Listen); err != nil {
			return err
		}
		srv, err := web.NewServer(cfg, log)
		if err != nil {
			return err
		}
		httpSrv := &http.Server{
			Addr:              cfg.Listen,
			Handler:           srv.Router(),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			log.Info("listening",
				zap.String("address", cfg.Listen),
				zap.String("url", netutil.BrowseURL(cfg.Listen)),
				zap.String("encoder", srv.Encoder.Name()),
				zap.String("level", cfg.QR.Level),
			)
			errCh <- httpSrv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
		}

		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().String("listen", "", "listen address (default from config: 127.0.0.1:8787)")
}
