package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"runlog/internal/api"
	"runlog/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := newLogger(cfg)

		st, err := store.Open(cfg.DB.Path)
		if err != nil {
			return err
		}
		defer st.Close()

		server := &http.Server{
			Addr:    cfg.Addr(),
			Handler: api.NewServer(cfg, st, logger).Handler(),
		}

		serverErrCh := make(chan error, 1)
		go func() {
			logger.Info().Str("addr", server.Addr).Msg("server listening")
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErrCh <- err
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info().Str("signal", sig.String()).Msg("shutting down")
		case err := <-serverErrCh:
			logger.Error().Err(err).Msg("server error")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("shutdown error")
			return err
		}
		logger.Info().Msg("server stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
