package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"atelier/internal/config"
	"atelier/internal/session"
	"atelier/internal/store"
	"atelier/internal/web"
)

func main() {
	var dev bool

	rootCmd := &cobra.Command{
		Use:   "atelier",
		Short: "Personal portfolio and blog server",
		Long: `Atelier serves a personal portfolio site with a blog, a contact
form, and a cookie-gated admin area for managing content.

Configuration comes from the environment (or a .env file):

  ADDR            listen address (default :8080)
  DB_PATH         SQLite database file (default atelier.db)
  ADMIN_EMAIL     admin login email
  ADMIN_PASSWORD  admin login password
  SESSION_SECRET  key for signing session cookies
  SECURE_COOKIES  set to "true" behind TLS`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(dev)
		},
	}

	rootCmd.Flags().BoolVar(&dev, "dev", false, "human-readable logs for local development")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run(dev bool) error {
	zapCfg := zap.NewProductionConfig()
	if dev {
		zapCfg = zap.NewDevelopmentConfig()
	}
	logger, err := zapCfg.Build()
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.DefaultPassword {
		logger.Warn("ADMIN_PASSWORD not set, using the default password")
	}
	if cfg.EphemeralSecret {
		logger.Warn("SESSION_SECRET not set, using a generated key")
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionTTL)
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if n := sessions.Sweep(); n > 0 {
				logger.Info("swept expired sessions", zap.Int("count", n))
			}
		}
	}()

	server := web.NewServer(cfg, st, sessions, logger, prometheus.NewRegistry())

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      server.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("server stopped")
	return nil
}
