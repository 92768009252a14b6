package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/audioengine/api"
	"github.com/killallgit/audioengine/api/types"
	"github.com/killallgit/audioengine/pkg/config"
	"github.com/spf13/cobra"
)

var (
	serverHost string
	serverPort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the Audio Engine API server with the configured settings.

The server answers metadata and waveform requests for files below
storage.media_root, memoizes results in memory, stores decoded waveforms in
SQLite and periodically removes orphaned decode scratch files.

Example:
  audioengine serve
  audioengine serve --port 9090
  audioengine serve --host 127.0.0.1 --port 8080`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	// Server flags
	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host (overrides config)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}

	// Use config values if flags not provided
	host := serverHost
	if host == "" {
		host = cfg.Server.Host
	}
	port := serverPort
	if port == 0 {
		port = cfg.Server.Port
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := buildComponents(ctx, cfg, componentOptions{UseStore: true, SweepTemp: true})
	if err != nil {
		return err
	}
	defer c.Close()

	server := api.NewServer(fmt.Sprintf("%s:%d", host, port), api.Options{
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
		EnableCORS:     cfg.Security.EnableCORS,
		CORSOrigins:    cfg.Security.CORSOrigins,
		RateLimit: api.RateLimitOptions{
			Enabled: cfg.RateLimiting.Enabled,
			RPS:     cfg.RateLimiting.WaveformRPS,
			Burst:   cfg.RateLimiting.Burst,
		},
	})
	server.SetDependencies(&types.Dependencies{
		DB:              c.db,
		WaveformService: c.service,
		MediaRoot:       cfg.Storage.MediaRoot,
		DefaultWidth:    cfg.Waveform.DefaultWidth,
		MaxWidth:        cfg.Waveform.MaxWidth,
		Version:         Version,
	})
	if err := server.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	// Channel to receive server errors
	serverErr := make(chan error, 1)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
	}()

	log.Printf("[INFO] Audio Engine listening on %s (media root: %s)", server.Addr(), cfg.Storage.MediaRoot)

	// Wait for interrupt signal or server error
	var runErr error
	select {
	case <-ctx.Done():
		log.Println("[INFO] Shutting down server...")
	case runErr = <-serverErr:
		log.Printf("[ERROR] %v", runErr)
	}

	shutdownTimeout := cfg.Server.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Attempt graceful shutdown
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] Server forced to shutdown: %v", err)
		return err
	}

	log.Println("[INFO] Server gracefully stopped")
	return runErr
}
