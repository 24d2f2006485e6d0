package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/invoice-exporter/internal/generator"
	"github.com/rezonia/invoice-exporter/internal/layout"
	"github.com/rezonia/invoice-exporter/internal/server"
)

var (
	serverAddr     string
	serverDebug    bool
	readTimeout    time.Duration
	writeTimeout   time.Duration
	serveScale     int
	captureTimeout time.Duration
	logoTimeout    time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP API server for generating invoice documents.

The API provides endpoints for:
  - POST /api/v1/export/xml  - Generate EHF XML from a snapshot
  - POST /api/v1/export/pdf  - Generate paginated PDF from a snapshot
  - POST /api/v1/validate    - Check compliance preconditions
  - GET  /health             - Health check

Examples:
  # Start server on default port
  invoice-exporter serve

  # Start on custom port
  invoice-exporter serve --address :9090

  # Start in debug mode
  invoice-exporter serve --debug`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverAddr, "address", ":8080", "Server listen address")
	serveCmd.Flags().BoolVar(&serverDebug, "debug", false, "Enable debug mode")
	serveCmd.Flags().DurationVar(&readTimeout, "read-timeout", 30*time.Second, "HTTP read timeout")
	serveCmd.Flags().DurationVar(&writeTimeout, "write-timeout", 2*time.Minute, "HTTP write timeout")
	serveCmd.Flags().IntVar(&serveScale, "scale", layout.DefaultScale, "Oversampling factor for rendered layouts")
	serveCmd.Flags().DurationVar(&captureTimeout, "capture-timeout", generator.DefaultCaptureTimeout, "Timeout for the render stage")
	serveCmd.Flags().DurationVar(&logoTimeout, "logo-timeout", layout.DefaultLogoTimeout, "Timeout for fetching company logos")
}

func runServe(cmd *cobra.Command, args []string) error {
	config := &server.Config{
		Address:         serverAddr,
		ReadTimeout:     readTimeout,
		WriteTimeout:    writeTimeout,
		CaptureTimeout:  captureTimeout,
		OversampleScale: serveScale,
		LogoTimeout:     logoTimeout,
		Debug:           serverDebug,
	}

	srv := server.NewServer(config)

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		fmt.Println("\nShutting down server...")
		os.Exit(0)
	}()

	fmt.Printf("Starting server on %s\n", serverAddr)
	return srv.Run()
}
