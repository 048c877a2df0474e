// Package main provides the ocean-s2z HTTP server.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"

	httpHandler "go.ngs.io/ocean-s2z/internal/http"
	"go.ngs.io/ocean-s2z/internal/logging"
	"go.ngs.io/ocean-s2z/internal/reader"
	"go.ngs.io/ocean-s2z/internal/usecase"
)

const version = "0.1.0"

func main() {
	// Parse command-line flags.
	showHelp := flag.Bool("help", false, "Show usage information")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showHelp {
		printUsage()
		return
	}

	if *showVersion {
		fmt.Printf("ocean-s2z version %s\n", version)
		return
	}

	debug := getEnv("LOG_DEBUG", "") != ""
	log, err := logging.New(debug)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	err = run(log)
	if err != nil {
		log.Errorf("%v", err)
	}
	_ = log.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// run opens the configured model output and serves it until the listener
// fails.
func run(log *zap.SugaredLogger) error {
	// Load configuration from environment.
	port := getEnv("PORT", "8080")
	ecomPath := getEnv("ECOM_PATH", "")
	opts := reader.Options{
		GridFile:       getEnv("ECOM_GRID_PATH", ""),
		Backend:        getEnv("ECOM_BACKEND", reader.BackendCDF),
		Buffer:         getEnvInt("ECOM_BUFFER", 1),
		VerticalBuffer: getEnvInt("ECOM_VERTICAL_BUFFER", 1),
		Logger:         log,
	}

	log.Infow("Starting ocean-s2z server",
		"port", port, "path", ecomPath, "grid", opts.GridFile, "backend", opts.Backend,
		"buffer", opts.Buffer, "vertical_buffer", opts.VerticalBuffer)

	r, err := reader.Open(ecomPath, opts)
	if err != nil {
		return fmt.Errorf("failed to open model output: %w", err)
	}
	defer func() { _ = r.Close() }()

	cov := r.Coverage()
	log.Infow("Reader ready",
		"variables", len(r.Variables()), "layers", r.NumLayers(),
		"nx", r.Grid().Nx(), "ny", r.Grid().Ny(), "start", cov.Start, "end", cov.End)

	// Initialize use case.
	extractionUC := usecase.NewExtractionUseCase(r)

	// Setup router.
	router := httpHandler.SetupRouter(extractionUC)

	// Start server.
	addr := fmt.Sprintf(":%s", port)
	log.Infof("Server listening on %s", addr)
	log.Infof("Health check: http://localhost:%s/health", port)

	if err := router.Run(addr); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt is getEnv for integer settings.
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		fmt.Fprintf(os.Stderr, "ignoring invalid %s=%q\n", key, value)
		return defaultValue
	}
	return n
}

// printUsage prints usage information.
func printUsage() {
	fmt.Printf("ocean-s2z server v%s\n\n", version)
	fmt.Println("USAGE:")
	fmt.Println("  ocean-s2z [flags]")
	fmt.Println()
	fmt.Println("FLAGS:")
	fmt.Println("  -help          Show this help message")
	fmt.Println("  -version       Show version information")
	fmt.Println()
	fmt.Println("ENVIRONMENT VARIABLES:")
	fmt.Println("  ECOM_PATH               ECOM NetCDF output (required)")
	fmt.Println("  ECOM_GRID_PATH          Grid file with lon/lat when the output lacks them")
	fmt.Println("  ECOM_BACKEND            cdf (NetCDF C library) or native (pure Go) (default: cdf)")
	fmt.Println("  ECOM_BUFFER             Horizontal buffer in grid cells (default: 1)")
	fmt.Println("  ECOM_VERTICAL_BUFFER    Vertical buffer in sigma layers (default: 1)")
	fmt.Println("  PORT                    Server port (default: 8080)")
	fmt.Println("  CORS_ALLOWED_ORIGINS    Comma-separated list of allowed origins (default: all origins)")
	fmt.Println("  LOG_DEBUG               Any value enables debug logging")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  ECOM_PATH=./data/ecom.nc ocean-s2z")
	fmt.Println()
	fmt.Println("API ENDPOINTS:")
	fmt.Println("  GET /health          Health check")
	fmt.Println("  GET /v1/reader       Dataset description")
	fmt.Println("  GET /v1/variables    Windowed, depth-regridded extraction")
	fmt.Println("                       ?vars=a,b&time=RFC3339&x=..&y=..&z=..")
	fmt.Println()
}
