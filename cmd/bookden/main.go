package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/bookden/bookden/internal/api"
	"github.com/bookden/bookden/internal/config"
	"github.com/bookden/bookden/internal/domain"
	"github.com/bookden/bookden/internal/log"
	"github.com/bookden/bookden/internal/service"
	"github.com/bookden/bookden/internal/tui"
	"github.com/bookden/bookden/internal/tui/styles"
)

// Version is set at build time via -ldflags
var Version = "dev"

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

func main() {
	// Handle version flag
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Parse()

	if showVersion {
		fmt.Printf("bookden %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting bookden", "version", Version, "server", cfg.Server.URL)

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("bookden requires an interactive terminal")
	}

	client := api.NewClient(cfg.Server.URL, time.Duration(cfg.Server.TimeoutSeconds)*time.Second, logger)

	// Make sure the server is actually there before entering the TUI
	if err := probeServerWithSpinner(client, cfg.Server.URL); err != nil {
		logger.Error("server unreachable", "url", cfg.Server.URL, "error", err)
		return err
	}

	// Create services
	catalogSvc := service.NewCatalogService(client, logger)
	librarySvc := service.NewLibraryService(client, logger)

	// Create TUI model
	model := tui.NewModel(
		catalogSvc,
		librarySvc,
		time.Duration(cfg.UI.DebounceMS)*time.Millisecond,
		cfg.UI.OptimisticToggle,
		logger,
	)

	// Run the TUI
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// probeServerWithSpinner checks the server's health endpoint with a
// visual spinner before the TUI takes over the screen
func probeServerWithSpinner(checker domain.HealthChecker, serverURL string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	resultCh := make(chan bool, 1)
	go func() {
		resultCh <- checker.CheckHealth(ctx)
	}()

	frame := 0
	fmt.Printf("\r%s Connecting to %s...", styles.SpinnerFrames[frame], serverURL)

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case ok := <-resultCh:
			fmt.Print(clearSpinnerLine)
			if !ok {
				return fmt.Errorf("book server at %s is not responding; is it running?", serverURL)
			}
			fmt.Println("✓ Connected")
			return nil

		case <-ticker.C:
			frame++
			fmt.Printf("\r%s Connecting to %s...", styles.SpinnerFrames[frame%len(styles.SpinnerFrames)], serverURL)

		case <-ctx.Done():
			fmt.Print(clearSpinnerLine)
			return fmt.Errorf("timed out connecting to %s", serverURL)
		}
	}
}
