package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/siftdb/sift/internal/app"
	"github.com/siftdb/sift/internal/config"
	"github.com/siftdb/sift/internal/logger"
)

var (
	// Version info (set by ldflags)
	version = "dev"

	// Flags
	readOnly bool
	logLevel string
	logFile  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sift",
		Short: "Terminal SQL workbench for PostgreSQL",
		Long: `sift is a terminal workbench for running SQL against PostgreSQL.
Results, execution messages, charts and query plans are shown in a
tabbed results pane whose layout persists across sessions.`,
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}

	rootCmd.Flags().BoolVar(&readOnly, "read-only", false, "open the session read-only")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "log file path (default ~/.config/sift/sift.log)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if readOnly {
		cfg.Connection.ReadOnly = true
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}

	logger.InitLogger(logger.ParseLevel(cfg.LogLevel), cfg.LogFile)
	defer logger.Close()

	model, err := app.New(cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("error running program: %w", err)
	}

	if m, ok := finalModel.(app.Model); ok {
		m.Cleanup()
	} else if m, ok := finalModel.(*app.Model); ok {
		m.Cleanup()
	}
	return nil
}
