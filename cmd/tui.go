package cmd

import (
	"fmt"

	"github.com/theirongolddev/chatrecap/internal/logger"
	"github.com/theirongolddev/chatrecap/internal/tui"
	"github.com/theirongolddev/chatrecap/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui <export.json> [year]",
	Short: "Browse the report in an interactive viewer",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, args []string) error {
	path, year, err := parseReportArgs(args)
	if err != nil {
		return err
	}
	if err := checkExport(path); err != nil {
		return err
	}

	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	// The alt screen owns the terminal; stderr log lines would tear it.
	logger.Init(logger.Config{Level: "off"})

	dbPath := ""
	if cacheEnabled() {
		dbPath = cachePath()
	}

	app := tui.NewApp(path, year, dbPath)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
