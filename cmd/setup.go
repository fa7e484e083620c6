package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/chatrecap/internal/config"
	"github.com/theirongolddev/chatrecap/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	Args:  cobra.NoArgs,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	next := cfg

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, th := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(th.Label, th.Name))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Report directory").
				Description("Where Markdown summaries are written.").
				Value(&next.General.OutputDir).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("directory cannot be empty")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&next.Appearance.Theme),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Cache parsed exports?").
				Description("Re-running on an unchanged export skips JSON parsing.").
				Value(&next.Cache.Enabled),
			huh.NewConfirm().
				Title("Desktop notification when a report is saved?").
				Value(&next.General.Notify),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled, nothing saved.")
			return nil
		}
		return fmt.Errorf("running setup form: %w", err)
	}

	next.General.OutputDir = strings.TrimSpace(next.General.OutputDir)
	if err := config.Save(next); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `chatrecap setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}
