package cmd

import (
	"fmt"

	"github.com/theirongolddev/chatrecap/internal/cli"
	"github.com/theirongolddev/chatrecap/internal/model"
	"github.com/theirongolddev/chatrecap/internal/pipeline"

	"github.com/spf13/cobra"
)

var monthlyCmd = &cobra.Command{
	Use:   "monthly <export.json> [year]",
	Short: "Monthly message histogram",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runMonthly,
}

func init() {
	rootCmd.AddCommand(monthlyCmd)
}

func runMonthly(_ *cobra.Command, args []string) error {
	path, year, err := parseReportArgs(args)
	if err != nil {
		return err
	}
	result, err := loadData(path)
	if err != nil {
		return err
	}
	if noMessages(result) {
		return nil
	}

	r := pipeline.Aggregate(result.Messages, result.TotalConversations, model.Scope{Year: year}, nil)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("📈 MONTHLY ACTIVITY  %s", r.Scope.Label())))
	fmt.Println()

	if len(r.Monthly) == 0 {
		fmt.Println("  " + cli.Muted("No activity in the selected scope."))
		return nil
	}

	fmt.Print(monthlyView(r.Monthly))
	return nil
}

func monthlyView(months []model.MonthlyStats) string {
	labelW := 0
	peak := months[0]
	values := make([]float64, len(months))
	for i, m := range months {
		labelW = max(labelW, len(m.Key.String()))
		if m.Messages > peak.Messages {
			peak = m
		}
		values[i] = float64(m.Messages)
	}

	var out string
	for _, m := range months {
		label := fmt.Sprintf("%-*s", labelW, m.Key.String())
		out += cli.RenderHorizontalBar(label, float64(m.Messages), float64(peak.Messages), 40) +
			" " + cli.FormatNumber(int64(m.Messages)) + "\n"
	}

	out += "\n"
	out += fmt.Sprintf("  %s %s\n", cli.Muted("Trend:"), cli.RenderSparkline(values))
	out += fmt.Sprintf("  %s %s (%s messages)\n",
		cli.Muted("Peak: "), cli.Value(peak.Key.String()), cli.FormatNumber(int64(peak.Messages)))
	return out
}
