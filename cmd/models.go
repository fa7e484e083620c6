package cmd

import (
	"fmt"

	"github.com/theirongolddev/chatrecap/internal/cli"
	"github.com/theirongolddev/chatrecap/internal/model"
	"github.com/theirongolddev/chatrecap/internal/pipeline"

	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models <export.json> [year]",
	Short: "Model usage breakdown",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}

func runModels(_ *cobra.Command, args []string) error {
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
	fmt.Println(cli.RenderTitle(fmt.Sprintf("🧠 MODEL USAGE  %s", r.Scope.Label())))
	fmt.Println()

	if len(r.Models) == 0 {
		fmt.Println("  " + cli.Muted("No assistant messages in the selected scope."))
		return nil
	}

	fmt.Print(cli.RenderTable(modelTable(r)))
	return nil
}

func modelTable(r model.Report) cli.Table {
	rows := make([][]string, 0, len(r.Models)+2)
	for _, ms := range r.Models {
		rows = append(rows, []string{
			ms.Model,
			cli.FormatNumber(int64(ms.Messages)),
			cli.FormatPercent(ms.SharePercent),
		})
	}
	rows = append(rows,
		[]string{"---"},
		[]string{"Total", cli.FormatNumber(int64(r.Assistant.Messages)), cli.FormatPercent(100)},
	)

	return cli.Table{
		Headers: []string{"Model", "Messages", "Share"},
		Rows:    rows,
	}
}
