package main

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/constructai/estimator-cli/internal/model"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export <results.json>",
	Short: "Export an analysis result set to an .xlsx workbook",
	Long:  "Reads the JSON output of 'analyze --all' and writes a workbook with a per-plugin summary sheet and a cost estimate sheet.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return eris.Wrap(err, "read results file")
		}

		var results map[string]model.Result
		if err := json.Unmarshal(raw, &results); err != nil {
			return eris.Wrap(err, "parse results file")
		}

		file, err := buildWorkbook(results)
		if err != nil {
			return err
		}
		if err := file.Save(exportOutput); err != nil {
			return eris.Wrap(err, "save workbook")
		}

		zap.L().Info("workbook written",
			zap.String("path", exportOutput),
			zap.Int("plugins", len(results)),
		)
		return nil
	},
}

func buildWorkbook(results map[string]model.Result) (*xlsx.File, error) {
	file := xlsx.NewFile()

	summary, err := file.AddSheet("Summary")
	if err != nil {
		return nil, eris.Wrap(err, "add summary sheet")
	}
	costs, err := file.AddSheet("Cost Estimates")
	if err != nil {
		return nil, eris.Wrap(err, "add cost sheet")
	}

	header := summary.AddRow()
	for _, h := range []string{"Plugin", "Status", "Error"} {
		header.AddCell().Value = h
	}
	costHeader := costs.AddRow()
	for _, h := range []string{"Plugin", "Field", "Value"} {
		costHeader.AddCell().Value = h
	}

	ids := make([]string, 0, len(results))
	for id := range results {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		res := results[id]

		row := summary.AddRow()
		row.AddCell().Value = id
		if res.Failed() {
			row.AddCell().Value = "failed"
			row.AddCell().Value = res.ErrMsg
			continue
		}
		row.AddCell().Value = "ok"
		row.AddCell().Value = ""

		cb, ok := res.Data["cost_estimates"].(map[string]any)
		if !ok {
			continue
		}
		fields := make([]string, 0, len(cb))
		for field := range cb {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			costRow := costs.AddRow()
			costRow.AddCell().Value = id
			costRow.AddCell().Value = field
			switch v := cb[field].(type) {
			case float64:
				costRow.AddCell().SetFloat(v)
			case string:
				costRow.AddCell().Value = v
			case nil:
				costRow.AddCell().Value = ""
			default:
				costRow.AddCell().Value = ""
			}
		}
	}

	return file, nil
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "estimates.xlsx", "output workbook path")
	rootCmd.AddCommand(exportCmd)
}
