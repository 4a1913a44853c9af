package main

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	analyzePlugin string
	analyzeAll    bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Analyze construction document text",
	Long:  "Runs one plugin (--plugin) or every enabled plugin (--all) against the document text read from the file argument or stdin, and prints the results as JSON.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if analyzePlugin == "" && !analyzeAll {
			return eris.New("either --plugin or --all is required")
		}
		if err := cfg.Validate("analyze"); err != nil {
			return err
		}

		text, err := readDocument(args)
		if err != nil {
			return err
		}

		env, err := initEstimator(analyzeAll)
		if err != nil {
			return err
		}

		runID := uuid.NewString()
		start := time.Now()

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		if analyzeAll {
			results := env.Manager.RunAllEnabled(cmd.Context(), text, nil)
			zap.L().Info("analysis complete",
				zap.String("run_id", runID),
				zap.Int("plugins", len(results)),
				zap.Duration("elapsed", time.Since(start)),
			)
			return enc.Encode(results)
		}

		if err := env.Manager.Enable(analyzePlugin); err != nil {
			return err
		}
		res, err := env.Manager.RunAnalysis(cmd.Context(), text, analyzePlugin, nil)
		if err != nil {
			return err
		}
		zap.L().Info("analysis complete",
			zap.String("run_id", runID),
			zap.String("plugin", analyzePlugin),
			zap.Duration("elapsed", time.Since(start)),
		)
		return enc.Encode(res)
	},
}

// readDocument reads the document text from the file argument, or stdin when
// no argument is given.
func readDocument(args []string) (string, error) {
	if len(args) == 1 {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return "", eris.Wrap(err, "read document")
		}
		return string(raw), nil
	}

	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", eris.Wrap(err, "read stdin")
	}
	return string(raw), nil
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzePlugin, "plugin", "", "plugin id to run")
	analyzeCmd.Flags().BoolVar(&analyzeAll, "all", false, "run every enabled plugin")
	rootCmd.AddCommand(analyzeCmd)
}
