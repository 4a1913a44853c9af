package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/constructai/estimator-cli/internal/model"
)

var pluginsCategory string

var pluginsCmd = &cobra.Command{
	Use:   "plugins",
	Short: "Inspect the available analysis plugins",
}

var pluginsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered plugins",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEstimator(false)
		if err != nil {
			return err
		}

		metas := env.Registry.List()
		if pluginsCategory != "" {
			cat := model.Category(pluginsCategory)
			if !cat.Valid() {
				return eris.New(fmt.Sprintf("unknown category %q", pluginsCategory))
			}
			filtered := metas[:0]
			for _, m := range metas {
				if m.Category == cat {
					filtered = append(filtered, m)
				}
			}
			metas = filtered
		}

		p := message.NewPrinter(language.AmericanEnglish)
		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tVERSION\tPRICE")
		for _, m := range metas {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
				m.ID, m.Name, m.Category, m.Version, p.Sprintf("$%.2f", m.Price))
		}
		return tw.Flush()
	},
}

var pluginsShowCmd = &cobra.Command{
	Use:   "show <plugin-id>",
	Short: "Show a plugin's metadata and prompts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEstimator(false)
		if err != nil {
			return err
		}

		f, ok := env.Registry.Get(args[0])
		if !ok {
			return eris.New(fmt.Sprintf("plugin %q not found", args[0]))
		}

		inst := f()
		out := map[string]any{
			"metadata": inst.Metadata(),
			"prompts":  inst.Prompts(),
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

var pluginsCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List plugin categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEstimator(false)
		if err != nil {
			return err
		}

		for _, c := range env.Registry.Categories() {
			fmt.Println(c)
		}
		return nil
	},
}

func init() {
	pluginsListCmd.Flags().StringVar(&pluginsCategory, "category", "", "filter by category")
	pluginsCmd.AddCommand(pluginsListCmd, pluginsShowCmd, pluginsCategoriesCmd)
	rootCmd.AddCommand(pluginsCmd)
}
