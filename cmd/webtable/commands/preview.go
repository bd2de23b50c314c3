package commands

import (
	"os"
	"webtable/services/worldpop"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	previewConfig *string
	previewLimit  *int
)

func init() {
	previewConfig = previewCmd.Flags().String("config", "config.json5", "The pipeline config file to read.")
	previewLimit = previewCmd.Flags().IntP("limit", "n", 20, "Maximum number of rows to print.")
	rootCmd.AddCommand(previewCmd)
}

var previewCmd = &cobra.Command{
	Use:   "preview [--limit <n>]",
	Short: "Scrapes and cleans the table, then prints it instead of writing a file.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := worldpop.LoadConfig(*previewConfig)
		if err != nil {
			fatal("failed to read config", err)
		}

		cleaned, err := worldpop.Run(cmd.Context(), cfg)
		if err != nil {
			fatal("pipeline failed", err)
		}

		out := table.NewWriter()
		out.SetStyle(table.StyleRounded)
		out.SetOutputMirror(os.Stdout)

		header := make(table.Row, len(cleaned.Headers))
		for i, h := range cleaned.Headers {
			header[i] = h
		}
		out.AppendHeader(header)

		for i, row := range cleaned.Rows {
			if i >= *previewLimit {
				break
			}
			out.AppendRow(table.Row(row))
		}
		out.Render()
	},
}
