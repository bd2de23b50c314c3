package commands

import (
	"log/slog"
	"time"
	"webtable/lib/restyutil"
	"webtable/lib/scrapers/worldometer"
	"webtable/services/worldpop"

	"github.com/spf13/cobra"
)

var (
	scrapeConfig    *string
	scrapeOut       *string
	scrapeFormat    *string
	scrapeDebugHttp *bool
)

func init() {
	scrapeConfig = scrapeCmd.Flags().String("config", "config.json5", "The pipeline config file to read.")
	scrapeOut = scrapeCmd.Flags().String("out", "", "The file to write results to, overrides the config.")
	scrapeFormat = scrapeCmd.Flags().String("format", "", "Output format, csv or xlsx, overrides the config.")
	scrapeDebugHttp = scrapeCmd.Flags().Bool("debug-http", false, "Dump HTTP exchanges to .dev/resty.")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--config <path>] [--out <path>] [--format csv|xlsx]",
	Short: "Scrapes the table, cleans it according to the config and writes it to a file.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := worldpop.LoadConfig(*scrapeConfig)
		if err != nil {
			fatal("failed to read config", err)
		}
		if *scrapeOut != "" {
			cfg.Output = *scrapeOut
		}
		if *scrapeFormat != "" {
			cfg.Format = *scrapeFormat
		}
		if *scrapeDebugHttp {
			worldometer.SetRestyInstrumentOutput(restyutil.NewFilesystemOutput(".dev/resty"))
		}

		t1 := time.Now()
		table, err := worldpop.Run(cmd.Context(), cfg)
		if err != nil {
			fatal("pipeline failed", err)
		}
		err = worldpop.Export(table, cfg.Output, cfg.Format)
		if err != nil {
			fatal("failed to export table", err)
		}

		slog.Info(
			"export finished",
			"output", cfg.Output,
			"rows", len(table.Rows),
			"seconds", time.Since(t1).Seconds(),
		)
	},
}
