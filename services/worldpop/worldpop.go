// Package worldpop composes the scraping pipeline for the world
// population table: fetch, locate, extract, assemble, clean, export.
package worldpop

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"webtable/lib/configutil"
	"webtable/lib/scrapers/worldometer"
	"webtable/lib/tabular"

	"dario.cat/mergo"
)

type Config struct {
	Url     string        `json:"url"`
	TableId string        `json:"table_id"`
	Output  string        `json:"output"`
	Format  string        `json:"format"`
	Rules   tabular.Rules `json:"rules"`
}

func DefaultRules() tabular.Rules {
	return tabular.Rules{
		Renames: map[string]string{
			"#":             "Rank",
			"Yearly change": "Yearly change %",
			"World Share":   "World Share %",
		},
		Fill: []tabular.FillRule{
			// worldometers marks missing urbanization data with "N.A.";
			// substituting "0%" keeps the percent-stripping uniform
			{Column: "Urban Pop %", Match: "N.A.", Replace: "0%"},
		},
		PercentColumns: []string{
			"Yearly change %",
			"Urban Pop %",
			"World Share %",
		},
		CommaColumns: []string{
			"Population (2024)",
			"Net Change",
			"Density (P/Km²)",
			"Land Area (Km²)",
			"Migrants (net)",
		},
		IntColumns:   []string{"Rank", "Med. Age"},
		FloatColumns: []string{"Fert. Rate"},
	}
}

func DefaultConfig() Config {
	return Config{
		Url:     worldometer.DefaultUrl,
		TableId: worldometer.DefaultTableId,
		Output:  "population.csv",
		Format:  "csv",
		Rules:   DefaultRules(),
	}
}

// LoadConfig reads a json5 config and merges it over the defaults, the
// file winning on conflicts. A missing file just yields the defaults.
func LoadConfig(name string) (Config, error) {
	cfg, err := configutil.ReadConfig[Config](name)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return Config{}, err
	}
	err = mergo.Merge(&cfg, DefaultConfig())
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes everything up to (but not including) the export and
// returns the cleaned table. Any failure aborts the run before a single
// output byte is written.
func Run(ctx context.Context, cfg Config) (*tabular.Table, error) {
	headers, rows, err := worldometer.Scrape(ctx, cfg.Url, cfg.TableId)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "scraped table", "headers", len(headers), "rows", len(rows))

	assembled := tabular.Assemble(headers, rows)
	if assembled.PaddedRows > 0 || assembled.TruncatedRows > 0 {
		slog.WarnContext(
			ctx, "repaired rows with mismatched cell counts",
			"padded", assembled.PaddedRows,
			"truncated", assembled.TruncatedRows,
		)
	}

	err = assembled.Table.Clean(cfg.Rules)
	if err != nil {
		return nil, fmt.Errorf("clean table: %w", err)
	}
	return assembled.Table, nil
}

// Export writes the cleaned table to path in the given format.
func Export(t *tabular.Table, path, format string) error {
	switch format {
	case "", "csv":
		return tabular.ExportCSV(t, path)
	case "xlsx":
		return tabular.ExportXLSX(t, path)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}
