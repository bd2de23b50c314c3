package worldpop

import (
	"context"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"webtable/lib/telemetry"

	"github.com/stretchr/testify/require"
)

const fixturePage = `<!DOCTYPE html>
<html>
<body>
<table id="example2">
  <thead>
    <tr>
      <th>#</th>
      <th>Country (or dependency)</th>
      <th>Population (2024)</th>
      <th>Yearly change</th>
      <th>Net Change</th>
      <th>Density (P/Km²)</th>
      <th>Land Area (Km²)</th>
      <th>Migrants (net)</th>
      <th>Fert. Rate</th>
      <th>Med. Age</th>
      <th>Urban Pop %</th>
      <th>World Share</th>
    </tr>
  </thead>
  <tbody>
    <tr>
      <td>1</td>
      <td>India</td>
      <td>1,450,935,791</td>
      <td>0.89%</td>
      <td>12,866,195</td>
      <td>488</td>
      <td>2,973,190</td>
      <td>-630,830</td>
      <td>2.0</td>
      <td>28</td>
      <td>N.A.</td>
      <td>17.78%</td>
    </tr>
    <tr>
      <td>2</td>
      <td>China</td>
      <td>1,419,321,278</td>
      <td>-0.23%</td>
      <td>-3,263,655</td>
      <td>151</td>
      <td>9,388,211</td>
      <td>-318,992</td>
      <td>1.0</td>
      <td>40</td>
      <td>64%</td>
      <td>17.39%</td>
    </tr>
  </tbody>
</table>
</body>
</html>`

func fixtureServer(t *testing.T) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(fixturePage))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func fixtureConfig(url string) Config {
	cfg := DefaultConfig()
	cfg.Url = url
	return cfg
}

func TestRun(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:worldpop")
	defer cleanup()

	srv := fixtureServer(t)
	table, err := Run(context.Background(), fixtureConfig(srv.URL))
	require.NoError(t, err)

	require.Equal(t, []string{
		"Rank", "Country (or dependency)", "Population (2024)", "Yearly change %",
		"Net Change", "Density (P/Km²)", "Land Area (Km²)", "Migrants (net)",
		"Fert. Rate", "Med. Age", "Urban Pop %", "World Share %",
	}, table.Headers)
	require.Len(t, table.Rows, 2)

	india := table.Rows[0]
	require.Equal(t, int64(1), india[table.ColumnIndex("Rank")])
	require.Equal(t, int64(1450935791), india[table.ColumnIndex("Population (2024)")])
	require.Equal(t, float64(0), india[table.ColumnIndex("Urban Pop %")])

	china := table.Rows[1]
	require.Equal(t, 64.0, china[table.ColumnIndex("Urban Pop %")])
	require.Equal(t, int64(-318992), china[table.ColumnIndex("Migrants (net)")])
}

func TestRunThenExportCSV(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:worldpop")
	defer cleanup()

	srv := fixtureServer(t)
	table, err := Run(context.Background(), fixtureConfig(srv.URL))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "population.csv")
	err = Export(table, path, "csv")
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, table.Headers, records[0])
	require.Equal(t, "1450935791", records[1][2])
	require.Equal(t, "0", records[1][10])
}

func TestFetchFailureProducesNoOutput(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:worldpop")
	defer cleanup()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	dir := t.TempDir()
	cfg := fixtureConfig(srv.URL)
	cfg.Output = filepath.Join(dir, "population.csv")

	_, err := Run(context.Background(), cfg)
	require.Error(t, err)

	// the pipeline halted before the export, nothing may exist on disk
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestLookupFailureProducesNoOutput(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:worldpop")
	defer cleanup()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><p>no table here</p></body></html>`))
	}))
	defer srv.Close()

	dir := t.TempDir()
	cfg := fixtureConfig(srv.URL)
	cfg.Output = filepath.Join(dir, "population.csv")

	_, err := Run(context.Background(), cfg)
	require.ErrorContains(t, err, "no table with id")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.json5"))
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json5")
	err := os.WriteFile(path, []byte(`{
		// scrape a mirror instead
		url: "http://localhost:9999/population",
		format: "xlsx",
	}`), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "http://localhost:9999/population", cfg.Url)
	require.Equal(t, "xlsx", cfg.Format)
	// everything unset falls back to the defaults
	require.Equal(t, DefaultConfig().TableId, cfg.TableId)
	require.Equal(t, DefaultRules(), cfg.Rules)
}
