package tabular

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAssemble(t *testing.T) {
	headers := []string{"a", "b", "c"}

	testCases := []struct {
		name      string
		rows      [][]string
		expected  [][]any
		padded    int
		truncated int
	}{
		{
			name:     "aligned",
			rows:     [][]string{{"1", "2", "3"}},
			expected: [][]any{{"1", "2", "3"}},
		},
		{
			name:     "short row is padded",
			rows:     [][]string{{"1", "2"}},
			expected: [][]any{{"1", "2", ""}},
			padded:   1,
		},
		{
			name:      "long row is truncated",
			rows:      [][]string{{"1", "2", "3", "4"}},
			expected:  [][]any{{"1", "2", "3"}},
			truncated: 1,
		},
		{
			name:      "mixed",
			rows:      [][]string{{"1"}, {"1", "2", "3", "4", "5"}, {"x", "y", "z"}},
			expected:  [][]any{{"1", "", ""}, {"1", "2", "3"}, {"x", "y", "z"}},
			padded:    1,
			truncated: 1,
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			res := Assemble(headers, test.rows)
			require.Equal(t, headers, res.Table.Headers)
			require.Equal(t, test.expected, res.Table.Rows)
			require.Equal(t, test.padded, res.PaddedRows)
			require.Equal(t, test.truncated, res.TruncatedRows)

			for _, row := range res.Table.Rows {
				require.Len(t, row, len(headers))
			}
		})
	}
}

func TestFormatCell(t *testing.T) {
	require.Equal(t, "hello", FormatCell("hello"))
	require.Equal(t, "1450935791", FormatCell(int64(1450935791)))
	require.Equal(t, "-630830", FormatCell(int64(-630830)))
	require.Equal(t, "0", FormatCell(float64(0)))
	require.Equal(t, "17.78", FormatCell(17.78))
}

func TestRecords(t *testing.T) {
	table := &Table{
		Headers: []string{"Rank", "Country", "Share"},
		Rows: [][]any{
			{int64(1), "India", 17.78},
			{int64(2), "China", 17.16},
		},
	}
	require.Equal(t, [][]string{
		{"Rank", "Country", "Share"},
		{"1", "India", "17.78"},
		{"2", "China", "17.16"},
	}, table.Records())
}

func TestColumnIndex(t *testing.T) {
	table := &Table{Headers: []string{"a", "b"}}
	require.Equal(t, 0, table.ColumnIndex("a"))
	require.Equal(t, 1, table.ColumnIndex("b"))
	require.Equal(t, -1, table.ColumnIndex("missing"))
}
