// Package worldometer scrapes the population-by-country table off a
// single worldometers page. The whole flow is one GET followed by
// in-memory goquery extraction; there is no session or pagination.
package worldometer

import (
	"bytes"
	"context"
	"fmt"
	"time"
	"webtable/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	DefaultUrl = "https://www.worldometers.info/world-population/population-by-country/"
	// element id of the population table on the page
	DefaultTableId = "example2"
)

const fetchTimeout = time.Second * 30

// StatusError is returned on a non-2xx fetch so the operator sees the
// status code and whatever body the server sent back.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// FetchDocument performs the single GET of the pipeline and parses the
// response body. The request is bounded by a 30 second timeout; a
// timeout or non-2xx status is fatal to the run, there are no retries.
func FetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	ctx, span := tracer.Start(ctx, "FetchDocument")
	defer span.End()
	span.SetAttributes(attribute.String("url", url))

	res, err := client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if !res.IsSuccess() {
		err := &StatusError{StatusCode: res.StatusCode(), Body: res.String()}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return doc, nil
}

// LocateTable finds the one table the pipeline cares about by element
// id. There is no fallback strategy; a missing id fails the run.
func LocateTable(doc *goquery.Document, id string) (*goquery.Selection, error) {
	sel := doc.Find(fmt.Sprintf("table#%s", id))
	if sel.Length() == 0 {
		return nil, fmt.Errorf("no table with id %q in document", id)
	}
	return sel.First(), nil
}

// ExtractHeaders reads the header cells of the table's header section
// in document order. No deduplication is applied.
func ExtractHeaders(table *goquery.Selection) ([]string, error) {
	var headers []string
	table.Find("thead th").Each(func(_ int, th *goquery.Selection) {
		headers = append(headers, htmlutil.CellText(th))
	})
	if len(headers) == 0 {
		return nil, fmt.Errorf("table has no header cells")
	}
	return headers, nil
}

// ExtractRows iterates the table's rows, skipping the first one since
// that is the header row when header and data share a parent, and
// collects the data cells of each remaining row. Rows without a single
// data cell (e.g. a repeated header) are dropped.
func ExtractRows(table *goquery.Selection) [][]string {
	var rows [][]string
	table.Find("tr").Each(func(i int, tr *goquery.Selection) {
		if i == 0 {
			return
		}
		var cells []string
		tr.Find("td").Each(func(_ int, td *goquery.Selection) {
			cells = append(cells, htmlutil.CellText(td))
		})
		if len(cells) == 0 {
			return
		}
		rows = append(rows, cells)
	})
	return rows
}

// Scrape runs fetch, locate and extract against one page and returns
// the raw header names and cell text.
func Scrape(ctx context.Context, url, tableId string) ([]string, [][]string, error) {
	ctx, span := tracer.Start(ctx, "Scrape")
	defer span.End()

	doc, err := FetchDocument(ctx, url)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch %s: %w", url, err)
	}

	table, err := LocateTable(doc, tableId)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, nil, err
	}

	headers, err := ExtractHeaders(table)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, nil, err
	}
	rows := ExtractRows(table)

	span.SetAttributes(
		attribute.Int("headers", len(headers)),
		attribute.Int("rows", len(rows)),
	)
	return headers, rows, nil
}
