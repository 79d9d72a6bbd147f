package extract

import (
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/giinscan/giinscan/internal/model"
)

// ResultsAdapter reads election-results pages: one table per contest, one
// candidate per row. Column positions are located by header text; when the
// table has no recognizable name column the first column is assumed, which
// is what aggregator sites ship.
type ResultsAdapter struct{}

// NewResultsAdapter creates a results adapter.
func NewResultsAdapter() *ResultsAdapter {
	return &ResultsAdapter{}
}

// Name returns the adapter name.
func (a *ResultsAdapter) Name() string { return "results" }

// CanHandle serves the "results" source template.
func (a *ResultsAdapter) CanHandle(source string) bool { return source == "results" }

// Extract pulls one record per candidate row.
func (a *ResultsAdapter) Extract(doc *goquery.Document, pageURL string) []model.RawRecord {
	now := time.Now()
	pageDate := dateInText(doc.Find("h1, h2, .date, title").Text())

	var records []model.RawRecord
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		cols := mapColumns(table)
		nameCol := cols.name
		if nameCol == -1 {
			nameCol = 0
		}

		table.Find("tr").Each(func(i int, row *goquery.Selection) {
			if i == 0 {
				return // header row
			}
			cells := row.Find("td")
			if cells.Length() < 2 {
				return
			}

			name := cellAt(cells, nameCol)
			if name == "" {
				return
			}

			date := cellAt(cells, cols.date)
			if date == "" {
				date = pageDate
			}

			records = append(records, model.RawRecord{
				Name:         name,
				Jurisdiction: cellAt(cells, cols.jurisdiction),
				Date:         date,
				Affiliation:  cellAt(cells, cols.party),
				Source:       a.Name(),
				SourceURL:    pageURL,
				ScrapedAt:    now,
			})
		})
	})

	return records
}
