package extract

import (
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/giinscan/giinscan/internal/model"
)

// GenericAdapter is the fallback for sources with no dedicated template.
// It only trusts tables that declare a name column, so arbitrary layout
// tables do not flood the cleaner.
type GenericAdapter struct{}

// NewGenericAdapter creates the fallback adapter.
func NewGenericAdapter() *GenericAdapter {
	return &GenericAdapter{}
}

// Name returns the adapter name.
func (a *GenericAdapter) Name() string { return "generic" }

// CanHandle always returns true; the registry uses this adapter last.
func (a *GenericAdapter) CanHandle(string) bool { return true }

// Extract reads every table with a recognizable name column.
func (a *GenericAdapter) Extract(doc *goquery.Document, pageURL string) []model.RawRecord {
	now := time.Now()

	var records []model.RawRecord
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		cols := mapColumns(table)
		if cols.name == -1 {
			return
		}

		table.Find("tr").Each(func(i int, row *goquery.Selection) {
			if i == 0 {
				return
			}
			cells := row.Find("td")
			name := cellAt(cells, cols.name)
			if name == "" {
				return
			}

			date := cellAt(cells, cols.date)
			if date == "" {
				date = dateInText(cellText(row))
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
