package extract

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/giinscan/giinscan/internal/model"
)

// ElectionsAdapter reads election-schedule pages: committee announcements
// listing upcoming contests with candidates. These pages mix tables and
// plain lists, so both are tried; the text is noisy and the cleaner is
// expected to throw a fair share of it away.
type ElectionsAdapter struct{}

// NewElectionsAdapter creates an elections adapter.
func NewElectionsAdapter() *ElectionsAdapter {
	return &ElectionsAdapter{}
}

// Name returns the adapter name.
func (a *ElectionsAdapter) Name() string { return "elections" }

// CanHandle serves the "elections" source template.
func (a *ElectionsAdapter) CanHandle(source string) bool { return source == "elections" }

// Extract pulls records from schedule tables first and falls back to list
// items when the page has no usable table.
func (a *ElectionsAdapter) Extract(doc *goquery.Document, pageURL string) []model.RawRecord {
	now := time.Now()
	jurisdiction := pageJurisdiction(doc)

	records := a.fromTables(doc, pageURL, jurisdiction, now)
	if len(records) == 0 {
		records = a.fromLists(doc, pageURL, jurisdiction, now)
	}
	return records
}

func (a *ElectionsAdapter) fromTables(doc *goquery.Document, pageURL, jurisdiction string, now time.Time) []model.RawRecord {
	var records []model.RawRecord

	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		cols := mapColumns(table)

		table.Find("tr").Each(func(i int, row *goquery.Selection) {
			if i == 0 {
				return
			}
			cells := row.Find("td")
			if cells.Length() < 2 {
				return
			}

			name := cellAt(cells, maxInt(cols.name, 0))
			if name == "" {
				return
			}

			date := cellAt(cells, cols.date)
			if date == "" {
				date = dateInText(cellText(row))
			}

			area := cellAt(cells, cols.jurisdiction)
			if area == "" {
				area = jurisdiction
			}

			records = append(records, model.RawRecord{
				Name:         name,
				Jurisdiction: area,
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

func (a *ElectionsAdapter) fromLists(doc *goquery.Document, pageURL, jurisdiction string, now time.Time) []model.RawRecord {
	var records []model.RawRecord

	doc.Find("ul li, ol li").Each(func(_ int, item *goquery.Selection) {
		text := cellText(item)
		if text == "" {
			return
		}
		date := dateInText(text)
		if date == "" && len([]rune(text)) <= 10 {
			return // short dateless items are navigation
		}

		name := text
		if date != "" {
			name = strings.Join(strings.Fields(strings.ReplaceAll(text, date, " ")), " ")
		}
		if name == "" {
			return
		}

		records = append(records, model.RawRecord{
			Name:         name,
			Jurisdiction: jurisdiction,
			Date:         date,
			Source:       a.Name(),
			SourceURL:    pageURL,
			ScrapedAt:    now,
		})
	})

	return records
}

// pageJurisdiction picks the administrative area from the page heading,
// when one is present.
func pageJurisdiction(doc *goquery.Document) string {
	heading := cellText(doc.Find("h1").First())
	if heading == "" {
		heading = cellText(doc.Find("title").First())
	}
	for _, marker := range []string{"都", "道", "府", "県", "市", "区", "町", "村"} {
		if idx := strings.Index(heading, marker); idx > 0 {
			return heading[:idx+len(marker)]
		}
	}
	return ""
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
