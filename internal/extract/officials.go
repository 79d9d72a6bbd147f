package extract

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/giinscan/giinscan/internal/model"
)

// OfficialsAdapter reads incumbent rosters: assembly member tables on
// prefectural and municipal sites, and single-official profile pages.
type OfficialsAdapter struct{}

// NewOfficialsAdapter creates an officials adapter.
func NewOfficialsAdapter() *OfficialsAdapter {
	return &OfficialsAdapter{}
}

// Name returns the adapter name.
func (a *OfficialsAdapter) Name() string { return "officials" }

// CanHandle serves the "officials" source template.
func (a *OfficialsAdapter) CanHandle(source string) bool { return source == "officials" }

// Extract reads roster tables; when the page has none it is treated as a
// single official's profile page and the name is taken from the most
// specific of h1, og:title and title.
func (a *OfficialsAdapter) Extract(doc *goquery.Document, pageURL string) []model.RawRecord {
	now := time.Now()
	jurisdiction := pageJurisdiction(doc)

	var records []model.RawRecord
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		cols := mapColumns(table)
		if cols.name == -1 {
			return // not a roster table
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

			area := cellAt(cells, cols.jurisdiction)
			if area == "" {
				area = jurisdiction
			}

			records = append(records, model.RawRecord{
				Name:         name,
				Jurisdiction: area,
				Affiliation:  cellAt(cells, cols.party),
				Source:       a.Name(),
				SourceURL:    pageURL,
				ScrapedAt:    now,
			})
		})
	})

	if len(records) > 0 {
		return records
	}

	name := profileName(doc)
	if name == "" {
		return nil
	}
	return []model.RawRecord{{
		Name:         name,
		Jurisdiction: jurisdiction,
		Source:       a.Name(),
		SourceURL:    pageURL,
		ScrapedAt:    now,
	}}
}

// profileName extracts a name from a profile-shaped page.
func profileName(doc *goquery.Document) string {
	if name := cellText(doc.Find("h1").First()); name != "" && len([]rune(name)) < 50 {
		return name
	}
	if content, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		if name := strings.Join(strings.Fields(content), " "); name != "" {
			return splitTitle(name)
		}
	}
	if title := cellText(doc.Find("title").First()); title != "" {
		return splitTitle(title)
	}
	return ""
}

// splitTitle drops the site-name tail that page titles carry.
func splitTitle(title string) string {
	for _, sep := range []string{"|", "｜", " - ", "－"} {
		if idx := strings.Index(title, sep); idx > 0 {
			title = title[:idx]
		}
	}
	return strings.TrimSpace(title)
}
