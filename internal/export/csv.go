// Package export writes clean record sets to delimited text files.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/giinscan/giinscan/internal/model"
)

// utf8BOM marks the file as UTF-8 so spreadsheet applications stop guessing
// a legacy Japanese encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Header is the fixed column order of every exported table.
var Header = []string{
	"name", "jurisdiction", "date", "canonical_date", "affiliation",
	"quality_flags", "source", "source_url", "scraped_at",
}

// timeLayout formats scraped_at timestamps in exported rows.
const timeLayout = "2006-01-02 15:04:05"

// Exporter writes CSV files into a single output directory.
type Exporter struct {
	dir     string
	withBOM bool
}

// New creates an Exporter. encoding is "utf-8" or "utf-8-sig"; the latter
// prefixes a byte-order mark.
func New(dir, encoding string) (*Exporter, error) {
	switch encoding {
	case "", "utf-8", "utf-8-sig":
	default:
		return nil, fmt.Errorf("unsupported output encoding %q", encoding)
	}
	return &Exporter{
		dir:     dir,
		withBOM: encoding == "utf-8-sig",
	}, nil
}

// Export writes the records to filename inside the output directory and
// returns the full path. The write goes to a temp file first and is renamed
// into place, so a failed run never leaves a truncated export. Re-running
// with the same input produces byte-identical output.
func (e *Exporter) Export(records []model.CleanRecord, filename string) (string, error) {
	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir %s: %w", e.dir, err)
	}

	dest := filepath.Join(e.dir, filename)
	tmp, err := os.CreateTemp(e.dir, filename+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("create temp file for %s: %w", dest, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := e.write(tmp, records); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write %s: %w", dest, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", dest, err)
	}

	if err := os.Rename(tmpName, dest); err != nil {
		return "", fmt.Errorf("rename into %s: %w", dest, err)
	}

	return dest, nil
}

// ExportAll writes one file per category, stopping at the first failure.
func (e *Exporter) ExportAll(datasets map[string][]model.CleanRecord) (map[string]string, error) {
	paths := make(map[string]string, len(datasets))
	for name, records := range datasets {
		path, err := e.Export(records, name+".csv")
		if err != nil {
			return paths, err
		}
		paths[name] = path
	}
	return paths, nil
}

func (e *Exporter) write(f *os.File, records []model.CleanRecord) error {
	if e.withBOM {
		if _, err := f.Write(utf8BOM); err != nil {
			return err
		}
	}

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.Name,
			r.Jurisdiction,
			r.Date,
			r.CanonicalDate,
			r.Affiliation,
			strings.Join(r.QualityFlags, "; "),
			r.Source,
			r.SourceURL,
			formatTime(r.ScrapedAt),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}
