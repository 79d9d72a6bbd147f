// Package extract turns fetched pages into raw candidate records. Each
// source template has its own adapter; a generic table adapter is the
// fallback for pages no template claims. Adapters never fail on malformed
// HTML: an unrecognized page simply yields no records.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/giinscan/giinscan/internal/model"
)

// Adapter extracts raw records from one family of page templates.
type Adapter interface {
	// Name returns the adapter name, used as the record source id.
	Name() string

	// CanHandle checks whether this adapter serves the given source
	// template id from the configuration.
	CanHandle(source string) bool

	// Extract parses the document into raw records. A page whose
	// structure does not match yields an empty slice, never an error.
	Extract(doc *goquery.Document, pageURL string) []model.RawRecord
}

// Registry manages the source adapters.
type Registry struct {
	adapters []Adapter
	generic  Adapter
}

// NewRegistry creates a registry with the built-in adapters registered.
func NewRegistry() *Registry {
	r := &Registry{}
	r.Register(NewElectionsAdapter())
	r.Register(NewResultsAdapter())
	r.Register(NewOfficialsAdapter())
	r.generic = NewGenericAdapter()
	return r
}

// Register adds an adapter. Registration order decides precedence.
func (r *Registry) Register(a Adapter) {
	r.adapters = append(r.adapters, a)
}

// FindAdapter returns the adapter for a source template id, falling back to
// the generic table adapter.
func (r *Registry) FindAdapter(source string) Adapter {
	for _, a := range r.adapters {
		if a.CanHandle(source) {
			return a
		}
	}
	return r.generic
}

// ParseDocument parses page text. goquery tolerates broken markup, so this
// only fails on pathological input.
func ParseDocument(pageText string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(pageText))
}
