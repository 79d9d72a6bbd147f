package model

import "time"

// RawRecord is one line item as extracted from a source page, before any
// validation. Fields hold whatever appeared on the page; any of them may be
// empty except Name, which the cleaner rejects when missing.
type RawRecord struct {
	Name         string    `json:"name"`                   // Name as it appeared (may carry honorifics or noise)
	Jurisdiction string    `json:"jurisdiction,omitempty"` // Prefecture/municipality
	Date         string    `json:"date,omitempty"`         // Election or record date, loosely formatted
	Affiliation  string    `json:"affiliation,omitempty"`  // Party/faction/position label
	Source       string    `json:"source"`                 // Source template id (adapter name)
	SourceURL    string    `json:"source_url"`             // Page the record came from
	ScrapedAt    time.Time `json:"scraped_at"`             // When extraction happened
}

// CleanRecord is the validated, normalized projection of a RawRecord.
// Within one cleaning run DedupKey is unique across the output set.
type CleanRecord struct {
	Name          string    `json:"name"`
	Jurisdiction  string    `json:"jurisdiction,omitempty"`
	Date          string    `json:"date,omitempty"`           // Original date text after whitespace normalization
	CanonicalDate string    `json:"canonical_date,omitempty"` // YYYY-MM-DD when the date parsed, "" otherwise
	Affiliation   string    `json:"affiliation,omitempty"`
	QualityFlags  []string  `json:"quality_flags,omitempty"` // Soft issues that did not cause rejection
	DedupKey      string    `json:"dedup_key"`
	Source        string    `json:"source"`
	SourceURL     string    `json:"source_url"`
	ScrapedAt     time.Time `json:"scraped_at"`
}

// Rejection pairs a RawRecord with the reason it was dropped.
type Rejection struct {
	Record RawRecord `json:"record"`
	Reason string    `json:"reason"`
}

// Rejection reasons produced by the cleaner itself. Filter rules carry their
// own reasons (see FilterRule.Reason).
const (
	ReasonMissingName    = "missing_name"
	ReasonNameTooShort   = "name_too_short"
	ReasonNameTooLong    = "name_too_long"
	ReasonNoJapaneseText = "no_japanese_text"
	ReasonDuplicate      = "duplicate"
)

// Quality flags recorded on surviving records.
const (
	FlagDateUnparsed        = "date_unparsed"
	FlagJurisdictionMissing = "jurisdiction_missing"
	FlagAffiliationMissing  = "affiliation_missing"
)

// FilterRule rejects records whose field matches a configured noise pattern.
// Rules are loaded once at startup and are immutable for the run.
type FilterRule struct {
	Field   string `yaml:"field" json:"field"`     // name, affiliation or jurisdiction
	Pattern string `yaml:"pattern" json:"pattern"` // Substring, or regex when Kind is "regex"
	Kind    string `yaml:"kind,omitempty" json:"kind,omitempty"`
	Reason  string `yaml:"reason" json:"reason"` // Rejection reason reported on match
}

// Rule kinds.
const (
	RuleKindSubstring = "substring"
	RuleKindRegex     = "regex"
)
