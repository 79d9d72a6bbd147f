package model

import "time"

// RunReport aggregates the summaries of one invocation.
type RunReport struct {
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`
	Categories []CategorySummary `json:"categories"`
}

// CategorySummary describes what happened to one source category.
type CategorySummary struct {
	Category         string          `json:"category"`
	Fetched          int             `json:"fetched"`      // Pages fetched successfully (cache hits included)
	FetchErrors      int             `json:"fetch_errors"` // Pages skipped after the retry budget
	Extracted        int             `json:"extracted"`    // Raw records produced by the adapters
	Clean            int             `json:"clean"`
	Rejected         int             `json:"rejected"`
	RejectedByReason map[string]int  `json:"rejected_by_reason,omitempty"`
	QualityScore     float64         `json:"quality_score"` // clean / extracted; 1.0 for an empty batch
	Signals          []QualitySignal `json:"signals,omitempty"`
	OutputPath       string          `json:"output_path,omitempty"`
}

// QualitySignal is a diagnostic raised while summarizing a category.
type QualitySignal struct {
	Type        SignalType             `json:"type"`
	Severity    SignalSeverity         `json:"severity"`
	Description string                 `json:"description"`
	Data        map[string]interface{} `json:"data,omitempty"` // Inputs behind the signal, for transparency
}

// SignalType classifies a diagnostic signal.
type SignalType string

const (
	SignalLowQuality        SignalType = "low_quality"         // Most extracted rows were noise
	SignalHighDuplicateRate SignalType = "high_duplicate_rate" // Sources overlap heavily
	SignalUnparsedDates     SignalType = "unparsed_dates"      // Date formats the canonicalizer does not know
	SignalNoRecords         SignalType = "no_records"          // Pages fetched but nothing extracted
)

// SignalSeverity indicates the importance of the signal.
type SignalSeverity string

const (
	SeverityInfo     SignalSeverity = "info"
	SeverityWarning  SignalSeverity = "warning"
	SeverityCritical SignalSeverity = "critical"
)
