// Package pipeline orchestrates one run: fetch each configured page,
// extract raw records, clean the whole batch, export one CSV per category.
// Everything is sequential; a page that fails to fetch is counted and
// skipped, never fatal.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/giinscan/giinscan/internal/cache"
	"github.com/giinscan/giinscan/internal/clean"
	"github.com/giinscan/giinscan/internal/export"
	"github.com/giinscan/giinscan/internal/extract"
	"github.com/giinscan/giinscan/internal/fetch"
	"github.com/giinscan/giinscan/internal/model"
	"github.com/giinscan/giinscan/internal/rules"
	"github.com/giinscan/giinscan/internal/score"
)

// Pipeline wires the fetcher, adapter registry, cleaner and exporter.
type Pipeline struct {
	fetcher  *fetch.Fetcher
	registry *extract.Registry
	cleaner  *clean.Cleaner
	exporter *export.Exporter
	cfg      *model.Config
}

// New builds a pipeline from configuration. Rule and exporter problems are
// configuration errors and fail here, before any fetching.
func New(cfg *model.Config) (*Pipeline, error) {
	ruleSet, err := rules.ForConfig(cfg.Clean.RulesFile)
	if err != nil {
		return nil, err
	}

	cleaner, err := clean.New(clean.Options{
		MinNameLength:   cfg.Clean.MinNameLength,
		MaxNameLength:   cfg.Clean.MaxNameLength,
		RequireJapanese: cfg.Clean.RequireJapanese,
	}, ruleSet)
	if err != nil {
		return nil, fmt.Errorf("compile filter rules: %w", err)
	}

	exporter, err := export.New(cfg.Output.Dir, cfg.Output.Encoding)
	if err != nil {
		return nil, err
	}

	var store cache.Cache
	if cfg.Cache.Enabled {
		store = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.TTL)
	}

	return &Pipeline{
		fetcher:  fetch.New(cfg.HTTP, store, cfg.Cache.TTL),
		registry: extract.NewRegistry(),
		cleaner:  cleaner,
		exporter: exporter,
		cfg:      cfg,
	}, nil
}

// Run processes one source category end to end and returns its summary.
// limit > 0 caps the number of pages fetched.
func (p *Pipeline) Run(ctx context.Context, category string, limit int) (model.CategorySummary, error) {
	cat := p.cfg.Category(category)
	if cat == nil {
		return model.CategorySummary{}, fmt.Errorf("unknown source category %q", category)
	}

	pages := cat.Pages
	if limit > 0 && limit < len(pages) {
		pages = pages[:limit]
	}

	var (
		raw         []model.RawRecord
		fetched     int
		fetchErrors int
	)

	for _, page := range pages {
		result, err := p.fetcher.Fetch(ctx, page.URL)
		if err != nil {
			fetchErrors++
			p.logf("fetch failed: %s: %v\n", page.URL, err)
			continue
		}
		fetched++

		doc, err := extract.ParseDocument(result.Text)
		if err != nil {
			p.logf("parse failed: %s: %v\n", page.URL, err)
			continue
		}

		adapter := p.registry.FindAdapter(page.Template)
		records := adapter.Extract(doc, result.FinalURL)
		p.logf("%s: %d records via %s (cache=%v)\n", page.URL, len(records), adapter.Name(), result.FromCache)
		raw = append(raw, records...)
	}

	res := p.cleaner.Clean(raw)
	summary := score.Summarize(category, fetched, fetchErrors, res)

	path, err := p.exporter.Export(res.Clean, category+".csv")
	if err != nil {
		return summary, fmt.Errorf("export %s: %w", category, err)
	}
	summary.OutputPath = path

	return summary, nil
}

// RunAll processes every configured category in order. Per-page fetch
// failures stay per-category; only configuration and export errors abort.
func (p *Pipeline) RunAll(ctx context.Context, limit int) (model.RunReport, error) {
	report := model.RunReport{StartedAt: time.Now()}

	for _, cat := range p.cfg.Sources.Categories {
		summary, err := p.Run(ctx, cat.Name, limit)
		if err != nil {
			return report, err
		}
		report.Categories = append(report.Categories, summary)
	}

	report.FinishedAt = time.Now()
	return report, nil
}

// ClearCache wipes the configured response cache directory.
func (p *Pipeline) ClearCache() error {
	store := cache.NewDiskCache(p.cfg.Cache.Dir, p.cfg.Cache.TTL)
	return store.Clear()
}

func (p *Pipeline) logf(format string, args ...interface{}) {
	if p.cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
