package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/giinscan/giinscan/internal/model"
	"github.com/giinscan/giinscan/internal/pipeline"
)

var (
	limit       int
	noCache     bool
	outputDir   string
	runTimeout  time.Duration
	userAgent   string
	delay       time.Duration
	insecureTLS bool
	httpProxy   string
	httpsProxy  string
)

// scrapeCmd represents the scrape command
var scrapeCmd = &cobra.Command{
	Use:   "scrape <category>",
	Short: "Scrape one source category and export it as CSV",
	Long: `Scrape fetches every configured page of a source category, extracts
raw records, cleans them and writes one CSV table.

Categories and their pages come from the sources section of the config
file. Fetch failures on individual pages are reported and skipped; the
command only fails on configuration or export errors.

Example:
  giinscan scrape elections
  giinscan scrape officials --limit 5 --no-cache
  giinscan scrape results --output ./out --timeout 20m`,
	Args: cobra.ExactArgs(1),
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
	addScrapeFlags(scrapeCmd)
}

// addScrapeFlags registers the flags shared by scrape and collect.
func addScrapeFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "max pages to fetch per category (0 = all)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the response cache (force fresh fetches)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory (default from config)")
	cmd.Flags().DurationVar(&runTimeout, "timeout", 30*time.Minute, "overall run timeout")
	cmd.Flags().StringVar(&userAgent, "ua", "", "HTTP User-Agent override")
	cmd.Flags().DurationVar(&delay, "delay", 0, "per-host delay override")
	cmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification")
	cmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	cmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
}

// scrapeConfig applies the shared flag overrides on top of loadConfig.
func scrapeConfig() (*model.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	if noCache {
		cfg.Cache.Enabled = false
	}
	if outputDir != "" {
		cfg.Output.Dir = outputDir
	}
	if userAgent != "" {
		cfg.HTTP.UserAgent = userAgent
	}
	if delay > 0 {
		cfg.HTTP.DefaultDelay = delay
	}
	if insecureTLS {
		cfg.HTTP.InsecureTLS = true
	}
	if httpProxy != "" {
		cfg.HTTP.HTTPProxy = httpProxy
	}
	if httpsProxy != "" {
		cfg.HTTP.HTTPSProxy = httpsProxy
	}

	return cfg, nil
}

func runScrape(cmd *cobra.Command, args []string) error {
	category := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	cfg, err := scrapeConfig()
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	summary, err := p.Run(ctx, category, limit)
	if err != nil {
		return err
	}

	printSummaries([]model.CategorySummary{summary})
	return nil
}

// printSummaries renders the run result tables on stdout.
func printSummaries(summaries []model.CategorySummary) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Category", "Fetched", "Errors", "Extracted", "Clean", "Rejected", "Quality", "Output"})
	for _, s := range summaries {
		t.AppendRow(table.Row{
			s.Category, s.Fetched, s.FetchErrors, s.Extracted, s.Clean, s.Rejected,
			fmt.Sprintf("%.1f%%", s.QualityScore*100), s.OutputPath,
		})
	}
	t.Render()

	for _, s := range summaries {
		if len(s.RejectedByReason) > 0 {
			fmt.Printf("\nRejections for %s:\n", s.Category)
			rt := table.NewWriter()
			rt.SetOutputMirror(os.Stdout)
			rt.AppendHeader(table.Row{"Reason", "Count"})
			for _, reason := range sortedReasons(s.RejectedByReason) {
				rt.AppendRow(table.Row{reason, s.RejectedByReason[reason]})
			}
			rt.Render()
		}

		for _, sig := range s.Signals {
			fmt.Printf("[%s] %s: %s\n", sig.Severity, sig.Type, sig.Description)
		}
	}
}

// sortedReasons orders reasons by descending count, then name, so the
// report is stable between runs.
func sortedReasons(byReason map[string]int) []string {
	reasons := make([]string, 0, len(byReason))
	for r := range byReason {
		reasons = append(reasons, r)
	}
	sort.Slice(reasons, func(i, j int) bool {
		if byReason[reasons[i]] != byReason[reasons[j]] {
			return byReason[reasons[i]] > byReason[reasons[j]]
		}
		return reasons[i] < reasons[j]
	})
	return reasons
}
