package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/giinscan/giinscan/internal/pipeline"
)

// collectCmd represents the collect command
var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Run every configured source category in order",
	Long: `Collect chains all configured categories into a single run: each
category is fetched, cleaned and exported to its own CSV, then a combined
summary is printed.

Per-page fetch failures are reported inside their category and do not stop
the run. A configuration or export error aborts with a non-zero exit.

Example:
  giinscan collect
  giinscan collect --limit 3 --no-cache`,
	Args: cobra.NoArgs,
	RunE: runCollect,
}

func init() {
	rootCmd.AddCommand(collectCmd)
	addScrapeFlags(collectCmd)
}

func runCollect(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	cfg, err := scrapeConfig()
	if err != nil {
		return err
	}
	if len(cfg.Sources.Categories) == 0 {
		return fmt.Errorf("no source categories configured; see 'giinscan config init'")
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	report, err := p.RunAll(ctx, limit)
	// Print what completed even when a later category failed.
	if len(report.Categories) > 0 {
		printSummaries(report.Categories)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "\nCompleted %d categories in %s\n",
		len(report.Categories), report.FinishedAt.Sub(report.StartedAt).Round(time.Second))
	return nil
}
