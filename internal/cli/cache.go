package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/giinscan/giinscan/internal/pipeline"
)

// cacheCmd represents the cache command
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the on-disk response cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached responses",
	Long: `Clear deletes the on-disk response cache. The next run refetches every
page, subject to the usual per-host delay.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		p, err := pipeline.New(cfg)
		if err != nil {
			return err
		}

		if err := p.ClearCache(); err != nil {
			return fmt.Errorf("clear cache %s: %w", cfg.Cache.Dir, err)
		}

		fmt.Printf("Cleared response cache: %s\n", cfg.Cache.Dir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}
