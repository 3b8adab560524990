package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/daycoach-ai/daycoach/internal/summary"
)

func newSummariesCmd() *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "summaries",
		Short: "Show cached weekly and monthly summaries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			svc, err := newCoach(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			var cache summary.Cache
			if refresh {
				cache, err = svc.RefreshSummaries(cmd.Context())
				if err != nil {
					return err
				}
			} else {
				cache, err = svc.Summaries(cmd.Context())
				if err != nil {
					return err
				}
			}

			printSummaries(cmd, cache)
			return nil
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Regenerate summaries for completed periods before printing")
	return cmd
}

func printSummaries(cmd *cobra.Command, cache summary.Cache) {
	out := cmd.OutOrStdout()

	if len(cache.Weekly) == 0 && len(cache.Monthly) == 0 {
		fmt.Fprintln(out, "No summaries yet.")
		return
	}

	for _, key := range sortedSummaryKeys(cache.Weekly) {
		w := cache.Weekly[key]
		fmt.Fprintf(out, "%s  %s\n", key, w.Summary)
		if w.MoodPattern != "" {
			fmt.Fprintf(out, "        mood: %s\n", w.MoodPattern)
		}
		if len(w.Achievements) > 0 {
			fmt.Fprintf(out, "        wins: %s\n", strings.Join(w.Achievements, "; "))
		}
	}
	for _, key := range sortedSummaryKeys(cache.Monthly) {
		m := cache.Monthly[key]
		fmt.Fprintf(out, "%s  %s\n", key, m.Summary)
		if m.KeyInsight != "" {
			fmt.Fprintf(out, "        insight: %s\n", m.KeyInsight)
		}
	}
}

func sortedSummaryKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
