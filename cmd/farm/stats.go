package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-farm/internal/storage"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show harvest totals per item",
	Long: `Display how much of each crop has been harvested across all sessions.

Examples:
  farm stats
  farm stats --db ./ledger.db`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func runStats(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening ledger database: %w", err)
	}
	defer store.Close()

	totals, err := store.ItemTotals()
	if err != nil {
		return fmt.Errorf("retrieving totals: %w", err)
	}

	fmt.Println("Harvest Totals")
	fmt.Println()

	if len(totals) == 0 {
		fmt.Println("Nothing harvested yet.")
		fmt.Println()
		fmt.Println("Run 'farm play' to grow your first crop!")
		return nil
	}

	// Print header
	fmt.Printf("  %-10s  %-6s  %-8s  %-4s  %s\n", "Item", "Total", "Harvests", "Best", "Last")
	fmt.Printf("  %-10s  %-6s  %-8s  %-4s  %s\n", "----", "-----", "--------", "----", "----")

	for _, s := range totals {
		fmt.Printf("  %-10s  %-6d  %-8d  %-4d  %s\n",
			s.Item, s.Total, s.Harvests, s.Best, s.LastHarvested.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

// sortedKeys returns the keys of m in order.
func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
