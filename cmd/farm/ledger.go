package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-farm/internal/platform/tui"
	"github.com/vovakirdan/tui-farm/internal/storage"
)

var (
	flagPlain   bool
	flagLimit   int
	flagSession string
	flagClear   bool
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Browse recorded sessions and harvests",
	Long: `Open the harvest ledger.

By default the ledger opens as an interactive table. Use --plain to print
recent sessions instead, or --session to list the harvests of one session.

Controls:
  Up/Down/j/k  - Scroll
  Tab/Arrows   - Switch between sessions, harvests and item totals
  R            - Refresh
  Esc/Q        - Quit

Examples:
  farm ledger
  farm ledger --plain --limit 5
  farm ledger --session 5f1c...`,
	Args: cobra.NoArgs,
	RunE: runLedger,
}

func init() {
	ledgerCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print recent sessions instead of opening the table")
	ledgerCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of sessions to print with --plain")
	ledgerCmd.Flags().StringVar(&flagSession, "session", "", "Print the harvests of one session")
	ledgerCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded session and harvest")
}

func runLedger(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening ledger database: %w", err)
	}
	defer store.Close()

	switch {
	case flagClear:
		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Println("Ledger cleared.")
		return nil
	case flagSession != "":
		return printSession(store, flagSession)
	case flagPlain:
		return printSessions(store, flagLimit)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	return tui.RunLedger(store, width, height)
}

func printSessions(store *storage.Store, limit int) error {
	sessions, err := store.RecentSessions(limit)
	if err != nil {
		return fmt.Errorf("retrieving sessions: %w", err)
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		return nil
	}

	fmt.Printf("  %-36s  %-10s  %-16s  %-4s  %s\n", "Session", "Farmer", "Started", "Days", "Items")
	fmt.Printf("  %-36s  %-10s  %-16s  %-4s  %s\n", "-------", "------", "-------", "----", "-----")
	for _, s := range sessions {
		fmt.Printf("  %-36s  %-10s  %-16s  %-4d  %d\n",
			s.ID, s.Player, s.StartedAt.Local().Format("2006-01-02 15:04"), s.Days, s.Items)
	}
	return nil
}

func printSession(store *storage.Store, id string) error {
	summary, err := store.Session(id)
	if err != nil {
		return fmt.Errorf("retrieving session: %w", err)
	}
	if summary == nil {
		return fmt.Errorf("unknown session %q", id)
	}

	harvests, err := store.SessionHarvests(id)
	if err != nil {
		return fmt.Errorf("retrieving harvests: %w", err)
	}

	fmt.Printf("Session %s (%s)\n", summary.ID, summary.Player)
	fmt.Printf("Started %s, %d days, %d ticks\n",
		summary.StartedAt.Local().Format("2006-01-02 15:04"), summary.Days, summary.Ticks)
	fmt.Println()

	if len(harvests) == 0 {
		fmt.Println("No harvests in this session.")
		return nil
	}
	fmt.Printf("  %-4s  %-10s  %-6s  %s\n", "Day", "Item", "Amount", "Tile")
	fmt.Printf("  %-4s  %-10s  %-6s  %s\n", "---", "----", "------", "----")
	for _, h := range harvests {
		fmt.Printf("  %-4d  %-10s  %-6d  %d,%d\n", h.Day, h.Item, h.Amount, h.X, h.Y)
	}
	return nil
}
