package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-farm/internal/observer"
	"github.com/vovakirdan/tui-farm/internal/platform/tui"
	"github.com/vovakirdan/tui-farm/internal/registry"
	"github.com/vovakirdan/tui-farm/internal/storage"
)

var (
	flagName    string
	flagObserve string
	flagNoDB    bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start farming",
	Long: `Start a farm in the terminal.

Controls:
  WASD/Arrows  - Move
  Space/E      - Use the selected tool (hold with the hoe to till)
  1-4          - Select a tool, press again for the empty hand
  0            - Empty hand (harvests ripe crops)
  Enter        - Controls overlay (pauses the farm)
  L            - Harvest ledger
  Ctrl+S       - Save a screenshot to ~/.farm/screenshots
  Q/Ctrl+C     - Quit

With --observe, a websocket spectator feed of the farm is served on the
given address (/ws for the feed, /snapshot for a single JSON frame).

Examples:
  farm play
  farm play --name alice
  farm play --config ./my-farm.yaml --tick-rate 30
  farm play --observe :8080 --log farm.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagName, "name", os.Getenv("USER"), "Farmer name recorded in the ledger")
	playCmd.Flags().StringVar(&flagObserve, "observe", "", "Serve a spectator feed on this address (e.g. :8080)")
	playCmd.Flags().BoolVar(&flagNoDB, "no-db", false, "Do not record harvests")
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	tools, err := registry.FromConfig(cfg)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger("farm", nil)
	if err != nil {
		return err
	}
	defer closeLog()
	logger.Info("config loaded", "source", cfg.Source, "tools", tools.Len())

	// Open the ledger; the farm still works without it.
	var store *storage.Store
	if !flagNoDB {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open ledger database: %v\n", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	f, err := tui.NewFarm(tui.FarmOptions{
		Config:   cfg,
		Tools:    tools,
		Player:   flagName,
		TickRate: flagTickRate,
		Store:    store,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if flagObserve != "" {
		feed := observer.NewServer(f.Session, observer.Options{Logger: logger.WithPrefix("observer")})
		f.Session.Subscribe(feed)
		go func() {
			if err := feed.ListenAndServe(ctx, flagObserve); err != nil {
				logger.Error("observer stopped", "error", err)
			}
		}()
	}

	rc := cfg.Runtime()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}
	if flagTickRate > 0 {
		rc.TickRate = flagTickRate
	}

	if err := tui.Run(f, store, rc); err != nil {
		return fmt.Errorf("running farm: %w", err)
	}

	if harvested := f.Session.Harvested(); len(harvested) > 0 {
		fmt.Println("Harvested this session:")
		for _, item := range sortedKeys(harvested) {
			fmt.Printf("  %-10s %d\n", item, harvested[item])
		}
	}
	return nil
}
