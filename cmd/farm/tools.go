package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-farm/internal/registry"
)

var toolsCmd = &cobra.Command{
	Use:   "tools [name]",
	Short: "List the tool hotbar",
	Long: `Shows the tools of the configured hotbar and the key that selects each.
With a name, shows the growth parameters of that one tool.

Examples:
  farm tools
  farm tools "wheat seeds"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTools,
}

func runTools(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	tools, err := registry.FromConfig(cfg)
	if err != nil {
		return err
	}

	if len(args) == 1 {
		return printTool(tools, args[0])
	}

	slots := tools.List()
	if len(slots) == 0 {
		fmt.Println("No tools configured.")
		return nil
	}

	fmt.Printf("Tools (%s config):\n", cfg.Source)
	fmt.Println()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, s := range slots {
		if len(s.Tool.Name) > maxNameLen {
			maxNameLen = len(s.Tool.Name)
		}
	}

	// Print header
	fmt.Printf("  %-3s  %-*s  %-5s  %s\n", "Key", maxNameLen, "Name", "Kind", "Crop")
	fmt.Printf("  %-3s  %-*s  %-5s  %s\n", "---", maxNameLen, "----", "----", "----")
	fmt.Printf("  %-3s  %-*s  %-5s  %s\n", "0", maxNameLen, "(hand)", "-", "-")

	for _, s := range slots {
		crop := "-"
		if s.Tool.IsSeed() {
			crop = s.Tool.Crop.Kind.String()
		}
		fmt.Printf("  %-3s  %-*s  %-5s  %s\n", s.Key, maxNameLen, s.Tool.Name, s.Tool.Kind, crop)
	}

	fmt.Println()
	fmt.Println("Run 'farm play' and press a key to pick up the tool.")
	return nil
}

// printTool shows one hotbar tool looked up by name.
func printTool(tools *registry.Registry, name string) error {
	s, ok := tools.Lookup(name)
	if !ok {
		return fmt.Errorf("unknown tool: %s", name)
	}

	fmt.Printf("%s (key %s, %s)\n", s.Tool.Name, s.Key, s.Tool.Kind)
	if !s.Tool.IsSeed() {
		return nil
	}
	c := s.Tool.Crop
	fmt.Printf("  crop:         %s\n", c.Kind)
	fmt.Printf("  max stage:    %d\n", c.MaxStage)
	fmt.Printf("  daily growth: %.2f\n", c.DailyGrowth)
	fmt.Printf("  yield:        %d\n", c.Yield)
	return nil
}
