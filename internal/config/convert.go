package config

import (
	"fmt"

	"github.com/vovakirdan/tui-farm/internal/core"
	"github.com/vovakirdan/tui-farm/internal/farm"
)

// CropSpec returns the growth parameters of the named crop.
func (c FarmConfig) CropSpec(name string) (farm.CropSpec, error) {
	kind, err := farm.ParseCropKind(name)
	if err != nil {
		return farm.CropSpec{}, fmt.Errorf("config: %w", err)
	}
	cc, ok := c.Crops[name]
	if !ok {
		return farm.CropSpec{}, fmt.Errorf("config: crop %q is not configured", name)
	}
	return farm.CropSpec{
		Kind:        kind,
		MaxStage:    cc.MaxStage,
		DailyGrowth: cc.DailyGrowth,
		Yield:       cc.Yield,
		UnripeYield: cc.UnripeYield,
	}, nil
}

// FarmRules returns the gameplay rules.
func (c FarmConfig) FarmRules() farm.Rules {
	return farm.Rules{
		TillTimeTicks: c.Player.TillTimeTicks,
		WalkSpeed:     c.Player.WalkSpeed,
		FrameTicks:    c.Player.FrameTicks,
		WalkFrames:    c.Player.WalkFrames,
		ScrapHarvest:  c.Rules.ScrapHarvest,
	}
}

// FarmWorld builds the world construction parameters around a hotbar.
func (c FarmConfig) FarmWorld(tools []farm.Tool) farm.Config {
	return farm.Config{
		Width:       c.World.Width,
		Height:      c.World.Height,
		DayLength:   c.Time.DayLength,
		NightLength: c.Time.NightLength,
		NightFade:   c.Time.NightFade,
		StartX:      c.World.StartX,
		StartY:      c.World.StartY,
		Rules:       c.FarmRules(),
		Tools:       tools,
	}
}

// Runtime returns the loop settings with the default screen size.
func (c FarmConfig) Runtime() core.RuntimeConfig {
	rc := core.DefaultConfig()
	if c.Time.TickRate > 0 {
		rc.TickRate = c.Time.TickRate
	}
	if c.Time.MaxCatchUp > 0 {
		rc.MaxCatchUp = c.Time.MaxCatchUp
	}
	return rc
}
