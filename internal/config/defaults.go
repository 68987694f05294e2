package config

import (
	_ "embed"
)

//go:embed defaults/farm.yaml
var defaultFarmYAML []byte

//go:embed defaults/farm.schema.json
var farmSchemaJSON string

// DefaultFarmConfig returns the built-in configuration. It mirrors
// defaults/farm.yaml and is used when even the embedded file cannot be read.
func DefaultFarmConfig() FarmConfig {
	return FarmConfig{
		World: WorldConfig{
			Width:  16,
			Height: 12,
			StartX: 1,
			StartY: 1,
		},
		Time: TimeConfig{
			TickRate:    60,
			MaxCatchUp:  5,
			DayLength:   800,
			NightLength: 400,
			NightFade:   50,
		},
		Player: PlayerConfig{
			TillTimeTicks: 60,
			WalkSpeed:     0.125,
			FrameTicks:    4,
			WalkFrames:    4,
		},
		Crops: map[string]CropConfig{
			"wheat": {
				MaxStage:    5,
				DailyGrowth: 1.7,
				Yield:       3,
				UnripeYield: 1,
			},
			"tomato": {
				MaxStage:    5,
				DailyGrowth: 1.0,
				Yield:       2,
				UnripeYield: 1,
			},
		},
		Tools: []ToolConfig{
			{Name: "Hoe", Kind: ToolKindHoe},
			{Name: "Wheat Seeds", Kind: ToolKindSeed, Crop: "wheat"},
			{Name: "Tomato Seeds", Kind: ToolKindSeed, Crop: "tomato"},
		},
		Source: "built-in",
	}
}

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	out := make([]byte, len(defaultFarmYAML))
	copy(out, defaultFarmYAML)
	return out
}
