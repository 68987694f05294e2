// Package config loads the farm configuration from YAML. Every document is
// checked against an embedded JSON schema before it is decoded, then the
// decoded values are checked for cross-field consistency.
package config

// FarmConfig contains all configuration for one farm.
type FarmConfig struct {
	World  WorldConfig           `yaml:"world" json:"world"`
	Time   TimeConfig            `yaml:"time" json:"time"`
	Player PlayerConfig          `yaml:"player" json:"player"`
	Crops  map[string]CropConfig `yaml:"crops" json:"crops"`
	Tools  []ToolConfig          `yaml:"tools" json:"tools"`
	Rules  RulesConfig           `yaml:"rules" json:"rules"`

	// Source describes where the configuration was loaded from.
	Source string `yaml:"-" json:"-"`
}

// WorldConfig defines the grid and where the player starts.
type WorldConfig struct {
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
	StartX int `yaml:"start_x" json:"start_x"`
	StartY int `yaml:"start_y" json:"start_y"`
}

// TimeConfig defines the tick rate and the day/night cycle, in ticks.
type TimeConfig struct {
	TickRate    int `yaml:"tick_rate" json:"tick_rate"`       // Simulation ticks per second
	MaxCatchUp  int `yaml:"max_catch_up" json:"max_catch_up"` // Ticks run per wake-up; the rest carries over
	DayLength   int `yaml:"day_length" json:"day_length"`     // Daylight ticks
	NightLength int `yaml:"night_length" json:"night_length"` // Night ticks
	NightFade   int `yaml:"night_fade" json:"night_fade"`     // Dusk ramp before nightfall
}

// PlayerConfig defines player timing.
type PlayerConfig struct {
	TillTimeTicks int     `yaml:"till_time_ticks" json:"till_time_ticks"`
	WalkSpeed     float64 `yaml:"walk_speed" json:"walk_speed"` // Render cells per tick
	FrameTicks    int     `yaml:"frame_ticks" json:"frame_ticks"`
	WalkFrames    int     `yaml:"walk_frames" json:"walk_frames"`
}

// CropConfig defines one crop variant. Map keys are crop names.
type CropConfig struct {
	MaxStage    int     `yaml:"max_stage" json:"max_stage"`
	DailyGrowth float64 `yaml:"daily_growth" json:"daily_growth"` // Stages gained per day, fractional
	Yield       int     `yaml:"yield" json:"yield"`
	UnripeYield int     `yaml:"unripe_yield" json:"unripe_yield"`
}

// ToolConfig defines one hotbar slot, in order.
type ToolConfig struct {
	Name string `yaml:"name" json:"name"`
	Kind string `yaml:"kind" json:"kind"`           // "hoe" or "seed"
	Crop string `yaml:"crop,omitempty" json:"crop"` // Crop name for seed tools
}

// RulesConfig toggles optional gameplay.
type RulesConfig struct {
	ScrapHarvest bool `yaml:"scrap_harvest" json:"scrap_harvest"` // Harvest unripe crops for their unripe yield
}

// Tool kinds accepted in ToolConfig.Kind.
const (
	ToolKindHoe  = "hoe"
	ToolKindSeed = "seed"
)

// MaxToolSlots is the number of hotbar slots the frontends can select.
const MaxToolSlots = 4
