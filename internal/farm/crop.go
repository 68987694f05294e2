package farm

import (
	"fmt"
	"strings"
)

// CropKind identifies a crop variant.
type CropKind int

const (
	CropWheat CropKind = iota
	CropTomato
)

// String returns the variant name.
func (k CropKind) String() string {
	switch k {
	case CropWheat:
		return "Wheat"
	case CropTomato:
		return "Tomato"
	default:
		return "Unknown"
	}
}

// ParseCropKind maps a case-insensitive variant name to its kind.
func ParseCropKind(name string) (CropKind, error) {
	switch strings.ToLower(name) {
	case "wheat":
		return CropWheat, nil
	case "tomato":
		return CropTomato, nil
	}
	return 0, fmt.Errorf("farm: unknown crop %q", name)
}

// CropSpec holds the fixed parameters of a crop variant.
type CropSpec struct {
	Kind        CropKind
	MaxStage    int
	DailyGrowth float64 // stages gained per in-game day
	Yield       int     // items when harvested fully grown
	UnripeYield int     // items when harvested early
}

// DefaultCropSpec returns the built-in parameters for a crop variant.
// Wheat matures in ~3 days, tomato in 5.
func DefaultCropSpec(kind CropKind) CropSpec {
	switch kind {
	case CropTomato:
		return CropSpec{Kind: CropTomato, MaxStage: 5, DailyGrowth: 1.0, Yield: 2, UnripeYield: 1}
	default:
		return CropSpec{Kind: CropWheat, MaxStage: 5, DailyGrowth: 1.7, Yield: 3, UnripeYield: 1}
	}
}

// Crop is a planted, growing crop. It is owned by the Dirt tile it was
// planted on.
type Crop struct {
	spec     CropSpec
	stage    int
	progress float64
}

// NewCrop plants a crop at stage 0.
func NewCrop(spec CropSpec) *Crop {
	if spec.MaxStage < 0 {
		spec.MaxStage = 0
	}
	return &Crop{spec: spec}
}

// Advance applies one day of growth. Progress accumulates fractionally so a
// rate of 1.7 gains one or two stages per day.
func (c *Crop) Advance() {
	if c.IsFullyGrown() {
		return
	}
	c.progress += c.spec.DailyGrowth
	for c.progress >= 1.0 && c.stage < c.spec.MaxStage {
		c.stage++
		c.progress -= 1.0
	}
	if c.stage >= c.spec.MaxStage {
		c.progress = 0
	}
}

// IsFullyGrown reports whether the crop reached its final stage.
func (c *Crop) IsFullyGrown() bool {
	return c.stage >= c.spec.MaxStage
}

// HarvestYield returns the number of items the crop gives when harvested now.
func (c *Crop) HarvestYield() int {
	if c.IsFullyGrown() {
		return c.spec.Yield
	}
	return c.spec.UnripeYield
}

// Kind returns the crop variant.
func (c *Crop) Kind() CropKind { return c.spec.Kind }

// Stage returns the current growth stage.
func (c *Crop) Stage() int { return c.stage }

// MaxStage returns the final growth stage.
func (c *Crop) MaxStage() int { return c.spec.MaxStage }

// Progress returns the fractional progress toward the next stage, in [0,1).
func (c *Crop) Progress() float64 { return c.progress }

// ItemName is the inventory key harvested crops are stored under.
func (c *Crop) ItemName() string {
	return ItemName(c.spec.Kind)
}

// ItemName returns the inventory key for a crop variant ("wheat", "tomato").
func ItemName(kind CropKind) string {
	return strings.ToLower(kind.String())
}

// SpriteKey names the fully grown sprite of a crop, used by pickup animations.
func (c *Crop) SpriteKey() string {
	return fmt.Sprintf("crops/%s_stage_%d", c.ItemName(), c.spec.MaxStage)
}
