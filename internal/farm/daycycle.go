package farm

// DefaultNightFade is how many ticks before nightfall the screen starts darkening.
const DefaultNightFade = 50

// DayCycle counts simulation ticks through alternating day and night phases.
type DayCycle struct {
	dayLength   int
	nightLength int
	fadeTicks   int
	tick        int
	day         int
}

// NewDayCycle creates a cycle that starts at tick 0 of day 1.
// Lengths below 1 are raised to 1; fadeTicks is clamped to [0, dayLength].
func NewDayCycle(dayLength, nightLength, fadeTicks int) *DayCycle {
	dayLength = max(1, dayLength)
	nightLength = max(1, nightLength)
	fadeTicks = min(max(0, fadeTicks), dayLength)
	return &DayCycle{
		dayLength:   dayLength,
		nightLength: nightLength,
		fadeTicks:   fadeTicks,
		day:         1,
	}
}

// Tick advances the cycle by one tick, wrapping to the next day after night.
// Returns true when a new day began.
func (c *DayCycle) Tick() bool {
	c.tick++
	if c.tick >= c.dayLength+c.nightLength {
		c.tick = 0
		c.day++
		return true
	}
	return false
}

// Day returns the current day number, starting at 1.
func (c *DayCycle) Day() int { return c.day }

// CurrentTick returns the tick within the current day/night period.
func (c *DayCycle) CurrentTick() int { return c.tick }

// DayLength returns the number of daylight ticks.
func (c *DayCycle) DayLength() int { return c.dayLength }

// NightLength returns the number of night ticks.
func (c *DayCycle) NightLength() int { return c.nightLength }

// IsNight reports whether the current tick falls in the night phase.
func (c *DayCycle) IsNight() bool { return c.tick >= c.dayLength }

// NightAlpha returns the darkness overlay opacity in [0,1]. It ramps up over
// the last fade ticks of the day and back down across the night.
func (c *DayCycle) NightAlpha() float64 {
	if c.tick < c.dayLength {
		fadeStart := c.dayLength - c.fadeTicks
		if c.fadeTicks > 0 && c.tick >= fadeStart {
			return float64(c.tick-fadeStart) / float64(c.fadeTicks)
		}
		return 0
	}
	nightTick := c.tick - c.dayLength
	return 1 - float64(nightTick)/float64(c.nightLength)
}
