package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-farm/internal/farm"
)

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString("farm.schema.json", farmSchemaJSON)
	})
	return schema, schemaErr
}

// validateDocument checks the raw YAML document against the embedded schema.
// The document goes through JSON so the validator sees JSON value types.
func validateDocument(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("unsupported document: %w", err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("unsupported document: %w", err)
	}

	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	return nil
}

// Validate checks the cross-field rules the schema cannot express.
func (c FarmConfig) Validate() error {
	var errs []error

	w := c.World
	if w.Width < 3 || w.Height < 3 {
		errs = append(errs, fmt.Errorf("world %dx%d is too small", w.Width, w.Height))
	} else if w.StartX < 1 || w.StartX > w.Width-2 || w.StartY < 1 || w.StartY > w.Height-2 {
		errs = append(errs, fmt.Errorf("start (%d,%d) is outside the %dx%d interior", w.StartX, w.StartY, w.Width, w.Height))
	}

	if c.Time.TickRate < 1 {
		errs = append(errs, fmt.Errorf("tick_rate must be positive, got %d", c.Time.TickRate))
	}
	if c.Time.DayLength < 1 || c.Time.NightLength < 1 {
		errs = append(errs, errors.New("day_length and night_length must be positive"))
	}

	for name, crop := range c.Crops {
		if _, err := farm.ParseCropKind(name); err != nil {
			errs = append(errs, err)
			continue
		}
		if crop.MaxStage < 1 || crop.DailyGrowth <= 0 {
			errs = append(errs, fmt.Errorf("crop %q needs max_stage >= 1 and daily_growth > 0", name))
		}
	}

	if len(c.Tools) == 0 || len(c.Tools) > MaxToolSlots {
		errs = append(errs, fmt.Errorf("need 1 to %d tools, got %d", MaxToolSlots, len(c.Tools)))
	}
	for i, t := range c.Tools {
		switch t.Kind {
		case ToolKindHoe:
		case ToolKindSeed:
			if _, ok := c.Crops[t.Crop]; !ok {
				errs = append(errs, fmt.Errorf("tool %d (%s) plants unknown crop %q", i+1, t.Name, t.Crop))
			}
		default:
			errs = append(errs, fmt.Errorf("tool %d (%s) has unknown kind %q", i+1, t.Name, t.Kind))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
