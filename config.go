package bramble

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
)

// PlayerConfig holds the tunable player parameters. It is loaded from JSON;
// fields missing from the file keep their DefaultPlayerConfig values.
type PlayerConfig struct {
	Speed                        float64 `json:"speed"`
	FallGravityFactor            float64 `json:"fallGravityFactor"`
	ButtonPressJumpGravityFactor float64 `json:"buttonPressJumpGravityFactor"`
	JumpHeight                   float64 `json:"jumpHeight"`
	JumpDistance                 float64 `json:"jumpDistance"`
}

// DefaultPlayerConfig returns the stock tuning: speed 7, fall factor 0.8,
// held-jump factor 0.5, a 2 unit high jump over 0.5 units.
func DefaultPlayerConfig() PlayerConfig {
	return PlayerConfig{
		Speed:                        7,
		FallGravityFactor:            0.8,
		ButtonPressJumpGravityFactor: 0.5,
		JumpHeight:                   2,
		JumpDistance:                 0.5,
	}
}

// Validate reports values that would make the jump derivation divide by
// zero or invert gravity.
func (c PlayerConfig) Validate() error {
	var errs []error
	if c.Speed <= 0 {
		errs = append(errs, fmt.Errorf("speed must be positive, got %v", c.Speed))
	}
	if c.ButtonPressJumpGravityFactor <= 0 {
		errs = append(errs, fmt.Errorf("buttonPressJumpGravityFactor must be positive, got %v", c.ButtonPressJumpGravityFactor))
	}
	if c.FallGravityFactor <= 0 {
		errs = append(errs, fmt.Errorf("fallGravityFactor must be positive, got %v", c.FallGravityFactor))
	}
	if c.JumpDistance <= 0 {
		errs = append(errs, fmt.Errorf("jumpDistance must be positive, got %v", c.JumpDistance))
	}
	if c.JumpHeight < 0 {
		errs = append(errs, fmt.Errorf("jumpHeight must not be negative, got %v", c.JumpHeight))
	}
	return errors.Join(errs...)
}

// LoadPlayerConfig reads a PlayerConfig JSON file from fsys.
func LoadPlayerConfig(fsys fs.FS, path string) (PlayerConfig, error) {
	cfg := DefaultPlayerConfig()
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return cfg, fmt.Errorf("bramble: failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("bramble: failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("bramble: invalid player config %s: %w", path, err)
	}
	return cfg, nil
}
