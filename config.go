package snooker

import "fmt"

// Config gathers every simulation tunable as a named field instead of
// scattering literals through the solver.
type Config struct {
	// Substeps divides each Step's dt. More substeps keep fast balls from
	// tunneling through thin cushions.
	Substeps int
	// Restitution is the bounciness of every contact, 0..1.
	Restitution float64
	// BaumgarteFactor feeds a fraction of the penetration into the solver's
	// velocity target so overlap drains away over successive substeps.
	BaumgarteFactor float64
	// CorrectionPercent is the fraction of remaining penetration removed by
	// positional correction after the solve.
	CorrectionPercent float64
	// DampingCoefficient k applies velocity *= exp(-k*dt) every substep.
	DampingCoefficient float64
	// RestThreshold zeroes any velocity whose magnitude falls below it.
	RestThreshold float64
	// AttractorStrength scales pocket suction: the per-substep pull is
	// (penetration*strength)^2 * dt toward the attractor.
	AttractorStrength float64
	// AttractorDamping slows a body in proportion to attractor overlap.
	AttractorDamping float64
}

func DefaultConfig() Config {
	return Config{
		Substeps:           20,
		Restitution:        0.8,
		BaumgarteFactor:    0.2,
		CorrectionPercent:  0.4,
		DampingCoefficient: 1.5,
		RestThreshold:      0.01,
		AttractorStrength:  20,
		AttractorDamping:   0.2,
	}
}

// Validate reports the first out-of-range tunable.
func (c Config) Validate() error {
	if c.Substeps < 1 {
		return fmt.Errorf("substeps must be at least 1, got %d", c.Substeps)
	}
	if c.Restitution < 0 || c.Restitution > 1 {
		return fmt.Errorf("restitution must be in [0,1], got %v", c.Restitution)
	}
	if c.BaumgarteFactor < 0 || c.BaumgarteFactor > 1 {
		return fmt.Errorf("baumgarte factor must be in [0,1], got %v", c.BaumgarteFactor)
	}
	if c.CorrectionPercent < 0 || c.CorrectionPercent > 1 {
		return fmt.Errorf("correction percent must be in [0,1], got %v", c.CorrectionPercent)
	}
	if c.DampingCoefficient < 0 {
		return fmt.Errorf("damping coefficient must be non-negative, got %v", c.DampingCoefficient)
	}
	if c.RestThreshold < 0 {
		return fmt.Errorf("rest threshold must be non-negative, got %v", c.RestThreshold)
	}
	if c.AttractorStrength < 0 {
		return fmt.Errorf("attractor strength must be non-negative, got %v", c.AttractorStrength)
	}
	if c.AttractorDamping < 0 {
		return fmt.Errorf("attractor damping must be non-negative, got %v", c.AttractorDamping)
	}
	return nil
}
