package snooker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestConfigValidateFlagsEachField(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		message string
	}{
		{"zero substeps", func(c *Config) { c.Substeps = 0 }, "substeps must be at least 1, got 0"},
		{"negative restitution", func(c *Config) { c.Restitution = -0.1 }, "restitution must be in [0,1]"},
		{"restitution above one", func(c *Config) { c.Restitution = 1.5 }, "restitution must be in [0,1]"},
		{"baumgarte out of range", func(c *Config) { c.BaumgarteFactor = 2 }, "baumgarte factor must be in [0,1]"},
		{"correction out of range", func(c *Config) { c.CorrectionPercent = -1 }, "correction percent must be in [0,1]"},
		{"negative damping", func(c *Config) { c.DampingCoefficient = -3 }, "damping coefficient must be non-negative"},
		{"negative rest threshold", func(c *Config) { c.RestThreshold = -0.01 }, "rest threshold must be non-negative"},
		{"negative attractor strength", func(c *Config) { c.AttractorStrength = -1 }, "attractor strength must be non-negative"},
		{"negative attractor damping", func(c *Config) { c.AttractorDamping = -1 }, "attractor damping must be non-negative"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.message)
		})
	}
}

func TestConfigBoundaryValuesAccepted(t *testing.T) {
	cfg := Config{
		Substeps:          1,
		Restitution:       1,
		BaumgarteFactor:   0,
		CorrectionPercent: 1,
	}
	require.NoError(t, cfg.Validate())
}
