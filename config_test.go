package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shape-simplifier/simplify"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"ADDR", "BOUNDARY_DIR", "TOLERANCE_STRATEGY", "DEFAULT_TOLERANCE", "DEFAULT_ZOOM", "DEFAULT_PRECISION", "LOG_QUIET"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "boundaries", cfg.BoundaryDir)
	assert.Equal(t, "density", cfg.Strategy)
	assert.Equal(t, simplify.DefaultBaseTolerance, cfg.BaseTolerance)
	assert.Equal(t, float64(simplify.DefaultMaxZoom), cfg.Zoom)
	assert.Equal(t, simplify.DefaultPrecision, cfg.Precision)
	assert.False(t, cfg.Quiet)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("TOLERANCE_STRATEGY", "zoom")
	t.Setenv("DEFAULT_TOLERANCE", "1e-9")
	t.Setenv("DEFAULT_ZOOM", "17")
	t.Setenv("DEFAULT_PRECISION", "5")
	t.Setenv("LOG_QUIET", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 1e-9, cfg.BaseTolerance)
	assert.Equal(t, 17.0, cfg.Zoom)
	assert.Equal(t, 5, cfg.Precision)
	assert.True(t, cfg.Quiet)

	p, err := cfg.Pipeline()
	require.NoError(t, err)
	assert.Equal(t, "zoom", p.Strategy.Name())
	assert.Equal(t, 5, p.Precision)
}

func TestLoadConfigInvalid(t *testing.T) {
	cases := map[string]string{
		"DEFAULT_TOLERANCE":  "abc",
		"DEFAULT_ZOOM":       "near",
		"DEFAULT_PRECISION":  "20",
		"TOLERANCE_STRATEGY": "radius",
		"LOG_QUIET":          "maybe",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestConfigPipelineUnknownStrategy(t *testing.T) {
	cfg := Config{Strategy: "radius", BaseTolerance: simplify.DefaultBaseTolerance, Precision: 6}
	_, err := cfg.Pipeline()
	assert.Error(t, err)
}
