package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/flock/config"
)

func TestParamVectorRoundTrip(t *testing.T) {
	pv := NewParamVector(config.Default())
	def := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(def))
	for i := range def {
		assert.InDelta(t, def[i], back[i], 1e-9, pv.Specs[i].Name)
	}
}

func TestApplyToConfigClampsAndOrders(t *testing.T) {
	cfg := config.Default()
	pv := NewParamVector(cfg)

	// speed_max below speed_initial, hungry_interval out of range.
	pv.ApplyToConfig(cfg, []float64{50, 45, 60, 6, 60, 99})

	assert.Equal(t, 50.0, cfg.Wolf.SpeedInitial)
	assert.Equal(t, 50.0, cfg.Wolf.SpeedMax)
	assert.Equal(t, 2.0, cfg.Wolf.HungryInterval)
	require.NoError(t, cfg.Validate())
}

func TestEvaluateCappedSession(t *testing.T) {
	cfg := config.Default()
	pv := NewParamVector(cfg)

	// Two seconds is shorter than the first wolf spawn, so every session
	// survives to the cap.
	maxTicks := int32(math.Round(2 / cfg.Physics.DT))
	fe := NewFitnessEvaluator(pv, maxTicks, []int64{1, 2}, cfg, 1)

	fitness := fe.Evaluate(pv.DefaultVector())
	assert.InDelta(t, 2, fe.LastSurvival(), 0.01)
	assert.InDelta(t, 1, fitness, 0.05)
}
