package main

import (
	"log/slog"
	"math"
	"sync"

	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/game"
)

// FitnessEvaluator runs autopilot sessions headless and scores how far their
// survival time lands from the target.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int32
	seeds      []int64
	baseConfig *config.Config
	target     float64

	mu           sync.Mutex
	lastSurvival float64 // mean survival from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config, target float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxTicks:   maxTicks,
		seeds:      seeds,
		baseConfig: baseCfg,
		target:     target,
	}
}

// LastSurvival returns the mean survival of the most recent evaluation.
func (fe *FitnessEvaluator) LastSurvival() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastSurvival
}

// Evaluate computes fitness for a parameter vector (lower = better): the
// mean squared distance between survival seconds and the target.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	survival := make([]float64, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			survival[idx] = fe.runSession(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	var sqErr, total float64
	for _, s := range survival {
		d := s - fe.target
		sqErr += d * d
		total += s
	}
	n := float64(len(fe.seeds))

	fe.mu.Lock()
	fe.lastSurvival = total / n
	fe.mu.Unlock()

	return sqErr / n
}

// runSession plays one autopilot session and returns its survival seconds.
// Sessions that outlast maxTicks count as surviving until the cap.
func (fe *FitnessEvaluator) runSession(cfg *config.Config, seed int64) float64 {
	g, err := game.NewGame(game.Options{Config: cfg, Seed: seed})
	if err != nil {
		slog.Error("failed to start session", "seed", seed, "error", err)
		return math.Inf(1)
	}
	defer g.Close()

	pilot := game.NewAutopilot()
	for g.State() == game.Playing && g.Tick() < fe.maxTicks {
		g.Step(pilot.Poll(g))
	}
	return float64(g.Result().Survived)
}

// copyConfig returns a copy of the base config for one evaluation.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}
