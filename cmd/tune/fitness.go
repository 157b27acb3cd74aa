package main

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/pthm-cable/munch/config"
	"github.com/pthm-cable/munch/game"
	"github.com/pthm-cable/munch/telemetry"
)

// Target describes the game the tuning aims for.
type Target struct {
	DurationSec float64 // desired autopilot game length
	Level       float64 // desired final level
}

// Evaluation summarizes one parameter vector's batch of games.
type Evaluation struct {
	Fitness      float64
	MeanDuration float64
	MeanScore    float64
	MeanLevel    float64
	CutOff       int // games that hit the tick cap
}

// FitnessEvaluator plays autopilot batches and scores them against a target.
type FitnessEvaluator struct {
	params   *ParamVector
	base     *config.Config
	seeds    []int64
	maxTicks int32
	workers  int
	target   Target

	mu         sync.Mutex
	last       Evaluation
	bestFit    float64
	hallOfFame *telemetry.HallOfFame
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, base *config.Config, seeds []int64, maxTicks int32, workers int, target Target) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:   params,
		base:     base,
		seeds:    seeds,
		maxTicks: maxTicks,
		workers:  workers,
		target:   target,
		bestFit:  math.Inf(1),
	}
}

// Evaluate computes fitness for raw parameter values (lower = better).
// Invalid configs score +Inf.
func (fe *FitnessEvaluator) Evaluate(ctx context.Context, raw []float64) (Evaluation, error) {
	cfg := fe.base.Clone()
	if err := fe.params.ApplyToConfig(cfg, raw); err != nil {
		return Evaluation{Fitness: math.Inf(1)}, nil
	}

	results, err := game.RunBatch(ctx, cfg, fe.seeds, fe.maxTicks, fe.workers)
	if err != nil {
		return Evaluation{}, fmt.Errorf("running batch: %w", err)
	}

	eval := Score(results, fe.target)

	fe.mu.Lock()
	fe.last = eval
	if eval.Fitness < fe.bestFit {
		fe.bestFit = eval.Fitness
		hof := telemetry.NewHallOfFame(len(results))
		for _, r := range results {
			hof.Consider(r.Summary)
		}
		fe.hallOfFame = hof
	}
	fe.mu.Unlock()
	return eval, nil
}

// Last returns the most recent evaluation.
func (fe *FitnessEvaluator) Last() Evaluation {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.last
}

// BestHallOfFame returns the games from the best evaluation so far.
func (fe *FitnessEvaluator) BestHallOfFame() *telemetry.HallOfFame {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.hallOfFame
}

// Score turns a batch into a fitness value: the mean squared relative
// error of game length and final level against the target. Games cut off
// by the tick cap count at their cut-off length.
func Score(results []game.BatchResult, target Target) Evaluation {
	var eval Evaluation
	if len(results) == 0 {
		eval.Fitness = math.Inf(1)
		return eval
	}

	var sq float64
	for _, r := range results {
		s := r.Summary
		eval.MeanDuration += s.DurationSec
		eval.MeanScore += float64(s.Score)
		eval.MeanLevel += float64(s.Level)
		if !r.Finished {
			eval.CutOff++
		}

		dErr := (s.DurationSec - target.DurationSec) / target.DurationSec
		lErr := (float64(s.Level) - target.Level) / target.Level
		sq += dErr*dErr + 0.5*lErr*lErr
	}

	n := float64(len(results))
	eval.MeanDuration /= n
	eval.MeanScore /= n
	eval.MeanLevel /= n
	eval.Fitness = sq / n
	return eval
}
