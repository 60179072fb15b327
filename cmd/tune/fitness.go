package main

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/snakes/config"
	"github.com/pthm-cable/snakes/game"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	simMs      float64
	stepMs     float64
	seeds      []int64
	baseConfig *config.Config

	mu       sync.Mutex
	lastRuns []runResult // results from the most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, simSec, stepMs float64, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		simMs:      simSec * 1000,
		stepMs:     stepMs,
		seeds:      seeds,
		baseConfig: baseCfg,
	}
}

// runResult holds the results from a single simulation run.
type runResult struct {
	survivalShare float64 // living agents at the end / agents at start
	meanLength    float64 // mean body length of the survivors
	simSec        float64 // simulated seconds before the run ended
}

// fitness is -(survival share × (1 + mean length / 10)); lower is better.
func (r runResult) fitness() float64 {
	return -(r.survivalShare * (1 + r.meanLength/10))
}

// Evaluate computes fitness for raw parameter values (lower = better),
// running every seed concurrently with its own world.
func (fe *FitnessEvaluator) Evaluate(ctx context.Context, x []float64) (float64, error) {
	cfg := *fe.baseConfig
	fe.params.ApplyToConfig(&cfg, x)

	results := make([]runResult, len(fe.seeds))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.NumCPU())

	for i, seed := range fe.seeds {
		eg.Go(func() error {
			r, err := fe.runSimulation(ctx, &cfg, seed)
			results[i] = r
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return 0, err
	}

	var total float64
	for _, r := range results {
		total += r.fitness()
	}

	fe.mu.Lock()
	fe.lastRuns = results
	fe.mu.Unlock()

	return total / float64(len(results)), nil
}

// LastRuns returns the per-seed results of the most recent evaluation.
func (fe *FitnessEvaluator) LastRuns() []runResult {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastRuns
}

// runSimulation executes one headless run until extinction or the time cap.
func (fe *FitnessEvaluator) runSimulation(ctx context.Context, cfg *config.Config, seed int64) (runResult, error) {
	g := game.NewGame(cfg, game.Options{Seed: seed})
	defer g.Close()

	settings := game.DefaultSettings(cfg)
	if err := g.Start(settings); err != nil {
		return runResult{}, err
	}

	for g.SimTimeMs() < fe.simMs && g.AgentCount() > 0 {
		if g.Ticks()%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return runResult{}, err
			}
		}
		g.Tick(fe.stepMs, settings)
	}

	return summarize(g, settings.AgentCount), nil
}

// summarize scores the final board of a run.
func summarize(g *game.Game, initialAgents int) runResult {
	var lengths []float64
	for a := range g.Agents() {
		lengths = append(lengths, float64(a.Body.Len()))
	}

	r := runResult{simSec: g.SimTimeMs() / 1000}
	if initialAgents > 0 {
		r.survivalShare = float64(len(lengths)) / float64(initialAgents)
	}
	if len(lengths) > 0 {
		r.meanLength = stat.Mean(lengths, nil)
	}
	return r
}

// meanRuns averages survival share and length across runs.
func meanRuns(runs []runResult) (survival, length float64) {
	if len(runs) == 0 {
		return 0, 0
	}
	for _, r := range runs {
		survival += r.survivalShare
		length += r.meanLength
	}
	n := float64(len(runs))
	return survival / n, length / n
}
