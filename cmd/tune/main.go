package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/munch/config"
)

// logRow is one line of tune_log.csv. Parameter columns follow ParamVector order.
type logRow struct {
	Eval            int     `csv:"eval"`
	Fitness         float64 `csv:"fitness"`
	MeanDuration    float64 `csv:"mean_duration_sec"`
	MeanScore       float64 `csv:"mean_score"`
	MeanLevel       float64 `csv:"mean_level"`
	CutOff          int     `csv:"cut_off"`
	MissIncrement   float64 `csv:"miss_increment"`
	SpeedStep       float64 `csv:"speed_step"`
	GrowthIncrement float64 `csv:"growth_increment"`
	IntervalScale   float64 `csv:"interval_scale"`
	SpeedScale      float64 `csv:"speed_scale"`
}

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	maxTicks := flag.Int("max-ticks", 60*60*10, "Tick cap per game")
	seeds := flag.Int("seeds", 8, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 200, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	workers := flag.Int("workers", 0, "Parallel games per evaluation (0 = GOMAXPROCS)")
	targetDuration := flag.Float64("target-duration", 180, "Desired autopilot game length in seconds")
	targetLevel := flag.Float64("target-level", 6, "Desired final level")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	if *outputDir == "" {
		slog.Error("--output is required")
		os.Exit(2)
	}
	if err := run(*configPath, *outputDir, *maxTicks, *seeds, *maxEvals, *population, *workers,
		Target{DurationSec: *targetDuration, Level: *targetLevel}); err != nil {
		slog.Error("tuning failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath, outputDir string, maxTicks, seedCount, maxEvals, population, workers int, target Target) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	baseCfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	params := NewParamVector(baseCfg)

	evalSeeds := make([]int64, seedCount)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}
	evaluator := NewFitnessEvaluator(params, baseCfg, evalSeeds, int32(maxTicks), workers, target)

	logFile, err := os.Create(filepath.Join(outputDir, "tune_log.csv"))
	if err != nil {
		return fmt.Errorf("creating log file: %w", err)
	}
	defer logFile.Close()

	dim := params.Dim()
	popSize := population
	if popSize == 0 {
		// Auto-size: 4 + floor(3*ln(n))
		popSize = 4 + int(3*math.Log(float64(dim)))
	}

	evalCount := 0
	bestFitness := math.Inf(1)
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Clamp(params.Denormalize(x))
			eval, err := evaluator.Evaluate(ctx, raw)
			if err != nil {
				slog.Warn("evaluation failed", "error", err)
				return math.Inf(1)
			}
			evalCount++

			if eval.Fitness < bestFitness {
				bestFitness = eval.Fitness
				bestParams = raw
			}

			row := []logRow{{
				Eval:            evalCount,
				Fitness:         eval.Fitness,
				MeanDuration:    eval.MeanDuration,
				MeanScore:       eval.MeanScore,
				MeanLevel:       eval.MeanLevel,
				CutOff:          eval.CutOff,
				MissIncrement:   raw[0],
				SpeedStep:       raw[1],
				GrowthIncrement: raw[2],
				IntervalScale:   raw[3],
				SpeedScale:      raw[4],
			}}
			if evalCount == 1 {
				err = gocsv.Marshal(row, logFile)
			} else {
				err = gocsv.MarshalWithoutHeaders(row, logFile)
			}
			if err != nil {
				slog.Warn("failed to write log row", "error", err)
			}

			elapsed := time.Since(startTime)
			avgPerEval := elapsed / time.Duration(evalCount)
			remaining := time.Duration(maxEvals-evalCount) * avgPerEval
			fmt.Printf("Eval %d/%d: fitness=%.4f duration=%.0fs level=%.1f score=%.0f (best=%.4f) | elapsed: %s, ETA: %s\n",
				evalCount, maxEvals, eval.Fitness, eval.MeanDuration, eval.MeanLevel, eval.MeanScore, bestFitness,
				formatDuration(elapsed), formatDuration(remaining))

			return eval.Fitness
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: maxEvals,
		Concurrent:      0, // batches are already parallel
	}
	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}

	fmt.Printf("Starting CMA-ES tuning with %d parameters, population=%d, max_evals=%d\n", dim, popSize, maxEvals)
	fmt.Printf("Seeds per evaluation: %d, tick cap: %d, target: %.0fs level %.1f\n",
		seedCount, maxTicks, target.DurationSec, target.Level)

	result, err := optimize.Minimize(problem, params.Normalize(params.DefaultVector()), settings, method)
	if err != nil {
		slog.Info("tuning ended", "reason", err)
	}
	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if bestParams == nil {
		return fmt.Errorf("no successful evaluation")
	}

	fmt.Printf("\nTuning complete after %d evaluations in %s\n", evalCount, formatDuration(time.Since(startTime)))
	fmt.Printf("Best fitness: %.4f\n", bestFitness)
	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s (%s): %.6f\n", spec.Name, spec.Path, bestParams[i])
	}

	bestCfg := baseCfg.Clone()
	if err := params.ApplyToConfig(bestCfg, bestParams); err != nil {
		return fmt.Errorf("applying best parameters: %w", err)
	}
	configOutPath := filepath.Join(outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		return fmt.Errorf("writing best config: %w", err)
	}
	fmt.Printf("\nBest config saved to: %s\n", configOutPath)

	if hof := evaluator.BestHallOfFame(); hof != nil {
		data, err := hof.MarshalJSON()
		if err != nil {
			return fmt.Errorf("marshaling hall of fame: %w", err)
		}
		hofPath := filepath.Join(outputDir, "hall_of_fame.json")
		if err := os.WriteFile(hofPath, data, 0644); err != nil {
			return fmt.Errorf("writing hall of fame: %w", err)
		}
		fmt.Printf("Hall of fame saved to: %s\n", hofPath)
	}
	return nil
}
