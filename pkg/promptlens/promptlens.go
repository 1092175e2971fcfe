package promptlens

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cognicore/promptlens/pkg/promptlens/complexity"
	"github.com/cognicore/promptlens/pkg/promptlens/config"
	"github.com/cognicore/promptlens/pkg/promptlens/grade"
	"github.com/cognicore/promptlens/pkg/promptlens/ideas"
	"github.com/cognicore/promptlens/pkg/promptlens/insights"
	"github.com/cognicore/promptlens/pkg/promptlens/internalerr"
	"github.com/cognicore/promptlens/pkg/promptlens/metric"
	"github.com/cognicore/promptlens/pkg/promptlens/perf"
	"github.com/cognicore/promptlens/pkg/promptlens/preprocess"
	"github.com/cognicore/promptlens/pkg/promptlens/taskgraph"
	"github.com/cognicore/promptlens/pkg/promptlens/tokenizer"
)

// Engine is the prompt analysis facade. It holds only immutable components
// and is safe for concurrent use.
type Engine struct {
	comp        *config.Components
	concurrency int
	logger      *zap.Logger
}

// Options configures an Engine
type Options struct {
	// Config defaults to config.Default()
	Config *config.Config
	// Logger defaults to a no-op logger
	Logger *zap.Logger
}

// New creates an Engine with the given options
func New(opts Options) (*Engine, error) {
	cfg := config.Default()
	if opts.Config != nil {
		cfg = *opts.Config
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	loader := cfg.Loader()
	comp, err := loader.Load()
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{comp: comp, concurrency: cfg.Concurrency, logger: logger}, nil
}

var (
	defaultOnce   sync.Once
	defaultEngine *Engine
)

// Default returns a shared engine with the built-in configuration.
func Default() *Engine {
	defaultOnce.Do(func() {
		e, err := New(Options{})
		if err != nil {
			panic(fmt.Sprintf("promptlens: default engine: %v", err))
		}
		defaultEngine = e
	})
	return defaultEngine
}

// Analysis is the combined output of every stage.
type Analysis struct {
	Complexity    complexity.Result
	Tokens        tokenizer.Result
	Preprocessing preprocess.Result
	Ideas         ideas.Result
	TaskGraph     taskgraph.Graph
	Insights      insights.Result
	Grade         grade.PromptGrade
	Performance   perf.Metrics
}

// Document arranges the analysis into its serialized sections.
func (a Analysis) Document() map[string]metric.Set {
	return map[string]metric.Set{
		"complexity_metrics":  a.Complexity.Metrics(),
		"tokens":              a.Tokens.Metrics(),
		"preprocessing":       a.Preprocessing.Metrics(),
		"performance_metrics": a.Performance.Metrics(),
		"idea_analysis":       a.Ideas.Metrics(),
		"insights":            a.Insights.Metrics(),
		"task_graph":          a.TaskGraph.Metrics(),
		"grading":             a.Grade.Metrics(),
	}
}

// MarshalJSON renders the analysis as its document.
func (a Analysis) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Document())
}

// Analyze runs the pipeline over text. Tokenization, complexity,
// preprocessing and idea analysis run concurrently; the task graph, insights
// and grading then run in order on their results.
func (e *Engine) Analyze(ctx context.Context, text string) (Analysis, error) {
	rec := perf.NewRecorder()
	log := e.logger.With(zap.String("request_id", rec.RequestID()))
	var a Analysis

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	first := []struct {
		stage perf.Stage
		run   func()
	}{
		{perf.Tokenization, func() { a.Tokens = e.comp.Tokenizer.Tokenize(text) }},
		{perf.Complexity, func() { a.Complexity = complexity.Analyze(text) }},
		{perf.Preprocessing, func() { a.Preprocessing = preprocess.Process(text) }},
		{perf.IdeaAnalysis, func() { a.Ideas = e.comp.Ideas.Analyze(text) }},
	}
	for _, s := range first {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return runStage(rec, s.stage, s.run)
		})
	}
	if err := g.Wait(); err != nil {
		log.Warn("analysis failed", zap.Error(err))
		return Analysis{}, err
	}

	second := []struct {
		stage perf.Stage
		run   func()
	}{
		{perf.TaskGraph, func() { a.TaskGraph = e.comp.Extractor.Extract(text, a.Ideas.Assignments()) }},
		{perf.Insights, func() { a.Insights = insights.Generate(a.Complexity, a.Ideas, a.Tokens) }},
		{perf.Grading, func() {
			a.Grade = e.comp.Grader.Grade(grade.Input{Complexity: a.Complexity, Ideas: a.Ideas, Graph: a.TaskGraph})
		}},
	}
	for _, s := range second {
		if err := ctx.Err(); err != nil {
			return Analysis{}, err
		}
		if err := runStage(rec, s.stage, s.run); err != nil {
			log.Warn("analysis failed", zap.Error(err))
			return Analysis{}, err
		}
	}

	a.Performance = rec.Finish()
	log.Debug("analysis complete",
		zap.Int("words", a.Complexity.Words),
		zap.Int("tasks", a.TaskGraph.TotalTasks),
		zap.String("grade", a.Grade.Overall.Grade),
		zap.Float64("total_ms", a.Performance.TotalMS),
		zap.Any("stages_ms", a.Performance.Stages))
	return metric.Materialize(a), nil
}

// runStage times fn and turns a panic into ErrStagePanic.
func runStage(rec *perf.Recorder, stage perf.Stage, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: %v", internalerr.ErrStagePanic, stage, r)
		}
	}()
	defer rec.Track(stage)()
	fn()
	return nil
}
