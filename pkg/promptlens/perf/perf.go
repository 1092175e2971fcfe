// Package perf records per-request stage timings.
package perf

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Stage names one timed step of an analysis.
type Stage int

const (
	Tokenization Stage = iota
	Complexity
	Preprocessing
	IdeaAnalysis
	TaskGraph
	Insights
	Grading
	numStages
)

var stageNames = [numStages]string{
	Tokenization:  "tokenization",
	Complexity:    "complexity_analysis",
	Preprocessing: "preprocessing",
	IdeaAnalysis:  "idea_analysis",
	TaskGraph:     "task_graph",
	Insights:      "insights",
	Grading:       "grading",
}

func (s Stage) String() string {
	if s < 0 || s >= numStages {
		return "unknown"
	}
	return stageNames[s]
}

// Recorder collects the durations of one request. Every stage owns its own
// slot, so concurrent stages may record without locking as long as no two
// goroutines record the same stage.
type Recorder struct {
	id        string
	started   time.Time
	durations [numStages]time.Duration
	recorded  [numStages]bool
	now       func() time.Time
}

// NewRecorder starts timing a request under a fresh ULID.
func NewRecorder() *Recorder {
	r := &Recorder{id: ulid.Make().String(), now: time.Now}
	r.started = r.now()
	return r
}

// RequestID returns the request's ULID.
func (r *Recorder) RequestID() string { return r.id }

// Record stores the duration of a stage.
func (r *Recorder) Record(s Stage, d time.Duration) {
	if s < 0 || s >= numStages {
		return
	}
	r.durations[s] = d
	r.recorded[s] = true
}

// Track starts timing a stage and returns the func that stops it:
//
//	defer rec.Track(perf.Grading)()
func (r *Recorder) Track(s Stage) func() {
	start := r.now()
	return func() { r.Record(s, r.now().Sub(start)) }
}

// Finish freezes the recorder into a report. Call it once, after every stage
// has returned.
func (r *Recorder) Finish() Metrics {
	m := Metrics{
		RequestID: r.id,
		Stages:    make(map[string]float64, numStages),
		TotalMS:   ms(r.now().Sub(r.started)),
	}
	for s := Stage(0); s < numStages; s++ {
		if r.recorded[s] {
			m.Stages[s.String()] = ms(r.durations[s])
		}
	}
	first := []Stage{Tokenization, Complexity, Preprocessing, IdeaAnalysis}
	for _, s := range first {
		if v := ms(r.durations[s]); v > m.ParallelTierMS {
			m.ParallelTierMS = v
		}
	}
	for _, s := range []Stage{TaskGraph, Insights, Grading} {
		m.SequentialTierMS += ms(r.durations[s])
	}
	return m
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// Metrics is the finished timing report of one request.
type Metrics struct {
	RequestID        string             `json:"request_id"`
	Stages           map[string]float64 `json:"stage_durations_ms"`
	ParallelTierMS   float64            `json:"parallel_tier_ms"`
	SequentialTierMS float64            `json:"sequential_tier_ms"`
	TotalMS          float64            `json:"total_ms"`
}
