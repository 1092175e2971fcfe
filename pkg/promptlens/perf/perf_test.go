package perf

import (
	"sync"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock advances by step on every reading.
func fakeClock(step time.Duration) func() time.Time {
	var mu sync.Mutex
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(step)
		return t
	}
}

func TestRequestIDIsULID(t *testing.T) {
	a, b := NewRecorder(), NewRecorder()
	_, err := ulid.ParseStrict(a.RequestID())
	require.NoError(t, err)
	assert.NotEqual(t, a.RequestID(), b.RequestID())
}

func TestTrackAndFinish(t *testing.T) {
	r := NewRecorder()
	r.now = fakeClock(time.Millisecond)
	r.started = r.now()

	r.Track(Tokenization)()
	r.Record(Complexity, 3*time.Millisecond)
	r.Record(TaskGraph, 2*time.Millisecond)
	r.Record(Grading, 500*time.Microsecond)

	m := r.Finish()
	assert.Equal(t, r.RequestID(), m.RequestID)
	assert.Equal(t, map[string]float64{
		"tokenization":        1,
		"complexity_analysis": 3,
		"task_graph":          2,
		"grading":             0.5,
	}, m.Stages)
	assert.Equal(t, 3.0, m.ParallelTierMS)
	assert.Equal(t, 2.5, m.SequentialTierMS)
	assert.Greater(t, m.TotalMS, 0.0)
}

func TestConcurrentStagesUseOwnSlots(t *testing.T) {
	r := NewRecorder()
	var wg sync.WaitGroup
	for _, s := range []Stage{Tokenization, Complexity, Preprocessing, IdeaAnalysis} {
		wg.Add(1)
		go func(s Stage) {
			defer wg.Done()
			r.Record(s, time.Duration(s+1)*time.Millisecond)
		}(s)
	}
	wg.Wait()

	m := r.Finish()
	assert.Len(t, m.Stages, 4)
	assert.Equal(t, 4.0, m.ParallelTierMS)
}

func TestUnknownStageIsIgnored(t *testing.T) {
	r := NewRecorder()
	r.Record(Stage(99), time.Second)
	assert.Empty(t, r.Finish().Stages)
	assert.Equal(t, "unknown", Stage(-1).String())
	assert.Equal(t, "insights", Insights.String())
}

func TestMetricsEnvelope(t *testing.T) {
	set := NewRecorder().Finish().Metrics()
	for _, key := range []string{"request_id", "stage_durations", "parallel_tier", "sequential_tier", "total"} {
		assert.Contains(t, set, key)
	}
}
