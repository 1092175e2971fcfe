package promptlens

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cognicore/promptlens/pkg/promptlens/config"
	"github.com/cognicore/promptlens/pkg/promptlens/internalerr"
	"github.com/cognicore/promptlens/pkg/promptlens/perf"
)

const loginPrompt = "Build a login page. Then add password reset. Finally write tests."

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// decode runs analyze through ProcessText and parses the document.
func decode(t *testing.T, text string) map[string]map[string]map[string]any {
	t.Helper()
	res := ProcessText(OpAnalyze, text)
	require.True(t, res.Success, res.Error)
	var doc map[string]map[string]map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.Data), &doc))
	return doc
}

func value(doc map[string]map[string]map[string]any, section, key string) any {
	return doc[section][key]["value"]
}

func TestDocumentSections(t *testing.T) {
	doc := decode(t, loginPrompt)
	for _, section := range []string{
		"complexity_metrics", "tokens", "preprocessing", "performance_metrics",
		"idea_analysis", "insights", "task_graph", "grading",
	} {
		assert.Contains(t, doc, section)
	}
	assert.Len(t, doc, 8)

	for section, set := range doc {
		for key, m := range set {
			for _, field := range []string{"value", "scale", "help_text", "practical_application"} {
				assert.Contains(t, m, field, "%s.%s", section, key)
			}
		}
	}
}

func TestLoginPageScenario(t *testing.T) {
	doc := decode(t, loginPrompt)

	assert.Equal(t, 3.0, value(doc, "task_graph", "total_tasks"))
	assert.Equal(t, []any{"task_1"}, value(doc, "task_graph", "root_tasks"))
	assert.Len(t, value(doc, "task_graph", "critical_path"), 3)

	pg, ok := value(doc, "grading", "prompt_grade").(map[string]any)
	require.True(t, ok)
	overall := pg["overall_grade"].(map[string]any)
	assert.NotEmpty(t, overall["grade"])
	assert.Nil(t, pg["task_complexity"].(map[string]any)["grade"])
	assert.NotNil(t, pg["clarity"].(map[string]any)["grade"])
}

func TestEmptyInput(t *testing.T) {
	doc := decode(t, "")

	assert.Equal(t, 0.0, value(doc, "task_graph", "total_tasks"))
	assert.Equal(t, 0.0, value(doc, "complexity_metrics", "word_count"))
	assert.Equal(t, 0.0, value(doc, "idea_analysis", "unique_ideas"))
	assert.Equal(t, 0.0, value(doc, "tokens", "word_count"))

	// list and map envelopes are never null
	for section, set := range doc {
		for key, m := range set {
			switch m["scale"] {
			case "list":
				assert.IsType(t, []any{}, m["value"], "%s.%s", section, key)
			case "map", "report":
				assert.IsType(t, map[string]any{}, m["value"], "%s.%s", section, key)
			}
		}
	}

	pg := value(doc, "grading", "prompt_grade").(map[string]any)
	assert.IsType(t, []any{}, pg["suggestions"])
	assert.IsType(t, []any{}, pg["strengths"])
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	text := "Design the checkout page. Then integrate the payment API, because users need it. " +
		"What currency should we support? I think we should ensure refunds work!"
	a, b := decode(t, text), decode(t, text)
	delete(a, "performance_metrics")
	delete(b, "performance_metrics")
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("analysis differs between runs (-first +second):\n%s", diff)
	}
}

func TestConcurrentAnalyze(t *testing.T) {
	engine, err := New(Options{})
	require.NoError(t, err)

	var wg sync.WaitGroup
	ids := make([]string, 8)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a, err := engine.Analyze(context.Background(), loginPrompt)
			if assert.NoError(t, err) {
				ids[i] = a.Performance.RequestID
				assert.Equal(t, 3, a.TaskGraph.TotalTasks)
			}
		}(i)
	}
	wg.Wait()

	seen := map[string]bool{}
	for _, id := range ids {
		assert.False(t, seen[id], "duplicate request id %s", id)
		seen[id] = true
	}
}

func TestSingleWorker(t *testing.T) {
	cfg := config.Default()
	cfg.Concurrency = 1
	engine, err := New(Options{Config: &cfg})
	require.NoError(t, err)

	a, err := engine.Analyze(context.Background(), loginPrompt)
	require.NoError(t, err)
	assert.Len(t, a.Performance.Stages, 7)
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Default().Analyze(ctx, loginPrompt)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStagePanicIsRecovered(t *testing.T) {
	err := runStage(perf.NewRecorder(), perf.Grading, func() { panic("boom") })
	require.Error(t, err)
	assert.True(t, errors.Is(err, internalerr.ErrStagePanic))
	assert.Contains(t, err.Error(), "grading")
	assert.Contains(t, err.Error(), "boom")
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Concurrency = 16
	_, err := New(Options{Config: &cfg})
	assert.ErrorIs(t, err, internalerr.ErrInvalidConfig)
}

func TestDebugLogCarriesRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	engine, err := New(Options{Logger: zap.New(core)})
	require.NoError(t, err)

	a, err := engine.Analyze(context.Background(), loginPrompt)
	require.NoError(t, err)

	entries := logs.FilterMessage("analysis complete").All()
	require.Len(t, entries, 1)
	assert.Equal(t, a.Performance.RequestID, entries[0].ContextMap()["request_id"])
	assert.Equal(t, int64(3), entries[0].ContextMap()["tasks"])
}

func TestWordCount(t *testing.T) {
	res := ProcessText(OpWordCount, "Hello world.")
	assert.Equal(t, Result{Success: true, Data: "2 words • 12 characters • 1 sentences"}, res)
	assert.Equal(t, "0 words • 0 characters • 0 sentences", WordCount(""))
}

func TestStringOperations(t *testing.T) {
	tests := []struct {
		op, in, want string
	}{
		{OpUppercase, "Hello", "HELLO"},
		{OpLowercase, "Hello", "hello"},
		{OpTrim, "  Hello \n", "Hello"},
	}
	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			assert.Equal(t, Result{Success: true, Data: tt.want}, ProcessText(tt.op, tt.in))
		})
	}
}

func TestUnknownOperation(t *testing.T) {
	res := ProcessText("reverse", "abc")
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "unknown operation")
	assert.Contains(t, res.Error, "reverse")
}

func TestProcessArgs(t *testing.T) {
	res := ProcessArgs([]string{OpUppercase})
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "invalid arguments")
	assert.Contains(t, res.Error, "got 1")

	assert.False(t, ProcessArgs(nil).Success)
	assert.Equal(t, Result{Success: true, Data: "ABC"}, ProcessArgs([]string{OpUppercase, "abc"}))
}

func TestResultJSON(t *testing.T) {
	data, err := json.Marshal(ProcessText("nope", ""))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"data":"","error":"unknown operation: \"nope\""}`, string(data))
}
