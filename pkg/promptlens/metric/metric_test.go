package metric

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricJSONShape(t *testing.T) {
	m := Count(3, "Number of sentences", "Split long prompts into steps")

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, float64(3), got["value"])
	assert.Equal(t, "count", got["scale"])
	assert.Equal(t, "Number of sentences", got["help_text"])
	assert.Equal(t, "Split long prompts into steps", got["practical_application"])
}

func TestScaleMatchesValueType(t *testing.T) {
	cases := []struct {
		m     Metric
		scale Scale
		check func(any) bool
	}{
		{Count(1, "", ""), ScaleCount, func(v any) bool { _, ok := v.(int); return ok }},
		{Ratio(0.5, "", ""), ScaleRatio, func(v any) bool { _, ok := v.(float64); return ok }},
		{Score(50, "", ""), ScaleScore, func(v any) bool { _, ok := v.(float64); return ok }},
		{Index(-1.2, "", ""), ScaleIndex, func(v any) bool { _, ok := v.(float64); return ok }},
		{Label("x", "", ""), ScaleLabel, func(v any) bool { _, ok := v.(string); return ok }},
		{List([]string{"a"}, "", ""), ScaleList, func(v any) bool { _, ok := v.([]string); return ok }},
		{Map(map[string]int{"a": 1}, "", ""), ScaleMap, func(v any) bool { _, ok := v.(map[string]int); return ok }},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.scale, tc.m.Scale())
		assert.True(t, tc.check(tc.m.Value()), "value type mismatch for scale %s", tc.scale)
	}
}

func TestRatioAndScoreClamp(t *testing.T) {
	assert.Equal(t, 1.0, Ratio(1.7, "", "").Value())
	assert.Equal(t, 0.0, Ratio(-0.2, "", "").Value())
	assert.Equal(t, 100.0, Score(130, "", "").Value())
	assert.Equal(t, 0.0, Score(-4, "", "").Value())
}

func TestNilCollectionsBecomeEmpty(t *testing.T) {
	var names []string
	var counts map[string]int

	data, err := json.Marshal(Set{
		"names":  List(names, "", ""),
		"counts": Map(counts, "", ""),
	})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"value":[]`)
	assert.Contains(t, string(data), `"value":{}`)
	assert.NotContains(t, string(data), "null")
}

type inner struct {
	Items []int          `json:"items"`
	Tags  map[string]int `json:"tags"`
}

type outer struct {
	Name     string   `json:"name"`
	Inner    inner    `json:"inner"`
	Children []inner  `json:"children"`
	Optional *string  `json:"optional"`
	Any      any      `json:"any"`
	Nested   [][]int  `json:"nested"`
	Ptr      *inner   `json:"ptr"`
	Words    []string `json:"words"`
}

func TestMaterializeWalksNestedValues(t *testing.T) {
	v := Materialize(outer{
		Children: []inner{{}},
		Any:      inner{},
		Nested:   [][]int{nil},
		Ptr:      &inner{},
	})

	data, err := json.Marshal(v)
	require.NoError(t, err)

	// Only the optional pointer is allowed to stay null.
	assert.Equal(t, 1, strings.Count(string(data), "null"), string(data))
	assert.NotNil(t, v.Inner.Items)
	assert.NotNil(t, v.Children[0].Tags)
	assert.NotNil(t, v.Nested[0])
	assert.NotNil(t, v.Ptr.Items)
	assert.NotNil(t, v.Words)
}
