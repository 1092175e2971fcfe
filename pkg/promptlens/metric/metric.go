// Package metric wraps analysis outputs in self-describing envelopes.
//
// Every number or structure the engine reports travels as a Metric: the value
// plus the scale it is measured on, a help text and a hint on how to act on it.
// Envelopes are immutable once built.
package metric

import (
	"encoding/json"
	"math"
)

// Scale names the unit a Metric value is expressed in.
type Scale string

const (
	ScaleCount        Scale = "count"
	ScaleRatio        Scale = "ratio"
	ScaleScore        Scale = "score"
	ScaleIndex        Scale = "index"
	ScaleGradeLevel   Scale = "grade_level"
	ScaleMilliseconds Scale = "milliseconds"
	ScaleLabel        Scale = "label"
	ScaleList         Scale = "list"
	ScaleMap          Scale = "map"
	ScaleReport       Scale = "report"
)

// Metric is a value with descriptive metadata for downstream display.
type Metric struct {
	value       any
	scale       Scale
	help        string
	application string
}

// Set is a named group of metrics, serialized with sorted keys.
type Set map[string]Metric

// Count wraps an integer count.
func Count(n int, help, application string) Metric {
	return Metric{value: n, scale: ScaleCount, help: help, application: application}
}

// Ratio wraps a fraction clamped to [0,1].
func Ratio(v float64, help, application string) Metric {
	return Metric{value: round(clamp(v, 0, 1), 4), scale: ScaleRatio, help: help, application: application}
}

// Score wraps a 0-100 score.
func Score(v float64, help, application string) Metric {
	return Metric{value: round(clamp(v, 0, 100), 2), scale: ScaleScore, help: help, application: application}
}

// Index wraps an unbounded index such as a readability formula result.
func Index(v float64, help, application string) Metric {
	return Metric{value: round(v, 2), scale: ScaleIndex, help: help, application: application}
}

// GradeLevel wraps a school grade level estimate.
func GradeLevel(v float64, help, application string) Metric {
	return Metric{value: round(v, 2), scale: ScaleGradeLevel, help: help, application: application}
}

// Milliseconds wraps a duration expressed in milliseconds.
func Milliseconds(v float64, help, application string) Metric {
	return Metric{value: round(v, 3), scale: ScaleMilliseconds, help: help, application: application}
}

// Label wraps a categorical string value.
func Label(s, help, application string) Metric {
	return Metric{value: s, scale: ScaleLabel, help: help, application: application}
}

// List wraps a slice. A nil slice is reported as an empty list.
func List[T any](items []T, help, application string) Metric {
	if items == nil {
		items = []T{}
	}
	return Metric{value: Materialize(items), scale: ScaleList, help: help, application: application}
}

// Map wraps a string-keyed map. A nil map is reported as an empty object.
func Map[V any](m map[string]V, help, application string) Metric {
	if m == nil {
		m = map[string]V{}
	}
	return Metric{value: Materialize(m), scale: ScaleMap, help: help, application: application}
}

// Report wraps a structured value such as a grade report.
func Report[T any](v T, help, application string) Metric {
	return Metric{value: Materialize(v), scale: ScaleReport, help: help, application: application}
}

// Value returns the wrapped value.
func (m Metric) Value() any { return m.value }

// Scale returns the scale of the wrapped value.
func (m Metric) Scale() Scale { return m.scale }

// HelpText describes what the value measures.
func (m Metric) HelpText() string { return m.help }

// PracticalApplication describes how to act on the value.
func (m Metric) PracticalApplication() string { return m.application }

type wire struct {
	Value                any    `json:"value"`
	Scale                Scale  `json:"scale"`
	HelpText             string `json:"help_text"`
	PracticalApplication string `json:"practical_application"`
}

// MarshalJSON renders the envelope as {value, scale, help_text, practical_application}.
func (m Metric) MarshalJSON() ([]byte, error) {
	return json.Marshal(wire{
		Value:                m.value,
		Scale:                m.scale,
		HelpText:             m.help,
		PracticalApplication: m.application,
	})
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

func round(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
