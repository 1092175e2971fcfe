// Package thresholds holds the cutoffs shared by the grader and the insight
// generator, so a recommendation fires exactly where a score starts to drop.
package thresholds

// Dimension score bands.
const (
	Strong        = 85.0
	Passing       = 70.0
	Failing       = 50.0
	TaskLoadHeavy = 75.0
)

// Suggestion priority bands: distance between a score and the threshold it
// misses.
const (
	MissHigh   = 20.0
	MissMedium = 10.0
)

// Readability.
const (
	FleschVeryDifficult = 30.0
	FleschDifficult     = 50.0
	FleschPlain         = 60.0
	GradeLevelTarget    = 8.0
	GradeLevelHigh      = 12.0
)

// Sentence shape.
const (
	SentenceLengthMin      = 8.0
	SentenceLengthMax      = 20.0
	SentenceLengthLong     = 25.0
	SentenceComplexityMax  = 6.0
	SentenceComplexityHigh = 10.0
)

// Vocabulary.
const (
	LexicalDiversityLow  = 0.4
	LexicalDiversityHigh = 0.8
	AccessibleWordsLow   = 0.7
)

// Ideas.
const (
	CoherenceLow    = 0.3
	IdeaDensityHigh = 0.8
	FocusedIdeasMax = 3
	BreadthNarrow   = 0.4
	BreadthWide     = 0.8
)

// Context and scope.
const (
	ContextWordsMin = 25
	ContextWordsMax = 300
	TasksMax        = 5
)
