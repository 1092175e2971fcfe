package complexity

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 0.01

func TestAnalyzeKnownSentence(t *testing.T) {
	res := Analyze("The cat sat on the mat.")

	require.Equal(t, 1, res.Sentences)
	require.Equal(t, 6, res.Words)
	require.Equal(t, 6, res.Syllables)
	require.Equal(t, 17, res.Letters)
	require.Equal(t, 17, res.Characters)

	assert.InDelta(t, -1.45, res.FleschKincaidGrade, tolerance)
	assert.InDelta(t, 116.145, res.FleschReadingEase, tolerance)
	assert.InDelta(t, -5.085, res.ARI, tolerance)
	assert.InDelta(t, -4.0733, res.ColemanLiau, tolerance)
	assert.InDelta(t, 2.4, res.GunningFog, tolerance)
	assert.False(t, res.SMOGApplicable)
	assert.Zero(t, res.SMOG)

	assert.InDelta(t, 5.0/6.0, res.LexicalDiversity, tolerance) // "the" repeats
	assert.InDelta(t, 0.3*6+0.2*6, res.SentenceComplexity, tolerance)
	assert.Equal(t, 6, res.WordComplexity[BucketSimple])
	assert.Equal(t, "Very Easy", res.Difficulty)
}

func TestFormulas(t *testing.T) {
	// 100 words, 5 sentences, 150 syllables, 10 complex words
	assert.InDelta(t, 0.39*20+11.8*1.5-15.59, FleschKincaidGrade(100, 5, 150), tolerance)
	assert.InDelta(t, 206.835-1.015*20-84.6*1.5, FleschReadingEase(100, 5, 150), tolerance)
	assert.InDelta(t, 4.71*4.5+0.5*20-21.43, AutomatedReadabilityIndex(450, 100, 5), tolerance)
	assert.InDelta(t, 0.0588*440-0.296*5-15.8, ColemanLiau(440, 100, 5), tolerance)
	assert.InDelta(t, 0.4*(20+10), GunningFog(100, 5, 10), tolerance)
	assert.InDelta(t, 1.043*3+3.1291, SMOG(9, 30), tolerance)
}

func TestFormulasGuardZeroDivision(t *testing.T) {
	assert.Zero(t, FleschKincaidGrade(0, 0, 0))
	assert.Zero(t, FleschReadingEase(10, 0, 12))
	assert.Zero(t, AutomatedReadabilityIndex(0, 0, 1))
	assert.Zero(t, ColemanLiau(5, 0, 1))
	assert.Zero(t, GunningFog(0, 1, 0))
	assert.Zero(t, SMOG(3, 0))
}

func TestAnalyzeEmptyText(t *testing.T) {
	for _, text := range []string{"", "   \n\t", "!!! ..."} {
		res := Analyze(text)
		assert.Zero(t, res.Words, "text %q", text)
		assert.Zero(t, res.FleschReadingEase)
		assert.Zero(t, res.ConsensusGrade)
		assert.NotNil(t, res.SentenceScores)
		assert.Len(t, res.WordComplexity, 4)
		assert.Equal(t, "No content", res.Difficulty)
	}
}

func TestSMOGNeedsThirtySentences(t *testing.T) {
	short := Analyze(strings.Repeat("Readability matters. ", 29))
	assert.False(t, short.SMOGApplicable)

	long := Analyze(strings.Repeat("Readability matters. ", 30))
	require.True(t, long.SMOGApplicable)
	// 30 sentences, one polysyllable each: 1.043·√30 + 3.1291
	assert.InDelta(t, 8.8418, long.SMOG, tolerance)
	assert.InDelta(t, (long.FleschKincaidGrade+long.ARI+long.ColemanLiau+long.GunningFog+long.SMOG)/5, long.ConsensusGrade, tolerance)
}

func TestSentenceComplexityPunctuationBonus(t *testing.T) {
	plain := sentenceScore("Go home now.")
	withComma := sentenceScore("Go home, now.")
	withSemicolon := sentenceScore("Go home; now.")

	assert.InDelta(t, 1.0, withComma-plain, tolerance)
	assert.InDelta(t, 1.5, withSemicolon-plain, tolerance)
}

func TestWordComplexityBuckets(t *testing.T) {
	tests := []struct {
		length, syllables int
		want              string
	}{
		{3, 1, BucketSimple},
		{6, 2, BucketSimple},
		{7, 2, BucketModerate},
		{8, 3, BucketModerate},
		{6, 3, BucketModerate},
		{11, 4, BucketComplex},
		{13, 4, BucketVeryComplex},
		{10, 5, BucketVeryComplex},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, bucket(tt.length, tt.syllables), "len=%d syl=%d", tt.length, tt.syllables)
	}
}

func TestDifficultyBands(t *testing.T) {
	assert.Equal(t, "Very Confusing", Difficulty(12))
	assert.Equal(t, "Difficult", Difficulty(30))
	assert.Equal(t, "Standard", Difficulty(65))
	assert.Equal(t, "Very Easy", Difficulty(116))
}

func TestMetricsEnvelope(t *testing.T) {
	set := Analyze("The cat sat on the mat.").Metrics()

	data, err := json.Marshal(set)
	require.NoError(t, err)

	var decoded map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	fk := decoded["flesch_kincaid_grade"]
	require.NotNil(t, fk)
	assert.Equal(t, "grade_level", fk["scale"])
	assert.InDelta(t, -1.45, fk["value"].(float64), tolerance)
	assert.NotEmpty(t, fk["help_text"])
	assert.NotEmpty(t, fk["practical_application"])

	assert.Equal(t, "not_applicable", decoded["smog_applicable"]["value"])
	assert.Equal(t, "list", decoded["sentence_scores"]["scale"])
}
