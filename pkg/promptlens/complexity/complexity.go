// Package complexity computes sentence, word and syllable statistics and the
// standard readability indices over a text.
package complexity

import (
	"math"
	"strings"
	"unicode"

	"github.com/cognicore/promptlens/pkg/promptlens/textstat"
)

// WordsPerMinute is the adult silent reading speed used for reading time.
const WordsPerMinute = 238

// SMOGMinSentences is the smallest sample SMOG is defined for.
const SMOGMinSentences = 30

// Word complexity buckets.
const (
	BucketSimple      = "simple"
	BucketModerate    = "moderate"
	BucketComplex     = "complex"
	BucketVeryComplex = "very_complex"
)

// Result holds the surface statistics and readability indices of a text.
// Every index is zero when the text has no words.
type Result struct {
	Sentences     int `json:"sentences"`
	Words         int `json:"words"`
	Syllables     int `json:"syllables"`
	Characters    int `json:"characters"` // letters and digits inside words
	Letters       int `json:"letters"`
	UniqueWords   int `json:"unique_words"`
	ComplexWords  int `json:"complex_words"` // three or more syllables
	LongestLength int `json:"longest_sentence_words"`

	AvgSentenceLength   float64 `json:"avg_sentence_length"`
	AvgSyllablesPerWord float64 `json:"avg_syllables_per_word"`
	AvgWordLength       float64 `json:"avg_word_length"`

	FleschKincaidGrade float64 `json:"flesch_kincaid_grade"`
	FleschReadingEase  float64 `json:"flesch_reading_ease"`
	ARI                float64 `json:"automated_readability_index"`
	ColemanLiau        float64 `json:"coleman_liau_index"`
	GunningFog         float64 `json:"gunning_fog"`
	SMOG               float64 `json:"smog_index"`
	SMOGApplicable     bool    `json:"smog_applicable"`

	LexicalDiversity   float64        `json:"lexical_diversity"`
	SentenceComplexity float64        `json:"sentence_complexity"`
	SentenceScores     []float64      `json:"sentence_scores"`
	WordComplexity     map[string]int `json:"word_complexity"`

	ConsensusGrade     float64 `json:"consensus_grade"`
	ReadingTimeMinutes float64 `json:"reading_time_minutes"`
	Difficulty         string  `json:"difficulty"`
}

// Analyze computes every statistic for text.
func Analyze(text string) Result {
	sentences := textstat.Sentences(text)
	words := textstat.Words(text)

	res := Result{
		Sentences:      len(sentences),
		Words:          len(words),
		SentenceScores: make([]float64, 0, len(sentences)),
		WordComplexity: map[string]int{
			BucketSimple:      0,
			BucketModerate:    0,
			BucketComplex:     0,
			BucketVeryComplex: 0,
		},
	}

	unique := make(map[string]struct{}, len(words))
	for _, w := range words {
		syl := textstat.Syllables(w)
		res.Syllables += syl
		if syl >= 3 {
			res.ComplexWords++
		}
		letters, alnum := countLetters(w)
		res.Letters += letters
		res.Characters += alnum
		unique[strings.ToLower(w)] = struct{}{}
		res.WordComplexity[bucket(alnum, syl)]++
	}
	res.UniqueWords = len(unique)

	for _, s := range sentences {
		score := sentenceScore(s)
		res.SentenceScores = append(res.SentenceScores, textstat.Round(score, 2))
		res.SentenceComplexity += score
		if n := len(textstat.Words(s)); n > res.LongestLength {
			res.LongestLength = n
		}
	}
	res.SentenceComplexity = textstat.Ratio(res.SentenceComplexity, float64(len(sentences)))

	if res.Words == 0 || res.Sentences == 0 {
		res.Difficulty = "No content"
		return res
	}

	W := float64(res.Words)
	S := float64(res.Sentences)
	Y := float64(res.Syllables)
	C := float64(res.Characters)
	L := float64(res.Letters)

	res.AvgSentenceLength = W / S
	res.AvgSyllablesPerWord = Y / W
	res.AvgWordLength = C / W
	res.LexicalDiversity = float64(res.UniqueWords) / W

	res.FleschKincaidGrade = FleschKincaidGrade(W, S, Y)
	res.FleschReadingEase = FleschReadingEase(W, S, Y)
	res.ARI = AutomatedReadabilityIndex(C, W, S)
	res.ColemanLiau = ColemanLiau(L, W, S)
	res.GunningFog = GunningFog(W, S, float64(res.ComplexWords))
	if res.Sentences >= SMOGMinSentences {
		res.SMOGApplicable = true
		res.SMOG = SMOG(float64(res.ComplexWords), S)
	}

	res.ConsensusGrade = res.consensus()
	res.ReadingTimeMinutes = W / WordsPerMinute
	res.Difficulty = Difficulty(res.FleschReadingEase)
	return res
}

// FleschKincaidGrade = 0.39·W/S + 11.8·Y/W − 15.59
func FleschKincaidGrade(words, sentences, syllables float64) float64 {
	if words == 0 || sentences == 0 {
		return 0
	}
	return 0.39*(words/sentences) + 11.8*(syllables/words) - 15.59
}

// FleschReadingEase = 206.835 − 1.015·W/S − 84.6·Y/W
func FleschReadingEase(words, sentences, syllables float64) float64 {
	if words == 0 || sentences == 0 {
		return 0
	}
	return 206.835 - 1.015*(words/sentences) - 84.6*(syllables/words)
}

// AutomatedReadabilityIndex = 4.71·C/W + 0.5·W/S − 21.43
func AutomatedReadabilityIndex(chars, words, sentences float64) float64 {
	if words == 0 || sentences == 0 {
		return 0
	}
	return 4.71*(chars/words) + 0.5*(words/sentences) - 21.43
}

// ColemanLiau = 0.0588·(L/W·100) − 0.296·(S/W·100) − 15.8
func ColemanLiau(letters, words, sentences float64) float64 {
	if words == 0 {
		return 0
	}
	return 0.0588*(letters/words*100) - 0.296*(sentences/words*100) - 15.8
}

// GunningFog = 0.4·(W/S + 100·Complex/W)
func GunningFog(words, sentences, complexWords float64) float64 {
	if words == 0 || sentences == 0 {
		return 0
	}
	return 0.4 * (words/sentences + 100*complexWords/words)
}

// SMOG = 1.043·√(Poly·30/S) + 3.1291
func SMOG(polysyllables, sentences float64) float64 {
	if sentences == 0 {
		return 0
	}
	return 1.043*math.Sqrt(polysyllables*30/sentences) + 3.1291
}

// Difficulty labels a Flesch Reading Ease score with its conventional band.
func Difficulty(ease float64) string {
	switch {
	case ease >= 90:
		return "Very Easy"
	case ease >= 80:
		return "Easy"
	case ease >= 70:
		return "Fairly Easy"
	case ease >= 60:
		return "Standard"
	case ease >= 50:
		return "Fairly Difficult"
	case ease >= 30:
		return "Difficult"
	default:
		return "Very Confusing"
	}
}

// consensus averages the grade-level indices, SMOG included only when it
// was computed.
func (r Result) consensus() float64 {
	sum := r.FleschKincaidGrade + r.ARI + r.ColemanLiau + r.GunningFog
	n := 4.0
	if r.SMOGApplicable {
		sum += r.SMOG
		n++
	}
	return sum / n
}

// sentenceScore = 0.3·words + 0.2·syllables + 1.0[comma] + 1.5[semicolon]
func sentenceScore(sentence string) float64 {
	words := textstat.Words(sentence)
	syllables := 0
	for _, w := range words {
		syllables += textstat.Syllables(w)
	}
	score := 0.3*float64(len(words)) + 0.2*float64(syllables)
	if strings.Contains(sentence, ",") {
		score += 1.0
	}
	if strings.Contains(sentence, ";") {
		score += 1.5
	}
	return score
}

func bucket(length, syllables int) string {
	switch {
	case length <= 6 && syllables <= 2:
		return BucketSimple
	case length <= 8 && syllables <= 3:
		return BucketModerate
	case length <= 12 && syllables <= 4:
		return BucketComplex
	default:
		return BucketVeryComplex
	}
}

func countLetters(word string) (letters, alnum int) {
	for _, r := range word {
		switch {
		case unicode.IsLetter(r):
			letters++
			alnum++
		case unicode.IsDigit(r):
			alnum++
		}
	}
	return letters, alnum
}
