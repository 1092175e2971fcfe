package grade

import "math"

// cutoff is the lowest score that earns a letter.
type cutoff struct {
	min    float64
	letter string
}

// Cutoffs are inclusive lower bounds, except D- which needs a score strictly
// above 56 so that 56.0 is an F and 56.1 a D-.
var cutoffs = []cutoff{
	{95, "A+"},
	{90, "A"},
	{87, "A-"},
	{84, "B+"},
	{80, "B"},
	{77, "B-"},
	{74, "C+"},
	{70, "C"},
	{67, "C-"},
	{64, "D+"},
	{60, "D"},
}

// Letter maps a 0-100 score to its letter grade.
func Letter(score float64) string {
	for _, c := range cutoffs {
		if score >= c.min {
			return c.letter
		}
	}
	if score > 56 {
		return "D-"
	}
	return "F"
}

// Percentile places a score on a normal model of prompt scores
// (mean 65, standard deviation 12) and returns the share of prompts it beats.
func Percentile(score float64) float64 {
	const mean, sd = 65.0, 12.0
	p := 0.5 * (1 + math.Erf((score-mean)/(sd*math.Sqrt2)))
	return math.Round(p*1000) / 10
}
