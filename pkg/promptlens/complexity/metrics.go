package complexity

import "github.com/cognicore/promptlens/pkg/promptlens/metric"

// AccessibleShare is the fraction of words in the simple or moderate bucket.
func (r Result) AccessibleShare() float64 {
	if r.Words == 0 {
		return 0
	}
	return float64(r.WordComplexity[BucketSimple]+r.WordComplexity[BucketModerate]) / float64(r.Words)
}

// Metrics wraps the result in display envelopes keyed by metric name.
func (r Result) Metrics() metric.Set {
	set := metric.Set{
		"sentence_count": metric.Count(r.Sentences,
			"Number of sentences, split on . ! or ? followed by whitespace.",
			"Very few long sentences usually read worse than several short ones."),
		"word_count": metric.Count(r.Words,
			"Number of words.",
			"Longer prompts need more structure to stay readable."),
		"syllable_count": metric.Count(r.Syllables,
			"Estimated syllables across all words.",
			"Feeds every syllable-based readability formula."),
		"complex_word_count": metric.Count(r.ComplexWords,
			"Words with three or more syllables.",
			"Swap long words for plain ones where meaning allows."),
		"unique_word_count": metric.Count(r.UniqueWords,
			"Distinct words, case-folded.",
			"Compare with word_count to spot repetition."),
		"avg_sentence_length": metric.Index(r.AvgSentenceLength,
			"Average words per sentence.",
			"Aim for 15-20 words; split sentences well above 25."),
		"avg_syllables_per_word": metric.Index(r.AvgSyllablesPerWord,
			"Average syllables per word.",
			"Values above 1.7 signal dense vocabulary."),
		"avg_word_length": metric.Index(r.AvgWordLength,
			"Average letters and digits per word.",
			"Shorter words are faster to scan."),
		"flesch_kincaid_grade": metric.GradeLevel(r.FleschKincaidGrade,
			"Flesch-Kincaid Grade: 0.39·W/S + 11.8·Y/W − 15.59.",
			"Grade 8-10 suits most general audiences."),
		"flesch_reading_ease": metric.Index(r.FleschReadingEase,
			"Flesch Reading Ease: 206.835 − 1.015·W/S − 84.6·Y/W. Higher is easier.",
			"Below 30 is very hard to read; 60-70 is plain English."),
		"automated_readability_index": metric.GradeLevel(r.ARI,
			"Automated Readability Index: 4.71·C/W + 0.5·W/S − 21.43.",
			"Character based, so it rewards short words."),
		"coleman_liau_index": metric.GradeLevel(r.ColemanLiau,
			"Coleman-Liau: 0.0588·L − 0.296·S − 15.8 per 100 words.",
			"Character based grade estimate; cross-check with Flesch-Kincaid."),
		"gunning_fog": metric.GradeLevel(r.GunningFog,
			"Gunning Fog: 0.4·(W/S + 100·Complex/W).",
			"Above 12 is hard for a wide audience."),
		"smog_applicable": metric.Label(applicability(r.SMOGApplicable),
			"SMOG is only defined for samples of 30 sentences or more.",
			"Ignore smog_index when not applicable."),
		"smog_index": metric.GradeLevel(r.SMOG,
			"SMOG: 1.043·√(Poly·30/S) + 3.1291.",
			"Widely used for health and instructional text."),
		"lexical_diversity": metric.Ratio(r.LexicalDiversity,
			"Unique words divided by total words.",
			"Low values mean repetition; very high values in long text mean jargon drift."),
		"sentence_complexity": metric.Index(r.SentenceComplexity,
			"Mean of 0.3·words + 0.2·syllables + 1 per comma + 1.5 per semicolon, per sentence.",
			"Values above 10 point to sentences that should be split."),
		"sentence_scores": metric.List(r.SentenceScores,
			"Complexity score of each sentence in text order.",
			"Rewrite the highest scoring sentences first."),
		"word_complexity_distribution": metric.Map(r.WordComplexity,
			"Words bucketed by joint length and syllable thresholds.",
			"A large very_complex bucket hurts understandability."),
		"consensus_grade": metric.GradeLevel(r.ConsensusGrade,
			"Mean of the grade-level indices.",
			"One number to compare drafts by."),
		"reading_time_minutes": metric.Index(r.ReadingTimeMinutes,
			"Estimated silent reading time at 238 words per minute.",
			"Long prompts deserve a summary up front."),
		"difficulty": metric.Label(r.Difficulty,
			"Flesch Reading Ease band.",
			"Target Standard or easier for instructions."),
	}
	return set
}

func applicability(ok bool) string {
	if ok {
		return "applicable"
	}
	return "not_applicable"
}
