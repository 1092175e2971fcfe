package tokenizer

import "github.com/cognicore/promptlens/pkg/promptlens/metric"

// Metrics wraps the tokenizer output in display envelopes.
func (r Result) Metrics() metric.Set {
	return metric.Set{
		"tokens": metric.List(r.Tokens,
			"Typed tokens in text order with byte offsets, syllables, frequency and lemma.",
			"Scan for unexpected symbol or url tokens; they often hide formatting noise."),
		"type_counts": metric.Map(r.TypeCounts,
			"Number of tokens of each type.",
			"A high symbol or punctuation share suggests pasted markup."),
		"total_tokens": metric.Count(r.TotalTokens,
			"Tokens of every type, whitespace included.",
			"Roughly tracks how much text the model has to read."),
		"word_count": metric.Count(r.WordCount,
			"Word and contraction tokens.",
			"Most effective prompts stay between 25 and 300 words."),
		"unique_words": metric.Count(r.UniqueWords,
			"Distinct case-folded words.",
			"Compare with word_count to spot repetition."),
		"stop_words": metric.Count(r.StopWords,
			"Words from the stopword list.",
			"A very high share means the prompt says little per word."),
		"ngrams": metric.Report(r.NGrams,
			"Most frequent 1- to 4-word sequences.",
			"Repeated bigrams and trigrams are the prompt's real key phrases."),
		"pos_distribution": metric.Report(r.POS,
			"Dictionary part-of-speech tags over word tokens.",
			"Few verbs usually means few actionable instructions."),
		"syntax": metric.List(r.Syntax,
			"Mood and clause type of every sentence.",
			"Mix questions and instructions deliberately, not by accident."),
		"syntax_mix": metric.Map(r.SyntaxMix,
			"Sentences per mood and clause type.",
			"Mostly complex clauses make a prompt harder to follow."),
		"entities": metric.List(r.Entities,
			"Capitalized spans; a surface heuristic, not named-entity recognition.",
			"Check that every name the task depends on is spelled consistently."),
		"sentiment": metric.Report(r.Sentiment,
			"Lexicon polarity: (positive - negative) / matched words.",
			"Strongly negative wording can make answers overly cautious."),
		"character_stats": metric.Report(r.Characters,
			"Character classes of the raw text.",
			"Non-ASCII characters can signal smart quotes or pasted symbols."),
		"lemmas": metric.Map(r.Lemmas,
			"Word counts grouped by lemma.",
			"The top lemmas are what the prompt is about."),
	}
}
