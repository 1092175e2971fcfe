package config

import (
	"fmt"

	"github.com/cognicore/promptlens/pkg/promptlens/grade"
	"github.com/cognicore/promptlens/pkg/promptlens/ideas"
	"github.com/cognicore/promptlens/pkg/promptlens/lexicon"
	"github.com/cognicore/promptlens/pkg/promptlens/taskgraph"
	"github.com/cognicore/promptlens/pkg/promptlens/tokenizer"
)

// Loader loads the lexicon and constructs the analysis components
type Loader struct {
	LexiconPath       string
	TopNGrams         int
	ClusterSimilarity float64
	StrengthsCount    int
}

// Components holds the components shared by every analysis
type Components struct {
	Lexicon   *lexicon.Lexicon
	Tokenizer *tokenizer.Tokenizer
	Ideas     *ideas.Analyzer
	Extractor *taskgraph.Extractor
	Grader    *grade.Grader
}

// Load reads the lexicon, if any, and returns initialized components
func (l *Loader) Load() (*Components, error) {
	comp := &Components{}

	// Load lexicon
	if l.LexiconPath != "" {
		lex, err := lexicon.LoadFromYAML(l.LexiconPath)
		if err != nil {
			return nil, fmt.Errorf("load lexicon: %w", err)
		}
		comp.Lexicon = lex
	} else {
		comp.Lexicon = lexicon.Default()
	}

	comp.Tokenizer = tokenizer.NewTokenizer(comp.Lexicon)
	comp.Tokenizer.SetTopK(l.TopNGrams)
	comp.Ideas = ideas.NewAnalyzer(comp.Lexicon, l.ClusterSimilarity)
	comp.Extractor = taskgraph.NewExtractor(comp.Lexicon)
	comp.Grader = grade.NewGrader(l.StrengthsCount)

	return comp, nil
}
