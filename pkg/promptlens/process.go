package promptlens

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/cognicore/promptlens/pkg/promptlens/internalerr"
	"github.com/cognicore/promptlens/pkg/promptlens/textstat"
)

// Operations accepted by ProcessText.
const (
	OpAnalyze   = "analyze"
	OpUppercase = "uppercase"
	OpLowercase = "lowercase"
	OpTrim      = "trim"
	OpWordCount = "wordcount"
)

// Result is the outcome of one ProcessText call. Data holds the JSON
// document for analyze and the transformed text otherwise.
type Result struct {
	Success bool   `json:"success"`
	Data    string `json:"data"`
	Error   string `json:"error,omitempty"`
}

func ok(data string) Result { return Result{Success: true, Data: data} }

func fail(err error) Result { return Result{Success: false, Error: err.Error()} }

// ProcessText runs one operation over text with the default engine.
func ProcessText(operation, text string) Result {
	return Default().ProcessText(operation, text)
}

// ProcessArgs is ProcessText for hosts passing raw argument lists. It
// expects exactly an operation and a text.
func ProcessArgs(args []string) Result {
	if len(args) != 2 {
		return fail(fmt.Errorf("%w: expected 2 arguments (operation, text), got %d",
			internalerr.ErrInvalidArguments, len(args)))
	}
	return ProcessText(args[0], args[1])
}

// ProcessText runs one operation over text. It never panics; every failure
// is reported in the Result.
func (e *Engine) ProcessText(operation, text string) Result {
	switch operation {
	case OpAnalyze:
		a, err := e.Analyze(context.Background(), text)
		if err != nil {
			return fail(err)
		}
		data, err := json.Marshal(a)
		if err != nil {
			return fail(fmt.Errorf("%w: %v", internalerr.ErrMarshal, err))
		}
		return ok(string(data))
	case OpUppercase:
		return ok(strings.ToUpper(text))
	case OpLowercase:
		return ok(strings.ToLower(text))
	case OpTrim:
		return ok(strings.TrimSpace(text))
	case OpWordCount:
		return ok(WordCount(text))
	default:
		return fail(fmt.Errorf("%w: %q", internalerr.ErrUnknownOperation, operation))
	}
}

// WordCount summarizes text as "<N> words • <M> characters • <K> sentences".
func WordCount(text string) string {
	return fmt.Sprintf("%d words • %d characters • %d sentences",
		len(textstat.Words(text)),
		utf8.RuneCountInString(text),
		len(textstat.Sentences(text)))
}
