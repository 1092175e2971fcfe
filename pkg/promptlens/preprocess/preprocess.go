// Package preprocess normalizes raw prompt text and reports its layout:
// Unicode normalization, markup stripping, whitespace cleanup and counts of
// the markdown structures a prompt author typically uses.
package preprocess

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"

	"github.com/cognicore/promptlens/pkg/promptlens/metric"
)

var (
	markupPattern  = regexp.MustCompile(`</?[a-zA-Z][a-zA-Z0-9]*(?:\s[^<>]*)?/?>`)
	headingPattern = regexp.MustCompile(`^\s{0,3}#{1,6}\s+\S`)
	listPattern    = regexp.MustCompile(`^\s*(?:[-*+]|\d+[.)])\s+\S`)
)

// Result describes the cleaned text and its layout.
type Result struct {
	Cleaned string `json:"cleaned_text"`

	OriginalLength    int  `json:"original_length"`
	CleanedLength     int  `json:"cleaned_length"`
	CharactersRemoved int  `json:"characters_removed"`
	UnicodeNormalized bool `json:"unicode_normalized"`
	ContainsMarkup    bool `json:"contains_markup"`
	MarkupElements    int  `json:"markup_elements"`

	Lines      int `json:"lines"`
	BlankLines int `json:"blank_lines"`
	Paragraphs int `json:"paragraphs"`
	Headings   int `json:"headings"`
	ListItems  int `json:"list_items"`
	CodeBlocks int `json:"code_blocks"`
}

// Process normalizes text to NFC, strips markup when present, collapses
// whitespace and counts layout structures on the normalized input.
func Process(text string) Result {
	res := Result{OriginalLength: utf8.RuneCountInString(text)}

	normalized := norm.NFC.String(text)
	res.UnicodeNormalized = normalized != text

	res.countLayout(normalized)

	body := normalized
	if markupPattern.MatchString(body) {
		res.ContainsMarkup = true
		body, res.MarkupElements = stripMarkup(body)
	}

	res.Cleaned = strings.Join(strings.Fields(body), " ")
	res.CleanedLength = utf8.RuneCountInString(res.Cleaned)
	res.CharactersRemoved = res.OriginalLength - res.CleanedLength
	if res.CharactersRemoved < 0 {
		res.CharactersRemoved = 0
	}
	return res
}

func (r *Result) countLayout(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	r.Lines = len(lines)

	inParagraph := false
	inFence := false
	fences := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			fences++
			inFence = !inFence
		}

		if trimmed == "" {
			r.BlankLines++
			inParagraph = false
			continue
		}
		if !inParagraph {
			r.Paragraphs++
			inParagraph = true
		}
		if inFence {
			continue
		}
		switch {
		case headingPattern.MatchString(line):
			r.Headings++
		case listPattern.MatchString(line):
			r.ListItems++
		}
	}
	// An unterminated fence still opens a block.
	r.CodeBlocks = (fences + 1) / 2
}

// stripMarkup returns the text content of an HTML fragment and the number of
// element nodes removed. Script and style bodies are dropped.
func stripMarkup(s string) (string, int) {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		// Fall back to the raw text if parsing fails
		return s, 0
	}

	var buf strings.Builder
	elements := 0
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			buf.WriteString(n.Data)
		case html.ElementNode:
			elements++
			if n.Data == "script" || n.Data == "style" {
				return
			}
			if n.Data == "br" || n.Data == "p" || n.Data == "li" || n.Data == "div" {
				buf.WriteByte(' ')
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}
	}
	extractText(doc)

	// html.Parse synthesizes html, head and body around any fragment.
	elements -= 3
	if elements < 0 {
		elements = 0
	}
	return strings.TrimSpace(buf.String()), elements
}

// Metrics wraps the result in display envelopes.
func (r Result) Metrics() metric.Set {
	return metric.Set{
		"cleaned_text": metric.Label(r.Cleaned,
			"Input after NFC normalization, markup removal and whitespace collapse.",
			"Paste this back if the original carried stray formatting."),
		"original_length": metric.Count(r.OriginalLength,
			"Characters in the raw input.",
			"Compare with cleaned_length to see how much noise was removed."),
		"cleaned_length": metric.Count(r.CleanedLength,
			"Characters after cleanup.",
			"The length the model effectively reads."),
		"characters_removed": metric.Count(r.CharactersRemoved,
			"Characters dropped by cleanup.",
			"Large values mean copied markup or padding."),
		"unicode_normalized": metric.Label(yesNo(r.UnicodeNormalized),
			"Whether NFC normalization changed the input.",
			"Mixed composed and decomposed characters can confuse exact matching."),
		"contains_markup": metric.Label(yesNo(r.ContainsMarkup),
			"Whether HTML tags were detected.",
			"Strip markup that is not part of the instructions."),
		"markup_elements": metric.Count(r.MarkupElements,
			"HTML elements removed.",
			"Markup adds tokens without adding meaning."),
		"lines": metric.Count(r.Lines,
			"Lines in the input.",
			"Line breaks help separate instructions."),
		"blank_lines": metric.Count(r.BlankLines,
			"Empty or whitespace-only lines.",
			"Blank lines separate paragraphs."),
		"paragraphs": metric.Count(r.Paragraphs,
			"Blocks of text separated by blank lines.",
			"One idea per paragraph keeps prompts scannable."),
		"headings": metric.Count(r.Headings,
			"Markdown headings outside code blocks.",
			"Headings help long prompts."),
		"list_items": metric.Count(r.ListItems,
			"Bulleted or numbered list items outside code blocks.",
			"Lists make multi-step instructions explicit."),
		"code_blocks": metric.Count(r.CodeBlocks,
			"Fenced code blocks.",
			"Fence code and data so they are not read as instructions."),
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
