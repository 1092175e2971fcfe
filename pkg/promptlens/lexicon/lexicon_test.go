package lexicon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLexiconLoads(t *testing.T) {
	lex := Default()
	require.NotNil(t, lex)

	for _, class := range []Class{Stopwords, Nouns, Verbs, Adjectives, Positive, Negative, ActionVerbs, Connectors} {
		assert.Greater(t, lex.Size(class), 0, "class %s should not be empty", class)
	}
	assert.Same(t, lex, Default(), "default lexicon is parsed once")
}

func TestIsCaseInsensitive(t *testing.T) {
	lex := Default()
	assert.True(t, lex.Is(Stopwords, "The"))
	assert.True(t, lex.Is(ActionVerbs, "BUILD"))
	assert.False(t, lex.Is(Stopwords, "login"))
}

func TestNormalizeSynonyms(t *testing.T) {
	lex := Default()
	assert.Equal(t, "test", lex.Normalize("Tests"))
	assert.Equal(t, "deploy", lex.Normalize("deployment"))
	assert.Equal(t, "unknown", lex.Normalize("Unknown"))
	assert.True(t, lex.HasSynonyms("testing"))
	assert.Equal(t, []string{"user", "users"}, lex.Variants("users"))
	assert.Equal(t, []string{"zebra"}, lex.Variants("zebra"))
}

func TestCuesMatchOnWordBoundaries(t *testing.T) {
	lex := Default()

	assert.Equal(t, []string{"for example"}, lex.Cues(ExampleMarkers, "For example, use a map."))
	assert.True(t, lex.HasCue(Hedges, "I think this might work"))
	// "then" must not match inside "authentication"
	assert.False(t, lex.HasCue(SequenceMarkers, "Add authentication"))
	assert.True(t, lex.HasCue(SequenceMarkers, "Then add password reset."))
}

func TestLeadingCuePrefersLongest(t *testing.T) {
	lex := Default()
	assert.Equal(t, "and then", lex.LeadingCue(Connectors, "And then deploy it"))
	assert.Equal(t, "finally", lex.LeadingCue(Connectors, "Finally, write tests."))
	assert.Equal(t, "", lex.LeadingCue(Connectors, "Write tests."))
}

func TestTopicsSortedAndDeterministic(t *testing.T) {
	lex := Default()
	got := lex.Topics([]string{"Login", "tests", "password"})
	assert.Equal(t, []string{"security", "testing", "web"}, got)
	assert.Equal(t, []string{}, lex.Topics(nil))

	scores := lex.TopicScores([]string{"login", "page", "password"})
	assert.Equal(t, 2, scores["web"])
	assert.Equal(t, 1, scores["security"])
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("classes: [unclosed"))
	assert.Error(t, err)
}

func TestLoadFromYAMLMergesWithDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	content := `
classes:
  action_verbs: [scaffold]
synonyms:
  - canonical: endpoint
    variants: [endpoints, route]
topics:
  gamedev: [sprite, shader]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	lex, err := LoadFromYAML(path)
	require.NoError(t, err)

	assert.True(t, lex.Is(ActionVerbs, "scaffold"))
	assert.True(t, lex.Is(ActionVerbs, "build"), "built-in entries survive the overlay")
	assert.Equal(t, "endpoint", lex.Normalize("route"))
	assert.Equal(t, []string{"gamedev"}, lex.Topics([]string{"shader"}))
}

func TestLoadFromYAMLMissingFile(t *testing.T) {
	_, err := LoadFromYAML("/nonexistent/lexicon.yaml")
	assert.Error(t, err)
}

func TestTrimLeadingStripsStackedConnectors(t *testing.T) {
	lex := Default()

	rest, cues := lex.TrimLeading(Connectors, "And then, finally deploy it.")
	assert.Equal(t, "deploy it.", rest)
	assert.Equal(t, []string{"and then", "finally"}, cues)

	rest, cues = lex.TrimLeading(Connectors, "Write tests.")
	assert.Equal(t, "Write tests.", rest)
	assert.Empty(t, cues)

	rest, cues = lex.TrimLeading(Connectors, "Then.")
	assert.Equal(t, "", rest)
	assert.Equal(t, []string{"then"}, cues)
}

func TestTrimLeadingConnectorJoinedByPunctuation(t *testing.T) {
	lex := Default()

	tests := []struct {
		text string
		rest string
		cue  string
	}{
		{"Then,deploy the app.", "deploy the app.", "then"},
		{"Next:deploy the app.", "deploy the app.", "next"},
		{"Finally;write the tests.", "write the tests.", "finally"},
		{"Then, deploy the app.", "deploy the app.", "then"},
		{"(Next) deploy the app.", "deploy the app.", "next"},
	}
	for _, tt := range tests {
		rest, cues := lex.TrimLeading(Connectors, tt.text)
		assert.Equal(t, tt.rest, rest, "text %q", tt.text)
		assert.Equal(t, []string{tt.cue}, cues, "text %q", tt.text)
	}
}
