package internal

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulowiz/genai-fundamentals/internal/graphrag"
	"github.com/paulowiz/genai-fundamentals/internal/graphrag/retriever"
	"github.com/paulowiz/genai-fundamentals/internal/types"
)

func rating(v float64) *float64 { return &v }

// plainOutput disables ANSI colors for the duration of the test.
func plainOutput(t *testing.T) {
	t.Helper()
	original := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = original })
}

func sampleAnswer() *graphrag.Answer {
	return &graphrag.Answer{
		ID:    "a1",
		Query: "highest rated space movie",
		Text:  "Interstellar is the highest rated match.",
		Model: "gpt-4o",
		Context: []retriever.Record{
			{Title: "Interstellar", SimilarityScore: 0.93, Genres: []string{"Sci-Fi"}, Actors: []string{}, Directors: []string{"Christopher Nolan"}, UserRating: rating(4.5)},
			{Title: "Mission to Mars", SimilarityScore: 0.95, Genres: []string{}, Actors: []string{}, Directors: []string{}},
		},
	}
}

func TestParseOutputFormat(t *testing.T) {
	format, err := ParseOutputFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, format)

	format, err = ParseOutputFormat("text")
	require.NoError(t, err)
	assert.Equal(t, FormatText, format)

	_, err = ParseOutputFormat("yaml")
	require.Error(t, err)
	var cliErr *CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, ExitUsage, cliErr.Code)
}

func TestTextFormatter_PrintAnswer(t *testing.T) {
	plainOutput(t)
	var buf bytes.Buffer
	require.NoError(t, NewTextFormatter(&buf).PrintAnswer(sampleAnswer()))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Interstellar is the highest rated match.\n"))
	assert.Contains(t, out, "CONTEXT:")
	assert.Contains(t, out, "1. Interstellar (rating: 4.50")
	assert.Contains(t, out, "2. Mission to Mars (rating: unrated")
	assert.Less(t, strings.Index(out, "Interstellar (rating"), strings.Index(out, "Mission to Mars"))
}

func TestTextFormatter_PrintAnswerWithoutContext(t *testing.T) {
	answer := sampleAnswer()
	answer.Context = nil

	var buf bytes.Buffer
	require.NoError(t, NewTextFormatter(&buf).PrintAnswer(answer))
	assert.NotContains(t, buf.String(), "CONTEXT:")
}

func TestTextFormatter_PrintAnswerEmptyContext(t *testing.T) {
	plainOutput(t)
	answer := sampleAnswer()
	answer.Context = []retriever.Record{}

	var buf bytes.Buffer
	require.NoError(t, NewTextFormatter(&buf).PrintAnswer(answer))
	assert.Contains(t, buf.String(), "CONTEXT:")
	assert.Contains(t, buf.String(), "(no records)")
}

func TestJSONFormatter_PrintAnswer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatJSON, &buf).PrintAnswer(sampleAnswer()))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "Interstellar is the highest rated match.", decoded["answer"])
	assert.Equal(t, "gpt-4o", decoded["model"])

	context, ok := decoded["context"].([]any)
	require.True(t, ok)
	require.Len(t, context, 2)
	first := context[0].(map[string]any)
	assert.Equal(t, "Interstellar", first["title"])
	assert.Nil(t, context[1].(map[string]any)["user_rating"])
}

func TestFormatter_PrintHealth(t *testing.T) {
	plainOutput(t)
	checks := []HealthCheck{
		{Name: "neo4j", Status: types.Healthy("connected")},
		{Name: "llm", Status: types.Unhealthy("no key")},
	}

	var text bytes.Buffer
	require.NoError(t, NewFormatter(FormatText, &text).PrintHealth(checks))
	assert.Contains(t, text.String(), "COMPONENT")
	assert.Contains(t, text.String(), "neo4j")
	assert.Contains(t, text.String(), "unhealthy")

	var js bytes.Buffer
	require.NoError(t, NewFormatter(FormatJSON, &js).PrintHealth(checks))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	assert.Equal(t, false, decoded["healthy"])
	assert.Len(t, decoded["checks"], 2)
}

func TestFormatState_Colored(t *testing.T) {
	original := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = original })

	healthy := formatState(types.HealthStateHealthy)
	unhealthy := formatState(types.HealthStateUnhealthy)
	assert.Contains(t, healthy, "healthy")
	assert.Contains(t, healthy, "\x1b[")
	assert.NotEqual(t, healthy, unhealthy)
}
