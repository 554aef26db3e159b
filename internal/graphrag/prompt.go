package graphrag

import (
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/paulowiz/genai-fundamentals/internal/graphrag/retriever"
)

// NoEvidenceContext replaces the context block when retrieval finds nothing.
const NoEvidenceContext = "No supporting evidence found in the knowledge graph."

// DefaultSystemPrompt instructs the model to stay within the context.
const DefaultSystemPrompt = "Answer the user question using the provided context. " +
	"If the context does not contain the answer, say so instead of guessing."

const defaultUserTemplate = `Context:
{{.Context}}

Question:
{{.Question}}

Answer:
`

var userPrompt = template.Must(template.New("user").Parse(defaultUserTemplate))

type promptData struct {
	Context  string
	Question string
}

// renderUserPrompt fills the user prompt template.
func renderUserPrompt(tmpl *template.Template, contextBlock, question string) (string, error) {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, promptData{Context: contextBlock, Question: question}); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// buildContext serializes records into a block of at most maxChars bytes.
// Whole records are dropped from the tail once the budget is reached; it
// returns the block and the number of records included.
func buildContext(records []retriever.Record, maxChars int) (string, int) {
	if len(records) == 0 {
		return NoEvidenceContext, 0
	}

	var sb strings.Builder
	included := 0
	for _, rec := range records {
		entry := formatEntry(rec)
		sep := 0
		if included > 0 {
			sep = 1
		}
		if maxChars > 0 && sb.Len()+sep+len(entry) > maxChars {
			break
		}
		if sep == 1 {
			sb.WriteByte('\n')
		}
		sb.WriteString(entry)
		included++
	}

	if included == 0 {
		// The first record alone exceeds the budget; keep a cut-down copy.
		return truncateUTF8(formatEntry(records[0]), maxChars), 1
	}
	return sb.String(), included
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func formatEntry(rec retriever.Record) string {
	var sb strings.Builder
	sb.WriteString("- ")
	sb.WriteString(rec.String())
	if rec.Plot != "" {
		sb.WriteString("\n  plot: ")
		sb.WriteString(rec.Plot)
	}
	return sb.String()
}
