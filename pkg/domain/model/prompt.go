package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/edu-lab/mentor/pkg/domain/types"
)

// Snippet is one retrieved long-term memory entry. Snippets are kept in
// ranking order (most similar first); truncation always sheds from the
// tail, so no score needs to cross this boundary.
type Snippet struct {
	RecordID types.RecordID
	Text     string
}

// PromptContext is the ephemeral, per-request input to the generator:
// retrieved snippets (most-similar first), recent turns (oldest first),
// and the current query. It is rendered once and never persisted.
type PromptContext struct {
	Snippets []Snippet
	Recent   []Turn
	Query    string
}

// Section delimiters of the rendered context block. The generator is
// sensitive to prompt structure, so this layout is a fixed contract:
// long-term snippets first, then the conversation window, then the
// complete current query last.
const (
	sectionSnippets = "## Relevant knowledge"
	sectionRecent   = "## Recent conversation"
	sectionQuery    = "## Current question"
)

// Render produces the bounded context block. If the full rendering exceeds
// maxLen, snippets are dropped from the least-similar end first, then recent
// turns from the oldest end. The current query is never truncated; if the
// query section alone does not fit, the input itself is invalid.
func (p *PromptContext) Render(maxLen int) (string, error) {
	for nSnippets := len(p.Snippets); nSnippets >= 0; nSnippets-- {
		s := renderSections(p.Snippets[:nSnippets], p.Recent, p.Query)
		if len(s) <= maxLen {
			return s, nil
		}
		if nSnippets > 0 {
			continue
		}

		// All snippets dropped and still over: shed oldest turns
		for dropped := 1; dropped <= len(p.Recent); dropped++ {
			s = renderSections(nil, p.Recent[dropped:], p.Query)
			if len(s) <= maxLen {
				return s, nil
			}
		}
	}

	return "", goerr.Wrap(types.ErrValidation, "query alone exceeds prompt capacity",
		goerr.V("queryLen", len(p.Query)),
		goerr.V("maxLen", maxLen),
	)
}

func renderSections(snippets []Snippet, recent []Turn, query string) string {
	var sb strings.Builder

	if len(snippets) > 0 {
		sb.WriteString(sectionSnippets)
		sb.WriteString("\n\n")
		for _, s := range snippets {
			sb.WriteString("- ")
			sb.WriteString(s.Text)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if len(recent) > 0 {
		sb.WriteString(sectionRecent)
		sb.WriteString("\n\n")
		for _, t := range recent {
			sb.WriteString(string(t.Role))
			sb.WriteString(": ")
			sb.WriteString(t.Text)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString(sectionQuery)
	sb.WriteString("\n\n")
	sb.WriteString(query)
	sb.WriteString("\n")

	return sb.String()
}
