// Package replace implements the $N substitution templates consumed by the
// retrack CLI and public API.
//
// A template is a mix of literal text and group references. A '$' followed
// by a run of digits names a capture group; the rendered output substitutes
// the group's matched substring. References to groups the match did not bind
// render as their literal "$N" spelling, so templates degrade visibly rather
// than silently.
package replace

import (
	"strings"

	"github.com/coregx/retrack/backtrack"
)

// Spec is a parsed substitution template.
type Spec struct {
	parts []part
}

type part struct {
	// group is true for a "$N" reference; name is then the digit run. A
	// false group means lit holds literal text.
	group bool
	name  string
	lit   string
}

// Parse parses a template string. Parsing never fails: any text is a valid
// template, and an empty one simply renders nothing.
func Parse(template string) *Spec {
	s := &Spec{}
	var word strings.Builder

	runes := []rune(template)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		if ch != '$' {
			word.WriteRune(ch)
			continue
		}

		// Token start: flush the in-progress word, then read the digit run.
		if word.Len() > 0 {
			s.parts = append(s.parts, part{lit: word.String()})
			word.Reset()
		}

		var name strings.Builder
		for i+1 < len(runes) && runes[i+1] >= '0' && runes[i+1] <= '9' {
			name.WriteRune(runes[i+1])
			i++
		}
		s.parts = append(s.parts, part{group: true, name: name.String()})
	}

	if word.Len() > 0 {
		s.parts = append(s.parts, part{lit: word.String()})
	}
	return s
}

// Render expands the template against a match and the input it was produced
// from. It reports ok=false for a template with no parts.
func (s *Spec) Render(input []byte, m *backtrack.Match) (string, bool) {
	if len(s.parts) == 0 {
		return "", false
	}

	var out strings.Builder
	for _, p := range s.parts {
		if !p.group {
			out.WriteString(p.lit)
			continue
		}
		span, ok := m.Groups().Get(p.name)
		if !ok {
			out.WriteString("$" + p.name)
			continue
		}
		out.Write(input[span.Start : span.End+1])
	}
	return out.String(), true
}
