package resolve

import (
	"strings"

	"github.com/portdocs/portdocs/internal/ecma"
	"github.com/portdocs/portdocs/internal/markup"
	"github.com/portdocs/portdocs/internal/triple"
)

// portExceptions considers every source exception entry regardless of
// whether the target already lists the exception type: new crefs create
// entries, known crefs have text appended unless the new text is a
// near-duplicate of what is already there.
func (r *Resolver) portExceptions(m *ecma.Member, src *triple.Member) {
	if len(src.Exceptions) == 0 {
		return
	}
	id := m.DocID()
	path := m.Parent().Path()

	for _, ex := range src.Exceptions {
		if markup.IsEmpty(ex.Text) {
			continue
		}
		text := markup.ToXML(strings.TrimSpace(ex.Text))

		if existing, ok := m.Exception(ex.Cref); ok {
			if !r.policy.ExceptionsExisting {
				continue
			}
			if wordOverlapPercent(existing.Text, text) >= r.policy.ExceptionCollisionPercent {
				continue
			}
			m.AppendExceptionText(ex.Cref, text)
			r.report.noteMember(id, path)
			r.report.addedException(id, ex.Cref)
			continue
		}

		if !r.policy.ExceptionsNew {
			continue
		}
		m.AddException(ex.Cref, text)
		r.report.noteMember(id, path)
		r.report.addedException(id, ex.Cref)
	}
}

// wordOverlapPercent returns the percentage of candidate words already
// present in existing. 100 means every word of the candidate is present.
func wordOverlapPercent(existing, candidate string) int {
	words := strings.Fields(strings.ToLower(candidate))
	if len(words) == 0 {
		return 100
	}
	have := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(existing)) {
		have[w] = true
	}
	hits := 0
	for _, w := range words {
		if have[w] {
			hits++
		}
	}
	return hits * 100 / len(words)
}
