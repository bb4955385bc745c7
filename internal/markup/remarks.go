package markup

import (
	"regexp"
	"strings"

	gm "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	gmparser "github.com/gomarkdown/markdown/parser"
)

const (
	formatOpen  = `<format type="text/markdown"><![CDATA[`
	formatClose = `]]></format>`

	remarksHeader = "## Remarks"
)

// WrapRemarks embeds markdown remarks text in the fixed remarks header and
// the raw-content escape block, so downstream renderers do not re-parse
// the inner markup. Already-wrapped input is returned unchanged.
func WrapRemarks(md string) string {
	if strings.Contains(md, formatOpen) {
		return md
	}
	body := strings.TrimSpace(md)
	var b strings.Builder
	b.WriteString(formatOpen)
	b.WriteString("\n\n")
	b.WriteString(remarksHeader)
	b.WriteString("\n\n")
	b.WriteString(body)
	b.WriteString("\n\n")
	b.WriteString(formatClose)
	return b.String()
}

// CleanRemarks strips structural markers from remarks text: the raw-content
// wrapper, the remarks header and any CDATA remnants, with line endings
// normalized. Used when remarks text is spliced into synthesized prose.
func CleanRemarks(text string) string {
	s := strings.ReplaceAll(text, "\r\n", "\n")
	s = strings.ReplaceAll(s, formatOpen, "")
	s = strings.ReplaceAll(s, formatClose, "")
	s = strings.ReplaceAll(s, "<![CDATA[", "")
	s = strings.ReplaceAll(s, "]]>", "")
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) == remarksHeader {
			continue
		}
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

// apiBrowserRe matches API browser documentation URLs in markdown link
// destinations. The trailing path segment is the lowercased identifier.
var apiBrowserRe = regexp.MustCompile(`^https?://(?:learn|docs)\.microsoft\.com/(?:[a-z]{2}-[a-z]{2}/)?dotnet/api/([^?#]+)`)

// RewriteDocLinks rewrites markdown links whose destination is an API
// browser URL into xref-scheme destinations. It parses the markdown to
// AST to find link destinations, then performs targeted string
// replacements so the original formatting is preserved.
func RewriteDocLinks(src string) string {
	doc := gm.Parse([]byte(src), gmparser.NewWithExtensions(
		gmparser.CommonExtensions|gmparser.Autolink,
	))

	seen := make(map[string]bool)
	type replacement struct {
		oldDest string
		newDest string
	}
	var replacements []replacement

	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}
		if link, ok := node.(*ast.Link); ok {
			dest := string(link.Destination)
			if seen[dest] {
				return ast.GoToNext
			}
			if m := apiBrowserRe.FindStringSubmatch(dest); m != nil {
				seen[dest] = true
				replacements = append(replacements, replacement{dest, "xref:" + m[1]})
			}
		}
		return ast.GoToNext
	})

	if len(replacements) == 0 {
		return src
	}

	result := src

	// Inline links: [text](destination) — one pass per replacement
	for _, r := range replacements {
		result = strings.ReplaceAll(result, "]("+r.oldDest+")", "]("+r.newDest+")")
	}

	// Reference-style definitions: [ref]: destination — single pass over lines
	refMap := make(map[string]string, len(replacements))
	for _, r := range replacements {
		refMap["]: "+r.oldDest] = "]: " + r.newDest
	}
	lines := strings.Split(result, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		for oldSuffix, newSuffix := range refMap {
			if strings.HasSuffix(trimmed, oldSuffix) {
				lines[i] = strings.Replace(line, oldSuffix, newSuffix, 1)
				break
			}
		}
	}
	return strings.Join(lines, "\n")
}

// RemarksToMarkdown converts structured remarks text into the wrapped
// markdown prose form: inline markup is rewritten, API browser links are
// normalized to xref destinations, and the result is embedded in the
// remarks block.
func RemarksToMarkdown(text string) string {
	if strings.Contains(text, formatOpen) {
		return text
	}
	return WrapRemarks(RewriteDocLinks(ToMarkdown(text)))
}
