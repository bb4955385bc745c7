// Package markup rewrites inline cross-reference markup between the
// structured XML dialect and markdown prose. The rewriting is purely
// syntactic: it never checks that a referenced API exists.
package markup

import (
	"regexp"
	"strings"

	"github.com/portdocs/portdocs/internal/docid"
)

// ToBeAdded is the placeholder sentinel marking an undocumented field.
const ToBeAdded = "To be added."

// IsEmpty reports whether a documentation field is undocumented: truly
// empty or holding only the placeholder sentinel.
func IsEmpty(text string) bool {
	s := strings.TrimSpace(text)
	return s == "" || s == ToBeAdded
}

// primitiveAliases maps language-level type aliases to their fully
// qualified runtime type names. "dynamic" is deliberately absent: it has
// no true underlying type and must never be emitted as one.
var primitiveAliases = map[string]string{
	"bool":    "System.Boolean",
	"byte":    "System.Byte",
	"sbyte":   "System.SByte",
	"char":    "System.Char",
	"decimal": "System.Decimal",
	"double":  "System.Double",
	"float":   "System.Single",
	"int":     "System.Int32",
	"uint":    "System.UInt32",
	"nint":    "System.IntPtr",
	"nuint":   "System.UIntPtr",
	"long":    "System.Int64",
	"ulong":   "System.UInt64",
	"short":   "System.Int16",
	"ushort":  "System.UInt16",
	"object":  "System.Object",
	"string":  "System.String",
	"void":    "System.Void",
}

var (
	seeCrefRe     = regexp.MustCompile(`<see(also)?\s+cref="([^"]+)"\s*/>`)
	seeLangwordRe = regexp.MustCompile(`<see(also)?\s+langword="([^"]+)"\s*/>`)
	paramrefRe    = regexp.MustCompile(`<(param|typeparam)ref\s+name="([^"]+)"\s*/>`)
	selfClosingRe = regexp.MustCompile(`<([\w]+)((?:\s+[\w:-]+="[^"]*")*)\s*/>`)
)

// ToXML normalizes inline markup into the structured XML dialect.
// Cross-reference tags naming a primitive alias are resolved to the fully
// qualified runtime type; the dynamic alias becomes a reserved-word
// reference instead. Already-structured input passes through unchanged,
// so the function is idempotent.
func ToXML(text string) string {
	out := seeCrefRe.ReplaceAllStringFunc(text, func(tag string) string {
		m := seeCrefRe.FindStringSubmatch(tag)
		also, cref := m[1], m[2]
		if cref == "dynamic" {
			return `<see` + also + ` langword="dynamic" />`
		}
		if fq, ok := primitiveAliases[cref]; ok {
			return `<see` + also + ` cref="T:` + fq + `" />`
		}
		return tag
	})
	return selfClosingRe.ReplaceAllString(out, "<$1$2 />")
}

// ToMarkdown rewrites inline markup into markdown prose. Cross-reference
// tags become xref directives with percent-escaped arity and constructor
// markers; reserved-word, parameter-name and type-parameter-name
// references become inline code literals.
func ToMarkdown(text string) string {
	out := seeCrefRe.ReplaceAllStringFunc(text, func(tag string) string {
		m := seeCrefRe.FindStringSubmatch(tag)
		cref := m[2]
		if cref == "dynamic" {
			return "`dynamic`"
		}
		if _, ok := primitiveAliases[cref]; ok {
			return "`" + cref + "`"
		}
		return Xref(cref)
	})
	out = seeLangwordRe.ReplaceAllString(out, "`$2`")
	out = paramrefRe.ReplaceAllString(out, "`$2`")
	return out
}

// Xref renders a DocId as a markdown cross-reference directive.
func Xref(id string) string {
	return "<xref:" + docid.EscapeMarkdown(id) + ">"
}

// SeeCref renders a DocId as a structured-dialect cross-reference element.
func SeeCref(id string) string {
	return `<see cref="` + id + `" />`
}
