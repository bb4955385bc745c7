// Package docid models the prefixed identifier strings that key every API
// element in both documentation dialects, e.g.
// "M:System.Text.StringBuilder.Append(System.String)".
package docid

import (
	"strings"
)

// Kind classifies an identifier by its prefix.
type Kind int

const (
	KindUnknown Kind = iota
	KindType
	KindMethod
	KindConstructor
	KindProperty
	KindField
	KindEvent
)

func (k Kind) String() string {
	switch k {
	case KindType:
		return "Type"
	case KindMethod:
		return "Method"
	case KindConstructor:
		return "Constructor"
	case KindProperty:
		return "Property"
	case KindField:
		return "Field"
	case KindEvent:
		return "Event"
	default:
		return "Unknown"
	}
}

// CtorName is the literal member name constructors carry in the docs
// dialect, distinct from the "#ctor" segment inside their identifier.
const CtorName = ".ctor"

// CtorSegment is the constructor marker as it appears inside identifiers.
const CtorSegment = "#ctor"

// KindOf returns the kind encoded in the identifier's prefix. Method
// identifiers whose member segment is the constructor marker are reported
// as constructors.
func KindOf(id string) Kind {
	if len(id) < 2 || id[1] != ':' {
		return KindUnknown
	}
	switch id[0] {
	case 'T':
		return KindType
	case 'M':
		if strings.Contains(MemberName(id), CtorSegment) {
			return KindConstructor
		}
		return KindMethod
	case 'P':
		return KindProperty
	case 'F':
		return KindField
	case 'E':
		return KindEvent
	default:
		return KindUnknown
	}
}

// HasPrefix reports whether id starts with a kind prefix like "T:".
func HasPrefix(id string) bool {
	return len(id) >= 2 && id[1] == ':' && strings.ContainsRune("TMPFE", rune(id[0]))
}

// StripPrefix removes the leading kind prefix, if present.
func StripPrefix(id string) string {
	if HasPrefix(id) {
		return id[2:]
	}
	return id
}

// Params returns the parenthesized parameter-list portion of a member
// identifier, parens included, or "" when the member takes no parameters.
// Conversion operators carry a trailing "~ReturnType" which is kept.
func Params(id string) string {
	if i := strings.IndexByte(id, '('); i >= 0 {
		return id[i:]
	}
	return ""
}

// WithoutParams returns the identifier with any parameter list removed.
func WithoutParams(id string) string {
	if i := strings.IndexByte(id, '('); i >= 0 {
		return id[:i]
	}
	return id
}

// MemberName returns the final dotted segment of a member identifier with
// the parameter list removed. Nested-generic dots inside the parameter
// list never split the name because the list is stripped first. Explicit
// interface implementations use '#' as their path separator, which is
// preserved ("System#IDisposable#Dispose").
func MemberName(id string) string {
	s := StripPrefix(WithoutParams(id))
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		return s[i+1:]
	}
	return s
}

// Parent returns the declaring portion of a member identifier, without
// prefix or parameter list: "N.T.F" -> "N.T". For a type identifier it
// returns the enclosing namespace.
func Parent(id string) string {
	s := StripPrefix(WithoutParams(id))
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		return s[:i]
	}
	return ""
}

// Arity returns the generic arity encoded in a name's backtick suffix.
// "List`1" -> 1, "Create``2" -> 2, plain names -> 0.
func Arity(name string) int {
	i := strings.IndexByte(name, '`')
	if i < 0 {
		return 0
	}
	digits := name[i:]
	digits = strings.TrimLeft(digits, "`")
	n := 0
	for _, r := range digits {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
	}
	return n
}

// FormatParams renders a parameter type list in the canonical identifier
// form: parenthesized, comma separated, no spaces. An empty list renders
// as "".
func FormatParams(types []string) string {
	if len(types) == 0 {
		return ""
	}
	return "(" + strings.Join(types, ",") + ")"
}

// Rebase swaps the declaring type of a member identifier, preserving the
// kind prefix, member name and parameter list. Used when following a
// base-type edge: the base member's identifier is the derived member's
// identifier with the type portion replaced.
func Rebase(id, newParent string) string {
	if !HasPrefix(id) || newParent == "" {
		return id
	}
	prefix := id[:2]
	name := MemberName(id)
	return prefix + newParent + "." + name + Params(id)
}

// mdEscaper rewrites the characters that are unsafe inside a markdown
// xref directive. Backticks mark generic arity and '#' marks the
// constructor segment; both are percent-escaped.
var mdEscaper = strings.NewReplacer("`", "%60", "#", "%23")

// EscapeMarkdown returns the identifier in the form used inside markdown
// cross-reference directives.
func EscapeMarkdown(id string) string {
	return mdEscaper.Replace(StripPrefix(id))
}
