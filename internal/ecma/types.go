// Package ecma loads the human-maintained documentation repository format
// (one XML document per API type) into a mutable, indexed corpus. The
// resolution engine writes into empty documentation fields only; every
// mutation marks the owning document changed so callers know what to save.
package ecma

import (
	"encoding/xml"
	"strings"

	"github.com/portdocs/portdocs/internal/docid"
	"github.com/portdocs/portdocs/internal/markup"
)

// InnerText captures an element's raw inner XML so inline markup survives
// round-tripping.
type InnerText struct {
	Text string `xml:",innerxml"`
}

// Signature carries one language rendering of a type or member signature.
// The DocId language is the corpus key.
type Signature struct {
	Language string `xml:"Language,attr"`
	Value    string `xml:"Value,attr"`
}

// AssemblyInfo names an assembly the element ships in.
type AssemblyInfo struct {
	AssemblyName    string   `xml:"AssemblyName"`
	AssemblyVersion []string `xml:"AssemblyVersion"`
}

// DocParam is one documented parameter or type parameter in a Docs block.
type DocParam struct {
	Name string `xml:"name,attr"`
	Text string `xml:",innerxml"`
}

// DocException is one documented thrown-exception entry in a Docs block.
type DocException struct {
	Cref string `xml:"cref,attr"`
	Text string `xml:",innerxml"`
}

// InheritDocElem is an explicit inherit-doc marker emitted when the
// preserve-marker policy is on.
type InheritDocElem struct {
	Cref string `xml:"cref,attr,omitempty"`
}

// Docs is the documentation block shared by types and members.
type Docs struct {
	TypeParams []DocParam      `xml:"typeparam"`
	Params     []DocParam      `xml:"param"`
	Summary    *InnerText      `xml:"summary"`
	Returns    *InnerText      `xml:"returns"`
	Value      *InnerText      `xml:"value"`
	Remarks    *InnerText      `xml:"remarks"`
	Exceptions []DocException  `xml:"exception"`
	Inherit    *InheritDocElem `xml:"inheritdoc"`
}

func (d *Docs) text(t *InnerText) string {
	if t == nil {
		return ""
	}
	return t.Text
}

// Parameter is one signature-level parameter declaration.
type Parameter struct {
	Name string `xml:"Name,attr"`
	Type string `xml:"Type,attr"`
}

// TypeParameter is one signature-level generic parameter declaration.
type TypeParameter struct {
	Name string `xml:"Name,attr"`
}

// Member is one documentable member of a type.
type Member struct {
	XMLName        xml.Name        `xml:"Member"`
	MemberName     string          `xml:"MemberName,attr"`
	Signatures     []Signature     `xml:"MemberSignature"`
	MemberType     string          `xml:"MemberType"`
	AssemblyInfo   []AssemblyInfo  `xml:"AssemblyInfo"`
	TypeParameters []TypeParameter `xml:"TypeParameters>TypeParameter"`
	Parameters     []Parameter     `xml:"Parameters>Parameter"`
	ReturnValue    *ReturnValue    `xml:"ReturnValue"`
	Implements     []string        `xml:"Implements>InterfaceMember"`
	Docs           Docs            `xml:"Docs"`

	parent  *Type
	changed bool
	eiiPort bool
}

// ReturnValue wraps a member's declared return type.
type ReturnValue struct {
	ReturnType string `xml:"ReturnType"`
}

// Type is one documentation document: a type plus its members.
type Type struct {
	XMLName        xml.Name        `xml:"Type"`
	Name           string          `xml:"Name,attr"`
	FullName       string          `xml:"FullName,attr"`
	Signatures     []Signature     `xml:"TypeSignature"`
	AssemblyInfo   []AssemblyInfo  `xml:"AssemblyInfo"`
	TypeParameters []TypeParameter `xml:"TypeParameters>TypeParameter"`
	Base           *Base           `xml:"Base"`
	Interfaces     []string        `xml:"Interfaces>Interface>InterfaceName"`
	Docs           Docs            `xml:"Docs"`
	Members        []*Member       `xml:"Members>Member"`

	path    string
	hadBOM  bool
	changed bool
}

// Base names the base type; a weak by-name reference into the corpus.
type Base struct {
	BaseTypeName string `xml:"BaseTypeName"`
}

func docIDOf(sigs []Signature) string {
	for _, s := range sigs {
		if s.Language == "DocId" {
			return s.Value
		}
	}
	return ""
}

// DocID returns the type's DocId, falling back to the full name.
func (t *Type) DocID() string {
	if id := docIDOf(t.Signatures); id != "" {
		return id
	}
	return "T:" + t.FullName
}

// BaseTypeName returns the declared base type name, or "".
func (t *Type) BaseTypeName() string {
	if t.Base == nil {
		return ""
	}
	return t.Base.BaseTypeName
}

// IsEnum reports whether the type is an enumeration. The target schema
// forbids remarks on enum fields.
func (t *Type) IsEnum() bool {
	return t.BaseTypeName() == "System.Enum"
}

// Path returns the file the document was loaded from.
func (t *Type) Path() string { return t.path }

// HadBOM reports whether the original file started with a UTF-8 BOM.
func (t *Type) HadBOM() bool { return t.hadBOM }

// Changed reports whether the type or any of its members was mutated.
func (t *Type) Changed() bool {
	if t.changed {
		return true
	}
	for _, m := range t.Members {
		if m.changed {
			return true
		}
	}
	return false
}

// Summary returns the type-level summary text.
func (t *Type) Summary() string { return t.Docs.text(t.Docs.Summary) }

// Remarks returns the type-level remarks text.
func (t *Type) Remarks() string { return t.Docs.text(t.Docs.Remarks) }

// SetSummary writes the summary and marks the document changed.
func (t *Type) SetSummary(text string) {
	setInner(&t.Docs.Summary, text)
	t.changed = true
}

// SetRemarks writes the remarks and marks the document changed.
func (t *Type) SetRemarks(text string) {
	setInner(&t.Docs.Remarks, text)
	t.changed = true
}

// SetTypeParamText writes one type parameter's text, creating the docs
// entry if the signature declares the name but the docs block lacks it.
func (t *Type) SetTypeParamText(name, text string) {
	setParam(&t.Docs.TypeParams, name, text)
	t.changed = true
}

// SetInheritDoc records a verbatim inherit-doc marker on the type.
func (t *Type) SetInheritDoc(cref string) {
	t.Docs.Inherit = &InheritDocElem{Cref: cref}
	t.changed = true
}

// DocID returns the member's DocId. A document predating the DocId
// signature language gets one derived from the declaring type, the member
// name and the declared parameter types.
func (m *Member) DocID() string {
	if id := docIDOf(m.Signatures); id != "" {
		return id
	}
	return m.deriveDocID()
}

func (m *Member) deriveDocID() string {
	if m.parent == nil {
		return ""
	}
	name := m.MemberName
	if name == docid.CtorName {
		name = docid.CtorSegment
	}
	prefix := "M:"
	switch m.Kind() {
	case "Property":
		prefix = "P:"
	case "Field":
		prefix = "F:"
	case "Event":
		prefix = "E:"
	}
	types := make([]string, 0, len(m.Parameters))
	for _, p := range m.Parameters {
		types = append(types, p.Type)
	}
	return prefix + m.parent.FullName + "." + name + docid.FormatParams(types)
}

// Parent returns the owning type.
func (m *Member) Parent() *Type { return m.parent }

// Kind returns the member kind string from the document
// (Method, Property, Field, Event, Constructor).
func (m *Member) Kind() string { return strings.TrimSpace(m.MemberType) }

// ReturnType returns the declared return type name, or "".
func (m *Member) ReturnType() string {
	if m.ReturnValue == nil {
		return ""
	}
	return strings.TrimSpace(m.ReturnValue.ReturnType)
}

// IsVoid reports whether the member's declared return type is the
// void-equivalent; such members never need returns documentation.
func (m *Member) IsVoid() bool {
	return m.ReturnType() == "System.Void"
}

// ImplementsMember returns the identifier of the interface member this
// member explicitly implements, or "".
func (m *Member) ImplementsMember() string {
	if len(m.Implements) == 0 {
		return ""
	}
	return strings.TrimSpace(m.Implements[0])
}

// Changed reports whether the member was mutated this run.
func (m *Member) Changed() bool { return m.changed }

// MarkEIIPort flags the member as documented via the explicit
// interface-implementation fallback.
func (m *Member) MarkEIIPort() { m.eiiPort = true }

// EIIPort reports whether the member was documented via the explicit
// interface-implementation fallback.
func (m *Member) EIIPort() bool { return m.eiiPort }

// Summary returns the member summary text.
func (m *Member) Summary() string { return m.Docs.text(m.Docs.Summary) }

// Remarks returns the member remarks text.
func (m *Member) Remarks() string { return m.Docs.text(m.Docs.Remarks) }

// Returns returns the member returns text.
func (m *Member) Returns() string { return m.Docs.text(m.Docs.Returns) }

// Value returns the property-value text.
func (m *Member) Value() string { return m.Docs.text(m.Docs.Value) }

// ParamText returns the docs text for the named parameter.
func (m *Member) ParamText(name string) string {
	for _, p := range m.Docs.Params {
		if p.Name == name {
			return p.Text
		}
	}
	return ""
}

// TypeParamText returns the docs text for the named type parameter.
func (m *Member) TypeParamText(name string) string {
	for _, p := range m.Docs.TypeParams {
		if p.Name == name {
			return p.Text
		}
	}
	return ""
}

// Exception returns the docs entry for the given cref.
func (m *Member) Exception(cref string) (*DocException, bool) {
	for i := range m.Docs.Exceptions {
		if m.Docs.Exceptions[i].Cref == cref {
			return &m.Docs.Exceptions[i], true
		}
	}
	return nil, false
}

func (m *Member) SetSummary(text string) {
	setInner(&m.Docs.Summary, text)
	m.changed = true
}

func (m *Member) SetRemarks(text string) {
	setInner(&m.Docs.Remarks, text)
	m.changed = true
}

func (m *Member) SetReturns(text string) {
	setInner(&m.Docs.Returns, text)
	m.changed = true
}

func (m *Member) SetValue(text string) {
	setInner(&m.Docs.Value, text)
	m.changed = true
}

func (m *Member) SetParamText(name, text string) {
	setParam(&m.Docs.Params, name, text)
	m.changed = true
}

func (m *Member) SetTypeParamText(name, text string) {
	setParam(&m.Docs.TypeParams, name, text)
	m.changed = true
}

// AddException appends a new exception entry.
func (m *Member) AddException(cref, text string) {
	m.Docs.Exceptions = append(m.Docs.Exceptions, DocException{Cref: cref, Text: text})
	m.changed = true
}

// AppendExceptionText appends alternative-condition text to an existing
// exception entry, separated by the dialect's "-or-" paragraph.
func (m *Member) AppendExceptionText(cref, text string) {
	for i := range m.Docs.Exceptions {
		if m.Docs.Exceptions[i].Cref == cref {
			m.Docs.Exceptions[i].Text += "\n\n-or-\n\n" + text
			m.changed = true
			return
		}
	}
}

// SetInheritDoc records a verbatim inherit-doc marker on the member.
func (m *Member) SetInheritDoc(cref string) {
	m.Docs.Inherit = &InheritDocElem{Cref: cref}
	m.changed = true
}

func setInner(field **InnerText, text string) {
	if *field == nil {
		*field = &InnerText{}
	}
	(*field).Text = text
}

func setParam(list *[]DocParam, name, text string) {
	for i := range *list {
		if (*list)[i].Name == name {
			(*list)[i].Text = text
			return
		}
	}
	*list = append(*list, DocParam{Name: name, Text: text})
}

// EmptyDoc reports whether a docs field holds no real documentation.
func EmptyDoc(text string) bool {
	return markup.IsEmpty(text)
}
