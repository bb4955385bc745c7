// Package triple loads IntelliSense-style XML documentation exports (the
// "triple-slash" dialect) into an indexed, read-only corpus keyed by DocId.
package triple

import "encoding/xml"

// document mirrors the root element of an IntelliSense XML export:
// <doc><assembly><name/></assembly><members><member name="DocId">…
type document struct {
	XMLName  xml.Name `xml:"doc"`
	Assembly struct {
		Name string `xml:"name"`
	} `xml:"assembly"`
	Members []xmlMember `xml:"members>member"`
}

// innerText captures an element's raw inner XML so inline markup such as
// <see cref="…"/> survives parsing untouched.
type innerText struct {
	Text string `xml:",innerxml"`
}

// Param is one documented parameter or type parameter, in declaration order.
type Param struct {
	Name string `xml:"name,attr" json:"name"`
	Text string `xml:",innerxml" json:"text"`
}

// Exception is one documented thrown-exception entry.
type Exception struct {
	Cref string `xml:"cref,attr" json:"cref"`
	Text string `xml:",innerxml" json:"text"`
}

// InheritDoc marks a member whose documentation is inherited rather than
// authored locally. Cref is the optional explicit source.
type InheritDoc struct {
	Cref string `xml:"cref,attr" json:"cref"`
}

type xmlMember struct {
	Name       string      `xml:"name,attr"`
	Summary    *innerText  `xml:"summary"`
	Remarks    *innerText  `xml:"remarks"`
	Returns    *innerText  `xml:"returns"`
	Value      *innerText  `xml:"value"`
	Params     []Param     `xml:"param"`
	TypeParams []Param     `xml:"typeparam"`
	Exceptions []Exception `xml:"exception"`
	Inherit    *InheritDoc `xml:"inheritdoc"`
}

// Member is one documented API element from the source dialect. Members
// are immutable once parsed; the resolution engine only reads them.
type Member struct {
	ID         string      `json:"id"`
	Assembly   string      `json:"assembly"`
	Summary    string      `json:"summary"`
	Remarks    string      `json:"remarks"`
	Returns    string      `json:"returns"`
	Value      string      `json:"value"`
	Params     []Param     `json:"params,omitempty"`
	TypeParams []Param     `json:"typeParams,omitempty"`
	Exceptions []Exception `json:"exceptions,omitempty"`
	Inherit    *InheritDoc `json:"inherit,omitempty"`
}

// Param returns the documented parameter with the given name.
func (m *Member) Param(name string) (Param, bool) {
	for _, p := range m.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// TypeParam returns the documented type parameter with the given name.
func (m *Member) TypeParam(name string) (Param, bool) {
	for _, p := range m.TypeParams {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

func (x *xmlMember) toMember(assembly string) *Member {
	m := &Member{
		ID:         x.Name,
		Assembly:   assembly,
		Params:     x.Params,
		TypeParams: x.TypeParams,
		Exceptions: x.Exceptions,
		Inherit:    x.Inherit,
	}
	if x.Summary != nil {
		m.Summary = x.Summary.Text
	}
	if x.Remarks != nil {
		m.Remarks = x.Remarks.Text
	}
	if x.Returns != nil {
		m.Returns = x.Returns.Text
	}
	if x.Value != nil {
		m.Value = x.Value.Text
	}
	return m
}
