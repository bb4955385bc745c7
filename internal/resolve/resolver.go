// Package resolve implements the matching and merge engine: for every
// documentable element in the target corpus it locates the best candidate
// source text (direct match, inherited-doc resolution, or explicit
// interface-implementation fallback) and merges it into empty fields only.
package resolve

import (
	"errors"
	"fmt"
	"strings"

	"github.com/portdocs/portdocs/internal/config"
	"github.com/portdocs/portdocs/internal/docid"
	"github.com/portdocs/portdocs/internal/ecma"
	"github.com/portdocs/portdocs/internal/markup"
	"github.com/portdocs/portdocs/internal/triple"
)

var (
	// ErrAborted is returned when the operator aborts at a prompt.
	ErrAborted = errors.New("run aborted by operator")
	// ErrEmptySource is returned when no source members were loaded.
	ErrEmptySource = errors.New("no source documentation loaded")
	// ErrEmptyTarget is returned when no target types were loaded.
	ErrEmptyTarget = errors.New("no target types loaded")
)

// Resolver walks the target corpus and merges in candidate text. It is
// the sole mutator of target fragments and never mutates source members.
type Resolver struct {
	src      *triple.Corpus
	dst      *ecma.Corpus
	policy   config.Policy
	prompter Prompter
	report   *Report
}

// New builds a resolver. A nil prompter disables interactive resolution,
// recording name mismatches as problems instead.
func New(src *triple.Corpus, dst *ecma.Corpus, policy config.Policy, prompter Prompter) *Resolver {
	if policy.DisablePrompts {
		prompter = nil
	}
	return &Resolver{src: src, dst: dst, policy: policy, prompter: prompter}
}

// Run resolves all types, then all members, in container insertion order.
// Types go first because member inherit-doc walks may depend on type-level
// base-type documentation. An empty corpus on either side aborts with no
// partial merge.
func (r *Resolver) Run() (*Report, error) {
	if r.src.Len() == 0 {
		return nil, ErrEmptySource
	}
	if len(r.dst.AllTypes()) == 0 {
		return nil, ErrEmptyTarget
	}
	r.report = newReport()

	for _, t := range r.dst.AllTypes() {
		if !r.admitsAssembly(t) {
			continue
		}
		if err := r.resolveType(t); err != nil {
			return nil, err
		}
	}
	for _, m := range r.dst.AllMembers() {
		if !r.admitsAssembly(m.Parent()) {
			continue
		}
		if err := r.resolveMember(m); err != nil {
			return nil, err
		}
	}
	return r.report, nil
}

// admitsAssembly applies the assembly filter to target documents, so
// identifiers outside the included set are not targets any more than they
// are candidates.
func (r *Resolver) admitsAssembly(t *ecma.Type) bool {
	for _, ai := range t.AssemblyInfo {
		for _, ex := range r.policy.ExcludeAssemblies {
			if strings.EqualFold(ex, ai.AssemblyName) {
				return false
			}
		}
	}
	if len(r.policy.IncludeAssemblies) == 0 {
		return true
	}
	for _, ai := range t.AssemblyInfo {
		for _, in := range r.policy.IncludeAssemblies {
			if strings.EqualFold(in, ai.AssemblyName) {
				return true
			}
		}
	}
	return false
}

// field identifies one documentable text field.
type field int

const (
	fieldSummary field = iota
	fieldRemarks
	fieldReturns
	fieldValue
)

// srcText reads one field from a source member. Property text may appear
// under either the value or the returns field; the first non-empty wins.
func srcText(m *triple.Member, f field) string {
	switch f {
	case fieldSummary:
		return m.Summary
	case fieldRemarks:
		return m.Remarks
	case fieldReturns:
		return m.Returns
	case fieldValue:
		if !markup.IsEmpty(m.Value) {
			return m.Value
		}
		return m.Returns
	}
	return ""
}

func dstMemberText(m *ecma.Member, f field) string {
	switch f {
	case fieldSummary:
		return m.Summary()
	case fieldRemarks:
		return m.Remarks()
	case fieldReturns:
		return m.Returns()
	case fieldValue:
		return m.Value()
	}
	return ""
}

func dstTypeText(t *ecma.Type, f field) string {
	switch f {
	case fieldSummary:
		return t.Summary()
	case fieldRemarks:
		return t.Remarks()
	}
	return ""
}

// --- type resolution ---

func (r *Resolver) resolveType(t *ecma.Type) error {
	id := t.DocID()
	src, hasSrc := r.src.Lookup(id)

	// Preserve mode: record the marker verbatim, copy no text.
	if hasSrc && src.Inherit != nil && r.policy.PreserveInheritDoc {
		if t.Docs.Inherit == nil {
			t.SetInheritDoc(src.Inherit.Cref)
			r.report.noteType(id, t.Path())
		}
		return nil
	}

	if r.policy.TypeSummaries && ecma.EmptyDoc(t.Summary()) {
		if txt := r.typeChainText(t, fieldSummary); txt != "" {
			t.SetSummary(markup.ToXML(txt))
			r.report.noteType(id, t.Path())
		}
	}
	if r.policy.TypeRemarks && ecma.EmptyDoc(t.Remarks()) {
		if txt := r.typeChainText(t, fieldRemarks); txt != "" {
			t.SetRemarks(r.formatRemarks(txt))
			r.report.noteType(id, t.Path())
		}
	}

	if r.policy.TypeParams {
		cand := r.typeParamCandidate(t)
		if cand == nil {
			return nil
		}
		declared := make([]string, 0, len(t.TypeParameters))
		for _, tp := range t.TypeParameters {
			declared = append(declared, tp.Name)
		}
		return r.portNamedTexts(namedPort{
			targetID: id,
			path:     t.Path(),
			kind:     "type parameter",
			declared: declared,
			existing: func(name string) string { return typeParamText(t, name) },
			set: func(name, text string) {
				t.SetTypeParamText(name, text)
				r.report.noteType(id, t.Path())
			},
			available: cand.TypeParams,
		})
	}
	return nil
}

// typeParamCandidate returns the source fragment whose type parameters
// should document the target type: the direct match, or the fragment its
// inherit-doc marker resolves to.
func (r *Resolver) typeParamCandidate(t *ecma.Type) *triple.Member {
	src, ok := r.src.Lookup(t.DocID())
	if !ok {
		return nil
	}
	if src.Inherit == nil {
		return src
	}
	if cref := src.Inherit.Cref; cref != "" {
		if target, ok := r.src.Lookup(cref); ok {
			return target
		}
		return nil
	}
	// bare marker: walk the declared base types
	visited := map[string]bool{t.DocID(): true}
	cur := t
	for {
		baseName := cur.BaseTypeName()
		if baseName == "" {
			return nil
		}
		base, ok := r.dst.LookupTypeByName(baseName)
		if !ok || visited[base.DocID()] {
			return nil
		}
		visited[base.DocID()] = true
		if s, ok := r.src.Lookup(base.DocID()); ok && s.Inherit == nil {
			return s
		}
		cur = base
	}
}

func typeParamText(t *ecma.Type, name string) string {
	for _, p := range t.Docs.TypeParams {
		if p.Name == name {
			return p.Text
		}
	}
	return ""
}

// typeChainText resolves one type-level field through the candidate chain:
// direct match, then inherit-doc (explicit cref or base-type walk).
func (r *Resolver) typeChainText(t *ecma.Type, f field) string {
	src, ok := r.src.Lookup(t.DocID())
	if !ok {
		return ""
	}
	if src.Inherit == nil {
		if txt := srcText(src, f); !markup.IsEmpty(txt) {
			return txt
		}
		return ""
	}
	if cref := src.Inherit.Cref; cref != "" {
		if target, ok := r.src.Lookup(cref); ok {
			if txt := srcText(target, f); !markup.IsEmpty(txt) {
				return txt
			}
		}
		return ""
	}
	visited := map[string]bool{t.DocID(): true}
	return r.baseTypeText(t, f, visited)
}

// baseTypeText walks declared base-type names through the target corpus.
// The walk is over the indexed name table, guarded by a visited set so
// self-referential or mutually-referential base names terminate.
func (r *Resolver) baseTypeText(t *ecma.Type, f field, visited map[string]bool) string {
	baseName := t.BaseTypeName()
	if baseName == "" {
		return ""
	}
	base, ok := r.dst.LookupTypeByName(baseName)
	if !ok || visited[base.DocID()] {
		return ""
	}
	visited[base.DocID()] = true

	// Text already authored on the base wins; otherwise resolve the base
	// from the source corpus first, then keep walking.
	if txt := dstTypeText(base, f); !markup.IsEmpty(txt) {
		return txt
	}
	if s, ok := r.src.Lookup(base.DocID()); ok {
		if s.Inherit == nil {
			if txt := srcText(s, f); !markup.IsEmpty(txt) {
				return txt
			}
			return ""
		}
		if cref := s.Inherit.Cref; cref != "" {
			if target, ok := r.src.Lookup(cref); ok {
				if txt := srcText(target, f); !markup.IsEmpty(txt) {
					return txt
				}
			}
			return ""
		}
		// bare marker on the base: continue the walk
	}
	return r.baseTypeText(base, f, visited)
}

// --- member resolution ---

// missingComments stages candidate text before it is selectively written
// into the target field by field, subject to policy.
type missingComments struct {
	Summary string
	Returns string
	Remarks string
	Value   string
	// EII marks any field as filled by the interface fallback;
	// RemarksSynthesized marks the remarks specifically as synthesized
	// (and therefore already formatted) rather than chain-resolved.
	EII                bool
	RemarksSynthesized bool
}

func (r *Resolver) resolveMember(m *ecma.Member) error {
	id := m.DocID()
	if id == "" {
		return nil
	}
	src, hasSrc := r.src.Lookup(id)

	if hasSrc && src.Inherit != nil && r.policy.PreserveInheritDoc {
		if m.Docs.Inherit == nil {
			m.SetInheritDoc(src.Inherit.Cref)
			r.report.noteMember(id, m.Parent().Path())
		}
		return nil
	}

	mc := r.stageMember(m)
	r.applyMember(m, mc)

	if candidate := r.candidateMember(m); candidate != nil {
		if err := r.portParams(m, candidate); err != nil {
			return err
		}
		if err := r.portTypeParams(m, candidate); err != nil {
			return err
		}
		r.portExceptions(m, candidate)
	}
	return nil
}

// stageMember evaluates the candidate chain for every member field.
func (r *Resolver) stageMember(m *ecma.Member) *missingComments {
	mc := &missingComments{}

	mc.Summary = r.memberChainText(m, fieldSummary)
	mc.Remarks = r.memberChainText(m, fieldRemarks)
	if m.Kind() == "Method" && !m.IsVoid() {
		mc.Returns = r.memberChainText(m, fieldReturns)
	}
	if m.Kind() == "Property" {
		mc.Value = r.memberChainText(m, fieldValue)
	}

	// Explicit-interface-implementation fallback for whatever the chain
	// left empty.
	iface, ok := r.interfaced(m)
	if !ok {
		return mc
	}
	if mc.Summary == "" && !markup.IsEmpty(iface.summary) {
		mc.Summary = iface.summary
		mc.EII = true
	}
	if mc.Returns == "" && m.Kind() == "Method" && !m.IsVoid() && !markup.IsEmpty(iface.returns) {
		mc.Returns = iface.returns
		mc.EII = true
	}
	if mc.Value == "" && m.Kind() == "Property" && !markup.IsEmpty(iface.value) {
		mc.Value = iface.value
		mc.EII = true
	}
	if mc.Remarks == "" {
		mc.Remarks = r.eiiRemarks(m, iface.id, iface.remarks)
		mc.RemarksSynthesized = true
		mc.EII = true
	}
	return mc
}

// applyMember writes staged text into empty, policy-enabled fields only.
func (r *Resolver) applyMember(m *ecma.Member, mc *missingComments) {
	id := m.DocID()
	path := m.Parent().Path()

	if r.policy.MemberSummaries && mc.Summary != "" && ecma.EmptyDoc(m.Summary()) {
		m.SetSummary(markup.ToXML(mc.Summary))
		r.report.noteMember(id, path)
	}
	if r.policy.Returns && mc.Returns != "" && ecma.EmptyDoc(m.Returns()) {
		m.SetReturns(markup.ToXML(mc.Returns))
		r.report.noteMember(id, path)
	}
	if r.policy.PropertyValues && mc.Value != "" && ecma.EmptyDoc(m.Value()) {
		m.SetValue(markup.ToXML(mc.Value))
		r.report.noteMember(id, path)
	}

	// Enum field members never receive remarks; the target schema forbids
	// them.
	enumField := m.Kind() == "Field" && m.Parent().IsEnum()
	if r.policy.MemberRemarks && mc.Remarks != "" && !enumField && ecma.EmptyDoc(m.Remarks()) {
		if mc.RemarksSynthesized {
			m.SetRemarks(mc.Remarks) // synthesized, already formatted
		} else {
			m.SetRemarks(r.formatRemarks(mc.Remarks))
		}
		r.report.noteMember(id, path)
	}

	if mc.EII && m.Changed() {
		m.MarkEIIPort()
	}
}

// memberChainText resolves one member field through direct match and
// inherit-doc resolution.
func (r *Resolver) memberChainText(m *ecma.Member, f field) string {
	src, ok := r.src.Lookup(m.DocID())
	if !ok {
		return ""
	}
	if src.Inherit == nil {
		if txt := srcText(src, f); !markup.IsEmpty(txt) {
			return txt
		}
		return ""
	}
	if cref := src.Inherit.Cref; cref != "" {
		if target, ok := r.src.Lookup(cref); ok {
			if txt := srcText(target, f); !markup.IsEmpty(txt) {
				return txt
			}
		}
		return ""
	}
	visited := map[string]bool{m.Parent().DocID(): true}
	return r.baseMemberText(m.Parent(), m.DocID(), f, visited)
}

// baseMemberText walks the declaring type's base-type chain, rebasing the
// member identifier onto each base in turn.
func (r *Resolver) baseMemberText(t *ecma.Type, id string, f field, visited map[string]bool) string {
	baseName := t.BaseTypeName()
	if baseName == "" {
		return ""
	}
	base, ok := r.dst.LookupTypeByName(baseName)
	if !ok || visited[base.DocID()] {
		return ""
	}
	visited[base.DocID()] = true

	rebased := docid.Rebase(id, base.FullName)
	if bm, ok := r.dst.LookupMember(rebased); ok {
		if txt := dstMemberText(bm, f); !markup.IsEmpty(txt) {
			return txt
		}
	}
	if s, ok := r.src.Lookup(rebased); ok {
		if s.Inherit == nil {
			if txt := srcText(s, f); !markup.IsEmpty(txt) {
				return txt
			}
			return ""
		}
		if cref := s.Inherit.Cref; cref != "" {
			if target, ok := r.src.Lookup(cref); ok {
				if txt := srcText(target, f); !markup.IsEmpty(txt) {
					return txt
				}
			}
			return ""
		}
		// bare marker on the base member: keep walking
	}
	return r.baseMemberText(base, id, f, visited)
}

// candidateMember returns the source fragment whose parameters and
// exceptions should document the target: the direct match, or the
// fragment its inherit-doc marker resolves to.
func (r *Resolver) candidateMember(m *ecma.Member) *triple.Member {
	src, ok := r.src.Lookup(m.DocID())
	if !ok {
		return nil
	}
	if src.Inherit == nil {
		return src
	}
	if cref := src.Inherit.Cref; cref != "" {
		if target, ok := r.src.Lookup(cref); ok {
			return target
		}
		return nil
	}
	// bare marker: rebase the identifier down the base-type chain
	visited := map[string]bool{m.Parent().DocID(): true}
	t := m.Parent()
	for {
		baseName := t.BaseTypeName()
		if baseName == "" {
			return nil
		}
		base, ok := r.dst.LookupTypeByName(baseName)
		if !ok || visited[base.DocID()] {
			return nil
		}
		visited[base.DocID()] = true
		if s, ok := r.src.Lookup(docid.Rebase(m.DocID(), base.FullName)); ok && s.Inherit == nil {
			return s
		}
		t = base
	}
}

// --- explicit interface implementations ---

type interfacedDocs struct {
	id      string
	summary string
	returns string
	value   string
	remarks string
}

// interfaced resolves the interface member this member explicitly
// implements. The documentation repository is consulted first, field by
// field; a field the repository leaves empty or placeholder-only falls
// through to the source corpus, so a stub interface document never
// shadows documented source text.
func (r *Resolver) interfaced(m *ecma.Member) (interfacedDocs, bool) {
	if r.policy.SkipInterfaceImplementations {
		return interfacedDocs{}, false
	}
	id := m.ImplementsMember()
	if id == "" {
		return interfacedDocs{}, false
	}
	docs := interfacedDocs{id: id}
	found := false
	if dm, ok := r.dst.LookupMember(id); ok {
		found = true
		docs.summary = dm.Summary()
		docs.returns = dm.Returns()
		docs.value = dm.Value()
		docs.remarks = dm.Remarks()
	}
	if sm, ok := r.src.Lookup(id); ok {
		found = true
		if markup.IsEmpty(docs.summary) {
			docs.summary = sm.Summary
		}
		if markup.IsEmpty(docs.returns) {
			docs.returns = sm.Returns
		}
		if markup.IsEmpty(docs.value) {
			docs.value = sm.Value
		}
		if markup.IsEmpty(docs.remarks) {
			docs.remarks = sm.Remarks
		}
	}
	return docs, found
}

// eiiRemarks synthesizes remarks for an explicit interface implementation:
// the fixed explanatory sentence naming both types by reference, optionally
// followed by the interfaced member's cleaned remarks.
func (r *Resolver) eiiRemarks(m *ecma.Member, ifaceID, ifaceRemarks string) string {
	declaringID := "T:" + docid.Parent(m.DocID())
	ifaceTypeID := "T:" + docid.Parent(ifaceID)

	ref := markup.SeeCref
	if r.policy.MarkdownRemarks {
		ref = markup.Xref
	}
	s := fmt.Sprintf(
		"This member is an explicit interface member implementation. "+
			"It can be used only when the %s instance is cast to an %s interface.",
		ref(declaringID), ref(ifaceTypeID))

	if !r.policy.SkipInterfaceRemarks && !markup.IsEmpty(ifaceRemarks) {
		if cleaned := markup.CleanRemarks(ifaceRemarks); cleaned != "" {
			if r.policy.MarkdownRemarks {
				s += "\n\n" + markup.ToMarkdown(cleaned)
			} else {
				s += "\n\n" + markup.ToXML(cleaned)
			}
		}
	}
	if r.policy.MarkdownRemarks {
		return markup.WrapRemarks(s)
	}
	return s
}

// --- params and type params ---

type namedPort struct {
	targetID  string
	path      string
	kind      string
	declared  []string
	existing  func(name string) string
	set       func(name, text string)
	available []triple.Param
}

func (r *Resolver) portParams(m *ecma.Member, src *triple.Member) error {
	if !r.policy.Params {
		return nil
	}
	declared := make([]string, 0, len(m.Parameters))
	for _, p := range m.Parameters {
		declared = append(declared, p.Name)
	}
	id := m.DocID()
	return r.portNamedTexts(namedPort{
		targetID: id,
		path:     m.Parent().Path(),
		kind:     "parameter",
		declared: declared,
		existing: m.ParamText,
		set: func(name, text string) {
			m.SetParamText(name, text)
			r.report.noteMember(id, m.Parent().Path())
		},
		available: src.Params,
	})
}

func (r *Resolver) portTypeParams(m *ecma.Member, src *triple.Member) error {
	if !r.policy.TypeParams {
		return nil
	}
	declared := make([]string, 0, len(m.TypeParameters))
	for _, p := range m.TypeParameters {
		declared = append(declared, p.Name)
	}
	id := m.DocID()
	return r.portNamedTexts(namedPort{
		targetID: id,
		path:     m.Parent().Path(),
		kind:     "type parameter",
		declared: declared,
		existing: m.TypeParamText,
		set: func(name, text string) {
			m.SetTypeParamText(name, text)
			r.report.noteMember(id, m.Parent().Path())
		},
		available: src.TypeParams,
	})
}

// portNamedTexts fills empty named entries from the candidate list. A
// declared name absent from the candidate list is resolved interactively
// when a prompter is available, otherwise recorded as a problem.
func (r *Resolver) portNamedTexts(np namedPort) error {
	if len(np.declared) == 0 || len(np.available) == 0 {
		return nil
	}
	if len(np.available) != len(np.declared) {
		r.report.problem(np.targetID, fmt.Sprintf(
			"%s count mismatch: target declares %d, source documents %d",
			np.kind, len(np.declared), len(np.available)))
	}

	for _, name := range np.declared {
		if !markup.IsEmpty(np.existing(name)) {
			continue
		}
		if p, ok := lookupParam(np.available, name); ok {
			if markup.IsEmpty(p.Text) {
				continue
			}
			np.set(name, markup.ToXML(p.Text))
			continue
		}

		if r.prompter == nil {
			r.report.problem(np.targetID, fmt.Sprintf("%s %q not found in source", np.kind, name))
			continue
		}
		candidates := make([]string, 0, len(np.available))
		for _, p := range np.available {
			candidates = append(candidates, p.Name)
		}
		choice, idx, err := r.prompter.ResolveName(np.targetID, np.kind, name, candidates)
		if err != nil {
			return fmt.Errorf("prompting for %s %q of %s: %w", np.kind, name, np.targetID, err)
		}
		switch choice {
		case ChoiceAbort:
			return ErrAborted
		case ChoiceSelect:
			if idx >= 0 && idx < len(np.available) && !markup.IsEmpty(np.available[idx].Text) {
				np.set(name, markup.ToXML(np.available[idx].Text))
			}
		case ChoiceSkip:
			// left undocumented
		}
	}
	return nil
}

func lookupParam(list []triple.Param, name string) (triple.Param, bool) {
	for _, p := range list {
		if p.Name == name {
			return p, true
		}
	}
	return triple.Param{}, false
}

func (r *Resolver) formatRemarks(text string) string {
	if r.policy.MarkdownRemarks {
		return markup.RemarksToMarkdown(text)
	}
	return markup.ToXML(text)
}
