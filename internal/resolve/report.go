package resolve

// Problem is a per-element issue that did not abort the run.
type Problem struct {
	ID  string
	Msg string
}

// AddedException records one exception entry created or extended.
type AddedException struct {
	MemberID string
	Cref     string
}

// Report aggregates everything a run changed. It is assembled by the
// engine and returned to the caller; the engine keeps no process-wide
// state between runs.
type Report struct {
	ModifiedFiles    []string
	ModifiedTypes    []string
	ModifiedMembers  []string
	Problems         []Problem
	AddedExceptions  []AddedException
	ModifiedElements int

	files   map[string]bool
	types   map[string]bool
	members map[string]bool
}

func newReport() *Report {
	return &Report{
		files:   make(map[string]bool),
		types:   make(map[string]bool),
		members: make(map[string]bool),
	}
}

func (r *Report) noteFile(path string) {
	if path != "" && !r.files[path] {
		r.files[path] = true
		r.ModifiedFiles = append(r.ModifiedFiles, path)
	}
}

func (r *Report) noteType(id, path string) {
	r.ModifiedElements++
	r.noteFile(path)
	if !r.types[id] {
		r.types[id] = true
		r.ModifiedTypes = append(r.ModifiedTypes, id)
	}
}

func (r *Report) noteMember(id, path string) {
	r.ModifiedElements++
	r.noteFile(path)
	if !r.members[id] {
		r.members[id] = true
		r.ModifiedMembers = append(r.ModifiedMembers, id)
	}
}

func (r *Report) problem(id, msg string) {
	r.Problems = append(r.Problems, Problem{ID: id, Msg: msg})
}

func (r *Report) addedException(memberID, cref string) {
	r.AddedExceptions = append(r.AddedExceptions, AddedException{MemberID: memberID, Cref: cref})
}
