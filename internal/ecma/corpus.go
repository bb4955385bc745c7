package ecma

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Problem records a per-document load failure or duplicate identifier.
type Problem struct {
	Path string
	Msg  string
}

// Corpus indexes the documentation repository: types by DocId and by full
// name (base-type references are by name), members by DocId. Iteration
// follows insertion order.
type Corpus struct {
	types       map[string]*Type
	typesByName map[string]*Type
	members     map[string]*Member
	typeOrder   []*Type
	memberOrder []*Member
	problems    []Problem
}

func NewCorpus() *Corpus {
	return &Corpus{
		types:       make(map[string]*Type),
		typesByName: make(map[string]*Type),
		members:     make(map[string]*Member),
	}
}

// Load parses one type document from raw bytes. The first occurrence of
// any DocId wins; later duplicates are reported and ignored.
func (c *Corpus) Load(data []byte, path string) error {
	hadBOM := bytes.HasPrefix(data, utf8BOM)
	data = bytes.TrimPrefix(data, utf8BOM)

	var t Type
	if err := xml.Unmarshal(data, &t); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	t.path = path
	t.hadBOM = hadBOM
	c.add(&t)
	return nil
}

func (c *Corpus) add(t *Type) {
	id := t.DocID()
	if _, dup := c.types[id]; dup {
		c.problems = append(c.problems, Problem{
			Path: t.path,
			Msg:  fmt.Sprintf("duplicate type %s ignored", id),
		})
		return
	}
	c.types[id] = t
	c.typesByName[t.FullName] = t
	c.typeOrder = append(c.typeOrder, t)

	for _, m := range t.Members {
		m.parent = t
		mid := m.DocID()
		if mid == "" {
			continue
		}
		if _, dup := c.members[mid]; dup {
			c.problems = append(c.problems, Problem{
				Path: t.path,
				Msg:  fmt.Sprintf("duplicate member %s ignored", mid),
			})
			continue
		}
		c.members[mid] = m
		c.memberOrder = append(c.memberOrder, m)
	}
}

// LoadFile parses a single type document.
func (c *Corpus) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return c.Load(data, path)
}

// LoadDir walks dir recursively, parsing every .xml file. Parsing runs in
// parallel; insertion is sequential in sorted path order for reproducible
// iteration. Files that fail to parse are recorded and skipped.
func (c *Corpus) LoadDir(dir string) error {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".xml") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walking %s: %w", dir, err)
	}
	sort.Strings(paths)

	parsed := make([]*Type, len(paths))
	perr := make([]error, len(paths))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		g.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				perr[i] = err
				return nil
			}
			hadBOM := bytes.HasPrefix(data, utf8BOM)
			data = bytes.TrimPrefix(data, utf8BOM)
			var t Type
			if err := xml.Unmarshal(data, &t); err != nil {
				perr[i] = err
				return nil
			}
			t.path = path
			t.hadBOM = hadBOM
			parsed[i] = &t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, t := range parsed {
		if perr[i] != nil {
			c.problems = append(c.problems, Problem{Path: paths[i], Msg: perr[i].Error()})
			continue
		}
		c.add(t)
	}
	return nil
}

// LookupType returns the type with the exact DocId.
func (c *Corpus) LookupType(id string) (*Type, bool) {
	t, ok := c.types[id]
	return t, ok
}

// LookupTypeByName returns the type with the given full name. Base-type
// edges are weak by-name references resolved through this index.
func (c *Corpus) LookupTypeByName(fullName string) (*Type, bool) {
	t, ok := c.typesByName[fullName]
	return t, ok
}

// LookupMember returns the member with the exact DocId.
func (c *Corpus) LookupMember(id string) (*Member, bool) {
	m, ok := c.members[id]
	return m, ok
}

// AllTypes returns every type in insertion order.
func (c *Corpus) AllTypes() []*Type { return c.typeOrder }

// AllMembers returns every member in insertion order.
func (c *Corpus) AllMembers() []*Member { return c.memberOrder }

// Problems returns the load problems collected so far.
func (c *Corpus) Problems() []Problem { return c.problems }

// Marshal serializes a type document, restoring the UTF-8 BOM when the
// original file carried one.
func (t *Type) Marshal() ([]byte, error) {
	body, err := xml.MarshalIndent(t, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", t.DocID(), err)
	}
	var buf bytes.Buffer
	if t.hadBOM {
		buf.Write(utf8BOM)
	}
	buf.WriteString(xml.Header)
	buf.Write(body)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Save writes the document back to its origin file.
func (t *Type) Save() error {
	data, err := t.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(t.path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", t.path, err)
	}
	return nil
}
