package triple

import (
	"encoding/xml"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Options filters which assemblies participate in a corpus. An identifier
// from an assembly outside the included set is neither a candidate nor a
// target. An empty Include list admits every assembly not excluded.
type Options struct {
	IncludeAssemblies []string
	ExcludeAssemblies []string
}

func (o Options) admits(assembly string) bool {
	for _, ex := range o.ExcludeAssemblies {
		if strings.EqualFold(ex, assembly) {
			return false
		}
	}
	if len(o.IncludeAssemblies) == 0 {
		return true
	}
	for _, in := range o.IncludeAssemblies {
		if strings.EqualFold(in, assembly) {
			return true
		}
	}
	return false
}

// Problem records a per-document load failure or a duplicate identifier.
// Loading fails softly: problems are collected, never aborting the run.
type Problem struct {
	Path string
	Msg  string
}

// Corpus is an indexed collection of source-dialect members. Lookup is by
// exact DocId; iteration follows insertion order.
type Corpus struct {
	opts     Options
	members  map[string]*Member
	order    []*Member
	problems []Problem
}

func NewCorpus(opts Options) *Corpus {
	return &Corpus{
		opts:    opts,
		members: make(map[string]*Member),
	}
}

// Load parses one document and appends its members. Within a corpus the
// first occurrence of a DocId wins; later duplicates are reported and
// ignored, never merged.
func (c *Corpus) Load(r io.Reader, path string) error {
	var doc document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	c.add(&doc, path)
	return nil
}

func (c *Corpus) add(doc *document, path string) {
	if !c.opts.admits(doc.Assembly.Name) {
		return
	}
	for i := range doc.Members {
		m := doc.Members[i].toMember(doc.Assembly.Name)
		if m.ID == "" {
			continue
		}
		if _, dup := c.members[m.ID]; dup {
			c.problems = append(c.problems, Problem{
				Path: path,
				Msg:  fmt.Sprintf("duplicate member %s ignored", m.ID),
			})
			continue
		}
		c.members[m.ID] = m
		c.order = append(c.order, m)
	}
}

// LoadFile parses a single XML file into the corpus.
func (c *Corpus) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return c.Load(f, path)
}

// LoadDir walks dir recursively, parsing every .xml file. Parsing runs in
// parallel; insertion is sequential in sorted path order so iteration
// order is reproducible for identical inputs. A file that fails to parse
// is recorded as a problem and skipped.
func (c *Corpus) LoadDir(dir string) error {
	paths, err := listXMLFiles(dir)
	if err != nil {
		return err
	}

	docs := make([]*document, len(paths))
	perr := make([]error, len(paths))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		g.Go(func() error {
			f, err := os.Open(path)
			if err != nil {
				perr[i] = err
				return nil
			}
			defer f.Close()
			var doc document
			if err := xml.NewDecoder(f).Decode(&doc); err != nil {
				perr[i] = err
				return nil
			}
			docs[i] = &doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, doc := range docs {
		if perr[i] != nil {
			c.problems = append(c.problems, Problem{Path: paths[i], Msg: perr[i].Error()})
			continue
		}
		c.add(doc, paths[i])
	}
	return nil
}

func listXMLFiles(dir string) ([]string, error) {
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
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	sort.Strings(paths)
	return paths, nil
}

// Lookup returns the member with the exact identifier.
func (c *Corpus) Lookup(id string) (*Member, bool) {
	m, ok := c.members[id]
	return m, ok
}

// All returns every member in insertion order.
func (c *Corpus) All() []*Member {
	return c.order
}

// Len reports the number of indexed members.
func (c *Corpus) Len() int {
	return len(c.order)
}

// Problems returns the load problems collected so far.
func (c *Corpus) Problems() []Problem {
	return c.problems
}
