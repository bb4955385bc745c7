package triple

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheRoundTrip(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	c := NewCorpus(Options{})
	if err := c.Load(strings.NewReader(sampleDoc), "sample.xml"); err != nil {
		t.Fatal(err)
	}

	const digest = "deadbeef"
	if HasCache(digest) {
		t.Fatal("cache unexpectedly present")
	}
	if err := SaveCache(c, digest); err != nil {
		t.Fatalf("SaveCache: %v", err)
	}
	if !HasCache(digest) {
		t.Fatal("cache missing after save")
	}

	loaded, err := LoadCache(digest, Options{})
	if err != nil {
		t.Fatalf("LoadCache: %v", err)
	}
	if loaded.Len() != c.Len() {
		t.Fatalf("Len = %d, want %d", loaded.Len(), c.Len())
	}
	m, ok := loaded.Lookup("M:Acme.Widgets.Widget.Frob(System.Int32)")
	if !ok || m.Summary != "Frobs the widget." {
		t.Errorf("cached member mismatch: %+v, %v", m, ok)
	}

	// the assembly filter still applies to cached corpora
	filtered, err := LoadCache(digest, Options{ExcludeAssemblies: []string{"Acme.Widgets"}})
	if err != nil {
		t.Fatal(err)
	}
	if filtered.Len() != 0 {
		t.Errorf("filtered Len = %d, want 0", filtered.Len())
	}

	if err := ClearCache(); err != nil {
		t.Fatalf("ClearCache: %v", err)
	}
	if HasCache(digest) {
		t.Error("cache present after clear")
	}
}

func TestDirDigestChangesWithContent(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "a.xml")
	if err := os.WriteFile(path, []byte("<doc/>"), 0644); err != nil {
		t.Fatal(err)
	}

	d1, err := DirDigest(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("<doc><assembly/></doc>"), 0644); err != nil {
		t.Fatal(err)
	}
	d2, err := DirDigest(dir)
	if err != nil {
		t.Fatal(err)
	}
	if d1 == d2 {
		t.Error("digest unchanged after file modification")
	}
}
