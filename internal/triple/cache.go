package triple

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/portdocs/portdocs/internal/config"
)

// DirDigest fingerprints a corpus directory by the path, size and mtime of
// every XML file in it. Two directories with identical listings share a
// cache entry.
func DirDigest(dir string) (string, error) {
	paths, err := listXMLFiles(dir)
	if err != nil {
		return "", err
	}
	h := sha256.New()
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return "", fmt.Errorf("stat %s: %w", path, err)
		}
		fmt.Fprintf(h, "%s\x00%d\x00%d\n", path, info.Size(), info.ModTime().UnixNano())
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func cachePath(digest string) string {
	return filepath.Join(config.CorpusCacheDir(), digest+".json.zst")
}

// SaveCache compresses and saves a parsed corpus to disk.
func SaveCache(c *Corpus, digest string) error {
	dir := config.CorpusCacheDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating corpus cache dir: %w", err)
	}

	f, err := os.Create(cachePath(digest))
	if err != nil {
		return fmt.Errorf("creating cache file: %w", err)
	}
	defer f.Close()

	w, err := zstd.NewWriter(f)
	if err != nil {
		return fmt.Errorf("creating zstd writer: %w", err)
	}

	if err := json.NewEncoder(w).Encode(c.order); err != nil {
		w.Close()
		return fmt.Errorf("writing compressed corpus: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing zstd writer: %w", err)
	}
	return nil
}

// LoadCache loads and decompresses a cached corpus from disk.
func LoadCache(digest string, opts Options) (*Corpus, error) {
	f, err := os.Open(cachePath(digest))
	if err != nil {
		return nil, fmt.Errorf("opening cache file: %w", err)
	}
	defer f.Close()

	r, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("creating zstd reader: %w", err)
	}
	defer r.Close()

	var members []*Member
	if err := json.NewDecoder(io.Reader(r)).Decode(&members); err != nil {
		return nil, fmt.Errorf("decoding cached corpus: %w", err)
	}

	c := NewCorpus(opts)
	for _, m := range members {
		if !opts.admits(m.Assembly) {
			continue
		}
		if _, dup := c.members[m.ID]; dup {
			continue
		}
		c.members[m.ID] = m
		c.order = append(c.order, m)
	}
	return c, nil
}

// HasCache checks whether a cached corpus exists for the digest.
func HasCache(digest string) bool {
	_, err := os.Stat(cachePath(digest))
	return err == nil
}

// ClearCache removes every cached corpus.
func ClearCache() error {
	dir := config.CorpusCacheDir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading corpus cache dir: %w", err)
	}
	for _, e := range entries {
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			return fmt.Errorf("removing %s: %w", e.Name(), err)
		}
	}
	return nil
}
