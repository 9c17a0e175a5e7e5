package publish

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/afero"
	"github.com/zeebo/blake3"
)

// ManifestName is the object name of the manifest under a publish prefix.
const ManifestName = "manifest.json"

// FileEntry describes one published file.
type FileEntry struct {
	// Path is slash-separated and relative to the published directory.
	Path   string `json:"path"`
	Size   int64  `json:"size"`
	BLAKE3 string `json:"blake3"`
}

// Manifest lists the files of a published directory.
type Manifest struct {
	Name        string      `json:"name"`
	GeneratedAt time.Time   `json:"generated_at"`
	Files       []FileEntry `json:"files"`
}

// Digests maps each path to its digest.
func (m *Manifest) Digests() map[string]string {
	if m == nil {
		return map[string]string{}
	}
	out := make(map[string]string, len(m.Files))
	for _, f := range m.Files {
		out[f.Path] = f.BLAKE3
	}
	return out
}

// BuildManifest hashes every regular file below dir, sorted by path.
func BuildManifest(afs afero.Fs, dir, name string) (*Manifest, error) {
	m := &Manifest{Name: name, GeneratedAt: time.Now().UTC(), Files: []FileEntry{}}

	err := afero.Walk(afs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		digest, err := hashFile(afs, path)
		if err != nil {
			return err
		}
		m.Files = append(m.Files, FileEntry{Path: filepath.ToSlash(rel), Size: info.Size(), BLAKE3: digest})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	sort.Slice(m.Files, func(i, j int) bool { return m.Files[i].Path < m.Files[j].Path })
	return m, nil
}

func hashFile(afs afero.Fs, path string) (string, error) {
	f, err := afs.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := blake3.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Encode renders the manifest as indented JSON.
func (m *Manifest) Encode() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

// DecodeManifest parses a manifest document.
func DecodeManifest(r io.Reader) (*Manifest, error) {
	var m Manifest
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}
	return &m, nil
}
