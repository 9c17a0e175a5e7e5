// Package output writes the files produced by a clone run.
//
// A Writer either writes straight to the destination filesystem or stages
// every file in memory and copies them over on Commit. Re-running into an
// existing directory overwrites files; nothing is ever merged or removed.
package output

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/spf13/afero"
)

// Writer receives the files of one clone run.
type Writer interface {
	// MkdirAll creates a directory and its parents.
	MkdirAll(dir string) error
	// WriteFile writes data to path, replacing any existing file.
	WriteFile(path string, data []byte) error
	// Commit makes staged files visible. It is a no-op for direct writers.
	Commit() error
	// Files lists every path written so far, sorted.
	Files() []string
}

type tracker struct {
	mu    sync.Mutex
	files map[string]int
}

func (t *tracker) track(path string, size int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.files == nil {
		t.files = make(map[string]int)
	}
	t.files[filepath.Clean(path)] = size
}

func (t *tracker) list() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, 0, len(t.files))
	for p := range t.files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Direct writes through to the destination immediately.
type Direct struct {
	fs afero.Fs
	tracker
}

// NewDirect returns a Writer that writes to afs as files are produced.
func NewDirect(afs afero.Fs) *Direct {
	return &Direct{fs: afs}
}

// MkdirAll implements Writer.
func (d *Direct) MkdirAll(dir string) error {
	return d.fs.MkdirAll(dir, 0o755)
}

// WriteFile implements Writer.
func (d *Direct) WriteFile(path string, data []byte) error {
	if err := d.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := afero.WriteFile(d.fs, path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	d.track(path, len(data))
	return nil
}

// Commit implements Writer.
func (d *Direct) Commit() error { return nil }

// Files implements Writer.
func (d *Direct) Files() []string { return d.list() }

// Staged buffers files in memory until Commit.
type Staged struct {
	dest  afero.Fs
	stage afero.Fs
	dirs  []string
	tracker
}

// NewStaged returns a Writer that holds every file in memory until Commit.
// Directories passed to MkdirAll reach the destination on Commit too.
func NewStaged(dest afero.Fs) *Staged {
	return &Staged{dest: dest, stage: afero.NewMemMapFs()}
}

// MkdirAll implements Writer.
func (s *Staged) MkdirAll(dir string) error {
	s.dirs = append(s.dirs, dir)
	return s.stage.MkdirAll(dir, 0o755)
}

// WriteFile implements Writer.
func (s *Staged) WriteFile(path string, data []byte) error {
	if err := afero.WriteFile(s.stage, path, data, 0o644); err != nil {
		return fmt.Errorf("failed to stage %s: %w", path, err)
	}
	s.track(path, len(data))
	return nil
}

// Commit copies every staged directory and file to the destination.
func (s *Staged) Commit() error {
	for _, dir := range s.dirs {
		if err := s.dest.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	for _, path := range s.list() {
		data, err := afero.ReadFile(s.stage, path)
		if err != nil {
			return fmt.Errorf("failed to read staged %s: %w", path, err)
		}
		if err := s.dest.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := afero.WriteFile(s.dest, path, data, 0o644); err != nil {
			return fmt.Errorf("failed to commit %s: %w", path, err)
		}
	}
	return nil
}

// Files implements Writer.
func (s *Staged) Files() []string { return s.list() }
