package gamefs

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"asset-cloner/core/packfile"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// PackfileExt is the extension of indexed packfiles.
const PackfileExt = ".vpp_pc"

// Source opens game files by name.
type Source interface {
	// Open returns the named file. It returns an error wrapping fs.ErrNotExist when absent.
	Open(name string) (io.ReadCloser, error)
	// Exists reports whether the named file can be opened.
	Exists(name string) bool
	// Glob returns the names of all files matching pattern, sorted.
	Glob(pattern string) []string
}

type location struct {
	name     string
	path     string
	packfile string
}

// Dir is a Source backed by data directories on an afero filesystem.
type Dir struct {
	fs     afero.Fs
	files  map[string]location
	logger *zap.Logger
}

// NewDir indexes the given roots.
func NewDir(afs afero.Fs, roots []string, logger *zap.Logger) (*Dir, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &Dir{fs: afs, files: make(map[string]location), logger: logger}

	var packs []string
	for _, root := range roots {
		ok, err := afero.DirExists(afs, root)
		if err != nil {
			return nil, fmt.Errorf("failed to stat data dir %s: %w", root, err)
		}
		if !ok {
			logger.Warn("Data directory not found", zap.String("dir", root))
			continue
		}
		err = afero.Walk(afs, root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return nil
			}
			if strings.EqualFold(filepath.Ext(path), PackfileExt) {
				packs = append(packs, path)
			}
			d.add(location{name: info.Name(), path: path})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan data dir %s: %w", root, err)
		}
	}

	for _, pack := range packs {
		if err := d.indexPackfile(pack); err != nil {
			logger.Warn("Skipping unreadable packfile", zap.String("packfile", pack), zap.Error(err))
		}
	}

	logger.Debug("Indexed game data", zap.Int("files", len(d.files)), zap.Int("packfiles", len(packs)))
	return d, nil
}

func (d *Dir) add(loc location) {
	key := strings.ToLower(loc.name)
	if _, exists := d.files[key]; exists {
		return
	}
	d.files[key] = loc
}

func (d *Dir) indexPackfile(path string) error {
	f, err := d.fs.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	entries, err := packfile.ReadIndex(f)
	if err != nil {
		return err
	}
	for _, e := range entries {
		d.add(location{name: e.Name, path: path, packfile: e.Name})
	}
	return nil
}

// Open implements Source.
func (d *Dir) Open(name string) (io.ReadCloser, error) {
	loc, ok := d.files[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, fs.ErrNotExist)
	}
	if loc.packfile == "" {
		return d.fs.Open(loc.path)
	}

	f, err := d.fs.Open(loc.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := packfile.Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read packfile %s: %w", loc.path, err)
	}
	e, ok := p.Find(loc.packfile)
	if !ok {
		return nil, fmt.Errorf("%s in %s: %w", name, loc.path, fs.ErrNotExist)
	}
	return io.NopCloser(bytes.NewReader(e.Data)), nil
}

// Exists implements Source.
func (d *Dir) Exists(name string) bool {
	_, ok := d.files[strings.ToLower(name)]
	return ok
}

// Glob implements Source. Matching is case-insensitive.
func (d *Dir) Glob(pattern string) []string {
	pattern = strings.ToLower(pattern)
	var out []string
	for key, loc := range d.files {
		if ok, _ := filepath.Match(pattern, key); ok {
			out = append(out, loc.name)
		}
	}
	sort.Strings(out)
	return out
}

// Len returns the number of indexed files.
func (d *Dir) Len() int {
	return len(d.files)
}

// ReadAll opens name on src and reads it completely.
func ReadAll(src Source, name string) ([]byte, error) {
	r, err := src.Open(name)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}
