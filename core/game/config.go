// Package game holds the settings that locate a game installation and shape
// clone output.
package game

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrOutputEscape is returned for output directories that resolve outside OutputRoot.
var ErrOutputEscape = errors.New("output directory escapes output root")

// Config holds configuration for the game data source and clone output.
type Config struct {
	// DataDirs is a comma separated list of data roots, searched in order.
	DataDirs string `mapstructure:"data_dirs" default:"data"`
	// LayoutFile replaces the embedded table layout when set.
	LayoutFile string `mapstructure:"layout_file" default:""`
	// TemplatesDir holds template_table.xtbl and template_items_containers.asm_pc.
	TemplatesDir string `mapstructure:"templates_dir" default:"templates"`
	// OutputRoot is where clone output directories are created.
	OutputRoot string `mapstructure:"output_root" default:"."`
	// Compression is the codec for new archives (zlib, lz4).
	Compression string `mapstructure:"compression" default:"zlib"`
	// Strict stages every write and fails when the base mesh archive is missing.
	Strict bool `mapstructure:"strict" default:"false"`
	// CompatStoreEntry always clones the fixed store entry instead of the weapon's own.
	CompatStoreEntry bool `mapstructure:"compat_store_entry" default:"false"`
}

// Roots returns the data roots in search order.
func (c Config) Roots() []string {
	var roots []string
	for _, r := range strings.Split(c.DataDirs, ",") {
		if r = strings.TrimSpace(r); r != "" {
			roots = append(roots, r)
		}
	}
	return roots
}

// OutputDir resolves a clone output directory under OutputRoot. Absolute
// paths and paths that climb out of the root are rejected.
func (c Config) OutputDir(dir string) (string, error) {
	root := c.OutputRoot
	if root == "" {
		root = "."
	}
	if filepath.IsAbs(dir) {
		return "", fmt.Errorf("%w: %s", ErrOutputEscape, dir)
	}
	out := filepath.Join(root, dir)
	rel, err := filepath.Rel(root, out)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutputEscape, dir)
	}
	return out, nil
}
