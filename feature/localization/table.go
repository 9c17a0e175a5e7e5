package localization

import (
	"fmt"
	"sort"

	"asset-cloner/core/gamefs"
	"asset-cloner/core/hashes"
	"asset-cloner/core/strfile"

	"go.uber.org/zap"
)

// Table holds the localized strings of every discovered language.
// It is immutable after LoadAll.
type Table struct {
	langs   map[string]Language
	strings map[string]map[uint32]string
}

// HashOf returns the lookup hash of a symbolic string key.
func HashOf(key string) uint32 {
	return hashes.CRC(key)
}

// LoadAll reads every string file matching pattern from src. Files are read in
// name order and the first file to define a hash for a language wins. Files
// with an unknown locale code are skipped with a warning.
func LoadAll(src gamefs.Source, pattern string, logger *zap.Logger) (*Table, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &Table{
		langs:   make(map[string]Language),
		strings: make(map[string]map[uint32]string),
	}

	for _, name := range src.Glob(pattern) {
		lang, ok := LookupCode(CodeFromFile(name))
		if !ok {
			logger.Warn("Skipping string file with unknown locale", zap.String("file", name))
			continue
		}

		file, err := readFile(src, name)
		if err != nil {
			return nil, err
		}

		strs, ok := t.strings[lang.Code]
		if !ok {
			strs = make(map[uint32]string)
			t.strings[lang.Code] = strs
			t.langs[lang.Code] = lang
		}
		added := 0
		for _, h := range file.Hashes() {
			if _, exists := strs[h]; exists {
				continue
			}
			strs[h], _ = file.Get(h)
			added++
		}
		logger.Debug("Loaded string file", zap.String("file", name), zap.String("language", lang.Code), zap.Int("strings", added))
	}
	return t, nil
}

func readFile(src gamefs.Source, name string) (*strfile.File, error) {
	r, err := src.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open string file %s: %w", name, err)
	}
	defer r.Close()

	f, err := strfile.Read(r)
	if err != nil {
		return nil, fmt.Errorf("string file %s: %w", name, err)
	}
	return f, nil
}

// Lookup returns the text stored for hash in the language with the given code.
func (t *Table) Lookup(code string, hash uint32) (string, bool) {
	s, ok := t.strings[code][hash]
	return s, ok
}

// LookupKey hashes key and looks it up.
func (t *Table) LookupKey(code, key string) (string, bool) {
	return t.Lookup(code, HashOf(key))
}

// Languages returns every language with at least one string file, sorted by code.
func (t *Table) Languages() []Language {
	out := make([]Language, 0, len(t.langs))
	for _, l := range t.langs {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Len returns the number of strings loaded for a language.
func (t *Table) Len(code string) int {
	return len(t.strings[code])
}
