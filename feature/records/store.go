package records

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"asset-cloner/core/gamefs"
	"asset-cloner/core/layout"
	"asset-cloner/core/xtbl"

	"go.uber.org/zap"
)

// Store is an immutable index of table records.
//
// index and order hold the first record for each name and serve Find. all
// holds every element of every source in source order, nameless and
// shadowed ones included, and serves FindAllReferencing.
type Store struct {
	index map[Kind]map[string]*Record
	order map[Kind][]*Record
	all   map[Kind][]*Record
}

// Build reads every table source named by l from src.
func Build(src gamefs.Source, l *layout.Layout, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		index: make(map[Kind]map[string]*Record),
		order: make(map[Kind][]*Record),
		all:   make(map[Kind][]*Record),
	}

	for _, kind := range Kinds {
		table, ok := l.Table(string(kind))
		if !ok {
			return nil, fmt.Errorf("layout has no table for %s", kind)
		}
		s.index[kind] = make(map[string]*Record)

		for _, file := range table.Files {
			n, err := s.load(src, kind, table, file)
			if errors.Is(err, fs.ErrNotExist) {
				logger.Debug("Table source not present", zap.String("table", file))
				continue
			}
			if err != nil {
				return nil, err
			}
			logger.Debug("Indexed table", zap.String("table", file), zap.Int("records", n))
		}
	}
	return s, nil
}

func (s *Store) load(src gamefs.Source, kind Kind, table layout.Table, file string) (int, error) {
	r, err := src.Open(file)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	doc, err := xtbl.Read(r)
	if err != nil {
		return 0, fmt.Errorf("table %s: %w", file, err)
	}
	root := doc.Root()
	if root == nil {
		return 0, fmt.Errorf("table %s: empty document", file)
	}

	added := 0
	parents := append([]string{"Table"}, table.Parents...)
	for _, el := range xtbl.Records(root, table.Element, parents...) {
		rec := &Record{Kind: kind, Source: file, key: table.Key, el: el}
		s.all[kind] = append(s.all[kind], rec)
		name := strings.ToLower(rec.Name())
		if name == "" {
			continue
		}
		if _, exists := s.index[kind][name]; exists {
			continue
		}
		s.index[kind][name] = rec
		s.order[kind] = append(s.order[kind], rec)
		added++
	}
	return added, nil
}

// Find returns a detached copy of the record named name, compared case-insensitively.
func (s *Store) Find(kind Kind, name string) (*Record, bool) {
	rec, ok := s.index[kind][strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, false
	}
	return rec.Clone(), true
}

// FindAllReferencing returns detached copies of every record of kind whose
// field equals name, compared case-insensitively, in source order. Records
// shadowed by an earlier source and records without a name are included.
func (s *Store) FindAllReferencing(kind Kind, field, name string) []*Record {
	var out []*Record
	for _, rec := range s.all[kind] {
		if v, ok := rec.Field(field); ok && strings.EqualFold(v, name) {
			out = append(out, rec.Clone())
		}
	}
	return out
}

// Len returns the number of records of kind.
func (s *Store) Len(kind Kind) int {
	return len(s.order[kind])
}

// Names returns the record names of kind in source order.
func (s *Store) Names(kind Kind) []string {
	out := make([]string, 0, len(s.order[kind]))
	for _, rec := range s.order[kind] {
		out = append(out, rec.Name())
	}
	return out
}
