package layout

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed layout.yaml
var defaultLayout []byte

// Table describes one record kind and the ordered sources it is read from.
type Table struct {
	// Element is the XML element name of a record (e.g. "Costume").
	Element string `yaml:"element"`
	// Key is the child element holding the record identity.
	Key string `yaml:"key"`
	// Parents narrows the search to records nested under these elements, in order.
	Parents []string `yaml:"parents"`
	// Files lists table sources; earlier files shadow later ones.
	Files []string `yaml:"files"`
}

// Defaults holds the well-known fallback names used when optional references are missing.
type Defaults struct {
	InventoryItem    string `yaml:"inventory_item"`
	StoreWeaponEntry string `yaml:"store_weapon_entry"`
	DisplayName      string `yaml:"display_name"`
	Description      string `yaml:"description"`
}

// Layout is the full description of a game installation.
type Layout struct {
	Tables     map[string]Table `yaml:"tables"`
	Containers []string         `yaml:"containers"`
	Strings    string           `yaml:"strings"`
	Game       string           `yaml:"game"`
	Defaults   Defaults         `yaml:"defaults"`
}

// Default returns the embedded layout.
func Default() (*Layout, error) {
	return Parse(defaultLayout)
}

// Load reads a layout from path, or returns the embedded layout when path is empty.
func Load(path string) (*Layout, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML layout.
func Parse(data []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// Validate checks that every table has an element, a key and at least one source.
func (l *Layout) Validate() error {
	if len(l.Tables) == 0 {
		return fmt.Errorf("layout has no tables")
	}
	for name, t := range l.Tables {
		if t.Element == "" {
			return fmt.Errorf("layout table %q: missing element", name)
		}
		if t.Key == "" {
			return fmt.Errorf("layout table %q: missing key", name)
		}
		if len(t.Files) == 0 {
			return fmt.Errorf("layout table %q: no files", name)
		}
	}
	if l.Strings == "" {
		l.Strings = "*.le_strings"
	}
	return nil
}

// Table returns the table description for a kind name.
func (l *Layout) Table(kind string) (Table, bool) {
	t, ok := l.Tables[kind]
	return t, ok
}
