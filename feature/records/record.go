package records

import (
	"errors"
	"fmt"
	"strings"

	"asset-cloner/core/xtbl"

	"github.com/beevik/etree"
)

// Kind identifies a record table.
type Kind string

const (
	Costume          Kind = "costume"
	Skin             Kind = "skin"
	Weapon           Kind = "weapon"
	Item3D           Kind = "item3d"
	InventoryItem    Kind = "inventory_item"
	StoreWeaponEntry Kind = "store_weapon_entry"
	UpgradeEntry     Kind = "upgrade_entry"
)

// Kinds lists every record kind.
var Kinds = []Kind{Costume, Skin, Weapon, Item3D, InventoryItem, StoreWeaponEntry, UpgradeEntry}

// ErrUnknownKind is returned for kind names the store does not index.
var ErrUnknownKind = errors.New("unknown record kind")

// ParseKind maps a kind name to a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if strings.EqualFold(string(k), s) {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Record is one table entry.
type Record struct {
	Kind Kind
	// Source is the table file the record was read from.
	Source string
	key    string
	el     *etree.Element
}

// Field is a direct child value of a record.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Name returns the record's key value.
func (r *Record) Name() string {
	v, _ := xtbl.ChildText(r.el, r.key)
	return strings.TrimSpace(v)
}

// SetName sets the record's key value.
func (r *Record) SetName(name string) {
	xtbl.SetChildText(r.el, r.key, name)
}

// Field returns the text of a direct child element.
func (r *Record) Field(name string) (string, bool) {
	v, ok := xtbl.ChildText(r.el, name)
	return strings.TrimSpace(v), ok
}

// SetField sets a direct child element, creating it when missing.
func (r *Record) SetField(name, value string) {
	xtbl.SetChildText(r.el, name, value)
}

// RemoveField deletes a direct child element.
func (r *Record) RemoveField(name string) bool {
	return xtbl.RemoveChild(r.el, name)
}

// Path returns the text at a slash-separated child path such as "Mesh/Filename".
func (r *Record) Path(path string) (string, bool) {
	el := r.el.FindElement(path)
	if el == nil {
		return "", false
	}
	return strings.TrimSpace(el.Text()), true
}

// SetPath sets the text at an existing child path and reports whether it existed.
func (r *Record) SetPath(path, value string) bool {
	el := r.el.FindElement(path)
	if el == nil {
		return false
	}
	el.SetText(value)
	return true
}

// Elements returns the elements at a child path such as "Props/Prop".
func (r *Record) Elements(path string) []*etree.Element {
	return r.el.FindElements(path)
}

// Fields lists the direct children that hold text, in document order.
func (r *Record) Fields() []Field {
	var out []Field
	for _, child := range r.el.ChildElements() {
		if len(child.ChildElements()) > 0 {
			continue
		}
		out = append(out, Field{Name: child.Tag, Value: strings.TrimSpace(child.Text())})
	}
	return out
}

// Element returns the underlying XML element.
func (r *Record) Element() *etree.Element {
	return r.el
}

// Clone returns a detached deep copy.
func (r *Record) Clone() *Record {
	return &Record{Kind: r.Kind, Source: r.Source, key: r.key, el: r.el.Copy()}
}

// New wraps a standalone element as a record keyed by keyField.
func New(kind Kind, source, keyField string, el *etree.Element) *Record {
	return &Record{Kind: kind, Source: source, key: keyField, el: el}
}
