package closure

import (
	"strings"

	"asset-cloner/core/utils"
	"asset-cloner/feature/records"
)

// Reference fields read while resolving a closure.
const (
	FieldWeapon    = "Weapon_Entry"
	FieldItem      = "Item_Entry"
	FieldInventory = "Inventory_Entry"
	FieldStreaming = "streaming_category"
	FieldWInfo     = "W_Info"
	FieldStoreKey  = "Weapon"
	PathProps      = "Props/Prop"
	PathMatlib     = "Material_Library/Filename"

	PathStaticMesh    = "Mesh/Filename"
	PathCharacterMesh = "character_mesh/character_mesh/Filename"
	PathRig           = "character_mesh/rig/Filename"
)

// MeshKind tells static meshes from skinned character meshes.
type MeshKind string

const (
	StaticMesh    MeshKind = "static"
	CharacterMesh MeshKind = "character"
)

// Item is one 3D item in a closure.
type Item struct {
	// Slot is 0 for the base item and n for the n-th prop of the base item.
	Slot   int
	Record *records.Record
}

// Mesh returns the kind and file name of the item's mesh.
func (it Item) Mesh() (MeshKind, string, bool) {
	if file, ok := it.Record.Path(PathCharacterMesh); ok && file != "" {
		return CharacterMesh, file, true
	}
	if file, ok := it.Record.Path(PathStaticMesh); ok && file != "" {
		return StaticMesh, file, true
	}
	return "", "", false
}

// MeshBase returns the mesh file name without directory or extension.
func (it Item) MeshBase() (string, bool) {
	_, file, ok := it.Mesh()
	if !ok {
		return "", false
	}
	return utils.BaseName(file), true
}

// Permanent reports whether the item streams from its own always-resident archive.
func (it Item) Permanent() bool {
	v, _ := it.Record.Field(FieldStreaming)
	return strings.Contains(strings.ToLower(v), "permanent")
}

// Closure is the set of records needed for one clone.
type Closure struct {
	RootKind records.Kind
	Root     *records.Record
	// SourceName is the root record's name before any rename.
	SourceName string

	Weapon    *records.Record
	Inventory *records.Record
	// InventoryFallback is set when Inventory is the layout's default record.
	InventoryFallback bool

	Items        []Item
	MissingProps []string

	Upgrades     []*records.Record
	StoreEntries []*records.Record

	// MaterialLibrary is the skin's material library file name, if any.
	MaterialLibrary string
}

// Base returns the slot-0 item.
func (c *Closure) Base() (Item, bool) {
	if len(c.Items) == 0 || c.Items[0].Slot != 0 {
		return Item{}, false
	}
	return c.Items[0], true
}

// Records returns every record in the closure.
func (c *Closure) Records() []*records.Record {
	out := []*records.Record{c.Root}
	if c.Weapon != nil {
		out = append(out, c.Weapon)
	}
	if c.Inventory != nil {
		out = append(out, c.Inventory)
	}
	for _, it := range c.Items {
		out = append(out, it.Record)
	}
	out = append(out, c.Upgrades...)
	out = append(out, c.StoreEntries...)
	return out
}
