package clone

import (
	"fmt"
	"strings"

	"asset-cloner/feature/records"
)

// Kind selects what a clone produces.
type Kind string

const (
	// KindWeapon clones a weapon costume into a new standalone weapon.
	KindWeapon Kind = "weapon"
	// KindCostume clones a weapon costume into a new costume for the same weapon.
	KindCostume Kind = "costume"
	// KindSkin clones a weapon skin.
	KindSkin Kind = "skin"
)

// Kinds lists every clone kind.
var Kinds = []Kind{KindWeapon, KindCostume, KindSkin}

// Asset-group documents written by a clone.
const (
	GroupTextures = "items_containers.asm_pc"
	GroupMeshes   = "items_preload_containers.asm_pc"
	GroupCostumes = "mods_costumes.asm_pc"
	GroupSkins    = "mods_skins.asm_pc"
)

// profile is the set of stages a clone kind runs.
type profile struct {
	root records.Kind
	// label names the root in user-facing messages.
	label string
	// prefix starts every new string key.
	prefix string
	// weapon relinks the weapon, its upgrades and its store entries.
	weapon bool
	// inventory synthesizes the inventory item strings.
	inventory bool
	// tables are the table documents written, in order.
	tables []records.Kind
	// groups are the asset-group documents written, in order.
	groups []string
}

var profiles = map[Kind]profile{
	KindWeapon: {
		root:      records.Costume,
		label:     "weapon costume",
		prefix:    "MOD_WPN_",
		weapon:    true,
		inventory: true,
		tables: []records.Kind{
			records.Item3D,
			records.InventoryItem,
			records.StoreWeaponEntry,
			records.Costume,
			records.UpgradeEntry,
			records.Weapon,
		},
		groups: []string{GroupTextures, GroupMeshes, GroupCostumes},
	},
	KindCostume: {
		root:      records.Costume,
		label:     "weapon costume",
		prefix:    "MOD_COST_",
		inventory: true,
		tables:    []records.Kind{records.Item3D, records.InventoryItem, records.Costume},
		groups:    []string{GroupTextures, GroupMeshes, GroupCostumes},
	},
	KindSkin: {
		root:   records.Skin,
		label:  "skin",
		prefix: "MOD_SKN_",
		tables: []records.Kind{records.Skin},
		groups: []string{GroupSkins},
	},
}

// ParseKind maps a clone kind name to a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := profiles[k]; !ok {
		return "", fmt.Errorf("%w: %q (want weapon, costume or skin)", ErrUnknownKind, s)
	}
	return k, nil
}

// RootKind returns the record kind a clone of kind starts from.
func (k Kind) RootKind() records.Kind {
	return profiles[k].root
}
