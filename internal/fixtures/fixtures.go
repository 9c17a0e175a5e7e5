// Package fixtures builds a small in-memory game installation for tests.
//
// The installation has two data roots. "data" holds the base game: table
// packfile, streaming archives packed inside items.vpp_pc, asset-group
// documents and string files. "dlc" holds a DLC overlay that shadows nothing
// and adds one DLC-only costume.
package fixtures

import (
	"fmt"
	"strings"
	"testing"

	"asset-cloner/core/asm"
	"asset-cloner/core/clothsim"
	"asset-cloner/core/gamefs"
	"asset-cloner/core/packfile"
	"asset-cloner/core/strfile"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// Roots are the data roots of the fixture installation.
var Roots = []string{"data", "dlc"}

// Well-known fixture names.
const (
	Costume          = "cust_wpn_pistol"
	CostumeDLC       = "cust_wpn_dlc"
	CostumeNoArchive = "cust_wpn_noarchive"
	CostumeBroken    = "cust_wpn_broken"
	CostumeNoMesh    = "cust_wpn_nomesh"
	CostumeNoItem    = "cust_wpn_noitem"
	CostumeNoWeapon  = "cust_wpn_noweapon"
	CostumeNoInv     = "cust_wpn_noinv"
	Skin             = "skin_camo"
	SkinNoMatlib     = "skin_plain"

	// CostumeSharedArchive has a degraded Permanent prop whose archive would
	// be written under the base archive name.
	CostumeSharedArchive = "cust_wpn_shotgun"
	// CostumeLostBase has no base archive but its Permanent prop has one.
	CostumeLostBase = "cust_wpn_lostbase"

	Weapon       = "pistol_tactical"
	BaseItem     = "pistol_base"
	SilencerItem = "pistol_base_silencer"
	ScopeItem    = "pistol_scope_static"
	MissingProp  = "pistol_missing_prop"
	SightItem    = "shotgun_sight"

	DisplayKey     = "CUST_WPN_COSTUME_DESC_LTPISTOL_0"
	DescriptionKey = "CUST_WPN_COSTUME_DESC_LTPISTOL_0_DESC"
	InvDisplayKey  = "INV_PISTOL"
	InvDescKey     = "INV_PISTOL_DESC"
	SkinDisplayKey = "SKIN_CAMO"
)

// Table wraps record XML in a table document.
func Table(records ...string) []byte {
	return []byte("<root>\n<Table>\n" + strings.Join(records, "\n") + "\n</Table>\n</root>\n")
}

func costume(name, weapon, item, inv string, extra string) string {
	return fmt.Sprintf(`<Costume><Name>%s</Name><Weapon_Entry>%s</Weapon_Entry><Item_Entry>%s</Item_Entry><Inventory_Entry>%s</Inventory_Entry>%s</Costume>`,
		name, weapon, item, inv, extra)
}

func costumeTable() []byte {
	return Table(
		costume(Costume, Weapon, BaseItem, Weapon,
			`<Display_Name>`+DisplayKey+`</Display_Name><Description>`+DescriptionKey+`</Description><Unlocked>False</Unlocked><Costume_Slot_Index>3</Costume_Slot_Index><Is_DLC>False</Is_DLC>`),
		costume(CostumeNoArchive, Weapon, "rifle_base", Weapon, ""),
		costume(CostumeBroken, Weapon, "broken_item", Weapon, ""),
		costume(CostumeNoMesh, Weapon, "nomesh_item", Weapon, ""),
		costume(CostumeNoItem, Weapon, "does_not_exist", Weapon, ""),
		costume(CostumeNoWeapon, "no_such_weapon", BaseItem, Weapon, ""),
		costume(CostumeNoInv, Weapon, "rifle_base", "no_such_inventory", ""),
		costume(CostumeSharedArchive, Weapon, "shotgun_base", Weapon, ""),
		costume(CostumeLostBase, Weapon, "pistol_base_lost", Weapon, ""),
	)
}

func dlcCostumeTable() []byte {
	return Table(
		// shadowed by the base table
		costume(Costume, "other_weapon", "other_item", "other_inv", ""),
		costume(CostumeDLC, Weapon, BaseItem, Weapon, `<Is_DLC>True</Is_DLC>`),
	)
}

func itemsTable() []byte {
	return Table(
		`<Item><Name>`+BaseItem+`</Name><streaming_category>Dynamic</streaming_category>`+
			`<character_mesh><character_mesh><Filename>pistol_base.cmeshx</Filename></character_mesh><rig><Filename>pistol_base.rigx</Filename></rig></character_mesh>`+
			`<Props><Prop><Name>`+SilencerItem+`</Name></Prop><Prop><Name>`+MissingProp+`</Name></Prop><Prop><Name>`+ScopeItem+`</Name></Prop></Props></Item>`,
		`<Item><Name>`+SilencerItem+`</Name><streaming_category>Permanent</streaming_category><Mesh><Filename>Pistol_Base_Silencer.smeshx</Filename></Mesh></Item>`,
		`<Item><Name>`+ScopeItem+`</Name><streaming_category>Dynamic</streaming_category><Mesh><Filename>scope_generic.smeshx</Filename></Mesh></Item>`,
		`<Item><Name>rifle_base</Name><streaming_category>Permanent</streaming_category><Mesh><Filename>rifle_base.smeshx</Filename></Mesh></Item>`,
		`<Item><Name>broken_item</Name><streaming_category>Dynamic</streaming_category><Mesh><Filename>broken.smeshx</Filename></Mesh></Item>`,
		`<Item><Name>nomesh_item</Name><streaming_category>Dynamic</streaming_category></Item>`,
		`<Item><Name>shotgun_base</Name><streaming_category>Dynamic</streaming_category><Mesh><Filename>shotgun_base.smeshx</Filename></Mesh>`+
			`<Props><Prop><Name>`+SightItem+`</Name></Prop></Props></Item>`,
		`<Item><Name>`+SightItem+`</Name><streaming_category>Permanent</streaming_category><Mesh><Filename>sight_generic.smeshx</Filename></Mesh></Item>`,
		`<Item><Name>pistol_base_lost</Name><streaming_category>Permanent</streaming_category><Mesh><Filename>pistol_base.smeshx</Filename></Mesh>`+
			`<Props><Prop><Name>`+SilencerItem+`</Name></Prop></Props></Item>`,
	)
}

func inventoryTable() []byte {
	return Table(
		`<Inventory_Item><Name>`+Weapon+`</Name><DisplayName>`+InvDisplayKey+`</DisplayName><Description>`+InvDescKey+`</Description><Info_Slot_Index>2</Info_Slot_Index></Inventory_Item>`,
		`<Inventory_Item><Name>Pistol-Gang</Name><DisplayName>INV_GANG</DisplayName></Inventory_Item>`,
	)
}

func weaponsTable() []byte {
	return Table(
		`<Weapon><Name>`+Weapon+`</Name><Damage>40</Damage></Weapon>`,
		`<Weapon><Name>other_weapon</Name></Weapon>`,
	)
}

func upgradesTable() []byte {
	return Table(
		`<Weapon_Upgrade><Name>pistol_tactical_lvl1</Name><W_Info>`+Weapon+`</W_Info></Weapon_Upgrade>`,
		`<Weapon_Upgrade><Name>rifle_lvl1</Name><W_Info>other_weapon</W_Info></Weapon_Upgrade>`,
		`<Weapon_Upgrade><Name>pistol_tactical_lvl2</Name><W_Info>PISTOL_TACTICAL</W_Info></Weapon_Upgrade>`,
	)
}

func storeTable() []byte {
	return []byte(`<root><Table><Store_Weapons><Name>Weapons list</Name><Weapons_List>` +
		`<Entry><Weapon>Pistol-Police</Weapon><Price>500</Price></Entry>` +
		`<Entry><Weapon>` + Weapon + `</Weapon><Price>900</Price></Entry>` +
		`</Weapons_List></Store_Weapons></Table></root>`)
}

func skinsTable() []byte {
	return Table(
		`<Skin><Name>`+Skin+`</Name><Costume>`+Costume+`</Costume><Display_Name>`+SkinDisplayKey+`</Display_Name><Material_Library><Filename>camo_matlib.matlibx</Filename></Material_Library></Skin>`,
		`<Skin><Name>`+SkinNoMatlib+`</Name><Costume>`+Costume+`</Costume></Skin>`,
	)
}

// Sim returns an encoded cloth-simulation file owned by name.
func Sim(t testing.TB, name string) []byte {
	t.Helper()
	data, err := (&clothsim.File{Header: clothsim.Header{Version: 2, Name: name}, Body: []byte("cloth-body")}).Encode()
	require.NoError(t, err)
	return data
}

// Archive encodes a packfile holding files, in the given order.
func Archive(t testing.TB, files ...File) []byte {
	t.Helper()
	p := packfile.New(packfile.Zlib)
	for _, f := range files {
		p.Add(f.Name, f.Data)
	}
	data, err := p.Encode()
	require.NoError(t, err)
	return data
}

// File is a named blob.
type File struct {
	Name string
	Data []byte
}

func container(name string, prims ...string) *asm.Container {
	c := &asm.Container{Name: name, Type: 2}
	for _, p := range prims {
		c.Primitives = append(c.Primitives, &asm.Primitive{Name: p, Type: 1})
	}
	return c
}

func encodeAsm(t testing.TB, containers ...*asm.Container) []byte {
	t.Helper()
	f := asm.New()
	for _, c := range containers {
		f.Add(c)
	}
	data, err := f.Encode()
	require.NoError(t, err)
	return data
}

func stringFile(t testing.TB, pairs ...string) []byte {
	t.Helper()
	f := strfile.New()
	for i := 0; i+1 < len(pairs); i += 2 {
		f.Add(pairs[i], pairs[i+1])
	}
	data, err := f.Encode()
	require.NoError(t, err)
	return data
}

// Install writes the fixture installation into afs.
func Install(t testing.TB, afs afero.Fs) {
	t.Helper()

	tables := Archive(t,
		File{"weapon_costumes.xtbl", costumeTable()},
		File{"items_3d.xtbl", itemsTable()},
		File{"items_inventory.xtbl", inventoryTable()},
		File{"weapons.xtbl", weaponsTable()},
		File{"weapon_upgrades.xtbl", upgradesTable()},
		File{"store_weapons.xtbl", storeTable()},
		File{"weapon_skins.xtbl", skinsTable()},
	)
	write(t, afs, "data/misc_tables.vpp_pc", tables)

	items := Archive(t,
		File{Costume + ".str2_pc", Archive(t,
			File{"pistol_base.ccmesh_pc", []byte("cmesh")},
			File{"pistol_base.gcmesh_pc", []byte("gmesh-data")},
			File{"pistol_base.rig_pc", []byte("rig")},
			File{"pistol_base.sim_pc", Sim(t, "pistol_base")},
			File{"ui_hud_pistol.cvbm_pc", []byte("icon")},
			File{"ui_hud_pistol.gvbm_pc", []byte("icon-data")},
			File{"muzzle_flash.cefct_pc", []byte("fx")},
			File{"pistol_decal.cvbm_pc", []byte("decal")},
		)},
		File{SilencerItem + ".str2_pc", Archive(t,
			File{"pistol_base_silencer.csmesh_pc", []byte("smesh")},
			File{"pistol_base_silencer.gsmesh_pc", []byte("smesh-data")},
		)},
		File{"pistol_base_high.str2_pc", Archive(t,
			File{"pistol_base_high.cpeg_pc", []byte("peg")},
			File{"pistol_base_high.gpeg_pc", []byte("peg-data")},
		)},
		File{CostumeBroken + ".str2_pc", Archive(t,
			File{"broken.csmesh_pc", []byte("smesh")},
			File{"broken.xyz_pc", []byte("???")},
		)},
		File{CostumeSharedArchive + ".str2_pc", Archive(t,
			File{"shotgun_base.csmesh_pc", []byte("smesh")},
			File{"shotgun_base.gsmesh_pc", []byte("smesh-data")},
		)},
		File{SightItem + ".str2_pc", Archive(t,
			File{"sight_generic.csmesh_pc", []byte("sight")},
			File{"sight_generic.gsmesh_pc", []byte("sight-data")},
		)},
		File{"camo_matlib.str2_pc", Archive(t,
			File{"camo_matlib.matlib_pc", []byte("matlib")},
			File{"camo_matlib.cpeg_pc", []byte("peg")},
			File{"camo_matlib.gpeg_pc", []byte("peg-data")},
		)},
	)
	write(t, afs, "data/items.vpp_pc", items)

	write(t, afs, "data/items_preload_containers.asm_pc", encodeAsm(t,
		container(Costume, "pistol_base.ccmesh_pc", "pistol_base.rig_pc", "pistol_base.sim_pc", "ui_hud_pistol.cvbm_pc", "muzzle_flash.cefct_pc", "pistol_decal.cvbm_pc"),
		container(CostumeBroken, "broken.csmesh_pc"),
		container(CostumeSharedArchive, "shotgun_base.csmesh_pc"),
	))
	write(t, afs, "data/items_containers.asm_pc", encodeAsm(t,
		container("pistol_base_high", "pistol_base_high.cpeg_pc"),
		container("camo_matlib", "camo_matlib.matlib_pc", "camo_matlib.cpeg_pc"),
	))
	write(t, afs, "data/main_streaming_weapons.asm_pc", encodeAsm(t,
		container(SilencerItem, "pistol_base_silencer.csmesh_pc"),
		container(SightItem, "sight_generic.csmesh_pc"),
	))

	text := Archive(t,
		File{"static_text_us.le_strings", stringFile(t,
			DisplayKey, "Tactical Pistol",
			DescriptionKey, "A reliable sidearm.",
			InvDisplayKey, "Pistol",
			SkinDisplayKey, "Camo",
		)},
		File{"static_text_de.le_strings", stringFile(t,
			DisplayKey, "Taktische Pistole",
		)},
		File{"static_text_xx.le_strings", stringFile(t, DisplayKey, "???")},
		File{"zz_patch_us.le_strings", stringFile(t, DisplayKey, "Shadowed")},
	)
	write(t, afs, "data/static_text.vpp_pc", text)

	write(t, afs, "dlc/dlc1.vpp_pc", Archive(t,
		File{"dlc1_weapon_costumes.xtbl", dlcCostumeTable()},
	))
}

// Source installs the fixture game on a fresh MemMapFs and indexes it.
func Source(t testing.TB) (*gamefs.Dir, afero.Fs) {
	t.Helper()
	afs := afero.NewMemMapFs()
	Install(t, afs)
	src, err := gamefs.NewDir(afs, Roots, nil)
	require.NoError(t, err)
	return src, afs
}

func write(t testing.TB, afs afero.Fs, path string, data []byte) {
	t.Helper()
	require.NoError(t, afero.WriteFile(afs, path, data, 0o644))
}
