package clone_test

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"asset-cloner/core/asm"
	"asset-cloner/core/game"
	"asset-cloner/core/hashes"
	"asset-cloner/core/packfile"
	"asset-cloner/core/strfile"
	"asset-cloner/core/xtbl"
	"asset-cloner/feature/clone"
	"asset-cloner/feature/closure"
	"asset-cloner/feature/history"
	"asset-cloner/feature/records"
	"asset-cloner/feature/rename"
	"asset-cloner/feature/transcode"
	"asset-cloner/internal/fixtures"

	"github.com/beevik/etree"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockLedger struct {
	mock.Mock
}

func (m *mockLedger) Record(ctx context.Context, run *history.CloneRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *mockLedger) List(ctx context.Context, limit int) ([]history.CloneRun, error) {
	args := m.Called(ctx, limit)
	runs, _ := args.Get(0).([]history.CloneRun)
	return runs, args.Error(1)
}

func testConfig() game.Config {
	return game.Config{
		DataDirs:     "data,dlc",
		TemplatesDir: "templates",
		OutputRoot:   "out",
		Compression:  "zlib",
	}
}

func newService(t *testing.T, cfg game.Config, ledger clone.Ledger) (*clone.Service, afero.Fs) {
	t.Helper()
	afs := afero.NewMemMapFs()
	fixtures.Install(t, afs)
	return clone.NewService(cfg, afs, nil, ledger), afs
}

func readTable(t *testing.T, afs afero.Fs, path string) *etree.Element {
	t.Helper()
	data, err := afero.ReadFile(afs, path)
	require.NoError(t, err)
	assert.False(t, bytes.HasPrefix(data, []byte("<?xml")), "tables carry no declaration")
	doc, err := xtbl.Read(bytes.NewReader(data))
	require.NoError(t, err)
	table := doc.FindElement("//Table")
	require.NotNil(t, table)
	return table
}

func readStrings(t *testing.T, afs afero.Fs, path string) *strfile.File {
	t.Helper()
	data, err := afero.ReadFile(afs, path)
	require.NoError(t, err)
	f, err := strfile.Decode(data)
	require.NoError(t, err)
	return f
}

func readGroup(t *testing.T, afs afero.Fs, path string) *asm.File {
	t.Helper()
	data, err := afero.ReadFile(afs, path)
	require.NoError(t, err)
	f, err := asm.Decode(data)
	require.NoError(t, err)
	return f
}

func containerNames(f *asm.File) []string {
	var out []string
	for _, c := range f.Containers {
		out = append(out, c.Name)
	}
	return out
}

func text(el *etree.Element, path string) string {
	found := el.FindElement(path)
	if found == nil {
		return ""
	}
	return found.Text()
}

func TestClone_Weapon(t *testing.T) {
	svc, afs := newService(t, testConfig(), nil)

	report, err := svc.Clone(context.Background(), clone.Request{Source: fixtures.Costume, Name: "zapgun", Kind: clone.KindWeapon})
	require.NoError(t, err)

	dir := filepath.Join("out", "zapgun")
	assert.Equal(t, dir, report.Output)
	assert.True(t, report.BaseArchiveFound)
	assert.NotEmpty(t, report.RunID)
	// 3 items, inventory, store entry, costume, 2 upgrades, weapon
	assert.Equal(t, 9, report.RecordsEmitted)
	assert.Equal(t, []string{"de", "us"}, report.Languages)

	// the degraded prop reuses the base mesh archive, so it is transcoded once
	require.Len(t, report.Archives, 5)
	found := map[string]bool{}
	for _, a := range report.Archives {
		found[a.Archive] = a.Found
	}
	assert.True(t, found["zapgun.str2_pc"])
	assert.True(t, found["zapgun_high.str2_pc"])
	assert.True(t, found["zapgun_Silencer.str2_pc"])
	assert.False(t, found["zapgun_Silencer_high.str2_pc"])

	for _, name := range []string{"zapgun.str2_pc", "zapgun_high.str2_pc", "zapgun_Silencer.str2_pc", "weapons.xtbl", "mods_costumes.asm_pc"} {
		ok, err := afero.Exists(afs, filepath.Join(dir, name))
		require.NoError(t, err)
		assert.True(t, ok, name)
	}

	costumes := readTable(t, afs, filepath.Join(dir, "weapon_costumes.xtbl"))
	costume := costumes.SelectElement("Costume")
	require.NotNil(t, costume)
	assert.Equal(t, "zapgun", text(costume, "Name"))
	assert.Equal(t, "zapgun", text(costume, "Weapon_Entry"))
	assert.Equal(t, "zapgun", text(costume, "Item_Entry"))
	assert.Equal(t, "zapgun", text(costume, "Inventory_Entry"))
	assert.Equal(t, "True", text(costume, "Unlocked"))
	assert.Equal(t, "MOD_WPN_ZAPGUN", text(costume, "Display_Name"))
	assert.Equal(t, "MOD_WPN_ZAPGUN_DESC", text(costume, "Description"))
	assert.Nil(t, costume.SelectElement("Costume_Slot_Index"))

	items := readTable(t, afs, filepath.Join(dir, "items_3d.xtbl"))
	var itemNames []string
	for _, el := range items.SelectElements("Item") {
		itemNames = append(itemNames, text(el, "Name"))
	}
	assert.Equal(t, []string{"zapgun", "zapgun_Silencer", "zapgun"}, itemNames)

	inv := readTable(t, afs, filepath.Join(dir, "items_inventory.xtbl")).SelectElement("Inventory_Item")
	require.NotNil(t, inv)
	assert.Equal(t, "zapgun", text(inv, "Name"))
	assert.Equal(t, "MOD_WPN_ZAPGUN_INV", text(inv, "DisplayName"))
	assert.Nil(t, inv.SelectElement("Info_Slot_Index"))

	store := readTable(t, afs, filepath.Join(dir, "store_weapons.xtbl"))
	assert.Equal(t, "Weapons list", text(store, "Store_Weapons/Name"))
	assert.Equal(t, "zapgun", text(store, "Store_Weapons/Weapons_List/Entry/Weapon"))
	assert.Equal(t, "900", text(store, "Store_Weapons/Weapons_List/Entry/Price"))

	upgrades := readTable(t, afs, filepath.Join(dir, "weapon_upgrades.xtbl"))
	require.Len(t, upgrades.SelectElements("Weapon_Upgrade"), 2)
	for _, el := range upgrades.SelectElements("Weapon_Upgrade") {
		assert.Equal(t, "zapgun", text(el, "W_Info"))
	}

	weapons := readTable(t, afs, filepath.Join(dir, "weapons.xtbl"))
	assert.Equal(t, "zapgun", text(weapons, "Weapon/Name"))

	preload := readGroup(t, afs, filepath.Join(dir, clone.GroupMeshes))
	assert.Equal(t, []string{"zapgun", "zapgun_Silencer"}, containerNames(preload))
	textures := readGroup(t, afs, filepath.Join(dir, clone.GroupTextures))
	assert.Equal(t, []string{"zapgun_high"}, containerNames(textures))
	assert.Empty(t, readGroup(t, afs, filepath.Join(dir, clone.GroupCostumes)).Containers)

	us := readStrings(t, afs, filepath.Join(dir, "zapgun_us.le_strings"))
	assert.Equal(t, 4, us.Len())
	s, _ := us.Get(hashes.CRC("MOD_WPN_ZAPGUN"))
	assert.Equal(t, "CLONE: Tactical Pistol", s)
	s, _ = us.Get(hashes.CRC("MOD_WPN_ZAPGUN_DESC"))
	assert.Equal(t, "CLONED DESCRIPTION: A reliable sidearm.", s)
	s, _ = us.Get(hashes.CRC("MOD_WPN_ZAPGUN_INV"))
	assert.Equal(t, "CLONE: Pistol", s)
	s, _ = us.Get(hashes.CRC("MOD_WPN_ZAPGUN_INV_DESC"))
	assert.Equal(t, "CLONE: zapgun", s)

	de := readStrings(t, afs, filepath.Join(dir, "zapgun_de.le_strings"))
	s, _ = de.Get(hashes.CRC("MOD_WPN_ZAPGUN"))
	assert.Equal(t, "CLONE: Taktische Pistole", s)
	s, _ = de.Get(hashes.CRC("MOD_WPN_ZAPGUN_DESC"))
	assert.Equal(t, "CLONE: zapgun", s)

	mirror, err := afero.ReadFile(afs, filepath.Join(dir, clone.StringXMLDir, "zapgun_us.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(mirror), `Language="English"`)
	assert.Contains(t, string(mirror), `Game="SaintsRowIV"`)
	assert.Contains(t, string(mirror), `<String Name="MOD_WPN_ZAPGUN">CLONE: Tactical Pistol</String>`)

	assert.Contains(t, report.Warnings, `prop "`+fixtures.MissingProp+`" not found`)
	assert.Contains(t, report.Files, filepath.Join(dir, "zapgun.str2_pc"))
}

func TestClone_Deterministic(t *testing.T) {
	svc, afs := newService(t, testConfig(), nil)
	ctx := context.Background()

	first, err := svc.Clone(ctx, clone.Request{Source: fixtures.Costume, Name: "zapgun", Kind: clone.KindWeapon, Output: "a"})
	require.NoError(t, err)
	second, err := svc.Clone(ctx, clone.Request{Source: fixtures.Costume, Name: "zapgun", Kind: clone.KindWeapon, Output: "b"})
	require.NoError(t, err)
	assert.Equal(t, first.Plan, second.Plan)

	for _, name := range []string{"items_3d.xtbl", "weapon_costumes.xtbl", "zapgun_us.le_strings", "zapgun.str2_pc"} {
		a, err := afero.ReadFile(afs, filepath.Join("out", "a", name))
		require.NoError(t, err)
		b, err := afero.ReadFile(afs, filepath.Join("out", "b", name))
		require.NoError(t, err)
		assert.Equal(t, a, b, name)
	}
}

func TestClone_RerunOverwrites(t *testing.T) {
	svc, _ := newService(t, testConfig(), nil)
	ctx := context.Background()

	req := clone.Request{Source: fixtures.Costume, Name: "zapgun", Kind: clone.KindCostume}
	_, err := svc.Clone(ctx, req)
	require.NoError(t, err)
	report, err := svc.Clone(ctx, req)
	require.NoError(t, err)
	assert.True(t, report.BaseArchiveFound)
}

func TestClone_Costume(t *testing.T) {
	svc, afs := newService(t, testConfig(), nil)

	report, err := svc.Clone(context.Background(), clone.Request{Source: fixtures.Costume, Name: "goldie", Kind: clone.KindCostume})
	require.NoError(t, err)
	assert.Equal(t, 5, report.RecordsEmitted)
	require.Len(t, report.Tables, 3)

	dir := filepath.Join("out", "goldie")
	costume := readTable(t, afs, filepath.Join(dir, "weapon_costumes.xtbl")).SelectElement("Costume")
	require.NotNil(t, costume)
	assert.Equal(t, fixtures.Weapon, text(costume, "Weapon_Entry"))
	assert.Equal(t, "goldie", text(costume, "Item_Entry"))
	assert.Equal(t, "MOD_COST_GOLDIE", text(costume, "Display_Name"))

	ok, err := afero.Exists(afs, filepath.Join(dir, "weapons.xtbl"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClone_Skin(t *testing.T) {
	svc, afs := newService(t, testConfig(), nil)

	report, err := svc.Clone(context.Background(), clone.Request{Source: fixtures.Skin, Name: "my_camo", Kind: clone.KindSkin})
	require.NoError(t, err)
	assert.True(t, report.BaseArchiveFound)
	assert.Equal(t, 1, report.RecordsEmitted)

	dir := filepath.Join("out", "my_camo")
	skin := readTable(t, afs, filepath.Join(dir, "weapon_skins.xtbl")).SelectElement("Skin")
	require.NotNil(t, skin)
	assert.Equal(t, "my_camo", text(skin, "Name"))
	assert.Equal(t, "my_camo.matlibx", text(skin, "Material_Library/Filename"))
	assert.Equal(t, "True", text(skin, "Unlocked"))
	assert.Equal(t, "MOD_SKN_MY_CAMO", text(skin, "Display_Name"))
	assert.Equal(t, "MOD_SKN_MY_CAMO_DESC", text(skin, "Description"))

	group := readGroup(t, afs, filepath.Join(dir, clone.GroupSkins))
	assert.Equal(t, []string{"my_camo"}, containerNames(group))

	us := readStrings(t, afs, filepath.Join(dir, "my_camo_us.le_strings"))
	assert.Equal(t, 2, us.Len())
	s, _ := us.Get(hashes.CRC("MOD_SKN_MY_CAMO"))
	assert.Equal(t, "CLONE: Camo", s)
	// the skin has no description, so the default key is looked up
	s, _ = us.Get(hashes.CRC("MOD_SKN_MY_CAMO_DESC"))
	assert.Equal(t, "CLONED DESCRIPTION: A reliable sidearm.", s)
}

func TestClone_SkinWithoutMaterialLibrary(t *testing.T) {
	svc, afs := newService(t, testConfig(), nil)

	report, err := svc.Clone(context.Background(), clone.Request{Source: fixtures.SkinNoMatlib, Name: "plain2", Kind: clone.KindSkin})
	require.NoError(t, err)
	assert.False(t, report.BaseArchiveFound)
	assert.Zero(t, report.RecordsEmitted)
	assert.Empty(t, readTable(t, afs, filepath.Join("out", "plain2", "weapon_skins.xtbl")).ChildElements())
}

func TestClone_BaseArchiveMissing(t *testing.T) {
	svc, afs := newService(t, testConfig(), nil)

	report, err := svc.Clone(context.Background(), clone.Request{Source: fixtures.CostumeNoArchive, Name: "rifle2", Kind: clone.KindWeapon})
	require.NoError(t, err)
	assert.False(t, report.BaseArchiveFound)
	assert.Zero(t, report.RecordsEmitted)

	// every table document is written, and every one is empty
	require.Len(t, report.Tables, 6)
	for _, tbl := range report.Tables {
		assert.Zero(t, tbl.Records, tbl.File)
	}
	costumes := readTable(t, afs, filepath.Join("out", "rifle2", "weapon_costumes.xtbl"))
	assert.Empty(t, costumes.ChildElements())

	// strings are still produced
	ok, err := afero.Exists(afs, filepath.Join("out", "rifle2", "rifle2_us.le_strings"))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestClone_BaseArchiveMissingKeepsPropArchives(t *testing.T) {
	svc, afs := newService(t, testConfig(), nil)

	report, err := svc.Clone(context.Background(), clone.Request{Source: fixtures.CostumeLostBase, Name: "lost2", Kind: clone.KindWeapon})
	require.NoError(t, err)
	assert.False(t, report.BaseArchiveFound)
	assert.Zero(t, report.RecordsEmitted)
	for _, tbl := range report.Tables {
		assert.Zero(t, tbl.Records, tbl.File)
	}
	assert.Contains(t, report.Warnings, "archive not found: pistol_base_lost.str2_pc")

	// the prop's own archive is still cloned
	dir := filepath.Join("out", "lost2")
	ok, err := afero.Exists(afs, filepath.Join(dir, "lost2_Silencer.str2_pc"))
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = afero.Exists(afs, filepath.Join(dir, "lost2.str2_pc"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClone_DegradedPermanentPropSharesArchiveName(t *testing.T) {
	svc, afs := newService(t, testConfig(), nil)

	report, err := svc.Clone(context.Background(), clone.Request{Source: fixtures.CostumeSharedArchive, Name: "boomer", Kind: clone.KindWeapon})
	require.NoError(t, err)
	assert.True(t, report.BaseArchiveFound)
	require.Len(t, report.Plan.Items, 2)
	assert.True(t, report.Plan.Items[1].Degraded)
	assert.Contains(t, report.Warnings,
		"archive boomer.str2_pc already written from "+fixtures.CostumeSharedArchive+".str2_pc, skipped "+fixtures.SightItem+".str2_pc")

	dir := filepath.Join("out", "boomer")
	data, err := afero.ReadFile(afs, filepath.Join(dir, "boomer.str2_pc"))
	require.NoError(t, err)
	p, err := packfile.Decode(data)
	require.NoError(t, err)
	mesh, ok := p.Find("boomer.csmesh_pc")
	require.True(t, ok)
	assert.Equal(t, []byte("smesh"), mesh.Data, "the base mesh archive is not overwritten")

	preload := readGroup(t, afs, filepath.Join(dir, clone.GroupMeshes))
	assert.Equal(t, []string{"boomer"}, containerNames(preload))
}

func TestClone_StrictBaseArchiveMissing(t *testing.T) {
	cfg := testConfig()
	cfg.Strict = true
	svc, afs := newService(t, cfg, nil)

	report, err := svc.Clone(context.Background(), clone.Request{Source: fixtures.CostumeNoArchive, Name: "rifle2", Kind: clone.KindWeapon})
	assert.ErrorIs(t, err, clone.ErrBaseArchiveMissing)
	require.NotNil(t, report)
	assert.True(t, report.Strict)

	ok, err := afero.DirExists(afs, filepath.Join("out", "rifle2"))
	require.NoError(t, err)
	assert.False(t, ok, "staged writes must not reach the destination")
}

func TestClone_StrictCommits(t *testing.T) {
	cfg := testConfig()
	cfg.Strict = true
	svc, afs := newService(t, cfg, nil)

	report, err := svc.Clone(context.Background(), clone.Request{Source: fixtures.Costume, Name: "zapgun", Kind: clone.KindWeapon})
	require.NoError(t, err)
	for _, f := range report.Files {
		ok, err := afero.Exists(afs, f)
		require.NoError(t, err)
		assert.True(t, ok, f)
	}
}

func TestClone_DLCRejected(t *testing.T) {
	svc, afs := newService(t, testConfig(), nil)

	_, err := svc.Clone(context.Background(), clone.Request{Source: fixtures.CostumeDLC, Name: "dlc2", Kind: clone.KindWeapon})
	assert.ErrorIs(t, err, clone.ErrDLCContent)

	entries, err := afero.ReadDir(afs, filepath.Join("out", "dlc2"))
	require.NoError(t, err, "the output directory is created first")
	assert.Empty(t, entries)
}

func TestClone_DLCFlagIsExact(t *testing.T) {
	svc, afs := newService(t, testConfig(), nil)
	// a loose table shadows the packed one
	require.NoError(t, afero.WriteFile(afs, "data/weapon_costumes.xtbl", fixtures.Table(
		`<Costume><Name>lower_dlc</Name><Weapon_Entry>`+fixtures.Weapon+`</Weapon_Entry><Item_Entry>`+fixtures.BaseItem+
			`</Item_Entry><Inventory_Entry>`+fixtures.Weapon+`</Inventory_Entry><Is_DLC>true</Is_DLC></Costume>`,
		`<Costume><Name>upper_dlc</Name><Weapon_Entry>`+fixtures.Weapon+`</Weapon_Entry><Item_Entry>`+fixtures.BaseItem+
			`</Item_Entry><Inventory_Entry>`+fixtures.Weapon+`</Inventory_Entry><Is_DLC> True </Is_DLC></Costume>`,
	), 0o644))
	ctx := context.Background()

	_, err := svc.Clone(ctx, clone.Request{Source: "lower_dlc", Name: "lower2", Kind: clone.KindCostume})
	require.NoError(t, err)

	_, err = svc.Clone(ctx, clone.Request{Source: "upper_dlc", Name: "upper2", Kind: clone.KindCostume})
	assert.ErrorIs(t, err, clone.ErrDLCContent)
}

func TestClone_Aborts(t *testing.T) {
	svc, _ := newService(t, testConfig(), nil)
	ctx := context.Background()

	t.Run("missing root", func(t *testing.T) {
		_, err := svc.Clone(ctx, clone.Request{Source: "nope", Name: "x", Kind: clone.KindWeapon})
		var nf *closure.NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, records.Costume, nf.Kind)
	})
	t.Run("missing weapon", func(t *testing.T) {
		_, err := svc.Clone(ctx, clone.Request{Source: fixtures.CostumeNoWeapon, Name: "x", Kind: clone.KindCostume})
		var nf *closure.NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, records.Weapon, nf.Kind)
	})
	t.Run("unrecognized entry", func(t *testing.T) {
		_, err := svc.Clone(ctx, clone.Request{Source: fixtures.CostumeBroken, Name: "x", Kind: clone.KindWeapon})
		var uk *transcode.UnrecognizedKindError
		require.ErrorAs(t, err, &uk)
	})
	t.Run("no mesh", func(t *testing.T) {
		_, err := svc.Clone(ctx, clone.Request{Source: fixtures.CostumeNoMesh, Name: "x", Kind: clone.KindWeapon})
		assert.ErrorIs(t, err, rename.ErrNoMesh)
	})
	t.Run("empty name", func(t *testing.T) {
		_, err := svc.Clone(ctx, clone.Request{Source: fixtures.Costume, Name: " ", Kind: clone.KindWeapon})
		assert.ErrorIs(t, err, rename.ErrEmptyName)
	})
	t.Run("unknown kind", func(t *testing.T) {
		_, err := svc.Clone(ctx, clone.Request{Source: fixtures.Costume, Name: "x", Kind: "hat"})
		assert.ErrorIs(t, err, clone.ErrUnknownKind)
	})
	t.Run("name with path elements", func(t *testing.T) {
		for _, name := range []string{"../x", "a/b", `a\b`, ".."} {
			report, err := svc.Clone(ctx, clone.Request{Source: fixtures.Costume, Name: name, Kind: clone.KindWeapon})
			assert.ErrorIs(t, err, clone.ErrInvalidName, name)
			assert.Nil(t, report)
		}
	})
	t.Run("output outside root", func(t *testing.T) {
		for _, output := range []string{"../escaped", "/etc/evil", "x/../../escaped"} {
			report, err := svc.Clone(ctx, clone.Request{Source: fixtures.Costume, Name: "x", Kind: clone.KindWeapon, Output: output})
			assert.ErrorIs(t, err, game.ErrOutputEscape, output)
			assert.Nil(t, report)
		}
	})
}

func TestClone_InventoryFallback(t *testing.T) {
	svc, _ := newService(t, testConfig(), nil)

	report, err := svc.Clone(context.Background(), clone.Request{Source: fixtures.CostumeNoInv, Name: "inv2", Kind: clone.KindWeapon})
	require.NoError(t, err)
	require.NotNil(t, report.Closure)
	assert.True(t, report.Closure.InventoryFallback)
	assert.Equal(t, "Pistol-Gang", report.Closure.Inventory)
	assert.Contains(t, report.Warnings, "inventory item not found, cloned Pistol-Gang")
}

func TestClone_CompatStoreEntry(t *testing.T) {
	cfg := testConfig()
	cfg.CompatStoreEntry = true
	svc, afs := newService(t, cfg, nil)

	_, err := svc.Clone(context.Background(), clone.Request{Source: fixtures.Costume, Name: "zapgun", Kind: clone.KindWeapon})
	require.NoError(t, err)

	store := readTable(t, afs, filepath.Join("out", "zapgun", "store_weapons.xtbl"))
	assert.Equal(t, "zapgun", text(store, "Store_Weapons/Weapons_List/Entry/Weapon"))
	assert.Equal(t, "500", text(store, "Store_Weapons/Weapons_List/Entry/Price"))
}

func TestClone_RecordsRuns(t *testing.T) {
	ledger := new(mockLedger)
	svc, _ := newService(t, testConfig(), ledger)
	ctx := context.Background()

	ledger.On("Record", mock.Anything, mock.MatchedBy(func(run *history.CloneRun) bool {
		var plan rename.Plan
		return run.Status == history.StatusCompleted && run.RecordsEmitted == 9 &&
			json.Unmarshal(run.Plan, &plan) == nil && plan.NewBase == "zapgun"
	})).Return(nil).Once()
	ledger.On("Record", mock.Anything, mock.MatchedBy(func(run *history.CloneRun) bool {
		return run.Status == history.StatusAborted && run.Reason != ""
	})).Return(assert.AnError).Once()

	_, err := svc.Clone(ctx, clone.Request{Source: fixtures.Costume, Name: "zapgun", Kind: clone.KindWeapon})
	require.NoError(t, err)
	_, err = svc.Clone(ctx, clone.Request{Source: fixtures.CostumeDLC, Name: "dlc2", Kind: clone.KindWeapon})
	assert.ErrorIs(t, err, clone.ErrDLCContent)

	ledger.AssertExpectations(t)
}

func TestService_Runs(t *testing.T) {
	svc, _ := newService(t, testConfig(), nil)
	_, err := svc.Runs(context.Background(), 10)
	assert.ErrorIs(t, err, clone.ErrNoLedger)

	ledger := new(mockLedger)
	ledger.On("List", mock.Anything, 10).Return([]history.CloneRun{{RunID: "a"}}, nil)
	svc, _ = newService(t, testConfig(), ledger)
	runs, err := svc.Runs(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestService_DatasetReload(t *testing.T) {
	svc, _ := newService(t, testConfig(), nil)
	ctx := context.Background()

	first, err := svc.Dataset(ctx)
	require.NoError(t, err)
	again, err := svc.Dataset(ctx)
	require.NoError(t, err)
	assert.Same(t, first, again)

	reloaded, err := svc.Reload(ctx)
	require.NoError(t, err)
	assert.NotSame(t, first, reloaded)
	assert.Equal(t, first.Records.Len(records.Costume), reloaded.Records.Len(records.Costume))
}

func TestService_DatasetCanceled(t *testing.T) {
	svc, _ := newService(t, testConfig(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.Dataset(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestService_Lookups(t *testing.T) {
	svc, _ := newService(t, testConfig(), nil)
	ctx := context.Background()

	rec, err := svc.Record(ctx, records.Weapon, "PISTOL_TACTICAL")
	require.NoError(t, err)
	assert.Equal(t, fixtures.Weapon, rec.Name())

	_, err = svc.Record(ctx, records.Weapon, "nope")
	var nf *closure.NotFoundError
	assert.ErrorAs(t, err, &nf)

	c, err := svc.Closure(ctx, clone.KindWeapon, fixtures.Costume)
	require.NoError(t, err)
	assert.Len(t, c.Upgrades, 2)
}

func TestParseKind(t *testing.T) {
	k, err := clone.ParseKind(" Weapon ")
	require.NoError(t, err)
	assert.Equal(t, clone.KindWeapon, k)
	assert.Equal(t, records.Skin, clone.KindSkin.RootKind())

	_, err = clone.ParseKind("hat")
	assert.ErrorIs(t, err, clone.ErrUnknownKind)
}
