package rename_test

import (
	"testing"

	"asset-cloner/core/layout"
	"asset-cloner/feature/closure"
	"asset-cloner/feature/records"
	"asset-cloner/feature/rename"
	"asset-cloner/internal/fixtures"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolve(t *testing.T, kind records.Kind, name string) *closure.Closure {
	t.Helper()
	src, _ := fixtures.Source(t)
	l, err := layout.Default()
	require.NoError(t, err)
	store, err := records.Build(src, l, nil)
	require.NoError(t, err)
	c, err := closure.NewResolver(store, nil).Resolve(kind, name, closure.Options{InventoryFallback: "Pistol-Gang"})
	require.NoError(t, err)
	return c
}

func TestSubstituteBase(t *testing.T) {
	tests := []struct {
		name     string
		oldMesh  string
		baseMesh string
		want     string
		ok       bool
	}{
		{"suffix kept", "pistol_base_silencer", "pistol_base", "zapgun_silencer", true},
		{"case-insensitive", "PISTOL_BASE_scope", "pistol_base", "zapgun_scope", true},
		{"prefix kept", "big_pistol_base", "pistol_base", "big_zapgun", true},
		{"absent falls back", "scope_generic", "pistol_base", "zapgun", false},
		{"empty base falls back", "scope_generic", "", "zapgun", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := rename.SubstituteBase(tt.oldMesh, tt.baseMesh, "zapgun")
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestPlanRenames_Costume(t *testing.T) {
	c := resolve(t, records.Costume, fixtures.Costume)

	p, err := rename.PlanRenames(c, "zapgun")
	require.NoError(t, err)
	assert.Equal(t, fixtures.Costume, p.OldRoot)
	require.Len(t, p.Items, 3)

	base := p.Items[0]
	assert.Equal(t, "zapgun", base.NewName)
	assert.Equal(t, "pistol_base", base.OldMesh)
	assert.Equal(t, closure.CharacterMesh, base.MeshKind)
	assert.Equal(t, fixtures.Costume+".str2_pc", base.MeshArchive)
	assert.Equal(t, "pistol_base_high.str2_pc", base.TextureArchive)
	assert.Equal(t, "zapgun_high", base.NewTexture())

	silencer := p.Items[1]
	assert.Equal(t, 1, silencer.Slot)
	assert.Equal(t, "zapgun_Silencer", silencer.NewName)
	assert.False(t, silencer.Degraded)
	assert.Equal(t, fixtures.SilencerItem+".str2_pc", silencer.MeshArchive)

	scope := p.Items[2]
	assert.Equal(t, 3, scope.Slot)
	assert.Equal(t, "zapgun", scope.NewName)
	assert.True(t, scope.Degraded)
	assert.Equal(t, fixtures.Costume+".str2_pc", scope.MeshArchive)
}

func TestPlanRenames_Deterministic(t *testing.T) {
	first, err := rename.PlanRenames(resolve(t, records.Costume, fixtures.Costume), "zapgun")
	require.NoError(t, err)
	second, err := rename.PlanRenames(resolve(t, records.Costume, fixtures.Costume), "zapgun")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPlanRenames_Errors(t *testing.T) {
	_, err := rename.PlanRenames(resolve(t, records.Costume, fixtures.Costume), "  ")
	assert.ErrorIs(t, err, rename.ErrEmptyName)

	_, err = rename.PlanRenames(resolve(t, records.Costume, fixtures.CostumeNoMesh), "x")
	assert.ErrorIs(t, err, rename.ErrNoMesh)
}

func TestPlanRenames_Skin(t *testing.T) {
	p, err := rename.PlanRenames(resolve(t, records.Skin, fixtures.Skin), "my_camo")
	require.NoError(t, err)
	require.NotNil(t, p.MaterialLibrary)
	assert.Equal(t, "my_camo.matlibx", p.MaterialLibrary.NewFile)
	assert.Equal(t, "camo_matlib.str2_pc", p.MaterialLibrary.Archive)
	assert.Empty(t, p.Items)
}

func TestApply_Costume(t *testing.T) {
	c := resolve(t, records.Costume, fixtures.Costume)
	p, err := rename.PlanRenames(c, "zapgun")
	require.NoError(t, err)
	require.NoError(t, rename.Apply(c, p))

	assert.Equal(t, "zapgun", c.Root.Name())

	base := c.Items[0].Record
	assert.Equal(t, "zapgun", base.Name())
	mesh, _ := base.Path(closure.PathCharacterMesh)
	assert.Equal(t, "zapgun.cmeshx", mesh)
	rig, _ := base.Path(closure.PathRig)
	assert.Equal(t, "zapgun.rigx", rig)

	silencer := c.Items[1].Record
	assert.Equal(t, "zapgun_Silencer", silencer.Name())
	mesh, _ = silencer.Path(closure.PathStaticMesh)
	assert.Equal(t, "zapgun_Silencer.smeshx", mesh)

	// the back-reference of each prop matches the prop's new name; the
	// unresolved prop keeps its old name
	var props []string
	for _, el := range base.Elements(closure.PathProps) {
		props = append(props, el.SelectElement("Name").Text())
	}
	assert.Equal(t, []string{"zapgun_Silencer", fixtures.MissingProp, "zapgun"}, props)
}

func TestApply_Skin(t *testing.T) {
	c := resolve(t, records.Skin, fixtures.Skin)
	p, err := rename.PlanRenames(c, "my_camo")
	require.NoError(t, err)
	require.NoError(t, rename.Apply(c, p))

	assert.Equal(t, "my_camo", c.Root.Name())
	file, _ := c.Root.Path(closure.PathMatlib)
	assert.Equal(t, "my_camo.matlibx", file)
}

func TestApply_MismatchedPlan(t *testing.T) {
	c := resolve(t, records.Costume, fixtures.Costume)
	p, err := rename.PlanRenames(c, "zapgun")
	require.NoError(t, err)
	p.Items = p.Items[:1]
	assert.Error(t, rename.Apply(c, p))
}
