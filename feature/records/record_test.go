package records_test

import (
	"testing"

	"asset-cloner/feature/records"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itemRecord(t *testing.T) *records.Record {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(`<Item><Name>pistol_base</Name><Mesh><Filename>pistol_base.smeshx</Filename></Mesh><Props><Prop><Name>a</Name></Prop><Prop><Name>b</Name></Prop></Props><Unlocked>False</Unlocked></Item>`))
	return records.New(records.Item3D, "items_3d.xtbl", "Name", doc.Root())
}

func TestRecord_Fields(t *testing.T) {
	rec := itemRecord(t)

	v, ok := rec.Path("Mesh/Filename")
	require.True(t, ok)
	assert.Equal(t, "pistol_base.smeshx", v)

	assert.True(t, rec.SetPath("Mesh/Filename", "zapgun.smeshx"))
	assert.False(t, rec.SetPath("character_mesh/rig/Filename", "x"))
	v, _ = rec.Path("Mesh/Filename")
	assert.Equal(t, "zapgun.smeshx", v)

	props := rec.Elements("Props/Prop")
	require.Len(t, props, 2)

	rec.SetField("Unlocked", "True")
	rec.SetField("Display_Name", "KEY")
	assert.True(t, rec.RemoveField("Unlocked"))
	_, ok = rec.Field("Unlocked")
	assert.False(t, ok)

	assert.Equal(t, []records.Field{
		{Name: "Name", Value: "pistol_base"},
		{Name: "Display_Name", Value: "KEY"},
	}, rec.Fields())
}

func TestRecord_Clone(t *testing.T) {
	rec := itemRecord(t)
	clone := rec.Clone()
	clone.SetName("zapgun")
	assert.Equal(t, "pistol_base", rec.Name())
	assert.Equal(t, "zapgun", clone.Name())
	assert.Equal(t, records.Item3D, clone.Kind)
}
