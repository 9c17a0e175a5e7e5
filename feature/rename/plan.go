package rename

import (
	"errors"
	"fmt"
	"strings"

	"asset-cloner/core/utils"
	"asset-cloner/feature/closure"
	"asset-cloner/feature/records"
	"asset-cloner/feature/transcode"
)

// File extensions written into records.
const (
	StaticMeshExt    = ".smeshx"
	CharacterMeshExt = ".cmeshx"
	RigExt           = ".rigx"
	MatlibExt        = ".matlibx"
	// TextureSuffix is appended to a mesh name to form its high-resolution texture archive name.
	TextureSuffix = "_high"
)

var (
	// ErrEmptyName is returned when the new base name is blank.
	ErrEmptyName = errors.New("new name is empty")
	// ErrNoMesh is returned for a closure item without a mesh file.
	ErrNoMesh = errors.New("item has no mesh")
)

// ItemRename is the rename of one 3D item and its assets.
type ItemRename struct {
	Slot     int              `json:"slot"`
	OldName  string           `json:"old_name"`
	NewName  string           `json:"new_name"`
	MeshKind closure.MeshKind `json:"mesh_kind"`
	OldMesh  string           `json:"old_mesh"`
	// Degraded is set when the prop's mesh name did not contain the base mesh name.
	Degraded bool `json:"degraded,omitempty"`
	// MeshArchive is the source archive holding the item's mesh.
	MeshArchive string `json:"mesh_archive"`
	// TextureArchive is the source archive holding the item's textures.
	TextureArchive string `json:"texture_archive"`
}

// NewTexture returns the base name of the item's new texture archive.
func (r ItemRename) NewTexture() string {
	return r.NewName + TextureSuffix
}

// MaterialRename is the rename of a skin's material library.
type MaterialRename struct {
	OldFile string `json:"old_file"`
	NewFile string `json:"new_file"`
	// Archive is the source archive holding the material library.
	Archive string `json:"archive"`
}

// Plan lists every rename of one clone.
type Plan struct {
	Kind    records.Kind `json:"kind"`
	OldRoot string       `json:"old_root"`
	NewBase string       `json:"new_base"`
	Items   []ItemRename `json:"items,omitempty"`
	// MaterialLibrary is set for skins.
	MaterialLibrary *MaterialRename `json:"material_library,omitempty"`
}

// SubstituteBase computes a prop's new mesh name from its old mesh name, the
// base item's old mesh name and the new base name. It reports false, and
// returns newBase, when oldMesh does not contain baseMesh.
func SubstituteBase(oldMesh, baseMesh, newBase string) (string, bool) {
	out, ok := utils.ReplaceFold(oldMesh, baseMesh, newBase)
	if !ok {
		return newBase, false
	}
	return out, true
}

// PlanRenames derives the renames for cloning c as newBase.
func PlanRenames(c *closure.Closure, newBase string) (*Plan, error) {
	newBase = strings.TrimSpace(newBase)
	if newBase == "" {
		return nil, ErrEmptyName
	}
	p := &Plan{Kind: c.RootKind, OldRoot: c.SourceName, NewBase: newBase}

	if c.RootKind == records.Skin {
		oldBase := utils.BaseName(c.MaterialLibrary)
		p.MaterialLibrary = &MaterialRename{
			OldFile: c.MaterialLibrary,
			NewFile: newBase + MatlibExt,
			Archive: oldBase + transcode.ArchiveExt,
		}
		return p, nil
	}

	var baseMesh string
	for _, it := range c.Items {
		kind, file, ok := it.Mesh()
		if !ok {
			return nil, fmt.Errorf("%w: %s (slot %d)", ErrNoMesh, it.Record.Name(), it.Slot)
		}
		oldMesh := utils.BaseName(file)

		r := ItemRename{
			Slot:           it.Slot,
			OldName:        it.Record.Name(),
			MeshKind:       kind,
			OldMesh:        oldMesh,
			TextureArchive: oldMesh + TextureSuffix + transcode.ArchiveExt,
		}
		if it.Slot == 0 {
			r.NewName = newBase
			baseMesh = oldMesh
		} else {
			var ok bool
			r.NewName, ok = SubstituteBase(oldMesh, baseMesh, newBase)
			r.Degraded = !ok
		}
		if it.Permanent() {
			r.MeshArchive = r.OldName + transcode.ArchiveExt
		} else {
			r.MeshArchive = c.SourceName + transcode.ArchiveExt
		}
		p.Items = append(p.Items, r)
	}
	return p, nil
}
