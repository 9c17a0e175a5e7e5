package rename

import (
	"fmt"

	"asset-cloner/core/xtbl"
	"asset-cloner/feature/closure"

	"github.com/beevik/etree"
)

// Apply writes the renames of p into the records of c. c must be the closure p
// was planned from.
func Apply(c *closure.Closure, p *Plan) error {
	if len(p.Items) != len(c.Items) {
		return fmt.Errorf("plan has %d items, closure has %d", len(p.Items), len(c.Items))
	}

	var props []*etree.Element
	for i, r := range p.Items {
		it := c.Items[i]
		if it.Slot != r.Slot {
			return fmt.Errorf("plan slot %d does not match closure slot %d", r.Slot, it.Slot)
		}
		rec := it.Record

		switch r.MeshKind {
		case closure.StaticMesh:
			rec.SetPath(closure.PathStaticMesh, r.NewName+StaticMeshExt)
		case closure.CharacterMesh:
			rec.SetPath(closure.PathCharacterMesh, r.NewName+CharacterMeshExt)
			rec.SetPath(closure.PathRig, r.NewName+RigExt)
		}
		rec.SetName(r.NewName)

		if r.Slot == 0 {
			props = rec.Elements(closure.PathProps)
			continue
		}
		if r.Slot-1 < len(props) {
			xtbl.SetChildText(props[r.Slot-1], "Name", r.NewName)
		}
	}

	if p.MaterialLibrary != nil && p.MaterialLibrary.OldFile != "" {
		c.Root.SetPath(closure.PathMatlib, p.MaterialLibrary.NewFile)
	}
	c.Root.SetName(p.NewBase)
	return nil
}
