package closure

// ItemSummary is the JSON view of one closure item.
type ItemSummary struct {
	Slot      int      `json:"slot"`
	Name      string   `json:"name"`
	Mesh      string   `json:"mesh,omitempty"`
	MeshKind  MeshKind `json:"mesh_kind,omitempty"`
	Permanent bool     `json:"permanent"`
}

// Summary is the JSON view of a closure.
type Summary struct {
	Kind              string        `json:"kind"`
	Root              string        `json:"root"`
	Weapon            string        `json:"weapon,omitempty"`
	Inventory         string        `json:"inventory,omitempty"`
	InventoryFallback bool          `json:"inventory_fallback"`
	Items             []ItemSummary `json:"items,omitempty"`
	MissingProps      []string      `json:"missing_props,omitempty"`
	Upgrades          []string      `json:"upgrades,omitempty"`
	StoreEntries      []string      `json:"store_entries,omitempty"`
	MaterialLibrary   string        `json:"material_library,omitempty"`
}

// Summary returns the JSON view of c.
func (c *Closure) Summary() Summary {
	s := Summary{
		Kind:              string(c.RootKind),
		Root:              c.Root.Name(),
		InventoryFallback: c.InventoryFallback,
		MissingProps:      c.MissingProps,
		MaterialLibrary:   c.MaterialLibrary,
	}
	if c.Weapon != nil {
		s.Weapon = c.Weapon.Name()
	}
	if c.Inventory != nil {
		s.Inventory = c.Inventory.Name()
	}
	for _, it := range c.Items {
		kind, mesh, _ := it.Mesh()
		s.Items = append(s.Items, ItemSummary{
			Slot:      it.Slot,
			Name:      it.Record.Name(),
			Mesh:      mesh,
			MeshKind:  kind,
			Permanent: it.Permanent(),
		})
	}
	for _, u := range c.Upgrades {
		s.Upgrades = append(s.Upgrades, u.Name())
	}
	for _, e := range c.StoreEntries {
		s.StoreEntries = append(s.StoreEntries, e.Name())
	}
	return s
}
