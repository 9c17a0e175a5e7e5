package closure

import (
	"fmt"

	"asset-cloner/feature/records"

	"go.uber.org/zap"
)

// Finder looks records up by name.
type Finder interface {
	Find(kind records.Kind, name string) (*records.Record, bool)
	FindAllReferencing(kind records.Kind, field, name string) []*records.Record
}

// Options selects the optional parts of a closure.
type Options struct {
	// Weapon gathers the weapon's upgrades and store entries.
	Weapon bool
	// StoreEntry, when set, names the store entry to clone instead of the
	// entries selling the resolved weapon.
	StoreEntry string
	// InventoryFallback names the inventory item used when the costume's own is missing.
	InventoryFallback string
}

// Resolver builds closures from a Finder.
type Resolver struct {
	finder Finder
	logger *zap.Logger
}

// NewResolver returns a Resolver reading from finder.
func NewResolver(finder Finder, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{finder: finder, logger: logger}
}

// Resolve builds the closure rooted at the record rootName of rootKind, which
// must be a costume or a skin.
func (r *Resolver) Resolve(rootKind records.Kind, rootName string, opts Options) (*Closure, error) {
	root, ok := r.finder.Find(rootKind, rootName)
	if !ok {
		return nil, &NotFoundError{Kind: rootKind, Name: rootName}
	}
	c := &Closure{RootKind: rootKind, Root: root, SourceName: root.Name()}

	switch rootKind {
	case records.Costume:
		if err := r.resolveCostume(c, opts); err != nil {
			return nil, err
		}
	case records.Skin:
		r.resolveSkin(c)
	default:
		return nil, fmt.Errorf("%s records cannot be cloned", rootKind)
	}
	return c, nil
}

func (r *Resolver) resolveCostume(c *Closure, opts Options) error {
	weaponName, _ := c.Root.Field(FieldWeapon)
	itemName, _ := c.Root.Field(FieldItem)
	invName, _ := c.Root.Field(FieldInventory)

	r.logger.Debug("Resolving costume",
		zap.String("costume", c.SourceName),
		zap.String("weapon", weaponName),
		zap.String("item", itemName),
		zap.String("inventory", invName),
	)

	inv, ok := r.finder.Find(records.InventoryItem, invName)
	if !ok {
		r.logger.Warn("Inventory item not found, cloning fallback",
			zap.String("inventory", invName),
			zap.String("fallback", opts.InventoryFallback),
		)
		inv, ok = r.finder.Find(records.InventoryItem, opts.InventoryFallback)
		if !ok {
			return &NotFoundError{Kind: records.InventoryItem, Name: opts.InventoryFallback, Reference: FieldInventory}
		}
		c.InventoryFallback = true
	}
	c.Inventory = inv

	base, ok := r.finder.Find(records.Item3D, itemName)
	if !ok {
		return &NotFoundError{Kind: records.Item3D, Name: itemName, Reference: FieldItem}
	}

	weapon, ok := r.finder.Find(records.Weapon, weaponName)
	if !ok {
		return &NotFoundError{Kind: records.Weapon, Name: weaponName, Reference: FieldWeapon}
	}
	c.Weapon = weapon

	c.Items = append(c.Items, Item{Slot: 0, Record: base})
	for i, prop := range base.Elements(PathProps) {
		slot := i + 1
		name := ""
		if el := prop.SelectElement("Name"); el != nil {
			name = el.Text()
		}
		rec, ok := r.finder.Find(records.Item3D, name)
		if !ok {
			r.logger.Warn("Prop item not found, skipping", zap.String("prop", name), zap.Int("slot", slot))
			c.MissingProps = append(c.MissingProps, name)
			continue
		}
		r.logger.Debug("Found prop", zap.String("prop", name), zap.Int("slot", slot))
		c.Items = append(c.Items, Item{Slot: slot, Record: rec})
	}

	if !opts.Weapon {
		return nil
	}

	c.Upgrades = r.finder.FindAllReferencing(records.UpgradeEntry, FieldWInfo, weapon.Name())

	if opts.StoreEntry != "" {
		if entry, ok := r.finder.Find(records.StoreWeaponEntry, opts.StoreEntry); ok {
			c.StoreEntries = append(c.StoreEntries, entry)
		}
	} else {
		c.StoreEntries = r.finder.FindAllReferencing(records.StoreWeaponEntry, FieldStoreKey, weapon.Name())
	}
	if len(c.StoreEntries) == 0 {
		r.logger.Warn("Store entry not found, weapon will not be sold", zap.String("weapon", weapon.Name()))
	}
	return nil
}

func (r *Resolver) resolveSkin(c *Closure) {
	file, ok := c.Root.Path(PathMatlib)
	if !ok || file == "" {
		r.logger.Warn("Material library not found for skin", zap.String("skin", c.SourceName))
		return
	}
	c.MaterialLibrary = file
}
