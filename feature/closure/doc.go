// Package closure resolves a costume or skin record into the set of records a
// clone needs.
//
// A costume closure holds the costume, its weapon, its inventory item and its
// 3D items: the base item in slot 0 and each entry of the base item's prop
// list in slot n for the n-th prop. Weapon clones additionally gather the
// weapon's upgrades and store entries. A skin closure holds only the skin and
// the file name of its material library.
//
// Hard references (root, base item, weapon) fail with a *NotFoundError. Soft
// references fall back and log a warning: a missing inventory item is
// replaced by the layout's default record and a missing prop leaves its slot
// empty.
package closure
