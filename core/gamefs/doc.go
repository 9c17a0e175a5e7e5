// Package gamefs locates game files across one or more data directories.
//
// A game installation keeps most of its data inside packfiles (*.vpp_pc),
// with a handful of loose files next to them. Dir indexes both by lower-cased
// base name so that callers can open "weapon_costumes.xtbl" without knowing
// which packfile, if any, holds it.
//
// Resolution order:
//   - Loose files shadow packed entries.
//   - Earlier data roots shadow later ones.
//   - Within a root, packfiles are scanned in lexical order.
//
// Each Open returns an independent reader that the caller must close.
package gamefs
