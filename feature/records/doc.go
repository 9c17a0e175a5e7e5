// Package records indexes the game's table records.
//
// A Store is built once from the table sources listed in the layout: for each
// kind, the base table followed by its DLC overlays. Records are indexed by
// their lower-cased key (Name, or Weapon for store entries) and the first
// source to define a key wins; later overlays never replace it.
//
// The Store is read-only after Build. Find and FindAllReferencing hand out
// detached copies, so callers may edit a record and append it to an output
// table without touching the index.
package records
