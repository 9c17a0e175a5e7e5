// Package clone drives a clone from source record to output directory.
//
// One pipeline serves every clone kind; a per-kind profile selects which
// records are relinked and which documents are written:
//
//	weapon   costume + weapon + inventory + items + upgrades + store entries, MOD_WPN_ strings
//	costume  costume + inventory + items, MOD_COST_ strings
//	skin     skin and its material library, MOD_SKN_ strings
//
// A run creates the output directory, resolves the closure, rejects DLC
// content, moves display strings to new keys, renames every record and asset,
// transcodes each needed archive once, then writes the table documents,
// asset-group documents and per-language string files.
//
// When the base mesh archive does not exist the run still writes every other
// file, but the table documents stay empty. With game.strict every write is
// staged in memory and the run fails with ErrBaseArchiveMissing instead.
//
// Runs are serialized by Service; the dataset they read is immutable and is
// rebuilt only by Reload.
package clone
