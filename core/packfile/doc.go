// Package packfile reads and writes game archives (.vpp_pc / .str2_pc).
//
// An archive is a header, a directory of fixed-size entries, a block of
// null-terminated entry names and a data section. Every directory entry carries
// the content hash of its name (see core/hashes), which is verified on read.
//
// Flags:
//   - Compressed: entry data is compressed with the archive's compression tag.
//   - Condensed: all entries are compressed together as a single stream
//     instead of one stream per entry.
//
// New archives produced by the cloner are always compressed and condensed.
// ReadIndex lists the directory of an archive without touching the data
// section, which is what the game source index uses to discover packed files.
package packfile
