// Package hashes implements the 32-bit content hash shared by the archive format
// and the localized string tables.
//
// The hash is a reflected CRC-32 (polynomial 0xEDB88320) that starts from zero,
// skips the final inversion, and lowercases every input byte before it is mixed
// in. Archive directories key their entries by this value, and string tables key
// their text by the hash of the symbolic string name, so both sides must agree
// bit for bit.
//
// # Usage
//
//	h := hashes.CRC("CUST_WPN_COSTUME_DESC_LTPISTOL_0")
//	text, ok := table.Lookup(lang, h)
package hashes
