// Package strfile reads and writes localized string files (.le_strings) and
// their human-readable XML mirrors.
//
// A string file belongs to a single language. It maps the content hash of a
// symbolic key to UTF-16LE text; the keys themselves are not stored. Entries
// are written sorted by hash.
package strfile
