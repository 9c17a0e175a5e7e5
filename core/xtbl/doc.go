// Package xtbl loads and writes game table documents (.xtbl).
//
// Table documents are plain XML with a root element containing a single
// <Table> element whose children are records. Output tables are seeded from a
// template document (template_table.xtbl), either read from the configured
// templates directory or taken from the embedded default.
//
// Documents are written the way the game's own tools write them: tab
// indentation, CRLF line endings, no XML declaration and UTF-8 without BOM.
package xtbl
