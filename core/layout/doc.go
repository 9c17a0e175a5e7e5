// Package layout describes where a game installation keeps its tables, its
// container (asm) documents and its localized strings.
//
// The default layout is embedded from layout.yaml and mirrors the retail file
// naming: a base table followed by numbered DLC overlays. A custom layout file
// can replace it entirely through the game.layout_file setting.
package layout
