// Package asm reads and writes asset-group documents (.asm_pc).
//
// An asset-group document lists containers. Each container names one
// streaming archive (its base name without extension) and carries one
// primitive per asset packed inside it. Primitives are renamed in lockstep with
// the archive entries they describe; SyncSizes refreshes their sizes from a
// freshly built archive.
//
// The on-disk form is a small binary header (magic, version) followed by a
// deterministic CBOR body, so the same document always produces the same bytes.
package asm
