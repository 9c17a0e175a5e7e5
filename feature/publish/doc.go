// Package publish uploads clone output directories to object storage.
//
// Every published directory gets a manifest.json listing each file with its
// size and BLAKE3 digest. A later publish to the same prefix reads the previous
// manifest, uploads only files whose digest changed and removes objects that no
// longer belong to the directory.
package publish
