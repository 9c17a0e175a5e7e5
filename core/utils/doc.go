// Package utils provides small helpers shared by the table and rename code:
// table boolean parsing, file base names and case-insensitive replacement.
package utils
