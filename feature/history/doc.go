// Package history records clone runs in the optional run ledger database.
package history
