// Package localization loads the game's localized strings.
//
// Strings are keyed by the content hash of a symbolic key, never by the key
// itself, so the only way to find the text of CUST_WPN_COSTUME_DESC_LTPISTOL_0
// is HashOf the key followed by Lookup. The language of each string file is
// the trailing locale code of its name.
package localization
