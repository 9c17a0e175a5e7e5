package utils

import (
	"path"
	"regexp"
	"strings"
)

// IsTrue reports whether val is the table spelling of true. Only the exact
// "True" counts; "true" and "1" do not.
func IsTrue(val string) bool {
	return strings.TrimSpace(val) == FormatBool(true)
}

// FormatBool writes a table boolean.
func FormatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// BaseName returns the file name of p without directory and extension.
// Both slash and backslash separators are accepted.
func BaseName(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = path.Base(p)
	if p == "." || p == "/" {
		return ""
	}
	return strings.TrimSuffix(p, path.Ext(p))
}

// ReplaceFold replaces every case-insensitive occurrence of old in s with
// repl. The replacement is literal. It reports whether old occurred at all.
func ReplaceFold(s, old, repl string) (string, bool) {
	if old == "" {
		return s, false
	}
	re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(old))
	if !re.MatchString(s) {
		return s, false
	}
	return re.ReplaceAllLiteralString(s, repl), true
}
