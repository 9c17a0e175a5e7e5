package localization

import (
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Language is a game locale, identified by the code the game uses in
// string file names (static_text_us.le_strings).
type Language struct {
	// Code is the game's locale code.
	Code string
	// Tag is the matching BCP 47 tag.
	Tag language.Tag
}

var codes = map[string]language.Tag{
	"us": language.English,
	"es": language.Spanish,
	"it": language.Italian,
	"jp": language.Japanese,
	"de": language.German,
	"fr": language.French,
	"nl": language.Dutch,
	"se": language.Swedish,
	"dk": language.Danish,
	"cz": language.Czech,
	"pl": language.Polish,
	"ru": language.Russian,
	"kr": language.Korean,
	"ch": language.Chinese,
}

// LookupCode returns the language for a game locale code.
func LookupCode(code string) (Language, bool) {
	code = strings.ToLower(code)
	tag, ok := codes[code]
	if !ok {
		return Language{}, false
	}
	return Language{Code: code, Tag: tag}, true
}

// Name returns the English name of the language, as written in string XML
// mirrors (e.g. "English", "Japanese").
func (l Language) Name() string {
	base, _ := l.Tag.Base()
	return display.English.Languages().Name(base)
}

// String implements fmt.Stringer.
func (l Language) String() string {
	return l.Code
}

// Codes returns every known locale code, sorted.
func Codes() []string {
	out := make([]string, 0, len(codes))
	for c := range codes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// CodeFromFile extracts the trailing locale code of a string file name:
// "static_text_us.le_strings" yields "us".
func CodeFromFile(name string) string {
	name = strings.ToLower(name)
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[:i]
	}
	if i := strings.LastIndexByte(name, '_'); i >= 0 {
		return name[i+1:]
	}
	return name
}
