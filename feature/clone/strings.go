package clone

import (
	"fmt"
	"path/filepath"
	"strings"

	"asset-cloner/core/strfile"
	"asset-cloner/feature/localization"
	"asset-cloner/feature/records"

	"go.uber.org/zap"
)

// String markers prepended to the original text.
const (
	NameMarker        = "CLONE: "
	DescriptionMarker = "CLONED DESCRIPTION: "
)

// StringXMLDir is the output subdirectory holding the XML string mirrors.
const StringXMLDir = "stringxml"

// stringKey is one synthesized string: the key it replaces and the key it becomes.
type stringKey struct {
	label       string
	original    string
	hash        uint32
	key         string
	description bool
}

// rekey replaces the display-name and description keys of rec with keys built
// from base and suffix, and returns both keys with the original hashes.
func rekey(rec *records.Record, nameField, descField, base, suffix, defName, defDesc, label string) []stringKey {
	name := fieldOr(rec, nameField, defName)
	desc := fieldOr(rec, descField, defDesc)

	keys := []stringKey{
		{label: label + " name", original: name, key: base + suffix},
		{label: label + " description", original: desc, key: base + suffix + "_DESC", description: true},
	}
	for i := range keys {
		keys[i].hash = localization.HashOf(keys[i].original)
	}
	rec.SetField(nameField, keys[0].key)
	rec.SetField(descField, keys[1].key)
	return keys
}

func fieldOr(rec *records.Record, field, def string) string {
	if v, ok := rec.Field(field); ok && v != "" {
		return v
	}
	return def
}

// text returns the new localized text of k, falling back to a marker plus the
// new name when the original text is missing.
func (k stringKey) text(t *localization.Table, code, newName string) (string, bool) {
	orig, ok := t.Lookup(code, k.hash)
	if !ok {
		return NameMarker + newName, false
	}
	if k.description {
		return DescriptionMarker + orig, true
	}
	return NameMarker + orig, true
}

// writeStrings writes one binary string file and one XML mirror per language.
func (r *run) writeStrings(keys []stringKey) error {
	xmlDir := filepath.Join(r.dir, StringXMLDir)
	if err := r.out.MkdirAll(xmlDir); err != nil {
		return fmt.Errorf("failed to create %s: %w", xmlDir, err)
	}

	for _, lang := range r.ds.Strings.Languages() {
		file := strfile.New()
		entries := make([]strfile.Entry, 0, len(keys))
		for _, k := range keys {
			text, ok := k.text(r.ds.Strings, lang.Code, r.report.NewName)
			if !ok {
				r.warn(fmt.Sprintf("original %s string not found for %s", k.label, lang.Name()),
					zap.String("language", lang.Code), zap.String("key", k.original))
			}
			file.Add(k.key, text)
			entries = append(entries, strfile.Entry{Name: k.key, Text: text})
		}

		data, err := file.Encode()
		if err != nil {
			return fmt.Errorf("failed to encode %s strings: %w", lang.Code, err)
		}
		name := fmt.Sprintf("%s_%s.le_strings", r.report.NewName, lang.Code)
		if err := r.out.WriteFile(filepath.Join(r.dir, name), data); err != nil {
			return err
		}

		xml, err := strfile.EncodeXML(lang.Name(), r.ds.Layout.Game, entries)
		if err != nil {
			return fmt.Errorf("failed to encode %s string mirror: %w", lang.Code, err)
		}
		name = fmt.Sprintf("%s_%s.xml", r.report.NewName, lang.Code)
		if err := r.out.WriteFile(filepath.Join(xmlDir, name), xml); err != nil {
			return err
		}
		r.report.Languages = append(r.report.Languages, lang.Code)
	}
	return nil
}

// keyBase returns the string key stem for a new name.
func keyBase(prefix, newName string) string {
	return prefix + strings.ToUpper(newName)
}
