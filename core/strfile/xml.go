package strfile

import (
	"bytes"

	"github.com/beevik/etree"
)

// Entry is one named string written to the XML mirror.
type Entry struct {
	Name string
	Text string
}

// EncodeXML renders the human-readable mirror of a string file. Keys are
// written by name since the binary file only keeps their hashes.
func EncodeXML(language, game string, entries []Entry) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)
	root := doc.CreateElement("Strings")
	root.CreateAttr("Language", language)
	root.CreateAttr("Game", game)
	for _, e := range entries {
		s := root.CreateElement("String")
		s.CreateAttr("Name", e.Name)
		s.SetText(e.Text)
	}
	doc.IndentTabs()

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, err
	}
	return bytes.ReplaceAll(buf.Bytes(), []byte("\n"), []byte("\r\n")), nil
}
