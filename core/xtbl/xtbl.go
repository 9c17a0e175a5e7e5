package xtbl

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/beevik/etree"
	"github.com/spf13/afero"
)

// TemplateName is the file name of the table template.
const TemplateName = "template_table.xtbl"

//go:embed templates/template_table.xtbl
var defaultTemplate []byte

// ErrNoTable is returned when a document has no <Table> element.
var ErrNoTable = errors.New("xtbl: document has no Table element")

// Read parses a table document.
func Read(r io.Reader) (*etree.Document, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("failed to parse xtbl: %w", err)
	}
	return doc, nil
}

// LoadTemplate reads the table template from dir, falling back to the
// embedded default when the file is absent.
func LoadTemplate(fs afero.Fs, dir string) (*etree.Document, error) {
	if dir != "" {
		data, err := afero.ReadFile(fs, filepath.Join(dir, TemplateName))
		if err == nil {
			return Read(bytes.NewReader(data))
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read template: %w", err)
		}
	}
	return Read(bytes.NewReader(defaultTemplate))
}

// Table is an output document under construction.
type Table struct {
	doc    *etree.Document
	target *etree.Element
	count  int
}

// NewTable copies template and targets its first <Table> element.
func NewTable(template *etree.Document) (*Table, error) {
	doc := template.Copy()
	table := doc.FindElement("//Table")
	if table == nil {
		return nil, ErrNoTable
	}
	return &Table{doc: doc, target: table}, nil
}

// Section nests the insertion point under a named list, producing
// <element><Name>name</Name><list>...</list></element>.
func (t *Table) Section(element, name, list string) *Table {
	section := t.target.CreateElement(element)
	section.CreateElement("Name").SetText(name)
	t.target = section.CreateElement(list)
	return t
}

// Add appends a record element.
func (t *Table) Add(el *etree.Element) {
	t.target.AddChild(el)
	t.count++
}

// Len returns the number of records added.
func (t *Table) Len() int {
	return t.count
}

// Document returns the underlying document.
func (t *Table) Document() *etree.Document {
	return t.doc
}

// Encode renders the table.
func (t *Table) Encode() ([]byte, error) {
	return Encode(t.doc)
}

// Encode renders doc with tab indentation, CRLF line endings and no XML declaration.
func Encode(doc *etree.Document) ([]byte, error) {
	out := doc.Copy()
	for _, tok := range append([]etree.Token(nil), out.Child...) {
		if _, ok := tok.(*etree.ProcInst); ok {
			out.RemoveChild(tok)
		}
	}
	out.IndentTabs()

	var buf bytes.Buffer
	if _, err := out.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write xtbl: %w", err)
	}
	data := bytes.ReplaceAll(buf.Bytes(), []byte("\r\n"), []byte("\n"))
	return bytes.ReplaceAll(data, []byte("\n"), []byte("\r\n")), nil
}

// Records returns every element named tag below root, optionally restricted
// to those nested under the given parent path.
func Records(root *etree.Element, tag string, parents ...string) []*etree.Element {
	path := ".//"
	for _, p := range parents {
		path += p + "//"
	}
	return root.FindElements(path + tag)
}

// ChildText returns the text of the first direct child named tag.
func ChildText(el *etree.Element, tag string) (string, bool) {
	child := el.SelectElement(tag)
	if child == nil {
		return "", false
	}
	return child.Text(), true
}

// SetChildText sets the text of the first direct child named tag, creating it when missing.
func SetChildText(el *etree.Element, tag, text string) {
	child := el.SelectElement(tag)
	if child == nil {
		child = el.CreateElement(tag)
	}
	child.SetText(text)
}

// RemoveChild deletes the first direct child named tag and reports whether it existed.
func RemoveChild(el *etree.Element, tag string) bool {
	child := el.SelectElement(tag)
	if child == nil {
		return false
	}
	el.RemoveChild(child)
	return true
}
