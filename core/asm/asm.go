package asm

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"asset-cloner/core/packfile"

	"github.com/fxamacker/cbor/v2"
	"github.com/spf13/afero"
)

const (
	// Magic identifies an asset-group document.
	Magic uint32 = 0xBEEFFEED
	// Version is the document version written by Encode.
	Version uint16 = 5
)

// ErrBadMagic is returned when the input is not an asset-group document.
var ErrBadMagic = errors.New("asm: bad magic")

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("asm: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("asm: CBOR decoder initialization failed: " + err.Error())
	}
}

// File is a decoded asset-group document.
type File struct {
	Version    uint16       `cbor:"-"`
	Containers []*Container `cbor:"1,keyasint"`
}

// Container describes one streaming archive.
type Container struct {
	Name  string `cbor:"1,keyasint"`
	Type  uint8  `cbor:"2,keyasint"`
	Flags uint16 `cbor:"3,keyasint"`
	// PackfileSize is the stored size of the archive this container describes.
	PackfileSize uint32       `cbor:"4,keyasint"`
	Primitives   []*Primitive `cbor:"5,keyasint"`
}

// Primitive maps one asset to its archive membership.
type Primitive struct {
	Name      string `cbor:"1,keyasint"`
	Type      uint8  `cbor:"2,keyasint"`
	Allocator uint8  `cbor:"3,keyasint"`
	Flags     uint8  `cbor:"4,keyasint"`
	// HeaderSize is the size of the CPU-side file (c* extension).
	HeaderSize uint32 `cbor:"5,keyasint"`
	// DataSize is the size of the GPU-side companion file (g* extension), if any.
	DataSize uint32 `cbor:"6,keyasint"`
}

// New returns an empty document.
func New() *File {
	return &File{Version: Version}
}

// Read decodes a document from r.
func Read(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read asm: %w", err)
	}
	return Decode(data)
}

// Decode parses a document held in memory.
func Decode(data []byte) (*File, error) {
	if len(data) < 6 {
		return nil, fmt.Errorf("asm: document truncated")
	}
	if binary.LittleEndian.Uint32(data[0:4]) != Magic {
		return nil, ErrBadMagic
	}
	f := &File{}
	if err := decMode.Unmarshal(data[6:], f); err != nil {
		return nil, fmt.Errorf("asm: failed to decode body: %w", err)
	}
	f.Version = binary.LittleEndian.Uint16(data[4:6])
	return f, nil
}

// Encode serializes the document.
func (f *File) Encode() ([]byte, error) {
	body, err := encMode.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("asm: failed to encode body: %w", err)
	}
	version := f.Version
	if version == 0 {
		version = Version
	}
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.LittleEndian, Magic)
	_ = binary.Write(&buf, binary.LittleEndian, version)
	buf.Write(body)
	return buf.Bytes(), nil
}

// Find returns the container with the given name, compared case-insensitively.
func (f *File) Find(name string) (*Container, bool) {
	for _, c := range f.Containers {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return nil, false
}

// Add appends a container.
func (f *File) Add(c *Container) {
	f.Containers = append(f.Containers, c)
}

// Clone returns a deep copy of the document.
func (f *File) Clone() *File {
	out := &File{Version: f.Version}
	for _, c := range f.Containers {
		out.Containers = append(out.Containers, c.Clone())
	}
	return out
}

// Clone returns a deep copy of the container.
func (c *Container) Clone() *Container {
	out := *c
	out.Primitives = make([]*Primitive, len(c.Primitives))
	for i, p := range c.Primitives {
		cp := *p
		out.Primitives[i] = &cp
	}
	return &out
}

// FindPrimitive returns the primitive with the given name, compared case-insensitively.
func (c *Container) FindPrimitive(name string) (*Primitive, bool) {
	for _, p := range c.Primitives {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return nil, false
}

// RemovePrimitive deletes the named primitive and reports whether it existed.
func (c *Container) RemovePrimitive(name string) bool {
	for i, p := range c.Primitives {
		if strings.EqualFold(p.Name, name) {
			c.Primitives = append(c.Primitives[:i], c.Primitives[i+1:]...)
			return true
		}
	}
	return false
}

// SyncSizes refreshes primitive sizes from the archive the container now
// describes. A primitive named "x.cmesh_pc" takes its header size from that
// entry and its data size from "x.gmesh_pc" when present.
func (c *Container) SyncSizes(p *packfile.Packfile, packedSize int) {
	c.PackfileSize = uint32(packedSize)
	for _, prim := range c.Primitives {
		if e, ok := p.Find(prim.Name); ok {
			prim.HeaderSize = e.Size
		}
		prim.DataSize = 0
		if gpu, ok := companion(prim.Name); ok {
			if e, ok := p.Find(gpu); ok {
				prim.DataSize = e.Size
			}
		}
	}
}

func companion(name string) (string, bool) {
	ext := path.Ext(name)
	if len(ext) < 3 || (ext[1] != 'c' && ext[1] != 'C') {
		return "", false
	}
	return strings.TrimSuffix(name, ext) + ".g" + ext[2:], true
}

// TemplateName is the file name of the asset-group template.
const TemplateName = "template_items_containers.asm_pc"

// LoadTemplate reads the asset-group template from dir. An empty document is
// returned when the template is absent.
func LoadTemplate(afs afero.Fs, dir string) (*File, error) {
	if dir == "" {
		return New(), nil
	}
	data, err := afero.ReadFile(afs, filepath.Join(dir, TemplateName))
	if errors.Is(err, os.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read asm template: %w", err)
	}
	return Decode(data)
}
