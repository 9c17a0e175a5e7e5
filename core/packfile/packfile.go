package packfile

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"

	"asset-cloner/core/hashes"
)

const (
	// Magic identifies an archive.
	Magic uint32 = 0x51890ACE
	// Version is the only archive version this package writes.
	Version uint32 = 0x0A

	flagCompressed uint32 = 1 << 0
	flagCondensed  uint32 = 1 << 1

	headerSize = 32
	entrySize  = 20
)

var (
	// ErrBadMagic is returned when the input is not an archive.
	ErrBadMagic = errors.New("packfile: bad magic")
	// ErrUnsupportedVersion is returned for archive versions other than Version.
	ErrUnsupportedVersion = errors.New("packfile: unsupported version")
	// ErrHashMismatch is returned when a directory entry's name hash is wrong.
	ErrHashMismatch = errors.New("packfile: name hash mismatch")
)

// Entry is one named file inside an archive.
type Entry struct {
	Name string
	// Hash is the content hash of Name.
	Hash uint32
	// Size is the uncompressed size of Data.
	Size uint32
	// CompressedSize is the stored size; zero when condensed or uncompressed.
	CompressedSize uint32
	Data           []byte
}

// Packfile is an in-memory archive.
type Packfile struct {
	Version     uint32
	Compressed  bool
	Condensed   bool
	Compression Compression
	entries     []*Entry
}

type header struct {
	Magic       uint32
	Version     uint32
	Flags       uint32
	Compression uint32
	Count       uint32
	NamesSize   uint32
	DataSize    uint32
	RawSize     uint32
}

type dirEntry struct {
	NameOffset     uint32
	NameHash       uint32
	DataOffset     uint32
	Size           uint32
	CompressedSize uint32
}

// New returns an empty archive. Any compression other than None produces a
// compressed, condensed archive.
func New(c Compression) *Packfile {
	return &Packfile{
		Version:     Version,
		Compressed:  c != None,
		Condensed:   c != None,
		Compression: c,
	}
}

// Add appends a file. Names are kept in insertion order.
func (p *Packfile) Add(name string, data []byte) {
	p.entries = append(p.entries, &Entry{
		Name: name,
		Hash: hashes.CRC(name),
		Size: uint32(len(data)),
		Data: data,
	})
}

// Entries returns the archive entries in order.
func (p *Packfile) Entries() []*Entry {
	return p.entries
}

// Len returns the number of entries.
func (p *Packfile) Len() int {
	return len(p.entries)
}

// Find returns the entry with the given name, compared case-insensitively.
func (p *Packfile) Find(name string) (*Entry, bool) {
	for _, e := range p.entries {
		if strings.EqualFold(e.Name, name) {
			return e, true
		}
	}
	return nil, false
}

// Read decodes a whole archive from r.
func Read(r io.Reader) (*Packfile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read packfile: %w", err)
	}
	return Decode(data)
}

// Decode parses an archive held in memory.
func Decode(data []byte) (*Packfile, error) {
	r := bytes.NewReader(data)
	h, dir, names, err := readDirectory(r)
	if err != nil {
		return nil, err
	}

	dataStart := int64(headerSize + entrySize*int(h.Count) + int(h.NamesSize))
	if dataStart+int64(h.DataSize) > int64(len(data)) {
		return nil, fmt.Errorf("packfile: data section truncated")
	}
	section := data[dataStart : dataStart+int64(h.DataSize)]

	p := &Packfile{
		Version:     h.Version,
		Compressed:  h.Flags&flagCompressed != 0,
		Condensed:   h.Flags&flagCondensed != 0,
		Compression: Compression(h.Compression),
	}
	if !p.Compressed {
		p.Compression = None
	}

	var raw []byte
	if p.Compressed && p.Condensed {
		raw, err = decompress(p.Compression, section, int(h.RawSize))
		if err != nil {
			return nil, err
		}
	}

	for i, d := range dir {
		e := &Entry{Name: names[i], Hash: d.NameHash, Size: d.Size, CompressedSize: d.CompressedSize}
		switch {
		case p.Compressed && p.Condensed:
			if int(d.DataOffset)+int(d.Size) > len(raw) {
				return nil, fmt.Errorf("packfile: entry %s out of range", e.Name)
			}
			e.Data = raw[d.DataOffset : d.DataOffset+d.Size]
		case p.Compressed:
			if int(d.DataOffset)+int(d.CompressedSize) > len(section) {
				return nil, fmt.Errorf("packfile: entry %s out of range", e.Name)
			}
			e.Data, err = decompress(p.Compression, section[d.DataOffset:d.DataOffset+d.CompressedSize], int(d.Size))
			if err != nil {
				return nil, fmt.Errorf("packfile: entry %s: %w", e.Name, err)
			}
		default:
			if int(d.DataOffset)+int(d.Size) > len(section) {
				return nil, fmt.Errorf("packfile: entry %s out of range", e.Name)
			}
			e.Data = section[d.DataOffset : d.DataOffset+d.Size]
		}
		p.entries = append(p.entries, e)
	}
	return p, nil
}

// ReadIndex lists the entries of an archive without decoding their data.
func ReadIndex(r io.Reader) ([]Entry, error) {
	_, dir, names, err := readDirectory(r)
	if err != nil {
		return nil, err
	}
	out := make([]Entry, len(dir))
	for i, d := range dir {
		out[i] = Entry{Name: names[i], Hash: d.NameHash, Size: d.Size, CompressedSize: d.CompressedSize}
	}
	return out, nil
}

func readDirectory(r io.Reader) (header, []dirEntry, []string, error) {
	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return h, nil, nil, fmt.Errorf("packfile: failed to read header: %w", err)
	}
	if h.Magic != Magic {
		return h, nil, nil, ErrBadMagic
	}
	if h.Version != Version {
		return h, nil, nil, fmt.Errorf("%w: 0x%X", ErrUnsupportedVersion, h.Version)
	}

	dir := make([]dirEntry, h.Count)
	if err := binary.Read(r, binary.LittleEndian, dir); err != nil {
		return h, nil, nil, fmt.Errorf("packfile: failed to read directory: %w", err)
	}
	block := make([]byte, h.NamesSize)
	if _, err := io.ReadFull(r, block); err != nil {
		return h, nil, nil, fmt.Errorf("packfile: failed to read names: %w", err)
	}

	names := make([]string, len(dir))
	for i, d := range dir {
		if int(d.NameOffset) >= len(block) {
			return h, nil, nil, fmt.Errorf("packfile: name offset out of range")
		}
		end := bytes.IndexByte(block[d.NameOffset:], 0)
		if end < 0 {
			return h, nil, nil, fmt.Errorf("packfile: unterminated name")
		}
		names[i] = string(block[d.NameOffset : int(d.NameOffset)+end])
		if hashes.CRC(names[i]) != d.NameHash {
			return h, nil, nil, fmt.Errorf("%w: %s", ErrHashMismatch, names[i])
		}
	}
	return h, dir, names, nil
}

// Encode serializes the archive.
func (p *Packfile) Encode() ([]byte, error) {
	dir := make([]dirEntry, len(p.entries))
	var names bytes.Buffer
	var raw bytes.Buffer
	var section bytes.Buffer

	for i, e := range p.entries {
		dir[i].NameOffset = uint32(names.Len())
		dir[i].NameHash = hashes.CRC(e.Name)
		dir[i].Size = uint32(len(e.Data))
		names.WriteString(e.Name)
		names.WriteByte(0)

		switch {
		case p.Compressed && p.Condensed:
			dir[i].DataOffset = uint32(raw.Len())
			raw.Write(e.Data)
		case p.Compressed:
			packed, err := compress(p.Compression, e.Data)
			if err != nil {
				return nil, fmt.Errorf("packfile: entry %s: %w", e.Name, err)
			}
			dir[i].DataOffset = uint32(section.Len())
			dir[i].CompressedSize = uint32(len(packed))
			section.Write(packed)
		default:
			dir[i].DataOffset = uint32(section.Len())
			section.Write(e.Data)
		}
	}

	if p.Compressed && p.Condensed {
		packed, err := compress(p.Compression, raw.Bytes())
		if err != nil {
			return nil, err
		}
		section.Write(packed)
	}

	h := header{
		Magic:     Magic,
		Version:   Version,
		Count:     uint32(len(p.entries)),
		NamesSize: uint32(names.Len()),
		DataSize:  uint32(section.Len()),
		RawSize:   uint32(raw.Len()),
	}
	if p.Compressed {
		h.Flags |= flagCompressed
		h.Compression = uint32(p.Compression)
	}
	if p.Condensed {
		h.Flags |= flagCondensed
	}

	var out bytes.Buffer
	if err := binary.Write(&out, binary.LittleEndian, h); err != nil {
		return nil, err
	}
	if err := binary.Write(&out, binary.LittleEndian, dir); err != nil {
		return nil, err
	}
	out.Write(names.Bytes())
	out.Write(section.Bytes())
	return out.Bytes(), nil
}
