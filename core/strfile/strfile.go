package strfile

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sort"

	"asset-cloner/core/hashes"

	"golang.org/x/text/encoding/unicode"
)

const (
	// Magic identifies a string file.
	Magic uint32 = 0xA84C7F73
	// Version is the only supported version.
	Version uint16 = 1

	headerSize = 12
	entrySize  = 12
)

// ErrBadMagic is returned when the input is not a string file.
var ErrBadMagic = errors.New("strfile: bad magic")

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// File is an in-memory string file.
type File struct {
	strings map[uint32]string
}

// New returns an empty string file.
func New() *File {
	return &File{strings: make(map[uint32]string)}
}

// Add stores text under the hash of key, replacing any previous value.
func (f *File) Add(key, text string) {
	f.AddHash(hashes.CRC(key), text)
}

// AddHash stores text under a precomputed hash.
func (f *File) AddHash(hash uint32, text string) {
	f.strings[hash] = text
}

// Get returns the text stored under hash.
func (f *File) Get(hash uint32) (string, bool) {
	s, ok := f.strings[hash]
	return s, ok
}

// Len returns the number of strings.
func (f *File) Len() int {
	return len(f.strings)
}

// Hashes returns all hashes in ascending order.
func (f *File) Hashes() []uint32 {
	out := make([]uint32, 0, len(f.strings))
	for h := range f.strings {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Read decodes a string file from r.
func Read(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read string file: %w", err)
	}
	return Decode(data)
}

// Decode parses a string file held in memory.
func Decode(data []byte) (*File, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("strfile: header truncated")
	}
	if binary.LittleEndian.Uint32(data[0:4]) != Magic {
		return nil, ErrBadMagic
	}
	if v := binary.LittleEndian.Uint16(data[4:6]); v != Version {
		return nil, fmt.Errorf("strfile: unsupported version %d", v)
	}
	count := int(binary.LittleEndian.Uint32(data[8:12]))
	textStart := headerSize + count*entrySize
	if len(data) < textStart {
		return nil, fmt.Errorf("strfile: directory truncated")
	}
	text := data[textStart:]

	dec := utf16le.NewDecoder()
	f := New()
	for i := 0; i < count; i++ {
		off := headerSize + i*entrySize
		hash := binary.LittleEndian.Uint32(data[off:])
		start := binary.LittleEndian.Uint32(data[off+4:])
		length := binary.LittleEndian.Uint32(data[off+8:])
		if int(start)+int(length) > len(text) {
			return nil, fmt.Errorf("strfile: string 0x%08X out of range", hash)
		}
		s, err := dec.Bytes(text[start : start+length])
		if err != nil {
			return nil, fmt.Errorf("strfile: string 0x%08X: %w", hash, err)
		}
		f.strings[hash] = string(s)
	}
	return f, nil
}

// Encode serializes the file with entries sorted by hash.
func (f *File) Encode() ([]byte, error) {
	keys := f.Hashes()
	enc := utf16le.NewEncoder()

	var dir, text bytes.Buffer
	for _, h := range keys {
		encoded, err := enc.Bytes([]byte(f.strings[h]))
		if err != nil {
			return nil, fmt.Errorf("strfile: string 0x%08X: %w", h, err)
		}
		_ = binary.Write(&dir, binary.LittleEndian, h)
		_ = binary.Write(&dir, binary.LittleEndian, uint32(text.Len()))
		_ = binary.Write(&dir, binary.LittleEndian, uint32(len(encoded)))
		text.Write(encoded)
	}

	var out bytes.Buffer
	_ = binary.Write(&out, binary.LittleEndian, Magic)
	_ = binary.Write(&out, binary.LittleEndian, Version)
	_ = binary.Write(&out, binary.LittleEndian, uint16(0))
	_ = binary.Write(&out, binary.LittleEndian, uint32(len(keys)))
	out.Write(dir.Bytes())
	out.Write(text.Bytes())
	return out.Bytes(), nil
}
