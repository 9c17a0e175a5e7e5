// Package clothsim reads and writes cloth-simulation files (.sim_pc).
//
// Only the header is interpreted. The simulation body is carried through
// untouched so that renaming a file never disturbs its contents.
package clothsim

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// Header is the interpreted part of a cloth-simulation file.
type Header struct {
	Version uint32
	// Name is the owning asset's base name.
	Name string
}

// File is a decoded cloth-simulation file.
type File struct {
	Header Header
	Body   []byte
}

// Read decodes a file from r.
func Read(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read cloth sim: %w", err)
	}
	return Decode(data)
}

// Decode parses a file held in memory.
func Decode(data []byte) (*File, error) {
	if len(data) < 6 {
		return nil, fmt.Errorf("clothsim: header truncated")
	}
	f := &File{}
	f.Header.Version = binary.LittleEndian.Uint32(data[0:4])
	n := int(binary.LittleEndian.Uint16(data[4:6]))
	if len(data) < 6+n {
		return nil, fmt.Errorf("clothsim: name truncated")
	}
	f.Header.Name = string(data[6 : 6+n])
	f.Body = append([]byte(nil), data[6+n:]...)
	return f, nil
}

// Encode serializes the file.
func (f *File) Encode() ([]byte, error) {
	if len(f.Header.Name) > 0xFFFF {
		return nil, fmt.Errorf("clothsim: name too long")
	}
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.LittleEndian, f.Header.Version)
	_ = binary.Write(&buf, binary.LittleEndian, uint16(len(f.Header.Name)))
	buf.WriteString(f.Header.Name)
	buf.Write(f.Body)
	return buf.Bytes(), nil
}

// Rename decodes data, replaces the header name and re-encodes it.
func Rename(data []byte, name string) ([]byte, error) {
	f, err := Decode(data)
	if err != nil {
		return nil, err
	}
	f.Header.Name = name
	return f.Encode()
}
