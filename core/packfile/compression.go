package packfile

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zlib"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the codec used for the data section.
type Compression uint32

const (
	// None stores entry data verbatim.
	None Compression = iota
	// Zlib is the retail codec.
	Zlib
	// LZ4 trades ratio for speed; useful for local iteration builds.
	LZ4
)

// String implements fmt.Stringer.
func (c Compression) String() string {
	switch c {
	case None:
		return "none"
	case Zlib:
		return "zlib"
	case LZ4:
		return "lz4"
	default:
		return fmt.Sprintf("compression(%d)", uint32(c))
	}
}

// ParseCompression maps a configuration value to a Compression. Only
// compressing codecs are accepted since new archives are always compressed.
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "zlib":
		return Zlib, nil
	case "lz4":
		return LZ4, nil
	default:
		return None, fmt.Errorf("unknown compression %q", s)
	}
}

func compress(c Compression, data []byte) ([]byte, error) {
	var buf bytes.Buffer
	var w io.WriteCloser
	switch c {
	case None:
		return data, nil
	case Zlib:
		w = zlib.NewWriter(&buf)
	case LZ4:
		w = lz4.NewWriter(&buf)
	default:
		return nil, fmt.Errorf("unsupported compression %s", c)
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("failed to compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to compress: %w", err)
	}
	return buf.Bytes(), nil
}

func decompress(c Compression, data []byte, size int) ([]byte, error) {
	var r io.Reader
	switch c {
	case None:
		return data, nil
	case Zlib:
		zr, err := zlib.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to open zlib stream: %w", err)
		}
		defer zr.Close()
		r = zr
	case LZ4:
		r = lz4.NewReader(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("unsupported compression %s", c)
	}
	out := make([]byte, size)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, fmt.Errorf("failed to decompress: %w", err)
	}
	return out, nil
}
