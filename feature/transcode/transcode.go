package transcode

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"asset-cloner/core/asm"
	"asset-cloner/core/clothsim"
	"asset-cloner/core/gamefs"
	"asset-cloner/core/packfile"

	"go.uber.org/zap"
)

// ArchiveExt is the extension of streaming archives.
const ArchiveExt = ".str2_pc"

// EntryReport describes what happened to one source entry.
type EntryReport struct {
	Old    string `json:"old"`
	New    string `json:"new,omitempty"`
	Action Action `json:"action"`
}

// Result is a freshly built archive and the container describing it.
type Result struct {
	// Source is the archive that was read.
	Source string
	// Archive is the file name of the new archive.
	Archive string
	// Data is the encoded new archive.
	Data []byte
	// Container describes the new archive; its name is the new base name.
	Container *asm.Container
	Entries   []EntryReport
}

// Transcoder copies streaming archives under new names.
type Transcoder struct {
	src         gamefs.Source
	containers  []string
	compression packfile.Compression
	logger      *zap.Logger
	docs        map[string]*asm.File
}

// New returns a Transcoder reading archives from src and containers from the
// asset-group documents named in containers, searched in order.
func New(src gamefs.Source, containers []string, compression packfile.Compression, logger *zap.Logger) *Transcoder {
	if logger == nil {
		logger = zap.NewNop()
	}
	if compression == packfile.None {
		compression = packfile.Zlib
	}
	return &Transcoder{
		src:         src,
		containers:  containers,
		compression: compression,
		logger:      logger,
		docs:        make(map[string]*asm.File),
	}
}

// Transcode copies sourceArchive into a new archive named newBase. It reports
// found=false, without error, when the archive or its container does not exist.
func (t *Transcoder) Transcode(sourceArchive, newBase string) (*Result, bool, error) {
	old, err := t.readArchive(sourceArchive)
	if errors.Is(err, fs.ErrNotExist) {
		t.logger.Debug("Archive not found", zap.String("archive", sourceArchive))
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	containerName := strings.TrimSuffix(path.Base(sourceArchive), path.Ext(sourceArchive))
	container, err := t.findContainer(containerName)
	if err != nil {
		return nil, false, err
	}
	if container == nil {
		t.logger.Debug("Container not found", zap.String("container", containerName))
		return nil, false, nil
	}

	res := &Result{
		Source:    sourceArchive,
		Archive:   newBase + ArchiveExt,
		Container: container,
	}
	out := packfile.New(t.compression)

	for _, e := range old.Entries() {
		action, err := Classify(sourceArchive, e.Name)
		if err != nil {
			return nil, false, err
		}

		report := EntryReport{Old: e.Name, Action: action}
		switch action {
		case ActionRewrite:
			data, err := clothsim.Rename(e.Data, newBase)
			if err != nil {
				return nil, false, fmt.Errorf("archive %s: cloth sim %s: %w", sourceArchive, e.Name, err)
			}
			report.New = newBase + path.Ext(e.Name)
			out.Add(report.New, data)
			renamePrimitive(container, e.Name, report.New)
		case ActionRename:
			report.New = newBase + path.Ext(e.Name)
			out.Add(report.New, e.Data)
			renamePrimitive(container, e.Name, report.New)
		case ActionKeep:
			report.New = e.Name
			out.Add(e.Name, e.Data)
		case ActionDrop:
			container.RemovePrimitive(e.Name)
		}
		res.Entries = append(res.Entries, report)
	}

	res.Data, err = out.Encode()
	if err != nil {
		return nil, false, fmt.Errorf("archive %s: %w", res.Archive, err)
	}
	container.Name = newBase
	container.SyncSizes(out, len(res.Data))

	t.logger.Debug("Transcoded archive",
		zap.String("source", sourceArchive),
		zap.String("archive", res.Archive),
		zap.Int("entries", out.Len()),
	)
	return res, true, nil
}

func renamePrimitive(c *asm.Container, old, name string) {
	if p, ok := c.FindPrimitive(old); ok {
		p.Name = name
	}
}

func (t *Transcoder) readArchive(name string) (*packfile.Packfile, error) {
	r, err := t.src.Open(name)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	p, err := packfile.Read(r)
	if err != nil {
		return nil, fmt.Errorf("archive %s: %w", name, err)
	}
	return p, nil
}

// findContainer returns a copy of the first container named name across the
// asset-group search list, or nil when none matches.
func (t *Transcoder) findContainer(name string) (*asm.Container, error) {
	for _, docName := range t.containers {
		doc, err := t.document(docName)
		if err != nil {
			return nil, err
		}
		if doc == nil {
			continue
		}
		if c, ok := doc.Find(name); ok {
			return c.Clone(), nil
		}
	}
	return nil, nil
}

func (t *Transcoder) document(name string) (*asm.File, error) {
	if doc, ok := t.docs[name]; ok {
		return doc, nil
	}
	r, err := t.src.Open(name)
	if errors.Is(err, fs.ErrNotExist) {
		t.docs[name] = nil
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer r.Close()

	doc, err := asm.Read(r)
	if err != nil {
		return nil, fmt.Errorf("asset group %s: %w", name, err)
	}
	t.docs[name] = doc
	return doc, nil
}
