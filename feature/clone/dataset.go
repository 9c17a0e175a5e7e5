package clone

import (
	"fmt"
	"time"

	"asset-cloner/core/asm"
	"asset-cloner/core/game"
	"asset-cloner/core/gamefs"
	"asset-cloner/core/layout"
	"asset-cloner/core/xtbl"
	"asset-cloner/feature/localization"
	"asset-cloner/feature/records"

	"github.com/beevik/etree"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Dataset is the read-only game data every clone run reads from.
type Dataset struct {
	Layout  *layout.Layout
	Source  gamefs.Source
	Records *records.Store
	Strings *localization.Table

	tableTemplate *etree.Document
	groupTemplate *asm.File

	LoadedAt time.Time
}

// LoadDataset indexes the game installation described by cfg.
func LoadDataset(afs afero.Fs, cfg game.Config, logger *zap.Logger) (*Dataset, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	start := time.Now()

	l, err := layout.Load(cfg.LayoutFile)
	if err != nil {
		return nil, err
	}

	src, err := gamefs.NewDir(afs, cfg.Roots(), logger)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{Layout: l, Source: src}

	// each source is read to completion before the next is opened
	ds.Records, err = records.Build(src, l, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build record store: %w", err)
	}
	ds.Strings, err = localization.LoadAll(src, l.Strings, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load strings: %w", err)
	}

	ds.tableTemplate, err = xtbl.LoadTemplate(afs, cfg.TemplatesDir)
	if err != nil {
		return nil, err
	}
	ds.groupTemplate, err = asm.LoadTemplate(afs, cfg.TemplatesDir)
	if err != nil {
		return nil, err
	}

	ds.LoadedAt = time.Now()
	logger.Info("Game data loaded",
		zap.Int("files", src.Len()),
		zap.Int("costumes", ds.Records.Len(records.Costume)),
		zap.Int("skins", ds.Records.Len(records.Skin)),
		zap.Int("languages", len(ds.Strings.Languages())),
		zap.Duration("took", ds.LoadedAt.Sub(start)),
	)
	return ds, nil
}

// newTable starts an empty table document from the template.
func (d *Dataset) newTable() (*xtbl.Table, error) {
	return xtbl.NewTable(d.tableTemplate)
}

// newGroup starts an empty asset-group document from the template.
func (d *Dataset) newGroup() *asm.File {
	return d.groupTemplate.Clone()
}
