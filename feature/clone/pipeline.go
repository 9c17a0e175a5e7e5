package clone

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"asset-cloner/core/asm"
	"asset-cloner/core/game"
	"asset-cloner/core/output"
	"asset-cloner/core/packfile"
	"asset-cloner/core/utils"
	"asset-cloner/feature/closure"
	"asset-cloner/feature/records"
	"asset-cloner/feature/rename"
	"asset-cloner/feature/transcode"

	"go.uber.org/zap"
)

// Fields forced or stripped on cloned records.
const (
	fieldIsDLC       = "Is_DLC"
	fieldUnlocked    = "Unlocked"
	fieldSlotIndex   = "Costume_Slot_Index"
	fieldInfoSlot    = "Info_Slot_Index"
	fieldDisplayName = "Display_Name"
	fieldDescription = "Description"
	fieldInvName     = "DisplayName"
)

// store_weapons.xtbl nests its entries in a named list.
const (
	storeSection     = "Store_Weapons"
	storeSectionName = "Weapons list"
	storeList        = "Weapons_List"
)

// run is the state of one clone.
type run struct {
	ds     *Dataset
	cfg    game.Config
	prof   profile
	out    output.Writer
	dir    string
	logger *zap.Logger
	report *Report

	tc     *transcode.Transcoder
	groups map[string]*asm.File
	// transcoded remembers each (source archive, new base) pair already cloned.
	transcoded map[string]bool
	// written maps each output archive name, lower-cased, to its source archive.
	written map[string]string
}

func (r *run) warn(msg string, fields ...zap.Field) {
	r.logger.Warn(msg, fields...)
	r.report.Warnings = append(r.report.Warnings, msg)
}

// execute runs every stage of a clone. Files already written stay on disk when
// it fails, unless the writer stages them.
func (r *run) execute(req Request) error {
	if err := r.out.MkdirAll(r.dir); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	resolver := closure.NewResolver(r.ds.Records, r.logger)
	opts := closure.Options{
		Weapon:            r.prof.weapon,
		InventoryFallback: r.ds.Layout.Defaults.InventoryItem,
	}
	if r.cfg.CompatStoreEntry {
		opts.StoreEntry = r.ds.Layout.Defaults.StoreWeaponEntry
	}
	c, err := resolver.Resolve(r.prof.root, req.Source, opts)
	if err != nil {
		return err
	}
	summary := c.Summary()
	r.report.Closure = &summary

	if v, ok := c.Root.Field(fieldIsDLC); ok && utils.IsTrue(v) {
		return fmt.Errorf("%w: %s", ErrDLCContent, c.SourceName)
	}
	for _, name := range c.MissingProps {
		r.report.Warnings = append(r.report.Warnings, fmt.Sprintf("prop %q not found", name))
	}
	if c.InventoryFallback {
		r.report.Warnings = append(r.report.Warnings, "inventory item not found, cloned "+opts.InventoryFallback)
	}
	if r.prof.weapon && len(c.StoreEntries) == 0 {
		r.report.Warnings = append(r.report.Warnings, "store entry not found")
	}

	keys := r.rekey(c)

	plan, err := rename.PlanRenames(c, r.report.NewName)
	if err != nil {
		return err
	}
	if err := rename.Apply(c, plan); err != nil {
		return err
	}
	r.report.Plan = plan
	for _, it := range plan.Items {
		if it.Degraded {
			r.warn(fmt.Sprintf("prop mesh %s does not contain the base mesh name, renamed to %s", it.OldMesh, it.NewName),
				zap.Int("slot", it.Slot))
		}
	}

	c.Root.SetField(fieldUnlocked, utils.FormatBool(true))
	if r.prof.root == records.Costume {
		c.Root.RemoveField(fieldSlotIndex)
	}

	found, err := r.transcodeAll(plan)
	if err != nil {
		return err
	}
	r.report.BaseArchiveFound = found
	if !found {
		if r.cfg.Strict {
			return ErrBaseArchiveMissing
		}
		r.warn("base archive not found, no records will be written")
	}

	if r.prof.root == records.Costume {
		r.relink(c)
	}

	if err := r.writeTables(c, found); err != nil {
		return err
	}
	if err := r.writeGroups(); err != nil {
		return err
	}
	return r.writeStrings(keys)
}

// rekey moves the display strings of the root and inventory item to new keys.
func (r *run) rekey(c *closure.Closure) []stringKey {
	base := keyBase(r.prof.prefix, r.report.NewName)
	defs := r.ds.Layout.Defaults

	keys := rekey(c.Root, fieldDisplayName, fieldDescription, base, "", defs.DisplayName, defs.Description, r.prof.label)
	if r.prof.inventory && c.Inventory != nil {
		keys = append(keys, rekey(c.Inventory, fieldInvName, fieldDescription, base, "_INV", defs.DisplayName, defs.Description, "inventory")...)
	}
	return keys
}

// transcodeAll clones every archive the plan needs and reports whether the
// base archive was found.
func (r *run) transcodeAll(plan *rename.Plan) (bool, error) {
	if plan.MaterialLibrary != nil {
		if plan.MaterialLibrary.OldFile == "" {
			r.warn("skin has no material library")
		}
		return r.transcode(plan.MaterialLibrary.Archive, plan.NewBase, GroupSkins)
	}

	base := false
	for _, it := range plan.Items {
		found, err := r.transcode(it.MeshArchive, it.NewName, GroupMeshes)
		if err != nil {
			return false, err
		}
		if it.Slot == 0 {
			base = found
		}
		if _, err := r.transcode(it.TextureArchive, it.NewTexture(), GroupTextures); err != nil {
			return false, err
		}
	}
	return base, nil
}

func (r *run) transcode(source, newBase, group string) (bool, error) {
	key := strings.ToLower(source) + "|" + strings.ToLower(newBase)
	if found, done := r.transcoded[key]; done {
		return found, nil
	}

	res, found, err := r.tc.Transcode(source, newBase)
	if err != nil {
		return false, err
	}
	r.transcoded[key] = found

	rep := ArchiveReport{Source: source, Archive: newBase + transcode.ArchiveExt, Group: group, Found: found}
	if !found {
		r.warn("archive not found: "+source, zap.String("archive", source))
		r.report.Archives = append(r.report.Archives, rep)
		return false, nil
	}

	name := strings.ToLower(res.Archive)
	if prev, taken := r.written[name]; taken {
		r.warn(fmt.Sprintf("archive %s already written from %s, skipped %s", res.Archive, prev, source),
			zap.String("archive", res.Archive))
		return true, nil
	}
	if err := r.out.WriteFile(filepath.Join(r.dir, res.Archive), res.Data); err != nil {
		return false, err
	}
	r.written[name] = source
	r.group(group).Add(res.Container)

	rep.Size = len(res.Data)
	rep.Entries = res.Entries
	r.report.Archives = append(r.report.Archives, rep)
	r.logger.Info("Cloned archive", zap.String("source", source), zap.String("archive", res.Archive))
	return true, nil
}

func (r *run) group(name string) *asm.File {
	g, ok := r.groups[name]
	if !ok {
		g = r.ds.newGroup()
		r.groups[name] = g
	}
	return g
}

// relink points the cloned costume records at each other.
func (r *run) relink(c *closure.Closure) {
	name := r.report.NewName

	c.Root.SetField(closure.FieldItem, name)
	c.Root.SetField(closure.FieldInventory, name)
	c.Inventory.SetName(name)
	c.Inventory.RemoveField(fieldInfoSlot)

	if !r.prof.weapon {
		return
	}
	c.Root.SetField(closure.FieldWeapon, name)
	c.Weapon.SetName(name)
	for _, u := range c.Upgrades {
		u.SetField(closure.FieldWInfo, name)
	}
	for _, e := range c.StoreEntries {
		e.SetName(name)
	}
}

// tableRecords returns the closure records emitted into the table of kind.
func tableRecords(c *closure.Closure, kind records.Kind) []*records.Record {
	switch kind {
	case records.Costume, records.Skin:
		return []*records.Record{c.Root}
	case records.Weapon:
		return []*records.Record{c.Weapon}
	case records.InventoryItem:
		return []*records.Record{c.Inventory}
	case records.Item3D:
		out := make([]*records.Record, 0, len(c.Items))
		for _, it := range c.Items {
			out = append(out, it.Record)
		}
		return out
	case records.UpgradeEntry:
		return c.Upgrades
	case records.StoreWeaponEntry:
		return c.StoreEntries
	}
	return nil
}

// writeTables writes one table document per kind of the profile. Records are
// only added when the base archive was found.
func (r *run) writeTables(c *closure.Closure, emit bool) error {
	for _, kind := range r.prof.tables {
		tbl, ok := r.ds.Layout.Table(string(kind))
		if !ok || len(tbl.Files) == 0 {
			return fmt.Errorf("layout has no table file for %s", kind)
		}
		file := tbl.Files[0]

		table, err := r.ds.newTable()
		if err != nil {
			return err
		}
		if kind == records.StoreWeaponEntry {
			table.Section(storeSection, storeSectionName, storeList)
		}
		if emit {
			for _, rec := range tableRecords(c, kind) {
				if rec != nil {
					table.Add(rec.Element())
				}
			}
		}

		data, err := table.Encode()
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", file, err)
		}
		if err := r.out.WriteFile(filepath.Join(r.dir, file), data); err != nil {
			return err
		}
		r.report.Tables = append(r.report.Tables, TableReport{File: file, Records: table.Len()})
		r.report.RecordsEmitted += table.Len()
	}
	return nil
}

func (r *run) writeGroups() error {
	for _, name := range r.prof.groups {
		data, err := r.group(name).Encode()
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", name, err)
		}
		if err := r.out.WriteFile(filepath.Join(r.dir, name), data); err != nil {
			return err
		}
	}
	return nil
}

// newRun prepares a run writing through out.
func newRun(ds *Dataset, cfg game.Config, prof profile, out output.Writer, dir string, report *Report, logger *zap.Logger) (*run, error) {
	comp, err := packfile.ParseCompression(cfg.Compression)
	if err != nil {
		return nil, err
	}
	return &run{
		ds:         ds,
		cfg:        cfg,
		prof:       prof,
		out:        out,
		dir:        dir,
		logger:     logger,
		report:     report,
		tc:         transcode.New(ds.Source, ds.Layout.Containers, comp, logger),
		groups:     make(map[string]*asm.File),
		transcoded: make(map[string]bool),
		written:    make(map[string]string),
	}, nil
}

// isAbort reports whether err is an expected abort rather than an I/O failure.
func isAbort(err error) bool {
	var nf *closure.NotFoundError
	var uk *transcode.UnrecognizedKindError
	return errors.As(err, &nf) || errors.As(err, &uk) ||
		errors.Is(err, ErrDLCContent) || errors.Is(err, ErrBaseArchiveMissing) ||
		errors.Is(err, rename.ErrNoMesh) || errors.Is(err, rename.ErrEmptyName)
}
