package clone

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"asset-cloner/core/game"
	"asset-cloner/core/logger"
	"asset-cloner/core/output"
	"asset-cloner/feature/closure"
	"asset-cloner/feature/history"
	"asset-cloner/feature/records"
	"asset-cloner/feature/rename"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/datatypes"
)

// Ledger stores clone runs.
type Ledger interface {
	Record(ctx context.Context, run *history.CloneRun) error
	List(ctx context.Context, limit int) ([]history.CloneRun, error)
}

// Service runs clones against a lazily loaded dataset.
type Service struct {
	cfg    game.Config
	fs     afero.Fs
	logger *zap.Logger
	ledger Ledger

	// mu serializes clone runs.
	mu sync.Mutex

	dsMu    sync.RWMutex
	dataset *Dataset
	sf      singleflight.Group
}

// NewService creates a clone service reading game data from afs. ledger may be nil.
func NewService(cfg game.Config, afs afero.Fs, logger *zap.Logger, ledger Ledger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{cfg: cfg, fs: afs, logger: logger, ledger: ledger}
}

// Dataset returns the loaded dataset, loading it on first use.
func (s *Service) Dataset(ctx context.Context) (*Dataset, error) {
	s.dsMu.RLock()
	ds := s.dataset
	s.dsMu.RUnlock()
	if ds != nil {
		return ds, nil
	}
	return s.load(ctx, false)
}

// Reload rebuilds the dataset from disk. Concurrent reloads share one build.
func (s *Service) Reload(ctx context.Context) (*Dataset, error) {
	return s.load(ctx, true)
}

func (s *Service) load(ctx context.Context, force bool) (*Dataset, error) {
	result, err, _ := s.sf.Do("dataset", func() (interface{}, error) {
		if !force {
			s.dsMu.RLock()
			ds := s.dataset
			s.dsMu.RUnlock()
			if ds != nil {
				return ds, nil
			}
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ds, err := LoadDataset(s.fs, s.cfg, s.logger)
		if err != nil {
			return nil, err
		}
		s.dsMu.Lock()
		s.dataset = ds
		s.dsMu.Unlock()
		return ds, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*Dataset), nil
}

// Record returns a detached copy of one record.
func (s *Service) Record(ctx context.Context, kind records.Kind, name string) (*records.Record, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	rec, ok := ds.Records.Find(kind, name)
	if !ok {
		return nil, &closure.NotFoundError{Kind: kind, Name: name}
	}
	return rec, nil
}

// Closure resolves the closure a clone of kind would copy.
func (s *Service) Closure(ctx context.Context, kind Kind, name string) (*closure.Closure, error) {
	prof, ok := profiles[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	opts := closure.Options{Weapon: prof.weapon, InventoryFallback: ds.Layout.Defaults.InventoryItem}
	if s.cfg.CompatStoreEntry {
		opts.StoreEntry = ds.Layout.Defaults.StoreWeaponEntry
	}
	return closure.NewResolver(ds.Records, s.logger).Resolve(prof.root, name, opts)
}

// Clone runs one clone. The report is returned even when the run aborts.
func (s *Service) Clone(ctx context.Context, req Request) (*Report, error) {
	prof, ok := profiles[req.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, req.Kind)
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, rename.ErrEmptyName
	}
	if strings.ContainsAny(req.Name, `/\`) || strings.Contains(req.Name, "..") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, req.Name)
	}
	if req.Output == "" {
		req.Output = req.Name
	}
	dir, err := s.cfg.OutputDir(req.Output)
	if err != nil {
		return nil, err
	}

	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	report := &Report{
		RunID:   uuid.New().String(),
		Kind:    req.Kind,
		Source:  req.Source,
		NewName: req.Name,
		Output:  dir,
		Strict:  s.cfg.Strict,
	}
	l := logger.WithRun(s.logger, report.RunID, string(req.Kind), req.Name)

	var out output.Writer = output.NewDirect(s.fs)
	if s.cfg.Strict {
		out = output.NewStaged(s.fs)
	}

	r, err := newRun(ds, s.cfg, prof, out, report.Output, report, l)
	if err == nil {
		err = r.execute(req)
	}
	if err == nil {
		err = out.Commit()
	}
	report.Files = out.Files()
	report.Duration = time.Since(start)

	s.recordRun(ctx, report, err)

	if err != nil {
		if isAbort(err) {
			l.Error("Clone aborted", zap.Error(err))
		} else {
			l.Error("Clone failed", zap.Error(err))
		}
		return report, err
	}

	l.Info(fmt.Sprintf("Finished cloning %s %s to %s!", prof.label, report.Source, report.NewName),
		zap.Int("records", report.RecordsEmitted),
		zap.Int("files", len(report.Files)),
		zap.Int("warnings", len(report.Warnings)),
		zap.Duration("took", report.Duration),
	)
	return report, nil
}

func (s *Service) recordRun(ctx context.Context, report *Report, runErr error) {
	if s.ledger == nil {
		return
	}
	run := &history.CloneRun{
		RunID:          report.RunID,
		Kind:           string(report.Kind),
		Source:         report.Source,
		NewName:        report.NewName,
		Output:         report.Output,
		Status:         history.StatusCompleted,
		RecordsEmitted: report.RecordsEmitted,
	}
	if runErr != nil {
		run.Status = history.StatusAborted
		run.Reason = runErr.Error()
	}
	if report.Plan != nil {
		if data, err := json.Marshal(report.Plan); err == nil {
			run.Plan = datatypes.JSON(data)
		}
	}
	if err := s.ledger.Record(ctx, run); err != nil {
		s.logger.Warn("Failed to record clone run", zap.String("run_id", report.RunID), zap.Error(err))
	}
}

// Runs lists recent clone runs.
func (s *Service) Runs(ctx context.Context, limit int) ([]history.CloneRun, error) {
	if s.ledger == nil {
		return nil, ErrNoLedger
	}
	return s.ledger.List(ctx, limit)
}
