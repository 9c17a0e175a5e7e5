package publish

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"asset-cloner/core/storage"

	"github.com/dustin/go-humanize"
	"github.com/minio/minio-go/v7"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of parallel uploads.
const DefaultConcurrency = 4

// ErrNotDirectory is returned when the published path is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// Result summarizes one publish.
type Result struct {
	Bucket   string    `json:"bucket"`
	Prefix   string    `json:"prefix"`
	Uploaded []string  `json:"uploaded"`
	Skipped  []string  `json:"skipped"`
	Removed  []string  `json:"removed"`
	Bytes    int64     `json:"bytes"`
	Manifest *Manifest `json:"manifest"`
}

// Publisher uploads directories to one bucket.
type Publisher struct {
	client      storage.Client
	fs          afero.Fs
	bucket      string
	region      string
	logger      *zap.Logger
	concurrency int
}

// NewPublisher creates a publisher reading files from afs.
func NewPublisher(client storage.Client, afs afero.Fs, cfg storage.Config, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{
		client:      client,
		fs:          afs,
		bucket:      cfg.Bucket,
		region:      cfg.Region,
		logger:      logger,
		concurrency: DefaultConcurrency,
	}
}

// Publish uploads dir under prefix. An empty prefix uses the directory name.
func (p *Publisher) Publish(ctx context.Context, dir, prefix string) (*Result, error) {
	info, err := p.fs.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", dir, ErrNotDirectory)
	}
	if prefix == "" {
		prefix = filepath.Base(filepath.Clean(dir))
	}
	prefix = strings.Trim(storage.ObjectKey("", prefix), "/")

	if err := storage.EnsureBucket(ctx, p.client, p.bucket, p.region); err != nil {
		return nil, err
	}

	m, err := BuildManifest(p.fs, dir, prefix)
	if err != nil {
		return nil, err
	}
	res := &Result{Bucket: p.bucket, Prefix: prefix, Manifest: m, Uploaded: []string{}, Skipped: []string{}, Removed: []string{}}
	previous := p.previous(ctx, prefix).Digests()

	var pending []FileEntry
	for _, f := range m.Files {
		if previous[f.Path] == f.BLAKE3 {
			res.Skipped = append(res.Skipped, f.Path)
			continue
		}
		pending = append(pending, f)
	}

	if err := p.upload(ctx, dir, prefix, pending); err != nil {
		return nil, err
	}
	for _, f := range pending {
		res.Uploaded = append(res.Uploaded, f.Path)
		res.Bytes += f.Size
	}

	data, err := m.Encode()
	if err != nil {
		return nil, err
	}
	key := storage.ObjectKey(prefix, ManifestName)
	if _, err := p.client.PutObject(ctx, p.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"}); err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", key, err)
	}

	res.Removed, err = p.prune(ctx, prefix, m)
	if err != nil {
		return nil, err
	}

	p.logger.Info("Published clone output",
		zap.String("bucket", p.bucket),
		zap.String("prefix", prefix),
		zap.Int("uploaded", len(res.Uploaded)),
		zap.Int("skipped", len(res.Skipped)),
		zap.Int("removed", len(res.Removed)),
		zap.String("size", humanize.Bytes(uint64(res.Bytes))),
	)
	return res, nil
}

// previous returns the manifest of the last publish to prefix, or nil.
func (p *Publisher) previous(ctx context.Context, prefix string) *Manifest {
	key := storage.ObjectKey(prefix, ManifestName)
	obj, err := p.client.GetObject(ctx, p.bucket, key, minio.GetObjectOptions{})
	if err == nil {
		defer obj.Close()
		var m *Manifest
		if m, err = DecodeManifest(obj); err == nil {
			return m
		}
	}
	if !isNoSuchKey(err) {
		p.logger.Warn("Ignoring previous manifest", zap.String("object", key), zap.Error(err))
	}
	return nil
}

func isNoSuchKey(err error) bool {
	var resp minio.ErrorResponse
	return errors.As(err, &resp) && resp.Code == "NoSuchKey"
}

func (p *Publisher) upload(ctx context.Context, dir, prefix string, files []FileEntry) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for _, f := range files {
		g.Go(func() error {
			r, err := p.fs.Open(filepath.Join(dir, filepath.FromSlash(f.Path)))
			if err != nil {
				return err
			}
			defer r.Close()

			key := storage.ObjectKey(prefix, f.Path)
			_, err = p.client.PutObject(ctx, p.bucket, key, r, f.Size, minio.PutObjectOptions{
				ContentType:  "application/octet-stream",
				UserMetadata: map[string]string{"blake3": f.BLAKE3},
			})
			if err != nil {
				return fmt.Errorf("failed to upload %s: %w", key, err)
			}
			p.logger.Debug("Uploaded object", zap.String("object", key), zap.String("size", humanize.Bytes(uint64(f.Size))))
			return nil
		})
	}
	return g.Wait()
}

// prune removes objects under prefix that the manifest no longer lists.
func (p *Publisher) prune(ctx context.Context, prefix string, m *Manifest) ([]string, error) {
	keep := map[string]bool{storage.ObjectKey(prefix, ManifestName): true}
	for _, f := range m.Files {
		keep[storage.ObjectKey(prefix, f.Path)] = true
	}

	var stale []string
	for obj := range p.client.ListObjects(ctx, p.bucket, minio.ListObjectsOptions{Prefix: prefix + "/", Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", prefix, obj.Err)
		}
		if !keep[obj.Key] {
			stale = append(stale, obj.Key)
		}
	}
	if len(stale) == 0 {
		return []string{}, nil
	}
	sort.Strings(stale)

	objectsCh := make(chan minio.ObjectInfo)
	go func() {
		defer close(objectsCh)
		for _, key := range stale {
			select {
			case objectsCh <- minio.ObjectInfo{Key: key}:
			case <-ctx.Done():
				return
			}
		}
	}()

	var errs []error
	for rerr := range p.client.RemoveObjects(ctx, p.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		errs = append(errs, fmt.Errorf("failed to remove %s: %w", rerr.ObjectName, rerr.Err))
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return stale, nil
}
