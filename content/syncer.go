package content

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// defaultConcurrency caps parallel upload requests so a large site does not
// overwhelm the remote API or trip rate limits.
const defaultConcurrency = 10

// Syncer reconciles a local directory with a remote bucket.
type Syncer struct {
	bucket      *Bucket
	concurrency int
	logger      *slog.Logger
}

// SyncerOption configures a Syncer.
type SyncerOption func(*Syncer)

// WithConcurrency sets the maximum number of parallel upload requests.
func WithConcurrency(n int) SyncerOption {
	return func(s *Syncer) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// NewSyncer creates a Syncer over the given bucket.
func NewSyncer(bucket *Bucket, logger *slog.Logger, opts ...SyncerOption) *Syncer {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Syncer{
		bucket:      bucket,
		concurrency: defaultConcurrency,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sync brings the bucket in line with the directory and reports whether any
// remote mutation happened. Uploads run with bounded concurrency; deletes
// are batched. A failed operation aborts the sync with the underlying error;
// partial progress is not rolled back — re-running the sync is the recovery
// path, since an unchanged sync performs zero mutations.
func (s *Syncer) Sync(ctx context.Context, dir string) (bool, error) {
	local, err := ListLocal(dir)
	if err != nil {
		return false, err
	}

	remote, err := s.bucket.List(ctx)
	if err != nil {
		return false, err
	}

	plan := Diff(local, remote)
	if !plan.HasChanges() {
		s.logger.Info("content already in sync", "bucket", s.bucket.Name(), "objects", len(remote))
		return false, nil
	}

	if err := s.applyUploads(ctx, plan.Uploads); err != nil {
		return false, err
	}
	if err := s.bucket.DeleteKeys(ctx, plan.Deletes); err != nil {
		return false, err
	}

	s.logger.Info("content synced",
		"bucket", s.bucket.Name(),
		"uploaded", len(plan.Uploads),
		"deleted", len(plan.Deletes),
	)
	return true, nil
}

// applyUploads uploads the planned files with bounded concurrency. Each
// object key is distinct, so concurrent requests never touch the same key.
func (s *Syncer) applyUploads(ctx context.Context, uploads []LocalFile) error {
	if len(uploads) == 0 {
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, f := range uploads {
		f := f
		g.Go(func() error {
			return s.bucket.Upload(ctx, f)
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("upload content: %w", err)
	}
	return nil
}
