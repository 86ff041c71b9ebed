package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"clipvault/internal/domain/entity"
	"clipvault/internal/domain/model"
	"clipvault/internal/domain/repository/blob"
	"clipvault/pkg/logger"
	"clipvault/pkg/utils"
)

type Config struct {
	Root string `yaml:"root"`
}

// Store keeps blobs as plain files under a root directory, one subdirectory
// per asset kind. Names are collision-free by construction
// (<unixNano>-<original name>), so writers never contend for a path.
type Store struct {
	root string
}

// New provisions the storage tree once and returns the store. Directories
// are never created per-request after this.
func New(cfg Config) (*Store, error) {
	if cfg.Root == "" {
		return nil, errors.New("storage root is required")
	}

	for _, kind := range []model.Kind{model.KindVideo, model.KindScreenshot} {
		dir := filepath.Join(cfg.Root, kind.StoragePrefix())
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("provision storage dir %s: %w", dir, err)
		}
	}

	logger.Info("filesystem blob store ready", "root", cfg.Root)

	return &Store{root: cfg.Root}, nil
}

func (s *Store) path(kind model.Kind, ref string) string {
	return filepath.Join(s.root, kind.StoragePrefix(), filepath.Base(ref))
}

func (s *Store) Put(ctx context.Context, kind model.Kind, suggestedName string, r io.Reader) (entity.PutResult, error) {
	ref := fmt.Sprintf("%d-%s", time.Now().UnixNano(), utils.SanitizeFilename(suggestedName))

	f, err := os.OpenFile(s.path(kind, ref), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return entity.PutResult{}, fmt.Errorf("create blob file: %w", err)
	}

	written, err := io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		// Half-written files are useless; drop them so no orphan remains.
		_ = os.Remove(s.path(kind, ref))

		return entity.PutResult{}, fmt.Errorf("write blob: %w", err)
	}

	return entity.PutResult{Ref: ref, Size: written}, nil
}

func (s *Store) Exists(ctx context.Context, kind model.Kind, ref string) (bool, error) {
	_, err := os.Stat(s.path(kind, ref))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

func (s *Store) Size(ctx context.Context, kind model.Kind, ref string) (int64, error) {
	fi, err := os.Stat(s.path(kind, ref))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, blob.ErrNotFound
		}

		return 0, err
	}

	return fi.Size(), nil
}

func (s *Store) OpenRange(ctx context.Context, kind model.Kind, ref string, start, end int64) (io.ReadCloser, error) {
	if start < 0 || (end != blob.WholeBlob && end < start) {
		return nil, blob.ErrInvalidRange
	}

	f, err := os.Open(s.path(kind, ref))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, blob.ErrNotFound
		}

		return nil, err
	}

	if start > 0 {
		if _, err := f.Seek(start, io.SeekStart); err != nil {
			f.Close()

			return nil, err
		}
	}

	if end == blob.WholeBlob {
		return f, nil
	}

	return &rangeReader{r: io.LimitReader(f, end-start+1), f: f}, nil
}

func (s *Store) Delete(ctx context.Context, kind model.Kind, ref string) error {
	err := os.Remove(s.path(kind, ref))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	return nil
}

type rangeReader struct {
	r io.Reader
	f *os.File
}

func (r *rangeReader) Read(p []byte) (int, error) { return r.r.Read(p) }

func (r *rangeReader) Close() error { return r.f.Close() }
