package minio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"clipvault/internal/domain/entity"
	"clipvault/internal/domain/model"
	"clipvault/internal/domain/repository/blob"
	"clipvault/pkg/logger"
	"clipvault/pkg/utils"
)

type Config struct {
	AccessKey string
	SecretKey string
	Endpoint  string `yaml:"endpoint"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
	Timeout   int64  `yaml:"timeout_in_ms"`
}

// Store is the object-storage driver. Blobs of each kind live under the
// kind's prefix inside a single bucket.
type Store struct {
	client  *minio.Client
	bucket  string
	timeout time.Duration
}

func New(cfg *Config) (*Store, error) {
	logger.Info("connecting to minio", "endpoint", cfg.Endpoint)

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:           credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:          cfg.UseSSL,
		TrailingHeaders: true,
	})
	if err != nil {
		return nil, err
	}

	s := &Store{
		client:  client,
		bucket:  cfg.Bucket,
		timeout: time.Duration(cfg.Timeout) * time.Millisecond,
	}

	ctx, cancel := s.opContext(context.Background())
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return s, nil
}

func (s *Store) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, s.timeout)
}

func (s *Store) key(kind model.Kind, ref string) string {
	return kind.StoragePrefix() + "/" + ref
}

func (s *Store) Put(ctx context.Context, kind model.Kind, suggestedName string, r io.Reader) (entity.PutResult, error) {
	ref := fmt.Sprintf("%d-%s", time.Now().UnixNano(), utils.SanitizeFilename(suggestedName))

	ctx, cancel := s.opContext(ctx)
	defer cancel()

	info, err := s.client.PutObject(ctx, s.bucket, s.key(kind, ref), r, -1,
		minio.PutObjectOptions{
			ContentType: utils.ContentTypeForFilename(ref),
		})
	if err != nil {
		return entity.PutResult{}, fmt.Errorf("put object: %w", err)
	}

	return entity.PutResult{Ref: ref, Size: info.Size}, nil
}

func (s *Store) Exists(ctx context.Context, kind model.Kind, ref string) (bool, error) {
	_, err := s.Size(ctx, kind, ref)
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

func (s *Store) Size(ctx context.Context, kind model.Kind, ref string) (int64, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	info, err := s.client.StatObject(ctx, s.bucket, s.key(kind, ref), minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return 0, blob.ErrNotFound
		}

		return 0, err
	}

	return info.Size, nil
}

func (s *Store) OpenRange(ctx context.Context, kind model.Kind, ref string, start, end int64) (io.ReadCloser, error) {
	if start < 0 || (end != blob.WholeBlob && end < start) {
		return nil, blob.ErrInvalidRange
	}

	// Stat first so an unknown ref fails here instead of on first read.
	if _, err := s.Size(ctx, kind, ref); err != nil {
		return nil, err
	}

	opts := minio.GetObjectOptions{}
	switch {
	case start == 0 && end == blob.WholeBlob:
		// whole object, no Range header
	case end == blob.WholeBlob:
		if err := opts.SetRange(start, 0); err != nil {
			return nil, blob.ErrInvalidRange
		}
	default:
		if err := opts.SetRange(start, end); err != nil {
			return nil, blob.ErrInvalidRange
		}
	}

	obj, err := s.client.GetObject(ctx, s.bucket, s.key(kind, ref), opts)
	if err != nil {
		return nil, err
	}

	return obj, nil
}

func (s *Store) Delete(ctx context.Context, kind model.Kind, ref string) error {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	// RemoveObject succeeds for absent keys, which is exactly the idempotent
	// contract Delete promises.
	return s.client.RemoveObject(ctx, s.bucket, s.key(kind, ref), minio.RemoveObjectOptions{})
}
