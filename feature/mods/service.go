package mods

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"github.com/beInDev/vaultmp/core/storage"
)

// ErrInvalidName is returned for mod names that would escape the prefix.
var ErrInvalidName = errors.New("mods: invalid name")

// Mod is one published mod file.
type Mod struct {
	Name string `json:"name"`
	ETag string `json:"etag"`
	Size int64  `json:"size"`
}

// Service lists and caches mods.
type Service struct {
	client storage.Client
	bucket string
	prefix string
	logger *zap.Logger

	mu   sync.RWMutex
	mods []Mod
}

// NewService creates a Service. The list stays empty until Refresh.
func NewService(client storage.Client, bucket, prefix string, logger *zap.Logger) *Service {
	prefix = strings.Trim(prefix, "/")
	if prefix != "" {
		prefix += "/"
	}
	return &Service{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger,
	}
}

// Mods returns the cached list.
func (s *Service) Mods() []Mod {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.mods)
}

// Refresh lists the bucket and replaces the cached list.
// On failure the previous list is kept.
func (s *Service) Refresh(ctx context.Context) ([]Mod, error) {
	if s.client == nil {
		return nil, fmt.Errorf("storage client not configured")
	}

	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", s.bucket)
	}

	var mods []Mod
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: s.prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list mods: %w", obj.Err)
		}
		name := strings.TrimPrefix(obj.Key, s.prefix)
		if name == "" || strings.HasSuffix(name, "/") {
			continue
		}
		mods = append(mods, Mod{Name: name, ETag: strings.Trim(obj.ETag, `"`), Size: obj.Size})
	}
	slices.SortFunc(mods, func(a, b Mod) int { return strings.Compare(a.Name, b.Name) })

	s.mu.Lock()
	s.mods = mods
	s.mu.Unlock()

	s.logger.Info("Mods refreshed", zap.Int("count", len(mods)))
	return slices.Clone(mods), nil
}

func (s *Service) key(name string) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("storage client not configured")
	}
	clean := path.Clean("/" + name)[1:]
	if name == "" || clean != name || strings.HasSuffix(name, "/") {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return s.prefix + clean, nil
}

// Publish uploads a mod file, creating the bucket when needed, and refreshes the list.
func (s *Service) Publish(ctx context.Context, name string, r io.Reader, size int64) (Mod, error) {
	key, err := s.key(name)
	if err != nil {
		return Mod{}, err
	}

	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return Mod{}, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return Mod{}, fmt.Errorf("failed to create bucket: %w", err)
		}
		s.logger.Info("Created mod bucket", zap.String("bucket", s.bucket))
	}

	info, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{ContentType: "application/octet-stream"})
	if err != nil {
		return Mod{}, fmt.Errorf("failed to upload %s: %w", name, err)
	}
	s.logger.Info("Mod published", zap.String("mod", name), zap.Int64("size", info.Size))

	if _, err := s.Refresh(ctx); err != nil {
		return Mod{}, err
	}
	return Mod{Name: name, ETag: strings.Trim(info.ETag, `"`), Size: info.Size}, nil
}

// Open streams a mod file. The caller closes the reader.
func (s *Service) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	key, err := s.key(name)
	if err != nil {
		return nil, err
	}
	r, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	return r, nil
}

// Remove deletes a mod file and refreshes the list.
func (s *Service) Remove(ctx context.Context, name string) error {
	key, err := s.key(name)
	if err != nil {
		return err
	}
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove %s: %w", name, err)
	}
	s.logger.Info("Mod removed", zap.String("mod", name))
	_, err = s.Refresh(ctx)
	return err
}
