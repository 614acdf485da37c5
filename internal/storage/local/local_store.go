// Package local keeps uploaded source documents on the server's own
// disk. It is the default storage for single-machine deployments; the
// bucket part of the key space is ignored.
package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"peakbridge/internal/domain"
	"peakbridge/internal/port"
)

type localStore struct {
	dir string
}

// NewLocalStore creates an ObjectStorage rooted at dir, creating the
// directory if needed.
func NewLocalStore(dir string) (port.ObjectStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating storage dir: %w", err)
	}
	return &localStore{dir: dir}, nil
}

// resolve maps a key to a path under the root, refusing traversal.
func (s *localStore) resolve(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.dir, clean), nil
}

func (s *localStore) Upload(ctx context.Context, input port.UploadInput) (*port.UploadOutput, error) {
	path, err := s.resolve(input.Key)
	if err != nil {
		return nil, fmt.Errorf("local upload: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("local upload: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("local upload: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, input.Body); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("local upload: %w", err)
	}
	return &port.UploadOutput{Location: path}, nil
}

func (s *localStore) Download(ctx context.Context, bucket, key string) ([]byte, error) {
	path, err := s.resolve(key)
	if err != nil {
		return nil, fmt.Errorf("local download: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("local download: %w", err)
	}
	return data, nil
}

func (s *localStore) Delete(ctx context.Context, bucket, key string) error {
	path, err := s.resolve(key)
	if err != nil {
		return fmt.Errorf("local delete: %w", err)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("local delete: %w", err)
	}
	return nil
}
