// Package storage provides blob storage for uploaded media. The interface
// mirrors a path-addressed object store; the disk implementation backs the
// public file URLs served by the HTTP layer.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ObjectInfo represents metadata about a stored object.
type ObjectInfo struct {
	Name        string
	Size        int64
	ContentType string
	ModTime     time.Time
}

// ObjectStore defines the interface for file storage operations.
type ObjectStore interface {
	Put(name string, data []byte, contentType string) (*ObjectInfo, error)
	Get(name string) ([]byte, *ObjectInfo, error)
	Delete(name string) error
}

// DiskStore implements ObjectStore on the local filesystem under a root
// directory. Object names may contain forward slashes; they become
// subdirectories.
type DiskStore struct {
	root string
}

func NewDiskStore(root string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}
	return &DiskStore{root: root}, nil
}

func (s *DiskStore) path(name string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(name))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid object name %q", name)
	}
	return filepath.Join(s.root, clean), nil
}

// Put stores data under name, overwriting any existing object.
func (s *DiskStore) Put(name string, data []byte, contentType string) (*ObjectInfo, error) {
	p, err := s.path(name)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create object directory: %w", err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to store object: %w", err)
	}

	return &ObjectInfo{
		Name:        name,
		Size:        int64(len(data)),
		ContentType: contentType,
		ModTime:     time.Now().UTC(),
	}, nil
}

func (s *DiskStore) Get(name string) ([]byte, *ObjectInfo, error) {
	p, err := s.path(name)
	if err != nil {
		return nil, nil, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get object: %w", err)
	}
	fi, err := os.Stat(p)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to stat object: %w", err)
	}

	return data, &ObjectInfo{
		Name:    name,
		Size:    fi.Size(),
		ModTime: fi.ModTime(),
	}, nil
}

func (s *DiskStore) Delete(name string) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// Root returns the storage root directory, for static file serving.
func (s *DiskStore) Root() string {
	return s.root
}
