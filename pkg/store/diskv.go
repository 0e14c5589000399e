package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

// Diskv stores each key as a JSON file under a base directory.
type Diskv struct {
	d        *diskv.Diskv
	basePath string
}

// NewDiskv opens (and creates) a diskv store rooted at basePath.
func NewDiskv(basePath string) (*Diskv, error) {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" {
		return nil, errors.New("store: base path required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &Diskv{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

// BasePath is the directory holding the store files.
func (p *Diskv) BasePath() string {
	return p.basePath
}

func (p *Diskv) Read(_ context.Context, key string) ([]byte, error) {
	val, err := p.d.Read(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return val, nil
}

func (p *Diskv) Write(_ context.Context, key string, value []byte) error {
	return p.d.Write(key, value)
}

func (p *Diskv) Erase(_ context.Context, key string) error {
	if !p.d.Has(key) {
		return nil
	}
	return p.d.Erase(key)
}

func (p *Diskv) Has(_ context.Context, key string) bool {
	return p.d.Has(key)
}

// keyFile maps a key to its file name relative to the base path.
func keyFile(key string) string {
	return key + ".json"
}

func keyToPathTransform(key string) *diskv.PathKey {
	return &diskv.PathKey{
		Path:     []string{},
		FileName: keyFile(key),
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return strings.TrimSuffix(pathKey.FileName, ".json")
}

// keyForPath derives the store key from a file path inside basePath.
func (p *Diskv) keyForPath(path string) string {
	rel, err := filepath.Rel(p.basePath, path)
	if err != nil || rel == "." {
		return ""
	}
	if strings.Contains(rel, string(os.PathSeparator)) || !strings.HasSuffix(rel, ".json") {
		return ""
	}
	return strings.TrimSuffix(rel, ".json")
}
