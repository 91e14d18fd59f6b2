// Package toml persists the session cache as a TOML file.
package toml

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/bnema/emetic/internal/domain"
	"github.com/bnema/emetic/internal/ports"
)

const (
	cacheFileMode   = 0o600
	cacheDirMode    = 0o700
	tempFilePattern = ".emetic-cache-*.toml.tmp"
)

// Store reads and writes one cache file. An empty path disables persistence.
type Store struct {
	path   string
	mu     *sync.RWMutex
	clock  ports.Clock
	logger *slog.Logger
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.CacheStore = (*Store)(nil)

func NewStore(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if path == "" {
		return &Store{mu: &sync.RWMutex{}, clock: ports.SystemClock{}, logger: logger}, nil
	}

	normalized, err := normalizePath(path)
	if err != nil {
		return nil, err
	}

	return &Store{path: normalized, mu: lockForPath(normalized), clock: ports.SystemClock{}, logger: logger}, nil
}

func (s *Store) Path() string {
	return s.path
}

// Load never fails on a missing or unreadable cache; the run starts fresh instead.
func (s *Store) Load(ctx context.Context) (domain.CacheState, error) {
	if err := ctx.Err(); err != nil {
		return domain.CacheState{}, err
	}
	if s.path == "" {
		return domain.CacheState{}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.readSchema()
	if err != nil {
		s.logger.Warn("ignoring session cache",
			slog.String("path", s.path),
			slog.String("error", err.Error()),
		)
		return domain.CacheState{}, nil
	}

	return fromSchema(file), nil
}

func (s *Store) Save(ctx context.Context, state domain.CacheState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.path == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file := toSchema(state)
	file.UpdatedAt = s.clock.Now().UTC().Format(time.RFC3339)

	return s.writeSchema(file)
}

func (s *Store) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{Cookies: map[string]string{}}, nil
		}
		return fileSchema{}, fmt.Errorf("read cache file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode cache file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (s *Store) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(s.path), cacheDirMode); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode cache file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(s.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp cache file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		return errors.Join(fmt.Errorf("write temp cache file: %w", err), tempFile.Close())
	}

	if err := tempFile.Chmod(cacheFileMode); err != nil {
		return errors.Join(fmt.Errorf("chmod temp cache file: %w", err), tempFile.Close())
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp cache file: %w", err)
	}

	if err := os.Rename(tempName, s.path); err != nil {
		return fmt.Errorf("replace cache file: %w", err)
	}

	cleanup = false

	return nil
}

func normalizePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve cache path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}
