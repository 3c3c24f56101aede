package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	carterrors "github.com/abgdnv/cartkeeper/internal/errors"
	"github.com/fsnotify/fsnotify"
)

var errMalformedDocument = errors.New("malformed store document")

// FileStore implements KVStore on top of a single JSON document on disk,
// mapping keys to string values.
type FileStore struct {
	mu     sync.Mutex
	path   string
	closed bool
}

// NewFileStore creates a FileStore backed by the file at path.
// The parent directory is created if needed; the file itself is created on the first Set.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("file store path is empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve file store path %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create file store directory: %w", err)
	}
	return &FileStore{path: abs}, nil
}

// Path returns the absolute path of the backing file.
func (s *FileStore) Path() string {
	return s.path
}

// CorruptPath is where an undecodable backing file is kept once a write replaces it.
func (s *FileStore) CorruptPath() string {
	return s.path + ".corrupt"
}

// Get retrieves the value stored under key.
func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, carterrors.ErrStoreClosed
	}
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	v, ok := doc[key]
	if !ok {
		return nil, carterrors.ErrKeyNotFound
	}
	return []byte(v), nil
}

// Set stores value under key and rewrites the document atomically.
// A document that cannot be decoded is moved aside (see CorruptPath) and replaced.
func (s *FileStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return carterrors.ErrStoreClosed
	}
	doc, err := s.readForWrite()
	if err != nil {
		return err
	}
	doc[key] = string(value)
	return s.write(doc)
}

// Delete removes key and rewrites the document.
func (s *FileStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return carterrors.ErrStoreClosed
	}
	doc, err := s.readForWrite()
	if err != nil {
		return err
	}
	if _, ok := doc[key]; !ok {
		return nil
	}
	delete(doc, key)
	return s.write(doc)
}

// Close marks the store as closed.
func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Watch reports writes to the backing file. The parent directory is watched
// because Set replaces the file by renaming a temp file over it.
func (s *FileStore) Watch(ctx context.Context, _ string, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(s.path), err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != s.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) {
				onChange()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("file watcher failed: %w", err)
		}
	}
}

// read loads the document; a missing file is an empty document.
func (s *FileStore) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}
	doc := make(map[string]string)
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w: %w", s.path, errMalformedDocument, err)
	}
	return doc, nil
}

// readForWrite is read for callers about to rewrite the document. An undecodable
// file is renamed to CorruptPath and an empty document is returned in its place.
func (s *FileStore) readForWrite() (map[string]string, error) {
	doc, err := s.read()
	if !errors.Is(err, errMalformedDocument) {
		return doc, err
	}
	if err := os.Rename(s.path, s.CorruptPath()); err != nil {
		return nil, fmt.Errorf("failed to move aside %s: %w", s.path, err)
	}
	return make(map[string]string), nil
}

func (s *FileStore) write(doc map[string]string) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store document: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".cart-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}
