// Package memory keeps blobs in a map, for tests and local runs
// without object storage.
package memory

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/rechesh-io/rechesh/internal/blob"
)

type Store struct {
	mu   sync.RWMutex
	objs map[string][]byte
}

func New() *Store {
	return &Store{objs: make(map[string][]byte)}
}

func (s *Store) Put(_ context.Context, key, _ string, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.objs[key] = data

	return nil
}

func (s *Store) Get(_ context.Context, key string) (io.ReadCloser, error) {
	s.mu.RLock()
	data, ok := s.objs[key]
	s.mu.RUnlock()

	if !ok {
		return nil, blob.ErrNotFound
	}

	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.objs, key)

	return nil
}

// PresignGet fabricates a stable pseudo URL. The filename hint is
// dropped, nothing ever dereferences these outside tests.
func (s *Store) PresignGet(_ context.Context, key, _ string) (string, error) {
	s.mu.RLock()
	_, ok := s.objs[key]
	s.mu.RUnlock()

	if !ok {
		return "", blob.ErrNotFound
	}

	return "memory://" + key, nil
}
