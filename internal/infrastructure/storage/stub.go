// Package storage provides object storage implementations for uploaded photos.
package storage

import (
	"context"
	"errors"
	"sync"

	fleetapp "github.com/gatesec/backend/internal/application/fleet"
)

// Ensure StubObjectStorage implements ObjectStorage
var _ fleetapp.ObjectStorage = (*StubObjectStorage)(nil)

// StubObjectStorage is an in-memory implementation of ObjectStorage.
// Use it for development and tests until a real S3 backend is configured.
type StubObjectStorage struct {
	// BaseURL is the base URL used by ObjectURL.
	// Defaults to "https://storage.example.com" if not set.
	BaseURL string

	mu      sync.RWMutex
	objects map[string][]byte
}

// NewStubObjectStorage creates a new StubObjectStorage
func NewStubObjectStorage() *StubObjectStorage {
	return &StubObjectStorage{
		BaseURL: "https://storage.example.com",
		objects: make(map[string][]byte),
	}
}

// PutObject stores the blob in memory
func (s *StubObjectStorage) PutObject(_ context.Context, key, _ string, data []byte) error {
	if key == "" {
		return errors.New("storage key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return nil
}

// DeleteObject removes the blob from memory. Deleting a missing key succeeds.
func (s *StubObjectStorage) DeleteObject(_ context.Context, key string) error {
	if key == "" {
		return errors.New("storage key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

// ObjectURL returns a URL under BaseURL, empty for an empty key
func (s *StubObjectStorage) ObjectURL(key string) string {
	if key == "" {
		return ""
	}
	return s.BaseURL + "/" + key
}

// Len returns the number of stored objects
func (s *StubObjectStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

// Has reports whether the key is stored
func (s *StubObjectStorage) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[key]
	return ok
}
