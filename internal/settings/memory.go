package settings

import "sync"

// MemoryStore is a Store without a backing file.
type MemoryStore struct {
	mu      sync.Mutex
	product string
	version string

	// SetErr, when non-nil, is returned by SetVersion without storing.
	SetErr error
}

// NewMemoryStore creates a store holding product and version.
func NewMemoryStore(product, version string) *MemoryStore {
	return &MemoryStore{product: product, version: version}
}

// Path returns "".
func (s *MemoryStore) Path() string {
	return ""
}

// Version returns the stored version string.
func (s *MemoryStore) Version() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version, nil
}

// SetVersion stores v unless SetErr is set.
func (s *MemoryStore) SetVersion(v string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SetErr != nil {
		return s.SetErr
	}
	s.version = v
	return nil
}

// ProductName returns the stored product name.
func (s *MemoryStore) ProductName() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.product, nil
}
