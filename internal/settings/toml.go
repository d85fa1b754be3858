package settings

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"
)

const (
	versionKey = "version"
	productKey = "product_name"
)

// TOMLStore keeps the version in a TOML file:
//
//	product_name = "My Game"
//	version = "1.2.3"
//
// Other keys are carried through on write.
type TOMLStore struct {
	path string
}

// NewTOMLStore creates a store for the TOML file at path.
func NewTOMLStore(path string) *TOMLStore {
	return &TOMLStore{path: path}
}

// Path returns the TOML file path.
func (s *TOMLStore) Path() string {
	return s.path
}

// Version returns the top-level version key.
func (s *TOMLStore) Version() (string, error) {
	return s.get(versionKey)
}

// ProductName returns the top-level product_name key.
func (s *TOMLStore) ProductName() (string, error) {
	return s.get(productKey)
}

// SetVersion rewrites the file with the new version.
func (s *TOMLStore) SetVersion(v string) error {
	doc, err := s.load()
	if err != nil {
		return err
	}
	doc[versionKey] = v

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
		return fmt.Errorf("encode %s: %w", s.path, err)
	}
	return writeFileAtomic(s.path, buf.Bytes())
}

func (s *TOMLStore) load() (map[string]any, error) {
	doc := map[string]any{}
	if _, err := toml.DecodeFile(s.path, &doc); err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	return doc, nil
}

func (s *TOMLStore) get(key string) (string, error) {
	doc, err := s.load()
	if err != nil {
		return "", err
	}
	raw, ok := doc[key]
	if !ok {
		return "", fmt.Errorf("%s: %w: %s", s.path, ErrKeyNotFound, key)
	}
	str, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%s: %s must be a string, got %T", s.path, key, raw)
	}
	return str, nil
}
