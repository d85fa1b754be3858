package settings

import (
	"bytes"
	"fmt"

	"gopkg.in/ini.v1"
)

// DefaultINISection holds the keys when no section is configured.
const DefaultINISection = "player"

// INIStore keeps the version in one section of an INI file.
// Comments and unrelated sections survive a write.
type INIStore struct {
	path    string
	section string
}

// NewINIStore creates a store for section of the INI file at path.
func NewINIStore(path, section string) *INIStore {
	if section == "" {
		section = DefaultINISection
	}
	return &INIStore{path: path, section: section}
}

// Path returns the INI file path.
func (s *INIStore) Path() string {
	return s.path
}

// Version returns the version key of the configured section.
func (s *INIStore) Version() (string, error) {
	return s.get(versionKey)
}

// ProductName returns the product_name key of the configured section.
func (s *INIStore) ProductName() (string, error) {
	return s.get(productKey)
}

// SetVersion updates the version key and saves the file.
func (s *INIStore) SetVersion(v string) error {
	cfg, err := ini.Load(s.path)
	if err != nil {
		return fmt.Errorf("read %s: %w", s.path, err)
	}

	sec, err := cfg.GetSection(s.section)
	if err != nil {
		return fmt.Errorf("%s: %w: [%s]", s.path, ErrKeyNotFound, s.section)
	}
	sec.Key(versionKey).SetValue(v)

	var buf bytes.Buffer
	if _, err := cfg.WriteTo(&buf); err != nil {
		return fmt.Errorf("encode %s: %w", s.path, err)
	}
	return writeFileAtomic(s.path, buf.Bytes())
}

func (s *INIStore) get(key string) (string, error) {
	cfg, err := ini.Load(s.path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", s.path, err)
	}

	sec, err := cfg.GetSection(s.section)
	if err != nil || !sec.HasKey(key) {
		return "", fmt.Errorf("%s: %w: [%s] %s", s.path, ErrKeyNotFound, s.section, key)
	}
	return sec.Key(key).String(), nil
}
