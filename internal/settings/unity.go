package settings

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Keys inside the PlayerSettings document of ProjectSettings.asset.
const (
	unityRootKey     = "PlayerSettings"
	unityVersionKey  = "bundleVersion"
	unityProductKey  = "productName"
	unityDocumentTag = "--- "
)

// UnityStore reads PlayerSettings from an engine ProjectSettings.asset.
// Only the bundleVersion line is rewritten; every other byte is kept.
type UnityStore struct {
	path string
}

// NewUnityStore creates a store for the asset at path.
func NewUnityStore(path string) *UnityStore {
	return &UnityStore{path: path}
}

// Path returns the asset path.
func (s *UnityStore) Path() string {
	return s.path
}

// Version returns PlayerSettings.bundleVersion.
func (s *UnityStore) Version() (string, error) {
	_, _, value, err := s.find(unityVersionKey)
	if err != nil {
		return "", err
	}
	return value.Value, nil
}

// ProductName returns PlayerSettings.productName.
func (s *UnityStore) ProductName() (string, error) {
	_, _, value, err := s.find(unityProductKey)
	if err != nil {
		return "", err
	}
	return value.Value, nil
}

// SetVersion rewrites the bundleVersion line in place.
func (s *UnityStore) SetVersion(v string) error {
	data, key, value, err := s.find(unityVersionKey)
	if err != nil {
		return err
	}
	if value.Value != "" && value.Line != key.Line {
		return fmt.Errorf("%s: %s value spans lines, refusing to rewrite", s.path, unityVersionKey)
	}

	lines := bytes.Split(data, []byte("\n"))
	idx := key.Line - 1
	if idx < 0 || idx >= len(lines) {
		return fmt.Errorf("%s: %s line %d out of range", s.path, unityVersionKey, key.Line)
	}

	line := string(lines[idx])
	cr := ""
	if strings.HasSuffix(line, "\r") {
		cr = "\r"
		line = strings.TrimSuffix(line, "\r")
	}

	keyStart := key.Column - 1
	if keyStart < 0 || keyStart > len(line) {
		return fmt.Errorf("%s: malformed %s line", s.path, unityVersionKey)
	}
	colon := strings.Index(line[keyStart:], ":")
	if colon < 0 {
		return fmt.Errorf("%s: malformed %s line", s.path, unityVersionKey)
	}
	prefix := line[:keyStart+colon+1]

	lines[idx] = []byte(prefix + " " + quoteLike(value, v) + cr)

	return writeFileAtomic(s.path, bytes.Join(lines, []byte("\n")))
}

// find returns the raw file plus the key and value nodes for key.
func (s *UnityStore) find(key string) ([]byte, *yaml.Node, *yaml.Node, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("read player settings: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(neutralizeDirectives(data), &doc); err != nil {
		return nil, nil, nil, fmt.Errorf("parse %s: %w", s.path, err)
	}

	root := mappingValue(documentRoot(&doc), unityRootKey)
	if root == nil || root.Kind != yaml.MappingNode {
		return nil, nil, nil, fmt.Errorf("%s: %w: %s", s.path, ErrKeyNotFound, unityRootKey)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		k, v := root.Content[i], root.Content[i+1]
		if k.Value == key {
			if v.Kind != yaml.ScalarNode {
				return nil, nil, nil, fmt.Errorf("%s: %s is not a scalar", s.path, key)
			}
			return data, k, v, nil
		}
	}

	return nil, nil, nil, fmt.Errorf("%s: %w: %s.%s", s.path, ErrKeyNotFound, unityRootKey, key)
}

// neutralizeDirectives turns the engine's %YAML/%TAG directives into
// comments and strips object tags from document markers. Line count is
// unchanged so node positions still index the original bytes.
func neutralizeDirectives(data []byte) []byte {
	lines := bytes.Split(data, []byte("\n"))
	out := make([][]byte, len(lines))
	for i, line := range lines {
		switch {
		case bytes.HasPrefix(line, []byte("%")):
			out[i] = append([]byte("#"), line[1:]...)
		case bytes.HasPrefix(line, []byte(unityDocumentTag)):
			out[i] = []byte("---")
		default:
			out[i] = line
		}
	}
	return bytes.Join(out, []byte("\n"))
}

func documentRoot(doc *yaml.Node) *yaml.Node {
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		return doc.Content[0]
	}
	return doc
}

func mappingValue(m *yaml.Node, key string) *yaml.Node {
	if m == nil || m.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

// quoteLike formats v with the same quoting style as the existing node.
func quoteLike(node *yaml.Node, v string) string {
	switch {
	case node.Style&yaml.DoubleQuotedStyle != 0:
		return `"` + v + `"`
	case node.Style&yaml.SingleQuotedStyle != 0:
		return "'" + v + "'"
	default:
		return v
	}
}
