package format

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Syntax selects the document encoding.
type Syntax int

const (
	JSON Syntax = iota
	YAML
)

func (s Syntax) String() string {
	if s == YAML {
		return "yaml"
	}
	return "json"
}

// SyntaxFor guesses the syntax from a file name. A trailing ".gz" is ignored;
// anything that is not .yaml or .yml is read as JSON.
func SyntaxFor(path string) Syntax {
	name := strings.TrimSuffix(strings.ToLower(path), ".gz")
	switch filepath.Ext(name) {
	case ".yaml", ".yml":
		return YAML
	}
	return JSON
}

// Parse reads a whole share document from r.
func Parse(r io.Reader, syntax Syntax) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	var doc *Document
	switch syntax {
	case YAML:
		doc, err = parseYAML(data)
	default:
		doc, err = parseJSON(data)
	}
	if err != nil {
		return nil, err
	}

	if err := doc.Keys.Validate(); err != nil {
		return nil, fmt.Errorf("keys validation failed: %w", err)
	}
	if err := doc.finish(); err != nil {
		return nil, err
	}
	return doc, nil
}

func parseJSON(data []byte) (*Document, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse document json: %w", err)
	}

	keysRaw, ok := raw[KeysField]
	if !ok {
		return nil, ErrMissingKeys
	}

	doc := &Document{}
	if err := json.Unmarshal(keysRaw, &doc.Keys); err != nil {
		return nil, fmt.Errorf("failed to parse %q: %w", KeysField, err)
	}

	labels := make([]string, 0, len(raw))
	for label := range raw {
		if label != KeysField {
			labels = append(labels, label)
		}
	}
	sort.Strings(labels)

	for _, label := range labels {
		var root Root
		if err := json.Unmarshal(raw[label], &root); err != nil {
			return nil, fmt.Errorf("failed to parse share %q: %w", label, err)
		}
		if err := doc.addEntry(label, root); err != nil {
			return nil, err
		}
	}

	return doc, nil
}

func parseYAML(data []byte) (*Document, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to parse document yaml: %w", err)
	}
	if node.Kind != yaml.DocumentNode || len(node.Content) == 0 || node.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("failed to parse document yaml: top level must be a mapping")
	}

	// Walk the mapping by hand so integer keys keep their exact spelling.
	mapping := node.Content[0]
	doc := &Document{}
	foundKeys := false

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key, value := mapping.Content[i], mapping.Content[i+1]

		if key.Value == KeysField {
			if err := value.Decode(&doc.Keys); err != nil {
				return nil, fmt.Errorf("failed to parse %q: %w", KeysField, err)
			}
			foundKeys = true
			continue
		}

		var root Root
		if err := value.Decode(&root); err != nil {
			return nil, fmt.Errorf("failed to parse share %q: %w", key.Value, err)
		}
		if err := doc.addEntry(key.Value, root); err != nil {
			return nil, err
		}
	}

	if !foundKeys {
		return nil, ErrMissingKeys
	}
	return doc, nil
}
