// parser.go - Schema document parsing (JSON and YAML)
package schema

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/schema-scout/backend/internal/models"
	"gopkg.in/yaml.v3"
)

// SupportedExtension reports whether the file name carries a schema
// document extension accepted by the upload path.
func SupportedExtension(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// ParseFile parses a schema document from disk, choosing the decoder by
// file extension.
func ParseFile(path string) (*models.Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ParseJSON(f)
	case ".yaml", ".yml":
		return ParseYAML(f)
	}
	return nil, fmt.Errorf("unsupported schema format: %s", filepath.Ext(path))
}

// Parse decodes a schema document from a reader, sniffing the format
// from the file name.
func Parse(name string, r io.Reader) (*models.Schema, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return ParseJSON(r)
	case ".yaml", ".yml":
		return ParseYAML(r)
	}
	return nil, fmt.Errorf("unsupported schema format: %s", filepath.Ext(name))
}

// ParseJSON decodes a JSON schema document. Table order follows the
// order of keys in the document.
func ParseJSON(r io.Reader) (*models.Schema, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var tables map[string]models.Table
	if err := json.Unmarshal(data, &tables); err != nil {
		return nil, fmt.Errorf("decoding schema JSON: %w", err)
	}

	order, err := jsonKeyOrder(data)
	if err != nil {
		return nil, err
	}

	return newSchema(tables, order)
}

// ParseYAML decodes a YAML schema document. Table order follows the
// order of mapping keys in the document.
func ParseYAML(r io.Reader) (*models.Schema, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("decoding schema YAML: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, fmt.Errorf("schema document is empty")
	}

	mapping := root.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("schema document must be a mapping of tables")
	}

	tables := make(map[string]models.Table, len(mapping.Content)/2)
	order := make([]string, 0, len(mapping.Content)/2)
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		name := mapping.Content[i].Value
		var table models.Table
		if err := mapping.Content[i+1].Decode(&table); err != nil {
			return nil, fmt.Errorf("decoding table %q: %w", name, err)
		}
		tables[name] = table
		order = append(order, name)
	}

	return newSchema(tables, order)
}

func newSchema(tables map[string]models.Table, order []string) (*models.Schema, error) {
	if len(tables) == 0 {
		return nil, fmt.Errorf("schema document contains no tables")
	}
	return &models.Schema{Tables: tables, TableOrder: order}, nil
}

// jsonKeyOrder extracts top-level object keys in document order.
func jsonKeyOrder(data []byte) ([]string, error) {
	dec := json.NewDecoder(strings.NewReader(string(data)))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decoding schema JSON: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("schema document must be a JSON object")
	}

	var order []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decoding schema JSON: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token in schema document: %v", tok)
		}
		order = append(order, key)

		// Skip the table value.
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, fmt.Errorf("decoding table %q: %w", key, err)
		}
	}

	return order, nil
}
