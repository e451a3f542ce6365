package schema

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonSchema = `{
  "orders": {
    "columns": [
      {"name": "order_id", "type": "integer", "description": "Unique order identifier"},
      {"name": "user_id", "type": "integer", "description": "Reference to users table"},
      {"name": "order_date", "type": "date", "description": "Date when order was placed"},
      {"name": "total_amount", "type": "decimal", "description": "Total order amount"}
    ]
  },
  "users": {
    "columns": [
      {"name": "user_id", "type": "integer", "description": "Unique user identifier"},
      {"name": "username", "type": "string", "description": "User's display name"},
      {"name": "email", "type": "string", "description": "User's email address"}
    ]
  }
}`

const yamlSchema = `orders:
  columns:
    - name: order_id
      type: integer
      description: Unique order identifier
    - name: user_id
      type: integer
      description: Reference to users table
    - name: order_date
      type: date
      description: Date when order was placed
    - name: total_amount
      type: decimal
      description: Total order amount
users:
  columns:
    - name: user_id
      type: integer
      description: Unique user identifier
    - name: username
      type: string
      description: User's display name
    - name: email
      type: string
      description: User's email address
`

func TestParseJSON(t *testing.T) {
	s, err := ParseJSON(strings.NewReader(jsonSchema))
	require.NoError(t, err)

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"orders", "users"}, s.TableOrder)

	orders := s.Tables["orders"]
	require.Len(t, orders.Columns, 4)
	assert.Equal(t, "order_id", orders.Columns[0].Name)
	assert.Equal(t, "integer", orders.Columns[0].Type)
	assert.Equal(t, "Total order amount", orders.Columns[3].Description)
}

func TestParseYAML(t *testing.T) {
	s, err := ParseYAML(strings.NewReader(yamlSchema))
	require.NoError(t, err)

	assert.Equal(t, []string{"orders", "users"}, s.TableOrder)
	assert.Equal(t, "email", s.Tables["users"].Columns[2].Name)
}

func TestParse_JSONAndYAMLEquivalent(t *testing.T) {
	fromJSON, err := ParseJSON(strings.NewReader(jsonSchema))
	require.NoError(t, err)
	fromYAML, err := ParseYAML(strings.NewReader(yamlSchema))
	require.NoError(t, err)

	assert.Equal(t, fromJSON.Tables, fromYAML.Tables)
	assert.Equal(t, fromJSON.TableOrder, fromYAML.TableOrder)
}

func TestParse_FormatSniffing(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"schema.json", jsonSchema, false},
		{"schema.yaml", yamlSchema, false},
		{"schema.yml", yamlSchema, false},
		{"SCHEMA.JSON", jsonSchema, false},
		{"schema.txt", jsonSchema, true},
		{"schema", jsonSchema, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.name, strings.NewReader(tt.content))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"malformed json", "s.json", `{"orders": [`},
		{"json array root", "s.json", `[1,2,3]`},
		{"empty json object", "s.json", `{}`},
		{"yaml scalar root", "s.yaml", `just a string`},
		{"empty yaml", "s.yaml", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.file, strings.NewReader(tt.content))
			assert.Error(t, err)
		})
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.json")
	require.NoError(t, os.WriteFile(path, []byte(jsonSchema), 0644))

	s, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())

	_, err = ParseFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestSupportedExtension(t *testing.T) {
	assert.True(t, SupportedExtension("a.json"))
	assert.True(t, SupportedExtension("a.yaml"))
	assert.True(t, SupportedExtension("a.YML"))
	assert.False(t, SupportedExtension("a.xml"))
	assert.False(t, SupportedExtension("a"))
}
