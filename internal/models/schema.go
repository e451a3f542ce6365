package models

// Column describes a single column within a schema table.
type Column struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Table holds the ordered column descriptors of one schema table.
type Table struct {
	Columns []Column `json:"columns" yaml:"columns"`
}

// Schema is a parsed schema document: table name -> table definition.
// TableOrder preserves the order tables appeared in the source document.
type Schema struct {
	Tables     map[string]Table
	TableOrder []string
}

// TableNames returns table names in document order.
func (s *Schema) TableNames() []string {
	return s.TableOrder
}

// Len returns the number of tables in the schema.
func (s *Schema) Len() int {
	return len(s.Tables)
}
