// vocabulary.go - Schema vocabulary and context word extraction
package relevance

import (
	"strings"

	"github.com/schema-scout/backend/internal/models"
)

// vocabulary holds the word sets derived from one schema document:
// words appearing in table/column names, and context words from
// descriptions and name-derived hints.
type vocabulary struct {
	schemaWords  map[string]struct{}
	contextWords map[string]struct{}
}

// buildVocabulary extracts the vocabulary of a schema.
func buildVocabulary(s *models.Schema) *vocabulary {
	v := &vocabulary{
		schemaWords:  make(map[string]struct{}),
		contextWords: make(map[string]struct{}),
	}

	for name, table := range s.Tables {
		v.addSchemaWords(name)

		for _, col := range table.Columns {
			colName := strings.ToLower(col.Name)
			v.addSchemaWords(colName)

			if col.Description != "" {
				for _, w := range extractWords(col.Description) {
					v.contextWords[w] = struct{}{}
				}
			}

			// Name-derived context hints.
			switch {
			case strings.Contains(colName, "id"):
				v.addContextWords("unique", "identifier", "reference")
			case strings.Contains(colName, "date"):
				v.addContextWords("date", "time", "timestamp")
			case strings.Contains(colName, "amount"):
				v.addContextWords("total", "sum", "price", "cost")
			}
		}
	}

	return v
}

func (v *vocabulary) addSchemaWords(s string) {
	for _, w := range extractWords(s) {
		v.schemaWords[w] = struct{}{}
	}
}

func (v *vocabulary) addContextWords(words ...string) {
	for _, w := range words {
		v.contextWords[w] = struct{}{}
	}
}

// contains reports whether the word appears in the schema vocabulary.
func (v *vocabulary) contains(word string) bool {
	_, ok := v.schemaWords[word]
	return ok
}
