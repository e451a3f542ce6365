// engine.go - Query correction and relevance-scored table selection
package relevance

import (
	"fmt"
	"sort"
	"strings"

	"github.com/schema-scout/backend/internal/models"
)

// DefaultThreshold is the relevance cutoff applied when a request does
// not carry one.
const DefaultThreshold = 0.1

// Scoring weights. Cosine similarity between a short query and a long
// table context under-scores direct table-name hits (the name is one
// term among dozens), so the final score blends in name-word overlap.
const (
	contextWeight   = 0.7
	nameWeight      = 0.3
	nameMatchCutoff = 0.75
)

// semanticMappings expands query tokens with domain synonyms before
// scoring, so "purchase history" can still reach an "orders" table.
var semanticMappings = map[string][]string{
	"purchase": {"order", "transaction", "buy"},
	"customer": {"user", "client", "buyer", "account"},
	"product":  {"item", "goods", "merchandise", "inventory"},
	"payment":  {"transaction", "invoice", "billing"},
	"shipping": {"delivery", "shipment", "transport"},
	"category": {"type", "group", "classification"},
	"price":    {"cost", "amount", "value"},
	"date":     {"time", "when", "timestamp"},
	"status":   {"state", "condition", "phase"},
}

// Engine scores schema tables against free-text queries and suggests
// query corrections from the schema's own vocabulary.
type Engine struct {
	threshold float64
}

// NewEngine creates an engine with the given relevance threshold.
// Thresholds outside [0,1] are clamped.
func NewEngine(threshold float64) *Engine {
	if threshold < 0 {
		threshold = 0
	}
	if threshold > 1 {
		threshold = 1
	}
	return &Engine{threshold: threshold}
}

// Threshold returns the configured relevance cutoff.
func (e *Engine) Threshold() float64 {
	return e.threshold
}

// SuggestCorrections generates ranked corrections for the query against
// the schema's vocabulary. A query with no correctable words returns a
// single "original" entry at full confidence.
func (e *Engine) SuggestCorrections(query string, s *models.Schema) []models.Suggestion {
	vocab := buildVocabulary(s)
	words := strings.Fields(query)

	perWord := make(map[string][]models.Suggestion)
	for _, w := range words {
		if !isAlpha(w) {
			continue
		}
		if suggestions := wordSuggestions(w, vocab); len(suggestions) > 0 {
			perWord[w] = suggestions
		}
	}

	if len(perWord) == 0 {
		return []models.Suggestion{{Text: query, Confidence: 1.0, Source: "original"}}
	}

	return queryVariations(words, perWord)
}

// queryVariations assembles whole-query candidates from per-word
// suggestions: the best substitution plus up to two alternatives.
func queryVariations(words []string, perWord map[string][]models.Suggestion) []models.Suggestion {
	variations := make([]models.Suggestion, 0, 3)

	build := func(rank int, source string) (models.Suggestion, bool) {
		out := make([]string, len(words))
		copy(out, words)
		confidence := 1.0
		substituted := false
		for i, w := range words {
			suggestions, ok := perWord[w]
			if !ok {
				continue
			}
			if rank < len(suggestions) {
				out[i] = suggestions[rank].Text
				confidence *= suggestions[rank].Confidence
				substituted = true
			}
		}
		return models.Suggestion{Text: strings.Join(out, " "), Confidence: confidence, Source: source}, substituted
	}

	if best, ok := build(0, "best_match"); ok {
		variations = append(variations, best)
	}
	for i := 1; i < 3; i++ {
		if alt, ok := build(i, fmt.Sprintf("alternative_%d", i)); ok {
			variations = append(variations, alt)
		}
	}

	sort.SliceStable(variations, func(i, j int) bool {
		return variations[i].Confidence > variations[j].Confidence
	})
	return variations
}

// SelectRelevantTables scores every table against the query and returns
// those at or above the threshold, each annotated with its relevance
// score. The score combines TF-IDF cosine similarity over the table's
// full context with direct query-to-table-name word overlap.
func (e *Engine) SelectRelevantTables(query string, s *models.Schema) models.ProcessingResult {
	names := s.TableNames()

	contexts := make([]string, 0, len(names))
	for _, name := range names {
		contexts = append(contexts, tableContext(name, s.Tables[name]))
	}

	expanded := expandQuery(query)
	queryTokens := tokenize(expanded)

	documents := make([]string, 0, len(contexts)+1)
	documents = append(documents, expanded)
	documents = append(documents, contexts...)

	v := fitTransform(documents)
	queryVec := v.docs[0]

	result := make(models.ProcessingResult)
	for i, name := range names {
		score := contextWeight*cosine(queryVec, v.docs[i+1]) +
			nameWeight*nameAffinity(queryTokens, name)
		if score >= e.threshold {
			result[name] = models.TableMatch{
				Columns:        s.Tables[name].Columns,
				RelevanceScore: score,
			}
		}
	}

	return result
}

// Process runs the full pipeline: correct the query, then select
// relevant tables with the best correction. Returns the corrected
// query alongside the result.
func (e *Engine) Process(query string, s *models.Schema) (string, models.ProcessingResult) {
	corrections := e.SuggestCorrections(query, s)
	best := corrections[0].Text
	return best, e.SelectRelevantTables(best, s)
}

// nameAffinity returns the fraction of the table name's words matched
// by a query token. Near-identical forms count, so "orders" in a query
// still matches a table named order_items.
func nameAffinity(queryTokens []string, tableName string) float64 {
	nameWords := extractWords(tableName)
	if len(nameWords) == 0 {
		return 0
	}

	matched := 0
	for _, nw := range nameWords {
		for _, qt := range queryTokens {
			if levenshteinRatio(qt, nw) >= nameMatchCutoff {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(nameWords))
}

// tableContext concatenates everything the vectorizer should see for a
// table: its name, column names, and column descriptions.
func tableContext(name string, table models.Table) string {
	parts := make([]string, 0, 1+2*len(table.Columns))
	parts = append(parts, name)
	for _, col := range table.Columns {
		parts = append(parts, col.Name)
		if col.Description != "" {
			parts = append(parts, col.Description)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// expandQuery appends synonyms for query tokens present in the
// semantic mapping table.
func expandQuery(query string) string {
	tokens := extractWords(query)
	expanded := make([]string, 0, len(tokens)*2)
	expanded = append(expanded, tokens...)
	for _, t := range tokens {
		if synonyms, ok := semanticMappings[t]; ok {
			expanded = append(expanded, synonyms...)
		}
	}
	return strings.Join(expanded, " ")
}
