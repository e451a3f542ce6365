package models

// TableMatch is one matched table in a processing result: the table's
// columns plus the relevance score the engine assigned to it.
type TableMatch struct {
	Columns        []Column `json:"columns" yaml:"columns" msgpack:"columns"`
	RelevanceScore float64  `json:"relevance_score" yaml:"relevance_score" msgpack:"relevance_score"`
}

// ProcessingResult maps table name -> match data. The form component
// treats this as opaque; only the server inspects it.
type ProcessingResult map[string]TableMatch

// ProcessResponse is the wire response of POST /api/process-schema.
type ProcessResponse struct {
	Success bool             `json:"success"`
	Result  ProcessingResult `json:"result,omitempty"`
	Error   string           `json:"error,omitempty"`
}

// Suggestion is one ranked correction candidate for a query word or for
// a whole query.
type Suggestion struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"` // "exact", "schema", "context", "spelling", "original", "best_match", "alternative_N"
}
