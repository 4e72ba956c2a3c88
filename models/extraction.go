package models

// ExtractionResult is the article text handed from extraction to summarization.
type ExtractionResult struct {
	Title string `json:"title" yaml:"title"`
	Text  string `json:"text" yaml:"text"`
	// Source names the strategy that produced Text: a site id, "scanner" or "readability".
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
}

// SummaryRequest is the wire body of POST /summarize.
type SummaryRequest struct {
	Text     string   `json:"text"`
	Ratio    *float64 `json:"ratio,omitempty"`
	Level    string   `json:"level,omitempty"`
	DoSample bool     `json:"do_sample,omitempty"`
}

// SummaryResponse is the wire body of a successful POST /summarize.
// Summary is a pointer so a missing field can be told apart from an empty one.
type SummaryResponse struct {
	Summary *string `json:"summary"`
}

// ErrorResponse is the body the service returns on failure.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
