package api

import "time"

// Chunk is one retrievable slice of a source document.
type Chunk struct {
	RefID      string `json:"refid"`
	Title      string `json:"title"`
	SourcePath string `json:"source_path"`
	Content    string `json:"content"`
}

// RetrievalResult pairs a chunk with its similarity score for a query.
type RetrievalResult struct {
	Score float64 `json:"score"`
	Chunk Chunk   `json:"chunk"`
}

// Answer is the full response to one question.
type Answer struct {
	Question string            `json:"question"`
	Text     string            `json:"answer"`
	HTML     string            `json:"answer_html,omitempty"`
	Contexts []RetrievalResult `json:"contexts"`
	Model    string            `json:"model,omitempty"`
	// Duration is the total retrieval+generation time. It is shown by the
	// terminal presenters and kept out of the JSON body.
	Duration time.Duration `json:"-"`
}

// DocumentInfo summarizes one indexed source document.
type DocumentInfo struct {
	RefID  string `json:"refid"`
	Title  string `json:"title"`
	Chunks int    `json:"chunks"`
}
