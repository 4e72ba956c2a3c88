package models

import (
	"errors"
	"fmt"
)

// Failure taxonomy shared by the extraction and summarization cycle.
var (
	ErrExtractionFailed    = errors.New("could not find readable text on this page")
	ErrTooShortToSummarize = errors.New("text is too short to summarize")
	ErrBackendUnreachable  = errors.New("summarization service unreachable")
	ErrMalformedResponse   = errors.New("summarization service returned no summary")
	ErrClipboardFailed     = errors.New("could not copy to clipboard")
)

// BackendError is a non-success response from the summarization service.
type BackendError struct {
	Status int
	Body   string
}

func (e *BackendError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("summarization service error %d", e.Status)
	}
	return fmt.Sprintf("summarization service error %d: %s", e.Status, e.Body)
}
