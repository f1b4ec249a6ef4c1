package pipeline

import "fmt"

// Error codes attached to fatal pipeline errors. The HTTP layer inspects
// these to pick a status code.
const (
	CodeStorageFailed = "STORAGE_FAILED"
	CodeSTTFailed     = "STT_FAILED"
)

// CodedError is a fatal pipeline error carrying its classification tag.
// Recoverable step failures never produce a CodedError; they are absorbed
// by fallbacks inside the pipeline.
type CodedError struct {
	Code string
	Err  error
}

func (e *CodedError) Error() string {
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

func (e *CodedError) Unwrap() error {
	return e.Err
}
