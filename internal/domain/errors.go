package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across the pipeline.
var (
	// ErrCredentialMissing means no API key is configured for a provider.
	ErrCredentialMissing = errors.New("no API key configured")

	// ErrEmptyInput means the caller submitted blank text.
	ErrEmptyInput = errors.New("input text is empty")

	// ErrNoContext signals that no corpus passage fit the budget. It is a
	// degraded-mode signal, not a failure: translation proceeds unassisted.
	ErrNoContext = errors.New("no context available")
)

// DimensionMismatchError reports vectors of incompatible length. Comparing
// vectors of different dimensions is always a hard error, never a silent
// truncation.
type DimensionMismatchError struct {
	Want int
	Got  int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("embedding dimension mismatch: want %d, got %d", e.Want, e.Got)
}

// ProviderError reports a non-2xx or malformed response from a remote
// provider.
type ProviderError struct {
	Provider string
	Detail   string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s provider: %s: %v", e.Provider, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s provider: %s", e.Provider, e.Detail)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Stage names the pipeline phase an error originated in, so the
// presentation layer can show a stage-specific message.
type Stage string

const (
	StageEmbedding   Stage = "embedding"
	StageRanking     Stage = "ranking"
	StageBudgeting   Stage = "budgeting"
	StageTranslation Stage = "translation"
)

// StageError tags an underlying error with the pipeline stage it occurred in.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// StageOf extracts the failing stage from an error chain, or "" if the error
// is not stage-tagged.
func StageOf(err error) Stage {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}
