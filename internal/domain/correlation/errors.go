package correlation

import "errors"

var (
	ErrInvalidSelection = errors.New("invalid selection")
	ErrUnknownDataset   = errors.New("unknown dataset")
	ErrCancelled        = errors.New("analysis cancelled")
	ErrBusy             = errors.New("analysis in progress")
	ErrClosed           = errors.New("workflow closed")
)

// FailureFrom classifies err for display. Cancellation is not a failure and
// yields nil, as does a nil error.
func FailureFrom(err error) *Failure {
	switch {
	case err == nil, errors.Is(err, ErrCancelled):
		return nil
	case errors.Is(err, ErrInvalidSelection):
		return &Failure{Kind: FailureInvalidSelection, Message: err.Error()}
	case errors.Is(err, ErrUnknownDataset):
		return &Failure{Kind: FailureUnknownDataset, Message: err.Error()}
	default:
		return &Failure{Kind: FailureAnalysis, Message: err.Error()}
	}
}
