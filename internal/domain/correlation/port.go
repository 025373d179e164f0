package correlation

import (
	"context"

	"github.com/bryanwahyu/marineiq/internal/domain/catalog"
)

// Analyzer port. Implementations must return ErrCancelled (wrapped or not)
// when ctx is done before the analysis finishes.
type Analyzer interface {
	Analyze(ctx context.Context, primary, correlating catalog.Dataset) (Result, error)
}
