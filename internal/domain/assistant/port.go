package assistant

import (
	"context"

	"github.com/bryanwahyu/marineiq/internal/domain/catalog"
	"github.com/bryanwahyu/marineiq/internal/domain/roles"
)

// Request is what the assistant needs to answer one question.
type Request struct {
	Role     roles.Role
	Question string
	Catalog  catalog.Catalog
}

// Reply from the model. RelatedDatasets are catalog ids the answer leans on.
type Reply struct {
	Answer          string   `json:"answer"`
	RelatedDatasets []string `json:"relatedDatasets"`
}

// Client port for the language model provider.
type Client interface {
	Ask(ctx context.Context, req Request) (Reply, error)
}
