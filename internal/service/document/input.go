package document

import (
	"github.com/heartmarshall/ediflow-backend/internal/domain"
)

// ListInput are the parameters of the List operation.
type ListInput struct {
	Kind   *domain.DocumentKind
	State  *domain.DocumentState
	Search *string
	Limit  int
	Offset int
}

// Validate checks enum parameters against known values.
func (in ListInput) Validate() error {
	if in.Kind != nil && !in.Kind.IsValid() {
		return domain.NewValidationError("kind", "unknown document kind")
	}
	if in.State != nil && !in.State.IsValid() {
		return domain.NewValidationError("state", "unknown document state")
	}
	return nil
}

// ListResult is the List operation response.
type ListResult struct {
	Documents []*domain.Document
	Total     int
}
