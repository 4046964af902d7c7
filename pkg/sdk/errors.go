package tastegraph

import "github.com/kailas-cloud/tastegraph/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrUpstream         = domain.ErrUpstream
	ErrInvalidRequest   = domain.ErrInvalidRequest
	ErrNarratorProvider = domain.ErrNarratorProvider
)

// HTTPError is a non-2xx taste graph response. Use errors.As() to inspect it.
type HTTPError = domain.HTTPError
