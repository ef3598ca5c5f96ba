package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Loaders and infrastructure layers return
// these (optionally wrapped) so services can translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: a table or record does not exist in the backing store
// - ErrInvalidState: a row violates a schema invariant (e.g. first_year after final_year)
// - ErrUnavailable: backing store temporarily unavailable
//
// For caller input errors (bad page or year values), use pkg/domain-errors directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
