package sentinel

import "errors"

// Sentinel errors for storage facts. Stores return these (usually wrapped) and
// services translate them into coded domain errors:
//   - ErrNotFound: the row does not exist
//   - ErrConflict: a uniqueness or foreign-key constraint rejected the write
//   - ErrInvalidState: a store was asked to do something its inputs forbid
//   - ErrUnavailable: the backing service could not be reached
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
