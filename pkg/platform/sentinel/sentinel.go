package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and source adapters return
// these (optionally wrapped) so the pipeline can classify outcomes.
//
// - ErrNotFound: record or upstream document does not exist
// - ErrUnavailable: store or upstream temporarily unavailable
// - ErrInvalidState: value in a store could not be decoded
var (
	ErrNotFound     = errors.New("not found")
	ErrUnavailable  = errors.New("unavailable")
	ErrInvalidState = errors.New("invalid state")
)
