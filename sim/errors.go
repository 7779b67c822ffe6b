package sim

import "errors"

var (
	// ErrInvalidRequest is returned when a resource request can never be
	// satisfied (e.g. asking for more memory than the pool holds) or breaks the
	// exclusive-use discipline of the processor pool.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInvalidRelease is returned when a holder gives back more than it holds.
	// It is a programming error and aborts the run.
	ErrInvalidRelease = errors.New("invalid release")

	// ErrConfiguration is returned by Config.Validate for out-of-range parameters.
	ErrConfiguration = errors.New("configuration error")
)
