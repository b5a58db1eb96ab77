package cache

// SentinelError is an error.
type SentinelError string

const (
	// ErrPanicked indicates failure caused by a panic in loader or hook.
	ErrPanicked = SentinelError("recovered panic")

	// ErrNothingToInvalidate indicates no caches were added to Invalidator.
	ErrNothingToInvalidate = SentinelError("nothing to invalidate")

	// ErrAlreadyInvalidated indicates recent invalidation.
	ErrAlreadyInvalidated = SentinelError("already invalidated")
)

// Error implements error.
func (e SentinelError) Error() string {
	return string(e)
}
