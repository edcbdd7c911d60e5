package usecase

const (
	// DefaultPageSize is used when a request does not specify one.
	DefaultPageSize = 10

	// MaxPageSize caps requested page sizes.
	MaxPageSize = 100
)
