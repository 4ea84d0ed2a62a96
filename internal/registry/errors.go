package registry

import "errors"

var (
	// ErrPageNotFound is returned by Lookup when no page matches.
	ErrPageNotFound = errors.New("page not found")

	// ErrEmptyRegistry is returned when the data file declares no pages.
	ErrEmptyRegistry = errors.New("registry contains no pages")

	// ErrMissingPath is returned when a page has no path.
	ErrMissingPath = errors.New("page path is required")

	// ErrMissingTitle is returned when a page has no title or heading.
	ErrMissingTitle = errors.New("page title and heading are required")

	// ErrDuplicatePath is returned when two pages share a path.
	ErrDuplicatePath = errors.New("duplicate page path")

	// ErrDuplicateSlug is returned when two pages resolve to the same slug.
	ErrDuplicateSlug = errors.New("duplicate page slug")

	// ErrUnknownCategory is returned for a category outside Categories().
	ErrUnknownCategory = errors.New("unknown page category")

	// ErrInvalidPriority is returned when priority is outside 0-1.
	ErrInvalidPriority = errors.New("priority must be between 0 and 1")

	// ErrInvalidDepositRange is returned when minDeposit exceeds maxDeposit
	// or either bound is negative.
	ErrInvalidDepositRange = errors.New("invalid deposit range")
)
