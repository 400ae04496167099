package interfaces

import "errors"

var (
	// ErrNotFound is wrapped by repositories when a lookup by id or key
	// matches no document.
	ErrNotFound = errors.New("document not found")

	// ErrDuplicate is wrapped when a unique index rejects a write.
	ErrDuplicate = errors.New("duplicate key")
)
