package ports

import "errors"

// ErrNotFound is returned by stores and readers that have nothing to give.
var ErrNotFound = errors.New("not found")
