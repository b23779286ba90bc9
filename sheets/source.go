// Package sheets retrieves raw store sheets from the configured backend.
package sheets

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned when the requested sheet does not exist in the source.
var ErrNotFound = errors.New("sheet not found")

var errInvalidName = errors.New("invalid sheet name")

// NotFoundError wraps ErrNotFound with the sheet name.
func NotFoundError(name string) error {
	return fmt.Errorf("%w, %s", ErrNotFound, name)
}

// InvalidNameError is returned for names that would escape the source root.
func InvalidNameError(name string) error {
	return fmt.Errorf("%w, %s", errInvalidName, name)
}

// Source defines the interface for fetching a sheet's raw contents by resource name,
// e.g. "stores/publix.csv".
type Source interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}
