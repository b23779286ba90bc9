package csv

import "context"

// Parser defines the interface for parsing sheet contents.
type Parser interface {
	Parse(ctx context.Context, name string, data []byte) ([]Row, error)
}
