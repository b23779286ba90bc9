package sheets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"couponview/appcontext"
)

// DirSource reads sheets from a directory on disk.
type DirSource struct {
	root string
}

// NewDirSource creates a new DirSource rooted at root.
func NewDirSource(root string) *DirSource {
	return &DirSource{root: root}
}

// Fetch reads root/name.
func (s *DirSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	cleanName := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(cleanName) || cleanName == ".." || strings.HasPrefix(cleanName, ".."+string(filepath.Separator)) {
		return nil, InvalidNameError(name)
	}

	filePath := filepath.Join(s.root, cleanName)
	appcontext.LoggerFromContext(ctx).DebugContext(ctx, "Reading sheet from disk", "path", filePath)

	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, NotFoundError(name)
		}
		return nil, fmt.Errorf("failed to read sheet %s: %w", filePath, err)
	}

	return data, nil
}
