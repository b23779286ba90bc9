package sheets

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"

	"couponview/appcontext"
)

// WorkbookSource serves sheets out of a single .xlsx workbook, one worksheet per
// resource: "stores/publix.csv" is the "publix" sheet and
// "stores/publix-matchups.csv" the "publix-matchups" sheet.
type WorkbookSource struct {
	path string
}

// NewWorkbookSource creates a new WorkbookSource for the workbook at path.
func NewWorkbookSource(path string) *WorkbookSource {
	return &WorkbookSource{path: path}
}

// SheetName maps a resource name to its worksheet name.
func SheetName(name string) string {
	return strings.TrimSuffix(path.Base(name), path.Ext(name))
}

// Fetch opens the workbook and re-encodes the named worksheet as CSV.
func (s *WorkbookSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	sheet := SheetName(name)
	appcontext.LoggerFromContext(ctx).DebugContext(ctx, "Reading sheet from workbook", "path", s.path, "sheet", sheet)

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", s.path, err)
	}
	defer f.Close()

	if !slices.Contains(f.GetSheetList(), sheet) {
		return nil, NotFoundError(name)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet %s: %w", sheet, err)
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to encode worksheet %s: %w", sheet, err)
	}

	return buf.Bytes(), nil
}
