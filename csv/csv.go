// Package csv decodes offer sheets into dynamically typed rows.
package csv

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"couponview/appcontext"
)

var errParseSheet = errors.New("error while parsing CSV sheet")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseSheetError wraps a decoding failure with the sheet name.
func ParseSheetError(name string, err error) error {
	return fmt.Errorf("%s, %w: %w", name, errParseSheet, err)
}

// IsParseError reports whether err came from decoding a sheet.
func IsParseError(err error) bool {
	return errors.Is(err, errParseSheet)
}

// DynamicParser reads a header row and infers a type for every cell.
type DynamicParser struct{}

// NewParser creates a new DynamicParser.
func NewParser() *DynamicParser {
	return &DynamicParser{}
}

// Parse decodes data into rows. An empty sheet yields no rows and no error.
func (p *DynamicParser) Parse(ctx context.Context, name string, data []byte) ([]Row, error) {
	logger := appcontext.LoggerFromContext(ctx)
	logger.DebugContext(ctx, "Parsing sheet", "name", name, "bytes", len(data))

	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, ParseSheetError(name, err)
	}

	// First occurrence of a duplicated column wins.
	colIndex := make(map[string]int, len(header))
	for i, col := range header {
		key := strings.ToLower(strings.TrimSpace(col))
		if _, seen := colIndex[key]; !seen {
			colIndex[key] = i
		}
	}

	var rows []Row
	for {
		record, readErr := reader.Read()
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}
			return nil, ParseSheetError(name, readErr)
		}

		row := make(Row, len(colIndex))
		for col, idx := range colIndex {
			if idx < len(record) {
				row[col] = Infer(record[idx])
			}
		}
		rows = append(rows, row)
	}

	logger.DebugContext(ctx, "Parsed sheet", "name", name, "rows", len(rows))
	return rows, nil
}
