package config

import (
	"time"

	"couponview/loader"
	"couponview/textutil"
)

// SourceKind names the backend sheets are read from.
type SourceKind string

const (
	// SourceDir reads sheets from a local directory.
	SourceDir SourceKind = "dir"
	// SourceHTTP fetches sheets from a base URL.
	SourceHTTP SourceKind = "http"
	// SourceWorkbook reads worksheets out of an .xlsx workbook.
	SourceWorkbook SourceKind = "workbook"
	// SourceGridFS downloads sheets from a MongoDB GridFS bucket.
	SourceGridFS SourceKind = "gridfs"
)

// Config holds the application configuration.
type Config struct {
	Source        SourceKind
	SheetsDir     string
	SheetsBaseURL string
	WorkbookPath  string
	MongoURI      string
	MongoDatabase string
	GridFSBucket  string
	ListenAddr    string
	Matchups      loader.MatchupsPosition
	LabelStyle    textutil.LabelStyle
	HTTPTimeout   time.Duration
}
