package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"couponview/appcontext"
	"couponview/sheets"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ---- Abstractions for Testability ----

// FileBucket defines the subset of a GridFS bucket the sheet source needs.
type FileBucket interface {
	DownloadToStreamByName(filename string, stream io.Writer, opts ...*options.NameOptions) (int64, error)
}

// GridFSSource serves sheets stored as GridFS files named by their resource
// name, e.g. "stores/publix.csv".
type GridFSSource struct {
	bucket FileBucket
}

// NewGridFSSource creates a new GridFSSource over bucket.
func NewGridFSSource(bucket FileBucket) *GridFSSource {
	return &GridFSSource{bucket: bucket}
}

// OpenBucket opens the named GridFS bucket in database.
func OpenBucket(client *mongo.Client, database, bucketName string) (*gridfs.Bucket, error) {
	bucket, err := gridfs.NewBucket(
		client.Database(database),
		options.GridFSBucket().SetName(bucketName),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open GridFS bucket %s: %w", bucketName, err)
	}

	return bucket, nil
}

// Fetch downloads the newest revision of the named file.
func (s *GridFSSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	appcontext.LoggerFromContext(ctx).DebugContext(ctx, "Downloading sheet from GridFS", "name", name)

	var buf bytes.Buffer
	_, err := s.bucket.DownloadToStreamByName(name, &buf)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, sheets.NotFoundError(name)
		}
		return nil, fmt.Errorf("failed to download %s from GridFS: %w", name, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("download of %s abandoned: %w", name, err)
	}

	return buf.Bytes(), nil
}
