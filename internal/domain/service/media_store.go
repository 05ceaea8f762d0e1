package service

import (
	"context"
	"mime/multipart"
)

// MediaStore defines the interface for durably storing uploaded listing
// images. Implementations validate type and size before writing anything and
// treat a batch as all-or-nothing: one bad file rejects the whole request and
// leaves no partial state behind.
type MediaStore interface {
	// Save validates and stores every file in the batch, returning storage
	// paths relative to the public static root, in input order.
	Save(ctx context.Context, files []*multipart.FileHeader) ([]string, error)

	// Remove deletes previously stored files by their relative paths.
	// Missing files are ignored.
	Remove(ctx context.Context, paths []string) error
}
