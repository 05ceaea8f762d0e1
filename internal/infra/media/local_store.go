// Package media implements durable storage for uploaded listing images on the
// local filesystem.
package media

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"rentease/config"
	domainerrors "rentease/internal/domain/errors"
	"rentease/internal/domain/service"

	"github.com/pkg/errors"
)

const (
	// maxFileSize caps a single uploaded image at 5 MiB.
	maxFileSize = 5 << 20

	// maxFilesPerBatch caps how many images one listing may carry. A batch
	// exceeding the cap is rejected whole rather than truncated.
	maxFilesPerBatch = 5

	// filenamePrefix keeps stored names recognizable as listing images.
	filenamePrefix = "images"
)

var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
}

var allowedMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

// localStore is a MediaStore writing to a directory served statically.
type localStore struct {
	dir          string
	publicPrefix string
	logger       *slog.Logger
}

// NewLocalStore is the constructor for localStore. It creates the storage
// directory if it does not exist yet.
func NewLocalStore(cfg *config.Config, logger *slog.Logger) (service.MediaStore, error) {
	dir := cfg.Media.Dir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create media directory")
	}

	return &localStore{
		dir:          dir,
		publicPrefix: strings.Trim(cfg.Media.PublicPrefix, "/"),
		logger:       logger,
	}, nil
}

// Save validates the whole batch before writing anything, then stores each
// file under a collision-resistant generated name. Any failure removes files
// already written, so a batch never partially succeeds.
func (s *localStore) Save(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	if len(files) == 0 {
		return nil, domainerrors.ErrNoImages
	}
	if len(files) > maxFilesPerBatch {
		return nil, domainerrors.ErrTooManyImages.WithDetails(
			fmt.Sprintf("got %d files, at most %d are allowed", len(files), maxFilesPerBatch))
	}

	for _, fh := range files {
		if err := validateFile(fh); err != nil {
			return nil, err
		}
	}

	stored := make([]string, 0, len(files))
	written := make([]string, 0, len(files))
	for _, fh := range files {
		name := uniqueName(fh.Filename)
		dst := filepath.Join(s.dir, name)

		if err := s.writeFile(fh, dst); err != nil {
			s.removeWritten(written)

			return nil, errors.Wrapf(err, "failed to store %s", fh.Filename)
		}

		written = append(written, dst)
		stored = append(stored, path.Join(s.publicPrefix, name))
	}

	return stored, nil
}

// Remove deletes stored files by their public relative paths. Missing files
// are ignored; the listing row is already gone when this runs, so failures
// are reported but must not resurrect the request.
func (s *localStore) Remove(ctx context.Context, paths []string) error {
	var firstErr error
	for _, p := range paths {
		// Only the generated file name is trusted; the rest of the path
		// is re-anchored under the storage directory.
		name := filepath.Base(filepath.FromSlash(p))
		if name == "." || name == string(filepath.Separator) {
			continue
		}

		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("Failed to remove stored image", slog.String("path", p), slog.Any("error", err))
			if firstErr == nil {
				firstErr = errors.Wrapf(err, "failed to remove %s", p)
			}
		}
	}

	return firstErr
}

func (s *localStore) writeFile(fh *multipart.FileHeader, dst string) error {
	src, err := fh.Open()
	if err != nil {
		return errors.Wrap(err, "failed to open uploaded file")
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return errors.Wrap(err, "failed to create destination file")
	}
	defer out.Close()

	// The header size was validated already; LimitReader guards against a
	// lying transport layer.
	if _, err := io.Copy(out, io.LimitReader(src, maxFileSize+1)); err != nil {
		return errors.Wrap(err, "failed to write destination file")
	}

	return nil
}

func (s *localStore) removeWritten(written []string) {
	for _, p := range written {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("Failed to clean up partial upload", slog.String("path", p), slog.Any("error", err))
		}
	}
}

func validateFile(fh *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExtensions[ext] {
		return domainerrors.ErrUnsupportedImageType.WithDetails(fh.Filename)
	}

	// Extension and declared MIME must both match; either alone is spoofable.
	mimeType := strings.ToLower(strings.TrimSpace(strings.Split(fh.Header.Get("Content-Type"), ";")[0]))
	if !allowedMIMETypes[mimeType] {
		return domainerrors.ErrUnsupportedImageType.WithDetails(fh.Filename)
	}

	if fh.Size > maxFileSize {
		return domainerrors.ErrImageTooLarge.WithDetails(
			fmt.Sprintf("%s is %d bytes, limit is %d", fh.Filename, fh.Size, maxFileSize))
	}

	return nil
}

// uniqueName builds a collision-resistant stored name. The original file name
// contributes only its extension; concurrent uploads therefore never collide
// and need no locking.
func uniqueName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))

	return fmt.Sprintf("%s-%d-%d%s", filenamePrefix, time.Now().UnixMilli(), rand.Int64N(1_000_000_000), ext)
}
