package media

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rentease/config"
	domainerrors "rentease/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testFile struct {
	name        string
	contentType string
	size        int
}

// buildFileHeaders round-trips test files through a real multipart body so the
// headers behave exactly like the ones echo hands to the store.
func buildFileHeaders(t *testing.T, files []testFile) []*multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for _, f := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="images"; filename="`+f.name+`"`)
		header.Set("Content-Type", f.contentType)

		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(bytes.Repeat([]byte("x"), f.size))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(&body, writer.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["images"]
}

func newTestStore(t *testing.T) (*localStore, string) {
	t.Helper()

	dir := t.TempDir()
	cfg := &config.Config{Media: &config.MediaConfig{Dir: dir, PublicPrefix: "uploads"}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := NewLocalStore(cfg, logger)
	require.NoError(t, err)

	return store.(*localStore), dir
}

func TestLocalStore_SaveAcceptsValidImages(t *testing.T) {
	store, dir := newTestStore(t)

	paths, err := store.Save(context.Background(), buildFileHeaders(t, []testFile{
		{name: "front.jpg", contentType: "image/jpeg", size: 2 << 20},
		{name: "back.png", contentType: "image/png", size: 64},
	}))
	require.NoError(t, err)
	require.Len(t, paths, 2)

	for _, p := range paths {
		assert.True(t, strings.HasPrefix(p, "uploads/images-"), "path %q", p)

		onDisk := filepath.Join(dir, filepath.Base(p))
		info, statErr := os.Stat(onDisk)
		require.NoError(t, statErr)
		assert.Greater(t, info.Size(), int64(0))
	}
	assert.Equal(t, ".jpg", filepath.Ext(paths[0]))
	assert.Equal(t, ".png", filepath.Ext(paths[1]))
}

func TestLocalStore_SaveRejectsEmptyBatch(t *testing.T) {
	store, _ := newTestStore(t)

	paths, err := store.Save(context.Background(), nil)
	assert.ErrorIs(t, err, domainerrors.ErrNoImages)
	assert.Nil(t, paths)
}

func TestLocalStore_SaveRejectsUnsupportedType(t *testing.T) {
	store, dir := newTestStore(t)

	tests := []testFile{
		{name: "clip.gif", contentType: "image/gif", size: 64},
		{name: "spoofed.jpg", contentType: "application/octet-stream", size: 64},
		{name: "noext", contentType: "image/jpeg", size: 64},
	}
	for _, f := range tests {
		t.Run(f.name, func(t *testing.T) {
			_, err := store.Save(context.Background(), buildFileHeaders(t, []testFile{f}))

			var appErr domainerrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, "UNSUPPORTED_IMAGE_TYPE", appErr.ErrorCode())
		})
	}

	assertDirEmpty(t, dir)
}

func TestLocalStore_SaveRejectsOversizedFile(t *testing.T) {
	store, dir := newTestStore(t)

	_, err := store.Save(context.Background(), buildFileHeaders(t, []testFile{
		{name: "huge.png", contentType: "image/png", size: 6 << 20},
	}))

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "IMAGE_TOO_LARGE", appErr.ErrorCode())

	assertDirEmpty(t, dir)
}

func TestLocalStore_SaveRejectsOversizedBatch(t *testing.T) {
	store, dir := newTestStore(t)

	files := make([]testFile, 6)
	for i := range files {
		files[i] = testFile{name: "a.jpg", contentType: "image/jpeg", size: 8}
	}

	_, err := store.Save(context.Background(), buildFileHeaders(t, files))

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "TOO_MANY_IMAGES", appErr.ErrorCode())

	assertDirEmpty(t, dir)
}

func TestLocalStore_SaveIsAllOrNothing(t *testing.T) {
	store, dir := newTestStore(t)

	// One bad file among good ones must leave nothing on disk.
	_, err := store.Save(context.Background(), buildFileHeaders(t, []testFile{
		{name: "ok1.jpg", contentType: "image/jpeg", size: 64},
		{name: "ok2.png", contentType: "image/png", size: 64},
		{name: "bad.gif", contentType: "image/gif", size: 64},
	}))
	require.Error(t, err)

	assertDirEmpty(t, dir)
}

func TestLocalStore_Remove(t *testing.T) {
	store, dir := newTestStore(t)

	paths, err := store.Save(context.Background(), buildFileHeaders(t, []testFile{
		{name: "front.jpg", contentType: "image/jpeg", size: 64},
	}))
	require.NoError(t, err)

	require.NoError(t, store.Remove(context.Background(), paths))
	assertDirEmpty(t, dir)

	// Removing again is a no-op.
	assert.NoError(t, store.Remove(context.Background(), paths))
}

func assertDirEmpty(t *testing.T, dir string) {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
