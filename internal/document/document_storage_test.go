package document_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go-leave/internal/document"
	documenterrors "go-leave/internal/document/errors"

	"github.com/stretchr/testify/assert"
)

var pdfContent = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")

func upload(name string, data []byte) document.Upload {
	return document.Upload{
		Filename: name,
		Size:     int64(len(data)),
		Content:  bytes.NewReader(data),
	}
}

func TestLocalStorage_Store(t *testing.T) {
	t.Run("success - pdf stored under subdirectory", func(t *testing.T) {
		root := t.TempDir()
		storage := document.NewLocalStorage(root, 1<<20)

		rel, err := storage.Store(context.Background(), upload("note.pdf", pdfContent), "emp-1")
		assert.NoError(t, err)
		assert.True(t, strings.HasPrefix(rel, "emp-1/"))
		assert.True(t, strings.HasSuffix(rel, ".pdf"))

		stored, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
		assert.NoError(t, err)
		assert.Equal(t, pdfContent, stored)
	})

	t.Run("negative - unsupported type", func(t *testing.T) {
		storage := document.NewLocalStorage(t.TempDir(), 1<<20)

		_, err := storage.Store(context.Background(), upload("note.txt", []byte("just some words")), "emp-1")
		assert.ErrorIs(t, err, documenterrors.ErrUnsupportedDocumentType)
	})

	t.Run("negative - too large by declared size", func(t *testing.T) {
		storage := document.NewLocalStorage(t.TempDir(), 16)

		_, err := storage.Store(context.Background(), upload("note.pdf", pdfContent), "emp-1")
		assert.ErrorIs(t, err, documenterrors.ErrDocumentTooLarge)
	})

	t.Run("negative - too large by content", func(t *testing.T) {
		storage := document.NewLocalStorage(t.TempDir(), 16)
		u := upload("note.pdf", pdfContent)
		u.Size = 0

		_, err := storage.Store(context.Background(), u, "emp-1")
		assert.ErrorIs(t, err, documenterrors.ErrDocumentTooLarge)
	})

	t.Run("negative - empty", func(t *testing.T) {
		storage := document.NewLocalStorage(t.TempDir(), 1<<20)

		_, err := storage.Store(context.Background(), upload("note.pdf", nil), "emp-1")
		assert.ErrorIs(t, err, documenterrors.ErrEmptyDocument)
	})

	t.Run("negative - subdirectory escapes root", func(t *testing.T) {
		storage := document.NewLocalStorage(t.TempDir(), 1<<20)

		_, err := storage.Store(context.Background(), upload("note.pdf", pdfContent), "../outside")
		assert.ErrorIs(t, err, documenterrors.ErrInvalidDocumentPath)
	})

	t.Run("negative - cancelled context", func(t *testing.T) {
		storage := document.NewLocalStorage(t.TempDir(), 1<<20)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := storage.Store(ctx, upload("note.pdf", pdfContent), "emp-1")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestLocalStorage_Remove(t *testing.T) {
	root := t.TempDir()
	storage := document.NewLocalStorage(root, 1<<20)

	rel, err := storage.Store(context.Background(), upload("note.pdf", pdfContent), "emp-2")
	assert.NoError(t, err)

	assert.NoError(t, storage.Remove(context.Background(), rel))
	_, statErr := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
	assert.True(t, os.IsNotExist(statErr))

	assert.NoError(t, storage.Remove(context.Background(), rel))
	assert.ErrorIs(t, storage.Remove(context.Background(), "../etc/passwd"), documenterrors.ErrInvalidDocumentPath)
}
