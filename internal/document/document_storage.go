package document

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	documenterrors "go-leave/internal/document/errors"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var allowedMIMETypes = []string{
	"application/pdf",
	"image/jpeg",
	"image/png",
}

// Upload is a supporting document as received from the client.
type Upload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

//go:generate mockgen -source=document_storage.go -destination=mock/document_storage_mock.go -package=mock
type Storage interface {
	// Store saves the upload under subdirectory and returns its path
	// relative to the storage root.
	Store(ctx context.Context, upload Upload, subdirectory string) (string, error)
	Remove(ctx context.Context, relativePath string) error
}

type localStorage struct {
	root     string
	maxBytes int64
	logger   *zap.Logger
}

func NewLocalStorage(root string, maxBytes int64, logger ...*zap.Logger) Storage {
	l := zap.L().Named("document.storage")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("document.storage")
	}
	return &localStorage{root: root, maxBytes: maxBytes, logger: l}
}

func (s *localStorage) Store(ctx context.Context, upload Upload, subdirectory string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.maxBytes > 0 && upload.Size > s.maxBytes {
		return "", documenterrors.ErrDocumentTooLarge
	}
	sub, err := cleanRelative(subdirectory)
	if err != nil {
		return "", err
	}

	reader := upload.Content
	if s.maxBytes > 0 {
		reader = io.LimitReader(upload.Content, s.maxBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", documenterrors.ErrEmptyDocument
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return "", documenterrors.ErrDocumentTooLarge
	}

	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), allowedMIMETypes...) {
		s.logger.Warn("document type rejected",
			zap.String("filename", upload.Filename),
			zap.String("mime", mtype.String()),
		)
		return "", documenterrors.ErrUnsupportedDocumentType
	}

	dir := filepath.Join(s.root, sub)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	name := uuid.NewString() + mtype.Extension()
	if err := os.Rename(tmp.Name(), filepath.Join(dir, name)); err != nil {
		return "", err
	}

	rel := filepath.ToSlash(filepath.Join(sub, name))
	s.logger.Info("document stored",
		zap.String("path", rel),
		zap.String("mime", mtype.String()),
		zap.Int("bytes", len(data)),
	)
	return rel, nil
}

func (s *localStorage) Remove(ctx context.Context, relativePath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rel, err := cleanRelative(relativePath)
	if err != nil {
		return err
	}
	if rel == "" {
		return documenterrors.ErrInvalidDocumentPath
	}
	err = os.Remove(filepath.Join(s.root, rel))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// cleanRelative rejects absolute paths and anything escaping the root.
func cleanRelative(p string) (string, error) {
	if p == "" {
		return "", nil
	}
	if filepath.IsAbs(p) || strings.HasPrefix(p, "/") {
		return "", documenterrors.ErrInvalidDocumentPath
	}
	cleaned := filepath.Clean(filepath.FromSlash(p))
	if cleaned == "." {
		return "", nil
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", documenterrors.ErrInvalidDocumentPath
	}
	return cleaned, nil
}
