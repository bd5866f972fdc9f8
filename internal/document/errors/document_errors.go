package documenterrors

import (
	"net/http"

	"go-leave/internal/shared/apperror"
)

var (
	ErrEmptyDocument = apperror.NewWithReason(
		apperror.CodeInvalidInput,
		"EmptyDocument",
		"supporting document is empty",
		http.StatusBadRequest,
	)
	ErrDocumentTooLarge = apperror.NewWithReason(
		apperror.CodeInvalidInput,
		"DocumentTooLarge",
		"supporting document exceeds the maximum allowed size",
		http.StatusBadRequest,
	)
	ErrUnsupportedDocumentType = apperror.NewWithReason(
		apperror.CodeInvalidInput,
		"UnsupportedDocumentType",
		"supporting document must be a PDF, JPEG or PNG file",
		http.StatusBadRequest,
	)
	ErrInvalidDocumentPath = apperror.NewWithReason(
		apperror.CodeInvalidInput,
		"InvalidDocumentPath",
		"invalid document path",
		http.StatusBadRequest,
	)
)
