package leave

import (
	"errors"

	employeeerrors "go-leave/internal/employee/errors"
	leaveerrors "go-leave/internal/leave/errors"
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/database"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrLeaveNotFound
	}
	if errors.Is(err, database.ErrVersionConflict) {
		return leaveerrors.ErrLeaveModified
	}
	return err
}

func mapEmployeeError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}
	if errors.Is(err, database.ErrVersionConflict) {
		return employeeerrors.ErrEmployeeModified
	}
	return err
}

// mapStorageError keeps the storage's own input errors and reports anything
// else as a storage failure.
func mapStorageError(err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return errors.Join(leaveerrors.ErrDocumentStorage, err)
}

func isAppError(err error) bool {
	var appErr *apperror.AppError
	return errors.As(err, &appErr)
}
