package services

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrStorage is returned for any unexpected persistence failure. The
// underlying driver error is logged, never returned to callers.
var ErrStorage = errors.New("storage operation failed")

// DeleteStatus confirms a successful deletion.
type DeleteStatus struct {
	Deleted bool   `json:"deleted"`
	Message string `json:"message"`
}

// storageError translates a low-level persistence failure into ErrStorage.
func storageError(log *zap.Logger, op string, err error) error {
	log.Error("storage operation failed", zap.String("op", op), zap.Error(err))
	return fmt.Errorf("%s: %w", op, ErrStorage)
}

// notFoundOr maps gorm's record-not-found to notFound and everything else to ErrStorage.
func notFoundOr(log *zap.Logger, op string, err error, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return storageError(log, op, err)
}
