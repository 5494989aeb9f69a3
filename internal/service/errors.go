package service

import (
	"errors"

	"glimpse/internal/models"

	"gorm.io/gorm"
)

// notFoundOr maps a missing-record error to a NOT_FOUND app error and passes
// everything else through unchanged.
func notFoundOr(err error, resource string, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource, id)
	}
	return err
}
