package services

import (
	"errors"

	"sazonpos/pkg/apperr"

	"gorm.io/gorm"
)

// classify turns a repository error into a NotFound or Store error.
func classify(err error, notFoundMsg, storeMsg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(notFoundMsg)
	}
	return apperr.Store(storeMsg, err)
}
