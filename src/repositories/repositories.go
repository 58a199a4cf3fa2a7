// Package repositories holds the gorm-backed data access for every entity.
// Persistence failures are logged and rewrapped so callers never see driver errors.
package repositories

import (
	"cycleparadise/src/apperror"
	"errors"
	"log"
)

// fail passes ValidationErrors through and hides everything else behind message.
func fail(action, message string, err error) error {
	var ve *apperror.ValidationError
	if errors.As(err, &ve) {
		return err
	}
	log.Printf("Error %s: %s\n", action, err.Error())
	return apperror.Wrap(err, message)
}

func normalizePage(page, limit, defaultLimit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return page, limit
}
