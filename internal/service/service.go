package service

import (
	"database/sql"
	"errors"

	apperrors "github.com/vasool/collection-engine/pkg/errors"
)

// storeErr normalizes repository errors: coded errors pass through, raw
// store failures become INTERNAL so nothing leaks to clients.
func storeErr(err error) error {
	var de *apperrors.DomainError
	if errors.As(err, &de) {
		return err
	}
	return apperrors.WrapInternal(err)
}

// isNoRows reports whether err is a missing-row error from the store.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
