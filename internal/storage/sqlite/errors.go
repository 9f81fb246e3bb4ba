package sqlite

import (
	"strings"

	"diary/internal/model"
)

// mapError folds low-level driver errors into the package-level sentinels.
// The mapping is string-based so this package does not depend on driver
// error types.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	le := strings.ToLower(err.Error())
	if strings.Contains(le, "unique") || strings.Contains(le, "duplicate") {
		return model.ErrDuplicate
	}
	return err
}
