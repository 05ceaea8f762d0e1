package gormdb

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// isUniqueConstraintViolation reports whether err is a unique constraint
// violation from either supported driver. TranslateError normalizes most
// cases to gorm.ErrDuplicatedKey; the message check covers drivers that
// return raw constraint errors.
func isUniqueConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "duplicate key") ||
		strings.Contains(errMsg, "unique constraint")
}
