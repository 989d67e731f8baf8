package atelier

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = sql.ErrNoRows

// ErrDuplicateSlug is returned when a slug collides with an existing post
// and cannot be disambiguated.
var ErrDuplicateSlug = errors.New("slug already in use")

// ErrInvalidCredentials is returned for any failed login, without
// distinguishing unknown email from wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ValidationError reports a rejected write before it reaches the store.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s %s", e.Field, e.Reason)
}

// isUniqueViolation reports whether err is the sqlite unique-constraint
// failure. The driver has no typed error for it, so match the message.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "constraint failed")
}
