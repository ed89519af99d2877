package domain

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidEmail reports whether s is a bare e-mail address, with no display
// name or surrounding space.
func ValidEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}

// NotifyEmail is an address alerted on every new submission.
type NotifyEmail struct {
	ID    int64
	Email string
}

func (n NotifyEmail) Validate() error {
	email := strings.TrimSpace(n.Email)
	if email == "" {
		return errors.New("email is empty")
	}
	if !ValidEmail(email) {
		return errors.New("invalid email address: " + n.Email)
	}
	return nil
}
