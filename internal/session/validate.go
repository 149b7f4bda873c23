package session

import (
	"fmt"
	"net/mail"
	"strings"
)

const minPasswordLength = 8

// FieldError is a client-side validation failure for a single form field.
// These are detected before any network call and never sent to the server.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates per-field failures so forms can show them inline.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, fe := range v {
		msgs[i] = fe.Error()
	}
	return strings.Join(msgs, "; ")
}

func validEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

func validateCredentials(email, password string) error {
	var errs ValidationErrors
	if email == "" {
		errs = append(errs, FieldError{Field: "email", Message: "email is required"})
	} else if !validEmail(email) {
		errs = append(errs, FieldError{Field: "email", Message: "email is not valid"})
	}
	if password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "password is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateRegistration(name, email, password string) error {
	var errs ValidationErrors
	if strings.TrimSpace(name) == "" {
		errs = append(errs, FieldError{Field: "name", Message: "name is required"})
	}
	if email == "" {
		errs = append(errs, FieldError{Field: "email", Message: "email is required"})
	} else if !validEmail(email) {
		errs = append(errs, FieldError{Field: "email", Message: "email is not valid"})
	}
	if password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "password is required"})
	} else if len(password) < minPasswordLength {
		errs = append(errs, FieldError{
			Field:   "password",
			Message: fmt.Sprintf("password must be at least %d characters", minPasswordLength),
		})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidatePasswordReset checks a new password and its confirmation. Exposed
// for the reset form, which validates before any request is made.
func ValidatePasswordReset(password, confirmation string) error {
	var errs ValidationErrors
	if password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "password is required"})
	} else if len(password) < minPasswordLength {
		errs = append(errs, FieldError{
			Field:   "password",
			Message: fmt.Sprintf("password must be at least %d characters", minPasswordLength),
		})
	}
	if confirmation != password {
		errs = append(errs, FieldError{Field: "confirmation", Message: "passwords do not match"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
