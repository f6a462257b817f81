package validation

import (
	"errors"
	"strings"
)

// FieldError rejects the value of a single input field.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Reason
}

// Errors groups every field rejected by a submit-time check.
type Errors []*FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return strings.Join(msgs, "; ")
}

// Fields lists the rejected field names in order.
func (e Errors) Fields() []string {
	fields := make([]string, len(e))
	for i, fe := range e {
		fields[i] = fe.Field
	}
	return fields
}

// IsValidation reports whether err was caused by user input rather than
// by the database.
func IsValidation(err error) bool {
	var fe *FieldError
	if errors.As(err, &fe) {
		return true
	}
	var errs Errors
	return errors.As(err, &errs)
}
