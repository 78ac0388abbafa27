package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidPassword   = errors.New("invalid password")
	ErrUserAlreadyExists = errors.New("user already registered")
	ErrPasswordTooWeak   = errors.New("password does not meet the security policy")
	ErrPasswordConfirm   = errors.New("passwords do not match")
	ErrResetTokenInvalid = errors.New("the supplied reset token is not valid")
	ErrResetTokenExpired = errors.New("the supplied reset token has expired, please request a new one")
	ErrMailDelivery      = errors.New("could not send the password recovery email")
	ErrStoreUnavailable  = errors.New("unexpected error, please try again later")
)

// ValidationError reports every required field missing from a request, in
// the order the fields were checked.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 1 {
		return fmt.Sprintf("the %s field is required", e.Fields[0])
	}
	return "required fields missing: " + strings.Join(e.Fields, ", ")
}

// Messages returns one message per missing field, for callers that surface
// the full list.
func (e *ValidationError) Messages() []string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("the %s field is required", f))
	}
	return msgs
}
