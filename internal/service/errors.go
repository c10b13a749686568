package service

import (
	"errors"
	"fmt"

	"github.com/Dan9191/money-service/internal/repository"
)

var (
	ErrValidation      = errors.New("validation error")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("not authorized")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
)

// Error carries a caller-facing message and one of the sentinel kinds above.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

var (
	errInvalidCredentials = &Error{Kind: ErrUnauthenticated, Msg: "invalid credentials"}
	errForbidden          = &Error{Kind: ErrForbidden, Msg: "not authorized"}
	errNotFound           = &Error{Kind: ErrNotFound, Msg: "not found"}
)

func validationf(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Msg: fmt.Sprintf(format, args...)}
}

func mapRepoErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return errNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return &Error{Kind: ErrConflict, Msg: "duplicate record"}
	default:
		return err
	}
}

type nullChecker interface {
	IsNull() bool
}

type field struct {
	name  string
	value nullChecker
}

// rejectNull fails on the first field explicitly set to null.
func rejectNull(fields ...field) error {
	for _, f := range fields {
		if f.value.IsNull() {
			return validationf("%s cannot be null", f.name)
		}
	}
	return nil
}
