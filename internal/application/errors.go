package application

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

// Sentinel errors returned by application services. Store-level sentinels
// (driven.ErrAccountNotFound and friends) pass through wrapped.
var (
	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCredentials is returned for both unknown accounts and wrong
	// passwords so callers cannot tell the two apart.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrForbidden indicates a verified caller lacks permission for the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidToken indicates a bad signature, algorithm, or payload.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired indicates a well-formed token past its exp claim.
	ErrTokenExpired = errors.New("token expired")
)

// ValidationError reports malformed or missing input, keyed by field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalidField(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// fromValidation converts ozzo-validation field errors into a *ValidationError.
// Returns nil when errs is nil.
func fromValidation(errs validation.Errors) error {
	if err := errs.Filter(); err != nil {
		var fieldErrs validation.Errors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		fields := make(map[string]string, len(fieldErrs))
		for k, v := range fieldErrs {
			fields[k] = v.Error()
		}
		return &ValidationError{Fields: fields}
	}
	return nil
}
