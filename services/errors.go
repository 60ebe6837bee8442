package services

import (
	"errors"
	"fmt"
)

// NotFoundError reports that a referenced entity does not exist. It
// always names the entity kind and the key that failed to resolve.
type NotFoundError struct {
	Entity string
	Key    interface{}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %v", e.Entity, e.Key)
}

// NotFound builds a NotFoundError for the given entity and key.
func NotFound(entity string, key interface{}) error {
	return &NotFoundError{Entity: entity, Key: key}
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// ForbiddenError reports that the caller's role-scoped capability does
// not cover the attempted operation. Kept distinct from NotFoundError so
// authorization failures are never confused with missing data.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	return e.Message
}

// Forbidden builds a ForbiddenError with the given message.
func Forbidden(message string) error {
	return &ForbiddenError{Message: message}
}

// IsForbidden reports whether err is a ForbiddenError.
func IsForbidden(err error) bool {
	var fe *ForbiddenError
	return errors.As(err, &fe)
}

// ValidationError reports malformed or out-of-range input detected past
// the DTO layer.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Invalid builds a ValidationError with the given message.
func Invalid(message string) error {
	return &ValidationError{Message: message}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// DuplicateError reports a uniqueness violation on a registry natural key.
type DuplicateError struct {
	Entity string
	Key    interface{}
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s already exists: %v", e.Entity, e.Key)
}

// Duplicate builds a DuplicateError for the given entity and key.
func Duplicate(entity string, key interface{}) error {
	return &DuplicateError{Entity: entity, Key: key}
}

// IsDuplicate reports whether err is a DuplicateError.
func IsDuplicate(err error) bool {
	var de *DuplicateError
	return errors.As(err, &de)
}
