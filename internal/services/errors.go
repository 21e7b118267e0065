package services

import (
	"errors"
	"fmt"
)

// ErrorKind classifies service failures so the HTTP layer can map them to
// status codes without inspecting message text.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindInvalidInput
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindConflict
)

// ServiceError carries a classification alongside the message.
type ServiceError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func NewInvalidInputError(message string) *ServiceError {
	return &ServiceError{Kind: KindInvalidInput, Message: message}
}

func NewUnauthenticatedError(message string) *ServiceError {
	return &ServiceError{Kind: KindUnauthenticated, Message: message}
}

func NewForbiddenError(message string) *ServiceError {
	return &ServiceError{Kind: KindForbidden, Message: message}
}

func NewNotFoundError(resource string) *ServiceError {
	return &ServiceError{Kind: KindNotFound, Message: resource + " not found"}
}

func NewConflictError(message string) *ServiceError {
	return &ServiceError{Kind: KindConflict, Message: message}
}

func NewInternalError(message string, err error) *ServiceError {
	return &ServiceError{Kind: KindInternal, Message: message, Err: err}
}

// KindOf extracts the classification from err, defaulting to internal.
func KindOf(err error) ErrorKind {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}

func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

func IsConflict(err error) bool {
	return KindOf(err) == KindConflict
}

func IsForbidden(err error) bool {
	return KindOf(err) == KindForbidden
}

func IsInvalidInput(err error) bool {
	return KindOf(err) == KindInvalidInput
}

func IsUnauthenticated(err error) bool {
	return KindOf(err) == KindUnauthenticated
}
