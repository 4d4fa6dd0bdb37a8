// internal/apperrors/errors.go
package apperrors

import (
	"errors"
	"fmt"
)

// ValidationError reports a malformed or out-of-range mutation argument.
// The offending arguments travel with the error so the API layer can
// attach them to the response.
type ValidationError struct {
	Message string
	Args    map[string]interface{}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidation(message string, args map[string]interface{}) *ValidationError {
	return &ValidationError{Message: message, Args: args}
}

// NotFoundError reports an absent product, user, comment or cart line.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

func NewNotFound(resource, key string) *NotFoundError {
	return &NotFoundError{Resource: resource, Key: key}
}

// AuthorizationError reports an unauthenticated or forbidden operation.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

func NewAuthorization(message string) *AuthorizationError {
	return &AuthorizationError{Message: message}
}

// ConflictError reports a stock-affecting operation that lost to a
// concurrent one, e.g. a conditional decrement finding too few units.
type ConflictError struct {
	Message string
	Args    map[string]interface{}
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflict(message string, args map[string]interface{}) *ConflictError {
	return &ConflictError{Message: message, Args: args}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}

func IsAuthorization(err error) bool {
	var ae *AuthorizationError
	return errors.As(err, &ae)
}

func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}
