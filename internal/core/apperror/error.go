// Package apperror provides structured error handling following RFC 7807 Problem Details.
// All business errors must use AppError for consistent API responses.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes following domain-driven design
const (
	// Infrastructure errors (5xx)
	CodeInternal = "INTERNAL_ERROR"
	CodeDatabase = "DATABASE_ERROR"

	// Validation errors (400)
	CodeValidation           = "VALIDATION_ERROR"
	CodeInvalidMovementShape = "INVALID_MOVEMENT_SHAPE"

	// Business rule violations (422)
	CodeBusinessRule           = "BUSINESS_RULE_VIOLATION"
	CodeReferenceNotFound      = "REFERENCE_NOT_FOUND"
	CodeInsufficientStock      = "INSUFFICIENT_STOCK"
	CodeInsufficientBatchQty   = "INSUFFICIENT_BATCH_QUANTITY"
	CodeStockLevelNotFound     = "STOCK_LEVEL_NOT_FOUND"
	CodeConcurrentModification = "CONCURRENT_MODIFICATION"

	// Consistency breach during reversal (5xx, operator attention required)
	CodeReversalFailure = "REVERSAL_FAILURE"

	// Authorization errors (401, 403)
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"

	// Not found (404)
	CodeNotFound = "NOT_FOUND"

	// Conflict (409)
	CodeConflict  = "CONFLICT"
	CodeDuplicate = "DUPLICATE_ENTRY"
)

// AppError is the standard error type for the platform.
// It implements error interface and provides structured details for API responses.
type AppError struct {
	// Code is a machine-readable error identifier
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Details contains additional context (field errors, quantities, etc.)
	Details map[string]any `json:"details,omitempty"`

	// HTTPStatus is the suggested HTTP status code
	HTTPStatus int `json:"-"`

	// Err is the underlying error (not exposed in JSON)
	Err error `json:"-"`
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail adds a key-value pair to error details
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

// --- Factory functions for common errors ---

// NewValidation creates a validation error (400)
func NewValidation(message string) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewInvalidMovementShape rejects a source/destination combination that is not
// allowed for the movement type. Nothing may be mutated after this error.
func NewInvalidMovementShape(movementType string, sourceSet, destinationSet bool) *AppError {
	return &AppError{
		Code:       CodeInvalidMovementShape,
		Message:    "invalid warehouse routing for movement type",
		HTTPStatus: http.StatusBadRequest,
		Details: map[string]any{
			"movement_type":   movementType,
			"source_set":      sourceSet,
			"destination_set": destinationSet,
		},
	}
}

// NewNotFound creates a not found error (404)
func NewNotFound(entity string, id any) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", entity),
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"entity": entity, "id": id},
	}
}

// NewReferenceNotFound reports a missing foreign entity named by a movement
// (product, batch, warehouse, employee, supplier). Surfaced unchanged, no retry.
func NewReferenceNotFound(kind string, id int64) *AppError {
	return &AppError{
		Code:       CodeReferenceNotFound,
		Message:    fmt.Sprintf("referenced %s does not exist", kind),
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    map[string]any{"kind": kind, "id": id},
	}
}

// NewBusinessRule creates a business rule violation error (422)
func NewBusinessRule(code, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

// NewInsufficientStock creates a stock shortage error
func NewInsufficientStock(productID, warehouseID int64, available, requested string) *AppError {
	return &AppError{
		Code:       CodeInsufficientStock,
		Message:    "insufficient stock",
		HTTPStatus: http.StatusUnprocessableEntity,
		Details: map[string]any{
			"product_id":   productID,
			"warehouse_id": warehouseID,
			"available":    available,
			"requested":    requested,
		},
	}
}

// NewInsufficientBatchQuantity creates a batch remaining-quantity shortage error
func NewInsufficientBatchQuantity(batchID int64, available, requested string) *AppError {
	return &AppError{
		Code:       CodeInsufficientBatchQty,
		Message:    "insufficient batch quantity",
		HTTPStatus: http.StatusUnprocessableEntity,
		Details: map[string]any{
			"batch_id":  batchID,
			"available": available,
			"requested": requested,
		},
	}
}

// NewStockLevelNotFound is returned when a subtracting adjustment targets a
// (product, warehouse) pair that has no stock level row. Subtracting against a
// missing row is an error, not an implicit zero.
func NewStockLevelNotFound(productID, warehouseID int64) *AppError {
	return &AppError{
		Code:       CodeStockLevelNotFound,
		Message:    "no stock level exists for product at warehouse",
		HTTPStatus: http.StatusUnprocessableEntity,
		Details: map[string]any{
			"product_id":   productID,
			"warehouse_id": warehouseID,
		},
	}
}

// NewReversalFailure wraps a failure to undo a stored movement's effect.
// It blocks update and delete and indicates a consistency breach that needs
// operator attention.
func NewReversalFailure(movementID int64, err error) *AppError {
	return &AppError{
		Code:       CodeReversalFailure,
		Message:    "failed to reverse stored movement effect",
		HTTPStatus: http.StatusInternalServerError,
		Details:    map[string]any{"movement_id": movementID},
		Err:        err,
	}
}

// NewConcurrentModification creates an optimistic locking error
func NewConcurrentModification(entity string, id any) *AppError {
	return &AppError{
		Code:       CodeConcurrentModification,
		Message:    "Record was modified by another user. Please refresh and try again.",
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"entity": entity, "id": id},
	}
}

// NewInternal creates an internal server error (hides details from client)
func NewInternal(err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "Internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewUnauthorized creates an authentication error (401)
func NewUnauthorized(message string) *AppError {
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NewForbidden creates an authorization error (403)
func NewForbidden(message string) *AppError {
	return &AppError{
		Code:       CodeForbidden,
		Message:    message,
		HTTPStatus: http.StatusForbidden,
	}
}

// NewConflict creates a conflict error (409)
func NewConflict(message string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

// NewDuplicate creates a duplicate entry error (409)
func NewDuplicate(entity, field, value string) *AppError {
	return &AppError{
		Code:       CodeDuplicate,
		Message:    fmt.Sprintf("%s with this %s already exists", entity, field),
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"entity": entity, "field": field, "value": value},
	}
}

// --- Helper functions ---

// IsAppError checks if error is AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError extracts AppError from error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// GetHTTPStatus returns appropriate HTTP status for any error
func GetHTTPStatus(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// IsNotFound checks if error is CodeNotFound
func IsNotFound(err error) bool {
	return IsCode(err, CodeNotFound)
}

// IsCode checks if error carries the given code
func IsCode(err error, code string) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == code
	}
	return false
}

// IsReversalFailure checks if error is CodeReversalFailure
func IsReversalFailure(err error) bool {
	return IsCode(err, CodeReversalFailure)
}
