package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Message(t *testing.T) {
	err := NewValidation("quantity is required")
	assert.Equal(t, "VALIDATION_ERROR: quantity is required", err.Error())

	cause := errors.New("boom")
	assert.Contains(t, NewInternal(cause).Error(), "caused by: boom")
}

func TestAppError_DetectionThroughWrapping(t *testing.T) {
	base := NewInsufficientStock(1, 10, "5", "8")
	wrapped := fmt.Errorf("apply movement: %w", base)

	assert.True(t, IsCode(wrapped, CodeInsufficientStock))
	assert.False(t, IsCode(wrapped, CodeNotFound))

	appErr, ok := AsAppError(wrapped)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.HTTPStatus)
}

func TestGetHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, GetHTTPStatus(NewNotFound("product", 1)))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus(errors.New("plain")))
}

func TestReversalFailure_KeepsCause(t *testing.T) {
	cause := NewInsufficientBatchQuantity(2, "3", "50")
	err := NewReversalFailure(7, cause)

	assert.True(t, IsReversalFailure(err))
	assert.True(t, errors.Is(err, cause))
	// the outer code wins for detection
	assert.False(t, IsCode(err, CodeInsufficientBatchQty))
}

func TestWithDetail(t *testing.T) {
	err := NewValidation("bad field").WithDetail("field", "quantity")
	assert.Equal(t, "quantity", err.Details["field"])
}
