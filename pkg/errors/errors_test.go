package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", New(ErrCodeBookNotFound, "Book not found."), http.StatusNotFound},
		{"validation", Validation("title is required"), http.StatusBadRequest},
		{"bind", ErrBindError, http.StatusBadRequest},
		{"rate limit", ErrTooManyRequests, http.StatusTooManyRequests},
		{"storage", WrapStorage(errors.New("dial tcp: refused"), "list books"), http.StatusServiceUnavailable},
		{"canceled", WrapStorage(context.Canceled, "list books"), http.StatusServiceUnavailable},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HTTPStatus(tc.err))
		})
	}
}

func TestIsMatchesWrappedPredefinedError(t *testing.T) {
	notFound := New(ErrCodeBookNotFound, "Book not found.")
	wrapped := fmt.Errorf("update: %w", notFound)

	assert.True(t, errors.Is(wrapped, notFound))
	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsValidation(wrapped))
	assert.False(t, errors.Is(wrapped, ErrInvalidParams))
}

func TestWrapStorageKeepsCause(t *testing.T) {
	err := WrapStorage(context.DeadlineExceeded, "count books")

	assert.True(t, IsTransient(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, ErrCodeDatabaseError, err.Code)
}

func TestGetAppErrorWrapsUnknown(t *testing.T) {
	appErr := GetAppError(errors.New("boom"))

	assert.Equal(t, ErrCodeInternal, appErr.Code)
	assert.Equal(t, ErrInternal.Message, appErr.Message)
}
