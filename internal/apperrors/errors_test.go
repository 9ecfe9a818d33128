package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpstreamError_Is(t *testing.T) {
	t.Parallel()

	fetch := &UpstreamError{Op: OpFetch, Path: "/api/users/profile", StatusCode: 500}
	update := &UpstreamError{Op: OpUpdate, Path: "/api/users/update-balance", StatusCode: 400, Body: "bad"}

	assert.ErrorIs(t, fetch, ErrUpstreamFetch)
	assert.NotErrorIs(t, fetch, ErrUpstreamUpdate)
	assert.ErrorIs(t, fmt.Errorf("wrapped: %w", update), ErrUpstreamUpdate)
	assert.Equal(t, "update /api/users/update-balance: status 400: bad", update.Error())
	assert.Equal(t, "fetch /api/users/profile: status 500", fetch.Error())
}

func TestCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"sentinel", ErrAuthRequired, CodeAuthRequired},
		{"wrapped sentinel", fmt.Errorf("start: %w", ErrSessionNotInitialized), CodeSessionNotStarted},
		{"upstream update", &UpstreamError{Op: OpUpdate}, CodeUpstreamUpdate},
		{"upstream fetch", &UpstreamError{Op: OpFetch}, CodeUpstreamFetch},
		{"invalid amount", fmt.Errorf("update balance: %w", ErrInvalidAmount), CodeInvalidAmount},
		{"plain", errors.New("boom"), CodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Code(tt.err))
		})
	}
}
