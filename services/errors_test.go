package services

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"unauthenticated", ErrUnauthenticated, http.StatusUnauthorized},
		{"forbidden", ErrForbidden, http.StatusForbidden},
		{"not found", notFound("complaint"), http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("loading: %w", notFound("comment")), http.StatusNotFound},
		{"validation", &ValidationError{Field: "title", Message: "bad"}, http.StatusUnprocessableEntity},
		{"other", errors.New("disk full"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatusFromError(tt.err))
		})
	}
}

func TestNotFoundMessage(t *testing.T) {
	err := notFound("complaint")
	assert.Equal(t, "complaint doesn't exist", err.Error())
	assert.ErrorIs(t, err, ErrNotFound)
}
