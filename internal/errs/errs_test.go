package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *HTTPError
		status int
		code   string
	}{
		{"unauthorized", NewUnauthorizedError("nope", false), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", NewForbiddenError("nope", false), http.StatusForbidden, "FORBIDDEN"},
		{"bad request", NewBadRequestError("bad", true, nil, nil, nil), http.StatusBadRequest, "BAD_REQUEST"},
		{"bad request custom code", NewBadRequestError("bad", true, Code("USER_ALREADY_EXISTS"), nil, nil), http.StatusBadRequest, "USER_ALREADY_EXISTS"},
		{"not found", NewNotFoundError("missing", false, nil), http.StatusNotFound, "NOT_FOUND"},
		{"too many requests", NewTooManyRequestsError(), http.StatusTooManyRequests, "TOO_MANY_REQUESTS"},
		{"internal", NewInternalServerError(), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.Status)
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}
}

func TestHTTPErrorIsAndAs(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", NewNotFoundError("Document not found", true, nil))

	assert.True(t, errors.Is(wrapped, &HTTPError{}))

	var httpErr *HTTPError
	require.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, "Document not found", httpErr.Error())
}

func TestWithMessageDoesNotMutate(t *testing.T) {
	base := NewUnauthorizedError("Unauthorized", false)
	changed := base.WithMessage("Token has expired")

	assert.Equal(t, "Unauthorized", base.Message)
	assert.Equal(t, "Token has expired", changed.Message)
	assert.Equal(t, base.Status, changed.Status)

	withAction := base.WithAction(&Action{Type: ActionTypeReauthenticate})
	assert.Nil(t, base.Action)
	assert.Equal(t, ActionTypeReauthenticate, withAction.Action.Type)
}
