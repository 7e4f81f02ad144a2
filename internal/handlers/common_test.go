package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"gravelmatch-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: models.ErrInvalidInput, want: http.StatusBadRequest},
		{err: models.ErrEmailTaken, want: http.StatusBadRequest},
		{err: models.ErrInvalidCredentials, want: http.StatusUnauthorized},
		{err: models.ErrNotAuthorized, want: http.StatusForbidden},
		{err: models.ErrNotFound, want: http.StatusNotFound},
		{err: fmt.Errorf("target: %w", models.ErrNotFound), want: http.StatusNotFound},
		{err: fmt.Errorf("database is down"), want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusForError(tt.err), tt.err.Error())
	}
}

func TestClientMessage_HidesInternalDetails(t *testing.T) {
	internal := fmt.Errorf("pq: relation \"users\" does not exist")
	assert.Equal(t, "internal server error", clientMessage(internal, http.StatusInternalServerError))

	visible := fmt.Errorf("content: %w", models.ErrInvalidInput)
	assert.Equal(t, visible.Error(), clientMessage(visible, http.StatusBadRequest))
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	Health(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy","app":"GravelMatch API"}`, rec.Body.String())
}
