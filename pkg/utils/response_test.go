package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, http.StatusInternalServerError, "Failed to generate reply")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.JSONEq(t, `{"message":"Failed to generate reply"}`, rec.Body.String())
}

func TestRespondFieldError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondFieldError(rec, http.StatusBadRequest, "platform", "platform is invalid")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"message":"platform is invalid","field":"platform"}`, rec.Body.String())
}
