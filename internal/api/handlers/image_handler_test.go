package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowhealth/backend/internal/adapters/database"
	"github.com/knowhealth/backend/internal/application/services"
)

func TestImageHandler_ListWithoutDatabase(t *testing.T) {
	service := services.NewImageService(database.NewImageAdapter(nil))
	handler := NewImageHandler(service)

	req := httptest.NewRequest("GET", "/api/images", nil)
	w := httptest.NewRecorder()

	handler.ListImages(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Contains(t, body.Error, "not configured")
}
