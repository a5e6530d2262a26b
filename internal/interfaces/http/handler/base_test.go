package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workhub/backend/internal/domain/shared"
	"github.com/workhub/backend/internal/interfaces/http/dto"
)

func performError(t *testing.T, err error) (*httptest.ResponseRecorder, dto.Response) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	base := &BaseHandler{}
	r := gin.New()
	r.GET("/boom", func(c *gin.Context) {
		base.HandleDomainError(c, err)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	r.ServeHTTP(w, req)

	var body dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestHandleDomainErrorNotFound(t *testing.T) {
	w, body := performError(t, shared.ErrNotFound)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, body.Success)
	assert.Equal(t, dto.ErrCodeNotFound, body.Error.Code)
}

func TestHandleDomainErrorConflict(t *testing.T) {
	w, body := performError(t, shared.NewDomainError("CONFLICT", "Project must retain at least one owner"))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, dto.ErrCodeConflict, body.Error.Code)
	assert.Equal(t, "Project must retain at least one owner", body.Error.Message)
}

func TestHandleDomainErrorStorageFailure(t *testing.T) {
	w, body := performError(t, shared.NewDomainError("STORAGE_FAILURE", "Blob store unavailable"))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, dto.ErrCodeStorageFailure, body.Error.Code)
}

func TestHandleDomainErrorUnknown(t *testing.T) {
	w, body := performError(t, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, dto.ErrCodeInternal, body.Error.Code)
}
