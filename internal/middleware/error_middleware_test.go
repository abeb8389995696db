package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/arjun/projecthub/internal/pkg/apperrors"
)

func serveError(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/fail", func(c *gin.Context) {
		HandleAPIError(c, err)
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fail", nil))
	return rec
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "invalid credentials", err: apperrors.ErrInvalidCredentials, wantStatus: http.StatusUnauthorized},
		{name: "invalid otp", err: apperrors.ErrOTPInvalid, wantStatus: http.StatusBadRequest},
		{name: "group full", err: apperrors.ErrGroupFull, wantStatus: http.StatusConflict},
		{name: "group not found", err: apperrors.ErrGroupNotFound, wantStatus: http.StatusNotFound},
		{name: "permission denied", err: apperrors.ErrPermissionDenied, wantStatus: http.StatusForbidden},
		{name: "supervisor at capacity", err: apperrors.ErrSupervisorAtCapacity, wantStatus: http.StatusConflict},
		{name: "panel size", err: apperrors.ErrPanelSize, wantStatus: http.StatusBadRequest},
		{name: "not group supervisor", err: apperrors.ErrNotGroupSupervisor, wantStatus: http.StatusForbidden},
		{name: "school mismatch", err: apperrors.ErrSchoolMismatch, wantStatus: http.StatusBadRequest},
		{name: "wrapped sentinel", err: fmt.Errorf("respond invite: %w", apperrors.ErrGroupFull), wantStatus: http.StatusConflict},
		{name: "unmapped error", err: errors.New("connection reset"), wantStatus: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serveError(tt.err)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}

	t.Run("unmapped error body stays opaque", func(t *testing.T) {
		rec := serveError(errors.New("pq: relation students does not exist"))
		assert.NotContains(t, rec.Body.String(), "relation students")
	})
}
