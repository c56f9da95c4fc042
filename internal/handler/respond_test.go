package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"chainmove/internal/domain"

	"github.com/gin-gonic/gin"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", domain.ErrNotFound, http.StatusNotFound},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden role", domain.ErrForbiddenRole, http.StatusForbidden},
		{"validation", domain.Validation("bad amount"), http.StatusBadRequest},
		{"business rule", domain.BusinessRule("pool closed"), http.StatusBadRequest},
		{"transient conflict", domain.TransientConflict(errors.New("deadlock")), http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			respondError(c, tt.err)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}
