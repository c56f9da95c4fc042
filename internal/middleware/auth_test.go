package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"chainmove/internal/domain"

	"github.com/gin-gonic/gin"
)

func roleContext(role string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	if role != "" {
		c.Set("role", role)
	}
	return c, w
}

func TestRequireRoleAllowsListedRoles(t *testing.T) {
	guard := RequireRole(domain.RoleInvestor, domain.RoleAdmin)
	for _, role := range []string{domain.RoleInvestor, domain.RoleAdmin} {
		c, _ := roleContext(role)
		guard(c)
		if c.IsAborted() {
			t.Errorf("role %s was rejected", role)
		}
	}
}

func TestRequireRoleForbidsOtherRoles(t *testing.T) {
	guard := RequireRole(domain.RoleInvestor, domain.RoleAdmin)
	c, w := roleContext(domain.RoleDriver)
	guard(c)
	if !c.IsAborted() || w.Code != http.StatusForbidden {
		t.Errorf("driver: aborted=%v code=%d, want 403", c.IsAborted(), w.Code)
	}
}

func TestRequireRoleRejectsMissingRole(t *testing.T) {
	guard := RequireRole(domain.RoleInvestor)
	c, w := roleContext("")
	guard(c)
	if !c.IsAborted() || w.Code != http.StatusUnauthorized {
		t.Errorf("missing role: aborted=%v code=%d, want 401", c.IsAborted(), w.Code)
	}
}
