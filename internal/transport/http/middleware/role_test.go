package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-shop-api/internal/domain"
	jwtinfra "github.com/go-shop-api/internal/infrastructure/jwt"
	"github.com/stretchr/testify/assert"
)

func requestWithRole(role string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	claims := &jwtinfra.Claims{UserID: "u1", Role: role}
	return req.WithContext(context.WithValue(req.Context(), ClaimsKey, claims))
}

func TestRequireRole_NoClaims(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	RequireRole(domain.RoleAdmin)(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRequireRole_WrongRole(t *testing.T) {
	rr := httptest.NewRecorder()
	RequireRole(domain.RoleAdmin)(http.HandlerFunc(okHandler)).ServeHTTP(rr, requestWithRole(domain.RoleUser))
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestRequireRole_AllowedRole(t *testing.T) {
	rr := httptest.NewRecorder()
	RequireRole(domain.RoleAdmin)(http.HandlerFunc(okHandler)).ServeHTTP(rr, requestWithRole(domain.RoleAdmin))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRequireRole_MultipleAllowed(t *testing.T) {
	rr := httptest.NewRecorder()
	RequireRole(domain.RoleAdmin, domain.RoleUser)(http.HandlerFunc(okHandler)).ServeHTTP(rr, requestWithRole(domain.RoleUser))
	assert.Equal(t, http.StatusOK, rr.Code)
}
