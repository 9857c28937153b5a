package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workpulse-hr/attendance-engine-go/internal/pkg/jwt"
)

func authStack(svc jwt.Service) http.Handler {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return jwtauth.Verifier(svc.JWTAuth())(AuthRequired(svc)(next))
}

func accessToken(t *testing.T, svc jwt.Service, role string) string {
	t.Helper()
	employeeID, companyID := "employee-1", "company-1"
	token, _, err := svc.GenerateAccessToken("user-1", &employeeID, &companyID, role)
	require.NoError(t, err)
	return token
}

func TestAuthRequiredAcceptsAccessToken(t *testing.T) {
	svc := jwt.NewJWTService("test-secret", "1h")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken(t, svc, "employee"))
	rec := httptest.NewRecorder()

	authStack(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthRequiredRejectsMissingToken(t *testing.T) {
	svc := jwt.NewJWTService("test-secret", "1h")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	authStack(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRequiredRejectsNonAccessToken(t *testing.T) {
	svc := jwt.NewJWTService("test-secret", "1h")
	_, token, err := svc.JWTAuth().Encode(map[string]interface{}{
		"user_id": "user-1",
		"type":    "refresh",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	authStack(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRequiredRejectsRevokedToken(t *testing.T) {
	svc := jwt.NewJWTService("test-secret", "1h")
	token := accessToken(t, svc, "employee")
	svc.RevokeToken(token)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	authStack(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminOnlyRequiresAdminRole(t *testing.T) {
	svc := jwt.NewJWTService("test-secret", "1h")
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	stack := jwtauth.Verifier(svc.JWTAuth())(AuthRequired(svc)(AdminOnly(next)))

	cases := []struct {
		role string
		want int
	}{
		{"admin", http.StatusOK},
		{"employee", http.StatusForbidden},
	}
	for _, c := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+accessToken(t, svc, c.role))
		rec := httptest.NewRecorder()

		stack.ServeHTTP(rec, req)

		assert.Equal(t, c.want, rec.Code, "role %s", c.role)
	}
}
