package v1

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanavia/clinica/internal/config"
	"github.com/sanavia/clinica/internal/domain"
	"github.com/sanavia/clinica/pkg/auth"
)

func authTestRouter(mgr *auth.JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", RequireAuth(mgr), func(c *gin.Context) {
		p := principalFrom(c)
		c.JSON(http.StatusOK, gin.H{"username": p.Username})
	})
	return router
}

func testJWTManager(ttl time.Duration) *auth.JWTManager {
	return auth.NewJWTManager(config.JWTConfig{
		Secret:   "test-secret",
		TokenTTL: ttl,
		Issuer:   "clinica-test",
	})
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	mgr := testJWTManager(time.Hour)
	token, _, err := mgr.Generate(domain.Principal{ID: uuid.New(), Username: "dr.ruiz"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	authTestRouter(mgr).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "dr.ruiz")
}

func TestRequireAuthRejectsMissingHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	authTestRouter(testJWTManager(time.Hour)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthRejectsMalformedHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc123")
	rec := httptest.NewRecorder()
	authTestRouter(testJWTManager(time.Hour)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthRejectsExpiredToken(t *testing.T) {
	mgr := testJWTManager(-time.Minute)
	token, _, err := mgr.Generate(domain.Principal{ID: uuid.New(), Username: "dr.ruiz"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	authTestRouter(mgr).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "token expired")
}
