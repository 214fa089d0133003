package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scholarhub/config"
	"scholarhub/controllers"
)

func testEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		JWTSecret:     "test-secret",
		ClientBaseURL: "http://localhost:5173",
		CORSOrigins:   []string{"http://localhost:5173"},
	}
	h := controllers.New(nil, nil, nil, nil, cfg)
	r := gin.New()
	Setup(r, h, cfg)
	return r
}

func tokenWithRole(t *testing.T, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "user@example.com",
		"role":  role,
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestLiveness(t *testing.T) {
	r := testEngine(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "running")
}

func TestUnknownRouteIsJSON404(t *testing.T) {
	r := testEngine(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/no-such-route", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"route not found"}`, w.Body.String())
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	r := testEngine(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/application", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminRouteRejectsStudent(t *testing.T) {
	r := testEngine(t)
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer "+tokenWithRole(t, "student"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestModeratorRouteRejectsStudent(t *testing.T) {
	r := testEngine(t)
	req := httptest.NewRequest(http.MethodPatch, "/application/abc/status", nil)
	req.Header.Set("Authorization", "Bearer "+tokenWithRole(t, "student"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

// An admin token passes the guard chain; /upload then fails further along
// because no uploader is configured, which proves the guard admitted it.
func TestAdminRoutePassesAdmin(t *testing.T) {
	r := testEngine(t)
	req := httptest.NewRequest(http.MethodPost, "/upload", nil)
	req.Header.Set("Authorization", "Bearer "+tokenWithRole(t, "admin"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
