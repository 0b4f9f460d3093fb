package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func corsEngine() *gin.Engine {
	g := gin.New()
	g.Use(CORS([]string{"http://localhost:5173", "https://volunteer-e5e10.web.app/"}))
	g.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return g
}

func TestCORS_AllowedOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://volunteer-e5e10.web.app")
	rw := httptest.NewRecorder()
	corsEngine().ServeHTTP(rw, req)

	require.Equal(t, http.StatusOK, rw.Code)
	require.Equal(t, "https://volunteer-e5e10.web.app", rw.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "true", rw.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORS_UnknownOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	rw := httptest.NewRecorder()
	corsEngine().ServeHTTP(rw, req)

	require.Equal(t, http.StatusOK, rw.Code)
	require.Empty(t, rw.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Preflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rw := httptest.NewRecorder()
	corsEngine().ServeHTTP(rw, req)

	require.Equal(t, http.StatusNoContent, rw.Code)
	require.Contains(t, rw.Header().Get("Access-Control-Allow-Methods"), "DELETE")
}
