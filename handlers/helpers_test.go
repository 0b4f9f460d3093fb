package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/volunteerhub/volunteer-server/internal/sessions"
	"github.com/volunteerhub/volunteer-server/internal/tokens"
	"github.com/volunteerhub/volunteer-server/internal/volunteer/service"
	"github.com/volunteerhub/volunteer-server/pkg/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	engine *gin.Engine
	codec  *tokens.Codec
}

func newTestServer(t *testing.T, svc *service.Service, bl *sessions.Blacklist, production bool) *testServer {
	t.Helper()
	if svc == nil {
		svc = service.NewMemoryService()
	}
	codec := tokens.NewCodec("test-secret", time.Hour)
	g := gin.New()
	g.Use(ErrorHandler())
	NewAuthHandler(codec, bl, production).Register(g)
	gate := middleware.CookieAuth(codec, middleware.AuthOptions{Strict: true, Revocations: bl})
	NewVolunteerHandler(svc).Register(g, gate)
	return &testServer{engine: g, codec: codec}
}

func (s *testServer) token(t *testing.T, email string) string {
	t.Helper()
	raw, err := s.codec.Issue(map[string]interface{}{"email": email})
	require.NoError(t, err)
	return raw
}

// do sends body as JSON when non-nil and attaches the session cookie when token is set.
func (s *testServer) do(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var rd *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: middleware.CookieName, Value: token})
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.CookieName {
			return c
		}
	}
	return nil
}
