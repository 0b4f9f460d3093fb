package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/volunteerhub/volunteer-server/internal/sessions"
	"github.com/volunteerhub/volunteer-server/internal/tokens"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newCodec() *tokens.Codec {
	return tokens.NewCodec("test-secret", time.Hour)
}

func issue(t *testing.T, c *tokens.Codec, email string) string {
	t.Helper()
	raw, err := c.Issue(map[string]interface{}{"email": email})
	require.NoError(t, err)
	return raw
}

func gated(codec *tokens.Codec, opts AuthOptions) *gin.Engine {
	g := gin.New()
	g.GET("/", CookieAuth(codec, opts), func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"email": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"email": id.Email})
	})
	return g
}

func get(g *gin.Engine, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: CookieName, Value: cookie})
	}
	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, req)
	return rw
}

func TestCookieAuth_NoCookie(t *testing.T) {
	for _, strict := range []bool{true, false} {
		rw := get(gated(newCodec(), AuthOptions{Strict: strict}), "")
		require.Equal(t, http.StatusUnauthorized, rw.Code)
		require.JSONEq(t, `{"message":"unauthorized access"}`, rw.Body.String())
	}
}

func TestCookieAuth_ValidToken(t *testing.T) {
	codec := newCodec()
	rw := get(gated(codec, AuthOptions{Strict: true}), issue(t, codec, "a@x.com"))
	require.Equal(t, http.StatusOK, rw.Code)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &got))
	require.Equal(t, "a@x.com", got["email"])
}

func TestCookieAuth_InvalidToken_Strict(t *testing.T) {
	rw := get(gated(newCodec(), AuthOptions{Strict: true}), "garbage")
	require.Equal(t, http.StatusUnauthorized, rw.Code)
}

func TestCookieAuth_WrongSecret_Lenient(t *testing.T) {
	other := tokens.NewCodec("other-secret", time.Hour)
	rw := get(gated(newCodec(), AuthOptions{Strict: false}), issue(t, other, "a@x.com"))
	require.Equal(t, http.StatusOK, rw.Code)
	require.JSONEq(t, `{"email":null}`, rw.Body.String())
}

func TestCookieAuth_RejectsRevokedToken(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()
	bl := sessions.NewBlacklist(redis.NewClient(&redis.Options{Addr: m.Addr()}))

	codec := newCodec()
	raw := issue(t, codec, "a@x.com")
	require.NoError(t, bl.Revoke(context.Background(), raw, 5*time.Second))

	rw := get(gated(codec, AuthOptions{Strict: true, Revocations: bl}), raw)
	require.Equal(t, http.StatusUnauthorized, rw.Code)

	fresh := get(gated(codec, AuthOptions{Strict: true, Revocations: bl}), issue(t, codec, "b@x.com"))
	require.Equal(t, http.StatusOK, fresh.Code)
}

func TestCookieAuth_RevocationStoreDown(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	bl := sessions.NewBlacklist(redis.NewClient(&redis.Options{Addr: m.Addr()}))
	m.Close()

	codec := newCodec()
	rw := get(gated(codec, AuthOptions{Strict: true, Revocations: bl}), issue(t, codec, "a@x.com"))
	require.Equal(t, http.StatusUnauthorized, rw.Code)
}
