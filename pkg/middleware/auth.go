package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/volunteerhub/volunteer-server/internal/tokens"
	"github.com/volunteerhub/volunteer-server/pkg/logger"
	"github.com/volunteerhub/volunteer-server/pkg/metrics"
)

const (
	// CookieName is the cookie carrying the session token.
	CookieName = "token"
	// IdentityKey is the gin context key holding the verified *tokens.Identity.
	IdentityKey = "identity"
	// RawTokenKey holds the raw cookie value once it has been verified.
	RawTokenKey = "rawToken"
)

// Verifier is the minimal interface the gate depends on
type Verifier interface {
	Verify(raw string) (*tokens.Identity, error)
}

// RevocationChecker reports tokens revoked before their expiry.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// AuthOptions configures CookieAuth.
type AuthOptions struct {
	// Strict rejects requests whose token fails verification. When false such
	// requests proceed without an identity; a missing cookie is always rejected.
	Strict      bool
	Revocations RevocationChecker
}

func unauthorized(c *gin.Context, result string) {
	metrics.AuthDecisions.WithLabelValues(result).Inc()
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
}

// CookieAuth returns a Gin middleware that verifies the session cookie and
// attaches the identity to the context. It is applied per route.
func CookieAuth(ver Verifier, opts AuthOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(CookieName)
		if err != nil || raw == "" {
			unauthorized(c, "missing")
			return
		}

		id, err := ver.Verify(raw)
		if err == nil && opts.Revocations != nil {
			revoked, rerr := opts.Revocations.IsRevoked(c.Request.Context(), raw)
			if rerr != nil {
				logger.Errorf("auth: revocation check failed: %v", rerr)
				unauthorized(c, "error")
				return
			}
			if revoked {
				unauthorized(c, "revoked")
				return
			}
		}
		if err != nil {
			logger.Warnf("auth: token rejected: %v", err)
			if opts.Strict {
				unauthorized(c, "invalid")
				return
			}
			metrics.AuthDecisions.WithLabelValues("anonymous").Inc()
			c.Next()
			return
		}

		metrics.AuthDecisions.WithLabelValues("allowed").Inc()
		c.Set(IdentityKey, id)
		c.Set(RawTokenKey, raw)
		c.Next()
	}
}

// IdentityFrom returns the identity attached by CookieAuth, if any.
func IdentityFrom(c *gin.Context) (*tokens.Identity, bool) {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return nil, false
	}
	id, ok := v.(*tokens.Identity)
	return id, ok && id != nil
}
