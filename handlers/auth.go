package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/volunteerhub/volunteer-server/internal/sessions"
	"github.com/volunteerhub/volunteer-server/internal/tokens"
	"github.com/volunteerhub/volunteer-server/pkg/logger"
	"github.com/volunteerhub/volunteer-server/pkg/middleware"
)

// AuthHandler issues and clears the session cookie.
type AuthHandler struct {
	codec      *tokens.Codec
	blacklist  *sessions.Blacklist
	production bool
}

func NewAuthHandler(codec *tokens.Codec, bl *sessions.Blacklist, production bool) *AuthHandler {
	return &AuthHandler{codec: codec, blacklist: bl, production: production}
}

func (h *AuthHandler) Register(r gin.IRouter) {
	r.POST("/jwt", h.Issue)
	r.GET("/logout", h.Logout)
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	if h.production {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteStrictMode)
	}
	c.SetCookie(middleware.CookieName, value, maxAge, "/", "", h.production, true)
}

// Issue signs the posted identity payload and sets it as the session cookie.
func (h *AuthHandler) Issue(c *gin.Context) {
	var claims map[string]interface{}
	if err := c.ShouldBindJSON(&claims); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid identity payload"})
		return
	}
	raw, err := h.codec.Issue(claims)
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.setCookie(c, raw, int(h.codec.TTL().Seconds()))
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Logout clears the cookie. When a blacklist is configured the presented
// token is also revoked until it expires; a failed revocation is logged and
// does not keep the cookie alive.
func (h *AuthHandler) Logout(c *gin.Context) {
	if raw, err := c.Cookie(middleware.CookieName); err == nil && raw != "" && h.blacklist.Enabled() {
		if id, err := h.codec.Verify(raw); err == nil {
			if err := h.blacklist.Revoke(c.Request.Context(), raw, time.Until(id.ExpiresAt)); err != nil {
				logger.Errorf("logout: failed to revoke token for %s: %v", id.Email, err)
			}
		}
	}
	h.setCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
