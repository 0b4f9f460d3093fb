package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/volunteerhub/volunteer-server/internal/tokens"
	"github.com/volunteerhub/volunteer-server/internal/volunteer"
	"github.com/volunteerhub/volunteer-server/pkg/logger"
	"github.com/volunteerhub/volunteer-server/pkg/middleware"
)

// ErrorHandler turns errors recorded with c.Error into a response. Client
// errors carry their message; anything else is logged and reported as a
// bare 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		switch {
		case errors.Is(err, volunteer.ErrInvalidID):
			c.JSON(http.StatusBadRequest, gin.H{"message": volunteer.ErrInvalidID.Error()})
		case errors.Is(err, volunteer.ErrInvalidDocument),
			errors.Is(err, volunteer.ErrInvalidQuery),
			errors.Is(err, tokens.ErrMissingEmail):
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		default:
			logger.WithFields(logrus.Fields{
				"path":       c.Request.URL.Path,
				"request_id": c.GetString(middleware.RequestIDKey),
			}).WithError(err).Error("unhandled error")
			c.String(http.StatusInternalServerError, "Internal Server Error")
		}
	}
}

// bindDocument decodes a JSON object body. Anything that is not an object is
// an invalid document.
func bindDocument(c *gin.Context) (volunteer.Document, bool) {
	var d volunteer.Document
	if err := c.ShouldBindJSON(&d); err != nil {
		_ = c.Error(fmt.Errorf("%w: %v", volunteer.ErrInvalidDocument, err))
		return nil, false
	}
	if d == nil {
		d = volunteer.Document{}
	}
	return d, true
}

// requireOwner enforces that the gate attached an identity whose email
// matches the path email. It writes the rejection itself.
func requireOwner(c *gin.Context, email string) bool {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
		return false
	}
	if id.Email != email {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "forbidden access"})
		return false
	}
	return true
}
