package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/volunteerhub/volunteer-server/internal/volunteer"
	"github.com/volunteerhub/volunteer-server/pkg/middleware"
)

const maxQueryBody = 64 << 10

func (h *VolunteerHandler) CreateApplication(c *gin.Context) {
	d, ok := bindDocument(c)
	if !ok {
		return
	}
	res, err := h.svc.CreateApplication(c.Request.Context(), d)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *VolunteerHandler) ApplicationsByApplicant(c *gin.Context) {
	email := c.Param("email")
	if !requireOwner(c, email) {
		return
	}
	out, err := h.svc.ApplicationsByApplicant(c.Request.Context(), email)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *VolunteerHandler) DeleteApplication(c *gin.Context) {
	res, err := h.svc.DeleteApplication(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// SearchApplications matches the caller's own applications against an
// exact-match query taken from the JSON body or, when the body is empty,
// from the URL query string.
func (h *VolunteerHandler) SearchApplications(c *gin.Context) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
		return
	}
	q, err := searchQuery(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	out, err := h.svc.SearchApplications(c.Request.Context(), id.Email, q)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func searchQuery(c *gin.Context) (map[string]interface{}, error) {
	q := map[string]interface{}{}
	if c.Request.Body != nil {
		body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxQueryBody))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", volunteer.ErrInvalidQuery, err)
		}
		if len(body) > 0 {
			if err := json.Unmarshal(body, &q); err != nil {
				return nil, fmt.Errorf("%w: %v", volunteer.ErrInvalidQuery, err)
			}
			return q, nil
		}
	}
	for k, v := range c.Request.URL.Query() {
		if len(v) > 0 {
			q[k] = v[0]
		}
	}
	return q, nil
}
