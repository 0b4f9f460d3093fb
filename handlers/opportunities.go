package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/volunteerhub/volunteer-server/internal/volunteer"
)

// ListOpportunities returns every opportunity, latest deadline first.
func (h *VolunteerHandler) ListOpportunities(c *gin.Context) {
	out, err := h.svc.ListOpportunities(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetOpportunity responds with null when the id is unknown.
func (h *VolunteerHandler) GetOpportunity(c *gin.Context) {
	d, err := h.svc.GetOpportunity(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *VolunteerHandler) OpportunitiesByOwner(c *gin.Context) {
	email := c.Param("email")
	if !requireOwner(c, email) {
		return
	}
	out, err := h.svc.OpportunitiesByOwner(c.Request.Context(), email)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *VolunteerHandler) CreateOpportunity(c *gin.Context) {
	d, ok := bindDocument(c)
	if !ok {
		return
	}
	res, err := h.svc.CreateOpportunity(c.Request.Context(), d)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *VolunteerHandler) ReplaceOpportunity(c *gin.Context) {
	d, ok := bindDocument(c)
	if !ok {
		return
	}
	res, err := h.svc.ReplaceOpportunity(c.Request.Context(), c.Param("id"), d)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *VolunteerHandler) DeleteOpportunity(c *gin.Context) {
	res, err := h.svc.DeleteOpportunity(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// BrowseOpportunities serves /all-volunteer?size&page&search&filter.
func (h *VolunteerHandler) BrowseOpportunities(c *gin.Context) {
	page := volunteer.ParsePage(c.Query("page"), c.Query("size"))
	out, err := h.svc.BrowseOpportunities(c.Request.Context(), c.Query("search"), c.Query("filter"), page)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *VolunteerHandler) CountOpportunities(c *gin.Context) {
	n, err := h.svc.CountOpportunities(c.Request.Context(), c.Query("search"), c.Query("filter"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": n})
}
