package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/volunteerhub/volunteer-server/internal/volunteer/service"
)

// VolunteerHandler serves opportunity and application routes.
type VolunteerHandler struct {
	svc *service.Service
}

func NewVolunteerHandler(svc *service.Service) *VolunteerHandler {
	return &VolunteerHandler{svc: svc}
}

// Register mounts every route. gate is applied only to the routes that
// need an identity.
func (h *VolunteerHandler) Register(r gin.IRouter, gate gin.HandlerFunc) {
	r.GET("/volunteer", h.ListOpportunities)
	r.GET("/volunteer/:id", h.GetOpportunity)
	r.GET("/update/:id", h.GetOpportunity)
	r.GET("/volunteers/:email", gate, h.OpportunitiesByOwner)
	r.POST("/volunteerpost", h.CreateOpportunity)
	r.PUT("/update/:id", h.ReplaceOpportunity)
	r.DELETE("/volunteers/:id", h.DeleteOpportunity)
	r.GET("/all-volunteer", h.BrowseOpportunities)
	r.GET("/volunteer-count", h.CountOpportunities)

	r.POST("/beavollunteer", h.CreateApplication)
	r.GET("/be-a-volunteer/:email", gate, h.ApplicationsByApplicant)
	r.DELETE("/req-volunteer/:id", h.DeleteApplication)
	r.GET("/applied-post", gate, h.SearchApplications)
}
