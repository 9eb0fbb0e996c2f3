package analytics

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gymdesk/internal/api"
	"gymdesk/internal/auth"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// @Summary      Six-month revenue and signup analytics
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} analytics.Overview
// @Failure      401 {object} api.ErrorResponse
// @Router       /analytics [get]
func (h *Handler) Overview(c *gin.Context) {
	gymID, ok := auth.GetGymID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Gym not found in token"})
		return
	}

	overview, err := h.service.Overview(c.Request.Context(), gymID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch analytics"})
		return
	}

	c.JSON(http.StatusOK, overview)
}

// @Summary      Dashboard counters
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} analytics.Dashboard
// @Failure      401 {object} api.ErrorResponse
// @Router       /dashboard [get]
func (h *Handler) Dashboard(c *gin.Context) {
	gymID, ok := auth.GetGymID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Gym not found in token"})
		return
	}

	dashboard, err := h.service.Dashboard(c.Request.Context(), gymID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch dashboard"})
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
