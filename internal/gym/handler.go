package gym

import (
	"errors"
	"net/http"

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

// @Summary      Get gym settings and branding
// @Tags         gym
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} gym.Gym
// @Failure      401 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /gym [get]
func (h *Handler) Get(c *gin.Context) {
	gymID, ok := auth.GetGymID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Gym not found in token"})
		return
	}

	g, err := h.service.Get(c.Request.Context(), gymID)
	if err != nil {
		if errors.Is(err, ErrGymNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Gym not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch gym"})
		return
	}

	c.JSON(http.StatusOK, g)
}

// @Summary      Update gym settings
// @Tags         gym
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body gym.UpdateSettingsRequest true "Settings payload"
// @Success      200 {object} gym.Gym
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /gym [put]
func (h *Handler) UpdateSettings(c *gin.Context) {
	gymID, ok := auth.GetGymID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Gym not found in token"})
		return
	}

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	g, err := h.service.UpdateSettings(c.Request.Context(), gymID, req)
	if err != nil {
		if errors.Is(err, ErrGymNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Gym not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update settings"})
		return
	}

	c.JSON(http.StatusOK, g)
}

// @Summary      Upload gym logo
// @Tags         gym
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        logo formData file true "Logo image (png/jpeg/webp)"
// @Success      200 {object} gym.Gym
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /gym/logo [post]
func (h *Handler) UploadLogo(c *gin.Context) {
	gymID, ok := auth.GetGymID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Gym not found in token"})
		return
	}

	fileHeader, err := c.FormFile("logo")
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "logo file required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "failed to read logo file"})
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	g, err := h.service.UploadLogo(c.Request.Context(), gymID, fileHeader.Filename, contentType, file, fileHeader.Size)
	if err != nil {
		if errors.Is(err, ErrUnsupportedLogo) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "unsupported logo format"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to upload logo"})
		return
	}

	c.JSON(http.StatusOK, g)
}
