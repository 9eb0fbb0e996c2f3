package invoice

import (
	"errors"
	"net/http"
	"strconv"

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

// @Summary      List invoices grouped by member
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        member_id query int false "Filter by member"
// @Success      200 {array} invoice.MemberGroup
// @Failure      401 {object} api.ErrorResponse
// @Router       /invoices [get]
func (h *Handler) List(c *gin.Context) {
	gymID, ok := auth.GetGymID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Gym not found in token"})
		return
	}

	memberID := 0
	if raw := c.Query("member_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid member_id"})
			return
		}
		memberID = id
	}

	groups, err := h.service.ListGrouped(c.Request.Context(), gymID, memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch invoices"})
		return
	}

	c.JSON(http.StatusOK, groups)
}

// @Summary      Download invoice PDF
// @Tags         invoices
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        invoiceID path int true "Invoice ID"
// @Success      200 {file} binary
// @Failure      401 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /invoices/{invoiceID}/pdf [get]
func (h *Handler) DownloadPDF(c *gin.Context) {
	gymID, ok := auth.GetGymID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Gym not found in token"})
		return
	}

	id, err := strconv.Atoi(c.Param("invoiceID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid invoice ID"})
		return
	}

	filename, content, err := h.service.RenderPDF(c.Request.Context(), gymID, id)
	if err != nil {
		if errors.Is(err, ErrInvoiceNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Invoice not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to generate PDF"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", content)
}

// @Summary      Email invoice PDF to a recipient
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        invoiceID path int true "Invoice ID"
// @Param        request body invoice.SendEmailRequest true "Recipient"
// @Success      202 {object} api.MessageResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /invoices/{invoiceID}/email [post]
func (h *Handler) SendEmail(c *gin.Context) {
	gymID, ok := auth.GetGymID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Gym not found in token"})
		return
	}

	id, err := strconv.Atoi(c.Param("invoiceID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid invoice ID"})
		return
	}

	var req SendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.service.SendEmail(c.Request.Context(), gymID, id, req); err != nil {
		if errors.Is(err, ErrInvoiceNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Invoice not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to send email"})
		return
	}

	c.JSON(http.StatusAccepted, api.MessageResponse{Message: "Invoice email queued"})
}

// @Summary      Get WhatsApp share link for an invoice
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        invoiceID path int true "Invoice ID"
// @Success      200 {object} api.LinkResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      422 {object} api.ErrorResponse
// @Router       /invoices/{invoiceID}/whatsapp [get]
func (h *Handler) WhatsAppLink(c *gin.Context) {
	gymID, ok := auth.GetGymID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Gym not found in token"})
		return
	}

	id, err := strconv.Atoi(c.Param("invoiceID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid invoice ID"})
		return
	}

	link, err := h.service.WhatsAppLink(c.Request.Context(), gymID, id)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvoiceNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Invoice not found"})
		case errors.Is(err, ErrNoPhoneNumber):
			c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: "Member has no phone number"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to build WhatsApp link"})
		}
		return
	}

	c.JSON(http.StatusOK, api.LinkResponse{URL: link})
}
