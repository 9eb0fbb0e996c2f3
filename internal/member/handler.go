package member

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"gymdesk/internal/api"
	"gymdesk/internal/auth"
	"gymdesk/internal/invoice"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

type memberResponse struct {
	Member  *MemberWithServices `json:"member"`
	Invoice *invoice.Invoice    `json:"invoice,omitempty"`
}

type renewResponse struct {
	Member  *Member          `json:"member"`
	Invoice *invoice.Invoice `json:"invoice,omitempty"`
}

type servicesResponse struct {
	Services []MemberService  `json:"services"`
	Invoice  *invoice.Invoice `json:"invoice,omitempty"`
}

type serviceRenewResponse struct {
	Service *MemberService   `json:"service"`
	Invoice *invoice.Invoice `json:"invoice,omitempty"`
}

// @Summary      Register a member
// @Tags         members
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body member.CreateMemberRequest true "Member payload"
// @Success      201 {object} member.memberResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Router       /members [post]
func (h *Handler) Create(c *gin.Context) {
	gymID, ok := auth.GetGymID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Gym not found in token"})
		return
	}

	var req CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	m, inv, err := h.service.Create(c.Request.Context(), gymID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidPlanType), errors.Is(err, ErrInvalidDate):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create member"})
		}
		return
	}

	c.JSON(http.StatusCreated, memberResponse{Member: m, Invoice: inv})
}

// @Summary      List members
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Param        search query string false "Match against name or phone"
// @Param        status query string false "Filter by membership status"
// @Success      200 {array} member.MemberWithServices
// @Failure      401 {object} api.ErrorResponse
// @Router       /members [get]
func (h *Handler) List(c *gin.Context) {
	gymID, ok := auth.GetGymID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Gym not found in token"})
		return
	}

	status := Status(c.Query("status"))
	if status != "" && !ValidStatus(status) {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid status filter"})
		return
	}

	members, err := h.service.List(c.Request.Context(), gymID, c.Query("search"), status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch members"})
		return
	}

	c.JSON(http.StatusOK, members)
}

// @Summary      Export members as CSV
// @Tags         members
// @Produce      text/csv
// @Security     BearerAuth
// @Success      200 {file} binary
// @Failure      401 {object} api.ErrorResponse
// @Router       /members/export [get]
func (h *Handler) ExportCSV(c *gin.Context) {
	gymID, ok := auth.GetGymID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Gym not found in token"})
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+ExportFilename(time.Now())+`"`)

	if err := h.service.WriteCSV(c.Request.Context(), gymID, c.Writer); err != nil {
		// Headers may already be out; nothing sensible left to send.
		c.Status(http.StatusInternalServerError)
	}
}

// @Summary      Get a member with services
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Param        memberID path int true "Member ID"
// @Success      200 {object} member.MemberWithServices
// @Failure      401 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /members/{memberID} [get]
func (h *Handler) Get(c *gin.Context) {
	gymID, ok := auth.GetGymID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Gym not found in token"})
		return
	}

	id, err := strconv.Atoi(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid member ID"})
		return
	}

	m, err := h.service.Get(c.Request.Context(), gymID, id)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch member"})
		return
	}

	c.JSON(http.StatusOK, m)
}

// @Summary      Update member profile
// @Tags         members
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        memberID path int true "Member ID"
// @Param        request body member.UpdateMemberRequest true "Profile payload"
// @Success      200 {object} member.Member
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /members/{memberID} [put]
func (h *Handler) Update(c *gin.Context) {
	gymID, ok := auth.GetGymID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Gym not found in token"})
		return
	}

	id, err := strconv.Atoi(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid member ID"})
		return
	}

	var req UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	m, err := h.service.UpdateProfile(c.Request.Context(), gymID, id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMemberNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Member not found"})
		case errors.Is(err, ErrInvalidDate):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update member"})
		}
		return
	}

	c.JSON(http.StatusOK, m)
}

// @Summary      Delete a member
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Param        memberID path int true "Member ID"
// @Success      200 {object} api.MessageResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /members/{memberID} [delete]
func (h *Handler) Delete(c *gin.Context) {
	gymID, ok := auth.GetGymID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Gym not found in token"})
		return
	}

	id, err := strconv.Atoi(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid member ID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), gymID, id); err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to delete member"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Member deleted"})
}

// @Summary      Renew a membership
// @Tags         members
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        memberID path int true "Member ID"
// @Param        request body member.RenewRequest true "Renewal payload"
// @Success      200 {object} member.renewResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /members/{memberID}/renew [post]
func (h *Handler) Renew(c *gin.Context) {
	gymID, ok := auth.GetGymID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Gym not found in token"})
		return
	}

	id, err := strconv.Atoi(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid member ID"})
		return
	}

	var req RenewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	m, inv, err := h.service.Renew(c.Request.Context(), gymID, id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMemberNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Member not found"})
		case errors.Is(err, ErrNotDueForRenewal):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrInvalidPlanType), errors.Is(err, ErrInvalidDate):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to renew membership"})
		}
		return
	}

	c.JSON(http.StatusOK, renewResponse{Member: m, Invoice: inv})
}

// @Summary      Add services to a member
// @Tags         members
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        memberID path int true "Member ID"
// @Param        request body member.AddServicesRequest true "Services payload"
// @Success      201 {object} member.servicesResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /members/{memberID}/services [post]
func (h *Handler) AddServices(c *gin.Context) {
	gymID, ok := auth.GetGymID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Gym not found in token"})
		return
	}

	id, err := strconv.Atoi(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid member ID"})
		return
	}

	var req AddServicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	services, inv, err := h.service.AddServices(c.Request.Context(), gymID, id, req)
	if err != nil {
		var dup *DuplicateServiceError
		switch {
		case errors.Is(err, ErrMemberNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Member not found"})
		case errors.Is(err, ErrDuplicatePT):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
		case errors.As(err, &dup):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: dup.Error()})
		case errors.Is(err, ErrInvalidDate):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to add services"})
		}
		return
	}

	c.JSON(http.StatusCreated, servicesResponse{Services: services, Invoice: inv})
}

// @Summary      Renew a personal training service
// @Tags         members
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        memberID path int true "Member ID"
// @Param        serviceID path int true "Service ID"
// @Param        request body member.RenewServiceRequest true "Renewal payload"
// @Success      200 {object} member.serviceRenewResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /members/{memberID}/services/{serviceID}/renew [post]
func (h *Handler) RenewService(c *gin.Context) {
	gymID, ok := auth.GetGymID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Gym not found in token"})
		return
	}

	memberID, err := strconv.Atoi(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid member ID"})
		return
	}

	serviceID, err := strconv.Atoi(c.Param("serviceID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid service ID"})
		return
	}

	var req RenewServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	svc, inv, err := h.service.RenewPTService(c.Request.Context(), gymID, memberID, serviceID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMemberNotFound), errors.Is(err, ErrServiceNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrNotPTService), errors.Is(err, ErrInvalidDate):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to renew service"})
		}
		return
	}

	c.JSON(http.StatusOK, serviceRenewResponse{Service: svc, Invoice: inv})
}

// @Summary      List personal training members
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} member.PTRosterEntry
// @Failure      401 {object} api.ErrorResponse
// @Router       /pt-members [get]
func (h *Handler) PTRoster(c *gin.Context) {
	gymID, ok := auth.GetGymID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Gym not found in token"})
		return
	}

	roster, err := h.service.PTRoster(c.Request.Context(), gymID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch PT members"})
		return
	}

	c.JSON(http.StatusOK, roster)
}
