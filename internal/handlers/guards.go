package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vigilohq/vigilo/internal/services"
	"github.com/vigilohq/vigilo/pkg/response"
)

// GuardHandler manages the guard roster endpoints.
type GuardHandler struct {
	guards *services.GuardService
}

func NewGuardHandler(guards *services.GuardService) *GuardHandler {
	return &GuardHandler{guards: guards}
}

type createGuardRequest struct {
	EmployeeCode string     `json:"employee_code" validate:"required,max=50"`
	FirstName    string     `json:"first_name" validate:"required,max=100"`
	LastName     string     `json:"last_name" validate:"omitempty,max=100"`
	Phone        string     `json:"phone" validate:"omitempty,max=20"`
	SupervisorID *string    `json:"supervisor_id" validate:"omitempty,uuid4"`
	HourlyRate   float64    `json:"hourly_rate" validate:"gte=0"`
	JoinedAt     *time.Time `json:"joined_at"`
}

// POST /api/guards
func (h *GuardHandler) Create(c *gin.Context) {
	var req createGuardRequest
	if !bindAndValidate(c, &req) {
		return
	}

	guard, err := h.guards.Create(requestContext(c), services.CreateGuardInput{
		EmployeeCode: req.EmployeeCode,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		SupervisorID: req.SupervisorID,
		HourlyRate:   req.HourlyRate,
		JoinedAt:     req.JoinedAt,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, guard)
}

// GET /api/guards/:id
func (h *GuardHandler) Get(c *gin.Context) {
	guard, err := h.guards.GetByID(requestContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, guard)
}

// GET /api/guards
func (h *GuardHandler) List(c *gin.Context) {
	opts := services.ListGuardsOptions{
		Page:     parseIntQuery(c, "page", 1),
		PageSize: parseIntQuery(c, "per_page", 50),
	}
	if supervisorID := strings.TrimSpace(c.Query("supervisor_id")); supervisorID != "" {
		opts.Filters.SupervisorID = &supervisorID
	}
	if active := strings.TrimSpace(c.Query("active")); active != "" {
		isActive := active == "true"
		opts.Filters.IsActive = &isActive
	}
	opts.Filters.Query = c.Query("q")

	guards, total, err := h.guards.List(requestContext(c), opts)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, guards, &response.Meta{
		Page:    opts.Page,
		PerPage: opts.PageSize,
		Total:   int(total),
	})
}

type assignSupervisorRequest struct {
	SupervisorID *string `json:"supervisor_id" validate:"omitempty,uuid4"`
}

// PUT /api/guards/:id/supervisor
func (h *GuardHandler) AssignSupervisor(c *gin.Context) {
	var req assignSupervisorRequest
	if !bindAndValidate(c, &req) {
		return
	}

	guard, err := h.guards.AssignSupervisor(requestContext(c), c.Param("id"), req.SupervisorID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, guard)
}

type setActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// PUT /api/guards/:id/active
func (h *GuardHandler) SetActive(c *gin.Context) {
	var req setActiveRequest
	if !bindAndValidate(c, &req) {
		return
	}

	if err := h.guards.SetActive(requestContext(c), c.Param("id"), *req.Active); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "guard updated"})
}
