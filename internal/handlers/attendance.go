package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vigilohq/vigilo/internal/services"
	"github.com/vigilohq/vigilo/pkg/response"
)

// AttendanceHandler manages shift check-in and check-out endpoints.
type AttendanceHandler struct {
	attendance *services.AttendanceService
}

func NewAttendanceHandler(attendance *services.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

type checkInRequest struct {
	GuardID string `json:"guard_id" validate:"required,uuid4"`
	SiteID  string `json:"site_id" validate:"required,uuid4"`
	Notes   string `json:"notes" validate:"omitempty,max=500"`
}

// POST /api/attendance/check-in
func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	var req checkInRequest
	if !bindAndValidate(c, &req) {
		return
	}

	record, err := h.attendance.CheckIn(requestContext(c), services.CheckInInput{
		GuardID: req.GuardID,
		SiteID:  req.SiteID,
		Notes:   req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, record)
}

type checkOutRequest struct {
	GuardID string `json:"guard_id" validate:"required,uuid4"`
}

// POST /api/attendance/check-out
func (h *AttendanceHandler) CheckOut(c *gin.Context) {
	var req checkOutRequest
	if !bindAndValidate(c, &req) {
		return
	}

	record, err := h.attendance.CheckOut(requestContext(c), req.GuardID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, record)
}

// GET /api/guards/:id/attendance
func (h *AttendanceHandler) ListForGuard(c *gin.Context) {
	records, err := h.attendance.ListForGuard(requestContext(c), c.Param("id"), parseIntQuery(c, "limit", 50))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, records)
}
