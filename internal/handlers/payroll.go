package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vigilohq/vigilo/internal/services"
	appErrors "github.com/vigilohq/vigilo/pkg/errors"
	"github.com/vigilohq/vigilo/pkg/response"
)

// PayrollHandler manages wage computation endpoints.
type PayrollHandler struct {
	payroll *services.PayrollService
}

func NewPayrollHandler(payroll *services.PayrollService) *PayrollHandler {
	return &PayrollHandler{payroll: payroll}
}

type generatePayrollRequest struct {
	PeriodStart time.Time `json:"period_start" validate:"required"`
	PeriodEnd   time.Time `json:"period_end" validate:"required"`
}

// POST /api/payroll/generate
func (h *PayrollHandler) Generate(c *gin.Context) {
	var req generatePayrollRequest
	if !bindAndValidate(c, &req) {
		return
	}

	entries, err := h.payroll.GeneratePeriod(requestContext(c), req.PeriodStart, req.PeriodEnd)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, entries)
}

// GET /api/payroll?period_start=2026-03-01
func (h *PayrollHandler) ListPeriod(c *gin.Context) {
	periodStart, err := time.Parse("2006-01-02", c.Query("period_start"))
	if err != nil {
		response.Error(c, appErrors.NewBadRequest("period_start must be a date in YYYY-MM-DD form"))
		return
	}

	entries, err := h.payroll.ListPeriod(requestContext(c), periodStart)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, entries)
}
