package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vigilohq/vigilo/internal/services"
	"github.com/vigilohq/vigilo/pkg/response"
)

// ComplianceHandler serves the compliance summary report.
type ComplianceHandler struct {
	compliance *services.ComplianceService
}

func NewComplianceHandler(compliance *services.ComplianceService) *ComplianceHandler {
	return &ComplianceHandler{compliance: compliance}
}

// GET /api/reports/compliance
func (h *ComplianceHandler) Summary(c *gin.Context) {
	var opts services.ComplianceOptions
	if supervisorID := strings.TrimSpace(c.Query("supervisor_id")); supervisorID != "" {
		opts.SupervisorID = &supervisorID
	}

	summary, err := h.compliance.Summary(requestContext(c), opts)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, summary)
}
