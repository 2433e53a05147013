package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vigilohq/vigilo/internal/services"
	"github.com/vigilohq/vigilo/internal/tenantctx"
	"github.com/vigilohq/vigilo/pkg/response"
)

// IncidentHandler manages incident reporting endpoints.
type IncidentHandler struct {
	incidents *services.IncidentService
}

func NewIncidentHandler(incidents *services.IncidentService) *IncidentHandler {
	return &IncidentHandler{incidents: incidents}
}

type reportIncidentRequest struct {
	SiteID      string     `json:"site_id" validate:"required,uuid4"`
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description" validate:"omitempty,max=2000"`
	Severity    string     `json:"severity" validate:"omitempty,oneof=low medium high critical"`
	OccurredAt  *time.Time `json:"occurred_at"`
}

// POST /api/incidents
func (h *IncidentHandler) Report(c *gin.Context) {
	var req reportIncidentRequest
	if !bindAndValidate(c, &req) {
		return
	}

	identity, _ := tenantctx.FromContext(requestContext(c))

	input := services.ReportIncidentInput{
		SiteID:      req.SiteID,
		ReportedBy:  identity.UserID,
		Title:       req.Title,
		Description: req.Description,
		Severity:    req.Severity,
	}
	if req.OccurredAt != nil {
		input.OccurredAt = *req.OccurredAt
	}

	incident, err := h.incidents.Report(requestContext(c), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, incident)
}

type resolveIncidentRequest struct {
	Resolution string `json:"resolution" validate:"required,max=2000"`
}

// PUT /api/incidents/:id/resolve
func (h *IncidentHandler) Resolve(c *gin.Context) {
	var req resolveIncidentRequest
	if !bindAndValidate(c, &req) {
		return
	}

	incident, err := h.incidents.Resolve(requestContext(c), c.Param("id"), req.Resolution)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, incident)
}

// GET /api/incidents
func (h *IncidentHandler) List(c *gin.Context) {
	filters := services.IncidentFilters{
		SiteID:   c.Query("site_id"),
		Status:   c.Query("status"),
		Severity: c.Query("severity"),
		Page:     parseIntQuery(c, "page", 1),
		PageSize: parseIntQuery(c, "per_page", 50),
	}

	incidents, total, err := h.incidents.List(requestContext(c), filters)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, incidents, &response.Meta{
		Page:    filters.Page,
		PerPage: filters.PageSize,
		Total:   int(total),
	})
}
