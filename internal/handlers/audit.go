package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vigilohq/vigilo/internal/services"
	"github.com/vigilohq/vigilo/pkg/response"
)

// AuditHandler exposes tenant-scoped audit log queries.
type AuditHandler struct {
	audit *services.AuditService
}

func NewAuditHandler(audit *services.AuditService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// GET /api/audit-logs
func (h *AuditHandler) List(c *gin.Context) {
	opts := services.AuditListOptions{
		Page:     parseIntQuery(c, "page", 1),
		PageSize: parseIntQuery(c, "per_page", 50),
		Filters: services.AuditFilters{
			Action:   c.Query("action"),
			Result:   c.Query("result"),
			Resource: c.Query("resource"),
		},
	}
	if since := c.Query("since"); since != "" {
		if parsed, err := time.Parse(time.RFC3339, since); err == nil {
			opts.Filters.Since = &parsed
		}
	}
	if until := c.Query("until"); until != "" {
		if parsed, err := time.Parse(time.RFC3339, until); err == nil {
			opts.Filters.Until = &parsed
		}
	}

	logs, total, err := h.audit.List(requestContext(c), opts)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, logs, &response.Meta{
		Page:    opts.Page,
		PerPage: opts.PageSize,
		Total:   int(total),
	})
}
