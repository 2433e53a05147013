package api

import (
	"github.com/gin-gonic/gin"

	"github.com/vigilohq/vigilo/internal/handlers"
	"github.com/vigilohq/vigilo/internal/middleware"
	"github.com/vigilohq/vigilo/internal/provisioning"
)

func registerAuditRoutes(api *gin.RouterGroup, svc *serviceSet) {
	auditHandler := handlers.NewAuditHandler(svc.audit)

	api.GET("/audit-logs", middleware.RequireRole(provisioning.RoleAdmin), auditHandler.List)
}
