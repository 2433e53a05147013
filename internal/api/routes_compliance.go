package api

import (
	"github.com/gin-gonic/gin"

	"github.com/vigilohq/vigilo/internal/handlers"
)

func registerComplianceRoutes(api *gin.RouterGroup, svc *serviceSet) {
	complianceHandler := handlers.NewComplianceHandler(svc.compliance)

	api.GET("/reports/compliance", complianceHandler.Summary)
}
