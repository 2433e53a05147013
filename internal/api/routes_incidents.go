package api

import (
	"github.com/gin-gonic/gin"

	"github.com/vigilohq/vigilo/internal/handlers"
)

func registerIncidentRoutes(api *gin.RouterGroup, svc *serviceSet) {
	incidentHandler := handlers.NewIncidentHandler(svc.incidents)

	incidents := api.Group("/incidents")
	{
		incidents.POST("", incidentHandler.Report)
		incidents.GET("", incidentHandler.List)
		incidents.PUT("/:id/resolve", incidentHandler.Resolve)
	}
}
