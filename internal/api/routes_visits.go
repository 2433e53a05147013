package api

import (
	"github.com/gin-gonic/gin"

	"github.com/vigilohq/vigilo/internal/handlers"
)

func registerVisitRoutes(api *gin.RouterGroup, svc *serviceSet) {
	visitHandler := handlers.NewVisitHandler(svc.visits)

	visitors := api.Group("/visitors")
	{
		visitors.POST("", visitHandler.VisitorEntry)
		visitors.GET("", visitHandler.ListVisitors)
		visitors.PUT("/:id/exit", visitHandler.VisitorExit)
	}

	vehicles := api.Group("/vehicles")
	{
		vehicles.POST("", visitHandler.VehicleEntry)
		vehicles.GET("", visitHandler.ListVehicles)
		vehicles.PUT("/:id/exit", visitHandler.VehicleExit)
	}
}
