package api

import (
	"github.com/gin-gonic/gin"

	"github.com/vigilohq/vigilo/internal/handlers"
)

func registerGuardRoutes(api *gin.RouterGroup, svc *serviceSet) {
	guardHandler := handlers.NewGuardHandler(svc.guards)
	trainingHandler := handlers.NewTrainingHandler(svc.training)

	guards := api.Group("/guards")
	{
		guards.POST("", guardHandler.Create)
		guards.GET("", guardHandler.List)
		guards.GET("/:id", guardHandler.Get)
		guards.PUT("/:id/supervisor", guardHandler.AssignSupervisor)
		guards.PUT("/:id/active", guardHandler.SetActive)

		guards.POST("/:id/training-records", trainingHandler.AddRecord)
		guards.GET("/:id/training-records", trainingHandler.ListRecords)
		guards.POST("/:id/documents", trainingHandler.AddDocument)
		guards.GET("/:id/documents", trainingHandler.ListDocuments)
	}

	api.DELETE("/training-records/:id", trainingHandler.DeactivateRecord)
}
