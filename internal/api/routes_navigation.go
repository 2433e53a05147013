package api

import (
	"github.com/gin-gonic/gin"

	"github.com/vigilohq/vigilo/internal/handlers"
)

func registerNavigationRoutes(api *gin.RouterGroup, svc *serviceSet) {
	navigationHandler := handlers.NewNavigationHandler(svc.navigation)

	api.GET("/navigation", navigationHandler.Tree)
}
