package api

import (
	"github.com/gin-gonic/gin"

	"github.com/vigilohq/vigilo/internal/handlers"
)

func registerSiteRoutes(api *gin.RouterGroup, svc *serviceSet) {
	siteHandler := handlers.NewSiteHandler(svc.sites)

	sites := api.Group("/sites")
	{
		sites.POST("", siteHandler.Create)
		sites.GET("", siteHandler.List)
		sites.GET("/:id", siteHandler.Get)
	}
}
