package api

import (
	"github.com/gin-gonic/gin"

	"github.com/vigilohq/vigilo/internal/handlers"
	"github.com/vigilohq/vigilo/internal/middleware"
	"github.com/vigilohq/vigilo/internal/provisioning"
)

func registerUserRoutes(api *gin.RouterGroup, svc *serviceSet) {
	userHandler := handlers.NewUserHandler(svc.users)
	requireAdmin := middleware.RequireRole(provisioning.RoleAdmin)

	users := api.Group("/users")
	users.Use(requireAdmin)
	{
		users.GET("", userHandler.List)
		users.GET("/:id", userHandler.Get)
		users.PUT("/:id/roles", userHandler.SetRoles)
		users.PUT("/:id/active", userHandler.SetActive)
	}
}
