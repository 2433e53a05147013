package api

import (
	"github.com/gin-gonic/gin"

	"github.com/vigilohq/vigilo/internal/handlers"
	"github.com/vigilohq/vigilo/internal/middleware"
	"github.com/vigilohq/vigilo/internal/provisioning"
)

func registerPayrollRoutes(api *gin.RouterGroup, svc *serviceSet) {
	payrollHandler := handlers.NewPayrollHandler(svc.payroll)
	requireFinance := middleware.RequireRole(provisioning.RoleAdmin, provisioning.RoleAccounts)

	payroll := api.Group("/payroll")
	{
		payroll.POST("/generate", requireFinance, payrollHandler.Generate)
		payroll.GET("", requireFinance, payrollHandler.ListPeriod)
	}
}
