package api

import (
	"github.com/gin-gonic/gin"

	"github.com/vigilohq/vigilo/internal/handlers"
)

func registerAttendanceRoutes(api *gin.RouterGroup, svc *serviceSet) {
	attendanceHandler := handlers.NewAttendanceHandler(svc.attendance)

	attendance := api.Group("/attendance")
	{
		attendance.POST("/check-in", attendanceHandler.CheckIn)
		attendance.POST("/check-out", attendanceHandler.CheckOut)
	}

	api.GET("/guards/:id/attendance", attendanceHandler.ListForGuard)
}
