package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vigilohq/vigilo/internal/services"
	"github.com/vigilohq/vigilo/pkg/response"
)

// VisitHandler manages visitor and vehicle gate log endpoints.
type VisitHandler struct {
	visits *services.VisitService
}

func NewVisitHandler(visits *services.VisitService) *VisitHandler {
	return &VisitHandler{visits: visits}
}

type visitorEntryRequest struct {
	SiteID      string `json:"site_id" validate:"required,uuid4"`
	VisitorName string `json:"visitor_name" validate:"required,max=200"`
	Phone       string `json:"phone" validate:"omitempty,max=20"`
	Purpose     string `json:"purpose" validate:"omitempty,max=500"`
	HostName    string `json:"host_name" validate:"omitempty,max=200"`
}

// POST /api/visitors
func (h *VisitHandler) VisitorEntry(c *gin.Context) {
	var req visitorEntryRequest
	if !bindAndValidate(c, &req) {
		return
	}

	entry, err := h.visits.RecordVisitorEntry(requestContext(c), services.VisitorEntryInput{
		SiteID:      req.SiteID,
		VisitorName: req.VisitorName,
		Phone:       req.Phone,
		Purpose:     req.Purpose,
		HostName:    req.HostName,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, entry)
}

// PUT /api/visitors/:id/exit
func (h *VisitHandler) VisitorExit(c *gin.Context) {
	entry, err := h.visits.RecordVisitorExit(requestContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, entry)
}

// GET /api/visitors
func (h *VisitHandler) ListVisitors(c *gin.Context) {
	entries, err := h.visits.ListVisitors(requestContext(c), c.Query("site_id"), parseIntQuery(c, "limit", 50))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, entries)
}

type vehicleEntryRequest struct {
	SiteID      string `json:"site_id" validate:"required,uuid4"`
	PlateNumber string `json:"plate_number" validate:"required,max=20"`
	VehicleType string `json:"vehicle_type" validate:"omitempty,max=50"`
	DriverName  string `json:"driver_name" validate:"omitempty,max=200"`
}

// POST /api/vehicles
func (h *VisitHandler) VehicleEntry(c *gin.Context) {
	var req vehicleEntryRequest
	if !bindAndValidate(c, &req) {
		return
	}

	entry, err := h.visits.RecordVehicleEntry(requestContext(c), services.VehicleEntryInput{
		SiteID:      req.SiteID,
		PlateNumber: req.PlateNumber,
		VehicleType: req.VehicleType,
		DriverName:  req.DriverName,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, entry)
}

// PUT /api/vehicles/:id/exit
func (h *VisitHandler) VehicleExit(c *gin.Context) {
	entry, err := h.visits.RecordVehicleExit(requestContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, entry)
}

// GET /api/vehicles
func (h *VisitHandler) ListVehicles(c *gin.Context) {
	entries, err := h.visits.ListVehicles(requestContext(c), c.Query("site_id"), parseIntQuery(c, "limit", 50))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, entries)
}
