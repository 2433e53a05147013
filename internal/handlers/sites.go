package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vigilohq/vigilo/internal/services"
	"github.com/vigilohq/vigilo/pkg/response"
)

// SiteHandler manages client site endpoints.
type SiteHandler struct {
	sites *services.SiteService
}

func NewSiteHandler(sites *services.SiteService) *SiteHandler {
	return &SiteHandler{sites: sites}
}

type createSiteRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	ClientName  string `json:"client_name" validate:"omitempty,max=200"`
	AddressLine string `json:"address_line" validate:"omitempty,max=300"`
	City        string `json:"city" validate:"omitempty,max=100"`
}

// POST /api/sites
func (h *SiteHandler) Create(c *gin.Context) {
	var req createSiteRequest
	if !bindAndValidate(c, &req) {
		return
	}

	site, err := h.sites.Create(requestContext(c), services.CreateSiteInput{
		Name:        req.Name,
		ClientName:  req.ClientName,
		AddressLine: req.AddressLine,
		City:        req.City,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, site)
}

// GET /api/sites/:id
func (h *SiteHandler) Get(c *gin.Context) {
	site, err := h.sites.GetByID(requestContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, site)
}

// GET /api/sites
func (h *SiteHandler) List(c *gin.Context) {
	sites, err := h.sites.List(requestContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, sites)
}
