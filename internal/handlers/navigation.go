package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vigilohq/vigilo/internal/services"
	"github.com/vigilohq/vigilo/pkg/response"
)

// NavigationHandler serves the caller's granted menu tree.
type NavigationHandler struct {
	navigation *services.NavigationService
}

func NewNavigationHandler(navigation *services.NavigationService) *NavigationHandler {
	return &NavigationHandler{navigation: navigation}
}

// GET /api/navigation
func (h *NavigationHandler) Tree(c *gin.Context) {
	tree, err := h.navigation.TreeForCaller(requestContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, tree)
}
