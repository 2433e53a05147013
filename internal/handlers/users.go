package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vigilohq/vigilo/internal/services"
	"github.com/vigilohq/vigilo/pkg/response"
)

// UserHandler manages tenant user administration endpoints.
type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	filters := services.UserFilters{
		Query:        c.Query("q"),
		DepartmentID: c.Query("department_id"),
		Page:         parseIntQuery(c, "page", 1),
		PageSize:     parseIntQuery(c, "per_page", 50),
	}
	if active := strings.TrimSpace(c.Query("active")); active != "" {
		isActive := active == "true"
		filters.Active = &isActive
	}

	users, total, err := h.users.List(requestContext(c), filters)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, users, &response.Meta{
		Page:    filters.Page,
		PerPage: filters.PageSize,
		Total:   int(total),
	})
}

// GET /api/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.users.GetByID(requestContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

type setRolesRequest struct {
	RoleCodes []string `json:"role_codes" validate:"required,min=1,dive,required"`
}

// PUT /api/users/:id/roles
func (h *UserHandler) SetRoles(c *gin.Context) {
	var req setRolesRequest
	if !bindAndValidate(c, &req) {
		return
	}

	user, err := h.users.SetRoles(requestContext(c), c.Param("id"), req.RoleCodes)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

type setUserActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// PUT /api/users/:id/active
func (h *UserHandler) SetActive(c *gin.Context) {
	var req setUserActiveRequest
	if !bindAndValidate(c, &req) {
		return
	}

	if err := h.users.SetActive(requestContext(c), c.Param("id"), *req.Active); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "user updated"})
}
