package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	iauth "github.com/vigilohq/vigilo/internal/auth"
	"github.com/vigilohq/vigilo/internal/services"
	"github.com/vigilohq/vigilo/internal/tenantctx"
	"github.com/vigilohq/vigilo/pkg/errors"
	"github.com/vigilohq/vigilo/pkg/response"
)

// AuthHandler manages authentication flows.
type AuthHandler struct {
	users *services.UserService
	jwt   *iauth.JWTService
}

func NewAuthHandler(users *services.UserService, jwt *iauth.JWTService) *AuthHandler {
	return &AuthHandler{users: users, jwt: jwt}
}

type loginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	user, err := h.users.Authenticate(requestContext(c), req.Identifier, req.Password)
	if err != nil {
		// Normalise auth errors to 401
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	roleCodes := make([]string, 0, len(user.Roles))
	for _, role := range user.Roles {
		roleCodes = append(roleCodes, role.Code)
	}

	token, err := h.jwt.GenerateAccessToken(iauth.AccessTokenInput{
		UserID:    user.ID,
		TenantID:  user.TenantID,
		Username:  user.Username,
		RoleCodes: roleCodes,
	})
	if err != nil {
		response.Error(c, errors.ErrInternalServer)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"access_token": token,
		"expires_in":   int(h.jwt.AccessTokenTTL().Seconds()),
		"user": gin.H{
			"id":         user.ID,
			"tenant_id":  user.TenantID,
			"username":   user.Username,
			"email":      user.Email,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"roles":      roleCodes,
		},
	})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=128"`
}

// POST /api/auth/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if !bindAndValidate(c, &req) {
		return
	}

	identity, ok := tenantctx.FromContext(requestContext(c))
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	if err := h.users.ChangePassword(requestContext(c), identity.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "password updated"})
}

// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	identity, ok := tenantctx.FromContext(requestContext(c))
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	user, err := h.users.GetByID(requestContext(c), identity.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, user)
}
