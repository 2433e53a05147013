package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vigilohq/vigilo/internal/provisioning"
	"github.com/vigilohq/vigilo/pkg/response"
)

// RegistrationHandler exposes the public agency onboarding endpoint.
type RegistrationHandler struct {
	provisioner *provisioning.Provisioner
}

func NewRegistrationHandler(provisioner *provisioning.Provisioner) *RegistrationHandler {
	return &RegistrationHandler{provisioner: provisioner}
}

type registerAgencyRequest struct {
	CompanyName        string `json:"company_name" validate:"required,max=200"`
	RegistrationNumber string `json:"registration_number" validate:"required,max=50"`
	Email              string `json:"email" validate:"required,email,max=100"`
	Phone              string `json:"phone" validate:"required,max=20"`
	AddressLine        string `json:"address_line" validate:"omitempty,max=300"`
	City               string `json:"city" validate:"omitempty,max=100"`
	State              string `json:"state" validate:"omitempty,max=100"`
	Country            string `json:"country" validate:"omitempty,max=100"`
	PostalCode         string `json:"postal_code" validate:"omitempty,max=20"`

	AdminUserName  string `json:"admin_username" validate:"required,min=3,max=50"`
	AdminEmail     string `json:"admin_email" validate:"required,email,max=100"`
	AdminPassword  string `json:"admin_password" validate:"required,min=6,max=100"`
	AdminFirstName string `json:"admin_first_name" validate:"required,max=100"`
	AdminLastName  string `json:"admin_last_name" validate:"omitempty,max=100"`
	AdminPhone     string `json:"admin_phone" validate:"omitempty,max=20"`
}

// POST /api/agencies/register
func (h *RegistrationHandler) Register(c *gin.Context) {
	var req registerAgencyRequest
	if !bindAndValidate(c, &req) {
		return
	}

	result, err := h.provisioner.RegisterAgency(requestContext(c), provisioning.RegisterAgencyInput{
		CompanyName:        req.CompanyName,
		RegistrationNumber: req.RegistrationNumber,
		Email:              req.Email,
		Phone:              req.Phone,
		AddressLine:        req.AddressLine,
		City:               req.City,
		State:              req.State,
		Country:            req.Country,
		PostalCode:         req.PostalCode,

		AdminUserName:  req.AdminUserName,
		AdminEmail:     req.AdminEmail,
		AdminPassword:  req.AdminPassword,
		AdminFirstName: req.AdminFirstName,
		AdminLastName:  req.AdminLastName,
		AdminPhone:     req.AdminPhone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}
