package validator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type registerAgencyPayload struct {
	CompanyName        string `json:"company_name" validate:"required,max=200"`
	RegistrationNumber string `json:"registration_number" validate:"required,max=50"`
	Email              string `json:"email" validate:"required,email,max=100"`
	AdminUserName      string `json:"admin_username" validate:"required,min=3,max=50"`
}

func TestValidateStructPass(t *testing.T) {
	err := ValidateStruct(registerAgencyPayload{
		CompanyName:        "Shield Security Services",
		RegistrationNumber: "REG-2024-0042",
		Email:              "ops@shieldsec.example",
		AdminUserName:      "shield-admin",
	})
	require.NoError(t, err)
}

func TestValidateStructCollectsFailuresWithJSONNames(t *testing.T) {
	err := ValidateStruct(registerAgencyPayload{
		Email:         "not-an-email",
		AdminUserName: "ab",
	})
	require.Error(t, err)

	failures, ok := err.(ValidationErrors)
	require.True(t, ok)
	require.Len(t, failures, 4)

	byField := map[string]ValidationError{}
	for _, f := range failures {
		byField[f.Field] = f
	}

	require.Equal(t, "required", byField["company_name"].Tag)
	require.Equal(t, "required", byField["registration_number"].Tag)
	require.Equal(t, "email", byField["email"].Tag)
	require.Equal(t, "min", byField["admin_username"].Tag)
	require.Equal(t, "3", byField["admin_username"].Param)
}

func TestValidationErrorsMessage(t *testing.T) {
	errs := ValidationErrors{
		{Field: "admin_password", Tag: "min", Param: "6"},
		{Field: "phone", Tag: "required"},
	}
	require.Equal(t, "admin_password failed on min=6; phone failed on required", errs.Error())
}
