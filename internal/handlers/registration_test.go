package handlers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	appvalidator "github.com/vigilohq/vigilo/pkg/validator"
)

func validRegistrationRequest() registerAgencyRequest {
	return registerAgencyRequest{
		CompanyName:        "Shield Security Services",
		RegistrationNumber: "REG-2026-001",
		Email:              "contact@shieldsec.example",
		Phone:              "+91-9876543210",
		AdminUserName:      "shield.admin",
		AdminEmail:         "admin@shieldsec.example",
		AdminPassword:      "secret-pass",
		AdminFirstName:     "Priya",
	}
}

func TestRegisterAgencyRequestValidRequestPasses(t *testing.T) {
	require.NoError(t, appvalidator.ValidateStruct(validRegistrationRequest()))
}

func TestRegisterAgencyRequestFieldBoundaries(t *testing.T) {
	failingField := func(t *testing.T, req registerAgencyRequest, field, tag string) {
		t.Helper()

		err := appvalidator.ValidateStruct(req)
		require.Error(t, err)

		var failures appvalidator.ValidationErrors
		require.ErrorAs(t, err, &failures)
		for _, failure := range failures {
			if failure.Field == field && failure.Tag == tag {
				return
			}
		}
		t.Fatalf("expected %s to fail on %s, got %v", field, tag, err)
	}

	t.Run("registration number capped at 50", func(t *testing.T) {
		req := validRegistrationRequest()
		req.RegistrationNumber = strings.Repeat("R", 51)
		failingField(t, req, "registration_number", "max")

		req.RegistrationNumber = strings.Repeat("R", 50)
		require.NoError(t, appvalidator.ValidateStruct(req))
	})

	t.Run("phone is required", func(t *testing.T) {
		req := validRegistrationRequest()
		req.Phone = ""
		failingField(t, req, "phone", "required")
	})

	t.Run("emails capped at 100", func(t *testing.T) {
		long := strings.Repeat("a", 92) + "@x.example"
		req := validRegistrationRequest()
		req.Email = long
		failingField(t, req, "email", "max")

		req = validRegistrationRequest()
		req.AdminEmail = long
		failingField(t, req, "admin_email", "max")
	})

	t.Run("admin username between 3 and 50", func(t *testing.T) {
		req := validRegistrationRequest()
		req.AdminUserName = "ab"
		failingField(t, req, "admin_username", "min")

		req.AdminUserName = strings.Repeat("u", 51)
		failingField(t, req, "admin_username", "max")

		req.AdminUserName = strings.Repeat("u", 50)
		require.NoError(t, appvalidator.ValidateStruct(req))
	})

	t.Run("admin password between 6 and 100", func(t *testing.T) {
		req := validRegistrationRequest()
		req.AdminPassword = "short"
		failingField(t, req, "admin_password", "min")

		req.AdminPassword = "secret"
		require.NoError(t, appvalidator.ValidateStruct(req))

		req.AdminPassword = strings.Repeat("p", 101)
		failingField(t, req, "admin_password", "max")

		req.AdminPassword = strings.Repeat("p", 100)
		require.NoError(t, appvalidator.ValidateStruct(req))
	})

	t.Run("company name capped at 200", func(t *testing.T) {
		req := validRegistrationRequest()
		req.CompanyName = strings.Repeat("c", 201)
		failingField(t, req, "company_name", "max")
	})
}
