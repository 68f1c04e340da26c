package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatehub/client/internal/api"
	"estatehub/client/internal/models"
)

func validPropertyRequest() api.PropertyRequest {
	return api.PropertyRequest{
		Title:       "2BHK near the lake",
		Description: "Bright two-bedroom apartment",
		Type:        models.TypeApartment,
		Status:      models.StatusForSale,
		Price:       3200000,
		Area:        980,
		Bedrooms:    2,
		Bathrooms:   1,
		Street:      "12 Lake Road",
		City:        "Mumbai",
	}
}

func TestValidate_RegisterRequest(t *testing.T) {
	problems := Validate(api.RegisterRequest{
		Name: "Priya", Email: "priya@example.com", Password: "secret1",
		Phone: "9876543210", Role: models.RoleBuyer,
	})
	assert.Nil(t, problems)
}

func TestValidate_RegisterRequestProblems(t *testing.T) {
	problems := Validate(api.RegisterRequest{
		Email:    "not-an-email",
		Password: "abc",
		Role:     "landlord",
	})
	require.NotNil(t, problems)
	assert.Equal(t, "This field is required", problems["name"])
	assert.Equal(t, "Enter a valid email address", problems["email"])
	assert.Equal(t, "Must be at least 6 characters", problems["password"])
	assert.Equal(t, "This field is required", problems["phone"])
	assert.Equal(t, "Must be one of: buyer, agent", problems["role"])
}

func TestValidate_LoginRequest(t *testing.T) {
	assert.Nil(t, Validate(api.LoginRequest{Email: "a@b.co", Password: "x"}))

	problems := Validate(api.LoginRequest{})
	require.NotNil(t, problems)
	assert.Contains(t, problems, "email")
	assert.Contains(t, problems, "password")
}

func TestValidate_PropertyRequest(t *testing.T) {
	assert.Nil(t, Validate(validPropertyRequest()))
}

func TestValidate_PropertyRequestBadEnums(t *testing.T) {
	req := validPropertyRequest()
	req.Type = "castle"
	req.Status = "expired"

	problems := Validate(req)
	require.NotNil(t, problems)
	assert.Contains(t, problems["type"], "apartment")
	assert.Contains(t, problems["status"], "for-sale")
}

func TestValidate_PropertyRequestNegativeNumbers(t *testing.T) {
	req := validPropertyRequest()
	req.Price = -1
	req.Area = -20

	problems := Validate(req)
	require.NotNil(t, problems)
	assert.Equal(t, "Must not be negative", problems["price"])
	assert.Equal(t, "Must not be negative", problems["area"])
}

func TestValidate_ProfileRequestPartial(t *testing.T) {
	// All fields optional; empty update is valid.
	assert.Nil(t, Validate(api.ProfileRequest{}))
	assert.Nil(t, Validate(api.ProfileRequest{Name: "New Name"}))

	problems := Validate(api.ProfileRequest{Email: "nope", Password: "abc"})
	require.NotNil(t, problems)
	assert.Contains(t, problems, "email")
	assert.Contains(t, problems, "password")
}
