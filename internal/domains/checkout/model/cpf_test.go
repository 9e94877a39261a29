package model

import (
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCPF(t *testing.T) {
	tests := []struct {
		cpf  string
		want bool
	}{
		{"529.982.247-25", true},
		{"52998224725", true},
		{"111.111.111-11", false},
		{"000.000.000-00", false},
		{"529.982.247-24", false},
		{"529.982.247", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.cpf, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateCPF(tt.cpf))
		})
	}
}

func TestIdentificationRequest_Validate(t *testing.T) {
	valid := IdentificationRequest{
		Name:  "Ana Souza",
		Email: "ana@example.com",
		Phone: "(11) 98765-4321",
		CPF:   "529.982.247-25",
	}
	assert.NoError(t, valid.Validate())

	err := IdentificationRequest{
		Name:  "Ana",
		Email: "ana@example",
		Phone: "1199",
		CPF:   "111.111.111-11",
	}.Validate()
	require.Error(t, err)

	errs, ok := err.(validation.Errors)
	require.True(t, ok)
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "phone")
	assert.Contains(t, errs, "cpf")
}

func TestIdentificationRequest_TrimsBeforeValidating(t *testing.T) {
	req := IdentificationRequest{
		Name:  "  Ana   Souza ",
		Email: " Ana@Example.com ",
		Phone: " (11) 98765-4321",
		CPF:   "529.982.247-25 ",
	}
	require.NoError(t, req.Validate())

	normalized := req.Normalize()
	assert.Equal(t, "Ana Souza", normalized.Name)
	assert.Equal(t, "ana@example.com", normalized.Email)

	errs, ok := IdentificationRequest{
		Name:  "   ",
		Email: "  ",
		Phone: "(11) 98765-4321",
		CPF:   "529.982.247-25",
	}.Validate().(validation.Errors)
	require.True(t, ok)
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "email")
}

func TestShippingRequest_BlankFieldsAreMissing(t *testing.T) {
	errs, ok := ShippingRequest{
		PostalCode:   "01310-100",
		Street:       "   ",
		Number:       "1000",
		Neighborhood: "Bela Vista",
		City:         "São Paulo",
		State:        "SP",
	}.Validate().(validation.Errors)
	require.True(t, ok)
	assert.Contains(t, errs, "street")
}

func TestShippingRequest_Validate(t *testing.T) {
	req := ShippingRequest{
		PostalCode:   "01310-100",
		Street:       "Avenida Paulista",
		Number:       "1000",
		Neighborhood: "Bela Vista",
		City:         "São Paulo",
		State:        "sp",
	}
	require.NoError(t, req.Validate())
	assert.Equal(t, "01310100", req.ToAddress().PostalCode)
	assert.Equal(t, "SP", req.ToAddress().State)

	req.PostalCode = "0131010"
	req.Number = ""
	errs, ok := req.Validate().(validation.Errors)
	require.True(t, ok)
	assert.Contains(t, errs, "postal_code")
	assert.Contains(t, errs, "number")
	assert.NotContains(t, errs, "street")
}

func TestStepNavigation(t *testing.T) {
	assert.Equal(t, StepShipping, StepIdentification.Next())
	assert.Equal(t, StepPayment, StepPayment.Next())
	assert.Equal(t, StepIdentification, StepIdentification.Previous())
	assert.Equal(t, StepShipping, StepPayment.Previous())

	s := &Session{Step: StepShipping}
	assert.True(t, s.Reached(StepIdentification))
	assert.True(t, s.Reached(StepShipping))
	assert.False(t, s.Reached(StepPayment))
}
