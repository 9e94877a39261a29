package model

import (
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginRequest_Validate(t *testing.T) {
	// .invalid never resolves: only the address format is checked
	assert.NoError(t, LoginRequest{Email: "admin@loja.invalid", Password: "x"}.Validate())
	assert.NoError(t, LoginRequest{Email: "admin@loja.com.br", Password: "x"}.Validate())

	errs, ok := LoginRequest{Email: "not-an-email"}.Validate().(validation.Errors)
	require.True(t, ok)
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
}
