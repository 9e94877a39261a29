package model

import (
	"storefront-backend/internal/shared/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ValidateCPF checks the two modulo-11 check digits. Punctuation is ignored,
// repeated-digit sequences such as 111.111.111-11 are rejected.
func ValidateCPF(raw string) bool {
	cpf := utils.OnlyDigits(raw)
	if len(cpf) != 11 {
		return false
	}

	allEqual := true
	for i := 1; i < 11; i++ {
		if cpf[i] != cpf[0] {
			allEqual = false
			break
		}
	}
	if allEqual {
		return false
	}

	return cpfCheckDigit(cpf[:9], 10) == int(cpf[9]-'0') &&
		cpfCheckDigit(cpf[:10], 11) == int(cpf[10]-'0')
}

// cpfCheckDigit weights digits from startWeight down to 2
func cpfCheckDigit(digits string, startWeight int) int {
	sum := 0
	for i := 0; i < len(digits); i++ {
		sum += int(digits[i]-'0') * (startWeight - i)
	}
	rest := (sum * 10) % 11
	if rest == 10 {
		return 0
	}
	return rest
}

// CPFRule is the ozzo rule used by IdentificationRequest
var CPFRule = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if !ValidateCPF(s) {
		return validation.NewError("validation_cpf", "CPF inválido")
	}
	return nil
})
