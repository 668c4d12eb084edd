package validators

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// IsEmail checks address syntax only; it never touches the network.
func IsEmail(email string) bool {
	return validate.Var(strings.TrimSpace(email), "required,email") == nil
}

func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
