package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Business codes raised below the HTTP layer.
const (
	CodeClinicNotFound = "clinic_not_found"
)

type businessMapping struct {
	status  int
	message string
}

var businessMappings = map[string]businessMapping{
	CodeClinicNotFound: {http.StatusNotFound, "Clinic not found."},
}

// BusinessError is an expected outcome that maps to a 4xx, never a 5xx.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// WriteBusiness answers with the status registered for err's code and
// reports whether it did. Unknown codes are a 400.
func WriteBusiness(c *gin.Context, err error) bool {
	var be BusinessError
	if !errors.As(err, &be) {
		return false
	}
	m, ok := businessMappings[be.Code]
	if !ok {
		m = businessMapping{http.StatusBadRequest, be.Code}
	}
	Write(c, m.status, be.Code, m.message)
	return true
}
