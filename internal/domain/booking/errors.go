package booking

import (
	"errors"
	"fmt"
)

const (
	CodeMissingField      = "missing_field"
	CodeInvalidDate       = "invalid_date"
	CodeBranchRequired    = "branch_required"
	CodeUnknownBranch     = "unknown_branch"
	CodeInvalidTime       = "invalid_time"
	CodeSlotUnavailable   = "slot_unavailable"
	CodeInvalidEmail      = "invalid_email"
	CodeInvalidAnimalType = "invalid_animal_type"
	CodeInvalidPetAge     = "invalid_pet_age"
)

var (
	ErrSessionClosed = errors.New("booking: session is no longer accepting changes")
	ErrNotReady      = errors.New("booking: session is not ready")
)

// ValidationError is always user-correctable and is never logged.
type ValidationError struct {
	Field string
	Code  string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Field)
}

func ErrValidation(field, code string) error {
	return ValidationError{Field: field, Code: code}
}

func IsValidation(err error, code string) bool {
	var ve ValidationError
	if errors.As(err, &ve) {
		return code == "" || ve.Code == code
	}
	return false
}

var userMessages = map[string]string{
	CodeMissingField:      "Please fill in all fields",
	CodeInvalidDate:       "Please choose a valid date",
	CodeBranchRequired:    "Please choose a branch",
	CodeUnknownBranch:     "Please choose a branch",
	CodeInvalidTime:       "Please choose a valid time",
	CodeSlotUnavailable:   "This time is not available",
	CodeInvalidEmail:      "Please enter a valid email",
	CodeInvalidAnimalType: "Please choose an animal type",
	CodeInvalidPetAge:     "Please choose the pet's age",
}

// UserMessage is the prompt shown for a validation failure.
func UserMessage(err error) string {
	var ve ValidationError
	if errors.As(err, &ve) {
		if msg, ok := userMessages[ve.Code]; ok {
			return msg
		}
	}
	return "Please check the form"
}
