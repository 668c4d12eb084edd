package booking

import (
	"slices"
	"strings"
	"time"

	"github.com/BruksfildServices01/vetcard/internal/directory"
	"github.com/BruksfildServices01/vetcard/internal/validators"
)

var AnimalTypes = []string{"dog", "cat", "bird", "rabbit", "rodent", "reptile", "other"}

var PetAges = []string{"baby", "young", "adult", "senior"}

// Fields are the free-text parts of the booking form.
type Fields struct {
	OwnerName     string `json:"owner_name"`
	PetName       string `json:"pet_name"`
	AnimalType    string `json:"animal_type"`
	PetAge        string `json:"pet_age"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	ServiceReason string `json:"service_reason"`
}

func (f Fields) trimmed() Fields {
	return Fields{
		OwnerName:     strings.TrimSpace(f.OwnerName),
		PetName:       strings.TrimSpace(f.PetName),
		AnimalType:    strings.TrimSpace(f.AnimalType),
		PetAge:        strings.TrimSpace(f.PetAge),
		Phone:         strings.TrimSpace(f.Phone),
		Email:         strings.TrimSpace(f.Email),
		ServiceReason: strings.TrimSpace(f.ServiceReason),
	}
}

// Draft lives for one booking session and is discarded on success.
type Draft struct {
	Fields
	Date     time.Time `json:"date"`
	Time     string    `json:"time"`
	BranchID *int      `json:"branch_id,omitempty"`
}

// Validate checks, in order: mandatory fields, branch, time label, then
// the closed lists and email syntax. The first failure wins.
func Validate(d Draft, profile *directory.ClinicProfile) error {
	f := d.Fields.trimmed()

	required := []struct {
		field string
		value string
	}{
		{"owner_name", f.OwnerName},
		{"pet_name", f.PetName},
		{"animal_type", f.AnimalType},
		{"pet_age", f.PetAge},
		{"phone", f.Phone},
		{"email", f.Email},
		{"service_reason", f.ServiceReason},
		{"time", strings.TrimSpace(d.Time)},
	}
	if d.Date.IsZero() {
		return ErrValidation("date", CodeMissingField)
	}
	for _, r := range required {
		if validators.IsBlank(r.value) {
			return ErrValidation(r.field, CodeMissingField)
		}
	}

	if profile != nil && len(profile.Branches) > 0 {
		if d.BranchID == nil {
			return ErrValidation("branch_id", CodeBranchRequired)
		}
		if _, ok := profile.Branch(*d.BranchID); !ok {
			return ErrValidation("branch_id", CodeUnknownBranch)
		}
	}

	if _, _, err := ParseTimeLabel(d.Time); err != nil {
		return err
	}

	if !slices.Contains(AnimalTypes, strings.ToLower(f.AnimalType)) {
		return ErrValidation("animal_type", CodeInvalidAnimalType)
	}
	if !slices.Contains(PetAges, strings.ToLower(f.PetAge)) {
		return ErrValidation("pet_age", CodeInvalidPetAge)
	}
	if !validators.IsEmail(f.Email) {
		return ErrValidation("email", CodeInvalidEmail)
	}
	return nil
}
