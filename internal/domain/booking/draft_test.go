package booking

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/vetcard/internal/directory"
)

func validDraft() Draft {
	return Draft{
		Fields: Fields{
			OwnerName:     "Olena",
			PetName:       "Barsik",
			AnimalType:    "cat",
			PetAge:        "adult",
			Phone:         "+380501112233",
			Email:         "olena@example.com",
			ServiceReason: "vaccination",
		},
		Date: time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC),
		Time: "9:00 AM",
	}
}

func TestValidate_MissingFields(t *testing.T) {
	blankers := map[string]func(*Draft){
		"owner_name":     func(d *Draft) { d.OwnerName = "" },
		"pet_name":       func(d *Draft) { d.PetName = "  " },
		"animal_type":    func(d *Draft) { d.AnimalType = "" },
		"pet_age":        func(d *Draft) { d.PetAge = "" },
		"phone":          func(d *Draft) { d.Phone = "" },
		"email":          func(d *Draft) { d.Email = "" },
		"service_reason": func(d *Draft) { d.ServiceReason = "" },
		"time":           func(d *Draft) { d.Time = "" },
		"date":           func(d *Draft) { d.Date = time.Time{} },
	}

	for field, blank := range blankers {
		d := validDraft()
		blank(&d)
		err := Validate(d, &directory.ClinicProfile{})
		if !IsValidation(err, CodeMissingField) {
			t.Fatalf("%s: expected missing_field, got %v", field, err)
		}
		if ve := err.(ValidationError); ve.Field != field {
			t.Fatalf("expected field %s, got %s", field, ve.Field)
		}
	}
}

func TestValidate_Order(t *testing.T) {
	profile := &directory.ClinicProfile{Branches: []directory.Branch{{ID: 1}, {ID: 2}}}

	d := validDraft()
	d.OwnerName = ""
	d.Time = "nonsense"
	if err := Validate(d, profile); !IsValidation(err, CodeMissingField) {
		t.Fatalf("expected missing fields to be reported first, got %v", err)
	}

	d = validDraft()
	d.Time = "nonsense"
	if err := Validate(d, profile); !IsValidation(err, CodeBranchRequired) {
		t.Fatalf("expected branch before time, got %v", err)
	}

	id := 2
	d.BranchID = &id
	if err := Validate(d, profile); !IsValidation(err, CodeInvalidTime) {
		t.Fatalf("expected invalid_time, got %v", err)
	}
}

func TestValidate_BranchRules(t *testing.T) {
	d := validDraft()
	if err := Validate(d, &directory.ClinicProfile{}); err != nil {
		t.Fatalf("expected no branch needed for zero branches, got %v", err)
	}

	missing := 99
	d.BranchID = &missing
	if err := Validate(d, &directory.ClinicProfile{Branches: []directory.Branch{{ID: 1}}}); !IsValidation(err, CodeUnknownBranch) {
		t.Fatalf("expected unknown_branch, got %v", err)
	}
}

func TestValidate_ClosedListsAndEmail(t *testing.T) {
	d := validDraft()
	d.AnimalType = "dragon"
	if err := Validate(d, nil); !IsValidation(err, CodeInvalidAnimalType) {
		t.Fatalf("expected invalid_animal_type, got %v", err)
	}

	d = validDraft()
	d.PetAge = "ancient"
	if err := Validate(d, nil); !IsValidation(err, CodeInvalidPetAge) {
		t.Fatalf("expected invalid_pet_age, got %v", err)
	}

	d = validDraft()
	d.Email = "not-an-email"
	if err := Validate(d, nil); !IsValidation(err, CodeInvalidEmail) {
		t.Fatalf("expected invalid_email, got %v", err)
	}

	d = validDraft()
	d.AnimalType = "Cat"
	if err := Validate(d, nil); err != nil {
		t.Fatalf("expected case-insensitive animal type, got %v", err)
	}
}
