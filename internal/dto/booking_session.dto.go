package dto

import (
	"time"

	"github.com/BruksfildServices01/vetcard/internal/directory"
	"github.com/BruksfildServices01/vetcard/internal/domain/booking"
)

type BookingFormDTO struct {
	ClinicSlug     string             `json:"clinic_slug"`
	ClinicName     string             `json:"clinic_name"`
	ThemeColor     string             `json:"theme_color"`
	State          booking.State      `json:"state"`
	Branches       []directory.Branch `json:"branches"`
	BranchRequired bool               `json:"branch_required"`
	BranchID       *int               `json:"branch_id,omitempty"`
	Date           string             `json:"date"`
	Slots          []booking.TimeSlot `json:"slots"`
	AnimalTypes    []string           `json:"animal_types"`
	PetAges        []string           `json:"pet_ages"`
	Prefill        booking.Fields     `json:"prefill"`
	Calendar       []string           `json:"calendar"`
}

// NewBookingForm renders a ready session. Calendar holds one entry per grid
// cell, "" for the leading padding.
func NewBookingForm(s *booking.Session, month time.Time) BookingFormDTO {
	branches := s.Profile.Branches
	if branches == nil {
		branches = []directory.Branch{}
	}

	grid := booking.MonthGrid(month)
	cells := make([]string, len(grid))
	for i, d := range grid {
		if !d.IsZero() {
			cells[i] = d.Format("2006-01-02")
		}
	}

	return BookingFormDTO{
		ClinicSlug:     s.Slug,
		ClinicName:     s.Profile.Name,
		ThemeColor:     s.Profile.ThemeColor(),
		State:          s.State(),
		Branches:       branches,
		BranchRequired: s.BranchRequired(),
		BranchID:       s.Draft.BranchID,
		Date:           s.Draft.Date.Format("2006-01-02"),
		Slots:          s.Slots,
		AnimalTypes:    booking.AnimalTypes,
		PetAges:        booking.PetAges,
		Prefill:        s.Draft.Fields,
		Calendar:       cells,
	}
}

type BookingResultDTO struct {
	State           booking.State      `json:"state"`
	Message         string             `json:"message"`
	Appointment     AppointmentListDTO `json:"appointment"`
	RedirectTo      string             `json:"redirect_to"`
	RedirectAfterMS int64              `json:"redirect_after_ms"`
}
