package dto

import (
	"time"

	"github.com/BruksfildServices01/vetcard/internal/storage"
)

type AppointmentListDTO struct {
	ID            string         `json:"id"`
	ClinicSlug    string         `json:"clinic_slug"`
	ClinicName    string         `json:"clinic_name"`
	BranchName    string         `json:"branch_name,omitempty"`
	PetName       string         `json:"pet_name"`
	AnimalType    string         `json:"animal_type"`
	ServiceReason string         `json:"service_reason"`
	AppointmentAt time.Time      `json:"appointment_at"`
	DisplayDate   string         `json:"display_date"`
	IsPast        bool           `json:"is_past"`
	Status        storage.Status `json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
}

func NewAppointmentList(items []storage.SavedAppointment, now time.Time, loc *time.Location, locale string) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(items))
	for _, a := range items {
		out = append(out, AppointmentListDTO{
			ID:            a.ID,
			ClinicSlug:    a.ClinicSlug,
			ClinicName:    a.ClinicName,
			BranchName:    a.BranchName,
			PetName:       a.PetName,
			AnimalType:    a.AnimalType,
			ServiceReason: a.ServiceReason,
			AppointmentAt: a.AppointmentAt,
			DisplayDate:   storage.FormatForDisplay(a.AppointmentAt, loc, locale),
			IsPast:        storage.IsPast(a.AppointmentAt, now),
			Status:        a.Status,
			CreatedAt:     a.CreatedAt,
		})
	}
	return out
}
