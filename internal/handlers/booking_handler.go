package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/vetcard/internal/domain/booking"
	"github.com/BruksfildServices01/vetcard/internal/dto"
	"github.com/BruksfildServices01/vetcard/internal/httperr"
	"github.com/BruksfildServices01/vetcard/internal/httpresp"
	"github.com/BruksfildServices01/vetcard/internal/storage"
	"github.com/BruksfildServices01/vetcard/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	workflow *booking.Workflow
	visitors VisitorStores
	loc      *time.Location
	locale   string
}

func NewBookingHandler(workflow *booking.Workflow, visitors VisitorStores, loc *time.Location, locale string) *BookingHandler {
	return &BookingHandler{
		workflow: workflow,
		visitors: visitors,
		loc:      loc,
		locale:   locale,
	}
}

// ======================================================
// REQUESTS
// ======================================================

// Field presence is checked by the booking rules so the first missing
// field is reported in form order.
type CreateAppointmentRequest struct {
	OwnerName     string `json:"owner_name"`
	PetName       string `json:"pet_name"`
	AnimalType    string `json:"animal_type"`
	PetAge        string `json:"pet_age"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	ServiceReason string `json:"service_reason"`
	Date          string `json:"date"` // YYYY-MM-DD
	Time          string `json:"time"` // h:mm AM/PM
	BranchID      *int   `json:"branch_id"`
}

func (r CreateAppointmentRequest) form() booking.Form {
	return booking.Form{
		Fields: domain.Fields{
			OwnerName:     r.OwnerName,
			PetName:       r.PetName,
			AnimalType:    r.AnimalType,
			PetAge:        r.PetAge,
			Phone:         r.Phone,
			Email:         r.Email,
			ServiceReason: r.ServiceReason,
		},
		Date:     r.Date,
		Time:     r.Time,
		BranchID: r.BranchID,
	}
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	visitor := currentVisitor(c, h.visitors)
	sess, out, err := h.workflow.Book(c.Request.Context(), c.Param("slug"), visitor, req.form())
	if err != nil {
		if httperr.WriteBusiness(c, err) {
			return
		}
		var ve domain.ValidationError
		switch {
		case errors.As(err, &ve):
			httperr.Validation(c, ve.Field, ve.Code, domain.UserMessage(ve))
		case errors.Is(err, domain.ErrSessionClosed), errors.Is(err, domain.ErrNotReady):
			httperr.Conflict(c, "session_not_ready", "Booking is not accepting changes.")
		case sess == nil:
			httperr.BadGateway(c, "clinic_unavailable", "Could not load the clinic.")
		default:
			httperr.BadGateway(c, "booking_failed", sess.Message)
		}
		return
	}

	httpresp.Created(c, dto.BookingResultDTO{
		State:           sess.State(),
		Message:         sess.Message,
		Appointment:     dto.NewAppointmentList([]storage.SavedAppointment{out.Saved}, time.Now(), h.loc, h.locale)[0],
		RedirectTo:      out.RedirectTo,
		RedirectAfterMS: out.RedirectAfter.Milliseconds(),
	})
}
