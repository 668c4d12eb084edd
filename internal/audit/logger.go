package audit

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/vetcard/internal/models"
)

const (
	ActionBookingSubmitted   = "booking.submitted"
	ActionBookingFailed      = "booking.failed"
	ActionAppointmentRemoved = "appointment.removed"
	ActionProfileCleared     = "profile.cleared"
)

type Event struct {
	VisitorID     string
	ClinicSlug    string
	Action        string
	AppointmentID *string
	Metadata      any
}

// Logger writes booking events to the booking_events table. Without a
// database it only logs them.
type Logger struct {
	db     *gorm.DB
	logger *slog.Logger
}

func New(db *gorm.DB, logger *slog.Logger) *Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Logger{db: db, logger: logger.With("module", "audit")}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	if l.db == nil {
		l.logger.Info("audit.event",
			"action", ev.Action,
			"visitor_id", ev.VisitorID,
			"clinic_slug", ev.ClinicSlug,
			"metadata", metaJSON,
		)
		return nil
	}

	row := models.BookingEvent{
		ID:            uuid.NewString(),
		VisitorID:     ev.VisitorID,
		ClinicSlug:    ev.ClinicSlug,
		Action:        ev.Action,
		AppointmentID: ev.AppointmentID,
		Metadata:      metaJSON,
	}

	return l.db.WithContext(ctx).Create(&row).Error
}
