package audit

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/vetcard/internal/models"
)

func TestLogger_WritesBookingEvent(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "audit.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.BookingEvent{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	id := "1792411200000-abc"
	err = New(db, quietLogger()).Log(context.Background(), Event{
		VisitorID:     "visitor-1",
		ClinicSlug:    "happy-paws",
		Action:        ActionBookingSubmitted,
		AppointmentID: &id,
		Metadata:      map[string]any{"branch_id": 7},
	})
	if err != nil {
		t.Fatalf("Log failed: %v", err)
	}

	var rows []models.BookingEvent
	if err := db.Find(&rows).Error; err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 event, got %d", len(rows))
	}
	got := rows[0]
	if got.ID == "" || got.Action != ActionBookingSubmitted || got.ClinicSlug != "happy-paws" {
		t.Fatalf("unexpected event %+v", got)
	}
	if got.AppointmentID == nil || *got.AppointmentID != id {
		t.Fatalf("expected appointment id %s, got %v", id, got.AppointmentID)
	}
	if got.Metadata != `{"branch_id":7}` {
		t.Fatalf("unexpected metadata %s", got.Metadata)
	}
}
