// Package storage keeps the visitor's own records: the appointments they
// tried to book and the owner details used to pre-fill the booking form.
//
// Storage faults never leave this package. Reads degrade to "empty" and
// writes are dropped; both are logged.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"sync"
	"time"

	"github.com/BruksfildServices01/vetcard/internal/infra/kv"
)

const (
	AppointmentsKey = "vetcard_appointments"
	MaxAppointments = 50
)

type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
)

// AppointmentFields is everything the caller supplies when saving.
// Clinic and branch names are copied at save time and never refreshed.
type AppointmentFields struct {
	ClinicSlug    string    `json:"clinic_slug"`
	ClinicName    string    `json:"clinic_name"`
	OwnerName     string    `json:"owner_name"`
	PetName       string    `json:"pet_name"`
	AnimalType    string    `json:"animal_type"`
	PetAge        string    `json:"pet_age"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	ServiceReason string    `json:"service_reason"`
	AppointmentAt time.Time `json:"appointment_at"`
	BranchID      *int      `json:"branch_id,omitempty"`
	BranchName    string    `json:"branch_name,omitempty"`
	Status        Status    `json:"status"`
}

type SavedAppointment struct {
	ID string `json:"id"`
	AppointmentFields
	CreatedAt time.Time `json:"created_at"`
}

// result carries a read outcome up to the public boundary, where the
// fail-soft policy is applied.
type result struct {
	items []SavedAppointment
	err   error
}

type AppointmentStore struct {
	kv     KV
	key    string
	now    func() time.Time
	logger *slog.Logger

	mu sync.Mutex
}

type Option func(*AppointmentStore)

func WithClock(now func() time.Time) Option {
	return func(s *AppointmentStore) { s.now = now }
}

func WithKey(key string) Option {
	return func(s *AppointmentStore) { s.key = key }
}

func NewAppointmentStore(backend KV, logger *slog.Logger, opts ...Option) *AppointmentStore {
	if logger == nil {
		logger = slog.Default()
	}
	s := &AppointmentStore{
		kv:     backend,
		key:    AppointmentsKey,
		now:    time.Now,
		logger: logger.With("module", "appointment_store"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ======================================================
// PUBLIC (fail-soft)
// ======================================================

// List returns the stored appointments, most recent first.
func (s *AppointmentStore) List(ctx context.Context) []SavedAppointment {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.readSoft(ctx)
}

// Save stamps a new id and creation time, prepends the record and keeps
// only the most recent MaxAppointments entries. The returned record is
// valid even if the write was lost.
func (s *AppointmentStore) Save(ctx context.Context, in AppointmentFields) SavedAppointment {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	created := SavedAppointment{
		ID:                newID(now),
		AppointmentFields: in,
		CreatedAt:         now.UTC(),
	}

	items := s.readSoft(ctx)
	items = append([]SavedAppointment{created}, items...)
	if len(items) > MaxAppointments {
		items = items[:MaxAppointments]
	}

	if err := s.write(ctx, items); err != nil {
		s.logger.Error("storage.appointments.save_failed", "err", err)
	}
	return created
}

// Remove deletes the appointment with the given id. Unknown ids are a no-op.
func (s *AppointmentStore) Remove(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.readSoft(ctx)
	filtered := items[:0]
	for _, a := range items {
		if a.ID != id {
			filtered = append(filtered, a)
		}
	}

	if err := s.write(ctx, filtered); err != nil {
		s.logger.Error("storage.appointments.remove_failed", "id", id, "err", err)
	}
}

func (s *AppointmentStore) FilterByClinic(ctx context.Context, slug string) []SavedAppointment {
	return ByClinic(s.List(ctx), slug)
}

// ByClinic narrows an already loaded list. An empty slug keeps everything.
func ByClinic(items []SavedAppointment, slug string) []SavedAppointment {
	if slug == "" {
		return items
	}
	return filter(items, func(a SavedAppointment) bool {
		return a.ClinicSlug == slug
	})
}

func (s *AppointmentStore) Upcoming(ctx context.Context) []SavedAppointment {
	now := s.now()
	return filter(s.List(ctx), func(a SavedAppointment) bool {
		return !IsPast(a.AppointmentAt, now)
	})
}

func (s *AppointmentStore) Past(ctx context.Context) []SavedAppointment {
	now := s.now()
	return filter(s.List(ctx), func(a SavedAppointment) bool {
		return IsPast(a.AppointmentAt, now)
	})
}

// IsPast reports whether t is strictly before the store's current instant.
func (s *AppointmentStore) IsPast(t time.Time) bool {
	return IsPast(t, s.now())
}

func IsPast(t, now time.Time) bool {
	return t.Before(now)
}

// ======================================================
// INTERNAL
// ======================================================

func (s *AppointmentStore) readSoft(ctx context.Context) []SavedAppointment {
	r := s.read(ctx)
	if r.err != nil {
		s.logger.Error("storage.appointments.read_failed", "err", r.err)
		return []SavedAppointment{}
	}
	return r.items
}

func (s *AppointmentStore) read(ctx context.Context) result {
	raw, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, kv.ErrNotFound) || (err == nil && len(raw) == 0) {
		return result{items: []SavedAppointment{}}
	}
	if err != nil {
		return result{err: fmt.Errorf("read %s: %w", s.key, err)}
	}

	var items []SavedAppointment
	if err := json.Unmarshal(raw, &items); err != nil {
		return result{err: fmt.Errorf("decode %s: %w", s.key, err)}
	}
	if items == nil {
		items = []SavedAppointment{}
	}
	return result{items: items}
}

func (s *AppointmentStore) write(ctx context.Context, items []SavedAppointment) error {
	b, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.key, err)
	}
	if err := s.kv.Set(ctx, s.key, b); err != nil {
		return fmt.Errorf("write %s: %w", s.key, err)
	}
	return nil
}

func filter(items []SavedAppointment, keep func(SavedAppointment) bool) []SavedAppointment {
	out := make([]SavedAppointment, 0, len(items))
	for _, a := range items {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// newID is a millisecond prefix plus a 9 char base36 suffix. Unique enough
// for one visitor's list; not meant to be unguessable.
func newID(now time.Time) string {
	suffix := make([]byte, 9)
	for i := range suffix {
		suffix[i] = idAlphabet[rand.IntN(len(idAlphabet))]
	}
	return strconv.FormatInt(now.UnixMilli(), 10) + "-" + string(suffix)
}
