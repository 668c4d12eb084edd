package booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/BruksfildServices01/vetcard/internal/directory"
	"github.com/BruksfildServices01/vetcard/internal/timezone"
)

type State string

const (
	StateLoading    State = "loading"
	StateReady      State = "ready"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// Request is what a validated draft turns into when submission starts.
type Request struct {
	Payload       directory.AppointmentPayload
	AppointmentAt time.Time
	Branch        *directory.Branch
}

// Session is the state machine of one booking attempt:
//
//	loading -> ready <-> submitting -> succeeded
//	                      submitting -> failed -> ready
//
// Everything in ready is local mutation; only submitting does I/O.
type Session struct {
	Slug    string
	Profile *directory.ClinicProfile
	Draft   Draft
	Slots   []TimeSlot
	Message string

	state        State
	loc          *time.Location
	onTransition func(from, to State)
}

func NewSession(slug string, loc *time.Location, onTransition func(from, to State)) *Session {
	if loc == nil {
		loc = time.UTC
	}
	return &Session{
		Slug:         slug,
		Slots:        DefaultTimeSlots(),
		state:        StateLoading,
		loc:          loc,
		onTransition: onTransition,
	}
}

func (s *Session) State() State {
	return s.state
}

func (s *Session) Location() *time.Location {
	return s.loc
}

// Loaded stores the fetched profile, preselects today and auto-selects the
// branch when the clinic has exactly one.
func (s *Session) Loaded(profile *directory.ClinicProfile, today time.Time) error {
	if s.state != StateLoading {
		return fmt.Errorf("booking: loaded called in state %s", s.state)
	}

	s.Profile = profile
	s.Draft.Date = timezone.StartOfDay(today.In(s.loc))
	if len(profile.Branches) == 1 {
		id := profile.Branches[0].ID
		s.Draft.BranchID = &id
	}

	s.transition(StateReady)
	return nil
}

// BranchRequired reports whether the user has to pick a branch.
func (s *Session) BranchRequired() bool {
	return s.Profile != nil && len(s.Profile.Branches) > 1
}

func (s *Session) Fill(f Fields) error {
	if err := s.editable(); err != nil {
		return err
	}
	s.Draft.Fields = f
	return nil
}

func (s *Session) SelectDate(date time.Time) error {
	if err := s.editable(); err != nil {
		return err
	}
	if date.IsZero() {
		return ErrValidation("date", CodeMissingField)
	}
	s.Draft.Date = timezone.StartOfDay(date.In(s.loc))
	return nil
}

// SelectTime accepts any spelling of an offered slot ("9:00 am", "9:00AM")
// and stores the slot's own label. Unavailable slots are refused.
func (s *Session) SelectTime(label string) error {
	if err := s.editable(); err != nil {
		return err
	}
	if _, _, err := ParseTimeLabel(label); err != nil {
		return err
	}
	slot, ok := FindSlot(s.Slots, label)
	if !ok {
		return ErrValidation("time", CodeInvalidTime)
	}
	if !slot.Available {
		return ErrValidation("time", CodeSlotUnavailable)
	}
	s.Draft.Time = slot.Time
	return nil
}

// SelectBranch is a no-op for clinics without branches; the payload never
// carries a branch for them.
func (s *Session) SelectBranch(id int) error {
	if err := s.editable(); err != nil {
		return err
	}
	if s.Profile == nil {
		return ErrValidation("branch_id", CodeUnknownBranch)
	}
	if len(s.Profile.Branches) == 0 {
		return nil
	}
	if _, ok := s.Profile.Branch(id); !ok {
		return ErrValidation("branch_id", CodeUnknownBranch)
	}
	s.Draft.BranchID = &id
	return nil
}

// BeginSubmit validates the draft and moves to submitting. On a validation
// failure the session stays ready and Message holds the prompt.
func (s *Session) BeginSubmit() (Request, error) {
	if s.state != StateReady {
		if s.state == StateSucceeded {
			return Request{}, ErrSessionClosed
		}
		return Request{}, ErrNotReady
	}

	if err := Validate(s.Draft, s.Profile); err != nil {
		s.Message = UserMessage(err)
		return Request{}, err
	}

	at, err := CombineDateTime(s.Draft.Date, s.Draft.Time, s.loc)
	if err != nil {
		s.Message = UserMessage(err)
		return Request{}, err
	}

	f := s.Draft.Fields.trimmed()
	req := Request{
		AppointmentAt: at,
		Payload: directory.AppointmentPayload{
			OwnerName:     f.OwnerName,
			PetName:       f.PetName,
			AnimalType:    strings.ToLower(f.AnimalType),
			PetAge:        strings.ToLower(f.PetAge),
			Phone:         f.Phone,
			Email:         f.Email,
			ServiceReason: f.ServiceReason,
			AppointmentAt: at.UTC().Format(time.RFC3339),
			Status:        "draft",
		},
	}

	if s.Draft.BranchID != nil && len(s.Profile.Branches) > 0 {
		if b, ok := s.Profile.Branch(*s.Draft.BranchID); ok {
			id := b.ID
			req.Payload.BranchID = &id
			req.Branch = &b
		}
	}

	s.Message = ""
	s.transition(StateSubmitting)
	return req, nil
}

func (s *Session) Succeed(message string) {
	if s.state != StateSubmitting {
		return
	}
	s.Message = message
	s.transition(StateSucceeded)
}

// Fail records the failure and hands the form back untouched.
func (s *Session) Fail(message string) {
	if s.state != StateSubmitting {
		return
	}
	s.Message = message
	s.transition(StateFailed)
	s.transition(StateReady)
}

func (s *Session) editable() error {
	switch s.state {
	case StateReady:
		return nil
	case StateSucceeded:
		return ErrSessionClosed
	default:
		return ErrNotReady
	}
}

func (s *Session) transition(to State) {
	from := s.state
	s.state = to
	if s.onTransition != nil {
		s.onTransition(from, to)
	}
}
