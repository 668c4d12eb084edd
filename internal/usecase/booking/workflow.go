package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/BruksfildServices01/vetcard/internal/audit"
	"github.com/BruksfildServices01/vetcard/internal/directory"
	domain "github.com/BruksfildServices01/vetcard/internal/domain/booking"
	"github.com/BruksfildServices01/vetcard/internal/httperr"
	"github.com/BruksfildServices01/vetcard/internal/storage"
	"github.com/BruksfildServices01/vetcard/internal/timezone"
)

const (
	SuccessMessage        = "Appointment booked! Redirecting..."
	GenericFailureMessage = "Failed to book the appointment. Please try again."
)

// ======================================================
// DEPENDENCIES
// ======================================================

type Directory interface {
	FetchClinicProfile(ctx context.Context, slug string) (*directory.ClinicProfile, error)
	SubmitAppointment(ctx context.Context, profile *directory.ClinicProfile, payload directory.AppointmentPayload) error
}

type EventSink interface {
	Dispatch(ev audit.Event)
}

// ======================================================
// OUTPUT
// ======================================================

type Outcome struct {
	Saved         storage.SavedAppointment
	RedirectTo    string
	RedirectAfter time.Duration
}

// ======================================================
// USE CASE
// ======================================================

type Workflow struct {
	dir           Directory
	events        EventSink
	redirectDelay time.Duration
	loc           *time.Location
	now           func() time.Time
	logger        *slog.Logger
}

type Option func(*Workflow)

func WithClock(now func() time.Time) Option {
	return func(w *Workflow) { w.now = now }
}

func WithRedirectDelay(d time.Duration) Option {
	return func(w *Workflow) { w.redirectDelay = d }
}

func NewWorkflow(dir Directory, events EventSink, loc *time.Location, logger *slog.Logger, opts ...Option) *Workflow {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	w := &Workflow{
		dir:           dir,
		events:        events,
		redirectDelay: 2 * time.Second,
		loc:           loc,
		now:           time.Now,
		logger:        logger.With("module", "booking_workflow"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// ======================================================
// OPEN
// ======================================================

// Open loads the clinic profile and returns a ready session with the
// visitor's saved contact details already filled in.
func (w *Workflow) Open(ctx context.Context, slug string, v *storage.Visitor) (*domain.Session, error) {
	sess := domain.NewSession(slug, w.loc, w.transitionLogger(slug))

	profile, err := w.dir.FetchClinicProfile(ctx, slug)
	if err != nil {
		if directory.StatusOf(err) == http.StatusNotFound {
			return nil, httperr.ErrBusiness(httperr.CodeClinicNotFound)
		}
		return nil, fmt.Errorf("booking: open %s: %w", slug, err)
	}

	if err := sess.Loaded(profile, w.now()); err != nil {
		return nil, err
	}

	if v != nil && v.Profile != nil {
		if saved, ok := v.Profile.Get(ctx); ok {
			sess.Draft.OwnerName = saved.OwnerName
			sess.Draft.Phone = saved.Phone
			sess.Draft.Email = saved.Email
		}
	}

	return sess, nil
}

// ======================================================
// BOOK
// ======================================================

// Form is one complete booking request as received over HTTP.
type Form struct {
	domain.Fields
	Date     string
	Time     string
	BranchID *int
}

// Book runs a whole session in one call: open, apply the form, submit.
// The session is returned in every case so callers can read its state and
// message.
func (w *Workflow) Book(ctx context.Context, slug string, v *storage.Visitor, in Form) (*domain.Session, Outcome, error) {
	sess, err := w.Open(ctx, slug, v)
	if err != nil {
		return nil, Outcome{}, err
	}

	if err := w.apply(sess, in); err != nil {
		sess.Message = domain.UserMessage(err)
		return sess, Outcome{}, err
	}

	out, err := w.Submit(ctx, sess, v)
	return sess, out, err
}

func (w *Workflow) apply(sess *domain.Session, in Form) error {
	if err := sess.Fill(in.Fields); err != nil {
		return err
	}

	if in.Date != "" {
		d, err := timezone.ParseDate(in.Date, w.loc)
		if err != nil {
			return domain.ErrValidation("date", domain.CodeInvalidDate)
		}
		if err := sess.SelectDate(d); err != nil {
			return err
		}
	}

	if in.BranchID != nil {
		if err := sess.SelectBranch(*in.BranchID); err != nil {
			return err
		}
	}

	if in.Time != "" {
		if err := sess.SelectTime(in.Time); err != nil {
			return err
		}
	}
	return nil
}

// ======================================================
// SUBMIT
// ======================================================

// Submit validates the session draft, sends it to the clinic's tenant and
// on any 2xx records it locally as a draft. Validation errors leave the
// session ready and are returned as domain.ValidationError. Remote failures
// leave the session ready with GenericFailureMessage and save nothing.
func (w *Workflow) Submit(ctx context.Context, sess *domain.Session, v *storage.Visitor) (Outcome, error) {
	req, err := sess.BeginSubmit()
	if err != nil {
		return Outcome{}, err
	}

	visitorID := ""
	if v != nil {
		visitorID = v.ID
	}

	if err := w.dir.SubmitAppointment(ctx, sess.Profile, req.Payload); err != nil {
		w.logger.Error("booking.submit_failed",
			"slug", sess.Slug,
			"visitor_id", visitorID,
			"status", directory.StatusOf(err),
			"err", err,
		)
		sess.Fail(GenericFailureMessage)
		w.dispatch(audit.Event{
			VisitorID:  visitorID,
			ClinicSlug: sess.Slug,
			Action:     audit.ActionBookingFailed,
			Metadata:   map[string]any{"status": directory.StatusOf(err), "reason": remoteReason(err)},
		})
		return Outcome{}, fmt.Errorf("booking: submit %s: %w", sess.Slug, err)
	}

	sess.Succeed(SuccessMessage)

	fields := storage.AppointmentFields{
		ClinicSlug:    sess.Slug,
		ClinicName:    sess.Profile.Name,
		OwnerName:     req.Payload.OwnerName,
		PetName:       req.Payload.PetName,
		AnimalType:    req.Payload.AnimalType,
		PetAge:        req.Payload.PetAge,
		Phone:         req.Payload.Phone,
		Email:         req.Payload.Email,
		ServiceReason: req.Payload.ServiceReason,
		AppointmentAt: req.AppointmentAt,
		Status:        storage.StatusDraft,
	}
	if req.Branch != nil {
		id := req.Branch.ID
		fields.BranchID = &id
		fields.BranchName = req.Branch.Name
	}

	var saved storage.SavedAppointment
	if v != nil {
		saved = v.Appointments.Save(ctx, fields)
		v.Profile.Save(ctx, fields.OwnerName, fields.Phone, fields.Email)
	}

	w.logger.Info("booking.submitted",
		"slug", sess.Slug,
		"visitor_id", visitorID,
		"appointment_id", saved.ID,
	)

	id := saved.ID
	w.dispatch(audit.Event{
		VisitorID:     visitorID,
		ClinicSlug:    sess.Slug,
		Action:        audit.ActionBookingSubmitted,
		AppointmentID: &id,
		Metadata:      map[string]any{"appointment_at": req.Payload.AppointmentAt, "branch_id": req.Payload.BranchID},
	})

	return Outcome{
		Saved:         saved,
		RedirectTo:    "/" + sess.Slug,
		RedirectAfter: w.redirectDelay,
	}, nil
}

// ======================================================
// INTERNAL
// ======================================================

func (w *Workflow) dispatch(ev audit.Event) {
	if w.events != nil {
		w.events.Dispatch(ev)
	}
}

func (w *Workflow) transitionLogger(slug string) func(from, to domain.State) {
	return func(from, to domain.State) {
		w.logger.Debug("booking.transition", "slug", slug, "from", from, "to", to)
	}
}

func remoteReason(err error) string {
	var rf *directory.RemoteFetchError
	if errors.As(err, &rf) {
		return rf.Message
	}
	return err.Error()
}
