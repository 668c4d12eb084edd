package booking

import (
	"errors"
	"testing"
	"time"

	"github.com/BruksfildServices01/vetcard/internal/directory"
)

var today = time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)

func readySession(t *testing.T, profile *directory.ClinicProfile) (*Session, *[]State) {
	t.Helper()
	var seen []State
	s := NewSession(profile.Slug, time.UTC, func(_, to State) { seen = append(seen, to) })
	if s.State() != StateLoading {
		t.Fatalf("expected loading, got %s", s.State())
	}
	if err := s.Loaded(profile, today); err != nil {
		t.Fatalf("Loaded failed: %v", err)
	}
	return s, &seen
}

func fill(t *testing.T, s *Session) {
	t.Helper()
	if err := s.Fill(validDraft().Fields); err != nil {
		t.Fatalf("Fill failed: %v", err)
	}
	if err := s.SelectTime("10:00 AM"); err != nil {
		t.Fatalf("SelectTime failed: %v", err)
	}
}

func TestSession_DefaultsToToday(t *testing.T) {
	s, _ := readySession(t, &directory.ClinicProfile{Slug: "x"})
	want := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	if !s.Draft.Date.Equal(want) {
		t.Fatalf("expected %s, got %s", want, s.Draft.Date)
	}
}

func TestSession_AutoSelectsSingleBranch(t *testing.T) {
	s, _ := readySession(t, &directory.ClinicProfile{Slug: "x", Branches: []directory.Branch{{ID: 7, Name: "Main"}}})

	if s.Draft.BranchID == nil || *s.Draft.BranchID != 7 {
		t.Fatalf("expected branch 7 to be auto-selected, got %v", s.Draft.BranchID)
	}
	if s.BranchRequired() {
		t.Fatal("expected no prompt for a single branch")
	}

	fill(t, s)
	req, err := s.BeginSubmit()
	if err != nil {
		t.Fatalf("BeginSubmit failed: %v", err)
	}
	if req.Payload.BranchID == nil || *req.Payload.BranchID != 7 {
		t.Fatalf("expected payload branch 7, got %v", req.Payload.BranchID)
	}
	if req.Branch == nil || req.Branch.Name != "Main" {
		t.Fatalf("expected resolved branch, got %+v", req.Branch)
	}
}

func TestSession_MultipleBranchesRequireChoice(t *testing.T) {
	s, _ := readySession(t, &directory.ClinicProfile{Slug: "x", Branches: []directory.Branch{{ID: 1}, {ID: 2}}})
	if s.Draft.BranchID != nil {
		t.Fatal("expected no auto-selection for multiple branches")
	}
	if !s.BranchRequired() {
		t.Fatal("expected branch to be required")
	}

	fill(t, s)
	if _, err := s.BeginSubmit(); !IsValidation(err, CodeBranchRequired) {
		t.Fatalf("expected branch_required, got %v", err)
	}
	if s.State() != StateReady {
		t.Fatalf("expected ready after validation failure, got %s", s.State())
	}
	if s.Message == "" {
		t.Fatal("expected a user prompt")
	}

	if err := s.SelectBranch(3); !IsValidation(err, CodeUnknownBranch) {
		t.Fatalf("expected unknown_branch, got %v", err)
	}
	if err := s.SelectBranch(2); err != nil {
		t.Fatalf("SelectBranch failed: %v", err)
	}
	if _, err := s.BeginSubmit(); err != nil {
		t.Fatalf("BeginSubmit failed: %v", err)
	}
}

func TestSession_NoBranchesOmitsBranch(t *testing.T) {
	s, _ := readySession(t, &directory.ClinicProfile{Slug: "x"})
	fill(t, s)

	req, err := s.BeginSubmit()
	if err != nil {
		t.Fatalf("BeginSubmit failed: %v", err)
	}
	if req.Payload.BranchID != nil || req.Branch != nil {
		t.Fatalf("expected no branch, got %+v", req)
	}
	if req.Payload.AppointmentAt != "2026-10-19T10:00:00Z" {
		t.Fatalf("unexpected appointment_at %s", req.Payload.AppointmentAt)
	}
	if req.Payload.Status != "draft" {
		t.Fatalf("expected draft status, got %s", req.Payload.Status)
	}
}

func TestSession_UnavailableSlotNeverSelectable(t *testing.T) {
	s, _ := readySession(t, &directory.ClinicProfile{Slug: "x"})

	for _, slot := range s.Slots {
		err := s.SelectTime(slot.Time)
		if slot.Available && err != nil {
			t.Fatalf("expected %s to be selectable, got %v", slot.Time, err)
		}
		if !slot.Available {
			if !IsValidation(err, CodeSlotUnavailable) {
				t.Fatalf("expected %s to be refused, got %v", slot.Time, err)
			}
			if s.Draft.Time == slot.Time {
				t.Fatalf("unavailable slot %s ended up selected", slot.Time)
			}
		}
	}

	if err := s.SelectTime("7:00 PM"); !IsValidation(err, CodeInvalidTime) {
		t.Fatalf("expected unknown slot to be refused, got %v", err)
	}
	if err := s.SelectTime("noon"); !IsValidation(err, CodeInvalidTime) {
		t.Fatalf("expected malformed label to be refused, got %v", err)
	}
	if err := s.SelectTime("2:00pm"); err != nil || s.Draft.Time != "2:00 PM" {
		t.Fatalf("expected 2:00pm to select 2:00 PM, got %q, %v", s.Draft.Time, err)
	}
}

func TestSession_BranchIgnoredWithoutBranches(t *testing.T) {
	s, _ := readySession(t, &directory.ClinicProfile{Slug: "x"})

	if err := s.SelectBranch(7); err != nil {
		t.Fatalf("expected branch to be ignored, got %v", err)
	}
	if s.Draft.BranchID != nil {
		t.Fatalf("expected no branch, got %d", *s.Draft.BranchID)
	}
}

func TestSession_FailReturnsToReady(t *testing.T) {
	s, seen := readySession(t, &directory.ClinicProfile{Slug: "x"})
	fill(t, s)

	if _, err := s.BeginSubmit(); err != nil {
		t.Fatalf("BeginSubmit failed: %v", err)
	}
	s.Fail("try again")

	if s.State() != StateReady {
		t.Fatalf("expected ready, got %s", s.State())
	}
	if s.Message != "try again" {
		t.Fatalf("expected failure message, got %q", s.Message)
	}
	if s.Draft.OwnerName != "Olena" {
		t.Fatal("expected form input to be kept")
	}

	want := []State{StateReady, StateSubmitting, StateFailed, StateReady}
	if len(*seen) != len(want) {
		t.Fatalf("expected transitions %v, got %v", want, *seen)
	}
	for i := range want {
		if (*seen)[i] != want[i] {
			t.Fatalf("expected transitions %v, got %v", want, *seen)
		}
	}

	if _, err := s.BeginSubmit(); err != nil {
		t.Fatalf("expected resubmission to be allowed, got %v", err)
	}
}

func TestSession_SucceededIsClosed(t *testing.T) {
	s, _ := readySession(t, &directory.ClinicProfile{Slug: "x"})
	fill(t, s)

	if _, err := s.BeginSubmit(); err != nil {
		t.Fatalf("BeginSubmit failed: %v", err)
	}
	s.Succeed("done")

	if s.State() != StateSucceeded {
		t.Fatalf("expected succeeded, got %s", s.State())
	}
	if _, err := s.BeginSubmit(); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed, got %v", err)
	}
	if err := s.SelectTime("9:00 AM"); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed, got %v", err)
	}
}

func TestSession_NotReadyWhileLoading(t *testing.T) {
	s := NewSession("x", time.UTC, nil)
	if _, err := s.BeginSubmit(); !errors.Is(err, ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}
	if err := s.Fill(Fields{}); !errors.Is(err, ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}
}
