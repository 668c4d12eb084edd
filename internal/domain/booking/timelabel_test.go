package booking

import (
	"testing"
	"time"
)

func TestParseTimeLabel(t *testing.T) {
	cases := []struct {
		label        string
		hour, minute int
	}{
		{"9:00 AM", 9, 0},
		{"10:30 am", 10, 30},
		{"12:00 PM", 12, 0},
		{"12:00 AM", 0, 0},
		{"12:45 am", 0, 45},
		{"1:00 PM", 13, 0},
		{"4:15 pm", 16, 15},
		{" 11:59 PM ", 23, 59},
	}

	for _, c := range cases {
		h, m, err := ParseTimeLabel(c.label)
		if err != nil {
			t.Fatalf("ParseTimeLabel(%q) failed: %v", c.label, err)
		}
		if h != c.hour || m != c.minute {
			t.Fatalf("ParseTimeLabel(%q): expected %d:%02d, got %d:%02d", c.label, c.hour, c.minute, h, m)
		}
	}
}

func TestParseTimeLabel_Invalid(t *testing.T) {
	for _, label := range []string{"", "9 AM", "09:00", "13:00 PM", "0:30 AM", "9:60 AM", "9:00 XM", "14:00"} {
		if _, _, err := ParseTimeLabel(label); !IsValidation(err, CodeInvalidTime) {
			t.Fatalf("ParseTimeLabel(%q): expected invalid_time, got %v", label, err)
		}
	}
}

func TestTimeLabelRoundTrip(t *testing.T) {
	for h := 0; h < 24; h++ {
		for _, m := range []int{0, 5, 30, 59} {
			label := FormatTimeLabel(h, m)
			gotH, gotM, err := ParseTimeLabel(label)
			if err != nil {
				t.Fatalf("ParseTimeLabel(%q) failed: %v", label, err)
			}
			if gotH != h || gotM != m {
				t.Fatalf("round trip %02d:%02d -> %q -> %02d:%02d", h, m, label, gotH, gotM)
			}
			if again := FormatTimeLabel(gotH, gotM); again != label {
				t.Fatalf("expected idempotent format, got %q then %q", label, again)
			}
		}
	}
}

func TestCombineDateTime(t *testing.T) {
	loc := time.FixedZone("EEST", 3*60*60)
	date := time.Date(2026, 10, 20, 0, 0, 0, 0, loc)

	at, err := CombineDateTime(date, "2:00 PM", loc)
	if err != nil {
		t.Fatalf("CombineDateTime failed: %v", err)
	}
	want := time.Date(2026, 10, 20, 14, 0, 0, 0, loc)
	if !at.Equal(want) {
		t.Fatalf("expected %s, got %s", want, at)
	}
	if at.UTC().Format(time.RFC3339) != "2026-10-20T11:00:00Z" {
		t.Fatalf("unexpected UTC rendering %s", at.UTC().Format(time.RFC3339))
	}
}
