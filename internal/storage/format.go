package storage

import (
	"fmt"
	"strings"
	"time"
)

var ukWeekdays = [...]string{"неділя", "понеділок", "вівторок", "середа", "четвер", "пʼятниця", "субота"}

var ukMonthsGenitive = [...]string{
	"січня", "лютого", "березня", "квітня", "травня", "червня",
	"липня", "серпня", "вересня", "жовтня", "листопада", "грудня",
}

// FormatForDisplay renders an appointment time for the "my appointments"
// list. locale "uk" is the default; "en" is also understood.
func FormatForDisplay(t time.Time, loc *time.Location, locale string) string {
	if loc != nil {
		t = t.In(loc)
	}

	switch strings.ToLower(locale) {
	case "en", "en-us":
		return t.Format("Monday, January 2, 2006 at 03:04 PM")
	default:
		return fmt.Sprintf("%s, %d %s %d р. о %02d:%02d",
			ukWeekdays[t.Weekday()],
			t.Day(),
			ukMonthsGenitive[t.Month()-1],
			t.Year(),
			t.Hour(),
			t.Minute(),
		)
	}
}
