package booking

// TimeSlot is one bookable time of day. Slots are a fixed local set, not a
// feed from the clinic.
type TimeSlot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

func DefaultTimeSlots() []TimeSlot {
	return []TimeSlot{
		{Time: "9:00 AM", Available: true},
		{Time: "10:00 AM", Available: true},
		{Time: "11:00 AM", Available: true},
		{Time: "12:00 PM", Available: true},
		{Time: "1:00 PM", Available: false},
		{Time: "2:00 PM", Available: true},
		{Time: "3:00 PM", Available: true},
		{Time: "4:00 PM", Available: true},
	}
}

// FindSlot matches by clock time, so label spelling and case do not matter.
func FindSlot(slots []TimeSlot, label string) (TimeSlot, bool) {
	hour, minute, err := ParseTimeLabel(label)
	if err != nil {
		return TimeSlot{}, false
	}
	for _, s := range slots {
		h, m, err := ParseTimeLabel(s.Time)
		if err == nil && h == hour && m == minute {
			return s, true
		}
	}
	return TimeSlot{}, false
}
