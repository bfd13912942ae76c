package domain

import "regexp"

// Weekday keys used by operating hours.
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// Weekdays lists the keys from Monday to Sunday.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// DayHours holds the opening window of one day. Times are "HH:MM".
type DayHours struct {
	Open   string `json:"open"`
	Close  string `json:"close"`
	Closed bool   `json:"closed"`
}

// OperatingHours maps every weekday to its hours.
type OperatingHours struct {
	Monday    DayHours `json:"monday"`
	Tuesday   DayHours `json:"tuesday"`
	Wednesday DayHours `json:"wednesday"`
	Thursday  DayHours `json:"thursday"`
	Friday    DayHours `json:"friday"`
	Saturday  DayHours `json:"saturday"`
	Sunday    DayHours `json:"sunday"`
}

// DefaultOperatingHours seeds Monday to Saturday 09:00-17:00 and Sunday closed.
func DefaultOperatingHours() OperatingHours {
	open := DayHours{Open: "09:00", Close: "17:00"}
	return OperatingHours{
		Monday:    open,
		Tuesday:   open,
		Wednesday: open,
		Thursday:  open,
		Friday:    open,
		Saturday:  open,
		Sunday:    DayHours{Open: "09:00", Close: "17:00", Closed: true},
	}
}

// Day returns a pointer to the hours of day, or nil for an unknown key.
func (h *OperatingHours) Day(day Weekday) *DayHours {
	switch day {
	case Monday:
		return &h.Monday
	case Tuesday:
		return &h.Tuesday
	case Wednesday:
		return &h.Wednesday
	case Thursday:
		return &h.Thursday
	case Friday:
		return &h.Friday
	case Saturday:
		return &h.Saturday
	case Sunday:
		return &h.Sunday
	}
	return nil
}

var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ValidClock reports whether s is a 24-hour "HH:MM" time.
func ValidClock(s string) bool {
	return clockPattern.MatchString(s)
}
