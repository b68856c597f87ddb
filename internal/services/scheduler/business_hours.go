package scheduler

import (
	"time"
)

// Business window, Monday through Friday.
const (
	BusinessStartHour = 9
	BusinessEndHour   = 17
)

// BusinessHoursPolicy describes the window for display.
const BusinessHoursPolicy = "Business hours (9 AM - 5 PM, Mon-Fri)"

// IsBusinessDay reports whether the weekday is Monday through Friday.
func IsBusinessDay(d time.Weekday) bool {
	return d != time.Saturday && d != time.Sunday
}

// InBusinessWindow reports whether t is a weekday within [09:00, 17:00).
func InBusinessWindow(t time.Time) bool {
	return IsBusinessDay(t.Weekday()) && t.Hour() >= BusinessStartHour && t.Hour() < BusinessEndHour
}

// NextBusinessWindow returns t when it already falls inside the business
// window, otherwise 09:00 on the next business day (the same day when t is a
// weekday morning). Applying it twice gives the same result as once.
func NextBusinessWindow(t time.Time) time.Time {
	if InBusinessWindow(t) {
		return t
	}

	if IsBusinessDay(t.Weekday()) && t.Hour() < BusinessStartHour {
		return startOfBusiness(t, 0)
	}

	// After hours or weekend: move to the next day and skip weekends.
	next := startOfBusiness(t, 1)
	for !IsBusinessDay(next.Weekday()) {
		next = startOfBusiness(next, 1)
	}
	return next
}

func startOfBusiness(t time.Time, days int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()+days, BusinessStartHour, 0, 0, 0, t.Location())
}
