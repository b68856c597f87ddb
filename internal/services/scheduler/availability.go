// Package scheduler turns free-text client availability into a follow-up slot
// inside business hours.
package scheduler

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"submission-routing-engine/internal/models"
)

const defaultContactHour = 9

// Rule is one availability phrasing. Match returns the earliest permitted
// instant and a restriction description when the phrasing is present.
type Rule struct {
	Name  string
	Match func(text string, now time.Time) (time.Time, string, bool)
}

// Rules are evaluated in order. Every match reassigns the earliest instant,
// so the last matching rule wins; every match adds its restriction.
var Rules = []Rule{
	{Name: "until", Match: matchUntil},
	{Name: "tomorrow", Match: matchTomorrow},
	{Name: "next_week", Match: matchNextWeek},
}

const dayPattern = `monday|tuesday|wednesday|thursday|friday|saturday|sunday|mon|tues|tue|wed|thurs|thu|fri|sat|sun`

var (
	// "unavailable until tuesday [1[:30] [pm]]"
	untilDayTimeRe = regexp.MustCompile(`unavailable until\s+(` + dayPattern + `)\b(?:\s+(\d{1,2})(?::(\d{2}))?\s*(am|pm)?)?`)
	// "until 1[:30] [pm] tuesday"
	untilTimeDayRe = regexp.MustCompile(`until\s+(\d{1,2})(?::(\d{2}))?\s*(am|pm)?\s+(` + dayPattern + `)\b`)

	tomorrowRe = regexp.MustCompile(`(?:don'?t|do not)\s+(?:call|contact)?\s*tomorrow\s*(morning|afternoon|evening)?`)
)

var dayNames = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday,
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tues": time.Tuesday, "tue": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thurs": time.Thursday, "thu": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
}

// ParseAvailability extracts the earliest contact instant and restriction
// notes from a client's availability text. It never fails; text that matches
// no rule yields now with no restrictions.
func ParseAvailability(sc models.SocialContext, now time.Time) models.AvailabilityResult {
	result := models.AvailabilityResult{
		AvailableAfter: now,
		Restrictions:   []string{},
		Notes:          clientNote(sc),
	}

	text := combinedText(sc)
	if strings.TrimSpace(text) == "" {
		return result
	}

	for _, rule := range Rules {
		if at, restriction, ok := rule.Match(text, now); ok {
			result.AvailableAfter = at
			result.Restrictions = append(result.Restrictions, restriction)
		}
	}

	return result
}

func combinedText(sc models.SocialContext) string {
	text := strings.Join([]string{
		sc.AvailabilityNotes,
		sc.ContactRestrictions,
		sc.PersonalConstraints,
	}, " ")
	text = strings.ToLower(text)
	return strings.NewReplacer("’", "'", "‘", "'").Replace(text)
}

func clientNote(sc models.SocialContext) string {
	if sc.PersonalConstraints != "" {
		return sc.PersonalConstraints
	}
	return sc.AvailabilityNotes
}

func matchUntil(text string, now time.Time) (time.Time, string, bool) {
	var day, hourStr, minuteStr, meridiem string

	if m := untilDayTimeRe.FindStringSubmatch(text); m != nil {
		day, hourStr, minuteStr, meridiem = m[1], m[2], m[3], m[4]
	} else if m := untilTimeDayRe.FindStringSubmatch(text); m != nil {
		hourStr, minuteStr, meridiem, day = m[1], m[2], m[3], m[4]
	} else {
		return time.Time{}, "", false
	}

	weekday, ok := dayNames[day]
	if !ok {
		return time.Time{}, "", false
	}

	hour, minute, ok := clockTime(hourStr, minuteStr, meridiem)
	if !ok {
		return time.Time{}, "", false
	}

	daysAhead := (int(weekday) - int(now.Weekday()) + 7) % 7
	if daysAhead == 0 {
		daysAhead = 7
	}

	at := atClock(now, daysAhead, hour, minute)
	return at, fmt.Sprintf("Unavailable until %s %d:%02d", weekday, hour, minute), true
}

// clockTime converts 12-hour text to 24-hour values, defaulting to 09:00.
func clockTime(hourStr, minuteStr, meridiem string) (int, int, bool) {
	hour, minute := defaultContactHour, 0

	if hourStr != "" {
		h, err := strconv.Atoi(hourStr)
		if err != nil {
			return 0, 0, false
		}
		hour = h
	}
	if minuteStr != "" {
		m, err := strconv.Atoi(minuteStr)
		if err != nil {
			return 0, 0, false
		}
		minute = m
	}

	switch {
	case meridiem == "pm" && hour < 12:
		hour += 12
	case meridiem == "am" && hour == 12:
		hour = 0
	}

	if hour > 23 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

// matchTomorrow keeps the existing asymmetry: "tomorrow morning" frees up at
// 13:00 tomorrow while an unqualified "tomorrow" waits until the day after.
func matchTomorrow(text string, now time.Time) (time.Time, string, bool) {
	m := tomorrowRe.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, "", false
	}

	switch m[1] {
	case "morning":
		return atClock(now, 1, 13, 0), "No contact tomorrow morning", true
	case "afternoon":
		return atClock(now, 2, defaultContactHour, 0), "No contact tomorrow afternoon", true
	default:
		return atClock(now, 2, defaultContactHour, 0), "No contact tomorrow", true
	}
}

func matchNextWeek(text string, now time.Time) (time.Time, string, bool) {
	if !strings.Contains(text, "next week") {
		return time.Time{}, "", false
	}

	daysUntilMonday := (int(time.Monday) - int(now.Weekday()) + 7) % 7
	if daysUntilMonday == 0 {
		daysUntilMonday = 7
	}

	return atClock(now, daysUntilMonday, defaultContactHour, 0), "Prefers contact next week", true
}

// atClock returns hour:minute on the calendar day `days` after now, in now's location.
func atClock(now time.Time, days, hour, minute int) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day()+days, hour, minute, 0, 0, now.Location())
}
