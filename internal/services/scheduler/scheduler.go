package scheduler

import (
	"strings"
	"time"

	"submission-routing-engine/internal/models"
)

// DefaultBuffer is added to the earliest permitted instant before snapping
// to business hours.
const DefaultBuffer = 30 * time.Minute

// Clock returns the current instant.
type Clock func() time.Time

// Scheduler picks the follow-up slot for a client. It holds no mutable state
// and is safe for concurrent use.
type Scheduler struct {
	clock    Clock
	buffer   time.Duration
	location *time.Location
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock injects the time source.
func WithClock(c Clock) Option {
	return func(s *Scheduler) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithBuffer overrides the buffer added after the availability window.
func WithBuffer(d time.Duration) Option {
	return func(s *Scheduler) {
		if d >= 0 {
			s.buffer = d
		}
	}
}

// WithLocation evaluates weekdays and business hours in loc.
func WithLocation(loc *time.Location) Option {
	return func(s *Scheduler) {
		s.location = loc
	}
}

// New creates a Scheduler using the wall clock and a 30 minute buffer.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		clock:  time.Now,
		buffer: DefaultBuffer,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Schedule reads the clock once and schedules against that snapshot.
func (s *Scheduler) Schedule(sc models.SocialContext) models.ScheduledAction {
	return s.ScheduleAt(sc, s.clock())
}

// ScheduleAt schedules relative to an explicit now.
func (s *Scheduler) ScheduleAt(sc models.SocialContext, now time.Time) models.ScheduledAction {
	if s.location != nil {
		now = now.In(s.location)
	}

	availability := ParseAvailability(sc, now)
	scheduled := NextBusinessWindow(availability.AvailableAfter.Add(s.buffer))

	var reason, respected string
	if len(availability.Restrictions) > 0 {
		reason = "Scheduled after availability window. " + strings.Join(availability.Restrictions, "; ")
		respected = availability.Restrictions[0]
	} else {
		reason = "Scheduled within standard business hours"
		respected = BusinessHoursPolicy
	}

	if availability.Notes != "" {
		reason += ". Client note: " + availability.Notes
	}

	return models.ScheduledAction{
		ScheduledTime:       scheduled,
		Reason:              reason,
		RespectedConstraint: respected,
	}
}

// Now returns the scheduler's current instant.
func (s *Scheduler) Now() time.Time {
	now := s.clock()
	if s.location != nil {
		now = now.In(s.location)
	}
	return now
}
