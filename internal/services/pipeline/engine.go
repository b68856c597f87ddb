// Package pipeline runs a submission from extraction through mapping,
// routing, scheduling and summary, and tracks its lifecycle state.
package pipeline

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"submission-routing-engine/internal/models"
	"submission-routing-engine/internal/services/extractor"
	"submission-routing-engine/internal/services/mapper"
	"submission-routing-engine/internal/services/metrics"
	"submission-routing-engine/internal/services/router"
	"submission-routing-engine/internal/services/scheduler"
	"submission-routing-engine/internal/services/summary"
	"submission-routing-engine/internal/utils"
)

// ActionSendEmail is the only follow-up action the engine schedules.
const ActionSendEmail = "send_email"

// Engine orchestrates submissions.
type Engine struct {
	router    *router.Service
	scheduler *scheduler.Scheduler
	summaries *summary.Generator
	store     SubmissionStore
	extractor extractor.Extractor
	newID     func() string
}

// Option configures an Engine.
type Option func(*Engine)

// WithStore replaces the in-memory submission store.
func WithStore(store SubmissionStore) Option {
	return func(e *Engine) { e.store = store }
}

// WithExtractor enables ProcessTranscript.
func WithExtractor(x extractor.Extractor) Option {
	return func(e *Engine) { e.extractor = x }
}

// WithIDGenerator overrides submission id generation.
func WithIDGenerator(gen func() string) Option {
	return func(e *Engine) { e.newID = gen }
}

// NewEngine creates an engine. Summaries share the scheduler's clock.
func NewEngine(rt *router.Service, sched *scheduler.Scheduler, opts ...Option) *Engine {
	e := &Engine{
		router:    rt,
		scheduler: sched,
		summaries: summary.NewGenerator(sched.Now),
		store:     NewMemoryStore(),
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ProcessTranscript extracts a transcript and processes the result.
func (e *Engine) ProcessTranscript(ctx context.Context, transcript string) (*models.SubmissionPackage, error) {
	if e.extractor == nil {
		return nil, extractor.ErrExtractorNotConfigured
	}

	start := time.Now()
	ext, err := e.extractor.Extract(ctx, transcript)
	metrics.PipelineDuration.WithLabelValues("extract").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("failed to extract transcript: %w", err)
	}

	return e.ProcessSubmission(ctx, ext)
}

// ProcessSubmission maps, routes, schedules and summarizes an extraction and
// stores the resulting submission in the scheduled state.
func (e *Engine) ProcessSubmission(ctx context.Context, ext *models.DiscoveryCallExtraction) (*models.SubmissionPackage, error) {
	if ext == nil {
		return nil, fmt.Errorf("extraction is required")
	}

	start := time.Now()
	now := e.scheduler.Now()

	status := &models.SubmissionStatus{
		SubmissionID: e.newID(),
		BusinessName: ext.BusinessEntity.DisplayName(),
		CurrentState: models.StateReceived,
		StateHistory: []models.StateChange{{
			State:     models.StateReceived,
			Timestamp: now,
			Notes:     "Submission received",
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}
	metrics.SubmissionsProcessed.WithLabelValues(string(models.StateReceived)).Inc()

	logger := utils.Logger.With(
		zap.String("submission_id", status.SubmissionID),
		zap.String("business", status.BusinessName),
	)

	if err := e.transition(status, models.StateExtracted, "Extraction complete", now); err != nil {
		return nil, err
	}

	form := mapper.Map(ext)
	status.BrokerTasksPending = len(form.BrokerTasks)
	if err := e.transition(status, models.StateMapped,
		fmt.Sprintf("Form mapping complete (%d broker tasks)", len(form.BrokerTasks)), now); err != nil {
		return nil, err
	}

	routeStart := time.Now()
	routing, err := e.router.Route(ctx, form)
	metrics.PipelineDuration.WithLabelValues("route").Observe(time.Since(routeStart).Seconds())
	if err != nil {
		return nil, fmt.Errorf("failed to route submission: %w", err)
	}

	var top *models.RoutingRecommendation
	routedNote := "No underwriter available"
	if len(routing.Recommendations) > 0 {
		top = &routing.Recommendations[0]
		status.RecommendedUnderwriter = top.Underwriter.Name
		routedNote = "Routed to " + top.Underwriter.Name
	}
	if err := e.transition(status, models.StateRouted, routedNote, now); err != nil {
		return nil, err
	}

	action := e.scheduler.ScheduleAt(ext.SocialContext, now)
	metrics.ScheduleRequests.WithLabelValues(constraintKind(action)).Inc()
	sendAt := action.ScheduledTime
	status.ScheduledSendTime = &sendAt
	if err := e.transition(status, models.StateScheduled,
		"Scheduled for "+sendAt.Format("2006-01-02 15:04"), now); err != nil {
		return nil, err
	}

	if err := e.store.Save(ctx, status); err != nil {
		return nil, fmt.Errorf("failed to save submission: %w", err)
	}

	execSummary := e.summaries.Generate(ext, form, top, action)
	metrics.PipelineDuration.WithLabelValues("process").Observe(time.Since(start).Seconds())

	logger.Info("Submission processed",
		zap.String("recommended_underwriter", status.RecommendedUnderwriter),
		zap.Time("scheduled_send_time", sendAt),
		zap.Int("broker_tasks", status.BrokerTasksPending),
	)

	return &models.SubmissionPackage{
		Status:          status,
		Summary:         execSummary,
		Extraction:      ext,
		MappedForm:      form,
		RiskProfile:     routing.Profile,
		Recommendations: routing.Recommendations,
		Schedule:        action,
	}, nil
}

// UpdateState moves a stored submission forward.
func (e *Engine) UpdateState(ctx context.Context, id string, next models.SubmissionState, notes string) (*models.SubmissionStatus, error) {
	status, err := e.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := e.transition(status, next, notes, e.scheduler.Now()); err != nil {
		return nil, err
	}

	if err := e.store.Save(ctx, status); err != nil {
		return nil, fmt.Errorf("failed to save submission: %w", err)
	}

	utils.Logger.Info("Submission state updated",
		zap.String("submission_id", id),
		zap.String("state", string(next)),
	)

	return status, nil
}

// Get returns a stored submission.
func (e *Engine) Get(ctx context.Context, id string) (*models.SubmissionStatus, error) {
	return e.store.Get(ctx, id)
}

// PendingActions lists scheduled submissions whose send time is at or
// before now, earliest first.
func (e *Engine) PendingActions(ctx context.Context, now time.Time) ([]models.PendingAction, error) {
	submissions, err := e.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	pending := []models.PendingAction{}
	for _, s := range submissions {
		if !s.IsDue(now) {
			continue
		}
		pending = append(pending, models.PendingAction{
			SubmissionID:           s.SubmissionID,
			BusinessName:           s.BusinessName,
			ScheduledTime:          *s.ScheduledSendTime,
			RecommendedUnderwriter: s.RecommendedUnderwriter,
			Action:                 ActionSendEmail,
		})
	}

	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].ScheduledTime.Before(pending[j].ScheduledTime)
	})

	return pending, nil
}

func (e *Engine) transition(status *models.SubmissionStatus, next models.SubmissionState, notes string, at time.Time) error {
	if err := status.Transition(next, notes, at); err != nil {
		return fmt.Errorf("%s -> %s: %w", status.CurrentState, next, err)
	}
	metrics.SubmissionsProcessed.WithLabelValues(string(next)).Inc()
	return nil
}

func constraintKind(action models.ScheduledAction) string {
	if action.RespectedConstraint == scheduler.BusinessHoursPolicy {
		return metrics.ConstraintBusinessHours
	}
	return metrics.ConstraintClient
}
