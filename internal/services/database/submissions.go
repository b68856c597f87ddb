package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"submission-routing-engine/internal/models"
)

// SubmissionRepository persists submission status and history.
type SubmissionRepository struct {
	db *DB
}

// NewSubmissionRepository creates a new submission repository.
func NewSubmissionRepository(db *DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

const submissionColumns = `submission_id, business_name, current_state, state_history, scheduled_send_time,
	recommended_underwriter, broker_tasks_pending, created_at, updated_at`

// Save inserts a submission or replaces the stored one.
func (r *SubmissionRepository) Save(ctx context.Context, status *models.SubmissionStatus) error {
	history, err := json.Marshal(status.StateHistory)
	if err != nil {
		return fmt.Errorf("failed to encode state history: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO submissions (`+submissionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (submission_id) DO UPDATE SET
			business_name = EXCLUDED.business_name,
			current_state = EXCLUDED.current_state,
			state_history = EXCLUDED.state_history,
			scheduled_send_time = EXCLUDED.scheduled_send_time,
			recommended_underwriter = EXCLUDED.recommended_underwriter,
			broker_tasks_pending = EXCLUDED.broker_tasks_pending,
			updated_at = EXCLUDED.updated_at`,
		status.SubmissionID,
		status.BusinessName,
		string(status.CurrentState),
		history,
		status.ScheduledSendTime,
		status.RecommendedUnderwriter,
		status.BrokerTasksPending,
		status.CreatedAt,
		status.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save submission %s: %w", status.SubmissionID, err)
	}
	return nil
}

// Get returns models.ErrSubmissionNotFound for unknown ids.
func (r *SubmissionRepository) Get(ctx context.Context, id string) (*models.SubmissionStatus, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+submissionColumns+`
		FROM submissions
		WHERE submission_id = $1`, id)

	status, err := scanSubmission(row)
	if err == pgx.ErrNoRows {
		return nil, models.ErrSubmissionNotFound
	}
	return status, err
}

// List returns every submission, oldest first.
func (r *SubmissionRepository) List(ctx context.Context) ([]*models.SubmissionStatus, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+submissionColumns+`
		FROM submissions
		ORDER BY created_at, submission_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	list := []*models.SubmissionStatus{}
	for rows.Next() {
		status, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, status)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read submissions: %w", err)
	}

	return list, nil
}

func scanSubmission(row pgx.Row) (*models.SubmissionStatus, error) {
	var status models.SubmissionStatus
	var state string
	var history []byte

	err := row.Scan(
		&status.SubmissionID,
		&status.BusinessName,
		&state,
		&history,
		&status.ScheduledSendTime,
		&status.RecommendedUnderwriter,
		&status.BrokerTasksPending,
		&status.CreatedAt,
		&status.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan submission: %w", err)
	}

	status.CurrentState = models.SubmissionState(state)
	if err := json.Unmarshal(history, &status.StateHistory); err != nil {
		return nil, fmt.Errorf("failed to decode state history for %s: %w", status.SubmissionID, err)
	}
	return &status, nil
}
