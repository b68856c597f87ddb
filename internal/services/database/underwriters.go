package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"submission-routing-engine/internal/models"
)

// UnderwriterRepository handles underwriter reference data.
type UnderwriterRepository struct {
	db *DB
}

// NewUnderwriterRepository creates a new underwriter repository.
func NewUnderwriterRepository(db *DB) *UnderwriterRepository {
	return &UnderwriterRepository{db: db}
}

const underwriterColumns = `id, name, email, phone, carrier, regions, naics_specialties, risk_appetite,
	risk_aversions, avg_turnaround_days, acceptance_rate, current_workload, notes, created_at, updated_at`

// Upsert inserts an underwriter or replaces the one with the same name.
func (r *UnderwriterRepository) Upsert(ctx context.Context, uw *models.Underwriter) (int64, error) {
	if err := models.ValidateUnderwriter(uw); err != nil {
		return 0, err
	}

	var id int64
	err := r.db.QueryRowContext(ctx, upsertUnderwriterSQL, underwriterArgs(uw, time.Now().UTC())...).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert underwriter %s: %w", uw.Name, err)
	}
	return id, nil
}

// BulkUpsert writes all underwriters in one transaction. Any invalid entry
// aborts the whole import.
func (r *UnderwriterRepository) BulkUpsert(ctx context.Context, list []*models.Underwriter) (int, error) {
	for i, uw := range list {
		if err := models.ValidateUnderwriter(uw); err != nil {
			return 0, fmt.Errorf("underwriter %d: %w", i+1, err)
		}
	}

	now := time.Now().UTC()
	err := r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		for _, uw := range list {
			if _, err := tx.Exec(ctx, upsertUnderwriterSQL, underwriterArgs(uw, now)...); err != nil {
				return fmt.Errorf("failed to upsert underwriter %s: %w", uw.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(list), nil
}

// ListUnderwriters returns every active underwriter ordered by name.
func (r *UnderwriterRepository) ListUnderwriters(ctx context.Context) ([]*models.Underwriter, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+underwriterColumns+`
		FROM underwriters
		WHERE is_active = true
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query underwriters: %w", err)
	}
	defer rows.Close()

	list := []*models.Underwriter{}
	for rows.Next() {
		uw, err := scanUnderwriter(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, uw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read underwriters: %w", err)
	}

	return list, nil
}

// GetByName retrieves an underwriter. It returns nil when none matches.
func (r *UnderwriterRepository) GetByName(ctx context.Context, name string) (*models.Underwriter, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+underwriterColumns+`
		FROM underwriters
		WHERE name = $1 AND is_active = true`, name)

	uw, err := scanUnderwriter(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return uw, err
}

// UpdateWorkload changes an underwriter's current workload.
func (r *UnderwriterRepository) UpdateWorkload(ctx context.Context, name string, workload models.Workload) error {
	if !workload.IsValid() {
		return models.ErrInvalidWorkload
	}
	affected, err := r.db.ExecContext(ctx,
		`UPDATE underwriters SET current_workload = $2, updated_at = NOW() WHERE name = $1`,
		name, string(workload))
	if err != nil {
		return fmt.Errorf("failed to update workload: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("underwriter %q not found", name)
	}
	return nil
}

// Deactivate soft-deletes an underwriter.
func (r *UnderwriterRepository) Deactivate(ctx context.Context, name string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE underwriters SET is_active = false, updated_at = NOW() WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("failed to deactivate underwriter: %w", err)
	}
	return nil
}

const upsertUnderwriterSQL = `
	INSERT INTO underwriters (name, email, phone, carrier, regions, naics_specialties, risk_appetite,
		risk_aversions, avg_turnaround_days, acceptance_rate, current_workload, notes, created_at, updated_at, is_active)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13, true)
	ON CONFLICT (name) DO UPDATE SET
		email = EXCLUDED.email,
		phone = EXCLUDED.phone,
		carrier = EXCLUDED.carrier,
		regions = EXCLUDED.regions,
		naics_specialties = EXCLUDED.naics_specialties,
		risk_appetite = EXCLUDED.risk_appetite,
		risk_aversions = EXCLUDED.risk_aversions,
		avg_turnaround_days = EXCLUDED.avg_turnaround_days,
		acceptance_rate = EXCLUDED.acceptance_rate,
		current_workload = EXCLUDED.current_workload,
		notes = EXCLUDED.notes,
		updated_at = EXCLUDED.updated_at,
		is_active = true
	RETURNING id`

func underwriterArgs(uw *models.Underwriter, now time.Time) []interface{} {
	regions := make([]string, len(uw.Regions))
	for i, region := range uw.Regions {
		regions[i] = string(region)
	}
	return []interface{}{
		uw.Name,
		uw.Email,
		uw.Phone,
		uw.Carrier,
		regions,
		nonNil(uw.NAICSSpecialties),
		nonNil(uw.RiskAppetite),
		nonNil(uw.RiskAversions),
		uw.AvgTurnaroundDays,
		uw.AcceptanceRate,
		string(uw.CurrentWorkload),
		uw.Notes,
		now,
	}
}

func scanUnderwriter(row pgx.Row) (*models.Underwriter, error) {
	var uw models.Underwriter
	var regions []string
	var workload string

	err := row.Scan(
		&uw.ID,
		&uw.Name,
		&uw.Email,
		&uw.Phone,
		&uw.Carrier,
		&regions,
		&uw.NAICSSpecialties,
		&uw.RiskAppetite,
		&uw.RiskAversions,
		&uw.AvgTurnaroundDays,
		&uw.AcceptanceRate,
		&workload,
		&uw.Notes,
		&uw.CreatedAt,
		&uw.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan underwriter: %w", err)
	}

	uw.Regions = make([]models.Region, len(regions))
	for i, region := range regions {
		uw.Regions[i] = models.Region(region)
	}
	uw.CurrentWorkload = models.Workload(workload)
	return &uw, nil
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
