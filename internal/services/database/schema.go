package database

// Schema creates the underwriter reference table and the submission tracking
// table. It is safe to run repeatedly.
const Schema = `
CREATE TABLE IF NOT EXISTS underwriters (
	id                  BIGSERIAL PRIMARY KEY,
	name                TEXT NOT NULL UNIQUE,
	email               TEXT NOT NULL DEFAULT '',
	phone               TEXT NOT NULL DEFAULT '',
	carrier             TEXT NOT NULL DEFAULT '',
	regions             TEXT[] NOT NULL DEFAULT '{}',
	naics_specialties   TEXT[] NOT NULL DEFAULT '{}',
	risk_appetite       TEXT[] NOT NULL DEFAULT '{}',
	risk_aversions      TEXT[] NOT NULL DEFAULT '{}',
	avg_turnaround_days DOUBLE PRECISION NOT NULL CHECK (avg_turnaround_days >= 0),
	acceptance_rate     DOUBLE PRECISION NOT NULL CHECK (acceptance_rate BETWEEN 0 AND 1),
	current_workload    TEXT NOT NULL CHECK (current_workload IN ('low', 'medium', 'high')),
	notes               TEXT NOT NULL DEFAULT '',
	is_active           BOOLEAN NOT NULL DEFAULT TRUE,
	created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS submissions (
	submission_id           TEXT PRIMARY KEY,
	business_name           TEXT NOT NULL,
	current_state           TEXT NOT NULL,
	state_history           JSONB NOT NULL DEFAULT '[]',
	scheduled_send_time     TIMESTAMPTZ,
	recommended_underwriter TEXT NOT NULL DEFAULT '',
	broker_tasks_pending    INTEGER NOT NULL DEFAULT 0,
	created_at              TIMESTAMPTZ NOT NULL,
	updated_at              TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_submissions_due
	ON submissions (scheduled_send_time)
	WHERE current_state = 'scheduled';
`
