package data

// Package data contains persistence adapters. The gatekeeper itself never
// touches a database; only the asynchronous audit trail lands here.

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/framevault/studio-gate/internal/audit"
)

// GateAuditRepo persists gate decisions to Postgres. It implements
// audit.Sink and is only ever called from the audit worker, never from the
// request path.
type GateAuditRepo struct {
	DB *sql.DB
}

// NewGateAuditRepo creates a repo over the given database handle.
func NewGateAuditRepo(db *sql.DB) *GateAuditRepo {
	return &GateAuditRepo{DB: db}
}

const gateAuditSchema = `
CREATE TABLE IF NOT EXISTS gate_audit (
	id          UUID PRIMARY KEY,
	decided_at  TIMESTAMPTZ NOT NULL,
	path        TEXT NOT NULL,
	category    TEXT NOT NULL,
	outcome     TEXT NOT NULL,
	reason      TEXT NOT NULL DEFAULT '',
	user_id     TEXT NOT NULL DEFAULT '',
	client_id   TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS gate_audit_decided_at_idx ON gate_audit (decided_at);
CREATE INDEX IF NOT EXISTS gate_audit_client_id_idx ON gate_audit (client_id);
`

// EnsureSchema creates the audit table when it does not exist.
func (r *GateAuditRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, gateAuditSchema); err != nil {
		return fmt.Errorf("ensure gate_audit schema: %w", err)
	}
	return nil
}

// Write inserts one decision row.
func (r *GateAuditRepo) Write(ctx context.Context, ev audit.Event) error {
	const q = `
		INSERT INTO gate_audit (id, decided_at, path, category, outcome, reason, user_id, client_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.DB.ExecContext(ctx, q,
		uuid.New(), ev.Time, ev.Path, ev.Category, string(ev.Outcome),
		ev.Reason, ev.UserID, ev.ClientID)
	if err != nil {
		return fmt.Errorf("insert gate audit row: %w", err)
	}
	return nil
}

var _ audit.Sink = (*GateAuditRepo)(nil)
