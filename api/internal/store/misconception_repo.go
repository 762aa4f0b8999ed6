package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type MisconceptionRepo struct{ DB *sql.DB }

func NewMisconceptionRepo(db *sql.DB) *MisconceptionRepo { return &MisconceptionRepo{DB: db} }

type Misconception struct {
	ID             uuid.UUID
	SessionID      *uuid.UUID
	Topic          string
	Description    string
	ExampleProblem string
	DetectedAt     time.Time
	Resolved       bool
	ResolvedAt     *time.Time
}

func (r *MisconceptionRepo) Insert(ctx context.Context, m *Misconception) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	const q = `
insert into misconceptions (id, session_id, topic, description, example_problem)
values ($1,$2,$3,$4,$5)`
	_, err := r.DB.ExecContext(ctx, q, m.ID, m.SessionID, m.Topic, m.Description, nullStr(m.ExampleProblem))
	return err
}

// MarkResolved flips the resolved flag once; resolving an unknown or
// already-resolved row returns ErrNotFound.
func (r *MisconceptionRepo) MarkResolved(ctx context.Context, id uuid.UUID) error {
	const q = `update misconceptions set resolved = true, resolved_at = now() where id = $1 and not resolved`
	res, err := r.DB.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MisconceptionRepo) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]Misconception, error) {
	const q = `
select id, session_id, topic, description, coalesce(example_problem,''), detected_at, resolved, resolved_at
from misconceptions
where session_id = $1
order by detected_at`
	rows, err := r.DB.QueryContext(ctx, q, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Misconception
	for rows.Next() {
		var (
			m          Misconception
			sid        sql.Null[uuid.UUID]
			resolvedAt sql.NullTime
		)
		if err := rows.Scan(&m.ID, &sid, &m.Topic, &m.Description, &m.ExampleProblem,
			&m.DetectedAt, &m.Resolved, &resolvedAt); err != nil {
			return nil, err
		}
		if sid.Valid {
			m.SessionID = &sid.V
		}
		if resolvedAt.Valid {
			m.ResolvedAt = &resolvedAt.Time
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
