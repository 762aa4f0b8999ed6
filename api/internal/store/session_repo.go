package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type SessionRepo struct{ DB *sql.DB }

func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{DB: db} }

// Session is one learning session; its scaffolding mode drives guidance
// verbosity for every submission attached to it.
type Session struct {
	ID              uuid.UUID
	StudentID       *uuid.UUID
	StudentLevel    int
	Pace            string // slow | medium | fast
	ScaffoldingMode string // minimal | moderate | heavy
	StartedAt       time.Time
	EndedAt         *time.Time
}

func (r *SessionRepo) Insert(ctx context.Context, s *Session) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.Pace == "" {
		s.Pace = "medium"
	}
	if s.ScaffoldingMode == "" {
		s.ScaffoldingMode = "moderate"
	}
	if s.StartedAt.IsZero() {
		s.StartedAt = time.Now()
	}
	const q = `
insert into sessions (id, student_id, student_level, pace, scaffolding_mode, started_at)
values ($1,$2,$3,$4,$5,$6)`
	_, err := r.DB.ExecContext(ctx, q, s.ID, s.StudentID, nullInt(s.StudentLevel), s.Pace, s.ScaffoldingMode, s.StartedAt)
	return err
}

func (r *SessionRepo) GetByID(ctx context.Context, id uuid.UUID) (*Session, error) {
	const q = `
select id, student_id, coalesce(student_level,0), pace, scaffolding_mode, started_at, ended_at
from sessions
where id = $1`
	row := r.DB.QueryRowContext(ctx, q, id)

	var (
		s         Session
		studentID sql.Null[uuid.UUID]
		endedAt   sql.NullTime
	)
	if err := row.Scan(&s.ID, &studentID, &s.StudentLevel, &s.Pace, &s.ScaffoldingMode, &s.StartedAt, &endedAt); err != nil {
		return nil, err
	}
	if studentID.Valid {
		s.StudentID = &studentID.V
	}
	if endedAt.Valid {
		s.EndedAt = &endedAt.Time
	}
	return &s, nil
}

// End stamps the session as finished.
func (r *SessionRepo) End(ctx context.Context, id uuid.UUID) error {
	const q = `update sessions set ended_at = now() where id = $1 and ended_at is null`
	res, err := r.DB.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return ErrNotFound
	}
	return nil
}

func nullInt(n int) any {
	if n == 0 {
		return nil
	}
	return n
}
