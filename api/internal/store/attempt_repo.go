package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type AttemptRepo struct{ DB *sql.DB }

func NewAttemptRepo(db *sql.DB) *AttemptRepo { return &AttemptRepo{DB: db} }

type PracticeAttempt struct {
	ID            uuid.UUID
	SessionID     *uuid.UUID
	ProblemID     uuid.UUID
	StudentAnswer string
	IsCorrect     bool
	HintsUsed     int
	TimeSpent     int // seconds
	CreatedAt     time.Time
}

func (r *AttemptRepo) Insert(ctx context.Context, a *PracticeAttempt) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	const q = `
insert into practice_attempts (id, session_id, problem_id, student_answer, is_correct, hints_used, time_spent)
values ($1,$2,$3,$4,$5,$6,$7)`
	_, err := r.DB.ExecContext(ctx, q,
		a.ID, a.SessionID, a.ProblemID, a.StudentAnswer, a.IsCorrect, a.HintsUsed, a.TimeSpent)
	return err
}

// CountCorrectBySession reports how many attempts in a session were
// correct, for parent-facing summaries.
func (r *AttemptRepo) CountCorrectBySession(ctx context.Context, sessionID uuid.UUID) (correct, total int, err error) {
	const q = `
select count(*) filter (where is_correct), count(*)
from practice_attempts
where session_id = $1`
	err = r.DB.QueryRowContext(ctx, q, sessionID).Scan(&correct, &total)
	return correct, total, err
}
