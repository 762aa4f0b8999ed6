package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"homework-tools/api/internal/textproc"
)

type SubmissionRepo struct{ DB *sql.DB }

func NewSubmissionRepo(db *sql.DB) *SubmissionRepo { return &SubmissionRepo{DB: db} }

// Submission is one stored artifact plus its parsing and classification
// results. Rows are written once and never mutated.
type Submission struct {
	ID              uuid.UUID
	SessionID       *uuid.UUID
	FilePath        string
	FileType        string // image | pdf | text
	RawText         string
	Problems        []textproc.Problem
	ConfidenceScore int // 0..100
	Subject         string
	Topic           string
	GradeLevel      int
	Difficulty      string
	Prerequisites   []string
	DetectedGaps    []string
	CreatedAt       time.Time
}

func (r *SubmissionRepo) Insert(ctx context.Context, s *Submission) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	problems, _ := json.Marshal(s.Problems)
	prereqs, _ := json.Marshal(s.Prerequisites)
	gaps, _ := json.Marshal(s.DetectedGaps)

	const q = `
insert into submissions (
  id, session_id, file_path, file_type, raw_text, parsed_problems,
  confidence_score, subject, topic, grade_level, difficulty,
  prerequisites, detected_gaps
) values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`
	_, err := r.DB.ExecContext(ctx, q,
		s.ID, s.SessionID, nullStr(s.FilePath), s.FileType, s.RawText, problems,
		s.ConfidenceScore, s.Subject, s.Topic, s.GradeLevel, s.Difficulty,
		prereqs, gaps,
	)
	return err
}

func (r *SubmissionRepo) GetByID(ctx context.Context, id uuid.UUID) (*Submission, error) {
	const q = `
select id, session_id,
       coalesce(file_path,'') as file_path,
       file_type, raw_text, parsed_problems,
       confidence_score,
       coalesce(subject,'') as subject,
       coalesce(topic,'') as topic,
       coalesce(grade_level,0) as grade_level,
       coalesce(difficulty,'') as difficulty,
       prerequisites, detected_gaps, created_at
from submissions
where id = $1`
	row := r.DB.QueryRowContext(ctx, q, id)

	var (
		s             Submission
		sessionID     sql.Null[uuid.UUID]
		problems      []byte
		prereqs, gaps []byte
	)
	if err := row.Scan(&s.ID, &sessionID, &s.FilePath, &s.FileType, &s.RawText, &problems,
		&s.ConfidenceScore, &s.Subject, &s.Topic, &s.GradeLevel, &s.Difficulty,
		&prereqs, &gaps, &s.CreatedAt); err != nil {
		return nil, err
	}
	if sessionID.Valid {
		s.SessionID = &sessionID.V
	}
	_ = json.Unmarshal(problems, &s.Problems)
	_ = json.Unmarshal(prereqs, &s.Prerequisites)
	_ = json.Unmarshal(gaps, &s.DetectedGaps)
	return &s, nil
}

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}
