// Package store persists submissions, sessions, practice attempts and
// misconceptions in Postgres. Plain database/sql over the pgx driver;
// list-valued fields live in jsonb columns.
package store

import (
	"context"
	"database/sql"
)

var ErrNotFound = sql.ErrNoRows

// EnsureSchema creates the tables on startup when they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	const ddl = `
create table if not exists sessions (
  id uuid primary key,
  student_id uuid,
  student_level int,
  pace text not null default 'medium',
  scaffolding_mode text not null default 'moderate',
  started_at timestamptz not null default now(),
  ended_at timestamptz
);

create table if not exists submissions (
  id uuid primary key,
  session_id uuid references sessions(id),
  file_path text,
  file_type text not null,
  raw_text text not null default '',
  parsed_problems jsonb not null default '[]',
  confidence_score int not null default 0,
  subject text,
  topic text,
  grade_level int,
  difficulty text,
  prerequisites jsonb not null default '[]',
  detected_gaps jsonb not null default '[]',
  created_at timestamptz not null default now()
);

create table if not exists practice_attempts (
  id uuid primary key,
  session_id uuid references sessions(id),
  problem_id uuid,
  student_answer text not null default '',
  is_correct boolean not null default false,
  hints_used int not null default 0,
  time_spent int not null default 0,
  created_at timestamptz not null default now()
);

create table if not exists misconceptions (
  id uuid primary key,
  session_id uuid references sessions(id),
  topic text not null,
  description text not null default '',
  example_problem text,
  detected_at timestamptz not null default now(),
  resolved boolean not null default false,
  resolved_at timestamptz
);`
	_, err := db.ExecContext(ctx, ddl)
	return err
}
