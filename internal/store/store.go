// Package store provides SQLite-backed persistence for the applicant-tracking
// domain. Foreign keys are enforced so deleting a parent row cascades to
// every owned sub-record.
package store

import (
	"database/sql"
	"errors"
	"fmt"

	sqlite3 "github.com/mattn/go-sqlite3"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS jobs (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	title            TEXT NOT NULL,
	department       TEXT NOT NULL DEFAULT '',
	location         TEXT NOT NULL DEFAULT '',
	description      TEXT NOT NULL DEFAULT '',
	requirements     TEXT NOT NULL DEFAULT '',
	responsibilities TEXT NOT NULL DEFAULT '',
	status           TEXT NOT NULL DEFAULT 'draft',
	salary_min       INTEGER NOT NULL DEFAULT 0,
	salary_max       INTEGER NOT NULL DEFAULT 0,
	created_by       TEXT NOT NULL DEFAULT '',
	created_at       DATETIME NOT NULL,
	updated_at       DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS candidates (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	first_name   TEXT NOT NULL,
	last_name    TEXT NOT NULL,
	email        TEXT NOT NULL UNIQUE,
	phone        TEXT NOT NULL DEFAULT '',
	resume_path  TEXT NOT NULL DEFAULT '',
	cover_letter TEXT NOT NULL DEFAULT '',
	job_id       INTEGER NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
	stage        TEXT NOT NULL DEFAULT 'new',
	created_at   DATETIME NOT NULL,
	updated_at   DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_candidates_job ON candidates(job_id);
CREATE INDEX IF NOT EXISTS idx_candidates_stage ON candidates(stage);

CREATE TABLE IF NOT EXISTS candidate_skills (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	candidate_id     INTEGER NOT NULL REFERENCES candidates(id) ON DELETE CASCADE,
	skill            TEXT NOT NULL,
	years_experience INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_skills_candidate ON candidate_skills(candidate_id);

CREATE TABLE IF NOT EXISTS candidate_education (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	candidate_id   INTEGER NOT NULL REFERENCES candidates(id) ON DELETE CASCADE,
	institution    TEXT NOT NULL,
	degree         TEXT NOT NULL,
	field_of_study TEXT NOT NULL DEFAULT '',
	from_date      TEXT NOT NULL,
	to_date        TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_education_candidate ON candidate_education(candidate_id);

CREATE TABLE IF NOT EXISTS candidate_experience (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	candidate_id INTEGER NOT NULL REFERENCES candidates(id) ON DELETE CASCADE,
	company      TEXT NOT NULL,
	position     TEXT NOT NULL,
	from_date    TEXT NOT NULL,
	to_date      TEXT NOT NULL DEFAULT '',
	description  TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_experience_candidate ON candidate_experience(candidate_id);

CREATE TABLE IF NOT EXISTS notes (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	candidate_id INTEGER NOT NULL REFERENCES candidates(id) ON DELETE CASCADE,
	author       TEXT NOT NULL,
	content      TEXT NOT NULL,
	created_at   DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_notes_candidate ON notes(candidate_id);

CREATE TABLE IF NOT EXISTS interviews (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	candidate_id INTEGER NOT NULL REFERENCES candidates(id) ON DELETE CASCADE,
	job_id       INTEGER NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
	scheduled_at DATETIME NOT NULL,
	duration     INTEGER NOT NULL,
	location     TEXT NOT NULL DEFAULT '',
	status       TEXT NOT NULL DEFAULT 'scheduled',
	notes        TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_interviews_candidate ON interviews(candidate_id);

CREATE TABLE IF NOT EXISTS interview_interviewers (
	interview_id INTEGER NOT NULL REFERENCES interviews(id) ON DELETE CASCADE,
	interviewer  TEXT NOT NULL,
	UNIQUE(interview_id, interviewer)
);

CREATE TABLE IF NOT EXISTS email_templates (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT NOT NULL,
	type       TEXT NOT NULL,
	subject    TEXT NOT NULL,
	body       TEXT NOT NULL,
	created_by TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL
);
`

// DB wraps a sql.DB with domain-specific operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping verifies the database connection is alive.
func (db *DB) Ping() error {
	return db.conn.Ping()
}

// isUniqueViolation reports whether err is a SQLite unique-constraint failure.
func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	return errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique
}
