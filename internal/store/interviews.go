package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Madhuram99/ATS-SYSTEM/internal/apperr"
	"github.com/Madhuram99/ATS-SYSTEM/internal/models"
)

// CreateInterview persists an interview and its interviewer set in one
// transaction, and applies the one-way stage nudge: a candidate still at
// new or screening moves to interview, anyone further along is untouched.
// It returns the candidate's stage after the commit.
func (db *DB) CreateInterview(iv *models.Interview) (models.Stage, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return "", fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	if iv.Status == "" {
		iv.Status = models.InterviewScheduled
	}

	res, err := tx.Exec(`
		INSERT INTO interviews (candidate_id, job_id, scheduled_at, duration, location, status, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, iv.CandidateID, iv.JobID, iv.ScheduledAt, iv.Duration, iv.Location, iv.Status, iv.Notes)
	if err != nil {
		return "", fmt.Errorf("store: insert interview: %w", err)
	}
	iv.ID, _ = res.LastInsertId()

	for _, interviewer := range iv.Interviewers {
		if _, err := tx.Exec(`INSERT OR IGNORE INTO interview_interviewers (interview_id, interviewer)
			VALUES (?, ?)`, iv.ID, interviewer); err != nil {
			return "", fmt.Errorf("store: insert interviewer: %w", err)
		}
	}

	// One-way nudge inside the same transaction.
	if _, err := tx.Exec(`UPDATE candidates SET stage = ?, updated_at = ?
		WHERE id = ? AND stage IN (?, ?)`,
		models.StageInterview, time.Now().UTC(), iv.CandidateID,
		models.StageNew, models.StageScreening); err != nil {
		return "", fmt.Errorf("store: nudge stage: %w", err)
	}

	var stage models.Stage
	if err := tx.QueryRow(`SELECT stage FROM candidates WHERE id = ?`, iv.CandidateID).
		Scan(&stage); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", apperr.ErrNotFound
		}
		return "", fmt.Errorf("store: read stage: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("store: commit interview: %w", err)
	}
	return stage, nil
}

// GetInterview returns one interview with its interviewer set.
func (db *DB) GetInterview(id int64) (*models.Interview, error) {
	var iv models.Interview
	err := db.conn.QueryRow(`SELECT id, candidate_id, job_id, scheduled_at, duration,
		location, status, notes FROM interviews WHERE id = ?`, id).
		Scan(&iv.ID, &iv.CandidateID, &iv.JobID, &iv.ScheduledAt, &iv.Duration,
			&iv.Location, &iv.Status, &iv.Notes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get interview: %w", err)
	}
	interviewers, err := db.listInterviewers(iv.ID)
	if err != nil {
		return nil, err
	}
	iv.Interviewers = interviewers
	return &iv, nil
}

// ListInterviews returns a candidate's interviews, soonest first, each with
// its interviewer set.
func (db *DB) ListInterviews(candidateID int64) ([]models.Interview, error) {
	rows, err := db.conn.Query(`SELECT id, candidate_id, job_id, scheduled_at, duration,
		location, status, notes FROM interviews WHERE candidate_id = ? ORDER BY scheduled_at`, candidateID)
	if err != nil {
		return nil, fmt.Errorf("store: list interviews: %w", err)
	}
	defer rows.Close()

	var out []models.Interview
	for rows.Next() {
		var iv models.Interview
		if err := rows.Scan(&iv.ID, &iv.CandidateID, &iv.JobID, &iv.ScheduledAt,
			&iv.Duration, &iv.Location, &iv.Status, &iv.Notes); err != nil {
			return nil, err
		}
		out = append(out, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		interviewers, err := db.listInterviewers(out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Interviewers = interviewers
	}
	return out, nil
}

// UpdateInterviewStatus sets the status of an existing interview.
func (db *DB) UpdateInterviewStatus(id int64, status models.InterviewStatus) error {
	res, err := db.conn.Exec(`UPDATE interviews SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("store: update interview status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (db *DB) listInterviewers(interviewID int64) ([]string, error) {
	rows, err := db.conn.Query(`SELECT interviewer FROM interview_interviewers
		WHERE interview_id = ? ORDER BY interviewer`, interviewID)
	if err != nil {
		return nil, fmt.Errorf("store: list interviewers: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}
