package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Madhuram99/ATS-SYSTEM/internal/apperr"
	"github.com/Madhuram99/ATS-SYSTEM/internal/models"
)

const jobColumns = `id, title, department, location, description, requirements,
	responsibilities, status, salary_min, salary_max, created_by, created_at, updated_at`

// CreateJob inserts a job posting and fills in its generated ID.
func (db *DB) CreateJob(job *models.JobPosting) error {
	now := time.Now().UTC()
	job.CreatedAt = now
	job.UpdatedAt = now
	res, err := db.conn.Exec(`
		INSERT INTO jobs (title, department, location, description, requirements,
			responsibilities, status, salary_min, salary_max, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, job.Title, job.Department, job.Location, job.Description, job.Requirements,
		job.Responsibilities, job.Status, job.SalaryMin, job.SalaryMax, job.CreatedBy,
		job.CreatedAt, job.UpdatedAt)
	if err != nil {
		return fmt.Errorf("store: create job: %w", err)
	}
	job.ID, _ = res.LastInsertId()
	return nil
}

// GetJob returns one job posting by ID.
func (db *DB) GetJob(id int64) (*models.JobPosting, error) {
	row := db.conn.QueryRow(`SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id)
	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get job: %w", err)
	}
	return job, nil
}

// ListJobs returns jobs newest first, optionally filtered by status.
func (db *DB) ListJobs(status models.JobStatus) ([]models.JobPosting, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs`
	args := []any{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: list jobs: %w", err)
	}
	defer rows.Close()

	var out []models.JobPosting
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("store: scan job: %w", err)
		}
		out = append(out, *job)
	}
	return out, rows.Err()
}

// UpdateJob overwrites a job posting's mutable fields and refreshes updated_at.
func (db *DB) UpdateJob(job *models.JobPosting) error {
	job.UpdatedAt = time.Now().UTC()
	res, err := db.conn.Exec(`
		UPDATE jobs SET title = ?, department = ?, location = ?, description = ?,
			requirements = ?, responsibilities = ?, status = ?, salary_min = ?,
			salary_max = ?, updated_at = ?
		WHERE id = ?
	`, job.Title, job.Department, job.Location, job.Description, job.Requirements,
		job.Responsibilities, job.Status, job.SalaryMin, job.SalaryMax, job.UpdatedAt, job.ID)
	if err != nil {
		return fmt.Errorf("store: update job: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// DeleteJob removes a job posting. Candidates referencing it, and their
// sub-records, go with it via the cascade rules.
func (db *DB) DeleteJob(id int64) error {
	res, err := db.conn.Exec(`DELETE FROM jobs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete job: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*models.JobPosting, error) {
	var job models.JobPosting
	err := row.Scan(&job.ID, &job.Title, &job.Department, &job.Location,
		&job.Description, &job.Requirements, &job.Responsibilities, &job.Status,
		&job.SalaryMin, &job.SalaryMax, &job.CreatedBy, &job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &job, nil
}
