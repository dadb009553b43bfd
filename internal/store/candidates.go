package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Madhuram99/ATS-SYSTEM/internal/apperr"
	"github.com/Madhuram99/ATS-SYSTEM/internal/models"
)

const candidateColumns = `id, first_name, last_name, email, phone, resume_path,
	cover_letter, job_id, stage, created_at, updated_at`

// CandidateFilter narrows ListCandidates results.
type CandidateFilter struct {
	Stage  models.Stage
	JobID  int64
	Query  string // LIKE match over name, email and skills
	Limit  int
	Offset int
}

// CreateCandidate inserts a candidate and all of its sub-record rows in a
// single transaction. A unique-constraint failure on the email column maps
// to apperr.ErrDuplicateEmail and nothing is committed.
func (db *DB) CreateCandidate(c *models.Candidate, skills []models.Skill,
	education []models.Education, experience []models.WorkExperience) error {

	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.Stage == "" {
		c.Stage = models.StageNew
	}

	res, err := tx.Exec(`
		INSERT INTO candidates (first_name, last_name, email, phone, resume_path,
			cover_letter, job_id, stage, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, c.FirstName, c.LastName, c.Email, c.Phone, c.ResumePath,
		c.CoverLetter, c.JobID, c.Stage, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.ErrDuplicateEmail
		}
		return fmt.Errorf("store: insert candidate: %w", err)
	}
	c.ID, _ = res.LastInsertId()

	for i := range skills {
		skills[i].CandidateID = c.ID
		if err := insertSkill(tx, &skills[i]); err != nil {
			return err
		}
	}
	for i := range education {
		education[i].CandidateID = c.ID
		if err := insertEducation(tx, &education[i]); err != nil {
			return err
		}
	}
	for i := range experience {
		experience[i].CandidateID = c.ID
		if err := insertExperience(tx, &experience[i]); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetCandidate returns one candidate by ID.
func (db *DB) GetCandidate(id int64) (*models.Candidate, error) {
	row := db.conn.QueryRow(`SELECT `+candidateColumns+` FROM candidates WHERE id = ?`, id)
	c, err := scanCandidate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get candidate: %w", err)
	}
	return c, nil
}

// ListCandidates returns candidates newest first with the given filter,
// plus the total count before limit/offset.
func (db *DB) ListCandidates(f CandidateFilter) ([]models.Candidate, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	if f.Stage != "" {
		where += ` AND stage = ?`
		args = append(args, f.Stage)
	}
	if f.JobID > 0 {
		where += ` AND job_id = ?`
		args = append(args, f.JobID)
	}
	if f.Query != "" {
		// LIKE fallback search over names, email and skill rows.
		like := "%" + f.Query + "%"
		where += ` AND (first_name LIKE ? OR last_name LIKE ? OR email LIKE ?
			OR id IN (SELECT candidate_id FROM candidate_skills WHERE skill LIKE ?))`
		args = append(args, like, like, like, like)
	}

	var total int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM candidates`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("store: count candidates: %w", err)
	}

	query := `SELECT ` + candidateColumns + ` FROM candidates` + where + ` ORDER BY created_at DESC, id DESC`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
		if f.Offset > 0 {
			query += ` OFFSET ?`
			args = append(args, f.Offset)
		}
	}

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("store: list candidates: %w", err)
	}
	defer rows.Close()

	var out []models.Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("store: scan candidate: %w", err)
		}
		out = append(out, *c)
	}
	return out, total, rows.Err()
}

// ListCandidatesByJob returns all candidates for a job, newest first.
func (db *DB) ListCandidatesByJob(jobID int64) ([]models.Candidate, error) {
	out, _, err := db.ListCandidates(CandidateFilter{JobID: jobID})
	return out, err
}

// UpdateStage overwrites the candidate's stage and refreshes updated_at.
// Membership of the stage enumeration is the caller's responsibility.
func (db *DB) UpdateStage(id int64, stage models.Stage) error {
	res, err := db.conn.Exec(`UPDATE candidates SET stage = ?, updated_at = ? WHERE id = ?`,
		stage, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("store: update stage: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// SetResumePath records the stored resume file for a candidate.
func (db *DB) SetResumePath(id int64, path string) error {
	res, err := db.conn.Exec(`UPDATE candidates SET resume_path = ?, updated_at = ? WHERE id = ?`,
		path, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("store: set resume path: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// AddSkill appends a skill row to an existing candidate.
func (db *DB) AddSkill(s *models.Skill) error {
	return insertSkill(db.conn, s)
}

// UpdateSkill overwrites an existing skill row.
func (db *DB) UpdateSkill(s *models.Skill) error {
	res, err := db.conn.Exec(`UPDATE candidate_skills SET skill = ?, years_experience = ? WHERE id = ?`,
		s.Skill, s.YearsExperience, s.ID)
	if err != nil {
		return fmt.Errorf("store: update skill: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// GetSkill returns one skill row by ID.
func (db *DB) GetSkill(id int64) (*models.Skill, error) {
	var s models.Skill
	err := db.conn.QueryRow(`SELECT id, candidate_id, skill, years_experience
		FROM candidate_skills WHERE id = ?`, id).
		Scan(&s.ID, &s.CandidateID, &s.Skill, &s.YearsExperience)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get skill: %w", err)
	}
	return &s, nil
}

// ListSkills returns all skill rows for a candidate.
func (db *DB) ListSkills(candidateID int64) ([]models.Skill, error) {
	rows, err := db.conn.Query(`SELECT id, candidate_id, skill, years_experience
		FROM candidate_skills WHERE candidate_id = ? ORDER BY id`, candidateID)
	if err != nil {
		return nil, fmt.Errorf("store: list skills: %w", err)
	}
	defer rows.Close()

	var out []models.Skill
	for rows.Next() {
		var s models.Skill
		if err := rows.Scan(&s.ID, &s.CandidateID, &s.Skill, &s.YearsExperience); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// AddEducation appends an education row to an existing candidate.
func (db *DB) AddEducation(e *models.Education) error {
	return insertEducation(db.conn, e)
}

// UpdateEducation overwrites an existing education row.
func (db *DB) UpdateEducation(e *models.Education) error {
	res, err := db.conn.Exec(`UPDATE candidate_education SET institution = ?, degree = ?,
		field_of_study = ?, from_date = ?, to_date = ? WHERE id = ?`,
		e.Institution, e.Degree, e.FieldOfStudy, e.FromDate, e.ToDate, e.ID)
	if err != nil {
		return fmt.Errorf("store: update education: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// GetEducation returns one education row by ID.
func (db *DB) GetEducation(id int64) (*models.Education, error) {
	var e models.Education
	err := db.conn.QueryRow(`SELECT id, candidate_id, institution, degree, field_of_study,
		from_date, to_date FROM candidate_education WHERE id = ?`, id).
		Scan(&e.ID, &e.CandidateID, &e.Institution, &e.Degree, &e.FieldOfStudy, &e.FromDate, &e.ToDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get education: %w", err)
	}
	return &e, nil
}

// ListEducation returns all education rows for a candidate.
func (db *DB) ListEducation(candidateID int64) ([]models.Education, error) {
	rows, err := db.conn.Query(`SELECT id, candidate_id, institution, degree, field_of_study,
		from_date, to_date FROM candidate_education WHERE candidate_id = ? ORDER BY id`, candidateID)
	if err != nil {
		return nil, fmt.Errorf("store: list education: %w", err)
	}
	defer rows.Close()

	var out []models.Education
	for rows.Next() {
		var e models.Education
		if err := rows.Scan(&e.ID, &e.CandidateID, &e.Institution, &e.Degree,
			&e.FieldOfStudy, &e.FromDate, &e.ToDate); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// AddExperience appends a work-experience row to an existing candidate.
func (db *DB) AddExperience(e *models.WorkExperience) error {
	return insertExperience(db.conn, e)
}

// UpdateExperience overwrites an existing work-experience row.
func (db *DB) UpdateExperience(e *models.WorkExperience) error {
	res, err := db.conn.Exec(`UPDATE candidate_experience SET company = ?, position = ?,
		from_date = ?, to_date = ?, description = ? WHERE id = ?`,
		e.Company, e.Position, e.FromDate, e.ToDate, e.Description, e.ID)
	if err != nil {
		return fmt.Errorf("store: update experience: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// GetExperience returns one work-experience row by ID.
func (db *DB) GetExperience(id int64) (*models.WorkExperience, error) {
	var e models.WorkExperience
	err := db.conn.QueryRow(`SELECT id, candidate_id, company, position, from_date,
		to_date, description FROM candidate_experience WHERE id = ?`, id).
		Scan(&e.ID, &e.CandidateID, &e.Company, &e.Position, &e.FromDate, &e.ToDate, &e.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get experience: %w", err)
	}
	return &e, nil
}

// ListExperience returns all work-experience rows for a candidate.
func (db *DB) ListExperience(candidateID int64) ([]models.WorkExperience, error) {
	rows, err := db.conn.Query(`SELECT id, candidate_id, company, position, from_date,
		to_date, description FROM candidate_experience WHERE candidate_id = ? ORDER BY id`, candidateID)
	if err != nil {
		return nil, fmt.Errorf("store: list experience: %w", err)
	}
	defer rows.Close()

	var out []models.WorkExperience
	for rows.Next() {
		var e models.WorkExperience
		if err := rows.Scan(&e.ID, &e.CandidateID, &e.Company, &e.Position,
			&e.FromDate, &e.ToDate, &e.Description); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func insertSkill(ex execer, s *models.Skill) error {
	res, err := ex.Exec(`INSERT INTO candidate_skills (candidate_id, skill, years_experience)
		VALUES (?, ?, ?)`, s.CandidateID, s.Skill, s.YearsExperience)
	if err != nil {
		return fmt.Errorf("store: insert skill: %w", err)
	}
	s.ID, _ = res.LastInsertId()
	return nil
}

func insertEducation(ex execer, e *models.Education) error {
	res, err := ex.Exec(`INSERT INTO candidate_education (candidate_id, institution, degree,
		field_of_study, from_date, to_date) VALUES (?, ?, ?, ?, ?, ?)`,
		e.CandidateID, e.Institution, e.Degree, e.FieldOfStudy, e.FromDate, e.ToDate)
	if err != nil {
		return fmt.Errorf("store: insert education: %w", err)
	}
	e.ID, _ = res.LastInsertId()
	return nil
}

func insertExperience(ex execer, e *models.WorkExperience) error {
	res, err := ex.Exec(`INSERT INTO candidate_experience (candidate_id, company, position,
		from_date, to_date, description) VALUES (?, ?, ?, ?, ?, ?)`,
		e.CandidateID, e.Company, e.Position, e.FromDate, e.ToDate, e.Description)
	if err != nil {
		return fmt.Errorf("store: insert experience: %w", err)
	}
	e.ID, _ = res.LastInsertId()
	return nil
}

func scanCandidate(row rowScanner) (*models.Candidate, error) {
	var c models.Candidate
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone,
		&c.ResumePath, &c.CoverLetter, &c.JobID, &c.Stage, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
