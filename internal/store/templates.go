package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Madhuram99/ATS-SYSTEM/internal/apperr"
	"github.com/Madhuram99/ATS-SYSTEM/internal/models"
)

// CreateTemplate inserts an email template.
func (db *DB) CreateTemplate(t *models.EmailTemplate) error {
	t.CreatedAt = time.Now().UTC()
	res, err := db.conn.Exec(`INSERT INTO email_templates (name, type, subject, body, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`, t.Name, t.Type, t.Subject, t.Body, t.CreatedBy, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("store: create template: %w", err)
	}
	t.ID, _ = res.LastInsertId()
	return nil
}

// GetTemplate returns one email template by ID.
func (db *DB) GetTemplate(id int64) (*models.EmailTemplate, error) {
	var t models.EmailTemplate
	err := db.conn.QueryRow(`SELECT id, name, type, subject, body, created_by, created_at
		FROM email_templates WHERE id = ?`, id).
		Scan(&t.ID, &t.Name, &t.Type, &t.Subject, &t.Body, &t.CreatedBy, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get template: %w", err)
	}
	return &t, nil
}

// ListTemplates returns all templates ordered by type then name.
func (db *DB) ListTemplates() ([]models.EmailTemplate, error) {
	rows, err := db.conn.Query(`SELECT id, name, type, subject, body, created_by, created_at
		FROM email_templates ORDER BY type, name`)
	if err != nil {
		return nil, fmt.Errorf("store: list templates: %w", err)
	}
	defer rows.Close()

	var out []models.EmailTemplate
	for rows.Next() {
		var t models.EmailTemplate
		if err := rows.Scan(&t.ID, &t.Name, &t.Type, &t.Subject, &t.Body, &t.CreatedBy, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// UpdateTemplate overwrites an existing template's fields.
func (db *DB) UpdateTemplate(t *models.EmailTemplate) error {
	res, err := db.conn.Exec(`UPDATE email_templates SET name = ?, type = ?, subject = ?, body = ?
		WHERE id = ?`, t.Name, t.Type, t.Subject, t.Body, t.ID)
	if err != nil {
		return fmt.Errorf("store: update template: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
