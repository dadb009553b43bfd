package store

import (
	"fmt"
	"time"

	"github.com/Madhuram99/ATS-SYSTEM/internal/models"
)

// CreateNote appends a note to a candidate. Notes are immutable: there is
// no corresponding update or delete statement.
func (db *DB) CreateNote(n *models.Note) error {
	n.CreatedAt = time.Now().UTC()
	res, err := db.conn.Exec(`INSERT INTO notes (candidate_id, author, content, created_at)
		VALUES (?, ?, ?, ?)`, n.CandidateID, n.Author, n.Content, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("store: create note: %w", err)
	}
	n.ID, _ = res.LastInsertId()
	return nil
}

// ListNotes returns a candidate's notes, newest first.
func (db *DB) ListNotes(candidateID int64) ([]models.Note, error) {
	rows, err := db.conn.Query(`SELECT id, candidate_id, author, content, created_at
		FROM notes WHERE candidate_id = ? ORDER BY created_at DESC, id DESC`, candidateID)
	if err != nil {
		return nil, fmt.Errorf("store: list notes: %w", err)
	}
	defer rows.Close()

	var out []models.Note
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.CandidateID, &n.Author, &n.Content, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
