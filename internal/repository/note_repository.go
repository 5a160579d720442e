package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"noteful-api/internal/models"

	"github.com/google/uuid"
)

type NoteRepository interface {
	Create(ctx context.Context, userID string, req *models.NoteRequest, tagIDs []string) (*models.Note, error)
	GetByID(ctx context.Context, id, userID string) (*models.Note, error)
	GetAll(ctx context.Context, userID string, filter *models.NotesFilter) ([]*models.Note, error)
	Update(ctx context.Context, id, userID string, req *models.NoteRequest, tagIDs []string) (*models.Note, error)
	Delete(ctx context.Context, id, userID string) error
}

type noteRepository struct {
	db *sql.DB
}

func NewNoteRepository(db *sql.DB) NoteRepository {
	return &noteRepository{db: db}
}

func folderValue(folderID *string) sql.NullString {
	if folderID == nil || *folderID == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *folderID, Valid: true}
}

// Create persists the note row and its tag links in one transaction.
// The owner is whatever userID the caller was authenticated as;
// payload-supplied owners never reach this layer.
func (r *noteRepository) Create(ctx context.Context, userID string, req *models.NoteRequest, tagIDs []string) (*models.Note, error) {
	id := uuid.NewString()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO notes (id, title, content, folder_id, user_id) VALUES (?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, query, id, req.Title, req.Content, folderValue(req.FolderID), userID); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	if err := insertTagLinks(ctx, tx, id, tagIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit note: %w", err)
	}

	return r.GetByID(ctx, id, userID)
}

func (r *noteRepository) GetByID(ctx context.Context, id, userID string) (*models.Note, error) {
	query := `SELECT id, title, content, folder_id, user_id, created_at, updated_at
              FROM notes WHERE id = ? AND user_id = ?`

	note := &models.Note{}
	var folderID sql.NullString
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&note.ID, &note.Title, &note.Content, &folderID, &note.UserID,
		&note.CreatedAt, &note.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	if folderID.Valid {
		note.FolderID = &folderID.String
	}

	tagsByNote, err := r.loadTags(ctx, []string{note.ID})
	if err != nil {
		return nil, err
	}
	note.Tags = tagsByNote[note.ID]

	return note, nil
}

// GetAll returns the caller's notes, filters applied flat, most
// recently updated first, tags expanded. The substring match is
// case-sensitive (LIKE BINARY).
func (r *noteRepository) GetAll(ctx context.Context, userID string, filter *models.NotesFilter) ([]*models.Note, error) {
	conditions := []string{"user_id = ?"}
	args := []interface{}{userID}

	if filter.SearchTerm != "" {
		conditions = append(conditions, "(title LIKE BINARY ? OR content LIKE BINARY ?)")
		pattern := "%" + filter.SearchTerm + "%"
		args = append(args, pattern, pattern)
	}
	if filter.FolderID != "" {
		conditions = append(conditions, "folder_id = ?")
		args = append(args, filter.FolderID)
	}
	if filter.TagID != "" {
		conditions = append(conditions, "EXISTS (SELECT 1 FROM note_tags nt WHERE nt.note_id = notes.id AND nt.tag_id = ?)")
		args = append(args, filter.TagID)
	}

	query := `SELECT id, title, content, folder_id, user_id, created_at, updated_at FROM notes WHERE ` +
		strings.Join(conditions, " AND ") + ` ORDER BY updated_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get notes: %w", err)
	}
	defer rows.Close()

	var notes []*models.Note
	var noteIDs []string
	for rows.Next() {
		note := &models.Note{}
		var folderID sql.NullString
		err := rows.Scan(
			&note.ID, &note.Title, &note.Content, &folderID, &note.UserID,
			&note.CreatedAt, &note.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		if folderID.Valid {
			note.FolderID = &folderID.String
		}
		notes = append(notes, note)
		noteIDs = append(noteIDs, note.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read notes: %w", err)
	}

	tagsByNote, err := r.loadTags(ctx, noteIDs)
	if err != nil {
		return nil, err
	}
	for _, note := range notes {
		note.Tags = tagsByNote[note.ID]
	}

	return notes, nil
}

// Update is a full replace of the mutable fields (title, content,
// folderId, tags) scoped by (id, owner). A zero-row match means not
// found or not owned; callers cannot distinguish the two.
func (r *noteRepository) Update(ctx context.Context, id, userID string, req *models.NoteRequest, tagIDs []string) (*models.Note, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `UPDATE notes SET title = ?, content = ?, folder_id = ? WHERE id = ? AND user_id = ?`
	result, err := tx.ExecContext(ctx, query, req.Title, req.Content, folderValue(req.FolderID), id, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, nil // not found or not owned by user
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM note_tags WHERE note_id = ?`, id); err != nil {
		return nil, fmt.Errorf("failed to clear tag links: %w", err)
	}
	if err := insertTagLinks(ctx, tx, id, tagIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit note update: %w", err)
	}

	return r.GetByID(ctx, id, userID)
}

// Delete is idempotent: removing an unknown or foreign id is not an
// error.
func (r *noteRepository) Delete(ctx context.Context, id, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ? AND user_id = ?`, id, userID); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}

func insertTagLinks(ctx context.Context, tx *sql.Tx, noteID string, tagIDs []string) error {
	for _, tagID := range tagIDs {
		if _, err := tx.ExecContext(ctx, `INSERT INTO note_tags (note_id, tag_id) VALUES (?, ?)`, noteID, tagID); err != nil {
			return fmt.Errorf("failed to link tag: %w", err)
		}
	}
	return nil
}

func (r *noteRepository) loadTags(ctx context.Context, noteIDs []string) (map[string][]models.Tag, error) {
	tagsByNote := make(map[string][]models.Tag, len(noteIDs))
	if len(noteIDs) == 0 {
		return tagsByNote, nil
	}

	placeholders := strings.Repeat("?,", len(noteIDs))
	placeholders = placeholders[:len(placeholders)-1]

	query := fmt.Sprintf(`SELECT nt.note_id, t.id, t.name, t.user_id, t.created_at, t.updated_at
              FROM note_tags nt
              JOIN tags t ON t.id = nt.tag_id
              WHERE nt.note_id IN (%s)
              ORDER BY t.name`, placeholders)

	args := make([]interface{}, 0, len(noteIDs))
	for _, id := range noteIDs {
		args = append(args, id)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var noteID string
		tag := models.Tag{}
		if err := rows.Scan(&noteID, &tag.ID, &tag.Name, &tag.UserID, &tag.CreatedAt, &tag.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tagsByNote[noteID] = append(tagsByNote[noteID], tag)
	}

	return tagsByNote, rows.Err()
}
