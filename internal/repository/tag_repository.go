package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"noteful-api/internal/apperrors"
	"noteful-api/internal/models"

	"github.com/google/uuid"
)

type TagRepository interface {
	Create(ctx context.Context, userID, name string) (*models.Tag, error)
	GetByID(ctx context.Context, id, userID string) (*models.Tag, error)
	GetAll(ctx context.Context, userID string) ([]*models.Tag, error)
	Update(ctx context.Context, id, userID, name string) (*models.Tag, error)
	Delete(ctx context.Context, id, userID string) error
	NameExists(ctx context.Context, name, userID, excludeID string) (bool, error)
	OwnedTagCount(ctx context.Context, tagIDs []string, userID string) (int, error)
}

type tagRepository struct {
	db *sql.DB
}

func NewTagRepository(db *sql.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(ctx context.Context, userID, name string) (*models.Tag, error) {
	id := uuid.NewString()

	query := `INSERT INTO tags (id, name, user_id) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, id, name, userID)
	if err != nil {
		if isDuplicateEntry(err) {
			return nil, apperrors.DuplicateName("Tag")
		}
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}

	return r.GetByID(ctx, id, userID)
}

func (r *tagRepository) GetByID(ctx context.Context, id, userID string) (*models.Tag, error) {
	query := `SELECT id, name, user_id, created_at, updated_at FROM tags WHERE id = ? AND user_id = ?`

	tag := &models.Tag{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&tag.ID, &tag.Name, &tag.UserID, &tag.CreatedAt, &tag.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}

	return tag, nil
}

func (r *tagRepository) GetAll(ctx context.Context, userID string) ([]*models.Tag, error) {
	query := `SELECT id, name, user_id, created_at, updated_at FROM tags WHERE user_id = ? ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tags: %w", err)
	}
	defer rows.Close()

	var tags []*models.Tag
	for rows.Next() {
		tag := &models.Tag{}
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.UserID, &tag.CreatedAt, &tag.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, tag)
	}

	return tags, rows.Err()
}

func (r *tagRepository) Update(ctx context.Context, id, userID, name string) (*models.Tag, error) {
	query := `UPDATE tags SET name = ? WHERE id = ? AND user_id = ?`
	result, err := r.db.ExecContext(ctx, query, name, id, userID)
	if err != nil {
		if isDuplicateEntry(err) {
			return nil, apperrors.DuplicateName("Tag")
		}
		return nil, fmt.Errorf("failed to update tag: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return nil, nil // not found or not owned by user
	}

	return r.GetByID(ctx, id, userID)
}

// Delete removes the tag scoped by owner; note_tags links go with it
// (ON DELETE CASCADE). Notes referencing the tag survive.
func (r *tagRepository) Delete(ctx context.Context, id, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tags WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	return nil
}

func (r *tagRepository) NameExists(ctx context.Context, name, userID, excludeID string) (bool, error) {
	query := `SELECT COUNT(*) FROM tags WHERE name = ? AND user_id = ? AND id != ?`
	var count int
	if err := r.db.QueryRowContext(ctx, query, name, userID, excludeID).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check tag name: %w", err)
	}
	return count > 0, nil
}

// OwnedTagCount counts the given ids that exist and belong to the
// user, in one set-membership query.
func (r *tagRepository) OwnedTagCount(ctx context.Context, tagIDs []string, userID string) (int, error) {
	if len(tagIDs) == 0 {
		return 0, nil
	}

	placeholders := strings.Repeat("?,", len(tagIDs))
	placeholders = placeholders[:len(placeholders)-1]

	query := fmt.Sprintf(`SELECT COUNT(*) FROM tags WHERE user_id = ? AND id IN (%s)`, placeholders)

	args := make([]interface{}, 0, len(tagIDs)+1)
	args = append(args, userID)
	for _, id := range tagIDs {
		args = append(args, id)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count owned tags: %w", err)
	}
	return count, nil
}
