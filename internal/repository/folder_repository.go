package repository

import (
	"context"
	"database/sql"
	"fmt"

	"noteful-api/internal/apperrors"
	"noteful-api/internal/models"

	"github.com/google/uuid"
)

type FolderRepository interface {
	Create(ctx context.Context, userID, name string) (*models.Folder, error)
	GetByID(ctx context.Context, id, userID string) (*models.Folder, error)
	GetAll(ctx context.Context, userID string) ([]*models.Folder, error)
	Update(ctx context.Context, id, userID, name string) (*models.Folder, error)
	Delete(ctx context.Context, id, userID string) error
	NameExists(ctx context.Context, name, userID, excludeID string) (bool, error)
	FolderOwned(ctx context.Context, folderID, userID string) (bool, error)
}

type folderRepository struct {
	db *sql.DB
}

func NewFolderRepository(db *sql.DB) FolderRepository {
	return &folderRepository{db: db}
}

func (r *folderRepository) Create(ctx context.Context, userID, name string) (*models.Folder, error) {
	id := uuid.NewString()

	query := `INSERT INTO folders (id, name, user_id) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, id, name, userID)
	if err != nil {
		if isDuplicateEntry(err) {
			return nil, apperrors.DuplicateName("Folder")
		}
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}

	return r.GetByID(ctx, id, userID)
}

func (r *folderRepository) GetByID(ctx context.Context, id, userID string) (*models.Folder, error) {
	query := `SELECT id, name, user_id, created_at, updated_at FROM folders WHERE id = ? AND user_id = ?`

	folder := &models.Folder{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&folder.ID, &folder.Name, &folder.UserID, &folder.CreatedAt, &folder.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get folder: %w", err)
	}

	return folder, nil
}

func (r *folderRepository) GetAll(ctx context.Context, userID string) ([]*models.Folder, error) {
	query := `SELECT id, name, user_id, created_at, updated_at FROM folders WHERE user_id = ? ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get folders: %w", err)
	}
	defer rows.Close()

	var folders []*models.Folder
	for rows.Next() {
		folder := &models.Folder{}
		if err := rows.Scan(&folder.ID, &folder.Name, &folder.UserID, &folder.CreatedAt, &folder.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan folder: %w", err)
		}
		folders = append(folders, folder)
	}

	return folders, rows.Err()
}

func (r *folderRepository) Update(ctx context.Context, id, userID, name string) (*models.Folder, error) {
	query := `UPDATE folders SET name = ? WHERE id = ? AND user_id = ?`
	result, err := r.db.ExecContext(ctx, query, name, id, userID)
	if err != nil {
		if isDuplicateEntry(err) {
			return nil, apperrors.DuplicateName("Folder")
		}
		return nil, fmt.Errorf("failed to update folder: %w", err)
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

// Delete clears folder references on the user's notes before removing
// the folder; the notes themselves survive. Deleting an unknown or
// foreign id is not an error.
func (r *folderRepository) Delete(ctx context.Context, id, userID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `UPDATE notes SET folder_id = NULL WHERE folder_id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to clear folder references: %w", err)
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM folders WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}

	return tx.Commit()
}

func (r *folderRepository) NameExists(ctx context.Context, name, userID, excludeID string) (bool, error) {
	query := `SELECT COUNT(*) FROM folders WHERE name = ? AND user_id = ? AND id != ?`
	var count int
	if err := r.db.QueryRowContext(ctx, query, name, userID, excludeID).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check folder name: %w", err)
	}
	return count > 0, nil
}

// FolderOwned is a single existence-plus-ownership check.
func (r *folderRepository) FolderOwned(ctx context.Context, folderID, userID string) (bool, error) {
	query := `SELECT COUNT(*) FROM folders WHERE id = ? AND user_id = ?`
	var count int
	if err := r.db.QueryRowContext(ctx, query, folderID, userID).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check folder ownership: %w", err)
	}
	return count > 0, nil
}
