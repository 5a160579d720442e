package models

import "time"

// Note is a stored note row. FolderID is NULL when the note lives
// outside any folder; Tags is populated by the repository from the
// note_tags link table.
type Note struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	FolderID  *string   `json:"folderId" db:"folder_id"`
	UserID    string    `json:"userId" db:"user_id"`
	Tags      []Tag     `json:"tags"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

type NoteResponse struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Content   string         `json:"content,omitempty"`
	FolderID  *string        `json:"folderId,omitempty"`
	UserID    string         `json:"userId"`
	Tags      []*TagResponse `json:"tags"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func (n *Note) ToResponse() *NoteResponse {
	tags := make([]*TagResponse, 0, len(n.Tags))
	for i := range n.Tags {
		tags = append(tags, n.Tags[i].ToResponse())
	}
	return &NoteResponse{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		FolderID:  n.FolderID,
		UserID:    n.UserID,
		Tags:      tags,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

// NoteRequest is the create/update payload. Tags stays dynamically
// typed so a non-array value is reported as such rather than as a
// decode failure.
type NoteRequest struct {
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	FolderID *string `json:"folderId"`
	Tags     any     `json:"tags"`
}

// NotesFilter carries the supported list query parameters. SearchTerm
// is a case-sensitive substring match on title or content.
type NotesFilter struct {
	SearchTerm string `form:"searchTerm"`
	FolderID   string `form:"folderId"`
	TagID      string `form:"tagId"`
}
