package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"noteful-api/internal/apperrors"
	"noteful-api/internal/middleware"
	"noteful-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// authAs stands in for the JWT middleware: it attaches the
// authenticated caller identity the way middleware.AuthMiddleware
// would.
func authAs(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Next()
	}
}

func performRequest(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response body %q: %v", w.Body.String(), err)
	}
	return body
}

// ---- fakes ----

type fakeNoteRepo struct {
	notes        map[string]*models.Note
	lastFilter   *models.NotesFilter
	createCalls  int
	createdOwner string
	deleteCalls  int
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{notes: make(map[string]*models.Note)}
}

func (f *fakeNoteRepo) Create(ctx context.Context, userID string, req *models.NoteRequest, tagIDs []string) (*models.Note, error) {
	f.createCalls++
	f.createdOwner = userID

	note := &models.Note{
		ID:      uuid.NewString(),
		Title:   req.Title,
		Content: req.Content,
		UserID:  userID,
	}
	if req.FolderID != nil && *req.FolderID != "" {
		note.FolderID = req.FolderID
	}
	for _, tagID := range tagIDs {
		note.Tags = append(note.Tags, models.Tag{ID: tagID})
	}
	f.notes[note.ID] = note
	return note, nil
}

func (f *fakeNoteRepo) GetByID(ctx context.Context, id, userID string) (*models.Note, error) {
	note, ok := f.notes[id]
	if !ok || note.UserID != userID {
		return nil, nil
	}
	return note, nil
}

func (f *fakeNoteRepo) GetAll(ctx context.Context, userID string, filter *models.NotesFilter) ([]*models.Note, error) {
	f.lastFilter = filter

	var notes []*models.Note
	for _, note := range f.notes {
		if note.UserID == userID {
			notes = append(notes, note)
		}
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].UpdatedAt.After(notes[j].UpdatedAt) })
	return notes, nil
}

func (f *fakeNoteRepo) Update(ctx context.Context, id, userID string, req *models.NoteRequest, tagIDs []string) (*models.Note, error) {
	note, ok := f.notes[id]
	if !ok || note.UserID != userID {
		return nil, nil
	}
	note.Title = req.Title
	note.Content = req.Content
	note.FolderID = req.FolderID
	note.Tags = nil
	for _, tagID := range tagIDs {
		note.Tags = append(note.Tags, models.Tag{ID: tagID})
	}
	return note, nil
}

func (f *fakeNoteRepo) Delete(ctx context.Context, id, userID string) error {
	f.deleteCalls++
	if note, ok := f.notes[id]; ok && note.UserID == userID {
		delete(f.notes, id)
	}
	return nil
}

type fakeFolderChecker struct {
	owned map[string]bool
}

func (f *fakeFolderChecker) FolderOwned(ctx context.Context, folderID, userID string) (bool, error) {
	return f.owned[folderID+"/"+userID], nil
}

type fakeTagChecker struct {
	owned map[string]bool
}

func (f *fakeTagChecker) OwnedTagCount(ctx context.Context, tagIDs []string, userID string) (int, error) {
	count := 0
	for _, id := range tagIDs {
		if f.owned[id+"/"+userID] {
			count++
		}
	}
	return count, nil
}

type fakeUserRepo struct {
	byUsername map[string]*models.User
	lastHash   string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byUsername: make(map[string]*models.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, fullname, username, passwordHash string) (*models.User, error) {
	if _, exists := f.byUsername[username]; exists {
		return nil, apperrors.DuplicateUsername()
	}
	f.lastHash = passwordHash

	user := &models.User{
		ID:           uuid.NewString(),
		Fullname:     fullname,
		Username:     username,
		PasswordHash: passwordHash,
	}
	f.byUsername[username] = user
	return user, nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return f.byUsername[username], nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	for _, user := range f.byUsername {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetAll(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	for _, user := range f.byUsername {
		users = append(users, user)
	}
	return users, nil
}

type fakeFolderRepo struct {
	folders map[string]*models.Folder
}

func newFakeFolderRepo() *fakeFolderRepo {
	return &fakeFolderRepo{folders: make(map[string]*models.Folder)}
}

func (f *fakeFolderRepo) Create(ctx context.Context, userID, name string) (*models.Folder, error) {
	for _, folder := range f.folders {
		if folder.UserID == userID && folder.Name == name {
			return nil, apperrors.DuplicateName("Folder")
		}
	}
	folder := &models.Folder{ID: uuid.NewString(), Name: name, UserID: userID}
	f.folders[folder.ID] = folder
	return folder, nil
}

func (f *fakeFolderRepo) GetByID(ctx context.Context, id, userID string) (*models.Folder, error) {
	folder, ok := f.folders[id]
	if !ok || folder.UserID != userID {
		return nil, nil
	}
	return folder, nil
}

func (f *fakeFolderRepo) GetAll(ctx context.Context, userID string) ([]*models.Folder, error) {
	var folders []*models.Folder
	for _, folder := range f.folders {
		if folder.UserID == userID {
			folders = append(folders, folder)
		}
	}
	return folders, nil
}

func (f *fakeFolderRepo) Update(ctx context.Context, id, userID, name string) (*models.Folder, error) {
	folder, ok := f.folders[id]
	if !ok || folder.UserID != userID {
		return nil, nil
	}
	folder.Name = name
	return folder, nil
}

func (f *fakeFolderRepo) Delete(ctx context.Context, id, userID string) error {
	if folder, ok := f.folders[id]; ok && folder.UserID == userID {
		delete(f.folders, id)
	}
	return nil
}

func (f *fakeFolderRepo) NameExists(ctx context.Context, name, userID, excludeID string) (bool, error) {
	for _, folder := range f.folders {
		if folder.UserID == userID && folder.Name == name && folder.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeFolderRepo) FolderOwned(ctx context.Context, folderID, userID string) (bool, error) {
	folder, ok := f.folders[folderID]
	return ok && folder.UserID == userID, nil
}
