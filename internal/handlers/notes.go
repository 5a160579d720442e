package handlers

import (
	"noteful-api/internal/apperrors"
	"noteful-api/internal/middleware"
	"noteful-api/internal/models"
	"noteful-api/internal/repository"
	"noteful-api/internal/validation"
	"noteful-api/pkg/cache"
	"noteful-api/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// NoteHandler coordinates note mutations: payload checks, concurrent
// reference validation against the caller's identity, persistence,
// and the external transform on the way out.
type NoteHandler struct {
	noteRepo   repository.NoteRepository
	folderRepo validation.FolderChecker
	tagRepo    validation.TagChecker
	cache      *cache.CacheService
}

func NewNoteHandler(noteRepo repository.NoteRepository, folderRepo validation.FolderChecker, tagRepo validation.TagChecker, cacheService *cache.CacheService) *NoteHandler {
	return &NoteHandler{
		noteRepo:   noteRepo,
		folderRepo: folderRepo,
		tagRepo:    tagRepo,
		cache:      cacheService,
	}
}

func (h *NoteHandler) GetNotes(c *gin.Context) {
	userID, exists := middleware.GetCurrentUserID(c)
	if !exists {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var filter models.NotesFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	ctx := c.Request.Context()

	cacheKey := h.cache.GenerateNotesListKey(userID, filter.SearchTerm, filter.FolderID, filter.TagID)
	var cached []*models.NoteResponse
	if err := h.cache.Get(ctx, cacheKey, &cached); err == nil {
		response.OK(c, cached)
		return
	}

	notes, err := h.noteRepo.GetAll(ctx, userID, &filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	results := make([]*models.NoteResponse, 0, len(notes))
	for _, note := range notes {
		results = append(results, note.ToResponse())
	}

	// best effort; a cold or absent cache is not an error
	_ = h.cache.Set(ctx, cacheKey, results, 0)

	response.OK(c, results)
}

func (h *NoteHandler) GetNote(c *gin.Context) {
	userID, exists := middleware.GetCurrentUserID(c)
	if !exists {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.Error(c, apperrors.MalformedID("id"))
		return
	}

	note, err := h.noteRepo.GetByID(c.Request.Context(), id, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if note == nil {
		response.NotFound(c, "Not Found")
		return
	}

	response.OK(c, note.ToResponse())
}

func (h *NoteHandler) CreateNote(c *gin.Context) {
	userID, exists := middleware.GetCurrentUserID(c)
	if !exists {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req models.NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if req.Title == "" {
		response.Error(c, apperrors.MissingField("Missing `title` in request body"))
		return
	}

	ctx := c.Request.Context()

	tagIDs, err := validation.CheckReferences(ctx, h.folderRepo, h.tagRepo, req.FolderID, req.Tags, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	// The owner is always the authenticated caller; a userId in the
	// payload is ignored by construction.
	note, err := h.noteRepo.Create(ctx, userID, &req, tagIDs)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.cache.InvalidateUserNotesCache(ctx, userID)

	response.Created(c, "/api/notes/"+note.ID, note.ToResponse())
}

func (h *NoteHandler) UpdateNote(c *gin.Context) {
	userID, exists := middleware.GetCurrentUserID(c)
	if !exists {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.Error(c, apperrors.MalformedID("id"))
		return
	}

	var req models.NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if req.Title == "" {
		response.Error(c, apperrors.MissingField("Missing `title` in request body"))
		return
	}

	ctx := c.Request.Context()

	tagIDs, err := validation.CheckReferences(ctx, h.folderRepo, h.tagRepo, req.FolderID, req.Tags, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	note, err := h.noteRepo.Update(ctx, id, userID, &req, tagIDs)
	if err != nil {
		response.Error(c, err)
		return
	}
	if note == nil {
		response.NotFound(c, "Not Found")
		return
	}

	h.cache.InvalidateUserNotesCache(ctx, userID)

	response.OK(c, note.ToResponse())
}

// DeleteNote always reports success; deleting a nonexistent, foreign,
// or malformed id is a no-op, not an error.
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	userID, exists := middleware.GetCurrentUserID(c)
	if !exists {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	ctx := c.Request.Context()

	id := c.Param("id")
	if _, err := uuid.Parse(id); err == nil {
		if err := h.noteRepo.Delete(ctx, id, userID); err != nil {
			response.Error(c, err)
			return
		}
		h.cache.InvalidateUserNotesCache(ctx, userID)
	}

	response.NoContent(c)
}
