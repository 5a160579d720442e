package handlers

import (
	"noteful-api/internal/apperrors"
	"noteful-api/internal/middleware"
	"noteful-api/internal/models"
	"noteful-api/internal/repository"
	"noteful-api/pkg/cache"
	"noteful-api/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FolderHandler struct {
	folderRepo repository.FolderRepository
	cache      *cache.CacheService
}

func NewFolderHandler(folderRepo repository.FolderRepository, cacheService *cache.CacheService) *FolderHandler {
	return &FolderHandler{folderRepo: folderRepo, cache: cacheService}
}

func (h *FolderHandler) GetFolders(c *gin.Context) {
	userID, exists := middleware.GetCurrentUserID(c)
	if !exists {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	folders, err := h.folderRepo.GetAll(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	results := make([]*models.FolderResponse, 0, len(folders))
	for _, folder := range folders {
		results = append(results, folder.ToResponse())
	}

	response.OK(c, results)
}

func (h *FolderHandler) GetFolder(c *gin.Context) {
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

	folder, err := h.folderRepo.GetByID(c.Request.Context(), id, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if folder == nil {
		response.NotFound(c, "Not Found")
		return
	}

	response.OK(c, folder.ToResponse())
}

func (h *FolderHandler) CreateFolder(c *gin.Context) {
	userID, exists := middleware.GetCurrentUserID(c)
	if !exists {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req models.FolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if req.Name == "" {
		response.Error(c, apperrors.MissingField("Missing `name` in request body"))
		return
	}

	ctx := c.Request.Context()

	// Fast path for a friendly message; the UNIQUE KEY remains the
	// source of truth under concurrent creates.
	taken, err := h.folderRepo.NameExists(ctx, req.Name, userID, "")
	if err != nil {
		response.Error(c, err)
		return
	}
	if taken {
		response.Error(c, apperrors.DuplicateName("Folder"))
		return
	}

	folder, err := h.folderRepo.Create(ctx, userID, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.cache.InvalidateUserNotesCache(ctx, userID)

	response.Created(c, "/api/folders/"+folder.ID, folder.ToResponse())
}

func (h *FolderHandler) UpdateFolder(c *gin.Context) {
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

	var req models.FolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if req.Name == "" {
		response.Error(c, apperrors.MissingField("Missing `name` in request body"))
		return
	}

	ctx := c.Request.Context()

	taken, err := h.folderRepo.NameExists(ctx, req.Name, userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if taken {
		response.Error(c, apperrors.DuplicateName("Folder"))
		return
	}

	folder, err := h.folderRepo.Update(ctx, id, userID, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	if folder == nil {
		response.NotFound(c, "Not Found")
		return
	}

	h.cache.InvalidateUserNotesCache(ctx, userID)

	response.OK(c, folder.ToResponse())
}

// DeleteFolder is idempotent and clears the folder reference on the
// user's notes; the notes themselves are kept.
func (h *FolderHandler) DeleteFolder(c *gin.Context) {
	userID, exists := middleware.GetCurrentUserID(c)
	if !exists {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	ctx := c.Request.Context()

	id := c.Param("id")
	if _, err := uuid.Parse(id); err == nil {
		if err := h.folderRepo.Delete(ctx, id, userID); err != nil {
			response.Error(c, err)
			return
		}
		h.cache.InvalidateUserNotesCache(ctx, userID)
	}

	response.NoContent(c)
}
