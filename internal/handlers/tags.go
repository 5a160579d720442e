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

type TagHandler struct {
	tagRepo repository.TagRepository
	cache   *cache.CacheService
}

func NewTagHandler(tagRepo repository.TagRepository, cacheService *cache.CacheService) *TagHandler {
	return &TagHandler{tagRepo: tagRepo, cache: cacheService}
}

func (h *TagHandler) GetTags(c *gin.Context) {
	userID, exists := middleware.GetCurrentUserID(c)
	if !exists {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	tags, err := h.tagRepo.GetAll(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	results := make([]*models.TagResponse, 0, len(tags))
	for _, tag := range tags {
		results = append(results, tag.ToResponse())
	}

	response.OK(c, results)
}

func (h *TagHandler) GetTag(c *gin.Context) {
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

	tag, err := h.tagRepo.GetByID(c.Request.Context(), id, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if tag == nil {
		response.NotFound(c, "Not Found")
		return
	}

	response.OK(c, tag.ToResponse())
}

func (h *TagHandler) CreateTag(c *gin.Context) {
	userID, exists := middleware.GetCurrentUserID(c)
	if !exists {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req models.TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if req.Name == "" {
		response.Error(c, apperrors.MissingField("Missing `name` in request body"))
		return
	}

	ctx := c.Request.Context()

	taken, err := h.tagRepo.NameExists(ctx, req.Name, userID, "")
	if err != nil {
		response.Error(c, err)
		return
	}
	if taken {
		response.Error(c, apperrors.DuplicateName("Tag"))
		return
	}

	tag, err := h.tagRepo.Create(ctx, userID, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "/api/tags/"+tag.ID, tag.ToResponse())
}

func (h *TagHandler) UpdateTag(c *gin.Context) {
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

	var req models.TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if req.Name == "" {
		response.Error(c, apperrors.MissingField("Missing `name` in request body"))
		return
	}

	ctx := c.Request.Context()

	taken, err := h.tagRepo.NameExists(ctx, req.Name, userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if taken {
		response.Error(c, apperrors.DuplicateName("Tag"))
		return
	}

	tag, err := h.tagRepo.Update(ctx, id, userID, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	if tag == nil {
		response.NotFound(c, "Not Found")
		return
	}

	h.cache.InvalidateUserNotesCache(ctx, userID)

	response.OK(c, tag.ToResponse())
}

// DeleteTag is idempotent; the tag's links to notes are removed, the
// notes themselves are kept.
func (h *TagHandler) DeleteTag(c *gin.Context) {
	userID, exists := middleware.GetCurrentUserID(c)
	if !exists {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	ctx := c.Request.Context()

	id := c.Param("id")
	if _, err := uuid.Parse(id); err == nil {
		if err := h.tagRepo.Delete(ctx, id, userID); err != nil {
			response.Error(c, err)
			return
		}
		h.cache.InvalidateUserNotesCache(ctx, userID)
	}

	response.NoContent(c)
}
