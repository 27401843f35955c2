package delivery

import (
	"context"
	"errors"
	"log"
	"net/http"

	"laterstack-backend/internal/article/domain"
	"laterstack-backend/internal/article/dto"
	"laterstack-backend/internal/article/usecase"
	authusecase "laterstack-backend/internal/auth/usecase"
	"laterstack-backend/pkg/scraper"

	"github.com/gin-gonic/gin"
)

// ErrorCodeDuplicate lets clients tell terminal duplicate errors apart from
// transient failures; duplicates are not retryable from the same input.
const ErrorCodeDuplicate = "duplicate"

// ArticleHandler serves the save pipeline, state transitions, and listing
type ArticleHandler struct {
	articleUsecase usecase.ArticleUsecase
}

func NewArticleHandler(articleUsecase usecase.ArticleUsecase) *ArticleHandler {
	return &ArticleHandler{
		articleUsecase: articleUsecase,
	}
}

// SaveArticle runs the save pipeline for one URL
// POST /api/articles
func (h *ArticleHandler) SaveArticle(c *gin.Context) {
	externalID := c.GetString("externalID")

	var req dto.SaveArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": usecase.ErrInvalidURL.Error()})
		return
	}

	item, err := h.articleUsecase.SaveArticle(c.Request.Context(), externalID, req.URL)
	if err != nil {
		h.writeSaveError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "item": item})
}

func (h *ArticleHandler) writeSaveError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrInvalidURL):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, usecase.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": err.Error(), "code": ErrorCodeDuplicate})
	case errors.Is(err, scraper.ErrTimeout):
		c.JSON(http.StatusGatewayTimeout, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, scraper.ErrFailed), errors.Is(err, scraper.ErrTooShort):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, authusecase.ErrProvisioning):
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
	default:
		log.Printf("[Article] save failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Something went wrong. Please try again."})
	}
}

// ListArticles returns the filtered triage view plus badge counts
// GET /api/articles?filter=all|unread|read|archived|quick-read
func (h *ArticleHandler) ListArticles(c *gin.Context) {
	externalID := c.GetString("externalID")
	filter := domain.ParseFilter(c.DefaultQuery("filter", string(domain.FilterAll)))

	result, err := h.articleUsecase.List(c.Request.Context(), externalID, filter)
	if err != nil {
		if errors.Is(err, authusecase.ErrProvisioning) {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
			return
		}
		log.Printf("[Article] list failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Something went wrong. Please try again."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"items":   result.Items,
		"counts":  result.Counts,
		"groups":  result.Groups,
	})
}

// MarkRead PATCH /api/articles/:id/read
func (h *ArticleHandler) MarkRead(c *gin.Context) {
	h.runTransition(c, h.articleUsecase.MarkRead, "Failed to mark article as read")
}

// MarkUnread PATCH /api/articles/:id/unread
func (h *ArticleHandler) MarkUnread(c *gin.Context) {
	h.runTransition(c, h.articleUsecase.MarkUnread, "Failed to mark article as unread")
}

// Archive PATCH /api/articles/:id/archive
func (h *ArticleHandler) Archive(c *gin.Context) {
	h.runTransition(c, h.articleUsecase.Archive, "Failed to archive article")
}

// Unarchive PATCH /api/articles/:id/unarchive
func (h *ArticleHandler) Unarchive(c *gin.Context) {
	h.runTransition(c, h.articleUsecase.Unarchive, "Failed to unarchive article")
}

func (h *ArticleHandler) runTransition(c *gin.Context, op func(context.Context, string, string) error, failureMsg string) {
	externalID := c.GetString("externalID")
	itemID := c.Param("id")

	if err := op(c.Request.Context(), externalID, itemID); err != nil {
		switch {
		case errors.Is(err, usecase.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
		case errors.Is(err, usecase.ErrUnauthorized):
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": err.Error()})
		case errors.Is(err, authusecase.ErrProvisioning):
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		default:
			log.Printf("[Article] transition failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": failureMsg})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
