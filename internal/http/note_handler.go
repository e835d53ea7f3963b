package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"notekeeper/internal/domain"
	"notekeeper/internal/service"
)

// NoteHandler mantiene dependencias para endpoints de notas.
type NoteHandler struct {
	logger   *zap.Logger
	noteServ *service.NoteService
}

func NewNoteHandler(logger *zap.Logger, noteServ *service.NoteService) *NoteHandler {
	return &NoteHandler{
		logger:   logger,
		noteServ: noteServ,
	}
}

type noteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Color   *string `json:"color"`
}

// List maneja GET /api/notes.
func (h *NoteHandler) List(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "please authenticate"})
		return
	}

	notes, err := h.noteServ.ListForUser(c.Request.Context(), user.ID)
	if err != nil {
		h.logger.Error("list notes failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch notes"})
		return
	}
	if notes == nil {
		notes = []domain.Note{}
	}
	c.JSON(http.StatusOK, notes)
}

// Create maneja POST /api/notes.
func (h *NoteHandler) Create(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "please authenticate"})
		return
	}

	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create note request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	note, err := h.noteServ.Create(c.Request.Context(), user.ID, service.NoteInput{
		Title:   req.Title,
		Content: req.Content,
		Color:   req.Color,
	})
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message})
			return
		}
		h.logger.Error("create note failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create note"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Note created successfully",
		"note":    note,
	})
}

// Update maneja PUT /api/notes/:id.
func (h *NoteHandler) Update(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "please authenticate"})
		return
	}

	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update note request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	note, err := h.noteServ.Update(c.Request.Context(), user.ID, c.Param("id"), service.NoteInput{
		Title:   req.Title,
		Content: req.Content,
		Color:   req.Color,
	})
	if err != nil {
		var vErr *service.ValidationError
		switch {
		case errors.As(err, &vErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message})
			return
		case errors.Is(err, service.ErrNoteNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "note not found"})
			return
		default:
			h.logger.Error("update note failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update note"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Note updated successfully",
		"note":    note,
	})
}

// Delete maneja DELETE /api/notes/:id.
func (h *NoteHandler) Delete(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "please authenticate"})
		return
	}

	note, err := h.noteServ.Delete(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNoteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "note not found"})
			return
		}
		h.logger.Error("delete note failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete note"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Note deleted successfully",
		"note":    note,
	})
}
