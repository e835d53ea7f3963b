package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"notekeeper/internal/domain"
	"notekeeper/internal/repository"
)

// NoteService coordina el CRUD de notas acotado al usuario dueño.
type NoteService struct {
	logger *zap.Logger
	notes  repository.NoteRepository
}

func NewNoteService(logger *zap.Logger, notes repository.NoteRepository) *NoteService {
	return &NoteService{
		logger: logger,
		notes:  notes,
	}
}

// ErrNoteNotFound cubre tanto notas inexistentes como notas de otro
// usuario; la distinción no se expone.
var ErrNoteNotFound = errors.New("note not found")

type NoteInput struct {
	Title   *string
	Content *string
	Color   *string
}

func (s *NoteService) ListForUser(ctx context.Context, userID string) ([]domain.Note, error) {
	return s.notes.ListByUserID(ctx, userID)
}

func (s *NoteService) Create(ctx context.Context, userID string, input NoteInput) (domain.Note, error) {
	var title, content, color string
	if input.Title != nil {
		title = strings.TrimSpace(*input.Title)
	}
	if input.Content != nil {
		content = strings.TrimSpace(*input.Content)
	}
	if content == "" {
		return domain.Note{}, newValidationError("content", "note content is required")
	}
	if input.Color != nil && strings.TrimSpace(*input.Color) != "" {
		color = strings.TrimSpace(*input.Color)
	} else {
		color = domain.DefaultNoteColor
	}

	now := time.Now().UTC()
	note := domain.Note{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Content:   content,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.notes.Create(ctx, note); err != nil {
		return domain.Note{}, err
	}
	return note, nil
}

func (s *NoteService) Update(ctx context.Context, userID, noteID string, input NoteInput) (domain.Note, error) {
	note, err := s.getOwned(ctx, noteID, userID)
	if err != nil {
		return domain.Note{}, err
	}

	if input.Title != nil {
		note.Title = strings.TrimSpace(*input.Title)
	}
	if input.Content != nil {
		content := strings.TrimSpace(*input.Content)
		if content == "" {
			return domain.Note{}, newValidationError("content", "note content is required")
		}
		note.Content = content
	}
	if input.Color != nil {
		note.Color = strings.TrimSpace(*input.Color)
	}

	note.UpdatedAt = time.Now().UTC()
	if err := s.notes.Update(ctx, note); err != nil {
		return domain.Note{}, err
	}
	return note, nil
}

func (s *NoteService) Delete(ctx context.Context, userID, noteID string) (domain.Note, error) {
	note, err := s.getOwned(ctx, noteID, userID)
	if err != nil {
		return domain.Note{}, err
	}
	if err := s.notes.Delete(ctx, noteID, userID); err != nil {
		return domain.Note{}, err
	}
	s.logger.Info("note deleted", zap.String("note_id", noteID), zap.String("user_id", userID))
	return note, nil
}

func (s *NoteService) getOwned(ctx context.Context, noteID, userID string) (domain.Note, error) {
	note, err := s.notes.GetByIDForUser(ctx, noteID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Note{}, ErrNoteNotFound
		}
		return domain.Note{}, err
	}
	return note, nil
}
