package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"notekeeper/internal/domain"
)

type mockNoteRepo struct {
	notesByID map[string]domain.Note
}

func newMockNoteRepo() *mockNoteRepo {
	return &mockNoteRepo{notesByID: make(map[string]domain.Note)}
}

func (m *mockNoteRepo) Create(_ context.Context, note domain.Note) error {
	m.notesByID[note.ID] = note
	return nil
}

func (m *mockNoteRepo) ListByUserID(_ context.Context, userID string) ([]domain.Note, error) {
	var notes []domain.Note
	for _, n := range m.notesByID {
		if n.UserID == userID {
			notes = append(notes, n)
		}
	}
	return notes, nil
}

func (m *mockNoteRepo) GetByIDForUser(_ context.Context, id, userID string) (domain.Note, error) {
	note, ok := m.notesByID[id]
	if !ok || note.UserID != userID {
		return domain.Note{}, pgx.ErrNoRows
	}
	return note, nil
}

func (m *mockNoteRepo) Update(_ context.Context, note domain.Note) error {
	existing, ok := m.notesByID[note.ID]
	if !ok || existing.UserID != note.UserID {
		return pgx.ErrNoRows
	}
	m.notesByID[note.ID] = note
	return nil
}

func (m *mockNoteRepo) Delete(_ context.Context, id, userID string) error {
	note, ok := m.notesByID[id]
	if !ok || note.UserID != userID {
		return pgx.ErrNoRows
	}
	delete(m.notesByID, id)
	return nil
}

func strPtr(s string) *string { return &s }

func TestNoteService_CreateDefaults(t *testing.T) {
	svc := NewNoteService(zap.NewNop(), newMockNoteRepo())

	note, err := svc.Create(context.Background(), "u1", NoteInput{Content: strPtr("hello")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if note.Color != domain.DefaultNoteColor {
		t.Fatalf("expected default color, got %q", note.Color)
	}
	if note.UserID != "u1" {
		t.Fatalf("expected note owned by u1, got %q", note.UserID)
	}
}

func TestNoteService_CreateRequiresContent(t *testing.T) {
	svc := NewNoteService(zap.NewNop(), newMockNoteRepo())

	for _, input := range []NoteInput{{}, {Content: strPtr("   ")}} {
		_, err := svc.Create(context.Background(), "u1", input)
		var vErr *ValidationError
		if !errors.As(err, &vErr) || vErr.Field != "content" {
			t.Fatalf("expected content ValidationError, got %v", err)
		}
	}
}

func TestNoteService_OwnershipFilter(t *testing.T) {
	svc := NewNoteService(zap.NewNop(), newMockNoteRepo())

	note, err := svc.Create(context.Background(), "alice", NoteInput{Content: strPtr("mine")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Update(context.Background(), "bob", note.ID, NoteInput{Content: strPtr("stolen")}); !errors.Is(err, ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound for foreign update, got %v", err)
	}
	if _, err := svc.Delete(context.Background(), "bob", note.ID); !errors.Is(err, ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound for foreign delete, got %v", err)
	}

	notes, err := svc.ListForUser(context.Background(), "bob")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(notes) != 0 {
		t.Fatalf("expected empty list for bob, got %d", len(notes))
	}
}

func TestNoteService_UpdateAndDelete(t *testing.T) {
	svc := NewNoteService(zap.NewNop(), newMockNoteRepo())

	note, err := svc.Create(context.Background(), "alice", NoteInput{Title: strPtr("t"), Content: strPtr("v1")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(context.Background(), "alice", note.ID, NoteInput{Content: strPtr("v2")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Content != "v2" || updated.Title != "t" {
		t.Fatalf("unexpected note after update: %+v", updated)
	}

	deleted, err := svc.Delete(context.Background(), "alice", note.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted.ID != note.ID {
		t.Fatalf("expected deleted note returned")
	}
	if _, err := svc.Update(context.Background(), "alice", note.ID, NoteInput{Content: strPtr("v3")}); !errors.Is(err, ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound after delete, got %v", err)
	}
}
