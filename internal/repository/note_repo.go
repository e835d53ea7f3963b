package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"notekeeper/internal/domain"
)

// NoteRepository define el contrato de persistencia para notas.
// Todas las operaciones están acotadas al usuario dueño.
type NoteRepository interface {
	Create(ctx context.Context, note domain.Note) error
	ListByUserID(ctx context.Context, userID string) ([]domain.Note, error)
	GetByIDForUser(ctx context.Context, id, userID string) (domain.Note, error)
	Update(ctx context.Context, note domain.Note) error
	Delete(ctx context.Context, id, userID string) error
}

// PgNoteRepository implementa NoteRepository usando pgxpool.
type PgNoteRepository struct {
	pool *pgxpool.Pool
}

func NewPgNoteRepository(pool *pgxpool.Pool) *PgNoteRepository {
	return &PgNoteRepository{pool: pool}
}

func (r *PgNoteRepository) Create(ctx context.Context, note domain.Note) error {
	const query = `
		INSERT INTO notes (id, user_id, title, content, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		note.ID,
		note.UserID,
		note.Title,
		note.Content,
		note.Color,
		note.CreatedAt,
		note.UpdatedAt,
	)
	return err
}

func (r *PgNoteRepository) ListByUserID(ctx context.Context, userID string) ([]domain.Note, error) {
	const query = `
		SELECT id, user_id, title, content, color, created_at, updated_at
		FROM notes
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []domain.Note
	for rows.Next() {
		var n domain.Note
		err = rows.Scan(
			&n.ID,
			&n.UserID,
			&n.Title,
			&n.Content,
			&n.Color,
			&n.CreatedAt,
			&n.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *PgNoteRepository) GetByIDForUser(ctx context.Context, id, userID string) (domain.Note, error) {
	const query = `
		SELECT id, user_id, title, content, color, created_at, updated_at
		FROM notes
		WHERE id = $1 AND user_id = $2
	`
	var n domain.Note
	err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&n.ID,
		&n.UserID,
		&n.Title,
		&n.Content,
		&n.Color,
		&n.CreatedAt,
		&n.UpdatedAt,
	)
	return n, err
}

func (r *PgNoteRepository) Update(ctx context.Context, note domain.Note) error {
	const query = `
		UPDATE notes
		SET title = $3, content = $4, color = $5, updated_at = $6
		WHERE id = $1 AND user_id = $2
	`
	_, err := r.pool.Exec(ctx, query,
		note.ID,
		note.UserID,
		note.Title,
		note.Content,
		note.Color,
		note.UpdatedAt,
	)
	return err
}

func (r *PgNoteRepository) Delete(ctx context.Context, id, userID string) error {
	const query = `
		DELETE FROM notes
		WHERE id = $1 AND user_id = $2
	`
	_, err := r.pool.Exec(ctx, query, id, userID)
	return err
}
