package domain

import "time"

// DefaultNoteColor es el color asignado cuando el cliente no envía uno.
const DefaultNoteColor = "#FFE5B4"

type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
