package repository

import (
	"context"
	"database/sql"
	"time"

	"ir_gateway/internal/models"
)

// Authorization stores API operators when token auth is enabled.
type Authorization interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// EventRepo archives every transmission and reception.
type EventRepo interface {
	Append(ctx context.Context, e models.IREvent) error
	List(ctx context.Context, from, to time.Time, direction string, limit int) ([]models.IREvent, error)
}

type Repository struct {
	EventRepo EventRepo
	Auth      Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		EventRepo: NewEventSQLite(db),
		Auth:      NewUserRepository(db),
	}
}
