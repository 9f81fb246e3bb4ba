package storage

import (
	"context"

	"diary/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// User operations
	// CreateUser inserts a new user, assigning its ID.
	// Returns model.ErrDuplicate if the username is already taken;
	// no partial row persists on conflict.
	CreateUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id int64) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)

	// Card operations
	// CreateCard inserts a new card, assigning its ID.
	// Returns model.ErrDuplicate if any of title/subtitle/text is
	// already used by another card.
	CreateCard(ctx context.Context, card *model.Card) error
	GetCard(ctx context.Context, id int64) (*model.Card, error)
	CountCards(ctx context.Context) (int, error)
	// ListCards returns cards ordered by insertion id ascending.
	ListCards(ctx context.Context, offset, limit int) ([]model.Card, error)

	// Close releases any underlying resources
	Close() error
}
