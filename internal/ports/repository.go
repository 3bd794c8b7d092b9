package ports

import (
	"context"

	"cryptojournal/internal/domain"
)

// TradeRepository defines the record store for journal trades. These are the
// only persistence primitives the core relies on; no transactional multi-record
// guarantees are assumed.
type TradeRepository interface {
	// Insert saves a new trade record.
	Insert(ctx context.Context, trade *domain.Trade) error
	// FindByID retrieves a trade by its unique ID.
	// Returns nil, nil if not found.
	FindByID(ctx context.Context, id string) (*domain.Trade, error)
	// FindByOwner retrieves all trades belonging to one user.
	FindByOwner(ctx context.Context, ownerID string) ([]*domain.Trade, error)
	// Replace overwrites the stored record with the given ID.
	// Returns an error wrapping ErrNotFound if no such record exists.
	Replace(ctx context.Context, id string, trade *domain.Trade) error
	// Remove deletes a trade, reporting whether a record was removed.
	Remove(ctx context.Context, id string) (bool, error)
}

// UserRepository defines the store for journal users, used by the auth service.
type UserRepository interface {
	// CreateUser saves a new user. Returns an error wrapping ErrDuplicateEntry
	// if the email is already registered.
	CreateUser(ctx context.Context, user *domain.User) error
	// FindUserByEmail retrieves a user by email. Returns nil, nil if not found.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindUserByID retrieves a user by ID. Returns nil, nil if not found.
	FindUserByID(ctx context.Context, id string) (*domain.User, error)
}
