package repository

import (
	"context"

	"vidconv/internal/model"
)

// UserRepository is the credential store query contract: lookup by identity
// returns zero or one row. Users are never created or mutated through this
// system; the table is owned by the credential store.
type UserRepository interface {
	// FindByUsername returns the user with the given username.
	// A missing row surfaces as sql.ErrNoRows.
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}
