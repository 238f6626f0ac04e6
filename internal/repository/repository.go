// Package repository implements CRUD over the CMS metadata records in
// ArangoDB. The interfaces are what the services and the GraphQL layer
// consume; tests substitute in-memory fakes.
package repository

import (
	"context"

	"github.com/mycms/portfolio-backend/model"
)

// Users is the account record store.
type Users interface {
	// Find returns the user or common.ErrNotFound.
	Find(ctx context.Context, username string) (*model.User, error)
	// Create stores a new user and returns its document key. A
	// duplicate username fails with common.ErrConflict.
	Create(ctx context.Context, u *model.User) (string, error)
	// Update applies a partial profile update; empty patch fields
	// leave stored values unchanged. Returns the updated record or
	// common.ErrNotFound.
	Update(ctx context.Context, username string, patch model.UserPatch) (*model.User, error)
}

// Portfolios is the portfolio metadata store.
type Portfolios interface {
	Create(ctx context.Context, p *model.Portfolio) error
	// ListByOwner returns the owner's records sorted by creation time
	// descending.
	ListByOwner(ctx context.Context, owner string) ([]model.Portfolio, error)
	// Find returns the record for a storage filename or common.ErrNotFound.
	Find(ctx context.Context, filename string) (*model.Portfolio, error)
	// Delete removes the record for a storage filename. Deleting an
	// absent filename is not an error; the blob store is the
	// authority on existence.
	Delete(ctx context.Context, filename string) error
}
