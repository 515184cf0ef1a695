package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/gracehub/internal/domain/model"
)

// Sentinel errors returned by AccountStore implementations.
var (
	// ErrAccountNotFound indicates no account has the requested id or identifier.
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountConflict indicates a create collided with an existing username or email.
	ErrAccountConflict = errors.New("account already exists")

	// ErrAccountConstraint indicates an update violated a store constraint.
	// The enclosing transaction has been rolled back.
	ErrAccountConstraint = errors.New("account constraint violated")
)

// AccountStore defines the driven port for account persistence.
// Email lookups and uniqueness are case-insensitive; usernames are exact.
type AccountStore interface {
	// Create inserts a new account and returns it with its assigned id.
	// Returns ErrAccountConflict on a duplicate username or email.
	Create(ctx context.Context, account model.Account) (model.Account, error)

	// GetByID returns ErrAccountNotFound if absent.
	GetByID(ctx context.Context, id int64) (model.Account, error)

	// GetByEmail matches case-insensitively. Returns ErrAccountNotFound if absent.
	GetByEmail(ctx context.Context, email string) (model.Account, error)

	// GetByUsername returns ErrAccountNotFound if absent.
	GetByUsername(ctx context.Context, username string) (model.Account, error)

	ListAll(ctx context.Context) ([]model.Account, error)

	// Update applies patch atomically. Returns ErrAccountNotFound if absent and
	// ErrAccountConstraint if the patch violates a unique or check constraint.
	Update(ctx context.Context, id int64, patch model.AccountPatch) (model.Account, error)

	// Delete returns ErrAccountNotFound if absent.
	Delete(ctx context.Context, id int64) error
}
