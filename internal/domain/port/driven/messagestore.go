package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/gracehub/internal/domain/model"
)

// ErrMessageNotFound indicates the requested pastor message does not exist.
var ErrMessageNotFound = errors.New("pastor message not found")

// MessageStore defines the driven port for pastor message persistence.
//
// Reads outside InTx observe only committed state. Every write that touches the
// active flag must go through InTx so demotion and activation commit together.
type MessageStore interface {
	ListAll(ctx context.Context) ([]model.PastorMessage, error)

	// GetByID returns ErrMessageNotFound if absent.
	GetByID(ctx context.Context, id int64) (model.PastorMessage, error)

	// GetActive returns nil, nil when no message is active.
	GetActive(ctx context.Context) (*model.PastorMessage, error)

	// CountActive returns the number of committed rows flagged active.
	CountActive(ctx context.Context) (int, error)

	// Delete returns ErrMessageNotFound if absent. It never promotes another message.
	Delete(ctx context.Context, id int64) error

	// InTx runs fn inside a single transaction. The transaction commits when fn
	// returns nil and rolls back otherwise.
	InTx(ctx context.Context, fn func(ctx context.Context, tx MessageTx) error) error
}

// MessageTx is the set of message operations available inside a transaction.
type MessageTx interface {
	// GetByID returns ErrMessageNotFound if absent.
	GetByID(ctx context.Context, id int64) (model.PastorMessage, error)

	// DemoteAll clears the active flag on every message except exceptID.
	// Pass 0 to demote every message.
	DemoteAll(ctx context.Context, exceptID int64) error

	// Insert stores msg and returns it with its assigned id and timestamps.
	Insert(ctx context.Context, msg model.PastorMessage) (model.PastorMessage, error)

	// Save overwrites title, body and active flag of an existing message.
	// Returns ErrMessageNotFound if absent.
	Save(ctx context.Context, msg model.PastorMessage) (model.PastorMessage, error)
}
