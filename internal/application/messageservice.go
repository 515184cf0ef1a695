package application

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/ericfisherdev/gracehub/internal/domain/model"
	"github.com/ericfisherdev/gracehub/internal/domain/port/driven"
)

const (
	titleMaxLen = 200
	bodyMaxLen  = 1000
)

// MessageInput carries the fields for a new pastor message. A nil IsActive
// means active.
type MessageInput struct {
	Title    string
	Body     string
	IsActive *bool
}

// MessageService maintains the pastor message collection with at most one
// active message. Every path that can set the active flag demotes the others
// in the same store transaction, so readers never observe two active messages.
type MessageService struct {
	store driven.MessageStore
}

// NewMessageService creates a new MessageService with the required dependencies.
func NewMessageService(store driven.MessageStore) *MessageService {
	return &MessageService{store: store}
}

// Create stores a new message. When it is active, every existing message is
// demoted first.
func (s *MessageService) Create(ctx context.Context, in MessageInput) (model.PastorMessage, error) {
	msg := model.PastorMessage{
		Title:    strings.TrimSpace(in.Title),
		Body:     in.Body,
		IsActive: in.IsActive == nil || *in.IsActive,
	}
	if err := validateMessage(msg); err != nil {
		return model.PastorMessage{}, err
	}

	var created model.PastorMessage
	err := s.store.InTx(ctx, func(ctx context.Context, tx driven.MessageTx) error {
		if msg.IsActive {
			if err := tx.DemoteAll(ctx, 0); err != nil {
				return err
			}
		}
		var err error
		created, err = tx.Insert(ctx, msg)
		return err
	})
	if err != nil {
		return model.PastorMessage{}, err
	}
	return created, nil
}

// Update applies patch to message id. Setting IsActive to true demotes every
// other message in the same transaction. Returns driven.ErrMessageNotFound if absent.
func (s *MessageService) Update(ctx context.Context, id int64, patch model.PastorMessagePatch) (model.PastorMessage, error) {
	if patch.Title != nil {
		trimmed := strings.TrimSpace(*patch.Title)
		patch.Title = &trimmed
	}

	var updated model.PastorMessage
	err := s.store.InTx(ctx, func(ctx context.Context, tx driven.MessageTx) error {
		msg, err := tx.GetByID(ctx, id)
		if err != nil {
			return err
		}

		patch.Apply(&msg)
		if err := validateMessage(msg); err != nil {
			return err
		}

		if patch.IsActive != nil && *patch.IsActive {
			if err := tx.DemoteAll(ctx, id); err != nil {
				return err
			}
		}

		updated, err = tx.Save(ctx, msg)
		return err
	})
	if err != nil {
		return model.PastorMessage{}, err
	}
	return updated, nil
}

// Activate makes message id the single active message: every message is
// demoted, then the target is flagged active, in one transaction.
// Returns driven.ErrMessageNotFound if absent.
func (s *MessageService) Activate(ctx context.Context, id int64) (model.PastorMessage, error) {
	var activated model.PastorMessage
	err := s.store.InTx(ctx, func(ctx context.Context, tx driven.MessageTx) error {
		msg, err := tx.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if err := tx.DemoteAll(ctx, 0); err != nil {
			return err
		}

		msg.IsActive = true
		activated, err = tx.Save(ctx, msg)
		return err
	})
	if err != nil {
		return model.PastorMessage{}, err
	}
	return activated, nil
}

// GetActive returns the active message. The boolean is false when no message
// is active.
func (s *MessageService) GetActive(ctx context.Context) (model.PastorMessage, bool, error) {
	msg, err := s.store.GetActive(ctx)
	if err != nil {
		return model.PastorMessage{}, false, err
	}
	if msg == nil {
		return model.PastorMessage{}, false, nil
	}
	return *msg, true, nil
}

// Get returns message id. Returns driven.ErrMessageNotFound if absent.
func (s *MessageService) Get(ctx context.Context, id int64) (model.PastorMessage, error) {
	return s.store.GetByID(ctx, id)
}

// List returns every message.
func (s *MessageService) List(ctx context.Context) ([]model.PastorMessage, error) {
	return s.store.ListAll(ctx)
}

// Delete removes message id. Deleting the active message leaves no message
// active; nothing is promoted in its place.
func (s *MessageService) Delete(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}

func validateMessage(msg model.PastorMessage) error {
	return fromValidation(validation.Errors{
		"title":   validation.Validate(msg.Title, validation.Required, validation.RuneLength(1, titleMaxLen)),
		"message": validation.Validate(msg.Body, validation.Required, validation.RuneLength(1, bodyMaxLen)),
	})
}

