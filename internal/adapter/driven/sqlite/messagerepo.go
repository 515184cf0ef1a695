package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ericfisherdev/gracehub/internal/domain/model"
	"github.com/ericfisherdev/gracehub/internal/domain/port/driven"
)

// Compile-time interface satisfaction checks.
var (
	_ driven.MessageStore = (*MessageRepo)(nil)
	_ driven.MessageTx    = (*messageTx)(nil)
)

const messageColumns = `id, title, message, is_active, created_at, updated_at`

// MessageRepo is the SQLite implementation of the MessageStore port interface.
// A partial unique index on is_active rejects a second active row at commit
// time, so a faulty write path fails loudly instead of breaking the invariant.
type MessageRepo struct {
	db *DB
}

// NewMessageRepo creates a new MessageRepo backed by the given DB.
func NewMessageRepo(db *DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// ListAll returns all messages ordered by id.
func (r *MessageRepo) ListAll(ctx context.Context) ([]model.PastorMessage, error) {
	rows, err := r.db.Reader.QueryContext(ctx, `SELECT `+messageColumns+` FROM pastor_messages ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list pastor messages: %w", err)
	}
	defer rows.Close()

	var msgs []model.PastorMessage
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pastor message: %w", err)
		}
		msgs = append(msgs, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pastor messages: %w", err)
	}

	return msgs, nil
}

// GetByID retrieves a message by id.
func (r *MessageRepo) GetByID(ctx context.Context, id int64) (model.PastorMessage, error) {
	msg, err := getMessage(ctx, r.db.Reader, id)
	if err != nil {
		return model.PastorMessage{}, fmt.Errorf("get pastor message %d: %w", id, err)
	}
	return msg, nil
}

// GetActive returns the active message, or nil, nil when none is active.
func (r *MessageRepo) GetActive(ctx context.Context) (*model.PastorMessage, error) {
	const query = `SELECT ` + messageColumns + ` FROM pastor_messages WHERE is_active = 1 LIMIT 1`

	msg, err := scanMessage(r.db.Reader.QueryRowContext(ctx, query))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get active pastor message: %w", err)
	}

	return &msg, nil
}

// CountActive returns the number of active rows.
func (r *MessageRepo) CountActive(ctx context.Context) (int, error) {
	var n int
	err := r.db.Reader.QueryRowContext(ctx, `SELECT COUNT(*) FROM pastor_messages WHERE is_active = 1`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count active pastor messages: %w", err)
	}
	return n, nil
}

// Delete removes a message by id.
func (r *MessageRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Writer.ExecContext(ctx, `DELETE FROM pastor_messages WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete pastor message %d: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete pastor message %d: %w", id, driven.ErrMessageNotFound)
	}

	return nil
}

// InTx runs fn inside a writer transaction.
func (r *MessageRepo) InTx(ctx context.Context, fn func(ctx context.Context, tx driven.MessageTx) error) error {
	return r.db.withTx(ctx, func(tx *sql.Tx) error {
		return fn(ctx, &messageTx{tx: tx})
	})
}

// messageTx binds message writes to a single *sql.Tx.
type messageTx struct {
	tx *sql.Tx
}

func (t *messageTx) GetByID(ctx context.Context, id int64) (model.PastorMessage, error) {
	msg, err := getMessage(ctx, t.tx, id)
	if err != nil {
		return model.PastorMessage{}, fmt.Errorf("get pastor message %d: %w", id, err)
	}
	return msg, nil
}

func (t *messageTx) DemoteAll(ctx context.Context, exceptID int64) error {
	const query = `UPDATE pastor_messages SET is_active = 0, updated_at = CURRENT_TIMESTAMP WHERE is_active = 1 AND id != ?`
	if _, err := t.tx.ExecContext(ctx, query, exceptID); err != nil {
		return fmt.Errorf("demote pastor messages: %w", err)
	}
	return nil
}

func (t *messageTx) Insert(ctx context.Context, msg model.PastorMessage) (model.PastorMessage, error) {
	const query = `INSERT INTO pastor_messages (title, message, is_active) VALUES (?, ?, ?) RETURNING ` + messageColumns

	inserted, err := scanMessage(t.tx.QueryRowContext(ctx, query, msg.Title, msg.Body, msg.IsActive))
	if err != nil {
		return model.PastorMessage{}, fmt.Errorf("insert pastor message: %w", err)
	}
	return inserted, nil
}

func (t *messageTx) Save(ctx context.Context, msg model.PastorMessage) (model.PastorMessage, error) {
	const query = `
		UPDATE pastor_messages
		SET title = ?, message = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
		RETURNING ` + messageColumns

	saved, err := scanMessage(t.tx.QueryRowContext(ctx, query, msg.Title, msg.Body, msg.IsActive, msg.ID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.PastorMessage{}, fmt.Errorf("save pastor message %d: %w", msg.ID, driven.ErrMessageNotFound)
	}
	if err != nil {
		return model.PastorMessage{}, fmt.Errorf("save pastor message %d: %w", msg.ID, err)
	}
	return saved, nil
}

func getMessage(ctx context.Context, q dbtx, id int64) (model.PastorMessage, error) {
	msg, err := scanMessage(q.QueryRowContext(ctx, `SELECT `+messageColumns+` FROM pastor_messages WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.PastorMessage{}, driven.ErrMessageNotFound
	}
	return msg, err
}

func scanMessage(s scanner) (model.PastorMessage, error) {
	var msg model.PastorMessage
	var createdAt, updatedAt string

	err := s.Scan(&msg.ID, &msg.Title, &msg.Body, &msg.IsActive, &createdAt, &updatedAt)
	if err != nil {
		return model.PastorMessage{}, err
	}

	msg.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return model.PastorMessage{}, fmt.Errorf("parse created_at: %w", err)
	}
	msg.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return model.PastorMessage{}, fmt.Errorf("parse updated_at: %w", err)
	}

	return msg, nil
}
