package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ericfisherdev/gracehub/internal/domain/model"
	"github.com/ericfisherdev/gracehub/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.AccountStore = (*AccountRepo)(nil)

const accountColumns = `id, username, email, password_hash, role, created_at`

// AccountRepo is the SQLite implementation of the AccountStore port interface.
// The email column is declared COLLATE NOCASE, so equality and uniqueness on
// email ignore case.
type AccountRepo struct {
	db *DB
}

// NewAccountRepo creates a new AccountRepo backed by the given DB.
func NewAccountRepo(db *DB) *AccountRepo {
	return &AccountRepo{db: db}
}

// Create inserts a new account and returns it with the id and created_at
// assigned by the store.
func (r *AccountRepo) Create(ctx context.Context, account model.Account) (model.Account, error) {
	const query = `INSERT INTO accounts (username, email, password_hash, role) VALUES (?, ?, ?, ?) RETURNING id, created_at`

	var createdAt string
	err := r.db.Writer.QueryRowContext(ctx, query,
		account.Username, account.Email, account.PasswordHash, string(account.Role),
	).Scan(&account.ID, &createdAt)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Account{}, fmt.Errorf("create account %s: %w", account.Username, driven.ErrAccountConflict)
		}
		if isConstraintViolation(err) {
			return model.Account{}, fmt.Errorf("create account %s: %w", account.Username, driven.ErrAccountConstraint)
		}
		return model.Account{}, fmt.Errorf("create account %s: %w", account.Username, err)
	}

	account.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return model.Account{}, fmt.Errorf("parse created_at: %w", err)
	}

	return account, nil
}

// GetByID retrieves an account by id.
func (r *AccountRepo) GetByID(ctx context.Context, id int64) (model.Account, error) {
	acct, err := getAccount(ctx, r.db.Reader, `SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)
	if err != nil {
		return model.Account{}, fmt.Errorf("get account %d: %w", id, err)
	}
	return acct, nil
}

// GetByEmail retrieves an account by email, ignoring case.
func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (model.Account, error) {
	acct, err := getAccount(ctx, r.db.Reader, `SELECT `+accountColumns+` FROM accounts WHERE email = ?`, email)
	if err != nil {
		return model.Account{}, fmt.Errorf("get account by email: %w", err)
	}
	return acct, nil
}

// GetByUsername retrieves an account by exact username.
func (r *AccountRepo) GetByUsername(ctx context.Context, username string) (model.Account, error) {
	acct, err := getAccount(ctx, r.db.Reader, `SELECT `+accountColumns+` FROM accounts WHERE username = ?`, username)
	if err != nil {
		return model.Account{}, fmt.Errorf("get account by username: %w", err)
	}
	return acct, nil
}

// ListAll returns all accounts ordered by id.
func (r *AccountRepo) ListAll(ctx context.Context) ([]model.Account, error) {
	rows, err := r.db.Reader.QueryContext(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []model.Account
	for rows.Next() {
		acct, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, acct)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accounts: %w", err)
	}

	return accounts, nil
}

// Update loads the account, applies patch, and writes it back in one
// transaction. A constraint failure rolls the transaction back.
func (r *AccountRepo) Update(ctx context.Context, id int64, patch model.AccountPatch) (model.Account, error) {
	var updated model.Account

	err := r.db.withTx(ctx, func(tx *sql.Tx) error {
		acct, err := getAccount(ctx, tx, `SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)
		if err != nil {
			return err
		}

		if patch.Username != nil {
			acct.Username = *patch.Username
		}
		if patch.PasswordHash != nil {
			acct.PasswordHash = *patch.PasswordHash
		}
		if patch.Role != nil {
			acct.Role = *patch.Role
		}

		const query = `UPDATE accounts SET username = ?, password_hash = ?, role = ? WHERE id = ?`
		if _, err := tx.ExecContext(ctx, query, acct.Username, acct.PasswordHash, string(acct.Role), id); err != nil {
			if isConstraintViolation(err) {
				return driven.ErrAccountConstraint
			}
			return err
		}

		updated = acct
		return nil
	})
	if err != nil {
		return model.Account{}, fmt.Errorf("update account %d: %w", id, err)
	}

	return updated, nil
}

// Delete removes an account by id.
func (r *AccountRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Writer.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete account %d: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete account %d: %w", id, driven.ErrAccountNotFound)
	}

	return nil
}

func getAccount(ctx context.Context, q dbtx, query string, args ...any) (model.Account, error) {
	acct, err := scanAccount(q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Account{}, driven.ErrAccountNotFound
	}
	return acct, err
}

func scanAccount(s scanner) (model.Account, error) {
	var acct model.Account
	var role, createdAt string

	err := s.Scan(&acct.ID, &acct.Username, &acct.Email, &acct.PasswordHash, &role, &createdAt)
	if err != nil {
		return model.Account{}, err
	}

	acct.Role = model.Role(role)
	acct.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return model.Account{}, fmt.Errorf("parse created_at: %w", err)
	}

	return acct, nil
}
