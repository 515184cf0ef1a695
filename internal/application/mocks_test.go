package application

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ericfisherdev/gracehub/internal/domain/model"
	"github.com/ericfisherdev/gracehub/internal/domain/port/driven"
)

// --- mockAccountStore ---

type mockAccountStore struct {
	mu       sync.Mutex
	nextID   int64
	accounts map[int64]model.Account
	lookups  int
}

func newMockAccountStore() *mockAccountStore {
	return &mockAccountStore{accounts: make(map[int64]model.Account)}
}

func (m *mockAccountStore) Create(_ context.Context, a model.Account) (model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !a.Role.Valid() {
		return model.Account{}, driven.ErrAccountConstraint
	}
	for _, existing := range m.accounts {
		if existing.Username == a.Username || strings.EqualFold(existing.Email, a.Email) {
			return model.Account{}, driven.ErrAccountConflict
		}
	}
	m.nextID++
	a.ID = m.nextID
	a.CreatedAt = time.Now()
	m.accounts[a.ID] = a
	return a, nil
}

func (m *mockAccountStore) GetByID(_ context.Context, id int64) (model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.accounts[id]
	if !ok {
		return model.Account{}, driven.ErrAccountNotFound
	}
	return a, nil
}

func (m *mockAccountStore) GetByEmail(_ context.Context, email string) (model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lookups++
	for _, a := range m.accounts {
		if strings.EqualFold(a.Email, email) {
			return a, nil
		}
	}
	return model.Account{}, driven.ErrAccountNotFound
}

func (m *mockAccountStore) GetByUsername(_ context.Context, username string) (model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lookups++
	for _, a := range m.accounts {
		if a.Username == username {
			return a, nil
		}
	}
	return model.Account{}, driven.ErrAccountNotFound
}

func (m *mockAccountStore) ListAll(_ context.Context) ([]model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.Account, 0, len(m.accounts))
	for _, a := range m.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockAccountStore) Update(_ context.Context, id int64, patch model.AccountPatch) (model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.accounts[id]
	if !ok {
		return model.Account{}, driven.ErrAccountNotFound
	}
	if patch.Username != nil {
		for otherID, other := range m.accounts {
			if otherID != id && other.Username == *patch.Username {
				return model.Account{}, driven.ErrAccountConstraint
			}
		}
		a.Username = *patch.Username
	}
	if patch.PasswordHash != nil {
		a.PasswordHash = *patch.PasswordHash
	}
	if patch.Role != nil {
		a.Role = *patch.Role
	}
	m.accounts[id] = a
	return a, nil
}

func (m *mockAccountStore) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.accounts[id]; !ok {
		return driven.ErrAccountNotFound
	}
	delete(m.accounts, id)
	return nil
}

// --- mockMessageStore ---

// errTwoActive stands in for the store's partial unique index.
var errTwoActive = errors.New("two active messages")

// mockMessageStore runs InTx against a copy of the rows and swaps it in only
// when the callback succeeds, so a failed transaction leaves no trace.
type mockMessageStore struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]model.PastorMessage
	txs    int
}

func newMockMessageStore() *mockMessageStore {
	return &mockMessageStore{rows: make(map[int64]model.PastorMessage)}
}

func (m *mockMessageStore) ListAll(_ context.Context) ([]model.PastorMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.PastorMessage, 0, len(m.rows))
	for _, r := range m.rows {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockMessageStore) GetByID(_ context.Context, id int64) (model.PastorMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.rows[id]
	if !ok {
		return model.PastorMessage{}, driven.ErrMessageNotFound
	}
	return r, nil
}

func (m *mockMessageStore) GetActive(_ context.Context) (*model.PastorMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.rows {
		if r.IsActive {
			msg := r
			return &msg, nil
		}
	}
	return nil, nil
}

func (m *mockMessageStore) CountActive(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return countActive(m.rows), nil
}

func (m *mockMessageStore) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.rows[id]; !ok {
		return driven.ErrMessageNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *mockMessageStore) InTx(ctx context.Context, fn func(context.Context, driven.MessageTx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.txs++
	tx := &mockMessageTx{store: m, rows: make(map[int64]model.PastorMessage, len(m.rows))}
	for id, r := range m.rows {
		tx.rows[id] = r
	}

	if err := fn(ctx, tx); err != nil {
		return err
	}
	if countActive(tx.rows) > 1 {
		return errTwoActive
	}
	m.rows = tx.rows
	return nil
}

type mockMessageTx struct {
	store *mockMessageStore
	rows  map[int64]model.PastorMessage
}

func (t *mockMessageTx) GetByID(_ context.Context, id int64) (model.PastorMessage, error) {
	r, ok := t.rows[id]
	if !ok {
		return model.PastorMessage{}, driven.ErrMessageNotFound
	}
	return r, nil
}

func (t *mockMessageTx) DemoteAll(_ context.Context, exceptID int64) error {
	for id, r := range t.rows {
		if id != exceptID && r.IsActive {
			r.IsActive = false
			t.rows[id] = r
		}
	}
	return nil
}

func (t *mockMessageTx) Insert(_ context.Context, msg model.PastorMessage) (model.PastorMessage, error) {
	t.store.nextID++
	msg.ID = t.store.nextID
	msg.CreatedAt = time.Now()
	msg.UpdatedAt = msg.CreatedAt
	t.rows[msg.ID] = msg
	return msg, nil
}

func (t *mockMessageTx) Save(_ context.Context, msg model.PastorMessage) (model.PastorMessage, error) {
	if _, ok := t.rows[msg.ID]; !ok {
		return model.PastorMessage{}, driven.ErrMessageNotFound
	}
	msg.UpdatedAt = time.Now()
	t.rows[msg.ID] = msg
	return msg, nil
}

func countActive(rows map[int64]model.PastorMessage) int {
	n := 0
	for _, r := range rows {
		if r.IsActive {
			n++
		}
	}
	return n
}
