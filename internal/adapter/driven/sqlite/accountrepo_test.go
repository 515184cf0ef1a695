package sqlite

import (
	"context"
	"testing"

	"github.com/ericfisherdev/gracehub/internal/domain/model"
	"github.com/ericfisherdev/gracehub/internal/domain/port/driven"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeAccount(username, email string, role model.Role) model.Account {
	return model.Account{
		Username:     username,
		Email:        email,
		PasswordHash: "$2a$10$hash-" + username,
		Role:         role,
	}
}

func TestAccountRepo_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAccountRepo(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, makeAccount("martin", "martin@example.com", model.RoleUser))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "martin", got.Username)
	assert.Equal(t, "martin@example.com", got.Email)
	assert.Equal(t, model.RoleUser, got.Role)
	assert.Equal(t, created.PasswordHash, got.PasswordHash)
}

func TestAccountRepo_Create_DuplicateEmailIgnoresCase(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAccountRepo(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, makeAccount("anna", "Anna@Example.com", model.RoleUser))
	require.NoError(t, err)

	_, err = repo.Create(ctx, makeAccount("anna2", "anna@example.COM", model.RoleUser))
	require.ErrorIs(t, err, driven.ErrAccountConflict)
}

func TestAccountRepo_Create_DuplicateUsername(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAccountRepo(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, makeAccount("anna", "anna@example.com", model.RoleUser))
	require.NoError(t, err)

	_, err = repo.Create(ctx, makeAccount("anna", "other@example.com", model.RoleUser))
	require.ErrorIs(t, err, driven.ErrAccountConflict)
}

func TestAccountRepo_Create_UnknownRoleRejected(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAccountRepo(db)

	_, err := repo.Create(context.Background(), makeAccount("mech", "mech@example.com", model.Role("mechanic")))
	require.ErrorIs(t, err, driven.ErrAccountConstraint)
}

func TestAccountRepo_GetByEmail_CaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAccountRepo(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, makeAccount("paul", "paul@example.com", model.RoleAdmin))
	require.NoError(t, err)

	got, err := repo.GetByEmail(ctx, "PAUL@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestAccountRepo_GetByUsername_Exact(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAccountRepo(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, makeAccount("paul", "paul@example.com", model.RoleUser))
	require.NoError(t, err)

	_, err = repo.GetByUsername(ctx, "paul")
	require.NoError(t, err)

	_, err = repo.GetByUsername(ctx, "Paul")
	require.ErrorIs(t, err, driven.ErrAccountNotFound)
}

func TestAccountRepo_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAccountRepo(db)

	_, err := repo.GetByID(context.Background(), 42)
	require.ErrorIs(t, err, driven.ErrAccountNotFound)
}

func TestAccountRepo_ListAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAccountRepo(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, makeAccount("a", "a@example.com", model.RoleUser))
	require.NoError(t, err)
	_, err = repo.Create(ctx, makeAccount("b", "b@example.com", model.RoleAdmin))
	require.NoError(t, err)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].Username)
	assert.Equal(t, "b", all[1].Username)
}

func TestAccountRepo_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAccountRepo(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, makeAccount("old", "old@example.com", model.RoleUser))
	require.NoError(t, err)

	updated, err := repo.Update(ctx, created.ID, model.AccountPatch{
		Username: ptr("new"),
		Role:     ptr(model.RoleAdmin),
	})
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Username)
	assert.Equal(t, model.RoleAdmin, updated.Role)
	assert.Equal(t, "old@example.com", updated.Email, "email is immutable")
	assert.Equal(t, created.PasswordHash, updated.PasswordHash, "untouched fields keep their value")
}

func TestAccountRepo_Update_ConstraintRollsBack(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAccountRepo(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, makeAccount("taken", "taken@example.com", model.RoleUser))
	require.NoError(t, err)
	other, err := repo.Create(ctx, makeAccount("other", "other@example.com", model.RoleUser))
	require.NoError(t, err)

	_, err = repo.Update(ctx, other.ID, model.AccountPatch{
		Username:     ptr("taken"),
		PasswordHash: ptr("changed"),
	})
	require.ErrorIs(t, err, driven.ErrAccountConstraint)

	got, err := repo.GetByID(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, "other", got.Username)
	assert.Equal(t, other.PasswordHash, got.PasswordHash)
}

func TestAccountRepo_Update_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAccountRepo(db)

	_, err := repo.Update(context.Background(), 99, model.AccountPatch{Username: ptr("x")})
	require.ErrorIs(t, err, driven.ErrAccountNotFound)
}

func TestAccountRepo_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAccountRepo(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, makeAccount("gone", "gone@example.com", model.RoleUser))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))

	_, err = repo.GetByID(ctx, created.ID)
	require.ErrorIs(t, err, driven.ErrAccountNotFound)

	err = repo.Delete(ctx, created.ID)
	require.ErrorIs(t, err, driven.ErrAccountNotFound)
}
