package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/ericfisherdev/gracehub/internal/domain/model"
	"github.com/ericfisherdev/gracehub/internal/domain/port/driven"
)

// Field limits shared by registration, update, and admin seeding.
const (
	usernameMinLen = 3
	usernameMaxLen = 120
	emailMaxLen    = 120
	passwordMaxLen = 72 // bcrypt ignores input beyond 72 bytes
)

// RegisterInput carries the fields required to create an account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// LoginInput identifies an account by email or username. Email wins when both are set.
type LoginInput struct {
	Email    string
	Username string
	Password string
}

// AccountUpdate is the explicit set of fields a caller may change. Email is
// not updatable.
type AccountUpdate struct {
	Username *string
	Password *string
	Role     *model.Role
}

// AuthResult is an account paired with a token. Token is empty when the
// operation does not issue one.
type AuthResult struct {
	Account model.Account
	Token   string
}

// AccountService implements registration, login, and account management.
type AccountService struct {
	store     driven.AccountStore
	authority *Authority
	hasher    *PasswordHasher
}

// NewAccountService creates a new AccountService with the required dependencies.
func NewAccountService(store driven.AccountStore, authority *Authority, hasher *PasswordHasher) *AccountService {
	return &AccountService{
		store:     store,
		authority: authority,
		hasher:    hasher,
	}
}

// Register creates a "user" account and returns it with a fresh token.
// Duplicate username or email returns driven.ErrAccountConflict.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	if err := validateRegistration(in); err != nil {
		return AuthResult{}, err
	}

	account, err := s.create(ctx, in, model.RoleUser)
	if err != nil {
		return AuthResult{}, err
	}

	token, err := s.authority.IssueFor(account)
	if err != nil {
		return AuthResult{}, err
	}

	return AuthResult{Account: account, Token: token}, nil
}

// Login verifies a password against the account found by email (case-insensitive)
// or username (exact). Unknown accounts and wrong passwords both return
// ErrInvalidCredentials.
func (s *AccountService) Login(ctx context.Context, in LoginInput) (AuthResult, error) {
	email := strings.TrimSpace(in.Email)
	username := strings.TrimSpace(in.Username)
	if email == "" && username == "" {
		return AuthResult{}, invalidField("identifier", "email or username is required")
	}
	if in.Password == "" {
		return AuthResult{}, invalidField("password", "cannot be blank")
	}

	var (
		account model.Account
		err     error
	)
	if email != "" {
		account, err = s.store.GetByEmail(ctx, email)
	} else {
		account, err = s.store.GetByUsername(ctx, username)
	}

	if errors.Is(err, driven.ErrAccountNotFound) {
		s.hasher.Burn(in.Password)
		return AuthResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return AuthResult{}, fmt.Errorf("look up account: %w", err)
	}

	if !s.hasher.Matches(account.PasswordHash, in.Password) {
		return AuthResult{}, ErrInvalidCredentials
	}

	token, err := s.authority.IssueFor(account)
	if err != nil {
		return AuthResult{}, err
	}

	return AuthResult{Account: account, Token: token}, nil
}

// List returns every account.
func (s *AccountService) List(ctx context.Context) ([]model.Account, error) {
	return s.store.ListAll(ctx)
}

// Get returns the account with the given id.
func (s *AccountService) Get(ctx context.Context, id int64) (model.Account, error) {
	return s.store.GetByID(ctx, id)
}

// Update applies upd to account id. The caller must be the account itself or
// an admin, and only admins may change roles. When the caller changes their
// own role the result carries a token for the new role.
func (s *AccountService) Update(ctx context.Context, caller Identity, id int64, upd AccountUpdate) (AuthResult, error) {
	if !caller.Is(id) && !caller.IsAdmin() {
		return AuthResult{}, ErrForbidden
	}
	if upd.Role != nil && !caller.IsAdmin() {
		return AuthResult{}, ErrForbidden
	}

	if upd.Username != nil {
		trimmed := strings.TrimSpace(*upd.Username)
		upd.Username = &trimmed
	}
	if err := validateUpdate(upd); err != nil {
		return AuthResult{}, err
	}

	patch := model.AccountPatch{Username: upd.Username, Role: upd.Role}
	if upd.Password != nil {
		hash, err := s.hasher.Hash(*upd.Password)
		if err != nil {
			return AuthResult{}, err
		}
		patch.PasswordHash = &hash
	}

	var (
		account model.Account
		err     error
	)
	if patch.IsEmpty() {
		account, err = s.store.GetByID(ctx, id)
	} else {
		account, err = s.store.Update(ctx, id, patch)
	}
	if err != nil {
		return AuthResult{}, err
	}

	return s.withSelfToken(caller, account, upd.Role != nil)
}

// ChangeRole sets the role of account id. Admin only. When the caller is the
// target, the result carries a token encoding the new role.
func (s *AccountService) ChangeRole(ctx context.Context, caller Identity, id int64, role model.Role) (AuthResult, error) {
	if !caller.IsAdmin() {
		return AuthResult{}, ErrForbidden
	}
	if !role.Valid() {
		return AuthResult{}, invalidField("role", roleMessage())
	}

	account, err := s.store.Update(ctx, id, model.AccountPatch{Role: &role})
	if err != nil {
		return AuthResult{}, err
	}

	return s.withSelfToken(caller, account, true)
}

// Delete removes account id. The caller must be the account itself or an admin.
func (s *AccountService) Delete(ctx context.Context, caller Identity, id int64) error {
	if !caller.Is(id) && !caller.IsAdmin() {
		return ErrForbidden
	}
	return s.store.Delete(ctx, id)
}

// EnsureAdmin makes sure an admin account exists for in.Email. An existing
// account with that email is promoted to admin if needed; otherwise a new
// admin account is created. Reports whether an account was created.
func (s *AccountService) EnsureAdmin(ctx context.Context, in RegisterInput) (model.Account, bool, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	if err := validateRegistration(in); err != nil {
		return model.Account{}, false, err
	}

	existing, err := s.store.GetByEmail(ctx, in.Email)
	switch {
	case err == nil:
		if existing.Role == model.RoleAdmin {
			return existing, false, nil
		}
		admin := model.RoleAdmin
		promoted, err := s.store.Update(ctx, existing.ID, model.AccountPatch{Role: &admin})
		if err != nil {
			return model.Account{}, false, err
		}
		return promoted, false, nil
	case !errors.Is(err, driven.ErrAccountNotFound):
		return model.Account{}, false, fmt.Errorf("look up account: %w", err)
	}

	account, err := s.create(ctx, in, model.RoleAdmin)
	if err != nil {
		return model.Account{}, false, err
	}
	return account, true, nil
}

func (s *AccountService) create(ctx context.Context, in RegisterInput, role model.Role) (model.Account, error) {
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return model.Account{}, err
	}

	return s.store.Create(ctx, model.Account{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
	})
}

func (s *AccountService) withSelfToken(caller Identity, account model.Account, roleChanged bool) (AuthResult, error) {
	result := AuthResult{Account: account}
	if !roleChanged || !caller.Is(account.ID) {
		return result, nil
	}

	token, err := s.authority.IssueFor(account)
	if err != nil {
		return AuthResult{}, err
	}
	result.Token = token
	return result, nil
}

func validateRegistration(in RegisterInput) error {
	return fromValidation(validation.Errors{
		"username": validation.Validate(in.Username, validation.Required, validation.RuneLength(usernameMinLen, usernameMaxLen)),
		"email":    validation.Validate(in.Email, validation.Required, validation.RuneLength(0, emailMaxLen), is.Email),
		"password": validation.Validate(in.Password, validation.Required, validation.By(passwordFits)),
	})
}

func validateUpdate(upd AccountUpdate) error {
	errs := validation.Errors{}
	if upd.Username != nil {
		errs["username"] = validation.Validate(*upd.Username, validation.Required, validation.RuneLength(usernameMinLen, usernameMaxLen))
	}
	if upd.Password != nil {
		errs["password"] = validation.Validate(*upd.Password, validation.Required, validation.By(passwordFits))
	}
	if upd.Role != nil && !upd.Role.Valid() {
		errs["role"] = errors.New(roleMessage())
	}
	return fromValidation(errs)
}

// passwordFits enforces bcrypt's input limit in bytes rather than runes.
func passwordFits(value interface{}) error {
	s, _ := value.(string)
	if len(s) > passwordMaxLen {
		return fmt.Errorf("must be at most %d bytes", passwordMaxLen)
	}
	return nil
}

func roleMessage() string {
	names := make([]string, 0, len(model.Roles()))
	for _, r := range model.Roles() {
		names = append(names, string(r))
	}
	return "must be one of " + strings.Join(names, ", ")
}
