package application

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ericfisherdev/gracehub/internal/domain/model"
)

// DefaultTokenTTL is the lifetime of every issued token.
const DefaultTokenTTL = 24 * time.Hour

// Identity is the verified subject and role carried by a bearer token.
type Identity struct {
	SubjectID string
	Role      model.Role
}

// Is reports whether the identity belongs to the account with the given id.
func (i Identity) Is(accountID int64) bool {
	return i.SubjectID == strconv.FormatInt(accountID, 10)
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == model.RoleAdmin
}

// claims is the JWT payload: sub, iat and exp from the registered set plus role.
type claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// Authority issues and verifies HS256 bearer tokens. It holds no mutable
// state after construction and is safe for concurrent use.
type Authority struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewAuthority creates an Authority signing with secret. A non-positive ttl
// still mints tokens; they are simply already expired, which tests rely on.
func NewAuthority(secret []byte, ttl time.Duration) *Authority {
	return &Authority{
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue mints a token for subjectID with the given role, valid until now+ttl.
func (a *Authority) Issue(subjectID string, role model.Role) (string, error) {
	now := a.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
		Role: string(role),
	})

	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// IssueFor mints a token for an account.
func (a *Authority) IssueFor(account model.Account) (string, error) {
	return a.Issue(strconv.FormatInt(account.ID, 10), account.Role)
}

// Verify checks the signature and expiry of token and returns its identity.
// Returns ErrTokenExpired for an expired token and ErrInvalidToken otherwise.
func (a *Authority) Verify(token string) (Identity, error) {
	keyFunc := func(*jwt.Token) (any, error) { return a.secret, nil }

	c := &claims{}
	_, err := jwt.ParseWithClaims(token, c, keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, ErrTokenExpired
		}
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if c.Subject == "" || c.Role == "" {
		return Identity{}, fmt.Errorf("%w: missing sub or role claim", ErrInvalidToken)
	}

	return Identity{SubjectID: c.Subject, Role: model.Role(c.Role)}, nil
}
