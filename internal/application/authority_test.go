package application

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/gracehub/internal/domain/model"
)

var testSecret = []byte("test-secret-key")

func TestAuthority_IssueVerifyRoundTrip(t *testing.T) {
	a := NewAuthority(testSecret, DefaultTokenTTL)

	token, err := a.Issue("42", model.RoleAdmin)
	require.NoError(t, err)

	id, err := a.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "42", id.SubjectID)
	assert.Equal(t, model.RoleAdmin, id.Role)
	assert.True(t, id.Is(42))
	assert.True(t, id.IsAdmin())
}

func TestAuthority_ClaimsCarryIssuedAndExpiry(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	a := NewAuthority(testSecret, DefaultTokenTTL)
	a.now = func() time.Time { return fixed }

	token, err := a.Issue("7", model.RoleUser)
	require.NoError(t, err)

	c := &claims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, c)
	require.NoError(t, err)
	assert.Equal(t, "7", c.Subject)
	assert.Equal(t, "user", c.Role)
	assert.Equal(t, fixed.Unix(), c.IssuedAt.Unix())
	assert.Equal(t, fixed.Add(24*time.Hour).Unix(), c.ExpiresAt.Unix())
}

func TestAuthority_ExpiredToken(t *testing.T) {
	a := NewAuthority(testSecret, -time.Second)

	token, err := a.Issue("1", model.RoleUser)
	require.NoError(t, err)

	_, err = NewAuthority(testSecret, DefaultTokenTTL).Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestAuthority_ExpiresAfterTTL(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	a := NewAuthority(testSecret, time.Hour)
	a.now = func() time.Time { return start }

	token, err := a.Issue("1", model.RoleUser)
	require.NoError(t, err)

	a.now = func() time.Time { return start.Add(59 * time.Minute) }
	_, err = a.Verify(token)
	require.NoError(t, err)

	a.now = func() time.Time { return start.Add(61 * time.Minute) }
	_, err = a.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestAuthority_RejectsBadTokens(t *testing.T) {
	a := NewAuthority(testSecret, DefaultTokenTTL)

	otherSigned, err := NewAuthority([]byte("other-secret"), DefaultTokenTTL).Issue("1", model.RoleAdmin)
	require.NoError(t, err)

	hs512 := jwt.NewWithClaims(jwt.SigningMethodHS512, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Role: "admin",
	})
	wrongAlg, err := hs512.SignedString(testSecret)
	require.NoError(t, err)

	noRole := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	missingRole, err := noRole.SignedString(testSecret)
	require.NoError(t, err)

	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "1"},
		Role:             "admin",
	})
	missingExp, err := noExp.SignedString(testSecret)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "wrong secret", token: otherSigned},
		{name: "wrong algorithm", token: wrongAlg},
		{name: "missing role claim", token: missingRole},
		{name: "missing exp claim", token: missingExp},
		{name: "garbage", token: "not-a-token"},
		{name: "empty", token: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Verify(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
