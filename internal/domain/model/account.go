package model

import "time"

// Account is a registered identity. PasswordHash holds a bcrypt hash and is
// never serialized to API responses.
type Account struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// AccountPatch lists the account fields that may change after creation.
// Nil fields are left untouched. Email and ID are intentionally absent.
type AccountPatch struct {
	Username     *string
	PasswordHash *string
	Role         *Role
}

// IsEmpty reports whether the patch changes nothing.
func (p AccountPatch) IsEmpty() bool {
	return p.Username == nil && p.PasswordHash == nil && p.Role == nil
}
