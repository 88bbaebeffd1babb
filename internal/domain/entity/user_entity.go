package entity

import (
	"time"
)

// User is the aggregate root for user domain
// PasswordHash holds a bcrypt hash and is only populated by email lookups.
type User struct {
	ID              string
	Name            string
	Email           string
	PasswordHash    string
	IsActive        bool
	ProfileMetadata map[string]any
	CreatedAt       time.Time
	UpdatedAt       time.Time
	LastLoginAt     *time.Time
}

// Profile metadata keys written by the registration flow.
const (
	MetaPhone           = "phone"
	MetaTermsAcceptedAt = "termsAcceptedAt"
	MetaUpdatedAt       = "updatedAt"
)

// NewUser is a validated registration record. Password is still plain text;
// the repository hashes it on insert.
type NewUser struct {
	Name            string
	Email           string
	Phone           string
	Password        string
	ProfileMetadata map[string]any
}

// UserUpdate carries a partial update. Nil fields are left untouched.
// ProfileMetadata replaces the stored document, MetadataPatch is merged into it.
type UserUpdate struct {
	Name            *string
	Email           *string
	Password        *string
	IsActive        *bool
	ProfileMetadata map[string]any
	MetadataPatch   map[string]any
}

// Empty reports whether the update would only stamp updated_at.
func (u UserUpdate) Empty() bool {
	return u.Name == nil && u.Email == nil && u.Password == nil && u.IsActive == nil &&
		u.ProfileMetadata == nil && u.MetadataPatch == nil
}

// UserStats are aggregate counts over the users table.
type UserStats struct {
	Total    int
	Active   int
	Inactive int
	Recent   int
}

// RecentWindow is the trailing window counted as "recent" in UserStats.
const RecentWindow = 30 * 24 * time.Hour
