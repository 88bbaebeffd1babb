package entity

import "time"

// Tenancy hierarchy: a Workspace owns Spaces, a Space owns Categories.
// Workspaces and Spaces carry their own membership rows.

// Membership roles
const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Category types allowed by the categories.type check constraint.
const (
	CategoryList   = "LIST"
	CategorySprint = "SPRINT"
	CategoryText   = "TEXT"
)

// ValidCategoryType reports whether t satisfies the categories type constraint.
func ValidCategoryType(t string) bool {
	switch t {
	case CategoryList, CategorySprint, CategoryText:
		return true
	}
	return false
}

type Workspace struct {
	ID          string
	Name        string
	Description string
	OwnerID     string
	IsActive    bool
	Settings    map[string]any
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type WorkspaceMember struct {
	ID          string
	WorkspaceID string
	UserID      string
	Role        string
	InvitedAt   time.Time
	JoinedAt    *time.Time
	IsActive    bool
	Permissions map[string]any
}

type Space struct {
	ID          string
	Name        string
	Description string
	WorkspaceID string
	CreatedBy   string
	IsActive    bool
	IsPrivate   bool
	SortOrder   int
	Settings    map[string]any
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type SpaceMember struct {
	ID          string
	SpaceID     string
	UserID      string
	Role        string
	InvitedAt   time.Time
	JoinedAt    *time.Time
	IsActive    bool
	Permissions map[string]any
}

type Category struct {
	ID        string
	Name      string
	SpaceID   string
	OwnerID   string
	Type      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
