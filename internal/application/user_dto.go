package application

import (
	"time"

	"github.com/oksasatya/workspace-hub/internal/domain/entity"
)

// UserDTO is the public projection of a user. It never carries the password hash.
type UserDTO struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Email           string         `json:"email"`
	IsActive        bool           `json:"isActive"`
	ProfileMetadata map[string]any `json:"profileMetadata"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	LastLoginAt     *time.Time     `json:"lastLoginAt"`
}

func ToDTO(u *entity.User) UserDTO {
	if u == nil {
		return UserDTO{}
	}
	meta := u.ProfileMetadata
	if meta == nil {
		meta = map[string]any{}
	}
	return UserDTO{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		IsActive:        u.IsActive,
		ProfileMetadata: meta,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
		LastLoginAt:     u.LastLoginAt,
	}
}

// UserList is one page of users plus its pagination metadata.
type UserList struct {
	Users      []UserDTO         `json:"users"`
	Pagination entity.Pagination `json:"pagination"`
}

// UserStatsDTO adds rounded percentages of the total to the raw counts.
type UserStatsDTO struct {
	TotalUsers         int `json:"totalUsers"`
	ActiveUsers        int `json:"activeUsers"`
	InactiveUsers      int `json:"inactiveUsers"`
	RecentUsers        int `json:"recentUsers"`
	ActivePercentage   int `json:"activePercentage"`
	InactivePercentage int `json:"inactivePercentage"`
	RecentPercentage   int `json:"recentPercentage"`
}
