package application

import (
	"context"
	"math"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/workspace-hub/internal/domain/entity"
	"github.com/oksasatya/workspace-hub/pkg/apperror"
	"github.com/oksasatya/workspace-hub/pkg/validation"
)

// Listing defaults
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	SearchLimit  = 20
	MinSearchLen = 2
)

// ListParams are the optional listing parameters. Nil and empty values take
// the defaults: page 1, limit 10, active users only, newest first.
type ListParams struct {
	Page       *int   `form:"page" json:"page" validate:"omitempty,min=1"`
	Limit      *int   `form:"limit" json:"limit" validate:"omitempty,min=1,max=100"`
	Search     string `form:"search" json:"search" validate:"max=100"`
	OnlyActive *bool  `form:"onlyActive" json:"onlyActive"`
	SortBy     string `form:"sortBy" json:"sortBy" validate:"omitempty,oneof=name email createdAt"`
	SortOrder  string `form:"sortOrder" json:"sortOrder" validate:"omitempty,oneof=asc desc"`
}

// Query validates p and resolves defaults.
func (p ListParams) Query() (entity.ListQuery, error) {
	if errs := validation.Struct(p); errs != nil {
		return entity.ListQuery{}, apperror.Invalid("invalid list parameters", errs)
	}
	q := entity.ListQuery{
		Page:       DefaultPage,
		Limit:      DefaultLimit,
		Search:     strings.TrimSpace(p.Search),
		OnlyActive: true,
		SortBy:     entity.SortByCreatedAt,
		SortOrder:  entity.SortDesc,
	}
	if p.Page != nil {
		q.Page = *p.Page
	}
	if p.Limit != nil {
		q.Limit = *p.Limit
	}
	if p.OnlyActive != nil {
		q.OnlyActive = *p.OnlyActive
	}
	if p.SortBy != "" {
		q.SortBy = p.SortBy
	}
	if p.SortOrder != "" {
		q.SortOrder = p.SortOrder
	}
	return q, nil
}

func (s *UserService) List(ctx context.Context, p ListParams) (UserList, error) {
	q, err := p.Query()
	if err != nil {
		return UserList{}, err
	}
	page, err := s.Repo.List(ctx, q)
	if err != nil {
		return UserList{}, s.fail("list", err, logrus.Fields{"page": q.Page, "limit": q.Limit})
	}
	out := UserList{Users: make([]UserDTO, 0, len(page.Users)), Pagination: page.Pagination}
	for i := range page.Users {
		out.Users = append(out.Users, ToDTO(&page.Users[i]))
	}
	return out, nil
}

// Search lists active users whose name contains term.
func (s *UserService) Search(ctx context.Context, term string) (UserList, error) {
	term = strings.TrimSpace(term)
	if len([]rune(term)) < MinSearchLen {
		return UserList{}, apperror.Invalid("search term must have at least 2 characters",
			map[string]string{"q": "must have at least 2 characters"})
	}
	limit, active := SearchLimit, true
	return s.List(ctx, ListParams{Search: term, Limit: &limit, OnlyActive: &active})
}

func (s *UserService) Stats(ctx context.Context) (UserStatsDTO, error) {
	st, err := s.Repo.Stats(ctx, s.now().Add(-entity.RecentWindow))
	if err != nil {
		return UserStatsDTO{}, s.fail("stats", err, nil)
	}
	return UserStatsDTO{
		TotalUsers:         st.Total,
		ActiveUsers:        st.Active,
		InactiveUsers:      st.Inactive,
		RecentUsers:        st.Recent,
		ActivePercentage:   percent(st.Active, st.Total),
		InactivePercentage: percent(st.Inactive, st.Total),
		RecentPercentage:   percent(st.Recent, st.Total),
	}, nil
}

// percent rounds part/total to a whole percentage; zero when total is zero.
func percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) * 100 / float64(total)))
}
