// Package repotest provides an in-memory UserRepository for tests.
package repotest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/workspace-hub/internal/domain/entity"
	"github.com/oksasatya/workspace-hub/internal/domain/repository"
	"github.com/oksasatya/workspace-hub/pkg/helpers"
)

// Users is a map-backed repository.UserRepository. Setting Err makes every
// call fail with it.
type Users struct {
	mu    sync.Mutex
	rows  map[string]entity.User
	Err   error
	Clock func() time.Time
}

func NewUsers() *Users {
	return &Users{rows: map[string]entity.User{}, Clock: time.Now}
}

func (r *Users) now() time.Time { return r.Clock().UTC() }

func (r *Users) emailTaken(email, exceptID string) bool {
	for id, u := range r.rows {
		if id != exceptID && u.Email == email {
			return true
		}
	}
	return false
}

func public(u entity.User) *entity.User {
	u.PasswordHash = ""
	meta := make(map[string]any, len(u.ProfileMetadata))
	for k, v := range u.ProfileMetadata {
		meta[k] = v
	}
	u.ProfileMetadata = meta
	return &u
}

func (r *Users) Create(_ context.Context, in entity.NewUser) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	email := strings.ToLower(in.Email)
	if r.emailTaken(email, "") {
		return nil, repository.ErrEmailInUse
	}
	hash, err := helpers.HashPassword(in.Password, bcrypt.MinCost)
	if err != nil {
		return nil, err
	}
	now := r.now()
	u := entity.User{
		ID:              uuid.NewString(),
		Name:            in.Name,
		Email:           email,
		PasswordHash:    hash,
		IsActive:        true,
		ProfileMetadata: in.ProfileMetadata,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	r.rows[u.ID] = u
	return public(u), nil
}

func (r *Users) FindByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	u, ok := r.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return public(u), nil
}

func (r *Users) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	email = strings.ToLower(email)
	for _, u := range r.rows {
		if u.Email == email {
			hash := u.PasswordHash
			out := public(u)
			out.PasswordHash = hash
			return out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *Users) Update(_ context.Context, id string, in entity.UserUpdate) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	u, ok := r.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Email != nil {
		email := strings.ToLower(*in.Email)
		if r.emailTaken(email, id) {
			return nil, repository.ErrEmailInUse
		}
		u.Email = email
	}
	if in.Password != nil {
		hash, err := helpers.HashPassword(*in.Password, bcrypt.MinCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	if in.ProfileMetadata != nil || in.MetadataPatch != nil {
		meta := map[string]any{}
		base := u.ProfileMetadata
		if in.ProfileMetadata != nil {
			base = in.ProfileMetadata
		}
		for k, v := range base {
			meta[k] = v
		}
		for k, v := range in.MetadataPatch {
			meta[k] = v
		}
		u.ProfileMetadata = meta
	}
	u.UpdatedAt = r.now()
	r.rows[id] = u
	return public(u), nil
}

func (r *Users) UpdateLastLogin(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	u, ok := r.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	now := r.now()
	u.LastLoginAt = &now
	u.UpdatedAt = now
	r.rows[id] = u
	return public(u), nil
}

func (r *Users) Delete(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	u, ok := r.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(r.rows, id)
	return public(u), nil
}

func (r *Users) SoftDelete(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	u, ok := r.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if !u.IsActive {
		return nil, repository.ErrAlreadyInactive
	}
	u.IsActive = false
	u.UpdatedAt = r.now()
	r.rows[id] = u
	return public(u), nil
}

func (r *Users) List(_ context.Context, q entity.ListQuery) (entity.UserPage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return entity.UserPage{}, r.Err
	}
	term := strings.ToLower(q.Search)
	matched := make([]entity.User, 0, len(r.rows))
	for _, u := range r.rows {
		if q.OnlyActive && !u.IsActive {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(u.Name), term) {
			continue
		}
		matched = append(matched, u)
	}

	less := func(a, b entity.User) bool {
		switch q.SortBy {
		case entity.SortByName:
			if a.Name != b.Name {
				return a.Name < b.Name
			}
		case entity.SortByEmail:
			if a.Email != b.Email {
				return a.Email < b.Email
			}
		default:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
		}
		return a.ID < b.ID
	}
	desc := !strings.EqualFold(q.SortOrder, entity.SortAsc)
	sort.Slice(matched, func(i, j int) bool {
		if desc {
			return less(matched[j], matched[i])
		}
		return less(matched[i], matched[j])
	})

	total := len(matched)
	start := min(q.Offset(), total)
	end := min(start+q.Limit, total)
	users := make([]entity.User, 0, end-start)
	for _, u := range matched[start:end] {
		users = append(users, *public(u))
	}
	return entity.UserPage{Users: users, Pagination: entity.NewPagination(q.Page, q.Limit, total)}, nil
}

func (r *Users) Stats(_ context.Context, since time.Time) (entity.UserStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return entity.UserStats{}, r.Err
	}
	var st entity.UserStats
	for _, u := range r.rows {
		st.Total++
		if u.IsActive {
			st.Active++
		}
		if !u.CreatedAt.Before(since) {
			st.Recent++
		}
	}
	st.Inactive = st.Total - st.Active
	return st, nil
}

var _ repository.UserRepository = (*Users)(nil)
