package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/hugohenrick/pdv-conveniencia/internal/domain/user"
)

// Users retorna o repositório de usuários
func (s *Store) Users() user.Repository { return &userRepo{s} }

type userRepo struct{ s *Store }

func (r *userRepo) Create(ctx context.Context, u *user.User) error {
	defer r.s.lock(ctx)()
	for _, existing := range r.s.data.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return user.ErrDuplicateEmail
		}
	}
	r.s.data.users[u.ID] = *u
	return nil
}

func (r *userRepo) FindByID(ctx context.Context, id string) (*user.User, error) {
	defer r.s.lock(ctx)()
	u, ok := r.s.data.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return &u, nil
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	defer r.s.lock(ctx)()
	for _, u := range r.s.data.users {
		if strings.EqualFold(u.Email, email) {
			found := u
			return &found, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *userRepo) List(ctx context.Context, limit, offset int) ([]*user.User, error) {
	defer r.s.lock(ctx)()
	out := make([]*user.User, 0, len(r.s.data.users))
	for _, u := range r.s.data.users {
		found := u
		out = append(out, &found)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, limit, offset), nil
}

func (r *userRepo) UpdateStatus(ctx context.Context, id string, status user.Status) error {
	defer r.s.lock(ctx)()
	u, ok := r.s.data.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.Status = status
	u.UpdatedAt = time.Now()
	r.s.data.users[id] = u
	return nil
}

func (r *userRepo) UpdateLastLogin(ctx context.Context, id string) error {
	defer r.s.lock(ctx)()
	u, ok := r.s.data.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	now := time.Now()
	u.LastLoginAt = &now
	r.s.data.users[id] = u
	return nil
}

func (r *userRepo) Count(ctx context.Context) (int, error) {
	defer r.s.lock(ctx)()
	return len(r.s.data.users), nil
}
