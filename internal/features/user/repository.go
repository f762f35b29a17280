package user

import (
	"context"
	"errors"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository defines read access to the team-member catalog
type UserRepository interface {
	FindAll(ctx context.Context) ([]User, error)
	FindByID(ctx context.Context, id string) (*User, error)
}

// InMemoryUserRepository serves a fixed user set. No mutation methods: the
// roster is read-only configuration shared by reference.
type InMemoryUserRepository struct {
	users []User
}

func NewUserRepository(users []User) UserRepository {
	return &InMemoryUserRepository{users: users}
}

func (r *InMemoryUserRepository) FindAll(ctx context.Context) ([]User, error) {
	out := make([]User, len(r.users))
	copy(out, r.users)
	return out, nil
}

func (r *InMemoryUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	for i := range r.users {
		if r.users[i].ID.Hex() == id {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}
