package user

import (
	"context"

	domain "user-directory/internal/domain/user"
)

// Usecase defines the interface for user directory operations.
type Usecase interface {
	FetchUsers(ctx context.Context) []domain.User
	FetchUser(ctx context.Context, id int64) *domain.User
	GetUser(ctx context.Context, in GetUserRequest) (*GetUserResponse, error)
	ListUsers(ctx context.Context, in ListUsersRequest) (*ListUsersResponse, error)
}
