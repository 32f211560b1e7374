package user

import domain "user-directory/internal/domain/user"

// GetUserRequest represents the request payload for retrieving a user.
type GetUserRequest struct {
	ID int64 `validate:"gt=0"`
}

// GetUserResponse represents the response payload for user details.
type GetUserResponse struct {
	User *domain.User
}

// ListUsersRequest represents the request payload for listing users.
// Query is the committed search text; Page is 1-based and values below 1
// are treated as the first page.
type ListUsersRequest struct {
	Query string `validate:"max=100"`
	Page  int64
}

// ListUsersResponse represents the response payload for user listing.
type ListUsersResponse struct {
	Users      []domain.User
	Pagination *domain.Pagination
	Query      string
	Total      int64 // records before filtering
}
