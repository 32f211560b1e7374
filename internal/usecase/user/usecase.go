package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	domain "user-directory/internal/domain/user"
	apperrors "user-directory/pkg/errors"
	"user-directory/pkg/metrics"
)

// Repository defines read access to the user record source.
// Implementations include the REST client, the database snapshot and the
// cache-aside decorator.
type Repository interface {
	List(ctx context.Context) ([]domain.User, error)              // Fetch the whole directory
	GetByID(ctx context.Context, id int64) (*domain.User, error) // Fetch one record
}

// FetchRecorder records the outcome of a fetch against the Repository.
type FetchRecorder interface {
	ObserveFetch(operation, outcome string, duration time.Duration)
}

// usecase implements Usecase on top of a Repository. Fetch failures never
// reach the caller: list fetches fall back to an empty list and single
// fetches to nil.
type usecase struct {
	repo     Repository
	log      *zap.Logger
	rec      FetchRecorder
	validate *validator.Validate
}

// New creates a new instance of Usecase. rec may be nil.
func New(r Repository, log *zap.Logger, rec FetchRecorder) Usecase {
	return &usecase{repo: r, log: log, rec: rec, validate: validator.New()}
}

// formatValidationError converts validator.ValidationErrors into a ValidationError.
func formatValidationError(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return err
	}

	var messages []string
	for _, e := range validationErrors {
		switch e.Tag() {
		case "gt":
			messages = append(messages, fmt.Sprintf("%s must be greater than %s", e.Field(), e.Param()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s characters", e.Field(), e.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", e.Field()))
		}
	}
	return apperrors.NewValidationError(validationErrors[0].Field(), strings.Join(messages, ", "))
}

func (uc *usecase) observe(operation string, start time.Time, err error) {
	if uc.rec == nil {
		return
	}
	outcome := metrics.OutcomeSuccess
	switch {
	case apperrors.IsNotFound(err):
		outcome = metrics.OutcomeNotFound
	case err != nil:
		outcome = metrics.OutcomeError
	}
	uc.rec.ObserveFetch(operation, outcome, time.Since(start))
}

// FetchUsers returns every user record, or an empty list when the source
// fails.
func (uc *usecase) FetchUsers(ctx context.Context) []domain.User {
	start := time.Now()
	users, err := uc.repo.List(ctx)
	uc.observe("list", start, err)
	if err != nil {
		uc.log.Error("failed to fetch users", zap.Error(err))
		return []domain.User{}
	}
	if users == nil {
		return []domain.User{}
	}
	return users
}

// FetchUser returns the user with the given id, or nil when it does not
// exist or the source fails.
func (uc *usecase) FetchUser(ctx context.Context, id int64) *domain.User {
	start := time.Now()
	u, err := uc.repo.GetByID(ctx, id)
	uc.observe("get", start, err)
	if err != nil {
		if apperrors.IsNotFound(err) {
			uc.log.Warn("user not found", zap.Int64("id", id))
		} else {
			uc.log.Error("failed to fetch user", zap.Int64("id", id), zap.Error(err))
		}
		return nil
	}
	return u
}

// GetUser retrieves a user by ID after validating the request. An absent
// record is reported as a NotFoundError.
func (uc *usecase) GetUser(ctx context.Context, in GetUserRequest) (*GetUserResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		uc.log.Warn("get user validation failed", zap.Int64("id", in.ID), zap.Error(err))
		return nil, formatValidationError(err)
	}

	u := uc.FetchUser(ctx, in.ID)
	if u == nil {
		return nil, apperrors.NewNotFoundError("user", fmt.Sprintf("user %d not found", in.ID))
	}

	return &GetUserResponse{User: u}, nil
}

// ListUsers fetches the directory, applies the committed query and returns
// the requested page.
func (uc *usecase) ListUsers(ctx context.Context, in ListUsersRequest) (*ListUsersResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		uc.log.Warn("list users validation failed", zap.Error(err))
		return nil, formatValidationError(err)
	}
	if in.Page < 1 {
		in.Page = 1
	}

	uc.log.Debug("listing users", zap.String("query", in.Query), zap.Int64("page", in.Page))

	all := uc.FetchUsers(ctx)
	filtered := domain.Filter(all, in.Query)

	return &ListUsersResponse{
		Users:      domain.Paginate(filtered, in.Page, domain.PageSize),
		Pagination: domain.NewPagination(int64(len(filtered)), in.Page, domain.PageSize),
		Query:      in.Query,
		Total:      int64(len(all)),
	}, nil
}
