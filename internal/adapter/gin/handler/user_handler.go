package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "user-directory/internal/domain/user"
	"user-directory/internal/usecase/user"
	apperrors "user-directory/pkg/errors"
	"user-directory/pkg/logger"
	"user-directory/pkg/security"
)

// UserHandler handles JSON API requests for user operations
type UserHandler struct {
	uc  user.Usecase
	log *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc user.Usecase, log *zap.Logger) *UserHandler {
	return &UserHandler{
		uc:  uc,
		log: log,
	}
}

// ListUsersResponse represents the HTTP response for listing users
type ListUsersResponse struct {
	Users      []domain.User `json:"users"`
	Pagination *Pagination   `json:"pagination"`
	Query      string        `json:"query"`
}

// Pagination represents pagination information
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int64 `json:"page"`
	Limit      int64 `json:"limit"`
	TotalPages int64 `json:"total_pages"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ListUsers handles GET /api/v1/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	query := security.SanitizeSearchQuery(c.Query("query"))
	page := parsePage(c.Query("page"))

	log := logger.WithContext(c.Request.Context(), h.log)
	log.Debug("API ListUsers request", zap.String("query", query), zap.Int64("page", page))

	resp, err := h.uc.ListUsers(c.Request.Context(), user.ListUsersRequest{
		Query: query,
		Page:  page,
	})
	if err != nil {
		log.Warn("API ListUsers failed", zap.Error(err))
		h.handleError(c, err)
		return
	}

	out := ListUsersResponse{
		Users: resp.Users,
		Query: resp.Query,
	}
	if resp.Pagination != nil {
		out.Pagination = &Pagination{
			Total:      resp.Pagination.Total,
			Page:       resp.Pagination.Page,
			Limit:      resp.Pagination.Limit,
			TotalPages: resp.Pagination.TotalPages,
		}
	}

	c.JSON(http.StatusOK, out)
}

// GetUser handles GET /api/v1/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	log := logger.WithContext(c.Request.Context(), h.log)

	idStr := c.Param("id")
	id, err := security.ParseUserID(idStr)
	if err != nil {
		log.Warn("Invalid user ID", zap.String("id", idStr), zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "User ID must be a positive integer",
		})
		return
	}

	resp, err := h.uc.GetUser(c.Request.Context(), user.GetUserRequest{ID: id})
	if err != nil {
		log.Info("API GetUser failed", zap.Int64("id", id), zap.Error(err))
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp.User)
}

// handleError converts usecase errors to appropriate HTTP responses
func (h *UserHandler) handleError(c *gin.Context, err error) {
	status := apperrors.StatusOf(err)
	switch status {
	case http.StatusNotFound:
		c.JSON(status, ErrorResponse{Error: "not_found", Message: err.Error()})
	case http.StatusBadRequest:
		c.JSON(status, ErrorResponse{Error: "validation_error", Message: err.Error()})
	default:
		c.JSON(status, ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		})
	}
}
