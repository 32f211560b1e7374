package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	domain "user-directory/internal/domain/user"
	apperrors "user-directory/pkg/errors"
	"user-directory/pkg/logger"
)

const tracerName = "user-directory/internal/adapter/source/rest"

// maxBodyBytes caps how much of an upstream response is decoded.
const maxBodyBytes = 4 << 20

// UserClient fetches user records from the remote REST API.
// It implements user.Repository.
type UserClient struct {
	baseURL    string
	httpClient *http.Client
	tracer     trace.Tracer
	log        *zap.Logger
}

// Option customises client instantiation.
type Option func(*UserClient)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *UserClient) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// NewUserClient constructs a UserClient pointing at the provided API base URL.
func NewUserClient(baseURL string, timeout time.Duration, log *zap.Logger, opts ...Option) (*UserClient, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, fmt.Errorf("api base url is required")
	}
	if _, err := url.ParseRequestURI(trimmed); err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &UserClient{
		baseURL:    trimmed,
		httpClient: &http.Client{Timeout: timeout},
		tracer:     otel.Tracer(tracerName),
		log:        log,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// List fetches the full user collection.
func (c *UserClient) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := c.get(ctx, "list users", "/users", &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []domain.User{}
	}

	c.log.Debug("fetched users from api", zap.Int("count", len(users)))
	return users, nil
}

// GetByID fetches a single user record. A 404 from the API is reported as a
// NotFoundError.
func (c *UserClient) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	if err := c.get(ctx, "get user", "/users/"+strconv.FormatInt(id, 10), &u); err != nil {
		return nil, err
	}

	// The API answers unknown ids on some mirrors with an empty object.
	if u.ID == 0 {
		return nil, apperrors.NewNotFoundError("user", fmt.Sprintf("user not found: id=%d", id))
	}

	return &u, nil
}

func (c *UserClient) get(ctx context.Context, operation, path string, v any) error {
	ctx, span := c.tracer.Start(ctx, "rest."+strings.ReplaceAll(operation, " ", "_"),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", http.MethodGet),
			attribute.String("url.path", path),
		),
	)
	defer span.End()

	endpoint := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return c.fail(span, apperrors.NewInternalError("create request", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")
	if id := logger.GetRequestID(ctx); id != "" {
		req.Header.Set(logger.RequestIDHeader, id)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.fail(span, apperrors.NewUpstreamError(operation, 0, err))
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode == http.StatusNotFound {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return apperrors.NewNotFoundError("user", fmt.Sprintf("%s: %s not found", operation, path))
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return c.fail(span, apperrors.NewUpstreamError(operation, resp.StatusCode, nil))
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(v); err != nil {
		return c.fail(span, apperrors.NewUpstreamError(operation, resp.StatusCode, fmt.Errorf("decode response: %w", err)))
	}

	return nil
}

func (c *UserClient) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
