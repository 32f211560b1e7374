package cached

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"user-directory/internal/adapter/cache"
	domain "user-directory/internal/domain/user"
	"user-directory/internal/usecase/user"
	apperrors "user-directory/pkg/errors"
)

type mockSource struct {
	mock.Mock
}

func (m *mockSource) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *mockSource) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func setupCache(t *testing.T) cache.UserCache {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewRedisUserCache(client, time.Minute, zaptest.NewLogger(t))
}

var directory = []domain.User{
	{ID: 1, Name: "Leanne Graham", Email: "Sincere@april.biz"},
	{ID: 2, Name: "Ervin Howell", Email: "Shanna@melissa.tv"},
}

func TestCachedUserRepository_List_CachesAfterFirstFetch(t *testing.T) {
	src := new(mockSource)
	repo := NewCachedUserRepository(src, setupCache(t), zaptest.NewLogger(t))
	ctx := context.Background()

	src.On("List", mock.Anything).Return(directory, nil).Once()

	first, err := repo.List(ctx)
	require.NoError(t, err)
	second, err := repo.List(ctx)
	require.NoError(t, err)

	assert.Equal(t, directory, first)
	assert.Equal(t, directory, second)
	src.AssertNumberOfCalls(t, "List", 1)
}

func TestCachedUserRepository_List_ErrorNotCached(t *testing.T) {
	src := new(mockSource)
	repo := NewCachedUserRepository(src, setupCache(t), zaptest.NewLogger(t))
	ctx := context.Background()

	src.On("List", mock.Anything).Return(nil, errors.New("upstream down")).Once()
	src.On("List", mock.Anything).Return(directory, nil).Once()

	_, err := repo.List(ctx)
	assert.Error(t, err)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, directory, users)
	src.AssertNumberOfCalls(t, "List", 2)
}

func TestCachedUserRepository_GetByID_CachesAfterFirstFetch(t *testing.T) {
	src := new(mockSource)
	repo := NewCachedUserRepository(src, setupCache(t), zaptest.NewLogger(t))
	ctx := context.Background()

	src.On("GetByID", mock.Anything, int64(2)).Return(&directory[1], nil).Once()

	for range 3 {
		u, err := repo.GetByID(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, "Ervin Howell", u.Name)
	}
	src.AssertNumberOfCalls(t, "GetByID", 1)
}

func TestCachedUserRepository_GetByID_NotFoundPropagates(t *testing.T) {
	src := new(mockSource)
	repo := NewCachedUserRepository(src, setupCache(t), zaptest.NewLogger(t))
	ctx := context.Background()

	src.On("GetByID", mock.Anything, int64(42)).Return(nil, apperrors.NewNotFoundError("user", "")).Twice()

	_, err := repo.GetByID(ctx, 42)
	assert.True(t, apperrors.IsNotFound(err))
	_, err = repo.GetByID(ctx, 42)
	assert.True(t, apperrors.IsNotFound(err))
	src.AssertNumberOfCalls(t, "GetByID", 2)
}

func TestCachedUserRepository_NilCacheDelegates(t *testing.T) {
	src := new(mockSource)
	repo := NewCachedUserRepository(src, nil, zaptest.NewLogger(t))
	ctx := context.Background()

	src.On("List", mock.Anything).Return(directory, nil).Twice()

	_, err := repo.List(ctx)
	require.NoError(t, err)
	_, err = repo.List(ctx)
	require.NoError(t, err)
	src.AssertNumberOfCalls(t, "List", 2)
}

type slowSource struct {
	calls   atomic.Int32
	release chan struct{}
}

func (s *slowSource) List(ctx context.Context) ([]domain.User, error) {
	s.calls.Add(1)
	<-s.release
	return directory, nil
}

func (s *slowSource) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return nil, apperrors.NewNotFoundError("user", "")
}

func TestCachedUserRepository_List_SingleFlight(t *testing.T) {
	src := &slowSource{release: make(chan struct{})}
	repo := NewCachedUserRepository(src, nil, zaptest.NewLogger(t))

	const callers = 8
	var wg sync.WaitGroup
	wg.Add(callers)
	for range callers {
		go func() {
			defer wg.Done()
			users, err := repo.List(context.Background())
			assert.NoError(t, err)
			assert.Len(t, users, 2)
		}()
	}

	// Let the callers pile up on the in-flight fetch
	assert.Eventually(t, func() bool { return src.calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(src.release)
	wg.Wait()

	assert.Equal(t, int32(1), src.calls.Load())
}

// blockingSource holds every fetch until release is closed or the fetch
// context ends.
type blockingSource struct {
	calls   atomic.Int32
	release chan struct{}
}

func (s *blockingSource) wait(ctx context.Context) error {
	s.calls.Add(1)
	select {
	case <-s.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *blockingSource) List(ctx context.Context) ([]domain.User, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return directory, nil
}

func (s *blockingSource) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return &directory[id-1], nil
}

func TestCachedUserRepository_CanceledCallerDoesNotFailOthers(t *testing.T) {
	tests := []struct {
		name  string
		fetch func(ctx context.Context, repo user.Repository) error
	}{
		{
			name: "List",
			fetch: func(ctx context.Context, repo user.Repository) error {
				_, err := repo.List(ctx)
				return err
			},
		},
		{
			name: "GetByID",
			fetch: func(ctx context.Context, repo user.Repository) error {
				_, err := repo.GetByID(ctx, 1)
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &blockingSource{release: make(chan struct{})}
			repo := NewCachedUserRepository(src, nil, zaptest.NewLogger(t))

			firstCtx, cancelFirst := context.WithCancel(context.Background())
			defer cancelFirst()

			firstErr := make(chan error, 1)
			go func() { firstErr <- tt.fetch(firstCtx, repo) }()
			require.Eventually(t, func() bool { return src.calls.Load() == 1 }, time.Second, time.Millisecond)

			secondErr := make(chan error, 1)
			go func() { secondErr <- tt.fetch(context.Background(), repo) }()
			// Let the second caller join the in-flight fetch
			time.Sleep(20 * time.Millisecond)

			cancelFirst()
			select {
			case err := <-firstErr:
				assert.ErrorIs(t, err, context.Canceled)
			case <-time.After(time.Second):
				t.Fatal("canceled caller did not return")
			}

			close(src.release)
			select {
			case err := <-secondErr:
				assert.NoError(t, err)
			case <-time.After(time.Second):
				t.Fatal("second caller did not return")
			}
			assert.Equal(t, int32(1), src.calls.Load())
		})
	}
}
