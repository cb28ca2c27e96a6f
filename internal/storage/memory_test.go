package storage

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	usermodel "github.com/Varun5711/taskflow/internal/models/user"
)

func TestMemoryStorage_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage()

	created, err := s.CreateUser(ctx, &usermodel.CreateUserRequest{Name: "Jo Lee", Email: "jo@ex.com"}, "hash")
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	byEmail, err := s.GetUserByEmail(ctx, "jo@ex.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, created.ID, byEmail.ID)
	assert.Equal(t, "hash", byEmail.PasswordHash)

	byID, err := s.GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "Jo Lee", byID.Name)
}

func TestMemoryStorage_Missing(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage()

	u, err := s.GetUserByEmail(ctx, "nobody@ex.com")
	assert.NoError(t, err)
	assert.Nil(t, u)

	u, err = s.GetUserByID(ctx, 99)
	assert.NoError(t, err)
	assert.Nil(t, u)
}

func TestMemoryStorage_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage()

	_, err := s.CreateUser(ctx, &usermodel.CreateUserRequest{Name: "A", Email: "a@ex.com"}, "h1")
	require.NoError(t, err)

	_, err = s.CreateUser(ctx, &usermodel.CreateUserRequest{Name: "B", Email: "a@ex.com"}, "h2")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.Equal(t, 1, s.Count())
}

func TestMemoryStorage_ConcurrentDuplicateInserts(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage()

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.CreateUser(ctx, &usermodel.CreateUserRequest{Name: fmt.Sprintf("u%d", i), Email: "race@ex.com"}, "h")
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	var ok, dup int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, ErrDuplicateEmail):
			dup++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, workers-1, dup)
}

func TestMemoryStorage_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage()

	created, err := s.CreateUser(ctx, &usermodel.CreateUserRequest{Name: "A", Email: "a@ex.com"}, "h")
	require.NoError(t, err)
	created.Name = "mutated"

	got, err := s.GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name)
}
