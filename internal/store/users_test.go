package store

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felipemebarak500-lgtm/mebawear/internal/models"
)

func TestRegister_ConsumesInvite(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustAddInvite(t, s, "ABC123")

	u, err := s.Register(ctx, RegisterInput{
		Username:   "alice",
		Password:   "s3cret",
		Email:      "alice@example.com",
		Phone:      "3001234567",
		InviteCode: "ABC123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)
	assert.Equal(t, "alice", u.Username)
	assert.NotEqual(t, "s3cret", u.PasswordHash, "password must not be stored in cleartext")

	inv, err := s.GetInvite(ctx, "ABC123")
	require.NoError(t, err)
	assert.True(t, inv.Used)
	require.NotNil(t, inv.UsedBy)
	assert.Equal(t, u.ID, *inv.UsedBy)
	require.NotNil(t, inv.UsedAt)
}

func TestRegister_UnknownInvite(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Register(ctx, RegisterInput{
		Username: "alice", Password: "pw", InviteCode: "NOPE",
	})
	require.ErrorIs(t, err, ErrInviteNotFound)

	// No user may be created by a failed registration.
	var n int64
	require.NoError(t, s.db.Model(&models.User{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestRegister_UsedInvite(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustAddInvite(t, s, "ABC123")

	_, err := s.Register(ctx, RegisterInput{Username: "alice", Password: "pw", InviteCode: "ABC123"})
	require.NoError(t, err)

	_, err = s.Register(ctx, RegisterInput{Username: "bob", Password: "pw", InviteCode: "ABC123"})
	require.ErrorIs(t, err, ErrInviteUsed)

	var n int64
	require.NoError(t, s.db.Model(&models.User{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestRegister_UsernameTaken(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustAddInvite(t, s, "ONE")
	mustAddInvite(t, s, "TWO")

	_, err := s.Register(ctx, RegisterInput{Username: "alice", Password: "pw", InviteCode: "ONE"})
	require.NoError(t, err)

	_, err = s.Register(ctx, RegisterInput{Username: "alice", Password: "pw", InviteCode: "TWO"})
	require.ErrorIs(t, err, ErrUsernameTaken)

	// The rollback must leave the second invite unconsumed.
	inv, err := s.GetInvite(ctx, "TWO")
	require.NoError(t, err)
	assert.False(t, inv.Used)
}

func TestRegister_ConcurrentSameInvite(t *testing.T) {
	s := newTestStore(t)
	mustAddInvite(t, s, "RACE")

	const n = 8
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.Register(context.Background(), RegisterInput{
				Username:   fmt.Sprintf("user-%d", i),
				Password:   "pw",
				InviteCode: "RACE",
			})
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			require.ErrorIs(t, err, ErrInviteUsed)
		}
	}
	assert.Equal(t, 1, winners, "exactly one registration may consume the code")

	var users int64
	require.NoError(t, s.db.Model(&models.User{}).Count(&users).Error)
	assert.EqualValues(t, 1, users)
}

func TestAuthenticate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustAddInvite(t, s, "ABC123")

	created, err := s.Register(ctx, RegisterInput{Username: "alice", Password: "s3cret", InviteCode: "ABC123"})
	require.NoError(t, err)

	u, err := s.Authenticate(ctx, "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)

	_, err = s.Authenticate(ctx, "alice", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Authenticate(ctx, "nobody", "s3cret")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCreateAdmin(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u, err := s.CreateAdmin(ctx, "admin", "1234")
	require.NoError(t, err)

	got, err := s.Authenticate(ctx, "admin", "1234")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = s.CreateAdmin(ctx, "admin", "other")
	require.ErrorIs(t, err, ErrUsernameTaken)
}
