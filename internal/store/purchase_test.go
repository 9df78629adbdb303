package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felipemebarak500-lgtm/mebawear/internal/models"
)

func registerUser(t *testing.T, s *Store, username, code string) *models.User {
	t.Helper()
	mustAddInvite(t, s, code)
	u, err := s.Register(context.Background(), RegisterInput{
		Username: username, Password: "pw", InviteCode: code,
	})
	require.NoError(t, err)
	return u
}

func TestPurchase_Winner(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := registerUser(t, s, "alice", "CODE-A")
	p := mustAddProduct(t, s, "Hoodie")

	rec, err := s.Purchase(ctx, p.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, rec.UserID)
	assert.Equal(t, p.ID, rec.ProductID)
	assert.False(t, rec.CreatedAt.IsZero())

	got, err := s.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, got.IsAvailable)

	// Second attempt hits the snapshot fast path.
	_, err = s.Purchase(ctx, p.ID, alice.ID)
	require.ErrorIs(t, err, ErrProductUnavailable)

	recs, err := s.PurchasesFor(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, recs, 1)
}

func TestPurchase_UnknownProduct(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := registerUser(t, s, "alice", "CODE-A")

	_, err := s.Purchase(ctx, "no-such-id", alice.ID)
	require.ErrorIs(t, err, ErrProductNotFound)

	var n int64
	require.NoError(t, s.db.Model(&models.Purchase{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestPurchase_ConcurrentSingleWinner(t *testing.T) {
	s := newTestStore(t)
	alice := registerUser(t, s, "alice", "CODE-A")
	p := mustAddProduct(t, s, "Hoodie")

	const n = 8
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.Purchase(context.Background(), p.ID, alice.ID)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		switch {
		case err == nil:
			winners++
		default:
			// Losers see either the snapshot fast path or the lost
			// conditional update, depending on timing.
			require.True(t,
				errors.Is(err, ErrProductUnavailable) || errors.Is(err, ErrLostRace),
				"unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, winners, "exactly one purchase may succeed")

	got, err := s.GetProduct(context.Background(), p.ID)
	require.NoError(t, err)
	assert.False(t, got.IsAvailable)

	var rows int64
	require.NoError(t, s.db.Model(&models.Purchase{}).Where("product_id = ?", p.ID).Count(&rows).Error)
	assert.EqualValues(t, 1, rows, "exactly one purchase row per product")
}

// Full storefront scenario: seed, register, redeem, purchase, retry.
func TestScenario_EndToEnd(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p := mustAddProduct(t, s, "Hoodie")
	mustAddInvite(t, s, "ABC123")

	alice, err := s.Register(ctx, RegisterInput{Username: "alice", Password: "pw", InviteCode: "ABC123"})
	require.NoError(t, err)

	_, err = s.Register(ctx, RegisterInput{Username: "bob", Password: "pw", InviteCode: "ABC123"})
	require.ErrorIs(t, err, ErrInviteUsed)

	logged, err := s.Authenticate(ctx, "alice", "pw")
	require.NoError(t, err)

	rec, err := s.Purchase(ctx, p.ID, logged.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, rec.UserID)

	_, err = s.Purchase(ctx, p.ID, logged.ID)
	require.ErrorIs(t, err, ErrProductUnavailable)

	available, err := s.ListAvailable(ctx)
	require.NoError(t, err)
	assert.Empty(t, available)
}
