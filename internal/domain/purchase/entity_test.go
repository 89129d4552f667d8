//go:build unit

package purchase_test

import (
	"testing"
	"time"

	"examgate/internal/domain/purchase"
	"examgate/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPurchase(t *testing.T) {
	slotID := uuid.New()
	applicantID := uuid.New()
	hold := time.Date(2026, 10, 1, 9, 10, 0, 0, time.UTC)
	validity := time.Date(2026, 10, 1, 17, 0, 0, 0, time.UTC)

	p := purchase.NewPurchase(slotID, applicantID, &hold, validity, nil)

	assert.NotEqual(t, uuid.Nil, p.ID())
	assert.Equal(t, slotID, p.SlotID())
	assert.Equal(t, applicantID, p.ApplicantID())
	assert.Equal(t, purchase.StatusPurchased, p.Status())
	assert.Nil(t, p.VoucherCode())
	require.NotNil(t, p.HoldExpiresAt())
	assert.Equal(t, hold, *p.HoldExpiresAt())
	assert.Equal(t, validity, p.ValidityExpiresAt())
}

func TestPurchaseApprove(t *testing.T) {
	t.Run("purchased purchase approves with a code", func(t *testing.T) {
		p := builder.NewPurchaseBuilder().BuildDomain()

		require.NoError(t, p.Approve("ABCDEFGHJK"))
		assert.Equal(t, purchase.StatusApproved, p.Status())
		require.NotNil(t, p.VoucherCode())
		assert.Equal(t, "ABCDEFGHJK", *p.VoucherCode())
	})

	t.Run("empty code refuses", func(t *testing.T) {
		p := builder.NewPurchaseBuilder().BuildDomain()

		assert.ErrorIs(t, p.Approve(""), purchase.ErrMissingCode)
		assert.Equal(t, purchase.StatusPurchased, p.Status())
	})

	t.Run("second approval refuses", func(t *testing.T) {
		p := builder.NewPurchaseBuilder().BuildDomain()
		require.NoError(t, p.Approve("ABCDEFGHJK"))

		assert.ErrorIs(t, p.Approve("KJHGFEDCBA"), purchase.ErrAlreadyIssued)
		assert.Equal(t, "ABCDEFGHJK", *p.VoucherCode())
	})

	t.Run("terminal statuses refuse approval", func(t *testing.T) {
		for _, status := range []purchase.Status{
			purchase.StatusUsed, purchase.StatusExpired, purchase.StatusCancelled,
		} {
			p := builder.NewPurchaseBuilder().WithStatus(status).BuildDomain()
			assert.ErrorIs(t, p.Approve("ABCDEFGHJK"), purchase.ErrInvalidStateTransition, status)
		}
	})
}

func TestPurchaseCancel(t *testing.T) {
	t.Run("purchased purchase cancels", func(t *testing.T) {
		p := builder.NewPurchaseBuilder().BuildDomain()

		require.NoError(t, p.Cancel())
		assert.Equal(t, purchase.StatusCancelled, p.Status())
	})

	t.Run("approved purchase does not cancel", func(t *testing.T) {
		p := builder.NewPurchaseBuilder().
			WithStatus(purchase.StatusApproved).
			WithVoucherCode("ABCDEFGHJK").
			BuildDomain()

		assert.ErrorIs(t, p.Cancel(), purchase.ErrInvalidStateTransition)
		assert.Equal(t, purchase.StatusApproved, p.Status())
	})

	t.Run("terminal statuses do not cancel", func(t *testing.T) {
		for _, status := range []purchase.Status{
			purchase.StatusUsed, purchase.StatusExpired, purchase.StatusCancelled,
		} {
			p := builder.NewPurchaseBuilder().WithStatus(status).BuildDomain()
			assert.ErrorIs(t, p.Cancel(), purchase.ErrInvalidStateTransition, status)
		}
	})
}

func TestPurchaseUse(t *testing.T) {
	t.Run("approved purchase is usable", func(t *testing.T) {
		p := builder.NewPurchaseBuilder().
			WithStatus(purchase.StatusApproved).
			WithVoucherCode("ABCDEFGHJK").
			BuildDomain()

		require.NoError(t, p.Use())
		assert.Equal(t, purchase.StatusUsed, p.Status())
	})

	t.Run("purchased purchase is not usable yet", func(t *testing.T) {
		p := builder.NewPurchaseBuilder().BuildDomain()
		assert.ErrorIs(t, p.Use(), purchase.ErrInvalidStateTransition)
	})

	t.Run("used purchase is not usable again", func(t *testing.T) {
		p := builder.NewPurchaseBuilder().WithStatus(purchase.StatusUsed).BuildDomain()
		assert.ErrorIs(t, p.Use(), purchase.ErrInvalidStateTransition)
	})
}

func TestPurchaseExpire(t *testing.T) {
	validity := time.Date(2026, 10, 1, 17, 0, 0, 0, time.UTC)

	t.Run("approved purchase expires after validity deadline", func(t *testing.T) {
		p := builder.NewPurchaseBuilder().
			WithStatus(purchase.StatusApproved).
			WithVoucherCode("ABCDEFGHJK").
			BuildDomain()

		require.NoError(t, p.Expire(validity.Add(time.Minute)))
		assert.Equal(t, purchase.StatusExpired, p.Status())
	})

	t.Run("expiry before the deadline refuses", func(t *testing.T) {
		p := builder.NewPurchaseBuilder().
			WithStatus(purchase.StatusApproved).
			WithVoucherCode("ABCDEFGHJK").
			BuildDomain()

		assert.ErrorIs(t, p.Expire(validity.Add(-time.Minute)), purchase.ErrValidityNotElapsed)
		assert.Equal(t, purchase.StatusApproved, p.Status())
	})

	t.Run("purchased purchase does not expire directly", func(t *testing.T) {
		p := builder.NewPurchaseBuilder().BuildDomain()
		assert.ErrorIs(t, p.Expire(validity.Add(time.Minute)), purchase.ErrInvalidStateTransition)
	})
}

func TestPurchaseHoldElapsed(t *testing.T) {
	hold := time.Date(2026, 10, 1, 9, 10, 0, 0, time.UTC)

	t.Run("before the deadline", func(t *testing.T) {
		p := builder.NewPurchaseBuilder().BuildDomain()
		assert.False(t, p.HoldElapsed(hold.Add(-time.Second)))
	})

	t.Run("after the deadline", func(t *testing.T) {
		p := builder.NewPurchaseBuilder().BuildDomain()
		assert.True(t, p.HoldElapsed(hold.Add(time.Second)))
	})

	t.Run("nil deadline never elapses", func(t *testing.T) {
		p := builder.NewPurchaseBuilder().WithoutHold().BuildDomain()
		assert.False(t, p.HoldElapsed(hold.Add(24*time.Hour)))
	})
}

func TestStatus(t *testing.T) {
	t.Run("terminal statuses", func(t *testing.T) {
		assert.False(t, purchase.StatusPurchased.IsTerminal())
		assert.False(t, purchase.StatusApproved.IsTerminal())
		assert.True(t, purchase.StatusUsed.IsTerminal())
		assert.True(t, purchase.StatusExpired.IsTerminal())
		assert.True(t, purchase.StatusCancelled.IsTerminal())
	})

	t.Run("capacity holders", func(t *testing.T) {
		assert.True(t, purchase.StatusPurchased.HoldsCapacity())
		assert.True(t, purchase.StatusApproved.HoldsCapacity())
		assert.False(t, purchase.StatusUsed.HoldsCapacity())
		assert.False(t, purchase.StatusExpired.HoldsCapacity())
		assert.False(t, purchase.StatusCancelled.HoldsCapacity())
	})

	t.Run("validity", func(t *testing.T) {
		assert.True(t, purchase.StatusPurchased.IsValid())
		assert.False(t, purchase.Status("refunded").IsValid())
	})
}
