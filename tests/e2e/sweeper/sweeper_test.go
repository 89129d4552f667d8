//go:build e2e

package sweeper_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"examgate/internal/pkg/clock"
	"examgate/internal/worker"
	"examgate/tests/common/builder"
	"examgate/tests/common/dbtest"
	"examgate/tests/common/httptest"
	"examgate/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type SweeperSuite struct {
	e2e.SharedSuite
}

func TestSweeperSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(SweeperSuite))
}

func (s *SweeperSuite) sweepAt(now time.Time) {
	sweeper := worker.NewSweeper(s.UoW, clock.NewMockClock(now), time.Minute)
	require.NoError(s.T(), sweeper.SweepOnce(context.Background()))
}

func (s *SweeperSuite) purchaseStatus(id uuid.UUID) string {
	var status string
	require.NoError(s.T(), s.DB.QueryRow(context.Background(),
		"SELECT status FROM purchases WHERE id = $1", id).Scan(&status))
	return status
}

func (s *SweeperSuite) slotState(id uuid.UUID) (int32, bool) {
	var bookings int32
	var available bool
	require.NoError(s.T(), s.DB.QueryRow(context.Background(),
		"SELECT current_bookings, is_available FROM slots WHERE id = $1", id).Scan(&bookings, &available))
	return bookings, available
}

// =============================================================================
// TestSweepOnce - expiration pass against seeded rows
// =============================================================================

func (s *SweeperSuite) TestSweepOnce() {
	s.Run("Normal case: elapsed holds are cancelled and their seats returned", func() {
		t := s.T()
		base := time.Now().UTC()

		slotID := dbtest.CreateTestSlot(t, s.DB, dbtest.SlotFixture{CurrentBookings: 2})
		elapsed := base.Add(-5 * time.Minute)
		elapsedID := dbtest.CreateTestPurchase(t, s.DB, slotID, uuid.New(),
			"purchased", &elapsed, base.Add(24*time.Hour), nil)
		live := base.Add(25 * time.Minute)
		liveID := dbtest.CreateTestPurchase(t, s.DB, slotID, uuid.New(),
			"purchased", &live, base.Add(24*time.Hour), nil)

		s.sweepAt(base)

		require.Equal(t, "cancelled", s.purchaseStatus(elapsedID))
		require.Equal(t, "purchased", s.purchaseStatus(liveID), "a hold still running is untouched")

		bookings, available := s.slotState(slotID)
		require.Equal(t, int32(1), bookings)
		require.True(t, available)
	})

	s.Run("Normal case: approved vouchers past validity expire", func() {
		t := s.T()
		base := time.Now().UTC()

		slotID := dbtest.CreateTestSlot(t, s.DB, dbtest.SlotFixture{CurrentBookings: 1})
		code := "SWEEPER222"
		staleID := dbtest.CreateTestPurchase(t, s.DB, slotID, uuid.New(),
			"approved", nil, base.Add(-time.Hour), &code)

		s.sweepAt(base)

		require.Equal(t, "expired", s.purchaseStatus(staleID))
		bookings, _ := s.slotState(slotID)
		require.Equal(t, int32(0), bookings)
	})

	s.Run("Normal case: slots whose window passed are closed", func() {
		t := s.T()
		base := time.Now().UTC()

		endedID := dbtest.CreateTestSlot(t, s.DB, dbtest.SlotFixture{
			ExamDate: base.Add(-24 * time.Hour).Truncate(24 * time.Hour),
			StartsAt: base.Add(-9 * time.Hour),
			EndsAt:   base.Add(-time.Hour),
		})
		expirySet := base.Add(-30 * time.Minute)
		shortLivedID := dbtest.CreateTestSlot(t, s.DB, dbtest.SlotFixture{AbsoluteExpiry: &expirySet})
		openID := dbtest.CreateTestSlot(t, s.DB, dbtest.SlotFixture{})

		s.sweepAt(base)

		_, available := s.slotState(endedID)
		require.False(t, available)
		_, available = s.slotState(shortLivedID)
		require.False(t, available, "absolute expiry closes even inside the window")
		_, available = s.slotState(openID)
		require.True(t, available)
	})

	s.Run("Normal case: a repeated pass finds nothing left to move", func() {
		t := s.T()
		base := time.Now().UTC()

		slotID := dbtest.CreateTestSlot(t, s.DB, dbtest.SlotFixture{CurrentBookings: 1})
		elapsed := base.Add(-time.Minute)
		purchaseID := dbtest.CreateTestPurchase(t, s.DB, slotID, uuid.New(),
			"purchased", &elapsed, base.Add(24*time.Hour), nil)

		s.sweepAt(base)
		s.sweepAt(base.Add(time.Minute))

		require.Equal(t, "cancelled", s.purchaseStatus(purchaseID))
		bookings, _ := s.slotState(slotID)
		require.Equal(t, int32(0), bookings, "the seat is returned exactly once")
		require.Equal(t, 1, dbtest.CountRows(t, s.DB, "purchases", "slot_id = $1", slotID))
	})

	s.Run("Normal case: time only needs to advance for the sweep to act", func() {
		t := s.T()

		clk := clock.NewMockClock(time.Now().UTC())
		sweeper := worker.NewSweeper(s.UoW, clk, time.Minute)

		slotID := dbtest.CreateTestSlot(t, s.DB, dbtest.SlotFixture{CurrentBookings: 1})
		deadline := clk.Now().Add(30 * time.Minute)
		purchaseID := dbtest.CreateTestPurchase(t, s.DB, slotID, uuid.New(),
			"purchased", &deadline, clk.Now().Add(24*time.Hour), nil)

		require.NoError(t, sweeper.SweepOnce(context.Background()))
		require.Equal(t, "purchased", s.purchaseStatus(purchaseID))

		clk.Advance(31 * time.Minute)
		require.NoError(t, sweeper.SweepOnce(context.Background()))
		require.Equal(t, "cancelled", s.purchaseStatus(purchaseID))
	})
}

// =============================================================================
// TestExpiredVoucherRedemption - API refusal ahead of the sweep
// =============================================================================

func (s *SweeperSuite) TestExpiredVoucherRedemption() {
	s.Run("Error case: redemption refuses a lapsed voucher the sweep has not flipped", func() {
		t := s.T()
		base := time.Now().UTC()

		slotID := dbtest.CreateTestSlot(t, s.DB, dbtest.SlotFixture{CurrentBookings: 1})
		code := "LAPSED2222"
		dbtest.CreateTestPurchase(t, s.DB, slotID, uuid.New(),
			"approved", nil, base.Add(-time.Minute), &code)

		b := builder.NewBookingBuilder()
		b.VoucherCode = code
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/bookings/redeem",
			b.BuildRedeemRequestDTO(), "")
		httptest.AssertErrorResponse(t, w, http.StatusGone, "Voucher validity has passed")

		// The row itself is only flipped by the sweeper.
		s.sweepAt(base)
		var status string
		require.NoError(t, s.DB.QueryRow(context.Background(),
			"SELECT status FROM purchases WHERE voucher_code = $1", code).Scan(&status))
		require.Equal(t, "expired", status)
	})
}
