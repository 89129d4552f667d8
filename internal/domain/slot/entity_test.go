//go:build unit

package slot_test

import (
	"testing"
	"time"

	"examgate/internal/domain/slot"
	"examgate/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.SlotBuilder)
	errIs  error
}

func TestSlot(t *testing.T) {
	t.Run("base success case", func(t *testing.T) {
		actual, err := builder.NewSlotBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, slot.KindVoucherExam, actual.Kind())
		assert.True(t, actual.IsAvailable())
		assert.Equal(t, int32(0), actual.CurrentBookings())
		assert.Equal(t, int32(3), actual.MaxCapacity())
		assert.Equal(t, int64(12500), actual.Price().Cents())
	})

	t.Run("kind validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "voucher_exam kind OK",
				mutate: func(b *builder.SlotBuilder) { b.WithKind(slot.KindVoucherExam) },
			},
			{
				name:   "physical_appointment kind OK",
				mutate: func(b *builder.SlotBuilder) { b.WithKind(slot.KindPhysicalAppointment) },
			},
			{
				name:   "unknown kind NG",
				mutate: func(b *builder.SlotBuilder) { b.WithKind("walk_in") },
				errIs:  slot.ErrInvalidKind,
			},
			{
				name:   "empty kind NG",
				mutate: func(b *builder.SlotBuilder) { b.WithKind("") },
				errIs:  slot.ErrInvalidKind,
			},
		})
	})

	t.Run("capacity validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "capacity of one OK",
				mutate: func(b *builder.SlotBuilder) { b.WithCapacity(1) },
			},
			{
				name:   "zero capacity NG",
				mutate: func(b *builder.SlotBuilder) { b.WithCapacity(0) },
				errIs:  slot.ErrInvalidCapacity,
			},
			{
				name:   "negative capacity NG",
				mutate: func(b *builder.SlotBuilder) { b.WithCapacity(-1) },
				errIs:  slot.ErrInvalidCapacity,
			},
		})
	})

	t.Run("hold duration validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "no hold OK",
				mutate: func(b *builder.SlotBuilder) { b.WithoutHold() },
			},
			{
				name: "zero hold NG",
				mutate: func(b *builder.SlotBuilder) {
					d := time.Duration(0)
					b.HoldDuration = &d
				},
				errIs: slot.ErrInvalidHold,
			},
		})
	})

	t.Run("window validation", func(t *testing.T) {
		start := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
		runCases(t, []testCase{
			{
				name:   "start before end OK",
				mutate: func(b *builder.SlotBuilder) { b.WithWindow(start, start.Add(time.Hour)) },
			},
			{
				name:   "start equals end NG",
				mutate: func(b *builder.SlotBuilder) { b.WithWindow(start, start) },
				errIs:  slot.ErrInvalidWindow,
			},
			{
				name:   "start after end NG",
				mutate: func(b *builder.SlotBuilder) { b.WithWindow(start, start.Add(-time.Hour)) },
				errIs:  slot.ErrInvalidWindow,
			},
		})
	})

	t.Run("negative price NG", func(t *testing.T) {
		_, err := slot.NewMoney(-1)
		require.ErrorIs(t, err, slot.ErrNegativePrice)
	})
}

func TestSlotCanAdmit(t *testing.T) {
	examDate := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	beforeEnd := examDate.Add(12 * time.Hour)
	afterEnd := examDate.Add(18 * time.Hour)

	t.Run("open slot with free seats admits", func(t *testing.T) {
		s, err := builder.NewSlotBuilder().BuildDomain()
		require.NoError(t, err)
		assert.NoError(t, s.CanAdmit(beforeEnd))
	})

	t.Run("closed slot refuses", func(t *testing.T) {
		s, err := builder.NewSlotBuilder().BuildDomain()
		require.NoError(t, err)
		s.Close()
		assert.ErrorIs(t, s.CanAdmit(beforeEnd), slot.ErrSlotClosed)
	})

	t.Run("ended window refuses", func(t *testing.T) {
		s, err := builder.NewSlotBuilder().BuildDomain()
		require.NoError(t, err)
		assert.ErrorIs(t, s.CanAdmit(afterEnd), slot.ErrSlotExpired)
	})

	t.Run("passed absolute expiry refuses even inside the window", func(t *testing.T) {
		s, err := builder.NewSlotBuilder().
			WithAbsoluteExpiry(examDate.Add(10 * time.Hour)).
			BuildDomain()
		require.NoError(t, err)
		assert.ErrorIs(t, s.CanAdmit(examDate.Add(11*time.Hour)), slot.ErrSlotExpired)
	})

	t.Run("full slot refuses", func(t *testing.T) {
		s := reconstructWithBookings(t, 2, 2)
		assert.ErrorIs(t, s.CanAdmit(beforeEnd), slot.ErrCapacityExhausted)
	})

	t.Run("one seat left admits", func(t *testing.T) {
		s := reconstructWithBookings(t, 2, 1)
		assert.NoError(t, s.CanAdmit(beforeEnd))
	})
}

func TestSlotDeadlines(t *testing.T) {
	examDate := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	now := examDate.Add(8 * time.Hour)

	t.Run("hold deadline is now plus hold duration", func(t *testing.T) {
		s, err := builder.NewSlotBuilder().BuildDomain()
		require.NoError(t, err)

		deadline := s.HoldDeadline(now)
		require.NotNil(t, deadline)
		assert.Equal(t, now.Add(10*time.Minute), *deadline)
	})

	t.Run("no hold duration means no deadline", func(t *testing.T) {
		s, err := builder.NewSlotBuilder().WithoutHold().BuildDomain()
		require.NoError(t, err)
		assert.Nil(t, s.HoldDeadline(now))
	})

	t.Run("validity deadline defaults to window end", func(t *testing.T) {
		s, err := builder.NewSlotBuilder().BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, examDate.Add(17*time.Hour), s.ValidityDeadline())
	})

	t.Run("earlier absolute expiry wins over window end", func(t *testing.T) {
		expiry := examDate.Add(12 * time.Hour)
		s, err := builder.NewSlotBuilder().WithAbsoluteExpiry(expiry).BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, expiry, s.ValidityDeadline())
	})

	t.Run("later absolute expiry does not extend past window end", func(t *testing.T) {
		s, err := builder.NewSlotBuilder().
			WithAbsoluteExpiry(examDate.Add(48 * time.Hour)).
			BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, examDate.Add(17*time.Hour), s.ValidityDeadline())
	})
}

func TestSlotChangeCapacity(t *testing.T) {
	t.Run("growing always works", func(t *testing.T) {
		s := reconstructWithBookings(t, 3, 3)
		require.NoError(t, s.ChangeCapacity(5))
		assert.Equal(t, int32(5), s.MaxCapacity())
	})

	t.Run("shrinking down to held count works", func(t *testing.T) {
		s := reconstructWithBookings(t, 5, 2)
		require.NoError(t, s.ChangeCapacity(2))
		assert.Equal(t, int32(2), s.MaxCapacity())
	})

	t.Run("shrinking below held count fails", func(t *testing.T) {
		s := reconstructWithBookings(t, 5, 3)
		err := s.ChangeCapacity(2)
		assert.ErrorIs(t, err, slot.ErrCapacityBelowHeld)
		assert.Equal(t, int32(5), s.MaxCapacity())
	})

	t.Run("zero capacity fails", func(t *testing.T) {
		s := reconstructWithBookings(t, 5, 0)
		assert.ErrorIs(t, s.ChangeCapacity(0), slot.ErrInvalidCapacity)
	})
}

func reconstructWithBookings(t *testing.T, maxCapacity, current int32) *slot.Slot {
	t.Helper()

	examDate := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	window, err := slot.NewTimeWindow(examDate.Add(9*time.Hour), examDate.Add(17*time.Hour))
	require.NoError(t, err)
	price, err := slot.NewMoney(12500)
	require.NoError(t, err)

	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	return slot.ReconstructSlot(
		uuid.New(), slot.KindVoucherExam, examDate, window, price,
		maxCapacity, current, true, nil, nil,
		"City Driving Authority", "Main Test Center",
		now, now,
	)
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewSlotBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
