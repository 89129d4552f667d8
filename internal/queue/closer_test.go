//go:build unit

package queue_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"examgate/internal/domain/slot"
	"examgate/internal/infra"
	"examgate/internal/infra/db"
	"examgate/internal/pkg/clock"
	"examgate/internal/queue"
	"examgate/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// countingUoW records Within calls and returns a canned error without
// touching a database. Message-level branching is what we test here; the
// repository semantics behind Close are covered end to end.
type countingUoW struct {
	withinCalls int
	withinErr   error
}

func (u *countingUoW) Within(_ context.Context, _ func(ctx context.Context, tx shared.Tx) error) error {
	u.withinCalls++
	return u.withinErr
}

func (u *countingUoW) WithDB(_ context.Context, _ func(ctx context.Context, dbtx db.DBTX) error) error {
	return nil
}

type recordingDedup struct {
	fresh    bool
	claimErr error
	claimed  []string
	released []string
}

func (d *recordingDedup) Claim(_ context.Context, eventID string) (bool, error) {
	d.claimed = append(d.claimed, eventID)
	return d.fresh, d.claimErr
}

func (d *recordingDedup) Release(_ context.Context, eventID string) error {
	d.released = append(d.released, eventID)
	return nil
}

type CloserHandleTestSuite struct {
	suite.Suite
	uow    *countingUoW
	dedup  *recordingDedup
	closer *queue.Closer
}

func (s *CloserHandleTestSuite) SetupTest() {
	s.uow = &countingUoW{}
	s.dedup = &recordingDedup{fresh: true}
	clk := clock.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	s.closer = queue.NewCloser("amqp://unused", s.uow, s.dedup, clk)
}

func (s *CloserHandleTestSuite) SetupSubTest() {
	s.SetupTest()
}

func TestCloserHandleSuite(t *testing.T) {
	suite.Run(t, new(CloserHandleTestSuite))
}

func (s *CloserHandleTestSuite) payload(kind slot.Kind) (uuid.UUID, []byte) {
	ev := queue.BookingCreatedEvent{
		EventID:    uuid.New(),
		BookingID:  uuid.New(),
		PurchaseID: uuid.New(),
		SlotID:     uuid.New(),
		SlotKind:   kind.String(),
		OccurredAt: time.Date(2026, 3, 1, 11, 59, 0, 0, time.UTC),
	}
	body, err := json.Marshal(ev)
	s.Require().NoError(err)
	return ev.EventID, body
}

func (s *CloserHandleTestSuite) TestHandle() {
	s.Run("success: closes the slot for a physical appointment booking", func() {
		_, body := s.payload(slot.KindPhysicalAppointment)

		s.Require().NoError(s.closer.Handle(body))
		s.Equal(1, s.uow.withinCalls)
		s.Len(s.dedup.claimed, 1)
		s.Empty(s.dedup.released)
	})

	s.Run("success: voucher exam bookings claim the event but close nothing", func() {
		_, body := s.payload(slot.KindVoucherExam)

		s.Require().NoError(s.closer.Handle(body))
		s.Equal(0, s.uow.withinCalls)
		s.Len(s.dedup.claimed, 1)
	})

	s.Run("success: redelivered event is dropped before any work", func() {
		s.dedup.fresh = false
		_, body := s.payload(slot.KindPhysicalAppointment)

		s.Require().NoError(s.closer.Handle(body))
		s.Equal(0, s.uow.withinCalls)
		s.Empty(s.dedup.released)
	})

	s.Run("success: malformed payload is dropped without claiming", func() {
		s.Require().NoError(s.closer.Handle([]byte("{not json")))
		s.Empty(s.dedup.claimed)
		s.Equal(0, s.uow.withinCalls)
	})

	s.Run("success: missing slot keeps the claim and acks", func() {
		s.uow.withinErr = infra.NewRepoErr("slot not found", infra.KindNotFound)
		_, body := s.payload(slot.KindPhysicalAppointment)

		s.Require().NoError(s.closer.Handle(body))
		s.Equal(1, s.uow.withinCalls)
		s.Empty(s.dedup.released)
	})

	s.Run("error: claim failure propagates for redelivery", func() {
		s.dedup.claimErr = infra.NewRepoErr("redis down", infra.KindDBFailure)
		_, body := s.payload(slot.KindPhysicalAppointment)

		s.Require().Error(s.closer.Handle(body))
		s.Equal(0, s.uow.withinCalls)
	})

	s.Run("error: transient close failure releases the claim", func() {
		s.uow.withinErr = infra.NewRepoErr("connection reset", infra.KindDBFailure)
		eventID, body := s.payload(slot.KindPhysicalAppointment)

		s.Require().Error(s.closer.Handle(body))
		s.Equal(1, s.uow.withinCalls)
		s.Equal([]string{eventID.String()}, s.dedup.released)
	})
}
