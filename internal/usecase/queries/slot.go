package queries

import (
	"context"

	"github.com/google/uuid"
)

type SlotQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*SlotView, error)
	// ListOpen returns slots an applicant could still buy into. A caller
	// turned away with SlotUnavailable uses this to pick another slot.
	ListOpen(ctx context.Context, kind *string, limit int) ([]*SlotView, error)
}

type SlotReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SlotView, error)
	FindOpen(ctx context.Context, kind *string, limit int32) ([]*SlotView, error)
}

type slotQueriesImpl struct {
	store SlotReadStore
}

func NewSlotQueries(store SlotReadStore) SlotQueries {
	return &slotQueriesImpl{store: store}
}

func (q *slotQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*SlotView, error) {
	return q.store.FindByID(ctx, id)
}

func (q *slotQueriesImpl) ListOpen(ctx context.Context, kind *string, limit int) ([]*SlotView, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return q.store.FindOpen(ctx, kind, int32(limit))
}
