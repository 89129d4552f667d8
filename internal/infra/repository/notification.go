package repository

import (
	"context"
	"time"

	"examgate/internal/infra"
	"examgate/internal/infra/db"
)

// NotificationRepository writes fire-and-forget jobs for the external
// notification sink. Jobs are inserted inside the same transaction as the
// state transition they announce; delivery happens elsewhere and its
// failure never rolls a transition back.
type NotificationRepository struct{}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, dbtx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	_, err := dbtx.Exec(ctx, `
		INSERT INTO notification_jobs (kind, topic, payload, run_at)
		VALUES ($1, $2, $3, $4)`,
		kind, topic, payload, runAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	return nil
}
