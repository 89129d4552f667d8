//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// SlotFixture describes a slot row to insert. Zero values fall back to a
// bookable voucher-exam slot one week out.
type SlotFixture struct {
	Kind            string
	ExamDate        time.Time
	StartsAt        time.Time
	EndsAt          time.Time
	PriceCents      int64
	MaxCapacity     int32
	CurrentBookings int32
	IsAvailable     *bool
	AbsoluteExpiry  *time.Time
	HoldMinutes     *int32
}

func CreateTestSlot(t *testing.T, db DBLike, f SlotFixture) uuid.UUID {
	t.Helper()

	if f.Kind == "" {
		f.Kind = "voucher_exam"
	}
	if f.ExamDate.IsZero() {
		f.ExamDate = time.Now().UTC().AddDate(0, 0, 7).Truncate(24 * time.Hour)
	}
	if f.StartsAt.IsZero() {
		f.StartsAt = f.ExamDate.Add(9 * time.Hour)
	}
	if f.EndsAt.IsZero() {
		f.EndsAt = f.ExamDate.Add(17 * time.Hour)
	}
	if f.PriceCents == 0 {
		f.PriceCents = 12500
	}
	if f.MaxCapacity == 0 {
		f.MaxCapacity = 3
	}
	available := true
	if f.IsAvailable != nil {
		available = *f.IsAvailable
	}

	slotID := uuid.New()
	_, err := db.Exec(context.Background(), `
		INSERT INTO slots (id, kind, exam_date, starts_at, ends_at, price_cents,
		                   max_capacity, current_bookings, is_available,
		                   absolute_expiry, hold_minutes, authority, location)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		slotID, f.Kind, f.ExamDate, f.StartsAt, f.EndsAt, f.PriceCents,
		f.MaxCapacity, f.CurrentBookings, available,
		f.AbsoluteExpiry, f.HoldMinutes, "City Driving Authority", "Main Test Center")
	require.NoError(t, err)

	return slotID
}

// CreateTestPurchase inserts a purchase row directly, bypassing the capacity
// gate. The caller is responsible for keeping current_bookings consistent
// when the status holds capacity.
func CreateTestPurchase(t *testing.T, db DBLike, slotID, applicantID uuid.UUID, status string, holdExpiresAt *time.Time, validityExpiresAt time.Time, voucherCode *string) uuid.UUID {
	t.Helper()

	purchaseID := uuid.New()
	_, err := db.Exec(context.Background(), `
		INSERT INTO purchases (id, slot_id, applicant_id, status, hold_expires_at,
		                       validity_expires_at, voucher_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		purchaseID, slotID, applicantID, status, holdExpiresAt, validityExpiresAt, voucherCode)
	require.NoError(t, err)

	return purchaseID
}

func CountRows(t *testing.T, db DBLike, table, where string, args ...any) int {
	t.Helper()

	query := "SELECT COUNT(*) FROM " + table
	if where != "" {
		query += " WHERE " + where
	}
	var n int
	require.NoError(t, db.QueryRow(context.Background(), query, args...).Scan(&n))
	return n
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables between subtests
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return nil
}
