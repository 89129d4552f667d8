package readstore

import (
	"context"

	"examgate/internal/infra"
	"examgate/internal/infra/db"
	"examgate/internal/pkg/pgconv"
	"examgate/internal/usecase/queries"

	"github.com/google/uuid"
)

type PurchaseReadStore struct {
	db db.DBTX
}

func NewPurchaseReadStore(dbtx db.DBTX) *PurchaseReadStore {
	return &PurchaseReadStore{db: dbtx}
}

func (r *PurchaseReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.PurchaseView, error) {
	var v queries.PurchaseView
	err := r.db.QueryRow(ctx, `
		SELECT p.id, p.slot_id, p.applicant_id, p.status, p.hold_expires_at,
		       p.validity_expires_at, p.voucher_code, p.payment_ref,
		       s.authority, s.exam_date, s.starts_at,
		       p.created_at, p.updated_at
		FROM purchases p
		JOIN slots s ON s.id = p.slot_id
		WHERE p.id = $1`,
		id,
	).Scan(&v.ID, &v.SlotID, &v.ApplicantID, &v.Status, &v.HoldExpiresAt,
		&v.ValidityExpiresAt, &v.VoucherCode, &v.PaymentRef,
		&v.Authority, &v.ExamDate, &v.StartsAt,
		&v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("purchase not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find purchase by ID", err)
	}
	return &v, nil
}

func (r *PurchaseReadStore) FindByApplicant(ctx context.Context, applicantID uuid.UUID, limit int32) ([]*queries.PurchaseListItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT p.id, p.slot_id, p.status, s.authority, s.exam_date,
		       p.voucher_code IS NOT NULL, p.created_at
		FROM purchases p
		JOIN slots s ON s.id = p.slot_id
		WHERE p.applicant_id = $1
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $2`,
		applicantID, limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list purchases", err)
	}
	defer rows.Close()

	var result []*queries.PurchaseListItem
	for rows.Next() {
		var item queries.PurchaseListItem
		if err := rows.Scan(&item.ID, &item.SlotID, &item.Status,
			&item.Authority, &item.ExamDate, &item.HasVoucher, &item.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan purchase row", err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate purchase rows", err)
	}
	return result, nil
}
