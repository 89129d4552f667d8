package request

import (
	"strings"

	"examgate/internal/domain/booking"
)

type RedeemVoucherRequest struct {
	VoucherCode string `json:"voucher_code" binding:"required"`
	FullName    string `json:"full_name" binding:"required"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
}

func (r RedeemVoucherRequest) ToApplicant() booking.Applicant {
	return booking.Applicant{
		FullName: strings.TrimSpace(r.FullName),
		Email:    strings.TrimSpace(r.Email),
		Phone:    strings.TrimSpace(r.Phone),
	}
}

func (r RedeemVoucherRequest) NormalizedCode() string {
	return strings.ToUpper(strings.TrimSpace(r.VoucherCode))
}
