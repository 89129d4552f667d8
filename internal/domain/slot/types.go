package slot

type Kind string

const (
	// KindVoucherExam slots sell redeemable exam vouchers.
	KindVoucherExam Kind = "voucher_exam"
	// KindPhysicalAppointment slots book an in-person visit and are closed
	// eagerly by the event-driven closer once a booking lands.
	KindPhysicalAppointment Kind = "physical_appointment"
)

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsValid() bool {
	switch k {
	case KindVoucherExam, KindPhysicalAppointment:
		return true
	default:
		return false
	}
}
