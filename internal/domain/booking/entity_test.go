//go:build unit

package booking_test

import (
	"testing"

	"examgate/internal/domain/booking"
	"examgate/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicantValidate(t *testing.T) {
	cases := []struct {
		name      string
		applicant booking.Applicant
		errIs     error
	}{
		{
			name:      "name with email OK",
			applicant: booking.Applicant{FullName: "Dana Candidate", Email: "dana@example.com"},
		},
		{
			name:      "name with phone OK",
			applicant: booking.Applicant{FullName: "Dana Candidate", Phone: "+15550100"},
		},
		{
			name:      "missing name NG",
			applicant: booking.Applicant{Email: "dana@example.com"},
			errIs:     booking.ErrEmptyName,
		},
		{
			name:      "whitespace-only name NG",
			applicant: booking.Applicant{FullName: "   ", Email: "dana@example.com"},
			errIs:     booking.ErrEmptyName,
		},
		{
			name:      "no contact at all NG",
			applicant: booking.Applicant{FullName: "Dana Candidate"},
			errIs:     booking.ErrEmptyContact,
		},
		{
			name:      "whitespace-only contact NG",
			applicant: booking.Applicant{FullName: "Dana Candidate", Email: " ", Phone: "  "},
			errIs:     booking.ErrEmptyContact,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.applicant.Validate()
			if c.errIs == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, c.errIs)
			}
		})
	}
}

func TestNewExamBooking(t *testing.T) {
	t.Run("base success case", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, booking.StatusSubmitted, actual.Status())
		assert.Equal(t, "City Driving Authority", actual.Snapshot().Authority)
		assert.Equal(t, "Main Test Center", actual.Snapshot().Location)
		assert.Equal(t, int64(12500), actual.Snapshot().FeeCents)
	})

	t.Run("invalid applicant is rejected", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().
			With(func(b *builder.BookingBuilder) { b.FullName = "" }).
			BuildDomain()
		assert.Nil(t, actual)
		assert.ErrorIs(t, err, booking.ErrEmptyName)
	})
}
