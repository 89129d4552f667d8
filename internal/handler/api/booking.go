package api

import (
	"errors"
	"net/http"

	reqdto "examgate/internal/handler/dto/request"
	resdto "examgate/internal/handler/dto/response"
	"examgate/internal/infra"
	"examgate/internal/usecase/commands"
	"examgate/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingCommands commands.BookingCommands
	bookingQueries  queries.BookingQueries
}

func NewBookingHandler(bookingCommands commands.BookingCommands, bookingQueries queries.BookingQueries) *BookingHandler {
	return &BookingHandler{
		bookingCommands: bookingCommands,
		bookingQueries:  bookingQueries,
	}
}

// RedeemVoucher consumes a voucher code and books the exam. The endpoint
// is deliberately unauthenticated: the code itself is the bearer
// credential, matching how candidates receive it out-of-band.
func (h *BookingHandler) RedeemVoucher(c *gin.Context) {
	var req reqdto.RedeemVoucherRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.bookingCommands.Redeem(c.Request.Context(), commands.RedeemParams{
		VoucherCode: req.NormalizedCode(),
		Applicant:   req.ToApplicant(),
	})
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidVoucherCode):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Voucher code not recognized",
			})
		case errors.Is(err, commands.ErrAlreadyConsumed):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Voucher already consumed",
			})
		case errors.Is(err, commands.ErrExpiredVoucher):
			c.JSON(http.StatusGone, gin.H{
				"error": "Voucher validity has passed",
			})
		case errors.Is(err, commands.ErrVoucherNotUsable):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Voucher is not in a usable state",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}
	c.JSON(http.StatusCreated, resdto.FromBookingView(view))
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	view, err := h.bookingQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}
