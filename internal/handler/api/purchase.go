package api

import (
	"errors"
	"net/http"

	reqdto "examgate/internal/handler/dto/request"
	resdto "examgate/internal/handler/dto/response"
	"examgate/internal/handler/middleware"
	"examgate/internal/infra"
	"examgate/internal/usecase/commands"
	"examgate/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PurchaseHandler struct {
	purchaseCommands commands.PurchaseCommands
	adminCommands    commands.SlotAdminCommands
	purchaseQueries  queries.PurchaseQueries
}

func NewPurchaseHandler(
	purchaseCommands commands.PurchaseCommands,
	adminCommands commands.SlotAdminCommands,
	purchaseQueries queries.PurchaseQueries,
) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseCommands: purchaseCommands,
		adminCommands:    adminCommands,
		purchaseQueries:  purchaseQueries,
	}
}

func (h *PurchaseHandler) OpenPurchase(c *gin.Context) {
	applicantID, ok := middleware.GetApplicantID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.OpenPurchaseRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.purchaseCommands.Open(c.Request.Context(), commands.OpenPurchaseParams{
		SlotID:      req.SlotID,
		ApplicantID: applicantID,
		PaymentRef:  req.GetPaymentRef(),
	})
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrSlotNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Slot not found",
			})
		case errors.Is(err, commands.ErrSlotUnavailable):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Slot is full, closed, or expired",
			})
		case errors.Is(err, commands.ErrDuplicatePurchase):
			c.JSON(http.StatusConflict, gin.H{
				"error": "An active purchase for this slot already exists",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}
	c.JSON(http.StatusCreated, resdto.FromPurchaseView(view))
}

func (h *PurchaseHandler) GetPurchase(c *gin.Context) {
	applicantID, ok := middleware.GetApplicantID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid purchase ID format",
		})
		return
	}

	view, err := h.purchaseQueries.GetByID(c.Request.Context(), applicantID, id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrForbidden):
			// 404 instead of 403 so the endpoint does not confirm that a
			// purchase ID exists for someone else.
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Purchase not found",
			})
		case infra.IsKind(err, infra.KindNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Purchase not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromPurchaseView(view))
}

func (h *PurchaseHandler) ListMyPurchases(c *gin.Context) {
	applicantID, ok := middleware.GetApplicantID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	limit := 50
	if l := c.Query("limit"); l != "" {
		if parsed, err := parsePositiveInt(l); err == nil {
			limit = parsed
		}
	}

	items, err := h.purchaseQueries.ListByApplicant(c.Request.Context(), applicantID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.PurchaseListResponse, len(items))
	for i, item := range items {
		response[i] = resdto.FromPurchaseListItem(item)
	}
	c.JSON(http.StatusOK, response)
}

// PaymentWebhook receives the asynchronous verdict from the payment
// authority. Redeliveries of an already-applied verdict return 409, which
// the authority treats as final.
func (h *PurchaseHandler) PaymentWebhook(c *gin.Context) {
	var req reqdto.PaymentWebhookRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	err := h.purchaseCommands.ResolvePayment(c.Request.Context(), req.PurchaseID, commands.PaymentOutcome(req.Outcome))
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrPurchaseNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Purchase not found",
			})
		case errors.Is(err, commands.ErrAlreadyResolved):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Purchase already resolved",
			})
		case errors.Is(err, commands.ErrVoucherIssueFailed):
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "Voucher issuance failed, retry later",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// CancelPurchase is the admin override for refund handling.
func (h *PurchaseHandler) CancelPurchase(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid purchase ID format",
		})
		return
	}

	if err := h.adminCommands.CancelPurchase(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, commands.ErrPurchaseNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Purchase not found",
			})
		case errors.Is(err, commands.ErrAlreadyResolved):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Purchase is already terminal",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}
	c.Status(http.StatusNoContent)
}
