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

type SlotHandler struct {
	slotCommands commands.SlotAdminCommands
	slotQueries  queries.SlotQueries
}

func NewSlotHandler(slotCommands commands.SlotAdminCommands, slotQueries queries.SlotQueries) *SlotHandler {
	return &SlotHandler{
		slotCommands: slotCommands,
		slotQueries:  slotQueries,
	}
}

func (h *SlotHandler) ListOpenSlots(c *gin.Context) {
	var kind *string
	if k := c.Query("kind"); k != "" {
		kind = &k
	}
	limit := 50
	if l := c.Query("limit"); l != "" {
		if parsed, err := parsePositiveInt(l); err == nil {
			limit = parsed
		}
	}

	views, err := h.slotQueries.ListOpen(c.Request.Context(), kind, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.SlotResponse, len(views))
	for i, v := range views {
		response[i] = resdto.FromSlotView(v)
	}
	c.JSON(http.StatusOK, response)
}

func (h *SlotHandler) GetSlot(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid slot ID format",
		})
		return
	}

	view, err := h.slotQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Slot not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, resdto.FromSlotView(view))
}

func (h *SlotHandler) CreateSlot(c *gin.Context) {
	var req reqdto.SlotRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.slotCommands.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		if errors.Is(err, commands.ErrInvalidSlotInput) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Invalid slot input",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusCreated, resdto.FromSlotView(view))
}

func (h *SlotHandler) UpdateSlot(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid slot ID format",
		})
		return
	}

	var req reqdto.SlotRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.slotCommands.Update(c.Request.Context(), id, req.ToInput())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrSlotNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Slot not found",
			})
		case errors.Is(err, commands.ErrCapacityBelowHeld):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Capacity cannot drop below current bookings",
			})
		case errors.Is(err, commands.ErrInvalidSlotInput):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Invalid slot input",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromSlotView(view))
}

func (h *SlotHandler) CloseSlot(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid slot ID format",
		})
		return
	}

	if err := h.slotCommands.Close(c.Request.Context(), id); err != nil {
		if errors.Is(err, commands.ErrSlotNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Slot not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SlotHandler) DeleteSlot(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid slot ID format",
		})
		return
	}

	if err := h.slotCommands.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, commands.ErrSlotNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Slot not found",
			})
		case errors.Is(err, commands.ErrSlotHasPurchases):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Slot still has purchases",
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
