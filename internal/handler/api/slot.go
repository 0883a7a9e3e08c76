package api

import (
	"errors"
	"net/http"
	"time"

	"slotbook/internal/domain/slot"
	"slotbook/internal/domain/user"
	reqdto "slotbook/internal/handler/dto/request"
	resdto "slotbook/internal/handler/dto/response"
	"slotbook/internal/handler/httperr"
	"slotbook/internal/handler/middleware"
	"slotbook/internal/usecase/commands"
	"slotbook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SlotHandler struct {
	slotCommands commands.SlotCommands
	slotQueries  queries.SlotQueries
}

func NewSlotHandler(slotCommands commands.SlotCommands, slotQueries queries.SlotQueries) *SlotHandler {
	return &SlotHandler{
		slotCommands: slotCommands,
		slotQueries:  slotQueries,
	}
}

// @Summary List slots
// @Description List a product's slots for one date. Booking details are only
// @Description included for admin callers.
// @Tags slots
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param room_type_id query string false "Room type ID"
// @Success 200 {array} resdto.SlotResponse
// @Failure 400 {object} map[string]string
// @Router /products/{id}/slots [get]
func (h *SlotHandler) List(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid product ID", nil)
		return
	}

	date, err := time.Parse(time.DateOnly, c.Query("date"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "date must be YYYY-MM-DD", nil)
		return
	}

	var roomTypeID *uuid.UUID
	if raw := c.Query("room_type_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid room type ID", nil)
			return
		}
		roomTypeID = &id
	}

	role, ok := middleware.GetUserRole(c)
	if !ok {
		role = user.RoleUser
	}

	views, err := h.slotQueries.List(c.Request.Context(), role, productID, date, roomTypeID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSlotViews(views))
}

// @Summary Generate slots
// @Description Expand the product's operating hours into slot inventory for a
// @Description date range. Already existing slots are skipped.
// @Tags slots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param request body reqdto.GenerateSlotsRequest true "Generation range"
// @Success 200 {object} resdto.GenerateSlotsResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /products/{id}/slots/generate [post]
func (h *SlotHandler) Generate(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid product ID", nil)
		return
	}

	var req reqdto.GenerateSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	from, to, err := req.ParseDates()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
		return
	}

	result, err := h.slotCommands.Generate(c.Request.Context(), productID, req.RoomTypeID, from, to)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrProductNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Product not found", nil)
		case errors.Is(err, commands.ErrRoomTypeNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Room type not found", nil)
		case errors.Is(err, commands.ErrRoomTypeWrongProduct):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Room type does not belong to product", nil)
		case errors.Is(err, commands.ErrProductInactive):
			httperr.AbortWithError(c, http.StatusConflict, err, "Product is not active", nil)
		case errors.Is(err, commands.ErrInvalidDateRange):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date range", nil)
		case errors.Is(err, commands.ErrInvalidOperatingHours):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Product operating hours are invalid", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	c.JSON(http.StatusOK, resdto.GenerateSlotsResponse{
		Requested: result.Requested,
		Inserted:  result.Inserted,
	})
}

// @Summary Set slot status
// @Description Hand-set a slot to AVAILABLE or BLOCKED. Booked slots are
// @Description refused; cancel the booking to release them.
// @Tags slots
// @Accept json
// @Security BearerAuth
// @Param id path string true "Slot ID"
// @Param request body reqdto.SetSlotStatusRequest true "Target status"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /slots/{id}/status [patch]
func (h *SlotHandler) SetStatus(c *gin.Context) {
	slotID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid slot ID", nil)
		return
	}

	var req reqdto.SetSlotStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	status, err := slot.NewStatus(req.Status)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid slot status", nil)
		return
	}

	err = h.slotCommands.SetStatus(c.Request.Context(), slotID, status)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidSlotStatus):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Status cannot be set manually", nil)
		case errors.Is(err, commands.ErrSlotNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Slot not found", nil)
		case errors.Is(err, commands.ErrSlotOccupied):
			httperr.AbortWithError(c, http.StatusConflict, err, "Slot is booked", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	c.Status(http.StatusNoContent)
}
