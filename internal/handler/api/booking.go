package api

import (
	"errors"
	"net/http"

	"slotbook/internal/domain/booking"
	reqdto "slotbook/internal/handler/dto/request"
	resdto "slotbook/internal/handler/dto/response"
	"slotbook/internal/handler/httperr"
	"slotbook/internal/handler/middleware"
	"slotbook/internal/infra"
	"slotbook/internal/pkg/errs"
	"slotbook/internal/usecase/commands"
	"slotbook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	reservationCommands commands.ReservationCommands
	bookingCommands     commands.BookingCommands
	bookingQueries      queries.BookingQueries
}

func NewBookingHandler(
	reservationCommands commands.ReservationCommands,
	bookingCommands commands.BookingCommands,
	bookingQueries queries.BookingQueries,
) *BookingHandler {
	return &BookingHandler{
		reservationCommands: reservationCommands,
		bookingCommands:     bookingCommands,
		bookingQueries:      bookingQueries,
	}
}

// @Summary Create booking
// @Description Reserve one slot. Fails with 409 when the slot is not available.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.ReserveResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("user id missing from context"), "Internal server error", nil)
		return
	}

	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.reservationCommands.Reserve(c.Request.Context(), userID, req.SlotID, req.GetNote())
	if err != nil {
		h.writeReserveError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.ReserveResponse{
		BookingIDs: result.BookingIDs,
		GroupID:    result.GroupID,
	})
}

// @Summary Create group booking
// @Description Reserve several slots all or nothing under one group ID.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateGroupBookingRequest true "Group booking request"
// @Success 201 {object} resdto.ReserveResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/group [post]
func (h *BookingHandler) CreateGroup(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("user id missing from context"), "Internal server error", nil)
		return
	}

	var req reqdto.CreateGroupBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.reservationCommands.ReserveGroup(c.Request.Context(), userID, req.SlotIDs, req.GetNote())
	if err != nil {
		h.writeReserveError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.ReserveResponse{
		BookingIDs: result.BookingIDs,
		GroupID:    result.GroupID,
	})
}

func (h *BookingHandler) writeReserveError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrSlotNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Slot not found", nil)
	case errors.Is(err, commands.ErrSlotUnavailable):
		httperr.AbortWithError(c, http.StatusConflict, err, "Slot is not available", nil)
	case errors.Is(err, commands.ErrPartialUnavailability):
		httperr.AbortWithError(c, http.StatusConflict, err, "Some slots in the group are no longer available", nil)
	case errors.Is(err, commands.ErrEmptySlotGroup):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid slot group", nil)
	case errors.Is(err, commands.ErrGroupTooLarge):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Too many slots in one request", nil)
	case errors.Is(err, commands.ErrDuplicateSlots):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Duplicate slot in request", nil)
	case errors.Is(err, commands.ErrMixedProducts):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Slots span multiple products", nil)
	case errors.Is(err, commands.ErrInvalidNote):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid note", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

// @Summary Confirm booking
// @Description Move a pending booking to confirmed.
// @Tags bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/confirm [post]
func (h *BookingHandler) Confirm(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID", nil)
		return
	}

	err = h.bookingCommands.Confirm(c.Request.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
		case errors.Is(err, commands.ErrBookingNotPending):
			httperr.AbortWithError(c, http.StatusConflict, err, "Booking is not pending", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Cancel booking
// @Description Cancel a live booking and release its slot. Users may cancel
// @Description their own bookings; admins may cancel anyone's.
// @Tags bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID", nil)
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("user id missing from context"), "Internal server error", nil)
		return
	}
	role, ok := middleware.GetUserRole(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("user role missing from context"), "Internal server error", nil)
		return
	}

	err = h.bookingCommands.Cancel(c.Request.Context(), bookingID, userID, role)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
		case errors.Is(err, commands.ErrBookingNotYours):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Booking belongs to another user", nil)
		case errors.Is(err, commands.ErrBookingTerminal):
			httperr.AbortWithError(c, http.StatusConflict, err, "Booking already finished", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Get booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID", nil)
		return
	}

	view, err := h.bookingQueries.Get(c.Request.Context(), bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List bookings
// @Description Admin listing of all bookings, optionally filtered by status.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param status query string false "Booking status filter"
// @Success 200 {array} resdto.BookingResponse
// @Router /bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	var statusFilter *booking.Status
	if raw := c.Query("status"); raw != "" {
		status, err := booking.NewStatus(raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking status", nil)
			return
		}
		statusFilter = &status
	}

	views, err := h.bookingQueries.List(c.Request.Context(), statusFilter)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingViews(views))
}

// @Summary List my bookings
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.MyBookingResponse
// @Router /my/bookings [get]
func (h *BookingHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("user id missing from context"), "Internal server error", nil)
		return
	}

	views, err := h.bookingQueries.ListMine(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromMyBookingViews(views))
}
