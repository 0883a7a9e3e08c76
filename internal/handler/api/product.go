package api

import (
	"errors"
	"net/http"

	reqdto "slotbook/internal/handler/dto/request"
	resdto "slotbook/internal/handler/dto/response"
	"slotbook/internal/handler/httperr"
	"slotbook/internal/handler/middleware"
	"slotbook/internal/infra"
	"slotbook/internal/usecase/commands"
	"slotbook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProductHandler struct {
	productCommands  commands.ProductCommands
	roomTypeCommands commands.RoomTypeCommands
	productQueries   queries.ProductQueries
}

func NewProductHandler(
	productCommands commands.ProductCommands,
	roomTypeCommands commands.RoomTypeCommands,
	productQueries queries.ProductQueries,
) *ProductHandler {
	return &ProductHandler{
		productCommands:  productCommands,
		roomTypeCommands: roomTypeCommands,
		productQueries:   productQueries,
	}
}

// activeOnlyFor hides inactive catalog entries from everyone but
// administrators. The filter is derived from the caller's role, never from
// request input.
func activeOnlyFor(c *gin.Context) bool {
	role, ok := middleware.GetUserRole(c)
	return !ok || !role.IsAdmin()
}

// @Summary List products
// @Description List bookable products. Anonymous callers only see active
// @Description ones; administrators see the whole catalog.
// @Tags products
// @Produce json
// @Success 200 {array} resdto.ProductResponse
// @Router /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	views, err := h.productQueries.List(c.Request.Context(), activeOnlyFor(c))
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromProductViews(views))
}

// @Summary Get product
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} resdto.ProductResponse
// @Failure 404 {object} map[string]string
// @Router /products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid product ID", nil)
		return
	}

	view, err := h.productQueries.Get(c.Request.Context(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Product not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromProductView(view))
}

// @Summary Create product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ProductRequest true "Product"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} map[string]string
// @Router /products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req reqdto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	id, err := h.productCommands.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		if errors.Is(err, commands.ErrProductValidation) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Product validation failed", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary Update product
// @Tags products
// @Accept json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param request body reqdto.ProductRequest true "Product"
// @Success 204
// @Router /products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid product ID", nil)
		return
	}

	var req reqdto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	err = h.productCommands.Update(c.Request.Context(), id, req.ToInput())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrProductValidation):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Product validation failed", nil)
		case errors.Is(err, commands.ErrProductNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Product not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Delete product
// @Tags products
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 204
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid product ID", nil)
		return
	}

	err = h.productCommands.Delete(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrProductNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Product not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List room types
// @Description List a product's room types. Anonymous callers only see
// @Description active ones; administrators see all.
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {array} resdto.RoomTypeResponse
// @Router /products/{id}/room-types [get]
func (h *ProductHandler) ListRoomTypes(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid product ID", nil)
		return
	}

	views, err := h.productQueries.ListRoomTypes(c.Request.Context(), productID, activeOnlyFor(c))
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRoomTypeViews(views))
}

// @Summary Create room type
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param request body reqdto.RoomTypeRequest true "Room type"
// @Success 201 {object} resdto.CreatedResponse
// @Router /products/{id}/room-types [post]
func (h *ProductHandler) CreateRoomType(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid product ID", nil)
		return
	}

	var req reqdto.RoomTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	id, err := h.roomTypeCommands.Create(c.Request.Context(), productID, req.ToInput())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrRoomTypeValidation):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Room type validation failed", nil)
		case errors.Is(err, commands.ErrProductNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Product not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary Update room type
// @Tags products
// @Accept json
// @Security BearerAuth
// @Param id path string true "Room type ID"
// @Param request body reqdto.RoomTypeRequest true "Room type"
// @Success 204
// @Router /room-types/{id} [put]
func (h *ProductHandler) UpdateRoomType(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid room type ID", nil)
		return
	}

	var req reqdto.RoomTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	err = h.roomTypeCommands.Update(c.Request.Context(), id, req.ToInput())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrRoomTypeValidation):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Room type validation failed", nil)
		case errors.Is(err, commands.ErrRoomTypeNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Room type not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Delete room type
// @Tags products
// @Security BearerAuth
// @Param id path string true "Room type ID"
// @Success 204
// @Router /room-types/{id} [delete]
func (h *ProductHandler) DeleteRoomType(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid room type ID", nil)
		return
	}

	err = h.roomTypeCommands.Delete(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrRoomTypeNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Room type not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	c.Status(http.StatusNoContent)
}
