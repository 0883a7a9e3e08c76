//go:build e2e

package products_test

import (
	"fmt"
	"net/http"
	"testing"

	"slotbook/internal/domain/user"
	"slotbook/internal/handler/dto/request"
	"slotbook/internal/handler/dto/response"
	"slotbook/tests/common/authtest"
	"slotbook/tests/common/dbtest"
	"slotbook/tests/common/httptest"
	"slotbook/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	productsURL         = "/api/products"
	productURL          = "/api/products/%s"
	productRoomTypesURL = "/api/products/%s/room-types"
	roomTypeURL         = "/api/room-types/%s"
	bookingsURL         = "/api/bookings"
	myBookingsURL       = "/api/my/bookings"
)

type ProductSuite struct {
	e2e.SharedSuite
}

func TestProductSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ProductSuite))
}

func (s *ProductSuite) token(t *testing.T, email string, role user.Role) string {
	t.Helper()
	userID := dbtest.CreateTestUser(t, s.DB, email, role.String())
	return authtest.NewJWTHelper(s.Config.JWT).GenerateToken(t, userID, role)
}

func (s *ProductSuite) listProducts(t *testing.T, token string) []response.ProductResponse {
	t.Helper()
	w := httptest.PerformRequest(t, s.Router, http.MethodGet, productsURL, nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var products []response.ProductResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &products))
	return products
}

func (s *ProductSuite) TestCatalogVisibility() {
	s.Run("Normal case: anonymous callers only see active products", func() {
		t := s.T()

		active := dbtest.CreateTestProduct(t, s.DB, "Open Pension", "PENSION", "15:00", "11:00", 60, 12000)
		retired := dbtest.CreateTestProduct(t, s.DB, "Closed Pension", "PENSION", "15:00", "11:00", 60, 12000)
		dbtest.SetProductActive(t, s.DB, retired, false)

		products := s.listProducts(t, "")
		require.Len(t, products, 1)
		require.Equal(t, active, products[0].ID)
	})

	s.Run("Normal case: administrators see the whole catalog", func() {
		t := s.T()

		adminToken := s.token(t, "staff@example.com", user.RoleAdmin)
		dbtest.CreateTestProduct(t, s.DB, "Open Pension", "PENSION", "15:00", "11:00", 60, 12000)
		retired := dbtest.CreateTestProduct(t, s.DB, "Closed Pension", "PENSION", "15:00", "11:00", 60, 12000)
		dbtest.SetProductActive(t, s.DB, retired, false)

		products := s.listProducts(t, adminToken)
		require.Len(t, products, 2)
	})

	s.Run("Normal case: a user token does not widen the listing", func() {
		t := s.T()

		userToken := s.token(t, "guest@example.com", user.RoleUser)
		dbtest.CreateTestProduct(t, s.DB, "Open Pension", "PENSION", "15:00", "11:00", 60, 12000)
		retired := dbtest.CreateTestProduct(t, s.DB, "Closed Pension", "PENSION", "15:00", "11:00", 60, 12000)
		dbtest.SetProductActive(t, s.DB, retired, false)

		products := s.listProducts(t, userToken)
		require.Len(t, products, 1)
	})

	s.Run("Normal case: room type listing follows the caller's role", func() {
		t := s.T()

		adminToken := s.token(t, "staff@example.com", user.RoleAdmin)
		productID := dbtest.CreateTestProduct(t, s.DB, "Seaside Pension", "PENSION", "15:00", "11:00", 60, 12000)
		dbtest.CreateTestRoomType(t, s.DB, productID, "Ocean View", 18000, 4)
		hidden := dbtest.CreateTestRoomType(t, s.DB, productID, "Under Renovation", 15000, 2)
		dbtest.SetRoomTypeActive(t, s.DB, hidden, false)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet,
			fmt.Sprintf(productRoomTypesURL, productID), nil, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var public []response.RoomTypeResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &public))
		require.Len(t, public, 1)
		require.Equal(t, "Ocean View", public[0].Name)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet,
			fmt.Sprintf(productRoomTypesURL, productID), nil, adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var all []response.RoomTypeResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &all))
		require.Len(t, all, 2)
	})
}

func (s *ProductSuite) TestDeleteCascades() {
	s.Run("Normal case: deleting a room type removes its slots only", func() {
		t := s.T()

		adminToken := s.token(t, "staff@example.com", user.RoleAdmin)
		productID := dbtest.CreateTestProduct(t, s.DB, "Seaside Pension", "PENSION", "15:00", "11:00", 60, 12000)
		roomTypeID := dbtest.CreateTestRoomType(t, s.DB, productID, "Ocean View", 18000, 4)
		dbtest.CreateTestSlot(t, s.DB, productID, &roomTypeID, "2026-11-01", "15:00", "11:00", "AVAILABLE")
		plain := dbtest.CreateTestSlot(t, s.DB, productID, nil, "2026-11-01", "15:00", "11:00", "AVAILABLE")

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete,
			fmt.Sprintf(roomTypeURL, roomTypeID), nil, adminToken)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		require.Equal(t, 1, dbtest.CountSlots(t, s.DB, productID))
		require.Equal(t, "AVAILABLE", dbtest.SlotStatus(t, s.DB, plain))
	})

	s.Run("Normal case: bookings outlive deleted inventory with their snapshots", func() {
		t := s.T()

		adminToken := s.token(t, "staff@example.com", user.RoleAdmin)
		userToken := s.token(t, "guest@example.com", user.RoleUser)
		productID := dbtest.CreateTestProduct(t, s.DB, "Seaside Pension", "PENSION", "15:00", "11:00", 60, 12000)
		roomTypeID := dbtest.CreateTestRoomType(t, s.DB, productID, "Ocean View", 18000, 4)
		slotID := dbtest.CreateTestSlot(t, s.DB, productID, &roomTypeID, "2026-11-02", "15:00", "11:00", "AVAILABLE")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			request.CreateBookingRequest{SlotID: slotID}, userToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var created response.ReserveResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		require.Len(t, created.BookingIDs, 1)
		bookingID := created.BookingIDs[0]

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete,
			fmt.Sprintf(roomTypeURL, roomTypeID), nil, adminToken)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		// The slot is gone but the booking keeps its denormalized history.
		require.Equal(t, 0, dbtest.CountSlots(t, s.DB, productID))
		require.Equal(t, "PENDING", dbtest.BookingStatus(t, s.DB, bookingID))

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, myBookingsURL, nil, userToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var mine []response.MyBookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &mine))
		require.Len(t, mine, 1)
		require.NotNil(t, mine[0].RoomTypeName)
		require.Equal(t, "Ocean View", *mine[0].RoomTypeName)
		require.NotNil(t, mine[0].PriceSnapshot)
		require.Equal(t, int32(18000), *mine[0].PriceSnapshot)
		require.Nil(t, mine[0].Date, "slot details disappear with the slot")

		// Cancelling such a booking has no slot left to release.
		w = httptest.PerformRequest(t, s.Router, http.MethodPost,
			fmt.Sprintf("%s/%s/cancel", bookingsURL, bookingID), nil, userToken)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
		require.Equal(t, "CANCELLED", dbtest.BookingStatus(t, s.DB, bookingID))
	})

	s.Run("Normal case: deleting a product removes its room types and slots", func() {
		t := s.T()

		adminToken := s.token(t, "staff@example.com", user.RoleAdmin)
		productID := dbtest.CreateTestProduct(t, s.DB, "Seaside Pension", "PENSION", "15:00", "11:00", 60, 12000)
		roomTypeID := dbtest.CreateTestRoomType(t, s.DB, productID, "Ocean View", 18000, 4)
		dbtest.CreateTestSlot(t, s.DB, productID, &roomTypeID, "2026-11-03", "15:00", "11:00", "AVAILABLE")
		dbtest.CreateTestSlot(t, s.DB, productID, nil, "2026-11-03", "15:00", "11:00", "AVAILABLE")

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete,
			fmt.Sprintf(productURL, productID), nil, adminToken)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		require.Equal(t, 0, dbtest.CountSlots(t, s.DB, productID))
		w = httptest.PerformRequest(t, s.Router, http.MethodGet,
			fmt.Sprintf(productURL, productID), nil, "")
		require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	})

	s.Run("Error case: deleting an unknown room type is a 404", func() {
		t := s.T()

		adminToken := s.token(t, "staff@example.com", user.RoleAdmin)
		w := httptest.PerformRequest(t, s.Router, http.MethodDelete,
			fmt.Sprintf(roomTypeURL, uuid.New()), nil, adminToken)
		require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	})
}
