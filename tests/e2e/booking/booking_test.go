//go:build e2e

package booking_test

import (
	"fmt"
	"net/http"
	"sync"
	"testing"

	"slotbook/internal/domain/user"
	"slotbook/internal/handler/dto/request"
	"slotbook/internal/handler/dto/response"
	"slotbook/tests/common/authtest"
	"slotbook/tests/common/dbtest"
	"slotbook/tests/common/httptest"
	"slotbook/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	bookingsURL      = "/api/bookings"
	groupBookingsURL = "/api/bookings/group"
	myBookingsURL    = "/api/my/bookings"
)

type BookingSuite struct {
	e2e.SharedSuite
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

func (s *BookingSuite) token(t *testing.T, email string, role user.Role) (uuid.UUID, string) {
	t.Helper()
	userID := dbtest.CreateTestUser(t, s.DB, email, role.String())
	return userID, authtest.NewJWTHelper(s.Config.JWT).GenerateToken(t, userID, role)
}

func (s *BookingSuite) TestCreateBooking() {
	s.Run("Normal case: reserving an available slot marks it BOOKED", func() {
		t := s.T()

		userID, token := s.token(t, "guest@example.com", user.RoleUser)
		productID := dbtest.CreateTestProduct(t, s.DB, "Seaside Pension", "PENSION", "15:00", "11:00", 60, 12000)
		roomTypeID := dbtest.CreateTestRoomType(t, s.DB, productID, "Ocean View", 18000, 4)
		slotID := dbtest.CreateTestSlot(t, s.DB, productID, &roomTypeID, "2026-10-01", "15:00", "11:00", "AVAILABLE")

		note := "late check-in"
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			request.CreateBookingRequest{SlotID: slotID, Note: &note}, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.ReserveResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		require.Len(t, created.BookingIDs, 1)
		require.Nil(t, created.GroupID, "single reservations carry no group")

		require.Equal(t, "BOOKED", dbtest.SlotStatus(t, s.DB, slotID))
		require.Equal(t, "PENDING", dbtest.BookingStatus(t, s.DB, created.BookingIDs[0]))

		// Detail via admin endpoint carries the price snapshot of the room type.
		_, adminToken := s.token(t, "staff@example.com", user.RoleAdmin)
		dw := httptest.PerformRequest(t, s.Router, http.MethodGet,
			fmt.Sprintf("%s/%s", bookingsURL, created.BookingIDs[0]), nil, adminToken)
		require.Equal(t, http.StatusOK, dw.Code, dw.Body.String())

		var actual response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, dw.Body, &actual))

		price := int32(18000)
		roomTypeName := "Ocean View"
		expected := response.BookingResponse{
			ID:            created.BookingIDs[0],
			Status:        "PENDING",
			Note:          &note,
			RoomTypeName:  &roomTypeName,
			PriceSnapshot: &price,
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(response.BookingResponse{}, "User", "Slot", "Product", "CreatedAt", "UpdatedAt"),
		}
		if diff := cmp.Diff(expected, actual, opts...); diff != "" {
			t.Errorf("booking detail mismatch (-expected +actual):\n%s", diff)
		}
		require.Equal(t, userID, actual.User.ID)
	})

	s.Run("Error case: reserving an already booked slot returns conflict", func() {
		t := s.T()

		_, token := s.token(t, "first@example.com", user.RoleUser)
		_, rivalToken := s.token(t, "second@example.com", user.RoleUser)
		productID := dbtest.CreateTestProduct(t, s.DB, "City Hotel", "HOTEL", "15:00", "10:00", 60, 9000)
		roomTypeID := dbtest.CreateTestRoomType(t, s.DB, productID, "Twin", 9000, 2)
		slotID := dbtest.CreateTestSlot(t, s.DB, productID, &roomTypeID, "2026-10-02", "15:00", "10:00", "AVAILABLE")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			request.CreateBookingRequest{SlotID: slotID}, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			request.CreateBookingRequest{SlotID: slotID}, rivalToken)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	s.Run("Error case: blocked slot cannot be reserved", func() {
		t := s.T()

		_, token := s.token(t, "guest@example.com", user.RoleUser)
		productID := dbtest.CreateTestProduct(t, s.DB, "Studio", "SPACE", "09:00", "18:00", 60, 3000)
		slotID := dbtest.CreateTestSlot(t, s.DB, productID, nil, "2026-10-03", "09:00", "10:00", "BLOCKED")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			request.CreateBookingRequest{SlotID: slotID}, token)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
		require.Equal(t, "BLOCKED", dbtest.SlotStatus(t, s.DB, slotID))
	})

	s.Run("Error case: unauthenticated request is rejected", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			request.CreateBookingRequest{SlotID: uuid.New()}, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// Concurrent reservations race for the same slot; the conditional claim must
// let exactly one through.
func (s *BookingSuite) TestConcurrentClaims() {
	s.Run("Normal case: one winner among concurrent reservations", func() {
		t := s.T()

		productID := dbtest.CreateTestProduct(t, s.DB, "Studio", "SPACE", "09:00", "18:00", 60, 3000)
		slotID := dbtest.CreateTestSlot(t, s.DB, productID, nil, "2026-10-04", "10:00", "11:00", "AVAILABLE")

		const racers = 8
		tokens := make([]string, racers)
		for i := range racers {
			_, tokens[i] = s.token(t, fmt.Sprintf("racer%d@example.com", i), user.RoleUser)
		}

		codes := make([]int, racers)
		var wg sync.WaitGroup
		for i := range racers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
					request.CreateBookingRequest{SlotID: slotID}, tokens[i])
				codes[i] = w.Code
			}()
		}
		wg.Wait()

		var winners, conflicts int
		for _, code := range codes {
			switch code {
			case http.StatusCreated:
				winners++
			case http.StatusConflict:
				conflicts++
			default:
				t.Fatalf("unexpected status code %d", code)
			}
		}
		require.Equal(t, 1, winners, "exactly one reservation must win")
		require.Equal(t, racers-1, conflicts)
		require.Equal(t, "BOOKED", dbtest.SlotStatus(t, s.DB, slotID))
	})
}

func (s *BookingSuite) TestGroupBooking() {
	s.Run("Normal case: group reservation books every slot under one group", func() {
		t := s.T()

		_, token := s.token(t, "organizer@example.com", user.RoleUser)
		productID := dbtest.CreateTestProduct(t, s.DB, "Seaside Pension", "PENSION", "15:00", "11:00", 60, 12000)
		roomTypeID := dbtest.CreateTestRoomType(t, s.DB, productID, "Ocean View", 18000, 4)

		slotIDs := []uuid.UUID{
			dbtest.CreateTestSlot(t, s.DB, productID, &roomTypeID, "2026-10-05", "15:00", "11:00", "AVAILABLE"),
			dbtest.CreateTestSlot(t, s.DB, productID, &roomTypeID, "2026-10-06", "15:00", "11:00", "AVAILABLE"),
			dbtest.CreateTestSlot(t, s.DB, productID, &roomTypeID, "2026-10-07", "15:00", "11:00", "AVAILABLE"),
		}

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, groupBookingsURL,
			request.CreateGroupBookingRequest{SlotIDs: slotIDs}, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.ReserveResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		require.Len(t, created.BookingIDs, len(slotIDs))
		require.NotNil(t, created.GroupID)

		for _, slotID := range slotIDs {
			require.Equal(t, "BOOKED", dbtest.SlotStatus(t, s.DB, slotID))
		}
	})

	s.Run("Error case: one unavailable slot fails the whole group", func() {
		t := s.T()

		_, token := s.token(t, "organizer@example.com", user.RoleUser)
		_, rivalToken := s.token(t, "rival@example.com", user.RoleUser)
		productID := dbtest.CreateTestProduct(t, s.DB, "City Hotel", "HOTEL", "15:00", "10:00", 60, 9000)
		roomTypeID := dbtest.CreateTestRoomType(t, s.DB, productID, "Twin", 9000, 2)

		free1 := dbtest.CreateTestSlot(t, s.DB, productID, &roomTypeID, "2026-10-08", "15:00", "10:00", "AVAILABLE")
		taken := dbtest.CreateTestSlot(t, s.DB, productID, &roomTypeID, "2026-10-09", "15:00", "10:00", "AVAILABLE")
		free2 := dbtest.CreateTestSlot(t, s.DB, productID, &roomTypeID, "2026-10-10", "15:00", "10:00", "AVAILABLE")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			request.CreateBookingRequest{SlotID: taken}, rivalToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, groupBookingsURL,
			request.CreateGroupBookingRequest{SlotIDs: []uuid.UUID{free1, taken, free2}}, token)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

		// Nothing from the failed group sticks.
		require.Equal(t, "AVAILABLE", dbtest.SlotStatus(t, s.DB, free1))
		require.Equal(t, "AVAILABLE", dbtest.SlotStatus(t, s.DB, free2))
		require.Equal(t, "BOOKED", dbtest.SlotStatus(t, s.DB, taken))
	})

	s.Run("Error case: slots from different products are rejected", func() {
		t := s.T()

		_, token := s.token(t, "organizer@example.com", user.RoleUser)
		productA := dbtest.CreateTestProduct(t, s.DB, "Studio A", "SPACE", "09:00", "18:00", 60, 3000)
		productB := dbtest.CreateTestProduct(t, s.DB, "Studio B", "SPACE", "09:00", "18:00", 60, 3000)

		slotA := dbtest.CreateTestSlot(t, s.DB, productA, nil, "2026-10-11", "09:00", "10:00", "AVAILABLE")
		slotB := dbtest.CreateTestSlot(t, s.DB, productB, nil, "2026-10-11", "09:00", "10:00", "AVAILABLE")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, groupBookingsURL,
			request.CreateGroupBookingRequest{SlotIDs: []uuid.UUID{slotA, slotB}}, token)
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

		require.Equal(t, "AVAILABLE", dbtest.SlotStatus(t, s.DB, slotA))
		require.Equal(t, "AVAILABLE", dbtest.SlotStatus(t, s.DB, slotB))
	})
}

func (s *BookingSuite) TestBookingLifecycle() {
	s.Run("Normal case: admin confirms a pending booking", func() {
		t := s.T()

		_, token := s.token(t, "guest@example.com", user.RoleUser)
		_, adminToken := s.token(t, "staff@example.com", user.RoleAdmin)
		productID := dbtest.CreateTestProduct(t, s.DB, "Studio", "SPACE", "09:00", "18:00", 60, 3000)
		slotID := dbtest.CreateTestSlot(t, s.DB, productID, nil, "2026-10-12", "09:00", "10:00", "AVAILABLE")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			request.CreateBookingRequest{SlotID: slotID}, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var created response.ReserveResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		bookingID := created.BookingIDs[0]

		w = httptest.PerformRequest(t, s.Router, http.MethodPost,
			fmt.Sprintf("%s/%s/confirm", bookingsURL, bookingID), nil, adminToken)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
		require.Equal(t, "CONFIRMED", dbtest.BookingStatus(t, s.DB, bookingID))

		// Confirming twice is not an error worth masking from admins.
		w = httptest.PerformRequest(t, s.Router, http.MethodPost,
			fmt.Sprintf("%s/%s/confirm", bookingsURL, bookingID), nil, adminToken)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	s.Run("Normal case: cancelling releases the slot", func() {
		t := s.T()

		_, token := s.token(t, "guest@example.com", user.RoleUser)
		productID := dbtest.CreateTestProduct(t, s.DB, "Studio", "SPACE", "09:00", "18:00", 60, 3000)
		slotID := dbtest.CreateTestSlot(t, s.DB, productID, nil, "2026-10-13", "09:00", "10:00", "AVAILABLE")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			request.CreateBookingRequest{SlotID: slotID}, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var created response.ReserveResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		bookingID := created.BookingIDs[0]

		w = httptest.PerformRequest(t, s.Router, http.MethodPost,
			fmt.Sprintf("%s/%s/cancel", bookingsURL, bookingID), nil, token)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		require.Equal(t, "CANCELLED", dbtest.BookingStatus(t, s.DB, bookingID))
		require.Equal(t, "AVAILABLE", dbtest.SlotStatus(t, s.DB, slotID))

		// The released slot can be reserved again by someone else.
		_, nextToken := s.token(t, "next@example.com", user.RoleUser)
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			request.CreateBookingRequest{SlotID: slotID}, nextToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	s.Run("Error case: users cannot cancel someone else's booking", func() {
		t := s.T()

		_, ownerToken := s.token(t, "owner@example.com", user.RoleUser)
		_, strangerToken := s.token(t, "stranger@example.com", user.RoleUser)
		productID := dbtest.CreateTestProduct(t, s.DB, "Studio", "SPACE", "09:00", "18:00", 60, 3000)
		slotID := dbtest.CreateTestSlot(t, s.DB, productID, nil, "2026-10-14", "09:00", "10:00", "AVAILABLE")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			request.CreateBookingRequest{SlotID: slotID}, ownerToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var created response.ReserveResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		w = httptest.PerformRequest(t, s.Router, http.MethodPost,
			fmt.Sprintf("%s/%s/cancel", bookingsURL, created.BookingIDs[0]), nil, strangerToken)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
		require.Equal(t, "BOOKED", dbtest.SlotStatus(t, s.DB, slotID))
	})

	s.Run("Normal case: admin can cancel any booking", func() {
		t := s.T()

		_, token := s.token(t, "guest@example.com", user.RoleUser)
		_, adminToken := s.token(t, "staff@example.com", user.RoleAdmin)
		productID := dbtest.CreateTestProduct(t, s.DB, "Studio", "SPACE", "09:00", "18:00", 60, 3000)
		slotID := dbtest.CreateTestSlot(t, s.DB, productID, nil, "2026-10-15", "09:00", "10:00", "AVAILABLE")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			request.CreateBookingRequest{SlotID: slotID}, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var created response.ReserveResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		w = httptest.PerformRequest(t, s.Router, http.MethodPost,
			fmt.Sprintf("%s/%s/cancel", bookingsURL, created.BookingIDs[0]), nil, adminToken)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
		require.Equal(t, "AVAILABLE", dbtest.SlotStatus(t, s.DB, slotID))
	})
}

func (s *BookingSuite) TestMyBookings() {
	s.Run("Normal case: users only see their own bookings", func() {
		t := s.T()

		_, token := s.token(t, "mine@example.com", user.RoleUser)
		_, otherToken := s.token(t, "other@example.com", user.RoleUser)
		productID := dbtest.CreateTestProduct(t, s.DB, "Studio", "SPACE", "09:00", "18:00", 60, 3000)
		mySlot := dbtest.CreateTestSlot(t, s.DB, productID, nil, "2026-10-16", "09:00", "10:00", "AVAILABLE")
		otherSlot := dbtest.CreateTestSlot(t, s.DB, productID, nil, "2026-10-16", "10:00", "11:00", "AVAILABLE")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			request.CreateBookingRequest{SlotID: mySlot}, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			request.CreateBookingRequest{SlotID: otherSlot}, otherToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, myBookingsURL, nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var mine []response.MyBookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &mine))
		require.Len(t, mine, 1)
		require.NotNil(t, mine[0].ProductName)
		require.Equal(t, "Studio", *mine[0].ProductName)
		require.NotNil(t, mine[0].StartTime)
		require.Equal(t, "09:00", *mine[0].StartTime)
	})
}
