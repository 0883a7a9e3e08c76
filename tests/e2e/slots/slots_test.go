//go:build e2e

package slots_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

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
	generateSlotsURL = "/api/products/%s/slots/generate"
	listSlotsURL     = "/api/products/%s/slots?date=%s"
	slotStatusURL    = "/api/slots/%s/status"
)

type SlotSuite struct {
	e2e.SharedSuite
}

func TestSlotSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(SlotSuite))
}

func (s *SlotSuite) token(t *testing.T, email string, role user.Role) string {
	t.Helper()
	userID := dbtest.CreateTestUser(t, s.DB, email, role.String())
	return authtest.NewJWTHelper(s.Config.JWT).GenerateToken(t, userID, role)
}

// generation refuses ranges in the past, so anchor test ranges to next month
func genDate(daysAhead int) string {
	return time.Now().UTC().AddDate(0, 1, daysAhead).Format(time.DateOnly)
}

func (s *SlotSuite) TestGenerateSlots() {
	s.Run("Normal case: timed product expands into fixed slots per day", func() {
		t := s.T()

		adminToken := s.token(t, "staff@example.com", user.RoleAdmin)
		productID := dbtest.CreateTestProduct(t, s.DB, "Studio", "SPACE", "09:00", "12:00", 60, 3000)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			fmt.Sprintf(generateSlotsURL, productID),
			request.GenerateSlotsRequest{StartDate: genDate(0), EndDate: genDate(1)}, adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var generated response.GenerateSlotsResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &generated))
		require.Equal(t, 6, generated.Requested, "3 hourly slots for each of 2 days")
		require.Equal(t, int64(6), generated.Inserted)
		require.Equal(t, 6, dbtest.CountSlots(t, s.DB, productID))
	})

	s.Run("Normal case: regeneration inserts nothing new", func() {
		t := s.T()

		adminToken := s.token(t, "staff@example.com", user.RoleAdmin)
		productID := dbtest.CreateTestProduct(t, s.DB, "Studio", "SPACE", "09:00", "12:00", 60, 3000)
		body := request.GenerateSlotsRequest{StartDate: genDate(0), EndDate: genDate(2)}

		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			fmt.Sprintf(generateSlotsURL, productID), body, adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPost,
			fmt.Sprintf(generateSlotsURL, productID), body, adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var second response.GenerateSlotsResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &second))
		require.Equal(t, 9, second.Requested)
		require.Equal(t, int64(0), second.Inserted, "existing inventory must not be duplicated")
		require.Equal(t, 9, dbtest.CountSlots(t, s.DB, productID))
	})

	s.Run("Normal case: room-typed overnight product gets one slot per day", func() {
		t := s.T()

		adminToken := s.token(t, "staff@example.com", user.RoleAdmin)
		productID := dbtest.CreateTestProduct(t, s.DB, "Seaside Pension", "PENSION", "15:00", "11:00", 60, 12000)
		roomTypeID := dbtest.CreateTestRoomType(t, s.DB, productID, "Ocean View", 18000, 4)
		body := request.GenerateSlotsRequest{StartDate: genDate(0), EndDate: genDate(6), RoomTypeID: &roomTypeID}

		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			fmt.Sprintf(generateSlotsURL, productID), body, adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var generated response.GenerateSlotsResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &generated))
		require.Equal(t, 7, generated.Requested)
		require.Equal(t, int64(7), generated.Inserted)

		// The partial unique index absorbs the duplicates on regeneration.
		w = httptest.PerformRequest(t, s.Router, http.MethodPost,
			fmt.Sprintf(generateSlotsURL, productID), body, adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &generated))
		require.Equal(t, int64(0), generated.Inserted)
		require.Equal(t, 7, dbtest.CountSlots(t, s.DB, productID))
	})

	s.Run("Error case: room type of another product is rejected", func() {
		t := s.T()

		adminToken := s.token(t, "staff@example.com", user.RoleAdmin)
		productA := dbtest.CreateTestProduct(t, s.DB, "Pension A", "PENSION", "15:00", "11:00", 60, 12000)
		productB := dbtest.CreateTestProduct(t, s.DB, "Pension B", "PENSION", "15:00", "11:00", 60, 12000)
		foreignRoomType := dbtest.CreateTestRoomType(t, s.DB, productB, "Twin", 9000, 2)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			fmt.Sprintf(generateSlotsURL, productA),
			request.GenerateSlotsRequest{StartDate: genDate(0), EndDate: genDate(1), RoomTypeID: &foreignRoomType},
			adminToken)
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		require.Equal(t, 0, dbtest.CountSlots(t, s.DB, productA))
	})

	s.Run("Error case: non-admin cannot generate slots", func() {
		t := s.T()

		userToken := s.token(t, "guest@example.com", user.RoleUser)
		productID := dbtest.CreateTestProduct(t, s.DB, "Studio", "SPACE", "09:00", "12:00", 60, 3000)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			fmt.Sprintf(generateSlotsURL, productID),
			request.GenerateSlotsRequest{StartDate: genDate(0), EndDate: genDate(1)}, userToken)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})
}

func (s *SlotSuite) TestListSlots() {
	s.Run("Normal case: listing is filtered by date", func() {
		t := s.T()

		userToken := s.token(t, "guest@example.com", user.RoleUser)
		productID := dbtest.CreateTestProduct(t, s.DB, "Studio", "SPACE", "09:00", "18:00", 60, 3000)
		dbtest.CreateTestSlot(t, s.DB, productID, nil, "2026-11-01", "09:00", "10:00", "AVAILABLE")
		dbtest.CreateTestSlot(t, s.DB, productID, nil, "2026-11-01", "10:00", "11:00", "BOOKED")
		dbtest.CreateTestSlot(t, s.DB, productID, nil, "2026-11-02", "09:00", "10:00", "AVAILABLE")

		w := httptest.PerformRequest(t, s.Router, http.MethodGet,
			fmt.Sprintf(listSlotsURL, productID, "2026-11-01"), nil, userToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var slots []response.SlotResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &slots))
		require.Len(t, slots, 2)
		for _, sl := range slots {
			require.Equal(t, "2026-11-01", sl.Date)
		}
	})

	s.Run("Error case: missing date parameter is a bad request", func() {
		t := s.T()

		userToken := s.token(t, "guest@example.com", user.RoleUser)
		productID := dbtest.CreateTestProduct(t, s.DB, "Studio", "SPACE", "09:00", "18:00", 60, 3000)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet,
			fmt.Sprintf("/api/products/%s/slots", productID), nil, userToken)
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	})
}

func (s *SlotSuite) TestSetSlotStatus() {
	s.Run("Normal case: admin blocks and reopens a slot", func() {
		t := s.T()

		adminToken := s.token(t, "staff@example.com", user.RoleAdmin)
		productID := dbtest.CreateTestProduct(t, s.DB, "Studio", "SPACE", "09:00", "18:00", 60, 3000)
		slotID := dbtest.CreateTestSlot(t, s.DB, productID, nil, "2026-11-01", "09:00", "10:00", "AVAILABLE")

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch,
			fmt.Sprintf(slotStatusURL, slotID), request.SetSlotStatusRequest{Status: "BLOCKED"}, adminToken)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
		require.Equal(t, "BLOCKED", dbtest.SlotStatus(t, s.DB, slotID))

		w = httptest.PerformRequest(t, s.Router, http.MethodPatch,
			fmt.Sprintf(slotStatusURL, slotID), request.SetSlotStatusRequest{Status: "AVAILABLE"}, adminToken)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
		require.Equal(t, "AVAILABLE", dbtest.SlotStatus(t, s.DB, slotID))
	})

	s.Run("Error case: booked slots cannot be overridden by hand", func() {
		t := s.T()

		adminToken := s.token(t, "staff@example.com", user.RoleAdmin)
		productID := dbtest.CreateTestProduct(t, s.DB, "Studio", "SPACE", "09:00", "18:00", 60, 3000)
		slotID := dbtest.CreateTestSlot(t, s.DB, productID, nil, "2026-11-01", "09:00", "10:00", "BOOKED")

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch,
			fmt.Sprintf(slotStatusURL, slotID), request.SetSlotStatusRequest{Status: "BLOCKED"}, adminToken)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
		require.Equal(t, "BOOKED", dbtest.SlotStatus(t, s.DB, slotID))
	})

	s.Run("Error case: unknown slot returns not found", func() {
		t := s.T()

		adminToken := s.token(t, "staff@example.com", user.RoleAdmin)

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch,
			fmt.Sprintf(slotStatusURL, uuid.New()), request.SetSlotStatusRequest{Status: "BLOCKED"}, adminToken)
		require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	})
}
