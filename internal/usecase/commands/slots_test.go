//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"slotbook/internal/domain/product"
	"slotbook/internal/domain/slot"
	"slotbook/internal/pkg/clock"
	"slotbook/internal/pkg/metrics"
	"slotbook/internal/usecase/commands"
	"slotbook/internal/usecase/shared"
	"slotbook/tests/mock/ports"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SlotCommandsTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	uow       *ports.MockUnitOfWork
	tx        *ports.MockTx
	reads     *ports.MockCommandReads
	slots     *ports.MockSlotRepository
	publisher *ports.MockEventPublisher
	commands  commands.SlotCommands
}

func TestSlotCommandsTestSuite(t *testing.T) {
	suite.Run(t, new(SlotCommandsTestSuite))
}

func (s *SlotCommandsTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.uow = ports.NewMockUnitOfWork(s.ctrl)
	s.tx = ports.NewMockTx(s.ctrl)
	s.reads = ports.NewMockCommandReads(s.ctrl)
	s.slots = ports.NewMockSlotRepository(s.ctrl)
	s.publisher = ports.NewMockEventPublisher(s.ctrl)

	s.tx.EXPECT().Reads().Return(s.reads).AnyTimes()
	s.tx.EXPECT().Slots().Return(s.slots).AnyTimes()

	s.commands = commands.NewSlotUseCase(s.uow, clock.NewMockClock(day(2026, time.January, 1)), s.publisher, metrics.New(prometheus.NewRegistry()))
}

func (s *SlotCommandsTestSuite) expectWithin() {
	s.uow.EXPECT().
		Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, s.tx)
		})
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func timedProduct(id uuid.UUID) *shared.ProductSnapshot {
	return &shared.ProductSnapshot{
		ID:              id,
		Name:            "Studio",
		Category:        product.CategorySpace,
		OpenTime:        "09:00",
		CloseTime:       "12:00",
		SlotDurationMin: 60,
		PricePerSlot:    3000,
		IsActive:        true,
	}
}

func (s *SlotCommandsTestSuite) TestGenerateTimedProduct() {
	productID := uuid.New()
	from := day(2026, time.April, 1)
	to := day(2026, time.April, 2)

	s.expectWithin()
	s.reads.EXPECT().ProductByID(gomock.Any(), productID).Return(timedProduct(productID), nil)
	s.slots.EXPECT().ExistingKeys(gomock.Any(), productID, from, to).
		Return(map[slot.DayTime]struct{}{slot.Key(from, "09:00"): {}}, nil)

	var inserted []shared.NewSlot
	s.slots.EXPECT().BulkInsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rows []shared.NewSlot) (int64, error) {
			inserted = rows
			return int64(len(rows)), nil
		})
	s.publisher.EXPECT().Publish(gomock.Any(), shared.EventSlotsGenerated, gomock.Any()).Return(nil)

	result, err := s.commands.Generate(context.Background(), productID, nil, from, to)

	s.Require().NoError(err)
	// Three slots per day over two days, one already present.
	s.Equal(6, result.Requested)
	s.Equal(int64(5), result.Inserted)
	s.Require().Len(inserted, 5)
	s.Equal("10:00", inserted[0].StartTime)
	for _, row := range inserted {
		s.Equal(productID, row.ProductID)
		s.Nil(row.RoomTypeID)
	}
}

func (s *SlotCommandsTestSuite) TestGenerateRoomTypedSkipsKeyFilter() {
	productID := uuid.New()
	roomTypeID := uuid.New()
	from := day(2026, time.April, 1)

	snap := timedProduct(productID)
	snap.Category = product.CategoryHotel

	s.expectWithin()
	s.reads.EXPECT().ProductByID(gomock.Any(), productID).Return(snap, nil)
	s.reads.EXPECT().RoomTypeByID(gomock.Any(), roomTypeID).
		Return(&shared.RoomTypeSnapshot{ID: roomTypeID, ProductID: productID, Name: "Twin", Price: 12000, IsActive: true}, nil)

	// Dedup for room-typed rows is the partial unique index, not ExistingKeys.
	s.slots.EXPECT().BulkInsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rows []shared.NewSlot) (int64, error) {
			s.Require().Len(rows, 1)
			s.Require().NotNil(rows[0].RoomTypeID)
			s.Equal(roomTypeID, *rows[0].RoomTypeID)
			return 1, nil
		})
	s.publisher.EXPECT().Publish(gomock.Any(), shared.EventSlotsGenerated, gomock.Any()).Return(nil)

	result, err := s.commands.Generate(context.Background(), productID, &roomTypeID, from, from)

	s.Require().NoError(err)
	s.Equal(int64(1), result.Inserted)
}

func (s *SlotCommandsTestSuite) TestGenerateRoomTypeOfOtherProduct() {
	productID := uuid.New()
	roomTypeID := uuid.New()
	from := day(2026, time.April, 1)

	s.expectWithin()
	s.reads.EXPECT().ProductByID(gomock.Any(), productID).Return(timedProduct(productID), nil)
	s.reads.EXPECT().RoomTypeByID(gomock.Any(), roomTypeID).
		Return(&shared.RoomTypeSnapshot{ID: roomTypeID, ProductID: uuid.New()}, nil)

	_, err := s.commands.Generate(context.Background(), productID, &roomTypeID, from, from)

	s.ErrorIs(err, commands.ErrRoomTypeWrongProduct)
}

func (s *SlotCommandsTestSuite) TestGenerateInactiveProduct() {
	productID := uuid.New()
	from := day(2026, time.April, 1)

	snap := timedProduct(productID)
	snap.IsActive = false

	s.expectWithin()
	s.reads.EXPECT().ProductByID(gomock.Any(), productID).Return(snap, nil)

	_, err := s.commands.Generate(context.Background(), productID, nil, from, from)

	s.ErrorIs(err, commands.ErrProductInactive)
}

func (s *SlotCommandsTestSuite) TestGenerateInvalidRange() {
	productID := uuid.New()

	_, err := s.commands.Generate(context.Background(), productID, nil,
		day(2026, time.April, 2), day(2026, time.April, 1))
	s.ErrorIs(err, commands.ErrInvalidDateRange)

	_, err = s.commands.Generate(context.Background(), productID, nil,
		day(2026, time.April, 1), day(2028, time.April, 1))
	s.ErrorIs(err, commands.ErrInvalidDateRange)

	// The cap counts days inclusively, so 367 calendar days is one too many.
	_, err = s.commands.Generate(context.Background(), productID, nil,
		day(2026, time.April, 1), day(2026, time.April, 1).AddDate(0, 0, commands.MaxGenerationDays))
	s.ErrorIs(err, commands.ErrInvalidDateRange)

	// Clock is pinned to 2026-01-01; earlier ranges are dead inventory.
	_, err = s.commands.Generate(context.Background(), productID, nil,
		day(2025, time.April, 1), day(2025, time.April, 2))
	s.ErrorIs(err, commands.ErrInvalidDateRange)
}

func (s *SlotCommandsTestSuite) TestSetStatus() {
	slotID := uuid.New()

	s.Run("blocked succeeds", func() {
		s.expectWithin()
		s.slots.EXPECT().SetStatusGuarded(gomock.Any(), slotID, slot.StatusBlocked).Return(int64(1), nil)
		s.publisher.EXPECT().Publish(gomock.Any(), shared.EventSlotStatusSet, gomock.Any()).Return(nil)

		s.NoError(s.commands.SetStatus(context.Background(), slotID, slot.StatusBlocked))
	})

	s.Run("booked target is rejected up front", func() {
		err := s.commands.SetStatus(context.Background(), slotID, slot.StatusBooked)
		s.ErrorIs(err, commands.ErrInvalidSlotStatus)
	})

	s.Run("occupied slot is refused", func() {
		s.expectWithin()
		s.slots.EXPECT().SetStatusGuarded(gomock.Any(), slotID, slot.StatusAvailable).Return(int64(0), nil)
		s.reads.EXPECT().SlotByID(gomock.Any(), slotID).
			Return(&shared.SlotSnapshot{ID: slotID, Status: slot.StatusBooked}, nil)

		err := s.commands.SetStatus(context.Background(), slotID, slot.StatusAvailable)
		s.ErrorIs(err, commands.ErrSlotOccupied)
	})
}
