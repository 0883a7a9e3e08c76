package commands

import (
	"context"

	"slotbook/internal/domain/product"
	"slotbook/internal/infra"
	"slotbook/internal/pkg/errs"
	"slotbook/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrRoomTypeValidation = errs.New("room type validation failed")

type RoomTypeInput struct {
	Name     string
	Price    int32
	Capacity int
	IsActive bool
}

type RoomTypeCommands interface {
	Create(ctx context.Context, productID uuid.UUID, in RoomTypeInput) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, in RoomTypeInput) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type roomTypeUseCaseImpl struct {
	uow shared.UnitOfWork
}

func NewRoomTypeUseCase(uow shared.UnitOfWork) RoomTypeCommands {
	return &roomTypeUseCaseImpl{uow: uow}
}

func (u *roomTypeUseCaseImpl) Create(ctx context.Context, productID uuid.UUID, in RoomTypeInput) (uuid.UUID, error) {
	rt, err := product.NewRoomType(productID, in.Name, in.Price, in.Capacity, in.IsActive)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrRoomTypeValidation)
	}
	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Reads().ProductByID(ctx, productID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrProductNotFound)
			}
			return errs.Wrap(err, "failed to load product")
		}
		return tx.RoomTypes().Create(ctx, rt)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return rt.ID(), nil
}

func (u *roomTypeUseCaseImpl) Update(ctx context.Context, id uuid.UUID, in RoomTypeInput) error {
	return u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, err := tx.Reads().RoomTypeByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrRoomTypeNotFound)
			}
			return errs.Wrap(err, "failed to load room type")
		}
		rt, err := product.NewRoomType(current.ProductID, in.Name, in.Price, in.Capacity, in.IsActive)
		if err != nil {
			return errs.Mark(err, ErrRoomTypeValidation)
		}
		updated := product.ReconstructRoomType(
			id, current.ProductID, rt.Name(), rt.Price(), rt.Capacity(),
			rt.IsActive(), rt.CreatedAt(), rt.UpdatedAt(),
		)
		return tx.RoomTypes().Update(ctx, updated)
	})
}

// Delete removes the room type and cascades its slot inventory. Bookings on
// those slots keep their room type name and price snapshots.
func (u *roomTypeUseCaseImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		rows, err := tx.RoomTypes().Delete(ctx, id)
		if err != nil {
			return errs.Wrap(err, "failed to delete room type")
		}
		if rows == 0 {
			return ErrRoomTypeNotFound
		}
		return nil
	})
}
