package commands

import (
	"context"

	"slotbook/internal/domain/product"
	"slotbook/internal/infra"
	"slotbook/internal/pkg/errs"
	"slotbook/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrProductValidation = errs.New("product validation failed")

type ProductInput struct {
	Name            string
	Description     string
	Category        string
	Images          []string
	PricePerSlot    int32
	Address         string
	OpenTime        string
	CloseTime       string
	SlotDurationMin int
	IsActive        bool
}

type ProductCommands interface {
	Create(ctx context.Context, in ProductInput) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, in ProductInput) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type productUseCaseImpl struct {
	uow shared.UnitOfWork
}

func NewProductUseCase(uow shared.UnitOfWork) ProductCommands {
	return &productUseCaseImpl{uow: uow}
}

func (u *productUseCaseImpl) Create(ctx context.Context, in ProductInput) (uuid.UUID, error) {
	p, err := buildProduct(in)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrProductValidation)
	}
	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Products().Create(ctx, p)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return p.ID(), nil
}

func (u *productUseCaseImpl) Update(ctx context.Context, id uuid.UUID, in ProductInput) error {
	p, err := buildProduct(in)
	if err != nil {
		return errs.Mark(err, ErrProductValidation)
	}
	return u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Reads().ProductByID(ctx, id); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrProductNotFound)
			}
			return errs.Wrap(err, "failed to load product")
		}
		updated := product.ReconstructProduct(
			id, p.Name(), p.Description(), p.Category(), p.Images(),
			p.PricePerSlot(), p.Address(), p.Hours(), p.SlotDurationMin(),
			p.IsActive(), p.CreatedAt(), p.UpdatedAt(),
		)
		return tx.Products().Update(ctx, updated)
	})
}

// Delete removes the product together with its room types and slot
// inventory. Bookings outlive the cascade with their snapshots intact.
func (u *productUseCaseImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		rows, err := tx.Products().Delete(ctx, id)
		if err != nil {
			return errs.Wrap(err, "failed to delete product")
		}
		if rows == 0 {
			return ErrProductNotFound
		}
		return nil
	})
}

func buildProduct(in ProductInput) (*product.Product, error) {
	category, err := product.NewCategory(in.Category)
	if err != nil {
		return nil, err
	}
	hours, err := product.NewOperatingHours(in.OpenTime, in.CloseTime)
	if err != nil {
		return nil, err
	}
	return product.NewProduct(
		in.Name, in.Description, category, in.Images,
		in.PricePerSlot, in.Address, hours, in.SlotDurationMin, in.IsActive,
	)
}
