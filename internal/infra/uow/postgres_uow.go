package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"slotbook/internal/domain/booking"
	"slotbook/internal/domain/product"
	"slotbook/internal/domain/slot"
	"slotbook/internal/infra"
	"slotbook/internal/infra/db"
	"slotbook/internal/infra/repository"
	"slotbook/internal/pkg/errs"
	"slotbook/internal/pkg/pgconv"
	"slotbook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool *pgxpool.Pool
}

func NewPostgresUoW(pool *pgxpool.Pool) shared.UnitOfWork {
	return &PostgresUoW{pool: pool}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes; the
// conditional UPDATEs in the repositories provide the per-row exclusion.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return &commandReads{dbtx: u.pool}
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		tx := &pgTx{dbtx: pgxTx}

		err = fn(ctx, tx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	// Mask the high bit so the conversion stays positive
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx db.DBTX

	// Lazy-initialized repositories
	slotRepo     shared.SlotRepository
	bookingRepo  shared.BookingRepository
	productRepo  shared.ProductRepository
	roomTypeRepo shared.RoomTypeRepository
	reads        shared.CommandReads
}

func (t *pgTx) Slots() shared.SlotRepository {
	if t.slotRepo == nil {
		t.slotRepo = repository.NewSlotRepository(t.dbtx)
	}
	return t.slotRepo
}

func (t *pgTx) Bookings() shared.BookingRepository {
	if t.bookingRepo == nil {
		t.bookingRepo = repository.NewBookingRepository(t.dbtx)
	}
	return t.bookingRepo
}

func (t *pgTx) Products() shared.ProductRepository {
	if t.productRepo == nil {
		t.productRepo = repository.NewProductRepository(t.dbtx)
	}
	return t.productRepo
}

func (t *pgTx) RoomTypes() shared.RoomTypeRepository {
	if t.roomTypeRepo == nil {
		t.roomTypeRepo = repository.NewRoomTypeRepository(t.dbtx)
	}
	return t.roomTypeRepo
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.reads == nil {
		t.reads = &commandReads{dbtx: t.dbtx}
	}
	return t.reads
}

type commandReads struct {
	dbtx db.DBTX
}

func (r *commandReads) ProductByID(ctx context.Context, id uuid.UUID) (*shared.ProductSnapshot, error) {
	var snap shared.ProductSnapshot
	var category string
	err := r.dbtx.QueryRow(ctx, `
		SELECT id, name, category, open_time, close_time, slot_duration_min, price_per_slot, is_active
		FROM products WHERE id = $1`, id).
		Scan(&snap.ID, &snap.Name, &category, &snap.OpenTime, &snap.CloseTime,
			&snap.SlotDurationMin, &snap.PricePerSlot, &snap.IsActive)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find product", err)
	}
	cat, err := product.NewCategory(category)
	if err != nil {
		return nil, infra.WrapRepoErr("stored product category is invalid", err)
	}
	snap.Category = cat
	return &snap, nil
}

func (r *commandReads) RoomTypeByID(ctx context.Context, id uuid.UUID) (*shared.RoomTypeSnapshot, error) {
	var snap shared.RoomTypeSnapshot
	err := r.dbtx.QueryRow(ctx, `
		SELECT id, product_id, name, price, is_active
		FROM room_types WHERE id = $1`, id).
		Scan(&snap.ID, &snap.ProductID, &snap.Name, &snap.Price, &snap.IsActive)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("room type not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room type", err)
	}
	return &snap, nil
}

func (r *commandReads) BookingByID(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	var (
		snap       shared.BookingSnapshot
		timeSlotID pgtype.UUID
		groupID    pgtype.UUID
		status     string
	)
	err := r.dbtx.QueryRow(ctx, `
		SELECT id, user_id, time_slot_id, group_id, status
		FROM bookings WHERE id = $1`, id).
		Scan(&snap.ID, &snap.UserID, &timeSlotID, &groupID, &status)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	snap.TimeSlotID = pgconv.UUIDPtrFromPgtype(timeSlotID)
	snap.GroupID = pgconv.UUIDPtrFromPgtype(groupID)
	st, err := booking.NewStatus(status)
	if err != nil {
		return nil, infra.WrapRepoErr("stored booking status is invalid", err)
	}
	snap.Status = st
	return &snap, nil
}

func (r *commandReads) SlotByID(ctx context.Context, id uuid.UUID) (*shared.SlotSnapshot, error) {
	var (
		snap       shared.SlotSnapshot
		roomTypeID pgtype.UUID
		status     string
	)
	err := r.dbtx.QueryRow(ctx, `
		SELECT id, product_id, room_type_id, status
		FROM time_slots WHERE id = $1`, id).
		Scan(&snap.ID, &snap.ProductID, &roomTypeID, &status)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("slot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find slot", err)
	}
	snap.RoomTypeID = pgconv.UUIDPtrFromPgtype(roomTypeID)
	st, err := slot.NewStatus(status)
	if err != nil {
		return nil, infra.WrapRepoErr("stored slot status is invalid", err)
	}
	snap.Status = st
	return &snap, nil
}

func (r *commandReads) SlotPricing(ctx context.Context, slotIDs []uuid.UUID) ([]shared.SlotPricing, error) {
	rows, err := r.dbtx.Query(ctx, `
		SELECT ts.id, rt.name, COALESCE(rt.price, p.price_per_slot)
		FROM time_slots ts
		JOIN products p ON p.id = ts.product_id
		LEFT JOIN room_types rt ON rt.id = ts.room_type_id
		WHERE ts.id = ANY($1)`, slotIDs)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load slot pricing", err)
	}
	defer rows.Close()

	var result []shared.SlotPricing
	for rows.Next() {
		var (
			sp           shared.SlotPricing
			roomTypeName pgtype.Text
		)
		if err := rows.Scan(&sp.SlotID, &roomTypeName, &sp.Price); err != nil {
			return nil, infra.WrapRepoErr("failed to scan slot pricing", err)
		}
		sp.RoomTypeName = pgconv.StringPtrFromPgtype(roomTypeName)
		result = append(result, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate slot pricing", err)
	}
	return result, nil
}
