//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx,
		"INSERT INTO users (id, email, name, role) VALUES ($1, $2, $3, $4) ON CONFLICT (email) DO NOTHING",
		userID, email, "Test User", role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		err = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
		require.NoError(t, err)
	}

	return userID
}

func CreateTestProduct(t *testing.T, db DBLike, name, category, openTime, closeTime string, slotDurationMin int, pricePerSlot int32) uuid.UUID {
	t.Helper()

	productID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, `
		INSERT INTO products (id, name, category, price_per_slot, open_time, close_time, slot_duration_min, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, true)`,
		productID, name, category, pricePerSlot, openTime, closeTime, slotDurationMin)
	require.NoError(t, err)

	return productID
}

func CreateTestRoomType(t *testing.T, db DBLike, productID uuid.UUID, name string, price int32, capacity int) uuid.UUID {
	t.Helper()

	roomTypeID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, `
		INSERT INTO room_types (id, product_id, name, price, capacity, is_active)
		VALUES ($1, $2, $3, $4, $5, true)`,
		roomTypeID, productID, name, price, capacity)
	require.NoError(t, err)

	return roomTypeID
}

func CreateTestSlot(t *testing.T, db DBLike, productID uuid.UUID, roomTypeID *uuid.UUID, date, startTime, endTime, status string) uuid.UUID {
	t.Helper()

	slotID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, `
		INSERT INTO time_slots (id, product_id, room_type_id, date, start_time, end_time, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		slotID, productID, roomTypeID, date, startTime, endTime, status)
	require.NoError(t, err)

	return slotID
}

func SlotStatus(t *testing.T, db DBLike, slotID uuid.UUID) string {
	t.Helper()

	var status string
	err := db.QueryRow(context.Background(), "SELECT status FROM time_slots WHERE id = $1", slotID).Scan(&status)
	require.NoError(t, err)
	return status
}

func BookingStatus(t *testing.T, db DBLike, bookingID uuid.UUID) string {
	t.Helper()

	var status string
	err := db.QueryRow(context.Background(), "SELECT status FROM bookings WHERE id = $1", bookingID).Scan(&status)
	require.NoError(t, err)
	return status
}

func SetProductActive(t *testing.T, db DBLike, productID uuid.UUID, active bool) {
	t.Helper()

	_, err := db.Exec(context.Background(), "UPDATE products SET is_active = $1 WHERE id = $2", active, productID)
	require.NoError(t, err)
}

func SetRoomTypeActive(t *testing.T, db DBLike, roomTypeID uuid.UUID, active bool) {
	t.Helper()

	_, err := db.Exec(context.Background(), "UPDATE room_types SET is_active = $1 WHERE id = $2", active, roomTypeID)
	require.NoError(t, err)
}

func CountSlots(t *testing.T, db DBLike, productID uuid.UUID) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM time_slots WHERE product_id = $1", productID).Scan(&n)
	require.NoError(t, err)
	return n
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables between subtests
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}
	return nil
}
