//go:build unit

package product_test

import (
	"testing"

	"slotbook/internal/domain/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "normal time", input: "09:30", want: "09:30"},
		{name: "midnight", input: "00:00", want: "00:00"},
		{name: "last minute", input: "23:59", want: "23:59"},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "minute out of range", input: "12:60", wantErr: true},
		{name: "missing separator", input: "0930", wantErr: true},
		{name: "too short", input: "9:30", wantErr: true},
		{name: "letters", input: "ab:cd", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := product.ParseClockTime(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, product.ErrInvalidClockTime)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestOperatingHoursWrapsMidnight(t *testing.T) {
	tests := []struct {
		name  string
		open  string
		close string
		wraps bool
	}{
		{name: "daytime window", open: "09:00", close: "22:00", wraps: false},
		{name: "overnight window", open: "15:00", close: "11:00", wraps: true},
		{name: "open equals close", open: "10:00", close: "10:00", wraps: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hours, err := product.NewOperatingHours(tt.open, tt.close)
			require.NoError(t, err)
			assert.Equal(t, tt.wraps, hours.WrapsMidnight())
		})
	}
}

func TestClassify(t *testing.T) {
	daytime, err := product.NewOperatingHours("09:00", "22:00")
	require.NoError(t, err)
	overnight, err := product.NewOperatingHours("15:00", "11:00")
	require.NoError(t, err)

	tests := []struct {
		name     string
		category product.Category
		hours    product.OperatingHours
		want     product.Kind
	}{
		{name: "pension is always overnight", category: product.CategoryPension, hours: daytime, want: product.KindOvernight},
		{name: "hotel is always overnight", category: product.CategoryHotel, hours: overnight, want: product.KindOvernight},
		{name: "space with daytime hours is timed", category: product.CategorySpace, hours: daytime, want: product.KindTimed},
		{name: "space wrapping midnight is overnight", category: product.CategorySpace, hours: overnight, want: product.KindOvernight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, product.Classify(tt.category, tt.hours))
		})
	}
}
