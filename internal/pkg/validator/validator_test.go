package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.False(t, IsEmpty("x"))
}

func TestIsValidDate(t *testing.T) {
	date, ok := IsValidDate("2025-02-28")
	assert.True(t, ok)
	assert.Equal(t, 28, date.Day())

	_, ok = IsValidDate("2025-02-30")
	assert.False(t, ok)

	_, ok = IsValidDate("28-02-2025")
	assert.False(t, ok)

	_, ok = IsValidDate("")
	assert.False(t, ok)
}

func TestIsValidMonth(t *testing.T) {
	month, ok := IsValidMonth("2025-02")
	assert.True(t, ok)
	assert.Equal(t, 2025, month.Year())

	_, ok = IsValidMonth("2025-13")
	assert.False(t, ok)

	_, ok = IsValidMonth("2025-02-01")
	assert.False(t, ok)
}

func TestCoordinateRanges(t *testing.T) {
	assert.True(t, IsValidLatitude(0))
	assert.True(t, IsValidLatitude(-90))
	assert.True(t, IsValidLatitude(90))
	assert.False(t, IsValidLatitude(90.01))
	assert.False(t, IsValidLatitude(-91))

	assert.True(t, IsValidLongitude(180))
	assert.True(t, IsValidLongitude(-180))
	assert.False(t, IsValidLongitude(180.5))
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "date", Message: "date is required"},
		{Field: "worker_id", Message: "worker_id is required"},
	}

	assert.Contains(t, errs.Error(), "date: date is required")
	assert.Contains(t, errs.Error(), "worker_id: worker_id is required")

	m := errs.ToMap()
	assert.Equal(t, "date is required", m["date"])
	assert.Len(t, m, 2)
}
