package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToday_UsesCalendarDateOfZone(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*3600)
	// 2026-03-01 01:30 WIB masih 2026-02-28 di UTC
	now := time.Date(2026, 3, 1, 1, 30, 0, 0, jakarta)

	today := Fixed(now).Today()

	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), today)
}

func TestParseDate_ComparableWithToday(t *testing.T) {
	c := Fixed(time.Date(2026, 5, 10, 23, 59, 0, 0, time.UTC))

	d, err := ParseDate("2026-05-10")
	assert.NoError(t, err)
	assert.True(t, d.Equal(c.Today()))

	tomorrow, _ := ParseDate("2026-05-11")
	assert.True(t, tomorrow.After(c.Today()))
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := ParseDate("10/05/2026")
	assert.Error(t, err)
}
