package prescription

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidUntilIsThirtyDaysAfterPrescribed(t *testing.T) {
	manila, err := time.LoadLocation("Asia/Manila")
	if err != nil {
		manila = time.FixedZone("PHT", 8*3600)
	}

	days := []time.Time{
		time.Date(2026, 1, 15, 23, 59, 0, 0, manila),
		time.Date(2026, 2, 10, 8, 0, 0, 0, manila),
		time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC),
		time.Date(2026, 12, 20, 0, 0, 0, 0, time.UTC),
	}

	for _, now := range days {
		prescribed := PrescribedDate(now)
		until := ValidUntil(prescribed)

		assert.Equal(t, 30*24*time.Hour, until.Sub(prescribed), now)
		assert.Equal(t, 0, prescribed.Hour())
	}
}

func TestGenerateNumber(t *testing.T) {
	now := time.Date(2026, 10, 15, 9, 0, 0, 123456789, time.UTC)

	a := GenerateNumber(now)
	b := GenerateNumber(now.Add(time.Nanosecond))

	assert.True(t, strings.HasPrefix(a, "RX-"))
	assert.Equal(t, strings.ToUpper(a), a)
	assert.NotEqual(t, a, b)
}

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusExpired.Valid())
	assert.False(t, Status("draft").Valid())
}
