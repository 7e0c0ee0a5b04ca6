package reservations

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marina-hms/marina/internal/platform/httpx"
)

func day(value string) time.Time {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestNights(t *testing.T) {
	assert.Equal(t, 3, Nights(day("2026-07-10"), day("2026-07-13")))
	assert.Equal(t, 1, Nights(day("2026-07-10"), day("2026-07-11")))
	assert.Equal(t, 0, Nights(day("2026-07-10"), day("2026-07-10")))
	assert.Equal(t, 0, Nights(day("2026-07-13"), day("2026-07-10")))

	// partial days round up
	late := day("2026-07-10").Add(30 * time.Hour)
	assert.Equal(t, 2, Nights(day("2026-07-10"), late))
}

func TestTotalPrice(t *testing.T) {
	assert.Equal(t, 600.0, TotalPrice(200, 3))
	assert.Equal(t, 0.0, TotalPrice(200, 0))
	assert.Equal(t, 0.0, TotalPrice(200, -1))
}

func TestValidPersonCount(t *testing.T) {
	cases := []struct {
		adults, children int
		want             bool
	}{
		{1, 0, true},
		{4, 2, true},
		{1, 5, true},
		{0, 0, false},
		{0, 3, false},
		{2, -1, false},
		{5, 2, false},
		{7, 0, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ValidPersonCount(tc.adults, tc.children),
			"adults=%d children=%d", tc.adults, tc.children)
	}
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusPending, StatusActive))
	assert.True(t, CanTransition(StatusActive, StatusCompleted))
	assert.True(t, CanTransition(StatusPending, StatusCancelled))
	assert.True(t, CanTransition(StatusActive, StatusCancelled))
	assert.True(t, CanTransition(StatusActive, StatusActive))
	assert.True(t, CanTransition(StatusCompleted, StatusCompleted))

	assert.False(t, CanTransition(StatusPending, StatusCompleted))
	assert.False(t, CanTransition(StatusCompleted, StatusActive))
	assert.False(t, CanTransition(StatusCancelled, StatusPending))
	assert.False(t, CanTransition(StatusCompleted, StatusCancelled))
	assert.False(t, CanTransition("yanlis", StatusActive))
	assert.False(t, CanTransition(StatusActive, ""))
}

func TestStayValidation(t *testing.T) {
	base := ReservationInput{
		CustomerID: 1,
		RoomID:     2,
		CheckIn:    "2026-07-10",
		CheckOut:   "2026-07-13",
		Adults:     2,
	}

	checkIn, checkOut, err := base.Stay()
	require.NoError(t, err)
	assert.Equal(t, 3, Nights(checkIn, checkOut))

	badDate := base
	badDate.CheckIn = "10.07.2026"
	_, _, err = badDate.Stay()
	assert.True(t, errors.Is(err, httpx.ErrValidation))

	reversed := base
	reversed.CheckIn, reversed.CheckOut = base.CheckOut, base.CheckIn
	_, _, err = reversed.Stay()
	assert.True(t, errors.Is(err, httpx.ErrValidation))

	sameDay := base
	sameDay.CheckOut = sameDay.CheckIn
	_, _, err = sameDay.Stay()
	assert.True(t, errors.Is(err, httpx.ErrValidation))

	crowded := base
	crowded.Adults, crowded.Children = 5, 2
	_, _, err = crowded.Stay()
	assert.True(t, errors.Is(err, httpx.ErrValidation))

	badStatus := base
	badStatus.Status = "belirsiz"
	_, _, err = badStatus.Stay()
	assert.True(t, errors.Is(err, httpx.ErrValidation))
}
