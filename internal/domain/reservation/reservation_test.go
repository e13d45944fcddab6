package reservation

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReservation(t *testing.T) *Reservation {
	t.Helper()
	r, err := NewReservation(uuid.New(), "RSV-202603-00001", uuid.New(), "Nimal Perera",
		date(2026, 3, 10), date(2026, 3, 13))
	require.NoError(t, err)
	return r
}

func TestNewReservation(t *testing.T) {
	propertyID := uuid.New()
	guestID := uuid.New()

	t.Run("creates confirmed reservation", func(t *testing.T) {
		r, err := NewReservation(propertyID, "RSV-202603-00001", guestID, "Nimal Perera",
			date(2026, 3, 10), date(2026, 3, 13))

		require.NoError(t, err)
		assert.Equal(t, ReservationStatusConfirmed, r.Status)
		assert.Equal(t, 3, r.Nights())
		assert.True(t, r.AcceptsPostings())
		assert.Len(t, r.GetDomainEvents(), 1)
	})

	t.Run("allows zero-night stay", func(t *testing.T) {
		r, err := NewReservation(propertyID, "RSV-202603-00002", guestID, "Nimal Perera",
			date(2026, 3, 10), date(2026, 3, 10))

		require.NoError(t, err)
		assert.Equal(t, 0, r.Nights())
	})

	t.Run("rejects check-out before check-in", func(t *testing.T) {
		r, err := NewReservation(propertyID, "RSV-202603-00003", guestID, "Nimal Perera",
			date(2026, 3, 13), date(2026, 3, 10))

		assert.Error(t, err)
		assert.Nil(t, r)
	})

	t.Run("rejects empty code", func(t *testing.T) {
		r, err := NewReservation(propertyID, "", guestID, "Nimal Perera",
			date(2026, 3, 10), date(2026, 3, 13))

		assert.Error(t, err)
		assert.Nil(t, r)
	})
}

func TestReservationAddRoom(t *testing.T) {
	r := newTestReservation(t)
	roomID := uuid.New()

	t.Run("adds room with rate snapshot", func(t *testing.T) {
		line, err := r.AddRoom(roomID, "101", "double", decimal.NewFromInt(5000))

		require.NoError(t, err)
		assert.Equal(t, "101", line.RoomNumber)
		assert.True(t, line.NightlyRate.Equal(decimal.NewFromInt(5000)))
		assert.Len(t, r.Rooms, 1)
	})

	t.Run("rejects duplicate room", func(t *testing.T) {
		_, err := r.AddRoom(roomID, "101", "double", decimal.NewFromInt(5000))

		assert.Error(t, err)
	})

	t.Run("rejects rooms on a cancelled reservation", func(t *testing.T) {
		require.NoError(t, r.Cancel("guest request"))

		_, err := r.AddRoom(uuid.New(), "102", "twin", decimal.NewFromInt(4000))
		assert.Error(t, err)
	})
}

func TestReservationCancel(t *testing.T) {
	t.Run("cancels with reason and timestamp", func(t *testing.T) {
		r := newTestReservation(t)
		r.ClearDomainEvents()

		err := r.Cancel("guest request")

		require.NoError(t, err)
		assert.Equal(t, ReservationStatusCancelled, r.Status)
		assert.Equal(t, "guest request", r.CancelReason)
		assert.NotNil(t, r.CancelledAt)
		assert.False(t, r.AcceptsPostings())
		assert.Len(t, r.GetDomainEvents(), 1)
	})

	t.Run("requires a reason", func(t *testing.T) {
		r := newTestReservation(t)

		err := r.Cancel("  ")
		assert.Error(t, err)
	})

	t.Run("cannot cancel twice", func(t *testing.T) {
		r := newTestReservation(t)
		require.NoError(t, r.Cancel("guest request"))

		err := r.Cancel("again")
		assert.Error(t, err)
	})

	t.Run("cannot cancel after checkout", func(t *testing.T) {
		r := newTestReservation(t)
		require.NoError(t, r.Complete())

		err := r.Cancel("too late")
		assert.Error(t, err)
	})
}

func TestReservationCheckOut(t *testing.T) {
	t.Run("checks out a confirmed reservation", func(t *testing.T) {
		r := newTestReservation(t)
		r.ClearDomainEvents()

		err := r.Complete()

		require.NoError(t, err)
		assert.Equal(t, ReservationStatusCheckedOut, r.Status)
		assert.NotNil(t, r.CheckedOutAt)
		assert.False(t, r.AcceptsPostings())
	})

	t.Run("cannot check out a cancelled reservation", func(t *testing.T) {
		r := newTestReservation(t)
		require.NoError(t, r.Cancel("guest request"))

		err := r.Complete()
		assert.Error(t, err)
	})
}

func TestReservationUpdateStay(t *testing.T) {
	t.Run("changes dates on a confirmed reservation", func(t *testing.T) {
		r := newTestReservation(t)

		err := r.UpdateStay(date(2026, 3, 11), date(2026, 3, 15))

		require.NoError(t, err)
		assert.Equal(t, 4, r.Nights())
	})

	t.Run("rejects inverted dates", func(t *testing.T) {
		r := newTestReservation(t)

		err := r.UpdateStay(date(2026, 3, 15), date(2026, 3, 11))
		assert.Error(t, err)
	})

	t.Run("rejects changes on a closed reservation", func(t *testing.T) {
		r := newTestReservation(t)
		require.NoError(t, r.Complete())

		err := r.UpdateStay(date(2026, 3, 11), date(2026, 3, 15))
		assert.Error(t, err)
	})
}

func TestReservationStatusTransitions(t *testing.T) {
	cases := []struct {
		from    ReservationStatus
		to      ReservationStatus
		allowed bool
	}{
		{ReservationStatusConfirmed, ReservationStatusCancelled, true},
		{ReservationStatusConfirmed, ReservationStatusCheckedOut, true},
		{ReservationStatusCancelled, ReservationStatusConfirmed, false},
		{ReservationStatusCancelled, ReservationStatusCheckedOut, false},
		{ReservationStatusCheckedOut, ReservationStatusCancelled, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestReservationRoomValidation(t *testing.T) {
	_, err := NewReservationRoom(uuid.New(), uuid.Nil, "101", "double", decimal.NewFromInt(5000))
	assert.Error(t, err)

	_, err = NewReservationRoom(uuid.New(), uuid.New(), "", "double", decimal.NewFromInt(5000))
	assert.Error(t, err)

	_, err = NewReservationRoom(uuid.New(), uuid.New(), "101", "double", decimal.NewFromInt(-1))
	assert.Error(t, err)
}
