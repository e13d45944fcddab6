package room

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoom(t *testing.T) {
	propertyID := uuid.New()

	t.Run("creates room successfully", func(t *testing.T) {
		r, err := NewRoom(propertyID, "101", RoomTypeDouble, 2, decimal.NewFromInt(5000))

		require.NoError(t, err)
		assert.Equal(t, "101", r.Number)
		assert.Equal(t, RoomTypeDouble, r.Type)
		assert.Equal(t, 2, r.Capacity)
		assert.Equal(t, RoomStatusActive, r.Status)
		assert.True(t, r.NightlyRate.Equal(decimal.NewFromInt(5000)))
		assert.Len(t, r.GetDomainEvents(), 1)
	})

	t.Run("fails with empty number", func(t *testing.T) {
		r, err := NewRoom(propertyID, "  ", RoomTypeDouble, 2, decimal.NewFromInt(5000))

		assert.Error(t, err)
		assert.Nil(t, r)
	})

	t.Run("fails with invalid type", func(t *testing.T) {
		r, err := NewRoom(propertyID, "101", RoomType("penthouse"), 2, decimal.NewFromInt(5000))

		assert.Error(t, err)
		assert.Nil(t, r)
	})

	t.Run("fails with non-positive capacity", func(t *testing.T) {
		r, err := NewRoom(propertyID, "101", RoomTypeDouble, 0, decimal.NewFromInt(5000))

		assert.Error(t, err)
		assert.Nil(t, r)
	})

	t.Run("fails with negative rate", func(t *testing.T) {
		r, err := NewRoom(propertyID, "101", RoomTypeDouble, 2, decimal.NewFromInt(-1))

		assert.Error(t, err)
		assert.Nil(t, r)
	})
}

func TestRoomSetNightlyRate(t *testing.T) {
	propertyID := uuid.New()
	r, _ := NewRoom(propertyID, "101", RoomTypeDouble, 2, decimal.NewFromInt(5000))
	r.ClearDomainEvents()

	t.Run("changes the list rate", func(t *testing.T) {
		err := r.SetNightlyRate(decimal.NewFromInt(6500))

		require.NoError(t, err)
		assert.True(t, r.NightlyRate.Equal(decimal.NewFromInt(6500)))
		assert.Len(t, r.GetDomainEvents(), 1)
	})

	t.Run("rejects negative rate", func(t *testing.T) {
		err := r.SetNightlyRate(decimal.NewFromInt(-100))

		assert.Error(t, err)
	})
}

func TestRoomServiceTransitions(t *testing.T) {
	propertyID := uuid.New()
	r, _ := NewRoom(propertyID, "101", RoomTypeDouble, 2, decimal.NewFromInt(5000))

	t.Run("cannot activate an active room", func(t *testing.T) {
		err := r.Activate()
		assert.Error(t, err)
	})

	t.Run("takes room out of service", func(t *testing.T) {
		err := r.TakeOutOfService()

		require.NoError(t, err)
		assert.Equal(t, RoomStatusOutOfService, r.Status)
		assert.False(t, r.IsActive())
	})

	t.Run("cannot take an out-of-service room out again", func(t *testing.T) {
		err := r.TakeOutOfService()
		assert.Error(t, err)
	})

	t.Run("reactivates the room", func(t *testing.T) {
		err := r.Activate()

		require.NoError(t, err)
		assert.True(t, r.IsActive())
	})
}
