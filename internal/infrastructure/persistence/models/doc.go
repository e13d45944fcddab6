// Package models holds persistence models for aggregates whose storage
// layout differs from the domain shape. Flat aggregates carry their own
// GORM mapping on the domain struct and are persisted directly.
package models

import (
	"github.com/hoteldesk/backend/internal/domain/catalog"
	"github.com/hoteldesk/backend/internal/domain/finance"
	"github.com/hoteldesk/backend/internal/domain/guest"
	"github.com/hoteldesk/backend/internal/domain/identity"
	"github.com/hoteldesk/backend/internal/domain/reservation"
	"github.com/hoteldesk/backend/internal/domain/room"
)

// AllModels returns every persisted model in dependency order.
// Used by auto-migration in tests and the schema bootstrap.
func AllModels() []any {
	return []any{
		&identity.Property{},
		&identity.User{},
		&guest.Guest{},
		&guest.Document{},
		&room.Room{},
		&catalog.ServiceItem{},
		&catalog.MenuItem{},
		&ReservationModel{},
		&ReservationRoomModel{},
		&reservation.ServiceCharge{},
		&reservation.FoodCharge{},
		&reservation.Payment{},
		&reservation.Discount{},
		&finance.ExpenseRecord{},
	}
}
