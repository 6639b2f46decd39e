package postgres

import (
	"cafedelivery/internal/adapters/out/postgres/caferepo"
	"cafedelivery/internal/adapters/out/postgres/cartrepo"
	"cafedelivery/internal/adapters/out/postgres/driverlocationrepo"
	"cafedelivery/internal/adapters/out/postgres/orderrepo"
	"cafedelivery/internal/adapters/out/postgres/outboxrepo"

	"gorm.io/gorm"
)

// Migrate brings the schema up to date. It is safe to run on every start.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&caferepo.CafeDTO{},
		&caferepo.StaffAssignmentDTO{},
		&caferepo.MenuItemDTO{},
		&cartrepo.CartItemDTO{},
		&driverlocationrepo.LocationRecordDTO{},
		&outboxrepo.MessageDTO{},
	)
	if err != nil {
		return err
	}
	return orderrepo.Migrate(db)
}
