package repository

import "gorm.io/gorm"

// Migrate creates the schema for every persisted model. Column definitions
// live on the private repo models, so migration does too.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&resourceModel{},
		&timeSlotModel{},
		&bookingModel{},
	)
}
