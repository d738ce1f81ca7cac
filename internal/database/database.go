package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"sira-backend/internal/model"
)

// Open connects to PostgreSQL and runs schema migration. TranslateError is
// enabled so driver constraint violations surface as gorm.ErrDuplicatedKey /
// gorm.ErrForeignKeyViolated and can be mapped to the error taxonomy.
func Open(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the schema for every entity, plus the
// descending index on medicion.fecha_hora that serves "most recent reading"
// queries. Shared with the test suites, which run it against sqlite.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Client{},
		&model.Locality{},
		&model.Parcel{},
		&model.Crop{},
		&model.Greenhouse{},
		&model.OptimalParameters{},
		&model.SensorType{},
		&model.Sensor{},
		&model.Measurement{},
		&model.ActuatorType{},
		&model.Actuator{},
		&model.ActuatorAction{},
		&model.IrrigationRecommendation{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}

	// AutoMigrate only creates ascending indexes.
	if err := db.Exec(
		"CREATE INDEX IF NOT EXISTS idx_medicion_fecha_hora_desc ON medicion (fecha_hora DESC)",
	).Error; err != nil {
		return fmt.Errorf("create medicion timestamp index: %w", err)
	}

	return nil
}
