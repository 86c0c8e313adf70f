package db

import (
	"github.com/velora-live/velora/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
}

func Migrate(conn *gorm.DB) error {
	tables := []interface{}{
		&models.User{},
		&models.Relation{},
		&models.Profile{},
		&models.Agency{},
		&models.AgencyMember{},
		&models.AgencyHistory{},
		&models.Group{},
		&models.GroupMember{},
		&models.GroupInvitation{},
		&models.Item{},
		&models.StoreSection{},
		&models.CreditsHistory{},
		&models.PointEvent{},
		&models.LevelThreshold{},
	}

	migrator := conn.Migrator()

	for _, table := range tables {
		if !migrator.HasTable(table) {
			if err := conn.AutoMigrate(table); err != nil {
				return err
			}
		}
	}

	return nil
}
