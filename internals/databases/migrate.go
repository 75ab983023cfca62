package database

import (
	"log"

	"github.com/pressly/goose/v3"

	_ "eventos_backend/internals/databases/migrations"
)

// MigrateDatabase aplica las migraciones goose registradas vía init().
func MigrateDatabase() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.Up(sqlDB, "."); err != nil {
		return err
	}
	log.Println("✅ Migraciones aplicadas.")
	return nil
}
