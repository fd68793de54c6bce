package config

import (
	"fmt"
	"strings"

	"github.com/Jfdeev/reflora/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open connects to the database selected by driver.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(sqliteDSN(dsn))
	default:
		return nil, fmt.Errorf("unsupported db_driver %q", driver)
	}
	// TranslateError turns unique violations into gorm.ErrDuplicatedKey
	// regardless of the driver.
	return gorm.Open(dialector, &gorm.Config{TranslateError: true})
}

// Migrate runs the database migrations
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Sensor{}, &models.Reading{}, &models.Alert{})
}

// sqliteDSN turns on foreign key enforcement, which SQLite leaves off per
// connection unless asked.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys=") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_foreign_keys=on"
}
