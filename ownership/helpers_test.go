package ownership

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Jfdeev/reflora/config"
	"github.com/Jfdeev/reflora/models"
	"github.com/Jfdeev/reflora/utils"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupDB opens a single-connection database, so concurrent callers queue
// for the connection instead of failing with SQLITE_BUSY.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	return openDB(t, filepath.Join(t.TempDir(), "reflora.db"), 1)
}

// setupPooledDB lets up to conns callers hit the file at once; writers wait
// on SQLite's lock for up to five seconds.
func setupPooledDB(t *testing.T, conns int) *gorm.DB {
	t.Helper()
	return openDB(t, filepath.Join(t.TempDir(), "reflora.db")+"?_busy_timeout=5000", conns)
}

func openDB(t *testing.T, dsn string, conns int) *gorm.DB {
	t.Helper()
	db, err := config.Open("sqlite", dsn)
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(conns)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{Name: email, Email: email, Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createSensor(t *testing.T, db *gorm.DB, owner *models.User) models.Sensor {
	t.Helper()
	sensor := models.Sensor{
		SensorName:       "bed",
		Location:         "greenhouse",
		InstallationDate: time.Now(),
		WebhookToken:     utils.NewWebhookToken(),
	}
	if owner != nil {
		id := owner.ID
		sensor.UserID = &id
	}
	require.NoError(t, db.Create(&sensor).Error)
	return sensor
}

func createReading(t *testing.T, db *gorm.DB, sensor models.Sensor) models.Reading {
	t.Helper()
	reading := models.Reading{SensorID: sensor.ID, Metrics: models.Metrics{Ph: 6.5}, DateTime: time.Now()}
	require.NoError(t, db.Create(&reading).Error)
	return reading
}

func createAlert(t *testing.T, db *gorm.DB, sensor models.Sensor) models.Alert {
	t.Helper()
	alert := models.Alert{SensorID: sensor.ID, Message: "ph out of ideal range (8)", Level: models.LevelCritical, Timestamp: time.Now()}
	require.NoError(t, db.Create(&alert).Error)
	return alert
}

func count(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Where(query, args...).Count(&n).Error)
	return n
}

var ctx = context.Background()
