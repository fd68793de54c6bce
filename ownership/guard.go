// Package ownership resolves every sensor, reading and alert through the
// chain Reading/Alert -> Sensor -> User before anything reads or writes it.
// A record that exists but belongs to someone else is reported exactly like a
// record that does not exist.
package ownership

import (
	"context"
	"errors"
	"fmt"

	"github.com/Jfdeev/reflora/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrNotClaimable = errors.New("sensor not found or already assigned")
	ErrEmailTaken   = errors.New("email already in use")
	ErrUnknownUser  = errors.New("user no longer exists")
)

// Guard is safe for concurrent use; it holds no state besides the handle.
type Guard struct {
	db   *gorm.DB
	lock string
}

func NewGuard(db *gorm.DB) *Guard {
	return &Guard{db: db}
}

// WithTx returns a guard that runs its queries inside tx.
func (g *Guard) WithTx(tx *gorm.DB) *Guard {
	return &Guard{db: tx, lock: g.lock}
}

// Locking returns a guard whose sensor lookups take a shared row lock, so the
// sensor cannot be deleted before the surrounding transaction commits.
func (g *Guard) Locking() *Guard {
	return &Guard{db: g.db, lock: "SHARE"}
}

// exclusive locks the resolved rows against concurrent ingestion until the
// surrounding transaction ends. Only meaningful inside WithTx.
func (g *Guard) exclusive() *Guard {
	return &Guard{db: g.db, lock: "UPDATE"}
}

func (g *Guard) query(ctx context.Context) *gorm.DB {
	q := g.db.WithContext(ctx)
	if g.lock != "" {
		q = q.Clauses(clause.Locking{Strength: g.lock})
	}
	return q
}

// requireUser fails with ErrUnknownUser once the account behind a still
// valid credential has been deleted. Under a locking guard the user row stays
// locked until the transaction ends.
func (g *Guard) requireUser(ctx context.Context, userID uint) error {
	var user models.User
	err := g.query(ctx).Select("id").First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUnknownUser
	}
	if err != nil {
		return fmt.Errorf("load user %d: %w", userID, err)
	}
	return nil
}

// ResolveOwnedSensor returns the sensor if and only if userID owns it.
func (g *Guard) ResolveOwnedSensor(ctx context.Context, userID, sensorID uint) (*models.Sensor, error) {
	var sensor models.Sensor
	err := g.query(ctx).
		Where("id = ? AND user_id = ?", sensorID, userID).
		First(&sensor).Error
	if err != nil {
		return nil, lookupErr("sensor", sensorID, err)
	}
	return &sensor, nil
}

// ResolveOwnedReading resolves the sensor first and only then looks the
// reading up under it.
func (g *Guard) ResolveOwnedReading(ctx context.Context, userID, sensorID, readingID uint) (*models.Reading, error) {
	if _, err := g.ResolveOwnedSensor(ctx, userID, sensorID); err != nil {
		return nil, err
	}
	var reading models.Reading
	err := g.db.WithContext(ctx).
		Where("id = ? AND sensor_id = ?", readingID, sensorID).
		First(&reading).Error
	if err != nil {
		return nil, lookupErr("reading", readingID, err)
	}
	return &reading, nil
}

// ResolveOwnedAlert looks the alert up joined to its sensor, filtered by the
// sensor's owner.
func (g *Guard) ResolveOwnedAlert(ctx context.Context, userID, alertID uint) (*models.Alert, error) {
	var alert models.Alert
	err := g.db.WithContext(ctx).
		Select("alerts.*").
		Joins("JOIN sensors ON sensors.id = alerts.sensor_id").
		Where("alerts.id = ? AND sensors.user_id = ?", alertID, userID).
		First(&alert).Error
	if err != nil {
		return nil, lookupErr("alert", alertID, err)
	}
	return &alert, nil
}

// SensorByToken resolves a sensor from its webhook token. This is the only
// lookup that does not start from a user.
func (g *Guard) SensorByToken(ctx context.Context, token string) (*models.Sensor, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	var sensor models.Sensor
	err := g.query(ctx).
		Where("webhook_token = ?", token).
		First(&sensor).Error
	if err != nil {
		return nil, lookupErr("sensor token", 0, err)
	}
	return &sensor, nil
}

func lookupErr(what string, id uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("load %s %d: %w", what, id, err)
}
