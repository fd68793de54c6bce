package ownership

import (
	"context"
	"fmt"
	"time"

	"github.com/Jfdeev/reflora/models"
	"github.com/Jfdeev/reflora/utils"

	"gorm.io/gorm"
)

// CreateSensor registers a sensor owned by userID with a fresh webhook token.
func (g *Guard) CreateSensor(ctx context.Context, userID uint, req models.SensorRequest) (*models.Sensor, error) {
	owner := userID
	return g.insertSensor(ctx, &owner, req)
}

// ProvisionSensor registers an unowned sensor. It can only report through
// its webhook token until someone claims it.
func (g *Guard) ProvisionSensor(ctx context.Context, req models.SensorRequest) (*models.Sensor, error) {
	return g.insertSensor(ctx, nil, req)
}

func (g *Guard) insertSensor(ctx context.Context, owner *uint, req models.SensorRequest) (*models.Sensor, error) {
	sensor := models.Sensor{
		UserID:           owner,
		SensorName:       req.SensorName,
		Location:         req.Location,
		InstallationDate: time.Now().UTC(),
		WebhookToken:     utils.NewWebhookToken(),
	}
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if owner != nil {
			if err := g.WithTx(tx).Locking().requireUser(ctx, *owner); err != nil {
				return err
			}
		}
		if err := tx.Create(&sensor).Error; err != nil {
			return fmt.Errorf("create sensor: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sensor, nil
}

// ListSensors returns the sensors owned by userID.
func (g *Guard) ListSensors(ctx context.Context, userID uint) ([]models.Sensor, error) {
	var sensors []models.Sensor
	err := g.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&sensors).Error
	if err != nil {
		return nil, fmt.Errorf("list sensors: %w", err)
	}
	return sensors, nil
}

// UpdateSensor renames or relocates an owned sensor.
func (g *Guard) UpdateSensor(ctx context.Context, userID, sensorID uint, req models.SensorRequest) (*models.Sensor, error) {
	if _, err := g.ResolveOwnedSensor(ctx, userID, sensorID); err != nil {
		return nil, err
	}
	err := g.db.WithContext(ctx).
		Model(&models.Sensor{}).
		Where("id = ? AND user_id = ?", sensorID, userID).
		Updates(map[string]interface{}{"sensor_name": req.SensorName, "location": req.Location}).Error
	if err != nil {
		return nil, fmt.Errorf("update sensor %d: %w", sensorID, err)
	}
	return g.ResolveOwnedSensor(ctx, userID, sensorID)
}

// DeleteSensor removes an owned sensor together with its readings and alerts.
// The sensor row is locked first, so an ingestion holding it cannot commit
// children behind the delete.
func (g *Guard) DeleteSensor(ctx context.Context, userID, sensorID uint) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := g.WithTx(tx).exclusive().ResolveOwnedSensor(ctx, userID, sensorID); err != nil {
			return err
		}
		if err := tx.Where("sensor_id = ?", sensorID).Delete(&models.Alert{}).Error; err != nil {
			return fmt.Errorf("delete alerts of sensor %d: %w", sensorID, err)
		}
		if err := tx.Where("sensor_id = ?", sensorID).Delete(&models.Reading{}).Error; err != nil {
			return fmt.Errorf("delete readings of sensor %d: %w", sensorID, err)
		}
		result := tx.Where("id = ? AND user_id = ?", sensorID, userID).Delete(&models.Sensor{})
		if result.Error != nil {
			return fmt.Errorf("delete sensor %d: %w", sensorID, result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
