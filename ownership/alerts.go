package ownership

import (
	"context"
	"fmt"
	"time"

	"github.com/Jfdeev/reflora/models"
)

// ListAlerts returns every alert of an owned sensor, oldest first.
func (g *Guard) ListAlerts(ctx context.Context, userID, sensorID uint) ([]models.Alert, error) {
	if _, err := g.ResolveOwnedSensor(ctx, userID, sensorID); err != nil {
		return nil, err
	}
	var alerts []models.Alert
	err := g.db.WithContext(ctx).
		Where("sensor_id = ?", sensorID).
		Order("timestamp, id").
		Find(&alerts).Error
	if err != nil {
		return nil, fmt.Errorf("list alerts of sensor %d: %w", sensorID, err)
	}
	return alerts, nil
}

// SensorAlert returns an alert only if it hangs off the given owned sensor.
func (g *Guard) SensorAlert(ctx context.Context, userID, sensorID, alertID uint) (*models.Alert, error) {
	alert, err := g.ResolveOwnedAlert(ctx, userID, alertID)
	if err != nil {
		return nil, err
	}
	if alert.SensorID != sensorID {
		return nil, ErrNotFound
	}
	return alert, nil
}

// CreateAlert records a manual alert on an owned sensor.
func (g *Guard) CreateAlert(ctx context.Context, userID, sensorID uint, req models.AlertRequest) (*models.Alert, error) {
	if _, err := g.ResolveOwnedSensor(ctx, userID, sensorID); err != nil {
		return nil, err
	}
	alert := models.Alert{
		SensorID:  sensorID,
		Message:   req.Message,
		Level:     req.Level,
		Timestamp: time.Now().UTC(),
	}
	if err := g.db.WithContext(ctx).Create(&alert).Error; err != nil {
		return nil, fmt.Errorf("create alert: %w", err)
	}
	return &alert, nil
}

// UpdateAlert overwrites the message and level of an owned alert.
func (g *Guard) UpdateAlert(ctx context.Context, userID, alertID uint, req models.AlertRequest) (*models.Alert, error) {
	alert, err := g.ResolveOwnedAlert(ctx, userID, alertID)
	if err != nil {
		return nil, err
	}
	err = g.db.WithContext(ctx).
		Model(&models.Alert{}).
		Where("id = ? AND sensor_id = ?", alert.ID, alert.SensorID).
		Updates(map[string]interface{}{"message": req.Message, "level": req.Level}).Error
	if err != nil {
		return nil, fmt.Errorf("update alert %d: %w", alertID, err)
	}
	return g.ResolveOwnedAlert(ctx, userID, alertID)
}

// DeleteAlert removes an owned alert.
func (g *Guard) DeleteAlert(ctx context.Context, userID, alertID uint) error {
	alert, err := g.ResolveOwnedAlert(ctx, userID, alertID)
	if err != nil {
		return err
	}
	result := g.db.WithContext(ctx).
		Where("id = ? AND sensor_id = ?", alert.ID, alert.SensorID).
		Delete(&models.Alert{})
	if result.Error != nil {
		return fmt.Errorf("delete alert %d: %w", alertID, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
