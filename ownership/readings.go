package ownership

import (
	"context"
	"fmt"

	"github.com/Jfdeev/reflora/models"
)

// ListReadings returns the readings of an owned sensor, oldest first.
func (g *Guard) ListReadings(ctx context.Context, userID, sensorID uint) ([]models.Reading, error) {
	if _, err := g.ResolveOwnedSensor(ctx, userID, sensorID); err != nil {
		return nil, err
	}
	var readings []models.Reading
	err := g.db.WithContext(ctx).
		Where("sensor_id = ?", sensorID).
		Order("date_time, id").
		Find(&readings).Error
	if err != nil {
		return nil, fmt.Errorf("list readings of sensor %d: %w", sensorID, err)
	}
	return readings, nil
}

// DeleteReading removes one reading of an owned sensor.
func (g *Guard) DeleteReading(ctx context.Context, userID, sensorID, readingID uint) error {
	if _, err := g.ResolveOwnedReading(ctx, userID, sensorID, readingID); err != nil {
		return err
	}
	result := g.db.WithContext(ctx).
		Where("id = ? AND sensor_id = ?", readingID, sensorID).
		Delete(&models.Reading{})
	if result.Error != nil {
		return fmt.Errorf("delete reading %d: %w", readingID, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
