// Package ingest stores incoming readings and the alerts the evaluator
// raises for them.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Jfdeev/reflora/models"
	"github.com/Jfdeev/reflora/ownership"
	"github.com/Jfdeev/reflora/utils"

	"gorm.io/gorm"
)

var (
	ErrMissingMetrics = errors.New("all seven metrics are required")
	ErrUnknownToken   = errors.New("unknown webhook token")
)

// GeneratedAlert is an alert persisted by one ingestion call.
type GeneratedAlert struct {
	AlertID uint `json:"alertId"`
	models.AlertCandidate
}

// Result is what a single ingestion produced: the stored reading and exactly
// the alerts raised for it.
type Result struct {
	Reading models.Reading   `json:"reading"`
	Alerts  []GeneratedAlert `json:"alerts"`
}

type Ingestor struct {
	db    *gorm.DB
	guard *ownership.Guard
	table utils.ThresholdTable
	now   func() time.Time
}

// New returns an ingestor evaluating readings against table.
func New(db *gorm.DB, table utils.ThresholdTable) *Ingestor {
	return &Ingestor{
		db:    db,
		guard: ownership.NewGuard(db).Locking(),
		table: table,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// IngestForUser stores a reading for a sensor the caller owns.
func (in *Ingestor) IngestForUser(ctx context.Context, userID, sensorID uint, input models.MetricsInput) (*Result, error) {
	metrics, ok := input.Metrics()
	if !ok {
		return nil, ErrMissingMetrics
	}
	var result *Result
	err := in.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sensor, err := in.guard.WithTx(tx).ResolveOwnedSensor(ctx, userID, sensorID)
		if err != nil {
			return err
		}
		result, err = in.store(tx, sensor, metrics, input.DateTime)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// IngestByToken stores a reading for the sensor holding token. The token is
// the only credential; the sensor may be unowned.
func (in *Ingestor) IngestByToken(ctx context.Context, token string, input models.MetricsInput) (*Result, error) {
	metrics, ok := input.Metrics()
	if !ok {
		return nil, ErrMissingMetrics
	}
	var result *Result
	err := in.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sensor, err := in.guard.WithTx(tx).SensorByToken(ctx, token)
		if errors.Is(err, ownership.ErrNotFound) {
			return ErrUnknownToken
		}
		if err != nil {
			return err
		}
		result, err = in.store(tx, sensor, metrics, input.DateTime)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// store writes the reading and then one alert per candidate, all in tx.
func (in *Ingestor) store(tx *gorm.DB, sensor *models.Sensor, metrics models.Metrics, capturedAt *time.Time) (*Result, error) {
	now := in.now()
	reading := models.Reading{
		SensorID: sensor.ID,
		Metrics:  metrics,
		Levels:   utils.Levels(in.table, metrics),
		DateTime: now,
	}
	if capturedAt != nil && !capturedAt.IsZero() {
		reading.DateTime = capturedAt.UTC()
	}
	if err := tx.Create(&reading).Error; err != nil {
		return nil, fmt.Errorf("create reading for sensor %d: %w", sensor.ID, err)
	}

	result := &Result{Reading: reading, Alerts: []GeneratedAlert{}}
	for _, candidate := range utils.Evaluate(in.table, metrics) {
		alert := models.Alert{
			SensorID:  sensor.ID,
			Message:   candidate.Message,
			Level:     candidate.Level,
			Timestamp: now,
		}
		if err := tx.Create(&alert).Error; err != nil {
			return nil, fmt.Errorf("create %s alert for sensor %d: %w", candidate.Metric, sensor.ID, err)
		}
		result.Alerts = append(result.Alerts, GeneratedAlert{AlertID: alert.ID, AlertCandidate: candidate})
	}
	return result, nil
}

// UpdateReading overwrites the supplied metrics of an owned reading in place
// and recomputes its levels. Updates never raise alerts.
func (in *Ingestor) UpdateReading(ctx context.Context, userID, sensorID, readingID uint, patch models.ReadingPatch) (*models.Reading, error) {
	var updated *models.Reading
	err := in.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reading, err := in.guard.WithTx(tx).ResolveOwnedReading(ctx, userID, sensorID, readingID)
		if err != nil {
			return err
		}
		reading.Metrics = patch.Apply(reading.Metrics)
		reading.Levels = utils.Levels(in.table, reading.Metrics)

		m := reading.Metrics
		err = tx.Model(&models.Reading{}).
			Where("id = ? AND sensor_id = ?", readingID, sensorID).
			Updates(map[string]interface{}{
				"soil_humidity": m.SoilHumidity,
				"temperature":   m.Temperature,
				"condutivity":   m.Condutivity,
				"ph":            m.Ph,
				"nitrogen":      m.Nitrogen,
				"phosphorus":    m.Phosphorus,
				"potassium":     m.Potassium,
				"levels":        reading.Levels,
			}).Error
		if err != nil {
			return fmt.Errorf("update reading %d: %w", readingID, err)
		}
		updated = reading
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
