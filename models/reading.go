package models

import (
	"time"

	"gorm.io/datatypes"
)

// Reading is one sample of every metric from a sensor. Levels is derived
// from the metric values and must only ever be written from the evaluator.
type Reading struct {
	ID       uint `json:"sensorDataId" gorm:"primaryKey"`
	SensorID uint `json:"sensorId" gorm:"index;not null"`
	Metrics  `gorm:"embedded"`
	Levels   datatypes.JSONMap `json:"levels"`
	DateTime time.Time         `json:"dateTime" gorm:"index"`

	Sensor *Sensor `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
