package models

import "time"

// Severity levels. LevelIdeal is never persisted as an alert.
const (
	LevelIdeal    = "Ideal"
	LevelAlert    = "Alerta"
	LevelCritical = "Crítico"
)

type Alert struct {
	ID        uint      `json:"alertId" gorm:"primaryKey"`
	SensorID  uint      `json:"sensorId" gorm:"index;not null"`
	Message   string    `json:"message" gorm:"type:text"`
	Level     string    `json:"level" gorm:"size:50"`
	Timestamp time.Time `json:"timestamp" gorm:"index"`

	Sensor *Sensor `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// AlertCandidate is produced by the evaluator for one out-of-range metric.
type AlertCandidate struct {
	Metric  string  `json:"metric"`
	Value   float64 `json:"value"`
	Level   string  `json:"level"`
	Message string  `json:"message"`
}
