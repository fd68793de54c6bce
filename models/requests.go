package models

import "time"

// RegisterRequest is the payload for POST /register
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest is the payload for POST /login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserRequest is the payload for PUT /user
type UpdateUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// SensorRequest is the payload for creating or renaming a sensor.
type SensorRequest struct {
	SensorName string `json:"sensorName" binding:"required"`
	Location   string `json:"location" binding:"required"`
}

// MetricsInput carries the seven metrics of an ingested reading. Pointers
// let a missing or null value be told apart from zero.
type MetricsInput struct {
	SoilHumidity *float64 `json:"soilHumidity" binding:"required"`
	Temperature  *float64 `json:"temperature" binding:"required"`
	Condutivity  *float64 `json:"condutivity" binding:"required"`
	Ph           *float64 `json:"ph" binding:"required"`
	Nitrogen     *float64 `json:"nitrogen" binding:"required"`
	Phosphorus   *float64 `json:"phosphorus" binding:"required"`
	Potassium    *float64 `json:"potassium" binding:"required"`

	// DateTime is the capture time; ingestion time when absent.
	DateTime *time.Time `json:"dateTime"`
}

// Metrics returns the values, or false if any metric is missing.
func (in MetricsInput) Metrics() (Metrics, bool) {
	for _, v := range []*float64{in.SoilHumidity, in.Temperature, in.Condutivity, in.Ph, in.Nitrogen, in.Phosphorus, in.Potassium} {
		if v == nil {
			return Metrics{}, false
		}
	}
	return Metrics{
		SoilHumidity: *in.SoilHumidity,
		Temperature:  *in.Temperature,
		Condutivity:  *in.Condutivity,
		Ph:           *in.Ph,
		Nitrogen:     *in.Nitrogen,
		Phosphorus:   *in.Phosphorus,
		Potassium:    *in.Potassium,
	}, true
}

// WebhookReadingRequest is what field devices post to the webhook. The level
// labels are accepted for compatibility and ignored; levels are recomputed.
type WebhookReadingRequest struct {
	MetricsInput
	LevelHumidity    string `json:"level_humidity"`
	LevelTemperature string `json:"level_temperature"`
	LevelCondutivity string `json:"level_condutivity"`
	LevelPh          string `json:"level_ph"`
	LevelNitrogen    string `json:"level_nitrogen"`
	LevelPhosphorus  string `json:"level_phosphorus"`
	LevelPotassium   string `json:"level_potassium"`
}

// ReadingPatch is the payload for PUT /sensors/:id/data/:dataId. Omitted
// metrics keep their stored value.
type ReadingPatch struct {
	SoilHumidity *float64 `json:"soilHumidity"`
	Temperature  *float64 `json:"temperature"`
	Condutivity  *float64 `json:"condutivity"`
	Ph           *float64 `json:"ph"`
	Nitrogen     *float64 `json:"nitrogen"`
	Phosphorus   *float64 `json:"phosphorus"`
	Potassium    *float64 `json:"potassium"`
}

// Apply overwrites the supplied metrics on m.
func (p ReadingPatch) Apply(m Metrics) Metrics {
	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	set(&m.SoilHumidity, p.SoilHumidity)
	set(&m.Temperature, p.Temperature)
	set(&m.Condutivity, p.Condutivity)
	set(&m.Ph, p.Ph)
	set(&m.Nitrogen, p.Nitrogen)
	set(&m.Phosphorus, p.Phosphorus)
	set(&m.Potassium, p.Potassium)
	return m
}

// AlertRequest is the payload for creating or updating an alert by hand.
type AlertRequest struct {
	Message string `json:"message" binding:"required"`
	Level   string `json:"level" binding:"required,oneof=Alerta Crítico"`
}
