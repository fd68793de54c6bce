package models

import "time"

// Sensor is a field device. UserID stays nil until the sensor is claimed;
// until then it is reachable only through its webhook token.
type Sensor struct {
	ID               uint      `json:"sensorId" gorm:"primaryKey"`
	UserID           *uint     `json:"userId" gorm:"index"`
	SensorName       string    `json:"sensorName" gorm:"size:255"`
	Location         string    `json:"location" gorm:"size:255"`
	InstallationDate time.Time `json:"installationDate"`
	WebhookToken     string    `json:"webhookToken" gorm:"size:255;uniqueIndex;not null"`

	User *User `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// OwnedBy reports whether the sensor is claimed by userID.
func (s Sensor) OwnedBy(userID uint) bool {
	return s.UserID != nil && *s.UserID == userID
}
