package models

import "time"

type User struct {
	ID           uint      `json:"userId" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:255"`
	Email        string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Password     string    `json:"-"` // Store hashed password
	CreationDate time.Time `json:"creationDate" gorm:"autoCreateTime"`
}
