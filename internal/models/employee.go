package models

import "time"

type Employee struct {
	ID          uint    `gorm:"primaryKey"`
	Name        string  `gorm:"size:100;not null"`
	Role        string  `gorm:"size:100;not null"` // mason, helper, electrician...
	DailySalary float64 `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
