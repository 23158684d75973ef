package models

import "time"

// Advance - cash advance handed to an employee, deducted from payroll.
type Advance struct {
	ID         uint      `gorm:"primaryKey"`
	EmployeeID uint      `gorm:"index;not null"`
	Employee   Employee  `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
	Date       time.Time `gorm:"index;not null"`
	Amount     float64   `gorm:"not null"`
	Reason     string    `gorm:"size:255"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
