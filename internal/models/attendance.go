package models

import "time"

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceAbsent  AttendanceStatus = "Absent"
	AttendanceHalfDay AttendanceStatus = "Half Day"
)

// AttendanceRecord - one status per employee per day; marking the same day
// again replaces the status (upsert on employee_id+date).
type AttendanceRecord struct {
	ID         uint             `gorm:"primaryKey"`
	EmployeeID uint             `gorm:"not null;uniqueIndex:idx_attendance_employee_date"`
	Employee   Employee         `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
	Date       time.Time        `gorm:"not null;uniqueIndex:idx_attendance_employee_date"`
	Status     AttendanceStatus `gorm:"size:20;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
