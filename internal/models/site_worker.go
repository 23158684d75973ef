package models

import "time"

// SiteWorker - assignment of an employee to a site. Removal is soft: the row
// keeps its assigned/removed dates for the site history.
type SiteWorker struct {
	ID           uint       `gorm:"primaryKey"`
	SiteID       uint       `gorm:"index;not null"`
	Site         Site       `gorm:"foreignKey:SiteID"`
	EmployeeID   uint       `gorm:"index;not null"`
	Employee     Employee   `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
	AssignedDate time.Time  `gorm:"type:date;not null"`
	RemovedDate  *time.Time `gorm:"type:date"`
	RoleAtSite   string     `gorm:"size:100"`
	IsActive     bool       `gorm:"not null;default:true"`
}
