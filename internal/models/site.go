package models

import "time"

type SiteStatus string

const (
	SiteActive    SiteStatus = "Active"
	SiteCompleted SiteStatus = "Completed"
	SiteOnHold    SiteStatus = "On Hold"
)

type Site struct {
	ID          uint       `gorm:"primaryKey"`
	SiteName    string     `gorm:"size:200;not null"`
	Location    string     `gorm:"size:255;not null"`
	ClientName  string     `gorm:"size:150"`
	StartDate   *time.Time `gorm:"type:date"`
	EndDate     *time.Time `gorm:"type:date"`
	Status      SiteStatus `gorm:"size:50;not null;default:'Active'"`
	TotalBudget float64
	Notes       string `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Workers   []SiteWorker   `gorm:"foreignKey:SiteID;constraint:OnDelete:CASCADE"`
	Materials []SiteMaterial `gorm:"foreignKey:SiteID;constraint:OnDelete:CASCADE"`
	Expenses  []SiteExpense  `gorm:"foreignKey:SiteID;constraint:OnDelete:CASCADE"`
}
