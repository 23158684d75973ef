package models

import "time"

// SiteExpense - miscellaneous site spend outside the material ledger
// (labour contractor, transport, food, fuel...).
type SiteExpense struct {
	ID          uint      `gorm:"primaryKey"`
	SiteID      uint      `gorm:"index;not null"`
	Site        Site      `gorm:"foreignKey:SiteID"`
	ExpenseDate time.Time `gorm:"index;not null"`
	ExpenseType string    `gorm:"size:100;not null"`
	Description string    `gorm:"type:text"`
	Amount      float64   `gorm:"not null"`
	PaidTo      string    `gorm:"size:150"`
	PaymentMode string    `gorm:"size:50"`
	CreatedAt   time.Time
}
