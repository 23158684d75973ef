package models

import "time"

type MaterialCategory struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:100;not null;unique"`
	Description string `gorm:"type:text"`
}

// PaymentStatus - derived from the payment ledger, never set by hand.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPartial PaymentStatus = "Partial"
	PaymentPaid    PaymentStatus = "Paid"
)

// SiteMaterial - one material delivery to a site with a fixed total cost.
// AmountPaid, AmountBalance and PaymentStatus are a materialized view over
// the MaterialPayment ledger; only the reconciler writes them after creation.
type SiteMaterial struct {
	ID                 uint             `gorm:"primaryKey"`
	SiteID             uint             `gorm:"index;not null"`
	Site               Site             `gorm:"foreignKey:SiteID"`
	MaterialCategoryID uint             `gorm:"index;not null"`
	Category           MaterialCategory `gorm:"foreignKey:MaterialCategoryID"`
	MaterialName       string           `gorm:"size:200;not null"`
	Quantity           float64          `gorm:"not null"`
	Unit               string           `gorm:"size:50;not null"` // bags, tons, pieces...
	RatePerUnit        float64          `gorm:"not null"`
	TotalCost          float64          `gorm:"not null"` // quantity * rate, fixed at creation
	SupplierName       string           `gorm:"size:150"`
	SentDate           time.Time        `gorm:"index;not null"`
	BillNumber         string           `gorm:"size:100"`
	AmountPaid         float64          `gorm:"not null;default:0"`
	AmountBalance      float64          `gorm:"not null;default:0"`
	PaymentStatus      PaymentStatus    `gorm:"size:50;not null;default:'Pending';index"`
	Notes              string           `gorm:"type:text"`
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Payments []MaterialPayment `gorm:"foreignKey:SiteMaterialID;constraint:OnDelete:CASCADE"`
}

// MaterialPayment - append-only ledger entry against a SiteMaterial. There is
// no update or delete operation for payments.
type MaterialPayment struct {
	ID              uint         `gorm:"primaryKey"`
	SiteMaterialID  uint         `gorm:"index;not null"`
	SiteMaterial    SiteMaterial `gorm:"foreignKey:SiteMaterialID"`
	PaymentDate     time.Time    `gorm:"type:date;not null"`
	Amount          float64      `gorm:"not null"`
	PaymentMode     string       `gorm:"size:50"` // cash, UPI, bank transfer...
	ReferenceNumber string       `gorm:"size:100"`
	Notes           string       `gorm:"type:text"`
	CreatedAt       time.Time
}
