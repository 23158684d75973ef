package material

import (
	"errors"
	"fmt"
	"time"

	"sitepay-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrMaterialNotFound - the payment references a material that does not exist.
var ErrMaterialNotFound = errors.New("site material not found")

type PaymentInput struct {
	PaymentDate     time.Time
	Amount          float64
	PaymentMode     string
	ReferenceNumber string
	Notes           string
}

// DeriveStatus maps a recomputed paid sum onto the three payment states.
// Overpayment is allowed and reads as Paid with a negative balance;
// corrections are entered as negative payment amounts.
func DeriveStatus(amountPaid, totalCost float64) models.PaymentStatus {
	switch {
	case amountPaid <= 0:
		return models.PaymentPending
	case amountPaid < totalCost:
		return models.PaymentPartial
	default:
		return models.PaymentPaid
	}
}

// RecordPayment appends one payment to the material's ledger and rewrites the
// material's amount_paid / amount_balance / payment_status from the full
// ledger, all inside a single transaction. On any failure neither the payment
// row nor the aggregate fields survive.
func RecordPayment(db *gorm.DB, materialID uint, in PaymentInput) (*models.SiteMaterial, *models.MaterialPayment, error) {
	var (
		m models.SiteMaterial
		p models.MaterialPayment
	)
	err := db.Transaction(func(tx *gorm.DB) error {
		return recordPayment(tx, materialID, in, &m, &p)
	})
	if err != nil {
		return nil, nil, err
	}
	return &m, &p, nil
}

func recordPayment(tx *gorm.DB, materialID uint, in PaymentInput, m *models.SiteMaterial, p *models.MaterialPayment) error {
	// FOR UPDATE on the owning row so two concurrent recomputes cannot both
	// read a stale payment sum. sqlite has no row locks and serializes at the
	// database level instead.
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(m, "id = ?", materialID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMaterialNotFound
		}
		return fmt.Errorf("load site material: %w", err)
	}

	*p = models.MaterialPayment{
		SiteMaterialID:  m.ID,
		PaymentDate:     in.PaymentDate,
		Amount:          in.Amount,
		PaymentMode:     in.PaymentMode,
		ReferenceNumber: in.ReferenceNumber,
		Notes:           in.Notes,
	}
	if err := tx.Create(p).Error; err != nil {
		return fmt.Errorf("insert material payment: %w", err)
	}

	return recomputeAggregates(tx, m)
}

// recomputeAggregates rewrites the derived fields from the ledger. The sum is
// always taken over the whole payment history, never incremented, so the
// ledger stays the single source of truth and replaying a recompute is a
// no-op.
func recomputeAggregates(tx *gorm.DB, m *models.SiteMaterial) error {
	var paid float64
	if err := tx.Model(&models.MaterialPayment{}).
		Where("site_material_id = ?", m.ID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&paid).Error; err != nil {
		return fmt.Errorf("sum material payments: %w", err)
	}

	m.AmountPaid = paid
	m.AmountBalance = m.TotalCost - paid
	m.PaymentStatus = DeriveStatus(paid, m.TotalCost)

	if err := tx.Model(&models.SiteMaterial{}).
		Where("id = ?", m.ID).
		Updates(map[string]interface{}{
			"amount_paid":    m.AmountPaid,
			"amount_balance": m.AmountBalance,
			"payment_status": m.PaymentStatus,
		}).Error; err != nil {
		return fmt.Errorf("update material aggregates: %w", err)
	}
	return nil
}
