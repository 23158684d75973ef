package database

import (
	"log"

	"sitepay-backend/internal/config"
	"sitepay-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}

	err = DB.AutoMigrate(
		&models.Employee{},
		&models.AttendanceRecord{},
		&models.Advance{},
		&models.Site{},
		&models.SiteWorker{},
		&models.MaterialCategory{},
		&models.SiteMaterial{},
		&models.MaterialPayment{},
		&models.SiteExpense{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	ensureMaterialPaymentCascade()
	seedMaterialCategories()

	log.Println("Database connected, migration complete.")
}

// ensureMaterialPaymentCascade: AutoMigrate sometimes leaves an existing
// constraint without ON DELETE CASCADE in place. Deleting a material must
// take its payment ledger with it, so rebuild the constraint explicitly.
func ensureMaterialPaymentCascade() {
	if !DB.Migrator().HasTable(&models.MaterialPayment{}) {
		return
	}

	var cascades bool
	DB.Raw(`
		SELECT EXISTS (
			SELECT 1
			FROM information_schema.referential_constraints
			WHERE constraint_name = 'fk_site_materials_payments'
			AND delete_rule = 'CASCADE'
		)
	`).Scan(&cascades)
	if cascades {
		return
	}

	if err := DB.Exec("ALTER TABLE material_payments DROP CONSTRAINT IF EXISTS fk_site_materials_payments").Error; err != nil {
		log.Printf("Dropping material_payments constraint failed (continuing): %v", err)
	}
	if err := DB.Exec(`
		ALTER TABLE material_payments
		ADD CONSTRAINT fk_site_materials_payments
		FOREIGN KEY (site_material_id) REFERENCES site_materials(id) ON DELETE CASCADE
	`).Error; err != nil {
		log.Printf("Adding material_payments cascade constraint failed: %v", err)
	} else {
		log.Println("material_payments cascade constraint ensured")
	}
}

// seedMaterialCategories: the category list is fixed, insert any that are
// missing so fresh databases are usable without a manual step.
func seedMaterialCategories() {
	categories := []models.MaterialCategory{
		{Name: "Cement", Description: "Cement and binding materials"},
		{Name: "Steel", Description: "Steel rods, bars, and materials"},
		{Name: "Sand", Description: "River sand, M-sand"},
		{Name: "Bricks", Description: "Red bricks, concrete blocks"},
		{Name: "Aggregate", Description: "Stone chips, gravel"},
		{Name: "Paint", Description: "Interior and exterior paints"},
		{Name: "Plumbing", Description: "Pipes, fittings, sanitary"},
		{Name: "Electrical", Description: "Wires, switches, fittings"},
		{Name: "Wood", Description: "Timber, plywood, doors"},
		{Name: "Hardware", Description: "Nails, screws, tools"},
		{Name: "Other", Description: "Miscellaneous materials"},
	}

	for _, cat := range categories {
		if err := DB.Where("name = ?", cat.Name).FirstOrCreate(&cat).Error; err != nil {
			log.Printf("Seeding material category %q failed: %v", cat.Name, err)
		}
	}
}
