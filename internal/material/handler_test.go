package material

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"sitepay-backend/internal/database"
	"sitepay-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupMaterialApp(t *testing.T) *fiber.App {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Site{},
		&models.MaterialCategory{},
		&models.SiteMaterial{},
		&models.MaterialPayment{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	database.DB = db

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Get("/api/material-categories", ListMaterialCategoriesHandler())
	app.Post("/api/sites/:id/materials", CreateSiteMaterialHandler())
	app.Get("/api/sites/:id/materials", ListSiteMaterialsHandler())
	app.Get("/api/materials/pending", ListPendingMaterialsHandler())
	app.Get("/api/materials/:id", GetMaterialHandler())
	app.Post("/api/materials/:id/payments", CreateMaterialPaymentHandler())
	app.Get("/api/materials/:id/payments", ListMaterialPaymentsHandler())
	return app
}

func seedSiteAndCategory(t *testing.T) (models.Site, models.MaterialCategory) {
	site := models.Site{SiteName: "Riverside Villa", Location: "Chennai", Status: models.SiteActive}
	if err := database.DB.Create(&site).Error; err != nil {
		t.Fatalf("create site: %v", err)
	}
	cat := models.MaterialCategory{Name: "Steel"}
	if err := database.DB.Create(&cat).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	return site, cat
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	req := httptestRequest(http.MethodPost, path, body)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return resp
}

func httptestRequest(method, path, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req, _ = http.NewRequest(method, path, nil)
	} else {
		req, _ = http.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func TestCreateMaterialAndFullPaymentFlow(t *testing.T) {
	app := setupMaterialApp(t)
	site, cat := seedSiteAndCategory(t)

	body := fmt.Sprintf(`{"material_category_id":%d,"material_name":"TMT 12mm","quantity":10,"unit":"tons","rate_per_unit":100,"sent_date":"2025-12-01","supplier_name":"Sri Steels"}`, cat.ID)
	resp := postJSON(t, app, fmt.Sprintf("/api/sites/%d/materials", site.ID), body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create material: got status %d", resp.StatusCode)
	}

	var created SiteMaterialResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode material: %v", err)
	}
	if created.TotalCost != 1000 || created.AmountBalance != 1000 || created.PaymentStatus != "Pending" {
		t.Fatalf("fresh material state wrong: %+v", created)
	}

	// partial payment
	resp = postJSON(t, app, fmt.Sprintf("/api/materials/%d/payments", created.ID),
		`{"payment_date":"2025-12-05","amount":400,"payment_mode":"UPI"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("record payment: got status %d", resp.StatusCode)
	}
	var rec RecordPaymentResponse
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		t.Fatalf("decode payment response: %v", err)
	}
	if rec.AmountPaid != 400 || rec.AmountBalance != 600 || rec.PaymentStatus != "Partial" {
		t.Fatalf("aggregates after partial payment: %+v", rec)
	}

	// still listed as pending
	req := httptestRequest(http.MethodGet, "/api/materials/pending", "")
	presp, err := app.Test(req)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	var pending []SiteMaterialResponse
	if err := json.NewDecoder(presp.Body).Decode(&pending); err != nil {
		t.Fatalf("decode pending: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != created.ID {
		t.Fatalf("pending list: %+v", pending)
	}

	// closing payment drops it off the pending list
	resp = postJSON(t, app, fmt.Sprintf("/api/materials/%d/payments", created.ID),
		`{"payment_date":"2025-12-20","amount":600,"payment_mode":"cash"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("closing payment: got status %d", resp.StatusCode)
	}
	presp, err = app.Test(httptestRequest(http.MethodGet, "/api/materials/pending", ""))
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	pending = nil
	if err := json.NewDecoder(presp.Body).Decode(&pending); err != nil {
		t.Fatalf("decode pending: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("paid material still pending: %+v", pending)
	}

	// detail carries the payment history
	dresp, err := app.Test(httptestRequest(http.MethodGet, fmt.Sprintf("/api/materials/%d", created.ID), ""))
	if err != nil {
		t.Fatalf("get material: %v", err)
	}
	var detail MaterialDetailResponse
	if err := json.NewDecoder(dresp.Body).Decode(&detail); err != nil {
		t.Fatalf("decode detail: %v", err)
	}
	if len(detail.Payments) != 2 || detail.PaymentStatus != "Paid" || detail.AmountBalance != 0 {
		t.Fatalf("material detail: %+v", detail)
	}
}

func TestCreateMaterialValidation(t *testing.T) {
	app := setupMaterialApp(t)
	site, cat := seedSiteAndCategory(t)

	cases := []string{
		fmt.Sprintf(`{"material_category_id":%d,"material_name":"","quantity":10,"unit":"bags","rate_per_unit":100,"sent_date":"2025-12-01"}`, cat.ID),
		fmt.Sprintf(`{"material_category_id":%d,"material_name":"Cement","quantity":0,"unit":"bags","rate_per_unit":100,"sent_date":"2025-12-01"}`, cat.ID),
		fmt.Sprintf(`{"material_category_id":%d,"material_name":"Cement","quantity":10,"unit":"bags","rate_per_unit":-5,"sent_date":"2025-12-01"}`, cat.ID),
		`{"material_category_id":9999,"material_name":"Cement","quantity":10,"unit":"bags","rate_per_unit":100,"sent_date":"2025-12-01"}`,
		fmt.Sprintf(`{"material_category_id":%d,"material_name":"Cement","quantity":10,"unit":"bags","rate_per_unit":100,"sent_date":"12/01/2025"}`, cat.ID),
	}
	for i, body := range cases {
		resp := postJSON(t, app, fmt.Sprintf("/api/sites/%d/materials", site.ID), body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("case %d: got status %d, want 400", i, resp.StatusCode)
		}
	}

	resp := postJSON(t, app, "/api/sites/9999/materials",
		fmt.Sprintf(`{"material_category_id":%d,"material_name":"Cement","quantity":10,"unit":"bags","rate_per_unit":100,"sent_date":"2025-12-01"}`, cat.ID))
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown site: got status %d, want 404", resp.StatusCode)
	}
}

func TestPaymentOnUnknownMaterialIs404(t *testing.T) {
	app := setupMaterialApp(t)
	seedSiteAndCategory(t)

	resp := postJSON(t, app, "/api/materials/424242/payments",
		`{"payment_date":"2025-12-05","amount":100,"payment_mode":"cash"}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("got status %d, want 404", resp.StatusCode)
	}

	var count int64
	if err := database.DB.Model(&models.MaterialPayment{}).Count(&count).Error; err != nil {
		t.Fatalf("count payments: %v", err)
	}
	if count != 0 {
		t.Fatalf("ledger row created for unknown material")
	}
}
