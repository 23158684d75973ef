package employee

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

func setupEmployeeApp(t *testing.T) *fiber.App {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Employee{}); err != nil {
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
	app.Post("/api/employees", CreateEmployeeHandler())
	app.Get("/api/employees", ListEmployeesHandler())
	app.Get("/api/employees/:id", GetEmployeeHandler())
	app.Put("/api/employees/:id", UpdateEmployeeHandler())
	app.Delete("/api/employees/:id", DeleteEmployeeHandler())
	return app
}

func request(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	var req *http.Request
	if body == "" {
		req, _ = http.NewRequest(method, path, nil)
	} else {
		req, _ = http.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func TestEmployeeCRUD(t *testing.T) {
	app := setupEmployeeApp(t)

	resp := request(t, app, http.MethodPost, "/api/employees",
		`{"name":"Kumar","role":"Mason","daily_salary":800}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: got status %d", resp.StatusCode)
	}
	var created EmployeeResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Name != "Kumar" || created.DailySalary != 800 {
		t.Fatalf("created: %+v", created)
	}

	// partial update touches only the sent fields
	resp = request(t, app, http.MethodPut, fmt.Sprintf("/api/employees/%d", created.ID),
		`{"daily_salary":900}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update: got status %d", resp.StatusCode)
	}
	var updated EmployeeResponse
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if updated.DailySalary != 900 || updated.Name != "Kumar" || updated.Role != "Mason" {
		t.Fatalf("partial update: %+v", updated)
	}

	resp = request(t, app, http.MethodGet, "/api/employees", "")
	var list []EmployeeResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("list: %d rows", len(list))
	}

	resp = request(t, app, http.MethodDelete, fmt.Sprintf("/api/employees/%d", created.ID), "")
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete: got status %d", resp.StatusCode)
	}
	resp = request(t, app, http.MethodGet, fmt.Sprintf("/api/employees/%d", created.ID), "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("get after delete: got status %d, want 404", resp.StatusCode)
	}
}

func TestCreateEmployeeValidation(t *testing.T) {
	app := setupEmployeeApp(t)

	cases := []string{
		`{"name":"","role":"Mason","daily_salary":800}`,
		`{"name":"Kumar","role":"","daily_salary":800}`,
		`{"name":"Kumar","role":"Mason","daily_salary":-10}`,
	}
	for i, body := range cases {
		resp := request(t, app, http.MethodPost, "/api/employees", body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("case %d: got status %d, want 400", i, resp.StatusCode)
		}
	}
}
