package attendance

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

func setupAttendanceApp(t *testing.T) *fiber.App {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Employee{}, &models.AttendanceRecord{}); err != nil {
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
	app.Post("/api/attendance", MarkAttendanceHandler())
	app.Get("/api/attendance", ListAttendanceHandler())
	return app
}

func seedCrew(t *testing.T, n int) []models.Employee {
	crew := make([]models.Employee, 0, n)
	for i := 0; i < n; i++ {
		e := models.Employee{Name: fmt.Sprintf("Worker %d", i+1), Role: "Helper", DailySalary: 500}
		if err := database.DB.Create(&e).Error; err != nil {
			t.Fatalf("create employee: %v", err)
		}
		crew = append(crew, e)
	}
	return crew
}

func markDay(t *testing.T, app *fiber.App, body string) *http.Response {
	req, _ := http.NewRequest(http.MethodPost, "/api/attendance", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("mark attendance: %v", err)
	}
	return resp
}

func TestMarkAttendanceBulkAndRemark(t *testing.T) {
	app := setupAttendanceApp(t)
	crew := seedCrew(t, 3)

	body := fmt.Sprintf(`{"date":"2025-12-09","entries":[
		{"employee_id":%d,"status":"Present"},
		{"employee_id":%d,"status":"Absent"},
		{"employee_id":%d,"status":"Half Day"}]}`, crew[0].ID, crew[1].ID, crew[2].ID)
	resp := markDay(t, app, body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("got status %d", resp.StatusCode)
	}

	// re-marking the same day replaces, never duplicates
	body = fmt.Sprintf(`{"date":"2025-12-09","entries":[{"employee_id":%d,"status":"Present"}]}`, crew[1].ID)
	resp = markDay(t, app, body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("remark: got status %d", resp.StatusCode)
	}

	var count int64
	if err := database.DB.Model(&models.AttendanceRecord{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 3 {
		t.Fatalf("got %d records, want 3", count)
	}

	req, _ := http.NewRequest(http.MethodGet, "/api/attendance?date=2025-12-09", nil)
	lresp, err := app.Test(req)
	if err != nil {
		t.Fatalf("list attendance: %v", err)
	}
	var rows []AttendanceResponse
	if err := json.NewDecoder(lresp.Body).Decode(&rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	for _, r := range rows {
		if r.EmployeeID == crew[1].ID && r.Status != "Present" {
			t.Fatalf("remark did not replace status: %+v", r)
		}
	}
}

func TestMarkAttendanceValidation(t *testing.T) {
	app := setupAttendanceApp(t)
	crew := seedCrew(t, 1)

	cases := []string{
		`{"date":"2025-12-09","entries":[]}`,
		fmt.Sprintf(`{"date":"09-12-2025","entries":[{"employee_id":%d,"status":"Present"}]}`, crew[0].ID),
		fmt.Sprintf(`{"date":"2025-12-09","entries":[{"employee_id":%d,"status":"Late"}]}`, crew[0].ID),
		`{"date":"2025-12-09","entries":[{"employee_id":9999,"status":"Present"}]}`,
	}
	for i, body := range cases {
		resp := markDay(t, app, body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("case %d: got status %d, want 400", i, resp.StatusCode)
		}
	}
}
