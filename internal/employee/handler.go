package employee

import (
	"fmt"
	"strings"
	"time"

	"sitepay-backend/internal/database"
	"sitepay-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// -------------------------
// Request/Response Types
// -------------------------

type CreateEmployeeRequest struct {
	Name        string  `json:"name"`
	Role        string  `json:"role"`
	DailySalary float64 `json:"daily_salary"`
}

type UpdateEmployeeRequest struct {
	Name        *string  `json:"name"`
	Role        *string  `json:"role"`
	DailySalary *float64 `json:"daily_salary"`
}

type EmployeeResponse struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Role        string  `json:"role"`
	DailySalary float64 `json:"daily_salary"`
	CreatedAt   string  `json:"created_at"`
}

func parseID(raw string) (uint, error) {
	var id uint
	if _, err := fmt.Sscan(raw, &id); err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid id")
	}
	return id, nil
}

func employeeResponse(e models.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:          e.ID,
		Name:        e.Name,
		Role:        e.Role,
		DailySalary: e.DailySalary,
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
	}
}

// -------------------------
// Employee CRUD
// -------------------------

// POST /api/employees
func CreateEmployeeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateEmployeeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if strings.TrimSpace(body.Name) == "" || strings.TrimSpace(body.Role) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name and role are required")
		}
		if body.DailySalary <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "daily_salary must be > 0")
		}

		emp := models.Employee{
			Name:        strings.TrimSpace(body.Name),
			Role:        strings.TrimSpace(body.Role),
			DailySalary: body.DailySalary,
		}

		if err := database.DB.Create(&emp).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not save employee")
		}

		return c.Status(fiber.StatusCreated).JSON(employeeResponse(emp))
	}
}

// GET /api/employees
func ListEmployeesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rows []models.Employee
		if err := database.DB.Order("id desc").Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list employees")
		}

		resp := make([]EmployeeResponse, 0, len(rows))
		for _, e := range rows {
			resp = append(resp, employeeResponse(e))
		}

		return c.JSON(resp)
	}
}

// GET /api/employees/:id
func GetEmployeeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c.Params("id"))
		if err != nil {
			return err
		}

		var emp models.Employee
		if err := database.DB.First(&emp, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Employee not found")
		}

		return c.JSON(employeeResponse(emp))
	}
}

// PUT /api/employees/:id
func UpdateEmployeeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c.Params("id"))
		if err != nil {
			return err
		}

		var emp models.Employee
		if err := database.DB.First(&emp, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Employee not found")
		}

		var body UpdateEmployeeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "name cannot be empty")
			}
			emp.Name = name
		}
		if body.Role != nil {
			role := strings.TrimSpace(*body.Role)
			if role == "" {
				return fiber.NewError(fiber.StatusBadRequest, "role cannot be empty")
			}
			emp.Role = role
		}
		if body.DailySalary != nil {
			if *body.DailySalary <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "daily_salary must be > 0")
			}
			emp.DailySalary = *body.DailySalary
		}

		if err := database.DB.Save(&emp).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update employee")
		}

		return c.JSON(employeeResponse(emp))
	}
}

// DELETE /api/employees/:id
func DeleteEmployeeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c.Params("id"))
		if err != nil {
			return err
		}

		var emp models.Employee
		if err := database.DB.First(&emp, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Employee not found")
		}

		if err := database.DB.Delete(&emp).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete employee")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
