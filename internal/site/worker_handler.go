package site

import (
	"time"

	"sitepay-backend/internal/database"
	"sitepay-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AssignWorkerRequest struct {
	EmployeeID   uint   `json:"employee_id"`
	AssignedDate string `json:"assigned_date"` // "2025-12-09"
	RoleAtSite   string `json:"role_at_site"`
}

type SiteWorkerResponse struct {
	ID           uint   `json:"id"`
	SiteID       uint   `json:"site_id"`
	EmployeeID   uint   `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	EmployeeRole string `json:"employee_role"`
	AssignedDate string `json:"assigned_date"`
	RemovedDate  string `json:"removed_date,omitempty"`
	RoleAtSite   string `json:"role_at_site"`
	IsActive     bool   `json:"is_active"`
}

func workerResponse(w models.SiteWorker) SiteWorkerResponse {
	resp := SiteWorkerResponse{
		ID:           w.ID,
		SiteID:       w.SiteID,
		EmployeeID:   w.EmployeeID,
		EmployeeName: w.Employee.Name,
		EmployeeRole: w.Employee.Role,
		AssignedDate: w.AssignedDate.Format("2006-01-02"),
		RoleAtSite:   w.RoleAtSite,
		IsActive:     w.IsActive,
	}
	if w.RemovedDate != nil {
		resp.RemovedDate = w.RemovedDate.Format("2006-01-02")
	}
	return resp
}

// POST /api/sites/:id/workers
func AssignWorkerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		siteID, err := parseID(c.Params("id"))
		if err != nil {
			return err
		}

		var s models.Site
		if err := database.DB.First(&s, "id = ?", siteID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Site not found")
		}

		var body AssignWorkerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		var emp models.Employee
		if err := database.DB.First(&emp, "id = ?", body.EmployeeID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Employee not found")
		}

		assignedDate, err := time.Parse("2006-01-02", body.AssignedDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "assigned_date must be 'YYYY-MM-DD'")
		}

		var active int64
		if err := database.DB.Model(&models.SiteWorker{}).
			Where("site_id = ? AND employee_id = ? AND is_active = ?", s.ID, emp.ID, true).
			Count(&active).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not verify assignment")
		}
		if active > 0 {
			return fiber.NewError(fiber.StatusConflict, "Worker is already assigned to this site")
		}

		w := models.SiteWorker{
			SiteID:       s.ID,
			EmployeeID:   emp.ID,
			AssignedDate: assignedDate,
			RoleAtSite:   body.RoleAtSite,
			IsActive:     true,
		}

		if err := database.DB.Create(&w).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not assign worker")
		}

		w.Employee = emp
		return c.Status(fiber.StatusCreated).JSON(workerResponse(w))
	}
}

// GET /api/sites/:id/workers
func ListSiteWorkersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		siteID, err := parseID(c.Params("id"))
		if err != nil {
			return err
		}

		var rows []models.SiteWorker
		if err := database.DB.
			Preload("Employee").
			Where("site_id = ?", siteID).
			Order("is_active desc, assigned_date desc, id desc").
			Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list site workers")
		}

		resp := make([]SiteWorkerResponse, 0, len(rows))
		for _, w := range rows {
			resp = append(resp, workerResponse(w))
		}

		return c.JSON(resp)
	}
}

// DELETE /api/site-workers/:id
// Soft removal: the assignment stays in the site history with a removal date.
func RemoveWorkerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c.Params("id"))
		if err != nil {
			return err
		}

		var w models.SiteWorker
		if err := database.DB.Preload("Employee").First(&w, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Assignment not found")
		}

		if !w.IsActive {
			return fiber.NewError(fiber.StatusConflict, "Worker was already removed")
		}

		now := time.Now()
		removed := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		w.RemovedDate = &removed
		w.IsActive = false

		if err := database.DB.Save(&w).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not remove worker")
		}

		return c.JSON(workerResponse(w))
	}
}
