package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"docflow/internal/http/middleware"
	"docflow/internal/service"
)

type createCompanyRequest struct {
	CompanyName      string     `json:"company_name"`
	YearOfAssignment *int       `json:"year_of_assignment"`
	StartAuditPeriod *time.Time `json:"start_audit_period"`
	EndAuditPeriod   *time.Time `json:"end_audit_period"`
}

type updateCompanyRequest struct {
	CompanyName      *string    `json:"company_name"`
	YearOfAssignment *int       `json:"year_of_assignment"`
	StartAuditPeriod *time.Time `json:"start_audit_period"`
	EndAuditPeriod   *time.Time `json:"end_audit_period"`
}

// CreateCompany registers a new tenant company.
func CreateCompany(svc service.CompanyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body createCompanyRequest
		if err := c.BodyParser(&body); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		if body.CompanyName == "" {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "company_name is required")
		}

		company, err := svc.Create(c.UserContext(), service.CreateCompanyInput{
			CompanyName:      body.CompanyName,
			YearOfAssignment: body.YearOfAssignment,
			StartAuditPeriod: body.StartAuditPeriod,
			EndAuditPeriod:   body.EndAuditPeriod,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Company successfully registered",
			"data":    company,
		})
	}
}

// ListCompanies returns paginated companies.
func ListCompanies(svc service.CompanyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// CompanyUserSummary returns the per-company user counts.
func CompanyUserSummary(svc service.CompanyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		counts, err := svc.UserCountSummary(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": counts})
	}
}

// GetMyCompany returns the company of the authenticated user.
func GetMyCompany(svc service.CompanyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := middleware.UserFromCtx(c)
		if user == nil || user.CompanyID == "" {
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "no company attached to this account")
		}
		company, err := svc.Get(c.UserContext(), user.CompanyID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(company)
	}
}

// GetCompany returns a company by ID.
func GetCompany(svc service.CompanyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		company, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(company)
	}
}

// UpdateCompany applies a partial update to a company.
func UpdateCompany(svc service.CompanyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var body updateCompanyRequest
		if err := c.BodyParser(&body); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}

		company, err := svc.Update(c.UserContext(), id, service.UpdateCompanyInput{
			CompanyName:      body.CompanyName,
			YearOfAssignment: body.YearOfAssignment,
			StartAuditPeriod: body.StartAuditPeriod,
			EndAuditPeriod:   body.EndAuditPeriod,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{
			"message": "Company updated successfully",
			"data":    company,
		})
	}
}

// DeleteCompany removes a company by ID.
func DeleteCompany(svc service.CompanyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "Company deleted successfully"})
	}
}
