package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"docflow/internal/http/middleware"
	"docflow/internal/model"
	"docflow/internal/service"
)

type createRequestRequest struct {
	RequestTitle string    `json:"request_title"`
	RequestDesc  string    `json:"request_desc"`
	TargetUserID string    `json:"target_user_id"`
	CategoryID   string    `json:"category_id"`
	DueDate      time.Time `json:"due_date"`
}

type updateRequestRequest struct {
	RequestTitle *string    `json:"request_title"`
	RequestDesc  *string    `json:"request_desc"`
	DueDate      *time.Time `json:"due_date"`
}

// CreateRequest opens a document request. The acting user's role comes from
// the auth middleware; only admins pass the service gate.
func CreateRequest(svc service.RequestService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body createRequestRequest
		if err := c.BodyParser(&body); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		if body.RequestTitle == "" || body.TargetUserID == "" {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "request_title and target_user_id are required")
		}

		role := model.RoleMember
		adminID := ""
		if p := middleware.ProfileFromCtx(c); p != nil {
			role = p.Role
		}
		if u := middleware.UserFromCtx(c); u != nil {
			adminID = u.ID
		}

		req, err := svc.Create(c.UserContext(), role, service.CreateRequestInput{
			RequestTitle: body.RequestTitle,
			RequestDesc:  body.RequestDesc,
			AdminID:      adminID,
			TargetUserID: body.TargetUserID,
			CategoryID:   body.CategoryID,
			DueDate:      body.DueDate,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(req)
	}
}

// ListRequests returns paginated document requests.
func ListRequests(svc service.RequestService) fiber.Handler {
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

// GetRequest returns a document request by ID.
func GetRequest(svc service.RequestService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		req, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(req)
	}
}

// UpdateRequest applies a partial update to a document request.
func UpdateRequest(svc service.RequestService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var body updateRequestRequest
		if err := c.BodyParser(&body); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}

		req, err := svc.Update(c.UserContext(), id, service.UpdateRequestInput{
			RequestTitle: body.RequestTitle,
			RequestDesc:  body.RequestDesc,
			DueDate:      body.DueDate,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(req)
	}
}

// DeleteRequest removes a document request by ID.
func DeleteRequest(svc service.RequestService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
