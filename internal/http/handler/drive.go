package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"docflow/internal/drive"
	"docflow/internal/http/middleware"
	"docflow/internal/model"
)

// DriveBrowser is the subset of the drive client used by the admin
// maintenance endpoints.
type DriveBrowser interface {
	ListRootChildren(ctx context.Context) ([]drive.Item, error)
	DeleteItem(ctx context.Context, itemID string) error
}

func isAdmin(c *fiber.Ctx) bool {
	p := middleware.ProfileFromCtx(c)
	return p != nil && p.Role == model.RoleAdmin
}

// ListDriveItems lists the root of the remote drive. Admin only.
func ListDriveItems(drv DriveBrowser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !isAdmin(c) {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "operation requires admin role")
		}
		items, err := drv.ListRootChildren(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusBadGateway, "DRIVE_UNAVAILABLE", "remote drive unavailable")
		}
		return c.JSON(fiber.Map{"data": items})
	}
}

// DeleteDriveItem removes an item from the remote drive. Admin only.
func DeleteDriveItem(drv DriveBrowser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !isAdmin(c) {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "operation requires admin role")
		}
		id := c.Params("id")
		if id == "" {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "id is required")
		}
		if err := drv.DeleteItem(c.UserContext(), id); err != nil {
			return writeError(c, fiber.StatusBadGateway, "DRIVE_UNAVAILABLE", "remote drive unavailable")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
