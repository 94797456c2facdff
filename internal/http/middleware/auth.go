package middleware

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"docflow/internal/auth"
	"docflow/internal/model"
	"docflow/internal/repository"
)

const (
	// UserLocalKey stores the authenticated *model.User in Fiber locals.
	UserLocalKey = "auth_user"
	// ProfileLocalKey stores the authenticated user's *model.Profile.
	ProfileLocalKey = "auth_profile"
)

// UserFromCtx returns the authenticated user set by Protect, or nil.
func UserFromCtx(c *fiber.Ctx) *model.User {
	u, _ := c.Locals(UserLocalKey).(*model.User)
	return u
}

// ProfileFromCtx returns the authenticated user's profile, or nil.
func ProfileFromCtx(c *fiber.Ctx) *model.Profile {
	p, _ := c.Locals(ProfileLocalKey).(*model.Profile)
	return p
}

// authError mirrors the handler error envelope; middleware cannot import the
// handler package without a cycle.
func authError(c *fiber.Ctx, code, message string) error {
	rid, _ := c.Locals(RequestIDLocalKey).(string)
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"request_id": rid,
		"error":      fiber.Map{"code": code, "message": message},
	})
}

// Protect authenticates the request from a bearer header or the access token
// cookie, loads the user and profile, and stores both in locals. Expired and
// malformed tokens yield distinct error codes; both are 401.
func Protect(tokens *auth.TokenManager, users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := bearerToken(c)
		if raw == "" {
			raw = c.Cookies(auth.AccessTokenCookie)
		}
		if raw == "" {
			return authError(c, "UNAUTHENTICATED", "missing credentials")
		}

		claims, err := tokens.VerifyAccess(raw)
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				return authError(c, "TOKEN_EXPIRED", "token has expired")
			}
			return authError(c, "INVALID_TOKEN", "invalid token")
		}

		user, err := users.FindByID(c.UserContext(), claims.Subject)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return authError(c, "UNAUTHENTICATED", "unknown account")
			}
			return fiber.ErrInternalServerError
		}

		profile, err := users.FindProfileByUserID(c.UserContext(), user.ID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return fiber.ErrInternalServerError
		}
		if profile == nil {
			profile = &model.Profile{
				UserID:           user.ID,
				Role:             model.RoleMember,
				MembershipStatus: model.MembershipDefault,
			}
		}

		c.Locals(UserLocalKey, user)
		c.Locals(ProfileLocalKey, profile)
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) string {
	h := c.Get(fiber.HeaderAuthorization)
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
