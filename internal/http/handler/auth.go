package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"docflow/internal/auth"
	"docflow/internal/http/middleware"
	"docflow/internal/model"
	"docflow/internal/service"
)

type registerRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	CompanyID string `json:"company_id"`
	Role      string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account with its profile.
func Register(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body registerRequest
		if err := c.BodyParser(&body); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		if body.Name == "" || body.Email == "" || body.Password == "" {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "name, email and password are required")
		}

		user, err := svc.Register(c.UserContext(), service.RegisterInput{
			Name:      body.Name,
			Email:     body.Email,
			Password:  body.Password,
			CompanyID: body.CompanyID,
			Role:      model.Role(body.Role),
		})
		if err != nil {
			if errors.Is(err, service.ErrEmailTaken) {
				return writeError(c, fiber.StatusConflict, "EMAIL_TAKEN", "User with this email already exists")
			}
			return writeServiceError(c, err)
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "User successfully registered",
			"data":    user,
		})
	}
}

// Login verifies credentials, sets the session cookies and returns the pair.
func Login(svc service.AuthService, tokens *auth.TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body loginRequest
		if err := c.BodyParser(&body); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}

		pair, err := svc.Login(c.UserContext(), body.Email, body.Password)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				return writeError(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
			}
			return writeServiceError(c, err)
		}

		auth.SetSessionCookies(c, pair, tokens.AccessTTL(), tokens.RefreshTTL())
		return c.JSON(fiber.Map{
			"message": "User successfully logged in",
			"data":    pair,
		})
	}
}

// Me returns the authenticated user and profile resolved by the auth guard.
func Me() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := middleware.UserFromCtx(c)
		if user == nil {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
		}
		return c.JSON(fiber.Map{
			"data": fiber.Map{
				"user":    user,
				"profile": middleware.ProfileFromCtx(c),
			},
		})
	}
}

// Logout clears the session cookies. Previously issued tokens stay valid
// until expiry; there is no server-side revocation list.
func Logout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth.ClearSessionCookies(c)
		return c.JSON(fiber.Map{"message": "Logged out"})
	}
}

// RefreshToken exchanges the refresh token cookie for a fresh pair.
func RefreshToken(svc service.AuthService, tokens *auth.TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Cookies(auth.RefreshTokenCookie)
		if raw == "" {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHENTICATED", "missing refresh token")
		}

		pair, err := svc.Refresh(c.UserContext(), raw)
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				return writeError(c, fiber.StatusUnauthorized, "TOKEN_EXPIRED", "token has expired")
			}
			return writeError(c, fiber.StatusUnauthorized, "INVALID_TOKEN", "invalid token")
		}

		auth.SetSessionCookies(c, pair, tokens.AccessTTL(), tokens.RefreshTTL())
		return c.JSON(fiber.Map{
			"message": "Renew token is generated",
			"data":    pair,
		})
	}
}
