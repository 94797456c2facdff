package middleware

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docflow/internal/auth"
	"docflow/internal/config"
	"docflow/internal/model"
	repoMocks "docflow/internal/repository/mocks"
)

const testAccessSecret = "access-secret"

func protectApp(t *testing.T, users *repoMocks.MockUserRepository) (*fiber.App, *auth.TokenManager) {
	t.Helper()
	tokens := auth.NewTokenManager(config.JWTConfig{
		AccessSecret:  testAccessSecret,
		RefreshSecret: "refresh-secret",
		AccessExp:     "1d",
		RefreshExp:    "7d",
	})

	app := fiber.New()
	app.Get("/me", Protect(tokens, users), func(c *fiber.Ctx) error {
		u := UserFromCtx(c)
		p := ProfileFromCtx(c)
		if u == nil || p == nil {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.JSON(fiber.Map{"id": u.ID, "role": string(p.Role)})
	})
	return app, tokens
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Error.Code
}

func TestProtect(t *testing.T) {
	user := &model.User{ID: "user-1", Email: "jordan@example.com", CompanyID: "company-1"}
	profile := &model.Profile{UserID: "user-1", Role: model.RoleAdmin, MembershipStatus: model.MembershipPro}

	t.Run("bearer header", func(t *testing.T) {
		users := new(repoMocks.MockUserRepository)
		app, tokens := protectApp(t, users)

		token, err := tokens.IssueAccess("user-1", "pro")
		require.NoError(t, err)

		users.On("FindByID", mock.Anything, "user-1").Return(user, nil)
		users.On("FindProfileByUserID", mock.Anything, "user-1").Return(profile, nil)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "user-1", body["id"])
		assert.Equal(t, "admin", body["role"])
	})

	t.Run("access token cookie", func(t *testing.T) {
		users := new(repoMocks.MockUserRepository)
		app, tokens := protectApp(t, users)

		token, err := tokens.IssueAccess("user-1", "")
		require.NoError(t, err)

		users.On("FindByID", mock.Anything, "user-1").Return(user, nil)
		users.On("FindProfileByUserID", mock.Anything, "user-1").Return(profile, nil)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: auth.AccessTokenCookie, Value: token})
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("missing credentials", func(t *testing.T) {
		users := new(repoMocks.MockUserRepository)
		app, _ := protectApp(t, users)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "UNAUTHENTICATED", errorCode(t, resp))
	})

	t.Run("expired token", func(t *testing.T) {
		users := new(repoMocks.MockUserRepository)
		app, _ := protectApp(t, users)

		claims := auth.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "user-1",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
				IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			},
		}
		stale, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testAccessSecret))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+stale)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "TOKEN_EXPIRED", errorCode(t, resp))
	})

	t.Run("malformed token", func(t *testing.T) {
		users := new(repoMocks.MockUserRepository)
		app, _ := protectApp(t, users)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "INVALID_TOKEN", errorCode(t, resp))
	})

	t.Run("unknown account", func(t *testing.T) {
		users := new(repoMocks.MockUserRepository)
		app, tokens := protectApp(t, users)

		token, err := tokens.IssueAccess("ghost", "")
		require.NoError(t, err)

		users.On("FindByID", mock.Anything, "ghost").Return(nil, sql.ErrNoRows)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "UNAUTHENTICATED", errorCode(t, resp))
	})

	t.Run("missing profile defaults to member", func(t *testing.T) {
		users := new(repoMocks.MockUserRepository)
		app, tokens := protectApp(t, users)

		token, err := tokens.IssueAccess("user-1", "")
		require.NoError(t, err)

		users.On("FindByID", mock.Anything, "user-1").Return(user, nil)
		users.On("FindProfileByUserID", mock.Anything, "user-1").Return(nil, sql.ErrNoRows)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "member", body["role"])
	})
}
