package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Cookie names for the session token pair.
const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)

// SetSessionCookies attaches the token pair as HTTP-only cookies. The tokens
// are also returned in the response body by the handlers; cookie lifetime
// matches token lifetime.
func SetSessionCookies(c *fiber.Ctx, pair *TokenPair, accessTTL, refreshTTL time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     AccessTokenCookie,
		Value:    pair.AccessToken,
		Expires:  time.Now().Add(accessTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteNoneMode,
	})
	c.Cookie(&fiber.Cookie{
		Name:     RefreshTokenCookie,
		Value:    pair.RefreshToken,
		Expires:  time.Now().Add(refreshTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteNoneMode,
	})
}

// ClearSessionCookies overwrites both cookies with immediately expired
// values. There is no server-side session store; a previously issued access
// token stays cryptographically valid until its natural expiry.
func ClearSessionCookies(c *fiber.Ctx) {
	expired := time.Now().Add(-time.Hour)
	for _, name := range []string{AccessTokenCookie, RefreshTokenCookie} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Expires:  expired,
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteNoneMode,
		})
	}
}
