package auth

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"docflow/internal/config"
)

var (
	// ErrTokenExpired is returned when the exp claim is in the past.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenMalformed is returned when a token cannot be decoded or its signature does not verify.
	ErrTokenMalformed = errors.New("invalid token")
	// ErrClaimMissing is returned when the required sub claim is absent or empty.
	ErrClaimMissing = errors.New("token subject claim missing")
)

// Claims is the decoded token payload. membership_status is carried on
// access tokens only.
type Claims struct {
	MembershipStatus string `json:"membership_status,omitempty"`
	jwt.RegisteredClaims
}

// TokenPair is an issued access/refresh token pair.
type TokenPair struct {
	TokenType    string `json:"token_type"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// TokenManager issues and verifies HS256-signed access and refresh tokens.
// Each token kind has its own secret; lifetimes come from day-count strings
// ("1d", "7d") in config.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration

	// now is the clock used for both issuing and verification.
	// Tests override it to simulate expiry.
	now func() time.Time
}

// NewTokenManager creates a TokenManager from JWT config.
func NewTokenManager(cfg config.JWTConfig) *TokenManager {
	return &TokenManager{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     parseDayCount(cfg.AccessExp, 24*time.Hour),
		refreshTTL:    parseDayCount(cfg.RefreshExp, 7*24*time.Hour),
		now:           time.Now,
	}
}

// parseDayCount parses a duration expressed as an integer day count with a
// "d" suffix. Anything else falls back to def.
func parseDayCount(s string, def time.Duration) time.Duration {
	if !strings.HasSuffix(s, "d") {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
	if err != nil || n <= 0 {
		return def
	}
	return time.Duration(n) * 24 * time.Hour
}

// AccessTTL returns the configured access token lifetime.
func (m *TokenManager) AccessTTL() time.Duration { return m.accessTTL }

// RefreshTTL returns the configured refresh token lifetime.
func (m *TokenManager) RefreshTTL() time.Duration { return m.refreshTTL }

// IssueAccess issues an access token for the subject. An empty membership
// defaults to "default".
func (m *TokenManager) IssueAccess(subject, membership string) (string, error) {
	if membership == "" {
		membership = "default"
	}
	return m.sign(subject, membership, m.accessSecret, m.accessTTL)
}

// IssueRefresh issues a refresh token for the subject.
func (m *TokenManager) IssueRefresh(subject string) (string, error) {
	return m.sign(subject, "", m.refreshSecret, m.refreshTTL)
}

func (m *TokenManager) sign(subject, membership string, secret []byte, ttl time.Duration) (string, error) {
	now := m.now()
	claims := Claims{
		MembershipStatus: membership,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// VerifyAccess verifies an access token and returns its claims.
func (m *TokenManager) VerifyAccess(tokenString string) (*Claims, error) {
	return m.verify(tokenString, m.accessSecret)
}

// VerifyRefresh verifies a refresh token and returns its claims.
func (m *TokenManager) VerifyRefresh(tokenString string) (*Claims, error) {
	return m.verify(tokenString, m.refreshSecret)
}

// verify distinguishes three failure kinds: ErrTokenExpired,
// ErrTokenMalformed (undecodable or bad signature) and ErrClaimMissing
// (sub absent). All are unauthenticated at the HTTP boundary.
func (m *TokenManager) verify(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenMalformed
		}
		return secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}
	if claims.Subject == "" {
		return nil, ErrClaimMissing
	}
	return claims, nil
}

// RefreshPair verifies a refresh token and mints a new access/refresh pair
// bound to the same subject. Reissue is stateless; the old refresh token is
// not invalidated server-side.
func (m *TokenManager) RefreshPair(refreshToken string) (*TokenPair, error) {
	claims, err := m.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, err
	}
	return m.IssuePair(claims.Subject, "")
}

// IssuePair issues both tokens for a subject.
func (m *TokenManager) IssuePair(subject, membership string) (*TokenPair, error) {
	access, err := m.IssueAccess(subject, membership)
	if err != nil {
		return nil, err
	}
	refresh, err := m.IssueRefresh(subject)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		TokenType:    "Bearer",
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}
