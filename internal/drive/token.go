package drive

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"docflow/internal/config"
)

// ClientCredentialsSource obtains app-only bearer tokens using the OAuth2
// client-credentials grant and caches them until shortly before expiry.
// It is safe for concurrent use.
type ClientCredentialsSource struct {
	tokenURL     string
	clientID     string
	clientSecret string
	httpClient   *http.Client

	mu      sync.Mutex
	token   string
	expires time.Time
}

// expirySlack is subtracted from the advertised lifetime so a token is never
// used in the last moments before the server rejects it.
const expirySlack = 30 * time.Second

// NewClientCredentialsSource creates a token source from drive config.
// When TokenURL is empty, the well-known tenant token endpoint is derived
// from the tenant ID.
func NewClientCredentialsSource(cfg config.DriveConfig, httpClient *http.Client) *ClientCredentialsSource {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0/token", cfg.TenantID)
	}
	return &ClientCredentialsSource{
		tokenURL:     tokenURL,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		httpClient:   httpClient,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Token returns a cached token or fetches a fresh one.
func (s *ClientCredentialsSource) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" && time.Now().Before(s.expires) {
		return s.token, nil
	}

	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {s.clientID},
		"client_secret": {s.clientSecret},
		"scope":         {"https://graph.microsoft.com/.default"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("drive: creating token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("drive: token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &Error{StatusCode: resp.StatusCode, Message: "token request rejected"}
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("drive: decoding token response: %w", err)
	}
	if tr.AccessToken == "" {
		return "", fmt.Errorf("drive: token response missing access_token")
	}

	s.token = tr.AccessToken
	s.expires = time.Now().Add(time.Duration(tr.ExpiresIn)*time.Second - expirySlack)
	return s.token, nil
}
