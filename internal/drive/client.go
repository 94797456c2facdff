package drive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"docflow/internal/config"
)

// Error is a non-2xx response from the drive API.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("drive: HTTP %d: %s", e.StatusCode, e.Message)
}

// Client talks to the remote drive REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      TokenSource
	chunkSize  int64
}

// NewClient creates a drive client. A nil httpClient falls back to
// http.DefaultClient.
func NewClient(cfg config.DriveConfig, httpClient *http.Client, token TokenSource) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: httpClient,
		token:      token,
		chunkSize:  DefaultChunkSize,
	}
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("drive: creating request: %w", err)
	}
	tok, err := c.token.Token(ctx)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+tok)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("drive: request failed: %w", err)
	}
	return resp, nil
}

func apiError(resp *http.Response) error {
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &Error{StatusCode: resp.StatusCode, Message: string(bytes.TrimSpace(msg))}
}

// CreateUploadSession opens a resumable upload session for a file under the
// drive's Documents folder, replacing any existing item with the same name.
func (c *Client) CreateUploadSession(ctx context.Context, remoteName string) (*UploadSession, error) {
	body := []byte(`{"item":{"@microsoft.graph.conflictBehavior":"replace"}}`)
	path := fmt.Sprintf("/drive/root:/Documents/%s:/createUploadSession", url.PathEscape(remoteName))

	resp, err := c.do(ctx, http.MethodPost, path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, apiError(resp)
	}

	var session UploadSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("drive: decoding upload session: %w", err)
	}
	if session.UploadURL == "" {
		return nil, fmt.Errorf("drive: upload session missing uploadUrl")
	}
	return &session, nil
}

// UploadChunk sends one byte range of a file to an upload session. The
// server accepts chunks strictly in order, so offset must equal the number
// of bytes uploaded so far.
func (c *Client) UploadChunk(ctx context.Context, session *UploadSession, chunk io.Reader, offset, length, total int64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, session.UploadURL, chunk)
	if err != nil {
		return fmt.Errorf("drive: creating chunk request: %w", err)
	}
	req.ContentLength = length
	req.Header.Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", offset, offset+length-1, total))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("drive: chunk upload failed: %w", err)
	}
	defer resp.Body.Close()

	// 202 acknowledges an intermediate chunk, 200/201 the final one.
	switch resp.StatusCode {
	case http.StatusAccepted, http.StatusOK, http.StatusCreated:
		return nil
	default:
		return apiError(resp)
	}
}

// UploadFile mirrors a local file to the drive: one upload session, then
// sequential fixed-size chunk PUTs until the file is exhausted. The local
// file is left in place; the caller decides when to remove it.
func (c *Client) UploadFile(ctx context.Context, localPath, remoteName string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("drive: opening %s: %w", localPath, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("drive: stat %s: %w", localPath, err)
	}
	total := info.Size()

	session, err := c.CreateUploadSession(ctx, remoteName)
	if err != nil {
		return err
	}

	for offset := int64(0); offset < total; offset += c.chunkSize {
		length := c.chunkSize
		if remaining := total - offset; remaining < length {
			length = remaining
		}
		chunk := io.LimitReader(f, length)
		if err := c.UploadChunk(ctx, session, chunk, offset, length, total); err != nil {
			return err
		}
	}
	return nil
}

type itemList struct {
	Value []Item `json:"value"`
}

// ListRootChildren lists the entries at the root of the drive.
func (c *Client) ListRootChildren(ctx context.Context) ([]Item, error) {
	resp, err := c.do(ctx, http.MethodGet, "/drive/root/children", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var list itemList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("drive: decoding item list: %w", err)
	}
	return list.Value, nil
}

// DeleteItem removes an item from the drive by ID.
func (c *Client) DeleteItem(ctx context.Context, itemID string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/drive/items/"+url.PathEscape(itemID), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	return nil
}
