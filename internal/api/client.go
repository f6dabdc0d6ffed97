package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultBaseURL = "https://api.corangelab.com"

// StatusError carries the HTTP status and raw body of a non-2xx response.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Body)
}

// TokenStore is the session-token persistence the client depends on. The
// token is injected here rather than read from ambient global state.
type TokenStore interface {
	Token() (string, bool, error)
	SetToken(token string) error
	Clear() error
}

// Client issues authenticated JSON calls against the wellness backend.
// The zero value with a Tokens store is usable; BaseURL, HTTPClient, and
// Logger have working defaults.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Tokens     TokenStore
	Logger     *zap.Logger
}

func (c *Client) baseURL() string {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	return base
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 12 * time.Second}
}

func (c *Client) log() *zap.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return zap.NewNop()
}

// do executes one request and returns the decoded body. Bodies that are not
// valid JSON are returned as their raw text. A non-2xx status yields a
// *StatusError alongside whatever body was decoded; 401/403 additionally
// drops the stored token since the backend no longer honors it.
func (c *Client) do(ctx context.Context, method, path string, body any) (any, error) {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request payload: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL()+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.execute(req)
}

func (c *Client) execute(req *http.Request) (any, error) {
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.Tokens != nil {
		token, ok, err := c.Tokens.Token()
		if err != nil {
			return nil, err
		}
		if ok {
			req.Header.Set("x-auth-token", token)
		}
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var decoded any
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			decoded = string(raw)
		}
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		if c.Tokens != nil {
			if err := c.Tokens.Clear(); err != nil {
				c.log().Warn("clear rejected token", zap.Error(err))
			}
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decoded, &StatusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	return decoded, nil
}

// call is the single normalization point for every endpoint: transport
// failures and unrecognized shapes both come back as a degraded envelope,
// never as an error the command layer could crash on. Degraded envelopes are
// logged so fallback data stays observable instead of masquerading as a
// successful fetch.
func (c *Client) call(ctx context.Context, method, path string, body any, hints ...string) Envelope {
	decoded, err := c.do(ctx, method, path, body)
	if err != nil {
		env := Envelope{
			Success:  false,
			Degraded: true,
			Err:      errorMessage(decoded, err),
		}
		c.log().Warn("request degraded",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("error", env.Err))
		return env
	}

	env := Extract(decoded, hints...)
	if env.Degraded {
		c.log().Warn("response shape unrecognized",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("error", env.Err))
	} else if !env.Success && env.Err == "" {
		env.Err = errorMessage(decoded, nil)
	}
	return env
}

// upload posts one file as multipart form data with a sibling date field,
// used by the food-photo and nutrition-label scan endpoints.
func (c *Client) upload(ctx context.Context, path string, file io.Reader, filename, date string, hints ...string) Envelope {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	part, err := writer.CreateFormFile("file", filename)
	if err == nil {
		_, err = io.Copy(part, file)
	}
	if err == nil && date != "" {
		err = writer.WriteField("date", date)
	}
	if err == nil {
		err = writer.Close()
	}
	if err != nil {
		env := Envelope{Success: false, Degraded: true, Err: fmt.Sprintf("build upload: %v", err)}
		c.log().Warn("upload degraded", zap.String("path", path), zap.String("error", env.Err))
		return env
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL()+path, buf)
	if err != nil {
		return Envelope{Success: false, Degraded: true, Err: fmt.Sprintf("create upload request: %v", err)}
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	decoded, err := c.execute(req)
	if err != nil {
		env := Envelope{Success: false, Degraded: true, Err: errorMessage(decoded, err)}
		c.log().Warn("upload degraded", zap.String("path", path), zap.String("error", env.Err))
		return env
	}
	return Extract(decoded, hints...)
}
