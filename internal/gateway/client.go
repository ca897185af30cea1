package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mihret/tmscli/internal/config"
	"github.com/mihret/tmscli/internal/session"
)

const errorBodyLimit = 4 * 1024

// Client issues authenticated requests against the TMS API. Every call reads
// the injected session; a missing credential fails fast with Unauthenticated
// before any network activity.
type Client struct {
	baseURL string
	http    *http.Client
	sess    *session.Session
}

// New creates a client for the configured API, bound to the given session.
// A nil session is valid and restricts the client to public endpoints.
func New(cfg config.APIConfig, sess *session.Session) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/") + "/",
		http: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		sess: sess,
	}
}

// TokenPair is the login response from the token endpoint.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Login exchanges credentials for a token pair. Public endpoint.
func (c *Client) Login(ctx context.Context, username, password string) (TokenPair, error) {
	var pair TokenPair
	payload := map[string]string{"email": username, "password": password}
	if err := c.postPublic(ctx, EndpointLogin, payload, &pair); err != nil {
		return TokenPair{}, err
	}
	if strings.TrimSpace(pair.Access) == "" {
		return TokenPair{}, &Error{Kind: ServerError, Detail: "token endpoint returned no access token"}
	}
	return pair, nil
}

// FetchList fetches a list endpoint and returns the raw records from the
// server's {results: [...]} envelope.
func (c *Client) FetchList(ctx context.Context, path string) ([]json.RawMessage, error) {
	body, err := c.do(ctx, http.MethodGet, path, nil, true)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Results []json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &Error{Kind: ServerError, Detail: "malformed list response", cause: err}
	}
	return envelope.Results, nil
}

// FetchListInto fetches a list endpoint and decodes the results into out,
// which must be a pointer to a slice.
func (c *Client) FetchListInto(ctx context.Context, path string, out any) error {
	body, err := c.do(ctx, http.MethodGet, path, nil, true)
	if err != nil {
		return err
	}

	var envelope struct {
		Results json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return &Error{Kind: ServerError, Detail: "malformed list response", cause: err}
	}
	if len(envelope.Results) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Results, out); err != nil {
		return &Error{Kind: ServerError, Detail: "malformed list records", cause: err}
	}
	return nil
}

// GetJSON fetches a detail endpoint into out.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	body, err := c.do(ctx, http.MethodGet, path, nil, true)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &Error{Kind: ServerError, Detail: "malformed response body", cause: err}
	}
	return nil
}

// Mutate issues a state-changing call and returns the raw response body,
// which for action endpoints is the updated record.
func (c *Client) Mutate(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode payload: %w", err)
		}
		body = bytes.NewReader(encoded)
	}
	return c.do(ctx, method, path, body, true)
}

// MutateJSON issues a mutation and decodes the response into out.
func (c *Client) MutateJSON(ctx context.Context, method, path string, payload, out any) error {
	body, err := c.Mutate(ctx, method, path, payload)
	if err != nil {
		return err
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &Error{Kind: ServerError, Detail: "malformed response body", cause: err}
	}
	return nil
}

// SubmitFiles uploads files as a multipart form, with optional extra fields.
// The method follows the target endpoint; file submission on maintenance
// requests is a PATCH.
func (c *Client) SubmitFiles(ctx context.Context, method, path string, fields map[string]string, files map[string]string) error {
	if err := c.requireSession(); err != nil {
		return err
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return fmt.Errorf("write form field %s: %w", key, err)
		}
	}
	for field, filePath := range files {
		f, err := os.Open(filePath)
		if err != nil {
			return fmt.Errorf("open %s: %w", filePath, err)
		}
		part, err := writer.CreateFormFile(field, filepath.Base(filePath))
		if err != nil {
			f.Close()
			return fmt.Errorf("create form file %s: %w", field, err)
		}
		if _, err := io.Copy(part, f); err != nil {
			f.Close()
			return fmt.Errorf("copy %s: %w", filePath, err)
		}
		f.Close()
	}
	if err := writer.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", c.sess.Bearer())
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Kind: NetworkFailure, Detail: "request failed", cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}
	return nil
}

func (c *Client) postPublic(ctx context.Context, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode payload: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	raw, err := c.do(ctx, http.MethodPost, path, body, false)
	if err != nil {
		return err
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{Kind: ServerError, Detail: "malformed response body", cause: err}
	}
	return nil
}

// FetchPublicList fetches an unauthenticated list endpoint (departments).
func (c *Client) FetchPublicList(ctx context.Context, path string, out any) error {
	body, err := c.do(ctx, http.MethodGet, path, nil, false)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		// Some endpoints wrap in {results}, some return a bare array.
		var envelope struct {
			Results json.RawMessage `json:"results"`
		}
		if envErr := json.Unmarshal(body, &envelope); envErr == nil && len(envelope.Results) > 0 {
			return json.Unmarshal(envelope.Results, out)
		}
		return &Error{Kind: ServerError, Detail: "malformed list response", cause: err}
	}
	return nil
}

func (c *Client) requireSession() error {
	if !c.sess.Authenticated() {
		return &Error{Kind: Unauthenticated, Detail: "no active session; run 'tmscli login'"}
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, authenticated bool) ([]byte, error) {
	if authenticated {
		if err := c.requireSession(); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authenticated {
		req.Header.Set("Authorization", c.sess.Bearer())
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		slog.Debug("gateway request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return nil, &Error{Kind: NetworkFailure, Detail: "request failed", cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		gerr := statusError(resp)
		slog.Debug("gateway call rejected", "method", method, "path", path, "status", resp.StatusCode, "request_id", requestID)
		return nil, gerr
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: NetworkFailure, Detail: "read response", cause: err}
	}
	return raw, nil
}

func statusError(resp *http.Response) *Error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
	detail := errorDetail(raw)

	kind := ServerError
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		kind = Unauthenticated
	case http.StatusForbidden:
		kind = Forbidden
	case http.StatusNotFound:
		kind = NotFound
	}
	return &Error{Kind: kind, Status: resp.StatusCode, Detail: detail}
}

// errorDetail pulls the human message from the server's {detail|error} body.
func errorDetail(raw []byte) string {
	var body struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Detail != "" {
			return body.Detail
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return strings.TrimSpace(string(raw))
}
