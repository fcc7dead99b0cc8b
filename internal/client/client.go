package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"quirknotes/internal/types"
)

const defaultTimeout = 10 * time.Second

// Client talks to a notes backend over HTTP. The base URL is always injected;
// the client has no built-in address.
type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(*Client)

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.http.Timeout = timeout
		}
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("base url is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url %q: scheme must be http or https", baseURL)
	}
	c := &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/health", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ListNotes(ctx context.Context) ([]*types.Note, error) {
	var resp NotesResponse
	if err := c.doJSON(ctx, http.MethodGet, "/getAllNotes", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Response == nil {
		return []*types.Note{}, nil
	}
	return resp.Response, nil
}

// CreateNote posts a new note and returns it with the backend-assigned id.
func (c *Client) CreateNote(ctx context.Context, fields types.NoteFields) (*types.Note, error) {
	var resp CreateNoteResponse
	if err := c.doJSON(ctx, http.MethodPost, "/postNote", fields, &resp); err != nil {
		return nil, err
	}
	id := strings.TrimSpace(resp.InsertedID)
	if id == "" {
		return nil, &TransportError{Op: "create note", Err: errors.New("response is missing insertedId")}
	}
	return &types.Note{ID: id, Title: fields.Title, Content: fields.Content}, nil
}

func (c *Client) UpdateNote(ctx context.Context, id string, fields types.NoteFields) (*types.Note, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("note id is required")
	}
	if err := c.doJSON(ctx, http.MethodPatch, "/patchNote/"+url.PathEscape(id), fields, nil); err != nil {
		return nil, err
	}
	return &types.Note{ID: id, Title: fields.Title, Content: fields.Content}, nil
}

func (c *Client) DeleteNote(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errors.New("note id is required")
	}
	return c.doJSON(ctx, http.MethodDelete, "/deleteNote/"+url.PathEscape(id), nil, nil)
}

func (c *Client) DeleteAllNotes(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodDelete, "/deleteAllNotes", nil, nil)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	httpClient := c.http
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Op: "decode " + path, Err: err}
	}
	return nil
}
