package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"fitness-app-go/pkg/plan"
)

const defaultTimeout = 15 * time.Second

// Client talks to the fitness API. It is safe for concurrent use.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	onUnauthorized func()

	mu    sync.RWMutex
	token string
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithUnauthorizedHandler registers fn to run whenever an authenticated call
// comes back 401 or 403.
func WithUnauthorizedHandler(fn func()) Option {
	return func(c *Client) {
		c.onUnauthorized = fn
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

type Profile struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	AvatarURL *string  `json:"avatar_url"`
	Height    *float64 `json:"height"`
	Weight    *float64 `json:"weight"`
	BodyFat   *float64 `json:"body_fat"`
}

type Session struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}

type Avatar struct {
	Filename string
	Body     io.Reader
}

type Completions struct {
	WeekStart  string   `json:"week_start"`
	WorkoutIDs []string `json:"workout_ids"`
}

type Progress struct {
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Percent   float64 `json:"percent"`
	Tier      string  `json:"tier"`
	Message   string  `json:"message"`
}

func (c *Client) Register(ctx context.Context, name, email, password string) (*Session, error) {
	var out Session
	payload := map[string]string{"name": name, "email": email, "password": password}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", payload, &out); err != nil {
		return nil, err
	}
	c.SetToken(out.Token)
	return &out, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var out Session
	payload := map[string]string{"email": email, "password": password}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", payload, &out); err != nil {
		return nil, err
	}
	c.SetToken(out.Token)
	return &out, nil
}

// Logout revokes the token on the server and forgets it locally, even when
// the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	if c.Token() == "" {
		return nil
	}
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
	c.SetToken("")
	return err
}

func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	var out Profile
	if err := c.doJSON(ctx, http.MethodGet, "/api/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile validates the update and only then sends it as
// multipart/form-data.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*Profile, error) {
	if err := ValidateProfile(update); err != nil {
		return nil, err
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fields := [][2]string{
		{"name", strings.TrimSpace(update.Name)},
		{"height", strings.TrimSpace(update.Height)},
		{"weight", strings.TrimSpace(update.Weight)},
	}
	for _, field := range fields {
		if err := writer.WriteField(field[0], field[1]); err != nil {
			return nil, fmt.Errorf("build form: %w", err)
		}
	}
	if update.Avatar != nil && update.Avatar.Body != nil {
		part, err := writer.CreateFormFile("avatar", update.Avatar.Filename)
		if err != nil {
			return nil, fmt.Errorf("build form: %w", err)
		}
		if _, err := io.Copy(part, update.Avatar.Body); err != nil {
			return nil, fmt.Errorf("read avatar: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("build form: %w", err)
	}

	var out Profile
	if err := c.do(ctx, http.MethodPut, "/api/profile", body, writer.FormDataContentType(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangePassword validates the change, sends it and switches to the token
// the server issues in exchange.
func (c *Client) ChangePassword(ctx context.Context, change PasswordChange) (string, error) {
	if err := ValidatePasswordChange(change); err != nil {
		return "", err
	}

	var out struct {
		Token string `json:"token"`
	}
	payload := map[string]string{"current_password": change.Current, "new_password": change.New}
	if err := c.doJSON(ctx, http.MethodPut, "/api/profile/password", payload, &out); err != nil {
		return "", err
	}
	c.SetToken(out.Token)
	return out.Token, nil
}

// ListWeek fetches the weekly plan; it satisfies plan.Source.
func (c *Client) ListWeek(ctx context.Context, userID string) ([]plan.Entry, error) {
	var out struct {
		Items []plan.Entry `json:"items"`
	}
	if err := c.doJSON(ctx, http.MethodGet, userPath(userID, "workouts"), nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *Client) Completions(ctx context.Context, userID string) (*Completions, error) {
	var out Completions
	if err := c.doJSON(ctx, http.MethodGet, userPath(userID, "completions"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Complete(ctx context.Context, userID, workoutID string) error {
	return c.doJSON(ctx, http.MethodPost, userPath(userID, "workouts", workoutID, "complete"), nil, nil)
}

func (c *Client) Progress(ctx context.Context, userID string) (*Progress, error) {
	var out Progress
	if err := c.doJSON(ctx, http.MethodGet, userPath(userID, "progress"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func userPath(userID string, parts ...string) string {
	escaped := make([]string, 0, len(parts)+1)
	escaped = append(escaped, url.PathEscape(userID))
	for _, part := range parts {
		escaped = append(escaped, url.PathEscape(part))
	}
	return "/api/users/" + strings.Join(escaped, "/")
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload interface{}, out interface{}) error {
	var body io.Reader
	contentType := ""
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, body, contentType, out)
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	token := c.Token()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		serr := &ServerError{Status: resp.StatusCode}
		var envelope errorEnvelope
		if raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 64<<10)); readErr == nil {
			if json.Unmarshal(raw, &envelope) == nil {
				serr.Code = envelope.Error.Code
				serr.Message = envelope.Error.Message
			}
		}
		if token != "" && serr.Unauthorized() && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return serr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
