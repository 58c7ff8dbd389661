package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"pathly/internal/domain/dashboard"
	"pathly/internal/domain/event"
	"pathly/internal/domain/internship"
	"pathly/internal/domain/note"
	"pathly/internal/domain/resource"
	"pathly/internal/domain/session"
)

// Client talks to the Pathly REST backend. The zero token sends
// unauthenticated requests; Authed derives a per-session view that
// attaches a bearer token while sharing the transport.
type Client struct {
	BaseURL string
	HTTP    *http.Client

	token string
}

// APIError is a non-2xx backend response with its extracted message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

// New creates a client for the backend at baseURL. The base URL must not
// end with a slash; request paths start with one.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// Authed returns a view of the client that sends the given bearer token
// with every request. The underlying transport is shared.
func (c *Client) Authed(token string) *Client {
	view := *c
	view.token = token
	return &view
}

// envelope is the backend's common response wrapper. Some endpoints
// return bare payloads instead; callers handle both.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

// do issues one request and decodes the response into out (out may be a
// *json.RawMessage to defer decoding). Non-2xx responses become APIError.
func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("building %s %s: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("X-Request-ID", uuid.New().String())

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		slog.Warn("api_call", "method", method, "path", path, "error", err)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: reading response: %w", method, path, err)
	}
	slog.Debug("api_call",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Message: serverMessage(raw)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s %s: decoding response: %w", method, path, err)
	}
	return nil
}

// getList fetches a collection endpoint, unwrapping the envelope when
// present, and decodes the item list into out.
func (c *Client) getList(ctx context.Context, path string, out any) error {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, "", nil, &raw); err != nil {
		return err
	}
	items, err := unwrapList(raw)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	return json.Unmarshal(items, out)
}

// unwrapList accepts either a bare JSON array or the standard envelope
// and returns the array payload.
func unwrapList(raw json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return trimmed, nil
	}
	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("unexpected response shape: %w", err)
	}
	if env.Success != nil && !*env.Success {
		return nil, &APIError{Status: http.StatusOK, Message: serverMessage(trimmed)}
	}
	if len(env.Data) == 0 {
		return json.RawMessage("[]"), nil
	}
	return env.Data, nil
}

// serverMessage extracts a human-readable message from an error body,
// falling back to the trimmed raw body capped at 200 bytes.
func serverMessage(raw []byte) string {
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil {
		if env.Error != "" {
			return env.Error
		}
		if env.Message != "" {
			return env.Message
		}
	}
	msg := strings.TrimSpace(string(raw))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}

// AuthResponse is the login/register payload: the account plus its
// bearer token.
type AuthResponse struct {
	User  session.User `json:"user"`
	Token string       `json:"token"`
}

// Login exchanges credentials for an account and token.
func (c *Client) Login(ctx context.Context, email, password string) (AuthResponse, error) {
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	var out AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", "application/json", bytes.NewReader(body), &out)
	return out, err
}

// RegisterInput is the signup form payload.
type RegisterInput struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	College        string `json:"college"`
	Branch         string `json:"branch"`
	GraduationYear string `json:"graduationYear"`
}

// Register creates an account and returns it with its token.
func (c *Client) Register(ctx context.Context, in RegisterInput) (AuthResponse, error) {
	body, _ := json.Marshal(in)
	var out AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", "application/json", bytes.NewReader(body), &out)
	return out, err
}

// UpdatePassword changes the signed-in account's password.
func (c *Client) UpdatePassword(ctx context.Context, current, updated string) error {
	body, _ := json.Marshal(map[string]string{
		"currentPassword": current,
		"newPassword":     updated,
	})
	return c.do(ctx, http.MethodPut, "/auth/updatepassword", "application/json", bytes.NewReader(body), nil)
}

// UpdateProfilePic uploads a new avatar and returns the refreshed account.
func (c *Client) UpdateProfilePic(ctx context.Context, filename string, file io.Reader) (session.User, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("profilePic", filename)
	if err != nil {
		return session.User{}, fmt.Errorf("building upload: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return session.User{}, fmt.Errorf("building upload: %w", err)
	}
	if err := w.Close(); err != nil {
		return session.User{}, fmt.Errorf("building upload: %w", err)
	}

	var out struct {
		User session.User    `json:"user"`
		Data json.RawMessage `json:"data"`
	}
	if err := c.do(ctx, http.MethodPut, "/auth/updateprofilepic", w.FormDataContentType(), &buf, &out); err != nil {
		return session.User{}, err
	}
	if out.User.ID != "" || out.User.MongoID != "" {
		return out.User, nil
	}
	var u session.User
	if len(out.Data) > 0 {
		if err := json.Unmarshal(out.Data, &u); err != nil {
			return session.User{}, fmt.Errorf("decoding profile response: %w", err)
		}
	}
	return u, nil
}

// ListNotes fetches all study notes.
func (c *Client) ListNotes(ctx context.Context) ([]note.Note, error) {
	var out []note.Note
	err := c.getList(ctx, "/notes", &out)
	return out, err
}

// NoteUpload is an admin note submission with its attached file.
type NoteUpload struct {
	Title       string
	Description string
	Subject     string
	Semester    string
	FileName    string
	File        io.Reader
}

// CreateNote posts a note with its file as multipart form data.
func (c *Client) CreateNote(ctx context.Context, in NoteUpload) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", in.FileName)
	if err != nil {
		return fmt.Errorf("building upload: %w", err)
	}
	if _, err := io.Copy(part, in.File); err != nil {
		return fmt.Errorf("building upload: %w", err)
	}
	fields := map[string]string{
		"title":       in.Title,
		"description": in.Description,
		"subject":     in.Subject,
		"semester":    in.Semester,
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return fmt.Errorf("building upload: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("building upload: %w", err)
	}
	return c.do(ctx, http.MethodPost, "/notes", w.FormDataContentType(), &buf, nil)
}

// DeleteNote removes a note by id.
func (c *Client) DeleteNote(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/notes/"+id, "", nil, nil)
}

// ListEvents fetches all events.
func (c *Client) ListEvents(ctx context.Context) ([]event.Event, error) {
	var out []event.Event
	err := c.getList(ctx, "/events", &out)
	return out, err
}

// EventUpload is an admin event submission.
type EventUpload struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Category    string `json:"category"`
	Link        string `json:"link"`
	Description string `json:"description,omitempty"`
}

// CreateEvent posts an event as JSON.
func (c *Client) CreateEvent(ctx context.Context, in EventUpload) error {
	body, _ := json.Marshal(in)
	return c.do(ctx, http.MethodPost, "/events", "application/json", bytes.NewReader(body), nil)
}

// DeleteEvent removes an event by id.
func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/events/"+id, "", nil, nil)
}

// ListInternships fetches all internship listings.
func (c *Client) ListInternships(ctx context.Context) ([]internship.Listing, error) {
	var out []internship.Listing
	err := c.getList(ctx, "/internships", &out)
	return out, err
}

// InternshipUpload is an admin internship submission.
type InternshipUpload struct {
	Role        string   `json:"role"`
	Company     string   `json:"company"`
	TechStack   []string `json:"techStack"`
	Link        string   `json:"link"`
	Description string   `json:"description,omitempty"`
	Tips        string   `json:"tips,omitempty"`
}

// CreateInternship posts an internship listing as JSON.
func (c *Client) CreateInternship(ctx context.Context, in InternshipUpload) error {
	body, _ := json.Marshal(in)
	return c.do(ctx, http.MethodPost, "/internships", "application/json", bytes.NewReader(body), nil)
}

// DeleteInternship removes a listing by id.
func (c *Client) DeleteInternship(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/internships/"+id, "", nil, nil)
}

// ListResources fetches all learning resources.
func (c *Client) ListResources(ctx context.Context) ([]resource.Resource, error) {
	var out []resource.Resource
	err := c.getList(ctx, "/resources", &out)
	return out, err
}

// DashboardStats fetches the dashboard summary, enveloped or bare.
func (c *Client) DashboardStats(ctx context.Context) (dashboard.Stats, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/dashboard/stats", "", nil, &raw); err != nil {
		return dashboard.Stats{}, err
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 {
		var stats dashboard.Stats
		if err := json.Unmarshal(env.Data, &stats); err != nil {
			return dashboard.Stats{}, fmt.Errorf("decoding stats: %w", err)
		}
		return stats, nil
	}
	var stats dashboard.Stats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return dashboard.Stats{}, fmt.Errorf("decoding stats: %w", err)
	}
	return stats, nil
}
