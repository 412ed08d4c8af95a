// Package client is a small Go client for the comment board API. Credentials
// live in an explicit, mutex-guarded holder on the Client rather than in any
// ambient global state.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// ErrNotAuthenticated is returned when a call requires credentials and the
// client holds none.
var ErrNotAuthenticated = errors.New("client: not authenticated")

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Kind       string `json:"error"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("client: api error %d (%s): %s", e.StatusCode, e.Kind, e.Message)
}

// User is the external shape of a user account.
type User struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ACLEntry is a per-user grant attached to a comment.
type ACLEntry struct {
	UserID    string `json:"userId"`
	CanRead   bool   `json:"canRead"`
	CanWrite  bool   `json:"canWrite"`
	CanDelete bool   `json:"canDelete"`
}

// Comment is the external shape of a comment.
type Comment struct {
	ID          string     `json:"id"`
	AuthorID    string     `json:"authorId"`
	Content     string     `json:"content"`
	Permissions []ACLEntry `json:"permissions"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type authResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type refreshResponse struct {
	AccessToken string `json:"accessToken"`
}

type listCommentsResponse struct {
	Comments []Comment `json:"comments"`
}

// credentials is the client's token holder. All access goes through the
// mutex; tokens are never written anywhere else.
type credentials struct {
	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

func (c *credentials) set(access, refresh string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = access
	if refresh != "" {
		c.refreshToken = refresh
	}
}

func (c *credentials) get() (access, refresh string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken, c.refreshToken
}

func (c *credentials) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = ""
	c.refreshToken = ""
}

// Client talks to a comment board server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	creds      credentials
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a Client for the given base URL (e.g. "http://localhost:8080").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Authenticated reports whether the client currently holds an access token.
func (c *Client) Authenticated() bool {
	access, _ := c.creds.get()
	return access != ""
}

// Register creates an account and stores the returned token pair.
func (c *Client) Register(ctx context.Context, name, email, password string) (*User, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var resp authResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/register", body, &resp, false); err != nil {
		return nil, err
	}
	c.creds.set(resp.AccessToken, resp.RefreshToken)
	return &resp.User, nil
}

// Login authenticates and stores the returned token pair.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	body := map[string]string{"email": email, "password": password}
	var resp authResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/login", body, &resp, false); err != nil {
		return nil, err
	}
	c.creds.set(resp.AccessToken, resp.RefreshToken)
	return &resp.User, nil
}

// Logout revokes the session on the server and clears the held credentials.
// Credentials are cleared even when the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/logout", nil, nil, true)
	c.creds.clear()
	return err
}

// Me returns the authenticated user's account.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/auth/me", nil, &user, true); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListComments returns every comment the user may read.
func (c *Client) ListComments(ctx context.Context) ([]Comment, error) {
	var resp listCommentsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/comments", nil, &resp, true); err != nil {
		return nil, err
	}
	return resp.Comments, nil
}

// CreateComment posts a comment with an optional initial ACL.
func (c *Client) CreateComment(ctx context.Context, content string, acl []ACLEntry) (*Comment, error) {
	body := map[string]any{"content": content}
	if acl != nil {
		body["permissions"] = acl
	}
	var comment Comment
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/comments", body, &comment, true); err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetComment fetches a single comment.
func (c *Client) GetComment(ctx context.Context, id string) (*Comment, error) {
	var comment Comment
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/comments/"+id, nil, &comment, true); err != nil {
		return nil, err
	}
	return &comment, nil
}

// UpdateComment replaces a comment's content and, when acl is non-nil, its ACL.
func (c *Client) UpdateComment(ctx context.Context, id, content string, acl []ACLEntry) (*Comment, error) {
	body := map[string]any{"content": content}
	if acl != nil {
		body["permissions"] = acl
	}
	var comment Comment
	if err := c.doJSON(ctx, http.MethodPut, "/api/v1/comments/"+id, body, &comment, true); err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment soft-deletes a comment.
func (c *Client) DeleteComment(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/v1/comments/"+id, nil, nil, true)
}

// doJSON issues a request, decoding any JSON response into out. When authed
// is set and the server answers 401, the client refreshes the access token
// and retries exactly once; a failed refresh clears the credential holder.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any, authed bool) error {
	resp, err := c.send(ctx, method, path, body, authed)
	if err != nil {
		return err
	}

	if authed && resp.StatusCode == http.StatusUnauthorized {
		drain(resp)
		if rerr := c.refresh(ctx); rerr != nil {
			c.creds.clear()
			return rerr
		}
		resp, err = c.send(ctx, method, path, body, authed)
		if err != nil {
			return err
		}
	}
	defer drain(resp)

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return apiErr
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, body any, authed bool) (*http.Response, error) {
	var payload io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		payload = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		access, _ := c.creds.get()
		if access == "" {
			return nil, ErrNotAuthenticated
		}
		req.Header.Set("Authorization", "Bearer "+access)
	}

	return c.httpClient.Do(req)
}

// refresh exchanges the held refresh token for a new access token.
func (c *Client) refresh(ctx context.Context) error {
	_, refreshToken := c.creds.get()
	if refreshToken == "" {
		return ErrNotAuthenticated
	}

	body := map[string]string{"refreshToken": refreshToken}
	resp, err := c.send(ctx, http.MethodPost, "/api/v1/auth/refresh-token", body, false)
	if err != nil {
		return err
	}
	defer drain(resp)

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return apiErr
	}

	var rr refreshResponse
	if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil {
		return err
	}
	c.creds.set(rr.AccessToken, "")
	return nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
