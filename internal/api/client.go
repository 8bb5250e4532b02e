package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"appwatch/internal/models"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// TokenSource hands out the current bearer token. It is consulted on every
// request, never cached, so a token refreshed elsewhere is honored on the next
// call without extra wiring.
type TokenSource interface {
	Token() string
}

type bearerTransport struct {
	src  TokenSource
	base http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if tok := t.src.Token(); tok != "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	return t.base.RoundTrip(req)
}

// Client is the one configured request pipeline to the App-Watch backend.
// Failures are not retried; they surface to the caller, with the backend's
// error payload attached when one was sent.
type Client struct {
	baseURL string
	http    *http.Client
	log     *log.Logger
}

func New(baseURL string, src TokenSource, logger *log.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Transport: &bearerTransport{src: src, base: http.DefaultTransport},
		},
		log: logger,
	}
}

// --- AUTH ---

func (c *Client) Login(ctx context.Context, email, password string) (models.AuthResponse, error) {
	var out models.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, map[string]string{
		"email": email, "password": password,
	}, &out)
	return out, err
}

func (c *Client) GoogleLogin(ctx context.Context, accessToken string) (models.AuthResponse, error) {
	var out models.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/google", nil, map[string]string{"token": accessToken}, &out)
	return out, err
}

type RegisterInput struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	TypeDocument string `json:"typeDocument"`
	Document     string `json:"document"`
}

func (c *Client) Register(ctx context.Context, in RegisterInput) (models.AuthResponse, error) {
	var out models.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/signup", nil, in, &out)
	return out, err
}

func (c *Client) VerifyToken(ctx context.Context) (models.UserData, error) {
	var out models.UserData
	err := c.do(ctx, http.MethodGet, "/auth/verify-token", nil, nil, &out)
	return out, err
}

func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/auth/request-reset-password", nil, map[string]string{"email": email}, nil)
}

func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	return c.do(ctx, http.MethodPost, "/auth/reset-password", nil, map[string]string{
		"token": token, "newPassword": newPassword,
	}, nil)
}

// --- PROFILE ---

func (c *Client) GetUserDetails(ctx context.Context, uuid string) (models.UserDetails, error) {
	var out models.UserDetails
	err := c.do(ctx, http.MethodGet, "/userDetails/"+uuid, nil, nil, &out)
	return out, err
}

func (c *Client) UpdateUserDetails(ctx context.Context, uuid, name, profileImageURL string) error {
	return c.do(ctx, http.MethodPut, "/userDetails/"+uuid, nil, map[string]string{
		"name": name, "profileImageUrl": profileImageURL,
	}, nil)
}

func (c *Client) UpdateNotification(ctx context.Context, uuid string, enabled bool) error {
	return c.do(ctx, http.MethodPatch, "/userDetails/"+uuid+"/notification", nil, map[string]bool{
		"notifications": enabled,
	}, nil)
}

// --- WEBSITE MONITORING ---

type RouteInput struct {
	UUID   string `json:"uuid,omitempty"`
	Method string `json:"method"`
	Route  string `json:"route"`
	Body   string `json:"body,omitempty"`
}

type WebsiteInput struct {
	Name   string       `json:"name"`
	URL    string       `json:"url"`
	Token  string       `json:"token,omitempty"`
	Routes []RouteInput `json:"routes"`
	UserID string       `json:"userId"`
}

func (c *Client) ListWebsites(ctx context.Context, userUUID string) (models.WebsiteList, error) {
	var out models.WebsiteList
	err := c.do(ctx, http.MethodGet, "/website-monitoring/user/"+userUUID, nil, nil, &out)
	return out, err
}

func (c *Client) CreateWebsite(ctx context.Context, in WebsiteInput) (models.Website, error) {
	var out models.Website
	err := c.do(ctx, http.MethodPost, "/website-monitoring", nil, in, &out)
	return out, err
}

func (c *Client) UpdateWebsite(ctx context.Context, uuid string, in WebsiteInput) error {
	return c.do(ctx, http.MethodPatch, "/website-monitoring/"+uuid, nil, in, nil)
}

// DeleteWebsite removes a monitored site; the backend cascades to its routes.
func (c *Client) DeleteWebsite(ctx context.Context, uuid string) error {
	return c.do(ctx, http.MethodDelete, "/website-monitoring/"+uuid, nil, nil, nil)
}

func (c *Client) DeleteRoute(ctx context.Context, routeUUID string) error {
	return c.do(ctx, http.MethodDelete, "/website-monitoring/routes/"+routeUUID, nil, nil, nil)
}

// Recheck asks the backend to probe one site now instead of waiting for the
// next scheduled pass. Callers re-fetch the list afterwards; the result does
// not come back on this call.
func (c *Client) Recheck(ctx context.Context, siteUUID string) error {
	return c.do(ctx, http.MethodPost, "/website-monitoring/"+siteUUID+"/recheck", nil, nil, nil)
}

// --- ADMIN LISTINGS ---

// ListQuery matches the paginated admin endpoints: page, itemsPerPage and an
// optional free-text search term.
type ListQuery struct {
	Page         int
	ItemsPerPage int
	Search       string
}

func (q ListQuery) values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("itemsPerPage", strconv.Itoa(q.ItemsPerPage))
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	return v
}

func (c *Client) ListAllWebsites(ctx context.Context, q ListQuery) (models.AdminWebsiteList, error) {
	var out models.AdminWebsiteList
	err := c.do(ctx, http.MethodGet, "/website-monitoring/listAllWebSites", q.values(), nil, &out)
	return out, err
}

func (c *Client) ListAllRoutes(ctx context.Context, q ListQuery) (models.AdminRouteList, error) {
	var out models.AdminRouteList
	err := c.do(ctx, http.MethodGet, "/website-monitoring/listAllRoutes", q.values(), nil, &out)
	return out, err
}

func (c *Client) ListUsers(ctx context.Context, q ListQuery) (models.AdminUserList, error) {
	var out models.AdminUserList
	err := c.do(ctx, http.MethodGet, "/users/list", q.values(), nil, &out)
	return out, err
}

func (c *Client) ListErrorLogs(ctx context.Context, q ListQuery) (models.ErrorLogList, error) {
	var out models.ErrorLogList
	err := c.do(ctx, http.MethodGet, "/errorLogs/list", q.values(), nil, &out)
	return out, err
}

// --- PLUMBING ---

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("request failed", "method", method, "path", path, "err", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		// Best effort: the backend sends {"message": "..."} but not always.
		json.NewDecoder(resp.Body).Decode(apiErr)
		c.log.Error("request rejected", "method", method, "path", path, "status", resp.StatusCode, "message", apiErr.Message)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
