// Package identity is the client for the external identity provider.
// Credential handling (sign-up, sign-in, sign-out) is fully delegated;
// the service only stores a shadow account keyed by the provider's
// user id.
package identity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/AGKL-Team/AGKL-Sales-backend/pkg/config"
)

// User is the provider's view of an authenticated user
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session carries an issued access token and its lifetime in seconds
type Session struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type errorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Message          string `json:"msg"`
}

// Client talks to the identity provider's HTTP API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

var defaultClient *Client

// Initialize sets up the package-level client from configuration
func Initialize(cfg *config.IdentityConfig) {
	defaultClient = NewClient(cfg)
}

// NewClient creates an identity provider client
func NewClient(cfg *config.IdentityConfig) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// SignUp registers a new user and returns the provider's user record
func SignUp(email, password string) (*User, error) {
	return defaultClient.SignUp(email, password)
}

// SignIn authenticates a user and returns a session
func SignIn(email, password string) (*Session, error) {
	return defaultClient.SignIn(email, password)
}

// SignOut closes every session of the token's user (global scope)
func SignOut(accessToken string) error {
	return defaultClient.SignOut(accessToken)
}

// CurrentUser resolves the user behind an access token
func CurrentUser(accessToken string) (*User, error) {
	return defaultClient.CurrentUser(accessToken)
}

// SignUp registers a new user with email and password
func (c *Client) SignUp(email, password string) (*User, error) {
	payload := map[string]string{"email": email, "password": password}

	var user User
	if err := c.post("/signup", "", payload, &user); err != nil {
		return nil, err
	}
	if user.ID == "" {
		return nil, fmt.Errorf("identity provider returned no user")
	}
	return &user, nil
}

// SignIn authenticates with the password grant
func (c *Client) SignIn(email, password string) (*Session, error) {
	payload := map[string]string{"email": email, "password": password}

	var session Session
	if err := c.post("/token?grant_type=password", "", payload, &session); err != nil {
		return nil, err
	}
	if session.AccessToken == "" {
		return nil, fmt.Errorf("identity provider returned no session")
	}
	return &session, nil
}

// SignOut revokes every session of the token's user
func (c *Client) SignOut(accessToken string) error {
	return c.post("/logout?scope=global", accessToken, nil, nil)
}

// CurrentUser resolves the user behind an access token
func (c *Client) CurrentUser(accessToken string) (*User, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/user", nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req, accessToken)

	var user User
	if err := c.do(req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) post(path, accessToken string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return err
	}
	c.setHeaders(req, accessToken)

	return c.do(req, out)
}

func (c *Client) setHeaders(req *http.Request, accessToken string) {
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("identity provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp errorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil {
			if errResp.ErrorDescription != "" {
				return fmt.Errorf("identity provider: %s", errResp.ErrorDescription)
			}
			if errResp.Message != "" {
				return fmt.Errorf("identity provider: %s", errResp.Message)
			}
			if errResp.Error != "" {
				return fmt.Errorf("identity provider: %s", errResp.Error)
			}
		}
		return fmt.Errorf("identity provider: %d %s", resp.StatusCode, string(respBody))
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(respBody, out)
}
