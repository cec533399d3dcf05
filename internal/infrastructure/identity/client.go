package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"subhub/internal/shared/config"
	"subhub/internal/shared/errors"
	"subhub/internal/shared/logger"
)

// Account is the provider-side representation of an identity.
type Account struct {
	ID           string                 `json:"id"`
	Email        string                 `json:"email"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
	CreatedAt    string                 `json:"created_at"`
}

// Session is an issued token pair.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	User         *Account `json:"user,omitempty"`
}

// Client talks to a GoTrue-compatible identity provider over its REST API.
// Credential verification lives entirely on the provider side; this service
// only mirrors the resulting accounts.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     logger.Interface
}

func NewClient(cfg *config.IdentityConfig, log logger.Interface) *Client {
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: log.Named("identity"),
	}
}

type signUpRequest struct {
	Email    string                 `json:"email"`
	Password string                 `json:"password"`
	Data     map[string]interface{} `json:"data,omitempty"`
}

// SignUp registers a new account with the provider. Profile metadata is
// forwarded so the provider record carries it too.
func (c *Client) SignUp(ctx context.Context, email, password string, metadata map[string]interface{}) (*Account, error) {
	var account Account
	err := c.do(ctx, http.MethodPost, "/signup", "", signUpRequest{
		Email:    email,
		Password: password,
		Data:     metadata,
	}, &account)
	if err != nil {
		return nil, err
	}

	c.logger.Infow("account registered with identity provider", "email", email)
	return &account, nil
}

type passwordGrantRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignIn exchanges credentials for a session.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	var session Session
	err := c.do(ctx, http.MethodPost, "/token?grant_type=password", "", passwordGrantRequest{
		Email:    email,
		Password: password,
	}, &session)
	if err != nil {
		return nil, err
	}

	c.logger.Infow("session issued", "email", email)
	return &session, nil
}

// SignOut revokes the session behind the access token.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	return c.do(ctx, http.MethodPost, "/logout", accessToken, nil, nil)
}

// GetUser fetches the account behind an access token.
func (c *Client) GetUser(ctx context.Context, accessToken string) (*Account, error) {
	var account Account
	if err := c.do(ctx, http.MethodGet, "/user", accessToken, nil, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

type updateUserRequest struct {
	Password string                 `json:"password,omitempty"`
	Data     map[string]interface{} `json:"data,omitempty"`
}

// UpdateUser updates provider-side metadata for the account behind the token.
func (c *Client) UpdateUser(ctx context.Context, accessToken string, metadata map[string]interface{}) (*Account, error) {
	var account Account
	err := c.do(ctx, http.MethodPut, "/user", accessToken, updateUserRequest{Data: metadata}, &account)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// UpdatePassword validates the current password by signing in, then sets the
// new one on the account behind the token.
func (c *Client) UpdatePassword(ctx context.Context, accessToken, email, currentPassword, newPassword string) error {
	if _, err := c.SignIn(ctx, email, currentPassword); err != nil {
		return errors.NewUnauthorizedError("current password is incorrect")
	}

	return c.do(ctx, http.MethodPut, "/user", accessToken, updateUserRequest{Password: newPassword}, nil)
}

type recoverRequest struct {
	Email string `json:"email"`
}

// ResetPassword asks the provider to send a password reset email.
func (c *Client) ResetPassword(ctx context.Context, email string) error {
	if err := c.do(ctx, http.MethodPost, "/recover", "", recoverRequest{Email: email}, nil); err != nil {
		return err
	}

	c.logger.Infow("password reset email requested", "email", email)
	return nil
}

type refreshGrantRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// RefreshToken exchanges a refresh token for a fresh session.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*Session, error) {
	var session Session
	err := c.do(ctx, http.MethodPost, "/token?grant_type=refresh_token", "", refreshGrantRequest{
		RefreshToken: refreshToken,
	}, &session)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

type providerError struct {
	Message          string `json:"msg"`
	ErrorDescription string `json:"error_description"`
	ErrorCode        string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path, accessToken string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build identity request: %w", err)
	}

	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Errorw("identity provider request failed", "method", method, "path", path, "error", err)
		return errors.NewInternalError("identity provider unavailable", err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var provErr providerError
		data, _ := io.ReadAll(resp.Body)
		_ = json.Unmarshal(data, &provErr)

		message := provErr.Message
		if message == "" {
			message = provErr.ErrorDescription
		}
		if message == "" {
			message = fmt.Sprintf("identity provider returned status %d", resp.StatusCode)
		}

		c.logger.Warnw("identity provider rejected request",
			"method", method, "path", path, "status", resp.StatusCode, "message", message)

		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return errors.NewUnauthorizedError(message)
		case http.StatusUnprocessableEntity, http.StatusBadRequest:
			return errors.NewValidationError(message)
		case http.StatusConflict:
			return errors.NewConflictError(message)
		default:
			return errors.NewInternalError(message)
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode identity response: %w", err)
		}
	}

	return nil
}
