package client

import (
	"context"
	"fmt"

	"github.com/bluedragon-network/sipnav-go/internal/http"
	"github.com/bluedragon-network/sipnav-go/pkg/sipnav"
)

// AuthenticationClient implements sipnav.AuthClient. It is purely functional:
// it never mutates the owning client's session, callers swap sessions with
// Client.SetSession when a flow issues a new token.
type AuthenticationClient struct {
	// httpClient carries the session token; used for logout and proxy
	// transitions, which the platform authorizes against the current user.
	httpClient *http.Client

	// loginClient has no token manager; login, password resets, and OTP
	// verification run before a session exists.
	loginClient *http.Client
}

// NewAuthenticationClient creates a new authentication client.
func NewAuthenticationClient(httpClient, loginClient *http.Client) *AuthenticationClient {
	return &AuthenticationClient{
		httpClient:  httpClient,
		loginClient: loginClient,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginAuth exchanges credentials for a token. Shared with the lazy session
// manager so both paths stay identical.
func loginAuth(ctx context.Context, loginClient *http.Client, username, password string) (*sipnav.LoginResult, error) {
	resp, err := loginClient.Post(ctx, "/api/login", &loginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, fmt.Errorf("logging in: %w", err)
	}

	var result sipnav.LoginResult
	if err := unwrapData(resp, &result); err != nil {
		return nil, err
	}

	if result.Username == "" {
		result.Username = username
	}

	return &result, nil
}

// Login implements sipnav.AuthClient.Login. When the account has two-factor
// auth enabled the result carries TwoFactorRequired and an EncryptedUser for
// the follow-up VerifyOTP call instead of a token.
func (c *AuthenticationClient) Login(ctx context.Context, username, password string) (*sipnav.LoginResult, error) {
	return loginAuth(ctx, c.loginClient, username, password)
}

// Logout implements sipnav.AuthClient.Logout. The server invalidates the
// current token; callers should discard their session afterwards.
func (c *AuthenticationClient) Logout(ctx context.Context) error {
	_, err := c.httpClient.Post(ctx, "/api/logout", nil)
	if err != nil {
		return fmt.Errorf("logging out: %w", err)
	}

	return nil
}

// SendPasswordResetEmail implements sipnav.AuthClient.SendPasswordResetEmail.
func (c *AuthenticationClient) SendPasswordResetEmail(ctx context.Context, username string) error {
	path := fmt.Sprintf("/api/password/email/%s", username)

	_, err := c.loginClient.Get(ctx, path, nil)
	if err != nil {
		return fmt.Errorf("requesting password reset: %w", err)
	}

	return nil
}

type resetPasswordRequest struct {
	TempPassword    string `json:"t_password"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"c_password"`
}

// ResetPassword implements sipnav.AuthClient.ResetPassword.
func (c *AuthenticationClient) ResetPassword(ctx context.Context, encryptedUser, tempPassword, newPassword, confirmPassword string) error {
	path := fmt.Sprintf("/api/password/reset/%s", encryptedUser)

	_, err := c.loginClient.Post(ctx, path, &resetPasswordRequest{
		TempPassword:    tempPassword,
		Password:        newPassword,
		ConfirmPassword: confirmPassword,
	})
	if err != nil {
		return fmt.Errorf("resetting password: %w", err)
	}

	return nil
}

type verifyOTPRequest struct {
	TwoFactorCode int `json:"two_factor_code"`
}

// VerifyOTP implements sipnav.AuthClient.VerifyOTP.
func (c *AuthenticationClient) VerifyOTP(ctx context.Context, encryptedUser string, code int) (*sipnav.LoginResult, error) {
	path := fmt.Sprintf("/api/verify/%s", encryptedUser)

	resp, err := c.loginClient.Post(ctx, path, &verifyOTPRequest{TwoFactorCode: code})
	if err != nil {
		return nil, fmt.Errorf("verifying code: %w", err)
	}

	var result sipnav.LoginResult
	if err := unwrapData(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// StartProxy implements sipnav.AuthClient.StartProxy.
func (c *AuthenticationClient) StartProxy(ctx context.Context, userID int) (*sipnav.LoginResult, error) {
	path := fmt.Sprintf("/api/proxy/%d", userID)

	resp, err := c.httpClient.Post(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("starting proxy session: %w", err)
	}

	var result sipnav.LoginResult
	if err := unwrapData(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// StopProxy implements sipnav.AuthClient.StopProxy.
func (c *AuthenticationClient) StopProxy(ctx context.Context) (*sipnav.LoginResult, error) {
	resp, err := c.httpClient.Post(ctx, "/api/proxy/stop", nil)
	if err != nil {
		return nil, fmt.Errorf("stopping proxy session: %w", err)
	}

	var result sipnav.LoginResult
	if err := unwrapData(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}
