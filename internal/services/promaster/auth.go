package promaster

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime"
	"strings"

	"github.com/j-veylop/promaster-tui/internal/logger"
	"github.com/j-veylop/promaster-tui/internal/models"
)

// unknownIP is sent when the public IP cannot be determined.
const unknownIP = "Unknown"

// ErrMissingToken is returned when a successful login carries no access token.
var ErrMissingToken = errors.New("login succeeded but no access token was returned")

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	Profile     *models.UserProfile
	AccessToken string
	Message     string
}

type loginResponse struct {
	AccessToken string              `json:"accessToken"`
	Token       string              `json:"token"`
	UserProfile *models.UserProfile `json:"userprofile"`
}

// Login authenticates a user. Any non-200 status is a failure whose
// message is the backend's "message" field.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*LoginResult, error) {
	if err := c.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid login request: %w", err)
	}

	body, header, err := c.do(ctx, http.MethodPost, loginPath, "", req)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return nil, &APIError{StatusCode: http.StatusUnauthorized, Message: "invalid user name or password"}
		}
		return nil, err
	}

	var env envelope[loginResponse]
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to parse login response: %w", err)
	}

	token := env.Result.AccessToken
	if token == "" {
		token = env.Result.Token
	}
	if token == "" {
		token = header.Get(AccessTokenHeader)
	}
	if token == "" {
		return nil, ErrMissingToken
	}

	return &LoginResult{
		AccessToken: token,
		Profile:     env.Result.UserProfile,
		Message:     env.Message,
	}, nil
}

// DeviceInfo describes this machine for the login request. The public IP is
// looked up when a lookup URL is configured; failures yield "Unknown".
func (c *Client) DeviceInfo(ctx context.Context) models.DeviceInfo {
	host, err := os.Hostname()
	if err != nil {
		host = unknownIP
	}

	return models.DeviceInfo{
		DeviceName: fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		HostName:   host,
		IPAddress:  c.publicIP(ctx),
		PlatformID: c.platformID,
	}
}

func (c *Client) publicIP(ctx context.Context) string {
	if c.ipLookupURL == "" {
		return unknownIP
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ipLookupURL, nil)
	if err != nil {
		return unknownIP
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("public IP lookup failed", "error", err)
		return unknownIP
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return unknownIP
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if err != nil {
		return unknownIP
	}

	var body struct {
		IP string `json:"ip"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.IP != "" {
		return body.IP
	}

	// Plain-text lookup services return the address alone.
	if ip := strings.TrimSpace(string(data)); ip != "" && !strings.ContainsAny(ip, "{}<> ") {
		return ip
	}
	return unknownIP
}
