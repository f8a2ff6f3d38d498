package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// Login exchanges credentials for a token. The backend answers either
// with a bare token string or a {token} / {access_token} object; all
// three shapes are accepted.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body, err := c.do(ctx, http.MethodPost, "/auth/token", loginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return "", err
	}
	return extractToken(body), nil
}

func (c *Client) Register(ctx context.Context, username, password, email string) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/register", registerRequest{
		Username: username,
		Password: password,
		Email:    email,
	})
	return err
}

func extractToken(body []byte) string {
	var asString string
	if err := json.Unmarshal(body, &asString); err == nil && asString != "" {
		return asString
	}
	var asObject struct {
		Token       string `json:"token"`
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &asObject); err == nil {
		if asObject.Token != "" {
			return asObject.Token
		}
		if asObject.AccessToken != "" {
			return asObject.AccessToken
		}
	}
	// Some gateways return the raw token without JSON quoting; a
	// structured body without a token field stays empty.
	raw := strings.TrimSpace(string(body))
	if raw == "" || raw[0] == '{' || raw[0] == '[' {
		return ""
	}
	return raw
}
