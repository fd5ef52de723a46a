package backend

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/yungbote/restaurant-admin/internal/domain"
)

// LoginResult is the backend's answer to a successful credential check.
type LoginResult struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

func (r LoginResult) Validate() error {
	if strings.TrimSpace(r.Token) == "" {
		return fmt.Errorf("%w: login: token is required", domain.ErrInvalid)
	}
	return r.User.Validate()
}

// Login exchanges operator credentials for a backend token.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	return Send[LoginResult](ctx, c, http.MethodPost, PathLogin, body)
}
