package remote

import (
	"context"
	"fmt"
)

// Login obtains a bearer token for the configured credentials. A response
// without a token is an ErrAuth, which callers treat as fatal for the
// whole submission phase.
func (c *client) Login(ctx context.Context) (string, error) {
	variables := map[string]any{
		"username":  c.username,
		"password":  c.password,
		"logoutAll": c.logoutAll,
	}

	resp, err := c.post(ctx, "", loginMutation, variables)
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}

	if resp.Data == nil || resp.Data.Login == nil || resp.Data.Login.Token == "" {
		if msgs := resp.ErrorMessages(); len(msgs) > 0 {
			return "", fmt.Errorf("%w: %s", ErrAuth, msgs[0])
		}
		return "", ErrAuth
	}

	return resp.Data.Login.Token, nil
}
