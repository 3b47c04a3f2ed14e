package api

import (
	"context"
	"fmt"
)

// Credentials are sent to the login and signup endpoints.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login signs in. The session cookie is kept in the client's jar.
func (c *Client) Login(ctx context.Context, creds Credentials) error {
	if err := c.validate.Struct(creds); err != nil {
		return fmt.Errorf("username and password are required")
	}
	if err := c.Post(ctx, "/api/login", creds, nil); err != nil {
		if IsUnauthorized(err) || Status(err) == 400 {
			return fmt.Errorf("invalid username or password: %w", err)
		}
		return err
	}
	return nil
}

// Signup creates an account and signs in.
func (c *Client) Signup(ctx context.Context, creds Credentials) error {
	if err := c.validate.Struct(creds); err != nil {
		return fmt.Errorf("username and password are required")
	}
	return c.Post(ctx, "/api/signup", creds, nil)
}
