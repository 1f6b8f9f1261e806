package exchange

import (
	"context"

	"github.com/quantfold/tradeterm/pkg/models"
)

// Probe checks whether a backend session already exists. An *APIError with
// status 401 simply means "not logged in".
func (c *Client) Probe(ctx context.Context) (*models.Member, error) {
	var member models.Member
	if err := c.get(ctx, "/api/members/me", &member); err != nil {
		return nil, err
	}
	return &member, nil
}

// Login authenticates and stores the session cookie in the client's jar.
func (c *Client) Login(ctx context.Context, account, password string) (*models.Member, error) {
	creds := models.Credentials{Account: account, Password: password}
	var member models.Member
	if err := c.post(ctx, "/api/members/login", creds, &member); err != nil {
		return nil, err
	}
	c.logger.WithField("account", member.Account).Info("Logged in")
	return &member, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/api/members/logout", nil, nil)
}

func (c *Client) Register(ctx context.Context, reg models.Registration) (*models.Member, error) {
	var member models.Member
	if err := c.post(ctx, "/api/members/register", reg, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

func (c *Client) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.Member, error) {
	var member models.Member
	if err := c.put(ctx, "/api/members/me", update, &member); err != nil {
		return nil, err
	}
	return &member, nil
}
