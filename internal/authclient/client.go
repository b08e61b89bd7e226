// Package authclient obtains access tokens from the external OAuth2
// authorization server using the resource-owner password grant.
package authclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
)

// TokenPath is where the authorization server issues tokens.
const TokenPath = "/oauth2/token"

type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	Scopes       []string
}

// Client fetches tokens for username/password pairs.
type Client struct {
	oauth      *oauth2.Config
	httpClient *http.Client
}

func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("authclient: base url is required")
	}
	if cfg.ClientID == "" {
		return nil, errors.New("authclient: client id is required")
	}
	return &Client{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Scopes:       cfg.Scopes,
			Endpoint: oauth2.Endpoint{
				TokenURL:  strings.TrimRight(cfg.BaseURL, "/") + TokenPath,
				AuthStyle: oauth2.AuthStyleInHeader,
			},
		},
	}, nil
}

// WithHTTPClient makes token requests go through hc.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// Token performs the password grant and returns the full token.
func (c *Client) Token(ctx context.Context, username, password string) (*oauth2.Token, error) {
	if c.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	}
	tok, err := c.oauth.PasswordCredentialsToken(ctx, username, password)
	if err != nil {
		return nil, fmt.Errorf("obtain token for %s: %w", username, err)
	}
	return tok, nil
}

// AccessToken is Token returning only the access token string.
func (c *Client) AccessToken(ctx context.Context, username, password string) (string, error) {
	tok, err := c.Token(ctx, username, password)
	if err != nil {
		return "", err
	}
	return tok.AccessToken, nil
}

// Authorize sets the bearer header on req the way the API expects it.
func Authorize(req *http.Request, accessToken string) {
	req.Header.Set("Authorization", "bearer "+accessToken)
}
