// Package spotify provides a wrapper around the Spotify Web API.
package spotify

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// DefaultTokenTimeout bounds a single token request to the Accounts service.
const DefaultTokenTimeout = 3 * time.Second

// ErrMissingCredentials is returned when the client ID or secret is empty.
var ErrMissingCredentials = errors.New("missing Spotify client ID or secret")

// Client wraps the Spotify API client with convenience methods.
type Client struct {
	api *spotify.Client
}

// New creates a new Spotify client wrapper.
// The underlying client should already be authenticated.
func New(api *spotify.Client) *Client {
	return &Client{api: api}
}

// Credentials identify the application to Spotify's Accounts service.
type Credentials struct {
	ClientID     string
	ClientSecret string

	// TokenURL and BaseURL override Spotify's endpoints; empty means default.
	TokenURL string
	BaseURL  string

	// TokenTimeout bounds each token request. Zero means DefaultTokenTimeout.
	TokenTimeout time.Duration
}

// NewWithCredentials creates a client that authenticates with the OAuth2
// client-credentials flow. No user login is involved, so only public catalog
// endpoints such as search are available. The token is fetched lazily on the
// first request and refreshed automatically when it expires.
func NewWithCredentials(ctx context.Context, creds Credentials) (*Client, error) {
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return nil, ErrMissingCredentials
	}

	tokenURL := creds.TokenURL
	if tokenURL == "" {
		tokenURL = spotifyauth.TokenURL
	}

	cfg := &clientcredentials.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		TokenURL:     tokenURL,
	}

	var opts []spotify.ClientOption
	if creds.BaseURL != "" {
		opts = append(opts, spotify.WithBaseURL(creds.BaseURL))
	}

	tokenTimeout := creds.TokenTimeout
	if tokenTimeout <= 0 {
		tokenTimeout = DefaultTokenTimeout
	}
	// Token requests run on this context, not the search request's, so they
	// need their own bound.
	ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Timeout: tokenTimeout})

	return New(spotify.New(cfg.Client(ctx), opts...)), nil
}
