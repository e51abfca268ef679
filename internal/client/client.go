package client

import (
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"

	"twiga-dash/internal/metrics"
)

// DefaultServer is the EarthRanger deployment the monitoring program runs on.
const DefaultServer = "https://twiga.pamdas.org"

// oauthClientID is the public OAuth client used for password-grant token
// requests, the same one the EarthRanger web frontend uses.
const oauthClientID = "das_web_client"

type RangerClient struct {
	HTTP   *resty.Client
	Config ClientConfig
}

type ClientConfig struct {
	Server   string
	Username string
	Password string
	Token    string // Bearer token; skips the password grant when set
}

// tokenResponse captures the OAuth2 token returned by POST /oauth2/token
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

func New(cfg ClientConfig) *RangerClient {
	r := resty.New()
	r.SetBaseURL(cfg.Server)
	r.SetHeader("Accept", "application/json")

	if cfg.Token != "" {
		r.SetAuthToken(cfg.Token)
	}

	return &RangerClient{
		HTTP:   r,
		Config: cfg,
	}
}

// Login exchanges the configured username/password for a bearer token,
// installs it on the client for all future requests, and returns it for
// persistence.
func (c *RangerClient) Login() (string, error) {
	resp, err := c.HTTP.R().
		SetFormData(map[string]string{
			"grant_type": "password",
			"username":   c.Config.Username,
			"password":   c.Config.Password,
			"client_id":  oauthClientID,
		}).
		SetResult(&tokenResponse{}).
		Post("/oauth2/token")

	if err != nil {
		return "", err
	}

	if resp.IsError() {
		return "", fmt.Errorf("login failed: %s", resp.String())
	}

	tok, ok := resp.Result().(*tokenResponse)
	if !ok {
		return "", errors.New("failed to parse token response")
	}

	if tok.AccessToken == "" {
		return "", errors.New("login successful but no access token returned")
	}

	c.HTTP.SetAuthToken(tok.AccessToken)

	return tok.AccessToken, nil
}

// Authenticate reports whether the credential pair is accepted by the
// server. It obtains a token and issues one bounded read (a single
// subject record); every failure mode collapses to false.
func Authenticate(server, username, password string) bool {
	c := New(ClientConfig{Server: server, Username: username, Password: password})
	if _, err := c.Login(); err != nil {
		return false
	}
	return c.Probe() == nil
}

// Probe fetches at most one subject record to confirm the token works.
func (c *RangerClient) Probe() error {
	metrics.FetchTotal.WithLabelValues("probe").Inc()

	resp, err := c.HTTP.R().
		SetQueryParam("limit", "1").
		Get("/api/v1.0/subjects")

	if err != nil {
		metrics.FetchErrors.WithLabelValues("probe").Inc()
		return err
	}
	if resp.IsError() {
		metrics.FetchErrors.WithLabelValues("probe").Inc()
		return fmt.Errorf("subject probe failed: %s", resp.Status())
	}
	return nil
}
