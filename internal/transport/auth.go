package transport

import (
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/agentstation/stationmap/pkg/constants"
	"github.com/agentstation/stationmap/pkg/errors"
)

// Authenticator applies authentication to HTTP requests.
type Authenticator interface {
	Apply(req *http.Request)
}

// NoAuth implements no authentication.
type NoAuth struct{}

// Apply implements the Authenticator interface for NoAuth.
func (a *NoAuth) Apply(_ *http.Request) {}

// Credentials is an API token, optionally with an expiry.
type Credentials struct {
	TokenType   string
	AccessToken string
	ExpiresAt   time.Time // zero when the token carries no expiry
}

// Apply implements the Authenticator interface for Credentials.
func (c *Credentials) Apply(req *http.Request) {
	tokenType := c.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}
	req.Header.Set("Authorization", tokenType+" "+c.AccessToken)
}

// Expired reports whether the credentials are past their expiry at now.
func (c *Credentials) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// ParseCredentials accepts either the URL-encoded credential string issued by
// the API login page (token_type=Bearer&access_token=...&expires_at=<unix>)
// or a bare bearer token. Credentials that expired before now are rejected.
func ParseCredentials(raw string, now time.Time) (*Credentials, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.NewAuthenticationError("credentials", "no credentials provided", errors.ErrCredentialsRequired)
	}

	if !strings.Contains(raw, "access_token=") {
		return &Credentials{TokenType: "Bearer", AccessToken: raw}, nil
	}

	values, err := url.ParseQuery(raw)
	if err != nil {
		return nil, errors.NewAuthenticationError("credentials", "malformed credential string", err)
	}

	creds := &Credentials{
		TokenType:   values.Get("token_type"),
		AccessToken: values.Get("access_token"),
	}
	if creds.AccessToken == "" {
		return nil, errors.NewAuthenticationError("credentials", "access_token is empty", errors.ErrCredentialsRequired)
	}

	if exp := values.Get("expires_at"); exp != "" {
		secs, err := strconv.ParseFloat(exp, 64)
		if err != nil {
			return nil, errors.NewAuthenticationError("credentials", "invalid expires_at "+exp, err)
		}
		creds.ExpiresAt = time.Unix(int64(secs), 0)
	}

	if creds.Expired(now) {
		return nil, errors.NewAuthenticationError("credentials",
			"credentials expired at "+creds.ExpiresAt.UTC().Format(time.RFC3339), errors.ErrCredentialsExpired)
	}
	return creds, nil
}

// DefaultCredentialsPath returns the cached credentials file in the user's
// home directory.
func DefaultCredentialsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return constants.CredentialsFileName
	}
	return filepath.Join(home, constants.CredentialsFileName)
}

// LoadCredentialsFile reads and parses a cached credentials file. A missing
// file means no credentials were provided.
func LoadCredentialsFile(path string, now time.Time) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewAuthenticationError("credentials",
				"no credentials given and "+path+" does not exist", errors.ErrCredentialsRequired)
		}
		return nil, errors.WrapIO("read", path, err)
	}
	return ParseCredentials(string(data), now)
}

// ResolveCredentials returns the explicit credential string when set and
// falls back to the cached credentials file otherwise.
func ResolveCredentials(explicit, path string, now time.Time) (*Credentials, error) {
	if strings.TrimSpace(explicit) != "" {
		return ParseCredentials(explicit, now)
	}
	if path == "" {
		path = DefaultCredentialsPath()
	}
	return LoadCredentialsFile(path, now)
}
