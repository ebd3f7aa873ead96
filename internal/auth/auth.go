package auth

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/cbout22/ghtree/internal/config"
)

// githubTokenEnvVars lists the environment variables checked for a GitHub token,
// in priority order, when a connection does not name its own.
var githubTokenEnvVars = []string{
	"GITHUB_TOKEN",
	"GH_TOKEN",
}

// Token returns the GitHub personal access token from the environment.
// It checks GITHUB_TOKEN first, then GH_TOKEN.
func Token() (string, error) {
	for _, env := range githubTokenEnvVars {
		if v := os.Getenv(env); v != "" {
			return v, nil
		}
	}
	return "", fmt.Errorf(
		"no GitHub token found: set %s or %s in your environment",
		githubTokenEnvVars[0], githubTokenEnvVars[1],
	)
}

// ConnectionEnvVar returns the per-connection variable, GITHUB_TOKEN_<NAME>.
func ConnectionEnvVar(name string) string {
	name = strings.ToUpper(strings.NewReplacer("-", "_", ".", "_").Replace(name))
	return "GITHUB_TOKEN_" + name
}

// ConnectionToken resolves the token of the named connection. A connection
// with an explicit token_env must find it set; otherwise GITHUB_TOKEN_<NAME>
// is tried before the global variables.
func ConnectionToken(name string, conn config.Connection) (string, error) {
	if conn.TokenEnv != "" {
		if v := os.Getenv(conn.TokenEnv); v != "" {
			return v, nil
		}
		return "", fmt.Errorf("connection %q: %s is not set", name, conn.TokenEnv)
	}
	if v := os.Getenv(ConnectionEnvVar(name)); v != "" {
		return v, nil
	}
	return Token()
}

// TokenSource returns the oauth2 token source of a connection, or nil for
// anonymous connections.
func TokenSource(name string, conn config.Connection) (oauth2.TokenSource, error) {
	if conn.Anonymous {
		return nil, nil
	}
	token, err := ConnectionToken(name, conn)
	if err != nil {
		return nil, err
	}
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}), nil
}

// NewTransport wraps base so that every request carries the connection's
// token. Without a token it returns base unchanged (public repositories only,
// subject to stricter rate limits) unless the connection named a variable
// that is unset.
func NewTransport(name string, conn config.Connection, base http.RoundTripper, logger *zap.SugaredLogger) (http.RoundTripper, error) {
	if base == nil {
		base = http.DefaultTransport
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if conn.Anonymous {
		return base, nil
	}

	src, err := TokenSource(name, conn)
	if err != nil {
		if conn.TokenEnv != "" {
			return nil, err
		}
		logger.Warnf("No GitHub token found for connection %q, using unauthenticated requests (rate-limited).", name)
		logger.Warnf("Set %s, %s or %s for private repos and higher rate limits.",
			ConnectionEnvVar(name), githubTokenEnvVars[0], githubTokenEnvVars[1])
		return base, nil
	}

	return &oauth2.Transport{Source: oauth2.ReuseTokenSource(nil, src), Base: base}, nil
}
