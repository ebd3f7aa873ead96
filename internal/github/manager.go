package github

import (
	"fmt"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/cbout22/ghtree/internal/auth"
	"github.com/cbout22/ghtree/internal/config"
	"github.com/cbout22/ghtree/internal/reader"
)

var _ reader.Connector = (*Manager)(nil)

// Manager builds one Client per named connection and keeps it for reuse.
type Manager struct {
	settings  *config.Settings
	logger    *zap.SugaredLogger
	userAgent string
	verbose   bool
	base      http.RoundTripper

	mu      sync.Mutex
	clients map[string]*Client
}

// ManagerOption customizes a Manager.
type ManagerOption func(*Manager)

// WithUserAgent sets the User-Agent of every client.
func WithUserAgent(ua string) ManagerOption {
	return func(m *Manager) { m.userAgent = ua }
}

// WithVerbose dumps full HTTP exchanges to the debug log.
func WithVerbose(verbose bool) ManagerOption {
	return func(m *Manager) { m.verbose = verbose }
}

// WithBaseTransport replaces the network transport under authentication.
func WithBaseTransport(rt http.RoundTripper) ManagerOption {
	return func(m *Manager) { m.base = rt }
}

// NewManager creates a Manager for the connections in settings.
func NewManager(settings *config.Settings, logger *zap.SugaredLogger, opts ...ManagerOption) *Manager {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	m := &Manager{
		settings: settings,
		logger:   logger,
		clients:  make(map[string]*Client),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Client returns the client of the named connection, creating it on first use.
func (m *Manager) Client(name string) (*Client, error) {
	if name == "" {
		name = m.settings.DefaultConnection
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.clients[name]; ok {
		return c, nil
	}

	conn, err := m.settings.Connection(name)
	if err != nil {
		return nil, err
	}
	base := m.base
	if base == nil {
		base = NewTransport()
	}
	transport, err := auth.NewTransport(name, conn, base, m.logger)
	if err != nil {
		return nil, fmt.Errorf("connection %q: %w", name, err)
	}

	c := NewClient(m.logger.With("connection", name), Options{
		BaseURL:   conn.BaseURL,
		UserAgent: m.userAgent,
		Timeout:   conn.Timeout.Duration,
		Transport: transport,
		Verbose:   m.verbose,
	})
	m.clients[name] = c
	m.logger.Debugf("connection %q ready (%s)", name, conn.BaseURL)
	return c, nil
}

// Connection implements reader.Connector.
func (m *Manager) Connection(name string) (reader.ContentClient, error) {
	c, err := m.Client(name)
	if err != nil {
		return nil, err
	}
	return c, nil
}
