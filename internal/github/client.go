package github

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

const (
	APIVersion            = "2022-11-28"
	RequestTimeout        = 30 * time.Second
	HttpTimeout           = 30 * time.Second
	IdleConnTimeout       = 30 * time.Second
	TLSHandshakeTimeout   = 10 * time.Second
	ResponseHeaderTimeout = 20 * time.Second
	KeepAlive             = 20 * time.Second
	MaxIdleConns          = 32
	RetryCount            = 3
	RetryWaitTime         = 200 * time.Millisecond
	RetryWaitTimeMax      = 3 * time.Second
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Options configures a Client.
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	// Transport carries authentication. It should wrap NewTransport().
	Transport http.RoundTripper
	// Verbose dumps full requests and responses to the debug log.
	Verbose bool
}

// Client reads repository contents through the GitHub REST API.
type Client struct {
	logger *zap.SugaredLogger
	resty  *resty.Client
}

type contextKey string

const noFollowKey = contextKey("noFollow")

// NewClient creates a Client. Zero options fall back to api.github.com and
// the package defaults.
func NewClient(logger *zap.SugaredLogger, opts Options) *Client {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if opts.BaseURL == "" {
		opts.BaseURL = "https://api.github.com"
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "ghtree/dev"
	}
	if opts.Timeout == 0 {
		opts.Timeout = RequestTimeout
	}
	if opts.Transport == nil {
		opts.Transport = NewTransport()
	}

	c := &Client{logger: logger}
	c.resty = createHttpClient(&Logger{logger}, opts)
	setupLogs(c, opts.Verbose)
	return c
}

// BaseURL returns the API endpoint the client talks to.
func (c *Client) BaseURL() string {
	return c.resty.BaseURL
}

// SetRetry overrides the retry policy.
func (c *Client) SetRetry(count int, waitTime time.Duration, maxWaitTime time.Duration) {
	c.resty.SetRetryCount(count)
	c.resty.SetRetryWaitTime(waitTime)
	c.resty.SetRetryMaxWaitTime(maxWaitTime)
}

func (c *Client) request(ctx context.Context) *resty.Request {
	return c.resty.R().SetContext(ctx)
}

func createHttpClient(logger *Logger, opts Options) *resty.Client {
	r := resty.New()
	r.SetLogger(logger)
	r.SetBaseURL(strings.TrimRight(opts.BaseURL, "/"))
	r.SetHeader("User-Agent", opts.UserAgent)
	r.SetHeader("Accept", "application/vnd.github+json")
	r.SetHeader("X-GitHub-Api-Version", APIVersion)
	r.SetTimeout(opts.Timeout)
	r.SetRetryCount(RetryCount)
	r.SetRetryWaitTime(RetryWaitTime)
	r.SetRetryMaxWaitTime(RetryWaitTimeMax)
	r.SetTransport(opts.Transport)
	r.AddRetryCondition(createRetry())
	r.SetRedirectPolicy(resty.RedirectPolicyFunc(noFollowPolicy))
	return r
}

// noFollowPolicy stops at the first redirect of requests marked with
// noFollowKey, so the Location header can be read.
func noFollowPolicy(req *http.Request, via []*http.Request) error {
	if noFollow, _ := req.Context().Value(noFollowKey).(bool); noFollow {
		return http.ErrUseLastResponse
	}
	if len(via) >= 10 {
		return fmt.Errorf("stopped after %d redirects", len(via))
	}
	return nil
}

// createRetry - retry on defined network and HTTP errors.
func createRetry() func(response *resty.Response, err error) bool {
	return func(response *resty.Response, err error) bool {
		// On network errors - except hostname not found
		if err != nil && (response == nil || response.StatusCode() == 0) {
			switch {
			case
				strings.Contains(err.Error(), "no such host"),
				strings.Contains(err.Error(), "context canceled"),
				strings.Contains(err.Error(), "context deadline exceeded"):
				return false
			default:
				return true
			}
		}
		if response == nil {
			return false
		}

		// On HTTP status codes
		switch response.StatusCode() {
		case
			http.StatusRequestTimeout,
			http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		default:
			return false
		}
	}
}

// NewTransport returns an *http.Transport with custom timeouts.
func NewTransport() *http.Transport {
	dialer := &net.Dialer{
		Timeout:   HttpTimeout,
		KeepAlive: KeepAlive,
	}
	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          MaxIdleConns,
		IdleConnTimeout:       IdleConnTimeout,
		TLSHandshakeTimeout:   TLSHandshakeTimeout,
		ResponseHeaderTimeout: ResponseHeaderTimeout,
		MaxIdleConnsPerHost:   MaxIdleConns,
	}
}

func setupLogs(client *Client, verbose bool) {
	// Debug full request and response if verbose = true
	// Secrets are hidden see Logger
	if verbose {
		client.resty.SetDebug(true)
		client.resty.SetDebugBodyLimit(32 * 1024)
	}

	// Log each request when done
	client.resty.OnAfterResponse(func(c *resty.Client, res *resty.Response) error {
		client.logger.Debugf("HTTP\t%s", responseToLog(res))
		return nil
	})
}

func responseToLog(res *resty.Response) string {
	req := res.Request
	return fmt.Sprintf("%s %s | %d | %s", req.Method, requestURL(res), res.StatusCode(), res.Time())
}

func requestURL(res *resty.Response) string {
	if res.RawResponse != nil && res.RawResponse.Request != nil {
		return res.RawResponse.Request.URL.String()
	}
	return res.Request.URL
}
