package github

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
)

var (
	// ErrNotFound matches HTTP 404 responses.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized matches HTTP 401 and 403 responses that are not rate limits.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrRateLimited matches responses rejected by the API rate limiter.
	ErrRateLimited = errors.New("rate limited")
)

// HTTPError is a non-success API response.
type HTTPError struct {
	Method           string
	URL              string
	StatusCode       int
	Message          string
	DocumentationURL string
	RateLimited      bool
}

func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("%s %s | returned http code %d", e.Method, e.URL, e.StatusCode)
	if e.Message != "" {
		msg += " | " + e.Message
	}
	return msg
}

func (e *HTTPError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnauthorized:
		return !e.RateLimited && (e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden)
	case ErrRateLimited:
		return e.RateLimited
	}
	return false
}

// TransportError is a request that never produced a response.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s | %s", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func newHTTPError(res *resty.Response) *HTTPError {
	e := &HTTPError{
		Method:     res.Request.Method,
		URL:        requestURL(res),
		StatusCode: res.StatusCode(),
	}

	var body struct {
		Message          string `json:"message"`
		DocumentationURL string `json:"documentation_url"`
	}
	if err := json.Unmarshal(res.Body(), &body); err == nil {
		e.Message = body.Message
		e.DocumentationURL = body.DocumentationURL
	}

	switch e.StatusCode {
	case http.StatusTooManyRequests:
		e.RateLimited = true
	case http.StatusForbidden:
		e.RateLimited = res.Header().Get("X-RateLimit-Remaining") == "0"
	}
	return e
}

// checkResponse converts failed requests to TransportError or HTTPError.
func checkResponse(method, url string, res *resty.Response, err error) error {
	if err != nil {
		return &TransportError{Method: method, URL: url, Err: err}
	}
	if res.IsError() {
		return newHTTPError(res)
	}
	return nil
}
