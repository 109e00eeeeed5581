package httpclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
)

// Configurator provides the server the client talks to.
type Configurator interface {
	GetServerURL() string
	GetAPIPrefix() string
}

// ServerError is the error body sent by the server.
type ServerError struct {
	Result int    `json:"result"`
	Error  string `json:"error"`
}

// HTTPError is a response with a status code of 400 or more.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound
}

type HTTPClient struct {
	config     Configurator
	httpClient *http.Client
	attempts   uint
	delay      time.Duration
}

// ClientOptions tunes the client. Zero values select the defaults.
type ClientOptions struct {
	Timeout  time.Duration // per request, 30s by default
	Attempts uint          // tries for idempotent requests, 3 by default
	Delay    time.Duration // initial backoff between tries, 500ms by default
}

// NewClient creates a client for the server of config.
func NewClient(config Configurator, opts ...ClientOptions) *HTTPClient {
	o := ClientOptions{}
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.Timeout == 0 {
		o.Timeout = 30 * time.Second
	}
	if o.Attempts == 0 {
		o.Attempts = 3
	}
	if o.Delay == 0 {
		o.Delay = 500 * time.Millisecond
	}
	return &HTTPClient{
		config:     config,
		httpClient: &http.Client{Timeout: o.Timeout},
		attempts:   o.Attempts,
		delay:      o.Delay,
	}
}

// RequestOptions describes one API request. Path is relative to the API prefix unless
// Raw is set.
type RequestOptions struct {
	Method      string
	Path        string
	QueryParams map[string]string
	Body        []byte
	Raw         bool
}

// requestURL resolves the request against the server URL and API prefix.
func requestURL(config Configurator, opts RequestOptions) (string, error) {
	u, err := url.Parse(config.GetServerURL())
	if err != nil {
		return "", fmt.Errorf("invalid server URL: %v", err)
	}
	if opts.Raw {
		u.Path = path.Join("/", u.Path, opts.Path)
	} else {
		u.Path = path.Join("/", u.Path, config.GetAPIPrefix(), opts.Path)
	}
	q := u.Query()
	for k, v := range opts.QueryParams {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// DoRequest makes the request. GET, PUT and DELETE are retried with backoff when the
// server cannot be reached or answers 502, 503 or 504.
func (c *HTTPClient) DoRequest(opts RequestOptions) ([]byte, string, error) {
	target, err := requestURL(c.config, opts)
	if err != nil {
		return nil, "", err
	}

	var (
		body        []byte
		contentType string
	)
	attempt := func() error {
		req, err := http.NewRequest(opts.Method, target, bytes.NewReader(opts.Body))
		if err != nil {
			return retry.Unrecoverable(fmt.Errorf("failed to create request: %v", err))
		}
		if opts.Body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("request failed: %v", err)
		}
		defer resp.Body.Close()

		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response body: %v", err)
		}
		if resp.StatusCode >= 400 {
			httpErr := errorFromResponse(resp.StatusCode, b)
			switch resp.StatusCode {
			case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
				return httpErr
			}
			return retry.Unrecoverable(httpErr)
		}
		body, contentType = b, resp.Header.Get("Content-Type")
		return nil
	}

	attempts := c.attempts
	if opts.Method == http.MethodPost {
		attempts = 1
	}
	err = retry.Do(attempt,
		retry.Attempts(attempts),
		retry.Delay(c.delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, "", err
	}
	return body, contentType, nil
}

func errorFromResponse(statusCode int, body []byte) *HTTPError {
	var serverErr ServerError
	if err := json.Unmarshal(body, &serverErr); err == nil && serverErr.Error != "" {
		return &HTTPError{StatusCode: statusCode, Message: serverErr.Error}
	}
	if statusCode == http.StatusNotFound {
		return &HTTPError{StatusCode: statusCode, Message: "not found"}
	}
	return &HTTPError{StatusCode: statusCode, Message: strings.TrimSpace(string(body))}
}

func resourcePath(resourceType, id string) string {
	return strings.Trim(resourceType, "/") + "/" + strings.Trim(id, "/")
}

func (c *HTTPClient) CreateResource(resourceType string, data []byte) ([]byte, error) {
	body, _, err := c.DoRequest(RequestOptions{Method: http.MethodPost, Path: resourceType, Body: data})
	return body, err
}

func (c *HTTPClient) GetResource(resourceType string, id string) ([]byte, error) {
	body, _, err := c.DoRequest(RequestOptions{Method: http.MethodGet, Path: resourcePath(resourceType, id)})
	return body, err
}

func (c *HTTPClient) UpdateResource(resourceType string, id string, data []byte) ([]byte, error) {
	body, _, err := c.DoRequest(RequestOptions{Method: http.MethodPut, Path: resourcePath(resourceType, id), Body: data})
	return body, err
}

func (c *HTTPClient) DeleteResource(resourceType string, id string) error {
	_, _, err := c.DoRequest(RequestOptions{Method: http.MethodDelete, Path: resourcePath(resourceType, id)})
	return err
}

func (c *HTTPClient) ListResources(resourceType string, queryParams map[string]string) ([]byte, error) {
	body, _, err := c.DoRequest(RequestOptions{Method: http.MethodGet, Path: resourceType, QueryParams: queryParams})
	return body, err
}
