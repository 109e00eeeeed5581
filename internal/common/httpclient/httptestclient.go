package httpclient

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/uiuclibrary/tyko/internal/tykosrv/server"
)

// TestHTTPClient serves requests with an in-process Tyko server, without a network.
type TestHTTPClient struct {
	config     Configurator
	httpServer *server.TykoServer
}

// NewTestClient mounts a server on the current configuration and database.
func NewTestClient(config Configurator) (*TestHTTPClient, error) {
	s, err := server.CreateNewServer()
	if err != nil {
		return nil, fmt.Errorf("failed to create test server: %v", err)
	}
	s.MountHandlers()
	return &TestHTTPClient{config: config, httpServer: s}, nil
}

func (c *TestHTTPClient) DoRequest(opts RequestOptions) ([]byte, string, error) {
	target, err := requestURL(c.config, opts)
	if err != nil {
		return nil, "", err
	}
	req := httptest.NewRequest(opts.Method, target, bytes.NewReader(opts.Body))
	if opts.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	c.httpServer.Router.ServeHTTP(rr, req)

	body := rr.Body.Bytes()
	if rr.Code >= 400 {
		return nil, "", errorFromResponse(rr.Code, body)
	}
	return body, rr.Header().Get("Content-Type"), nil
}

func (c *TestHTTPClient) CreateResource(resourceType string, data []byte) ([]byte, error) {
	body, _, err := c.DoRequest(RequestOptions{Method: http.MethodPost, Path: resourceType, Body: data})
	return body, err
}

func (c *TestHTTPClient) GetResource(resourceType string, id string) ([]byte, error) {
	body, _, err := c.DoRequest(RequestOptions{Method: http.MethodGet, Path: resourcePath(resourceType, id)})
	return body, err
}

func (c *TestHTTPClient) UpdateResource(resourceType string, id string, data []byte) ([]byte, error) {
	body, _, err := c.DoRequest(RequestOptions{Method: http.MethodPut, Path: resourcePath(resourceType, id), Body: data})
	return body, err
}

func (c *TestHTTPClient) DeleteResource(resourceType string, id string) error {
	_, _, err := c.DoRequest(RequestOptions{Method: http.MethodDelete, Path: resourcePath(resourceType, id)})
	return err
}

func (c *TestHTTPClient) ListResources(resourceType string, queryParams map[string]string) ([]byte, error) {
	body, _, err := c.DoRequest(RequestOptions{Method: http.MethodGet, Path: resourceType, QueryParams: queryParams})
	return body, err
}
