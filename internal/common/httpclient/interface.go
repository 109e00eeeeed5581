// Package httpclient is a small client for the Tyko REST API. It builds requests
// against a configured server and API prefix, retries idempotent requests on
// transport errors and unavailable servers, and turns error bodies into HTTPError.
package httpclient

// HTTPClientInterface defines the operations the CLI uses. HTTPClient talks to a server
// over the network; TestHTTPClient serves requests in process.
type HTTPClientInterface interface {
	// DoRequest makes a request and returns the response body and Content-Type.
	DoRequest(opts RequestOptions) ([]byte, string, error)

	// CreateResource posts data to the collection endpoint of resourceType.
	CreateResource(resourceType string, data []byte) ([]byte, error)

	// GetResource reads one resource by id.
	GetResource(resourceType string, id string) ([]byte, error)

	// UpdateResource replaces fields of one resource by id.
	UpdateResource(resourceType string, id string, data []byte) ([]byte, error)

	// DeleteResource deletes one resource by id.
	DeleteResource(resourceType string, id string) error

	// ListResources lists resourceType, with optional query parameters.
	ListResources(resourceType string, queryParams map[string]string) ([]byte, error)
}

var _ HTTPClientInterface = &HTTPClient{}
var _ HTTPClientInterface = &TestHTTPClient{}
