package httpclient

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/uiuclibrary/tyko/internal/tykosrv/config"
	"github.com/uiuclibrary/tyko/internal/tykosrv/db"
)

type testConfig struct {
	url string
}

func (c testConfig) GetServerURL() string { return c.url }
func (c testConfig) GetAPIPrefix() string { return "/api" }

func fastClient(url string) *HTTPClient {
	return NewClient(testConfig{url: url}, ClientOptions{Attempts: 3, Delay: time.Millisecond})
}

func TestRequestURL(t *testing.T) {
	u, err := requestURL(testConfig{url: "http://localhost:8000/tyko"}, RequestOptions{
		Path:        "project/3",
		QueryParams: map[string]string{"limit": "2"},
	})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/tyko/api/project/3?limit=2", u)

	u, err = requestURL(testConfig{url: "http://localhost:8000"}, RequestOptions{Path: "/version", Raw: true})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/version", u)
}

func TestRetryOnUnavailable(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		assert.Equal(t, "/api/collection/1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"collection_id":1}`)
	}))
	defer ts.Close()

	body, err := fastClient(ts.URL).GetResource("collection", "1")
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
	assert.JSONEq(t, `{"collection_id":1}`, string(body))
}

func TestNoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"result":0,"error":"Missing required data: title"}`)
	}))
	defer ts.Close()

	_, err := fastClient(ts.URL).UpdateResource("project", "1", []byte(`{}`))
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
	assert.Equal(t, "Missing required data: title", httpErr.Message)
}

func TestPostIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	_, err := fastClient(ts.URL).CreateResource("project", []byte(`{"title":"x"}`))
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestNotFound(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	err := fastClient(ts.URL).DeleteResource("object", "9")
	assert.True(t, IsNotFound(err))
}

func TestTestHTTPClient(t *testing.T) {
	config.TestInit()
	db.Init()

	c, err := NewTestClient(testConfig{url: "http://localhost"})
	require.NoError(t, err)

	body, err := c.CreateResource("collection", []byte(`{"collection_name":"Client collection","department":"Music"}`))
	require.NoError(t, err)
	id := gjson.GetBytes(body, "id").String()
	require.NotEmpty(t, id)

	body, err = c.GetResource("collection", id)
	require.NoError(t, err)
	assert.Equal(t, "Client collection", gjson.GetBytes(body, "collection.collection_name").String())

	body, err = c.ListResources("collection", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), gjson.GetBytes(body, "total").Int())

	require.NoError(t, c.DeleteResource("collection", id))
	_, err = c.GetResource("collection", id)
	assert.True(t, IsNotFound(err))
}
