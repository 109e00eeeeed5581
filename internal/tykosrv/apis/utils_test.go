package apis

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/uiuclibrary/tyko/internal/tykosrv/config"
	"github.com/uiuclibrary/tyko/internal/tykosrv/db"
)

// newRouter starts every test on a fresh in-memory database.
func newRouter(t *testing.T) http.Handler {
	t.Helper()
	config.TestInit()
	db.Init()
	r := chi.NewRouter()
	r.Use(db.LoadScopedDBMiddleware)
	r.Route(config.Config().APIPrefix, func(r chi.Router) {
		Router(r)
	})
	return r
}

func executeTestRequest(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	case url.Values:
		reader = strings.NewReader(b.Encode())
	default:
		j, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(j)
	}
	req := httptest.NewRequest(method, target, reader)
	if _, isForm := body.(url.Values); isForm {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// executeConditional issues a GET that revalidates against etag.
func executeConditional(t *testing.T, h http.Handler, target, etag string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("If-None-Match", etag)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func compareJson(t *testing.T, expected any, actual string) {
	t.Helper()
	var j []byte
	switch v := expected.(type) {
	case string:
		j = []byte(v)
	default:
		var err error
		j, err = json.Marshal(expected)
		assert.NoError(t, err, "json marshal")
	}
	assert.JSONEq(t, string(j), actual, "Expected: %v\nGot: %v\n", expected, actual)
}

// mustCreate posts body to target and returns the id of the new entity.
func mustCreate(t *testing.T, h http.Handler, target string, body any) int {
	t.Helper()
	rr := executeTestRequest(t, h, http.MethodPost, target, body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	id := gjson.Get(rr.Body.String(), "id")
	require.True(t, id.Exists(), rr.Body.String())
	return int(id.Int())
}

func errorMessage(rr *httptest.ResponseRecorder) string {
	return gjson.Get(rr.Body.String(), "error").String()
}
