package apis

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestCollectionCRUD(t *testing.T) {
	h := newRouter(t)

	rr := executeTestRequest(t, h, http.MethodPost, "/api/collection", map[string]any{
		"collection_name": "Music Library",
		"department":      "Music",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	id := int(gjson.Get(rr.Body.String(), "id").Int())
	compareJson(t, fmt.Sprintf(`{"id": %d, "url": "/api/collection/%d", "frontend_url": "/collection/%d"}`, id, id, id), rr.Body.String())

	rr = executeTestRequest(t, h, http.MethodGet, fmt.Sprintf("/api/collection/%d", id), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	compareJson(t, fmt.Sprintf(`{"collection": {
		"collection_id": %d,
		"record_series": null,
		"collection_name": "Music Library",
		"contact_id": null,
		"department": "Music",
		"contact": null
	}}`, id), rr.Body.String())

	rr = executeTestRequest(t, h, http.MethodPut, fmt.Sprintf("/api/collection/%d", id), map[string]any{
		"record_series": "7/1/2",
		"department":    "",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "7/1/2", gjson.Get(rr.Body.String(), "collection.record_series").String())
	assert.Equal(t, gjson.Null, gjson.Get(rr.Body.String(), "collection.department").Type)

	rr = executeTestRequest(t, h, http.MethodGet, "/api/collection", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, int64(1), gjson.Get(rr.Body.String(), "total").Int())
	etag := rr.Header().Get("ETag")
	require.NotEmpty(t, etag)
	assert.Equal(t, "private, max-age=0", rr.Header().Get("Cache-Control"))

	req := executeConditional(t, h, "/api/collection", etag)
	assert.Equal(t, http.StatusNotModified, req.Code)
	assert.Empty(t, req.Body.String())

	rr = executeTestRequest(t, h, http.MethodDelete, fmt.Sprintf("/api/collection/%d", id), nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	rr = executeTestRequest(t, h, http.MethodDelete, fmt.Sprintf("/api/collection/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, fmt.Sprintf("collection with id %d not found", id), errorMessage(rr))

	// the list changed, so the old tag no longer matches
	req = executeConditional(t, h, "/api/collection", etag)
	assert.Equal(t, http.StatusOK, req.Code)
}

func TestCollectionValidation(t *testing.T) {
	h := newRouter(t)

	rr := executeTestRequest(t, h, http.MethodPost, "/api/collection", map[string]any{"department": "Music"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	compareJson(t, `{"result": 0, "error": "Missing required data: collection_name"}`, rr.Body.String())

	rr = executeTestRequest(t, h, http.MethodPost, "/api/collection", map[string]any{"collection_name": 12})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, errorMessage(rr), "collection_name")

	rr = executeTestRequest(t, h, http.MethodGet, "/api/collection/abc", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = executeTestRequest(t, h, http.MethodGet, "/api/collection/42", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "collection with id 42 not found", errorMessage(rr))
}

func TestFormBody(t *testing.T) {
	h := newRouter(t)

	id := mustCreate(t, h, "/api/collection", url.Values{
		"collection_name": {"Form collection"},
		"record_series":   {"1/2/3"},
	})
	rr := executeTestRequest(t, h, http.MethodGet, fmt.Sprintf("/api/collection/%d", id), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Form collection", gjson.Get(rr.Body.String(), "collection.collection_name").String())
	assert.Equal(t, "1/2/3", gjson.Get(rr.Body.String(), "collection.record_series").String())

	collection := id
	objectID := mustCreate(t, h, "/api/object", url.Values{
		"name":          {"Box"},
		"collection_id": {fmt.Sprint(collection)},
	})
	rr = executeTestRequest(t, h, http.MethodGet, fmt.Sprintf("/api/object/%d", objectID), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, int64(collection), gjson.Get(rr.Body.String(), "object.collection.collection_id").Int())
}
