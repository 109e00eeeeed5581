package apis

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

// itemFileID returns the id of the first file of a new open reel item.
func itemFileID(t *testing.T, h http.Handler) (string, int) {
	t.Helper()
	itemRoute, itemID := objectWithItem(t, h)
	rr := executeTestRequest(t, h, http.MethodGet, fmt.Sprintf("/api/item/%d", itemID), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	fileID := gjson.Get(rr.Body.String(), "item.files.0.id")
	require.True(t, fileID.Exists())
	return itemRoute, int(fileID.Int())
}

func TestFileNotes(t *testing.T) {
	h := newRouter(t)
	itemRoute, fileID := itemFileID(t, h)
	target := fmt.Sprintf("/api/file/%d/note", fileID)

	rr := executeTestRequest(t, h, http.MethodPost, target, map[string]any{"message": "clipping at <i>2:31</i>"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "clipping at 2:31", gjson.Get(rr.Body.String(), "message").String())
	noteID := int(gjson.Get(rr.Body.String(), "id").Int())

	rr = executeTestRequest(t, h, http.MethodPost, target, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Missing required data: message", errorMessage(rr))

	rr = executeTestRequest(t, h, http.MethodPost, "/api/file/9999/note", map[string]any{"message": "x"})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = executeTestRequest(t, h, http.MethodPut, target, map[string]any{"id": noteID, "message": "clipping fixed"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "clipping fixed", gjson.Get(rr.Body.String(), "message").String())

	rr = executeTestRequest(t, h, http.MethodPut, target, map[string]any{"message": "no id"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Missing required data: id", errorMessage(rr))

	rr = executeTestRequest(t, h, http.MethodGet, target, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	compareJson(t, fmt.Sprintf(`{"notes": [{"id": %d, "file_id": %d, "message": "clipping fixed"}]}`, noteID, fileID), rr.Body.String())

	rr = executeTestRequest(t, h, http.MethodGet, fmt.Sprintf("%s/files/%d", itemRoute, fileID), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "clipping fixed", gjson.Get(rr.Body.String(), "notes.0.message").String())

	rr = executeTestRequest(t, h, http.MethodDelete, target, map[string]any{"id": noteID})
	assert.Equal(t, http.StatusNoContent, rr.Code)
	rr = executeTestRequest(t, h, http.MethodDelete, target, map[string]any{"id": noteID})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAnnotations(t *testing.T) {
	h := newRouter(t)
	_, fileID := itemFileID(t, h)

	rr := executeTestRequest(t, h, http.MethodPost, "/api/file/annotation_types", map[string]any{"text": "Quality"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	typeID := int(gjson.Get(rr.Body.String(), "type_id").Int())
	assert.True(t, gjson.Get(rr.Body.String(), "active").Bool())

	rr = executeTestRequest(t, h, http.MethodPost, "/api/file/annotation_types", map[string]any{"text": ""})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	target := fmt.Sprintf("/api/file/%d/annotations", fileID)
	rr = executeTestRequest(t, h, http.MethodPost, target, map[string]any{"content": "good", "type_id": typeID})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	annotationID := int(gjson.Get(rr.Body.String(), "id").Int())

	rr = executeTestRequest(t, h, http.MethodPost, target, map[string]any{"content": "good", "type_id": 999})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = executeTestRequest(t, h, http.MethodPut, target, map[string]any{"id": annotationID, "content": "excellent"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	compareJson(t, fmt.Sprintf(`{"id": %d, "content": "excellent", "type": {"type_id": %d, "name": "Quality", "active": true}}`,
		annotationID, typeID), rr.Body.String())

	rr = executeTestRequest(t, h, http.MethodDelete, "/api/file/annotation_types", map[string]any{"id": typeID})
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = executeTestRequest(t, h, http.MethodGet, "/api/file/annotation_types", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, gjson.Get(rr.Body.String(), "annotation_types").Array())

	// existing annotations keep their deactivated type
	rr = executeTestRequest(t, h, http.MethodGet, target, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Quality", gjson.Get(rr.Body.String(), "annotations.0.type.name").String())
	assert.False(t, gjson.Get(rr.Body.String(), "annotations.0.type.active").Bool())

	rr = executeTestRequest(t, h, http.MethodDelete, fmt.Sprintf("/api/file/%d/annotations", fileID+1), map[string]any{"id": annotationID})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = executeTestRequest(t, h, http.MethodDelete, target, map[string]any{"id": annotationID})
	assert.Equal(t, http.StatusNoContent, rr.Code)
	rr = executeTestRequest(t, h, http.MethodGet, target, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, gjson.Get(rr.Body.String(), "annotations").Array())
}
