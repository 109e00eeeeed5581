package apis

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestProjectCRUD(t *testing.T) {
	h := newRouter(t)

	rr := executeTestRequest(t, h, http.MethodPost, "/api/project", map[string]any{
		"title":        "Oral histories",
		"project_code": "OH-1",
		"status":       "in progress",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	id := int(gjson.Get(rr.Body.String(), "id").Int())
	assert.Equal(t, fmt.Sprintf("/api/project/%d", id), gjson.Get(rr.Body.String(), "url").String())

	rr = executeTestRequest(t, h, http.MethodGet, fmt.Sprintf("/api/project/%d", id), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	compareJson(t, fmt.Sprintf(`{"project": {
		"project_id": %d,
		"project_code": "OH-1",
		"current_location": null,
		"status": "In progress",
		"title": "Oral histories",
		"specs": null,
		"notes": [],
		"objects": []
	}}`, id), rr.Body.String())

	rr = executeTestRequest(t, h, http.MethodPut, fmt.Sprintf("/api/project/%d", id), map[string]any{
		"current_location": "Shelf 3",
		"status":           "Complete",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "Shelf 3", gjson.Get(rr.Body.String(), "project.current_location").String())
	assert.Equal(t, "Complete", gjson.Get(rr.Body.String(), "project.status").String())
	assert.Equal(t, "Oral histories", gjson.Get(rr.Body.String(), "project.title").String())

	rr = executeTestRequest(t, h, http.MethodPut, fmt.Sprintf("/api/project/%d", id), map[string]any{"status": "paused"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "invalid project status: paused", errorMessage(rr))

	rr = executeTestRequest(t, h, http.MethodDelete, fmt.Sprintf("/api/project/%d", id), nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	rr = executeTestRequest(t, h, http.MethodGet, fmt.Sprintf("/api/project/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestProjectValidation(t *testing.T) {
	h := newRouter(t)

	rr := executeTestRequest(t, h, http.MethodPost, "/api/project", map[string]any{"project_code": "X"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Missing required data: title", errorMessage(rr))

	rr = executeTestRequest(t, h, http.MethodPost, "/api/project", map[string]any{"title": "T", "status": "bogus"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "invalid project status: bogus", errorMessage(rr))

	rr = executeTestRequest(t, h, http.MethodPost, "/api/project", "{not json")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestListProjectsPaging(t *testing.T) {
	h := newRouter(t)
	for i := 0; i < 5; i++ {
		mustCreate(t, h, "/api/project", map[string]any{"title": fmt.Sprintf("Project %d", i)})
	}

	rr := executeTestRequest(t, h, http.MethodGet, "/api/project", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, int64(5), gjson.Get(rr.Body.String(), "total").Int())
	assert.Len(t, gjson.Get(rr.Body.String(), "projects").Array(), 5)
	// listed projects are flat
	assert.False(t, gjson.Get(rr.Body.String(), "projects.0.objects").Exists())

	rr = executeTestRequest(t, h, http.MethodGet, "/api/project?limit=2&offset=1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, int64(5), gjson.Get(rr.Body.String(), "total").Int())
	titles := gjson.Get(rr.Body.String(), "projects.#.title").Array()
	require.Len(t, titles, 2)
	assert.Equal(t, "Project 1", titles[0].String())
	assert.Equal(t, "Project 2", titles[1].String())

	rr = executeTestRequest(t, h, http.MethodGet, "/api/project?limit=2&offset=10", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, gjson.Get(rr.Body.String(), "projects").Array())

	// a limit past the end of the list returns the rest
	rr = executeTestRequest(t, h, http.MethodGet, "/api/project?offset=1&limit=9223372036854775807", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	titles = gjson.Get(rr.Body.String(), "projects.#.title").Array()
	require.Len(t, titles, 4)
	assert.Equal(t, "Project 1", titles[0].String())
	assert.Equal(t, "Project 4", titles[3].String())

	rr = executeTestRequest(t, h, http.MethodGet, "/api/project?limit=x", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestProjectOptionalFields(t *testing.T) {
	h := newRouter(t)
	id := mustCreate(t, h, "/api/project", map[string]any{
		"title":            "Film survey",
		"project_code":     "FS-2",
		"current_location": "Vault",
		"specs":            "2K scans",
	})

	rr := executeTestRequest(t, h, http.MethodGet, fmt.Sprintf("/api/project/%d", id), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Equal(t, "FS-2", gjson.Get(body, "project.project_code").String())
	assert.Equal(t, "Vault", gjson.Get(body, "project.current_location").String())
	assert.Equal(t, "2K scans", gjson.Get(body, "project.specs").String())

	// null clears a field, absent fields are kept
	rr = executeTestRequest(t, h, http.MethodPut, fmt.Sprintf("/api/project/%d", id), map[string]any{
		"project_code": nil,
		"specs":        "4K scans",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	body = rr.Body.String()
	assert.Equal(t, gjson.Null, gjson.Get(body, "project.project_code").Type)
	assert.Equal(t, "Vault", gjson.Get(body, "project.current_location").String())
	assert.Equal(t, "4K scans", gjson.Get(body, "project.specs").String())

	rr = executeTestRequest(t, h, http.MethodPut, fmt.Sprintf("/api/project/%d", id), map[string]any{"specs": 4})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestProjectNotes(t *testing.T) {
	h := newRouter(t)
	id := mustCreate(t, h, "/api/project", map[string]any{"title": "Notes"})
	base := fmt.Sprintf("/api/project/%d/notes", id)

	rr := executeTestRequest(t, h, http.MethodPost, base, map[string]any{
		"note_type_id": 3,
		"text":         "<b>check</b> the <script>alert(1)</script>reels",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	note := gjson.Get(rr.Body.String(), "project.notes.0")
	assert.Equal(t, "check the reels", note.Get("text").String())
	assert.Equal(t, "Project", note.Get("note_type").String())
	noteID := int(note.Get("note_id").Int())
	assert.Equal(t, fmt.Sprintf("%s/%d", base, noteID), note.Get("route.api").String())

	rr = executeTestRequest(t, h, http.MethodGet, fmt.Sprintf("%s/%d", base, noteID), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	compareJson(t, fmt.Sprintf(`{"note_id": %d, "text": "check the reels", "note_types_id": 3, "note_type": "Project"}`, noteID), rr.Body.String())

	rr = executeTestRequest(t, h, http.MethodPut, fmt.Sprintf("%s/%d", base, noteID), map[string]any{
		"text":         "checked",
		"note_type_id": "4",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "checked", gjson.Get(rr.Body.String(), "project.notes.0.text").String())
	assert.Equal(t, "Other", gjson.Get(rr.Body.String(), "project.notes.0.note_type").String())

	rr = executeTestRequest(t, h, http.MethodPost, base, map[string]any{"note_type_id": 99, "text": "x"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	rr = executeTestRequest(t, h, http.MethodPost, base, map[string]any{"note_type_id": 1})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Missing required data: text", errorMessage(rr))

	// a note of another project is not reachable through this one
	other := mustCreate(t, h, "/api/project", map[string]any{"title": "Other"})
	rr = executeTestRequest(t, h, http.MethodGet, fmt.Sprintf("/api/project/%d/notes/%d", other, noteID), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = executeTestRequest(t, h, http.MethodDelete, fmt.Sprintf("%s/%d", base, noteID), nil)
	require.Equal(t, http.StatusAccepted, rr.Code)
	assert.Empty(t, gjson.Get(rr.Body.String(), "project.notes").Array())

	rr = executeTestRequest(t, h, http.MethodGet, fmt.Sprintf("/api/note/%d", noteID), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
