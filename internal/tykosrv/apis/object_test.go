package apis

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// projectWithObject creates a project holding one object and returns both ids.
func projectWithObject(t *testing.T, h http.Handler) (int, int) {
	t.Helper()
	projectID := mustCreate(t, h, "/api/project", map[string]any{"title": "Digitization"})
	collectionID := mustCreate(t, h, "/api/collection", map[string]any{"collection_name": "Archives"})
	rr := executeTestRequest(t, h, http.MethodPost, fmt.Sprintf("/api/project/%d/object", projectID), map[string]any{
		"name":               "Box 1",
		"barcode":            "OB-1",
		"collectionId":       collectionID,
		"originals_rec_date": "3/14/2020",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	return projectID, int(gjson.Get(rr.Body.String(), "object.object_id").Int())
}

func TestProjectObject(t *testing.T) {
	h := newRouter(t)
	projectID, objectID := projectWithObject(t, h)

	rr := executeTestRequest(t, h, http.MethodGet, fmt.Sprintf("/api/project/%d/object/%d", projectID, objectID), nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	body := rr.Body.String()
	assert.Equal(t, "Box 1", gjson.Get(body, "object.name").String())
	assert.Equal(t, "Archives", gjson.Get(body, "object.collection.collection_name").String())
	assert.Equal(t, "3/14/2020", gjson.Get(body, "object.originals_rec_date").String())
	assert.Equal(t, "Digitization", gjson.Get(body, "object.project.title").String())

	rr = executeTestRequest(t, h, http.MethodGet, fmt.Sprintf("/api/project/%d", projectID), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	obj := gjson.Get(rr.Body.String(), "project.objects.0")
	assert.Equal(t, int64(objectID), obj.Get("object_id").Int())
	assert.Equal(t, fmt.Sprintf("/api/project/%d/object/%d", projectID, objectID), obj.Get("routes.api").String())
	assert.Equal(t, fmt.Sprintf("/project/%d/object/%d", projectID, objectID), obj.Get("routes.frontend").String())

	rr = executeTestRequest(t, h, http.MethodPost, fmt.Sprintf("/api/project/%d/object", projectID), map[string]any{"barcode": "x"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Missing required data: name", errorMessage(rr))

	rr = executeTestRequest(t, h, http.MethodPost, "/api/project/9999/object", map[string]any{"name": "orphan"})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// the object is not part of another project
	other := mustCreate(t, h, "/api/project", map[string]any{"title": "Other"})
	rr = executeTestRequest(t, h, http.MethodGet, fmt.Sprintf("/api/project/%d/object/%d", other, objectID), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = executeTestRequest(t, h, http.MethodDelete, fmt.Sprintf("/api/project/%d/object/%d", projectID, objectID), nil)
	require.Equal(t, http.StatusAccepted, rr.Code)
	assert.Empty(t, gjson.Get(rr.Body.String(), "project.objects").Array())
	rr = executeTestRequest(t, h, http.MethodGet, fmt.Sprintf("/api/object/%d", objectID), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestObjectParentsResolveByForeignKey(t *testing.T) {
	h := newRouter(t)
	var collections, projects []int
	for _, name := range []string{"First", "Second", "Third"} {
		collections = append(collections, mustCreate(t, h, "/api/collection", map[string]any{"collection_name": name}))
	}
	for _, title := range []string{"Alpha", "Beta"} {
		projects = append(projects, mustCreate(t, h, "/api/project", map[string]any{"title": title}))
	}
	for i := 0; i < 2; i++ {
		rr := executeTestRequest(t, h, http.MethodPost, fmt.Sprintf("/api/project/%d/object", projects[0]),
			map[string]any{"name": fmt.Sprintf("filler %d", i), "collection_id": collections[0]})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	}

	rr := executeTestRequest(t, h, http.MethodPost, fmt.Sprintf("/api/project/%d/object", projects[1]), map[string]any{
		"name":          "Box 7",
		"collection_id": collections[1],
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	objectID := int(gjson.Get(rr.Body.String(), "object.object_id").Int())
	require.NotEqual(t, collections[1], objectID)
	require.NotEqual(t, projects[1], objectID)

	rr = executeTestRequest(t, h, http.MethodGet, fmt.Sprintf("/api/object/%d", objectID), nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	body := rr.Body.String()
	assert.Equal(t, int64(collections[1]), gjson.Get(body, "object.collection.collection_id").Int())
	assert.Equal(t, "Second", gjson.Get(body, "object.collection.collection_name").String())
	assert.Equal(t, gjson.Null, gjson.Get(body, "object.collection.contact").Type)
	assert.Equal(t, int64(projects[1]), gjson.Get(body, "object.project.project_id").Int())
	assert.Equal(t, "Beta", gjson.Get(body, "object.project.title").String())

	// moving the object to another collection follows the new id
	rr = executeTestRequest(t, h, http.MethodPut, fmt.Sprintf("/api/object/%d", objectID), map[string]any{"collection_id": collections[2]})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, int64(collections[2]), gjson.Get(rr.Body.String(), "object.collection.collection_id").Int())
	assert.Equal(t, "Third", gjson.Get(rr.Body.String(), "object.collection.collection_name").String())

	rr = executeTestRequest(t, h, http.MethodGet, fmt.Sprintf("/api/project/%d", projects[1]), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	objects := gjson.Get(rr.Body.String(), "project.objects").Array()
	require.Len(t, objects, 1)
	assert.Equal(t, int64(objectID), objects[0].Get("object_id").Int())
}

func TestUpdateObject(t *testing.T) {
	h := newRouter(t)
	_, objectID := projectWithObject(t, h)
	target := fmt.Sprintf("/api/object/%d", objectID)

	rr := executeTestRequest(t, h, http.MethodPut, target, map[string]any{
		"name":                  "Box 1a",
		"barcode":               "",
		"originals_return_date": "1/2/2021",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	body := rr.Body.String()
	assert.Equal(t, "Box 1a", gjson.Get(body, "object.name").String())
	assert.Equal(t, gjson.Null, gjson.Get(body, "object.barcode").Type)
	assert.Equal(t, "1/2/2021", gjson.Get(body, "object.originals_return_date").String())
	assert.Equal(t, "3/14/2020", gjson.Get(body, "object.originals_rec_date").String())

	rr = executeTestRequest(t, h, http.MethodPut, target, map[string]any{"name": "x", "zeta": 1, "foo": 2})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Invalid field: foo", errorMessage(rr))

	rr = executeTestRequest(t, h, http.MethodPut, target, map[string]any{"originals_rec_date": "2020-03-14"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = executeTestRequest(t, h, http.MethodPut, "/api/object/9999", map[string]any{"name": "x"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestObjectNotes(t *testing.T) {
	h := newRouter(t)
	projectID, objectID := projectWithObject(t, h)
	base := fmt.Sprintf("/api/project/%d/object/%d/notes", projectID, objectID)

	rr := executeTestRequest(t, h, http.MethodPost, base, map[string]any{"note_type_id": 1, "text": "mold on box"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	noteID := int(gjson.Get(rr.Body.String(), "object.notes.0.note_id").Int())
	assert.Equal(t, "Inspection", gjson.Get(rr.Body.String(), "object.notes.0.note_type").String())

	rr = executeTestRequest(t, h, http.MethodGet, fmt.Sprintf("/api/project/%d", projectID), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, fmt.Sprintf("%s/%d", base, noteID),
		gjson.Get(rr.Body.String(), "project.objects.0.notes.0.route.api").String())

	rr = executeTestRequest(t, h, http.MethodPut, fmt.Sprintf("%s/%d", base, noteID), map[string]any{"text": "no mold"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "no mold", gjson.Get(rr.Body.String(), "object.notes.0.text").String())

	rr = executeTestRequest(t, h, http.MethodPut, fmt.Sprintf("%s/%d", base, noteID), map[string]any{"text": " "})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = executeTestRequest(t, h, http.MethodDelete, fmt.Sprintf("%s/%d", base, noteID), nil)
	require.Equal(t, http.StatusAccepted, rr.Code)
	assert.Empty(t, gjson.Get(rr.Body.String(), "object.notes").Array())

	rr = executeTestRequest(t, h, http.MethodGet, fmt.Sprintf("%s/%d", base, noteID), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

// objectWithItem adds an open reel item to a new object and returns the item route
// with the ids.
func objectWithItem(t *testing.T, h http.Handler) (string, int) {
	t.Helper()
	projectID, objectID := projectWithObject(t, h)
	rr := executeTestRequest(t, h, http.MethodPost, fmt.Sprintf("/api/project/%d/object/%d/item", projectID, objectID), map[string]any{
		"name":                "Reel 1",
		"format_id":           4,
		"itemBarcode":         "IT-1",
		"inspectionDate":      "5/6/2021",
		"files":               []string{"reel1_a.wav"},
		"openReelReelTitle":   "Interview",
		"openReelBaseId":      2,
		"openReelReelSpeedId": "3",
		"openReelDateOfReel":  "7/4/1976",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	itemID := int(gjson.Get(rr.Body.String(), "item.item_id").Int())
	return fmt.Sprintf("/api/project/%d/object/%d/item/%d", projectID, objectID, itemID), itemID
}

func TestObjectItem(t *testing.T) {
	h := newRouter(t)
	itemRoute, itemID := objectWithItem(t, h)

	rr := executeTestRequest(t, h, http.MethodGet, fmt.Sprintf("/api/item/%d", itemID), nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	item := gjson.Get(rr.Body.String(), "item")
	assert.Equal(t, "Reel 1", item.Get("name").String())
	assert.Equal(t, "IT-1", item.Get("barcode").String())
	assert.Equal(t, "5/6/2021", item.Get("inspection_date").String())
	assert.Equal(t, "open reel", item.Get("format.name").String())
	assert.Equal(t, int64(4), item.Get("format_id").Int())
	assert.Equal(t, "reel1_a.wav", item.Get("files.0.name").String())
	assert.Equal(t, "Interview", item.Get("format_details.title_of_reel").String())
	assert.Equal(t, "Polyester", item.Get("format_details.base.name").String())
	assert.Equal(t, "7 1/2", item.Get("format_details.reel_speed.name").String())
	assert.Equal(t, "7/4/1976", item.Get("format_details.date_of_reel").String())

	rr = executeTestRequest(t, h, http.MethodGet, strings.TrimSuffix(itemRoute, fmt.Sprintf("/item/%d", itemID)), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	listed := gjson.Get(rr.Body.String(), "object.items.0")
	assert.False(t, listed.Get("parent_object_id").Exists())
	assert.Equal(t, itemRoute, listed.Get("routes.api").String())

	parent := strings.TrimSuffix(itemRoute, fmt.Sprintf("/item/%d", itemID))
	rr = executeTestRequest(t, h, http.MethodPost, parent+"/item", map[string]any{"name": "Disc", "format_id": 5, "openReelBaseId": 1})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Unused parameters: openReelBaseId", errorMessage(rr))

	rr = executeTestRequest(t, h, http.MethodPost, parent+"/item", map[string]any{"name": "Mystery", "format_id": 42})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Unknown format_id: 42", errorMessage(rr))

	rr = executeTestRequest(t, h, http.MethodPost, parent+"/item", map[string]any{"name": "Reel", "format_id": 4, "openReelBaseId": 99})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = executeTestRequest(t, h, http.MethodDelete, itemRoute, nil)
	require.Equal(t, http.StatusAccepted, rr.Code)
	assert.Empty(t, gjson.Get(rr.Body.String(), "object.items").Array())
	rr = executeTestRequest(t, h, http.MethodGet, fmt.Sprintf("/api/item/%d", itemID), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUpdateItem(t *testing.T) {
	h := newRouter(t)
	_, itemID := objectWithItem(t, h)
	target := fmt.Sprintf("/api/item/%d", itemID)

	body, err := sjson.Set(`{"name": "Reel 1 side A"}`, "format_details.reel_brand", "Scotch")
	require.NoError(t, err)
	body, err = sjson.Set(body, "format_details.base_id", nil)
	require.NoError(t, err)
	body, err = sjson.Set(body, "files", []string{"reel1_a.wav", "reel1_b.wav"})
	require.NoError(t, err)

	rr := executeTestRequest(t, h, http.MethodPut, target, body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	item := gjson.Get(rr.Body.String(), "item")
	assert.Equal(t, "Reel 1 side A", item.Get("name").String())
	assert.Equal(t, "Scotch", item.Get("format_details.reel_brand").String())
	assert.Equal(t, gjson.Null, item.Get("format_details.base").Type)
	assert.Equal(t, "Interview", item.Get("format_details.title_of_reel").String())
	names := item.Get("files.#.name").Array()
	require.Len(t, names, 2)
	assert.Equal(t, "reel1_a.wav", names[0].String())
	assert.Equal(t, "reel1_b.wav", names[1].String())

	// files already on the item are kept once
	rr = executeTestRequest(t, h, http.MethodPut, target, map[string]any{
		"name":  "Reel 1",
		"files": []string{"reel1_b.wav", "reel1_c.wav", "reel1_c.wav"},
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "Reel 1", gjson.Get(rr.Body.String(), "item.name").String())
	names = gjson.Get(rr.Body.String(), "item.files.#.name").Array()
	require.Len(t, names, 3)
	assert.Equal(t, "reel1_c.wav", names[2].String())

	rr = executeTestRequest(t, h, http.MethodPut, target, map[string]any{"color": "red", "name": "x"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Invalid Key(s): color", errorMessage(rr))

	body, _ = sjson.Set(`{}`, "format_details.film_title", "nope")
	rr = executeTestRequest(t, h, http.MethodPut, target, body)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, errorMessage(rr), "film_title")
}

func TestItemNotesFilesTreatments(t *testing.T) {
	h := newRouter(t)
	itemRoute, itemID := objectWithItem(t, h)

	rr := executeTestRequest(t, h, http.MethodPost, itemRoute+"/notes", map[string]any{"note_type_id": 2, "text": "plays fine"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	noteID := int(gjson.Get(rr.Body.String(), "item.notes.0.note_id").Int())

	rr = executeTestRequest(t, h, http.MethodGet, fmt.Sprintf("%s/notes/%d", itemRoute, noteID), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Playback", gjson.Get(rr.Body.String(), "note_type").String())

	rr = executeTestRequest(t, h, http.MethodPut, fmt.Sprintf("%s/notes/%d", itemRoute, noteID), map[string]any{"note_type_id": 4})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Other", gjson.Get(rr.Body.String(), "item.notes.0.note_type").String())

	rr = executeTestRequest(t, h, http.MethodDelete, fmt.Sprintf("%s/notes/%d", itemRoute, noteID), nil)
	require.Equal(t, http.StatusAccepted, rr.Code)
	assert.Empty(t, gjson.Get(rr.Body.String(), "item.notes").Array())

	rr = executeTestRequest(t, h, http.MethodPost, itemRoute+"/treatment", map[string]any{
		"type":    "baked",
		"message": "2 hours at 54C",
		"date":    "2/1/2022",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	treatment := gjson.Get(rr.Body.String(), "item.treatment.0")
	assert.Equal(t, "baked", treatment.Get("type").String())
	assert.Equal(t, "2/1/2022", treatment.Get("date").String())
	treatmentID := int(treatment.Get("treatment_id").Int())

	rr = executeTestRequest(t, h, http.MethodDelete, fmt.Sprintf("%s/treatment/%d", itemRoute, treatmentID), nil)
	require.Equal(t, http.StatusAccepted, rr.Code)
	assert.Empty(t, gjson.Get(rr.Body.String(), "item.treatment").Array())
	rr = executeTestRequest(t, h, http.MethodDelete, fmt.Sprintf("%s/treatment/%d", itemRoute, treatmentID), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = executeTestRequest(t, h, http.MethodPost, itemRoute+"/files", map[string]any{"file_name": "reel1_b.wav", "generation": "access"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	fileID := int(gjson.Get(rr.Body.String(), "id").Int())
	fileRoute := fmt.Sprintf("%s/files/%d", itemRoute, fileID)
	assert.Equal(t, fileRoute, gjson.Get(rr.Body.String(), "url").String())

	rr = executeTestRequest(t, h, http.MethodPut, fileRoute, map[string]any{"generation": "preservation"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "preservation", gjson.Get(rr.Body.String(), "generation").String())
	assert.Equal(t, "reel1_b.wav", gjson.Get(rr.Body.String(), "name").String())

	rr = executeTestRequest(t, h, http.MethodPost, itemRoute+"/files", map[string]any{"generation": "access"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Missing required data: file_name", errorMessage(rr))

	rr = executeTestRequest(t, h, http.MethodDelete, fileRoute, nil)
	require.Equal(t, http.StatusAccepted, rr.Code)
	assert.Len(t, gjson.Get(rr.Body.String(), "item.files").Array(), 1)
	assert.Equal(t, int64(itemID), gjson.Get(rr.Body.String(), "item.item_id").Int())
}

func TestObjectPBCore(t *testing.T) {
	h := newRouter(t)
	_, itemID := objectWithItem(t, h)

	rr := executeTestRequest(t, h, http.MethodGet, fmt.Sprintf("/api/item/%d", itemID), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	objectID := int(gjson.Get(rr.Body.String(), "item.parent_object_id").Int())

	rr = executeTestRequest(t, h, http.MethodGet, fmt.Sprintf("/api/object/%d-pbcore.xml", objectID), nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.True(t, strings.HasPrefix(rr.Header().Get("Content-Type"), "text/xml"))
	assert.Contains(t, rr.Body.String(), "<pbcoreDescriptionDocument")
	assert.Contains(t, rr.Body.String(), "reel1_a.wav")

	rr = executeTestRequest(t, h, http.MethodGet, "/api/object/9999-pbcore.xml", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
