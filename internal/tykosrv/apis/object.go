package apis

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	"github.com/uiuclibrary/tyko/internal/common/httpx"
	"github.com/uiuclibrary/tyko/internal/tykosrv/config"
	"github.com/uiuclibrary/tyko/internal/tykosrv/db"
	"github.com/uiuclibrary/tyko/internal/tykosrv/db/dberror"
	"github.com/uiuclibrary/tyko/internal/tykosrv/db/models"
	"github.com/uiuclibrary/tyko/internal/tykosrv/formats"
	"github.com/uiuclibrary/tyko/internal/tykosrv/pbcore"
	"github.com/uiuclibrary/tyko/internal/tykosrv/serialize"
	"github.com/uiuclibrary/tyko/internal/tykosrv/tykocommon"
)

var objectWritable = map[string]bool{
	"name":                  true,
	"barcode":               true,
	"collection_id":         true,
	"originals_rec_date":    true,
	"originals_return_date": true,
}

func listObjects(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	objects, err := d.ListObjects(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*serialize.ObjectSummary, 0, len(objects))
	for i := range objects {
		out = append(out, serialize.NewObjectSummary(&objects[i]))
	}
	return listing("objects", out, len(out)), nil
}

// applyObject writes the object fields in data to obj. Dates are m/d/Y and a blank
// value clears the field.
func applyObject(obj *models.CollectionObject, data map[string]any) error {
	if name, present, err := stringField(data, "name"); err != nil {
		return err
	} else if present && name != nil {
		obj.Name = *name
	}
	if v, present, err := stringField(data, "barcode"); err != nil {
		return err
	} else if present {
		obj.Barcode = v
	}
	if v, present, err := intField(data, "collection_id"); err != nil {
		return err
	} else if present {
		obj.CollectionID, obj.Collection = v, nil
	}
	if v, present, err := intField(data, "project_id"); err != nil {
		return err
	} else if present {
		obj.ProjectID, obj.Project = v, nil
	}
	if v, present, err := dateField(data, "originals_rec_date"); err != nil {
		return err
	} else if present {
		obj.OriginalsRecDate = v
	}
	if v, present, err := dateField(data, "originals_return_date"); err != nil {
		return err
	} else if present {
		obj.OriginalsReturnDate = v
	}
	return nil
}

func createObject(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	data, err := requestData(r, objectSchema)
	if err != nil {
		return nil, err
	}
	if err := requireFields(data, "name"); err != nil {
		return nil, err
	}
	obj := &models.CollectionObject{}
	if err := applyObject(obj, data); err != nil {
		return nil, err
	}
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	if err := d.CreateObject(ctx, obj); err != nil {
		return nil, err
	}
	return ok(created{ID: obj.ObjectID, URL: paths().Object(obj.ObjectID)}), nil
}

func objectResponse(ctx context.Context, d db.Database, objectID int, status int) (*httpx.Response, error) {
	obj, err := d.GetObject(ctx, objectID)
	if err != nil {
		return nil, err
	}
	return &httpx.Response{
		StatusCode: status,
		Response:   map[string]any{"object": serialize.NewObject(obj)},
	}, nil
}

func getObject(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	id, err := httpx.URLParamID(r, "objectID")
	if err != nil {
		return nil, err
	}
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	return objectResponse(ctx, d, id, http.StatusOK)
}

func updateObject(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	id, err := httpx.URLParamID(r, "objectID")
	if err != nil {
		return nil, err
	}
	data, err := httpx.GetRequestData(r)
	if err != nil {
		return nil, err
	}
	var invalid []string
	for k := range data {
		if !objectWritable[k] {
			invalid = append(invalid, k)
		}
	}
	if len(invalid) > 0 {
		sort.Strings(invalid)
		return nil, tykocommon.ErrInvalidInput.Msg("Invalid field: " + invalid[0])
	}
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	obj, err := d.GetObject(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyObject(obj, data); err != nil {
		return nil, err
	}
	if err := d.SaveObject(ctx, obj); err != nil {
		return nil, err
	}
	return objectResponse(ctx, d, id, http.StatusOK)
}

func deleteObject(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	id, err := httpx.URLParamID(r, "objectID")
	if err != nil {
		return nil, err
	}
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	if err := d.DeleteObject(ctx, id); err != nil {
		return nil, err
	}
	return noContent(), nil
}

func getObjectPBCore(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	id, err := httpx.URLParamID(r, "objectID")
	if err != nil {
		return nil, err
	}
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	cfg := config.Config().PBCore
	doc, err := pbcore.CreateFromObject(ctx, d, id, pbcore.Sources{
		Identifier:       cfg.IdentifierSource,
		ObjectIdentifier: cfg.ObjectIdentifierSource,
	})
	if err != nil {
		return nil, err
	}
	return &httpx.Response{
		StatusCode:  http.StatusOK,
		ContentType: httpx.ContentTypeXML,
		Response:    doc,
	}, nil
}

func projectAndObjectIDs(r *http.Request) (int, int, error) {
	projectID, err := httpx.URLParamID(r, "projectID")
	if err != nil {
		return 0, 0, err
	}
	objectID, err := httpx.URLParamID(r, "objectID")
	if err != nil {
		return 0, 0, err
	}
	return projectID, objectID, nil
}

// projectObject returns the object when it belongs to the project.
func projectObject(ctx context.Context, d db.Database, projectID, objectID int) (*models.CollectionObject, error) {
	obj, err := d.GetObject(ctx, objectID)
	if err != nil {
		return nil, err
	}
	if obj.ProjectID == nil || *obj.ProjectID != projectID {
		return nil, dberror.ErrNotFound.Msg(fmt.Sprintf("project %d has no object with id %d", projectID, objectID))
	}
	return obj, nil
}

func objectNote(obj *models.CollectionObject, noteID int) (*models.Note, error) {
	for i := range obj.Notes {
		if obj.Notes[i].NoteID == noteID {
			return &obj.Notes[i], nil
		}
	}
	return nil, dberror.ErrNotFound.Msg(fmt.Sprintf("object %d has no note with id %d", obj.ObjectID, noteID))
}

func addObjectNote(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	projectID, objectID, err := projectAndObjectIDs(r)
	if err != nil {
		return nil, err
	}
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := projectObject(ctx, d, projectID, objectID); err != nil {
		return nil, err
	}
	note, err := noteFromRequest(r, d)
	if err != nil {
		return nil, err
	}
	if err := d.AddObjectNote(ctx, objectID, note); err != nil {
		return nil, err
	}
	return objectResponse(ctx, d, objectID, http.StatusOK)
}

// objectNoteRequest resolves the project, object and note of an object note route.
func objectNoteRequest(r *http.Request, d db.Database) (*models.CollectionObject, *models.Note, error) {
	projectID, objectID, err := projectAndObjectIDs(r)
	if err != nil {
		return nil, nil, err
	}
	noteID, err := httpx.URLParamID(r, "noteID")
	if err != nil {
		return nil, nil, err
	}
	obj, err := projectObject(r.Context(), d, projectID, objectID)
	if err != nil {
		return nil, nil, err
	}
	note, err := objectNote(obj, noteID)
	if err != nil {
		return nil, nil, err
	}
	return obj, note, nil
}

func getObjectNote(r *http.Request) (*httpx.Response, error) {
	d, err := getDB(r.Context())
	if err != nil {
		return nil, err
	}
	_, note, err := objectNoteRequest(r, d)
	if err != nil {
		return nil, err
	}
	return ok(serialize.NewNote(note)), nil
}

func updateObjectNote(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	obj, note, err := objectNoteRequest(r, d)
	if err != nil {
		return nil, err
	}
	if err := updateNoteFromRequest(r, d, note); err != nil {
		return nil, err
	}
	return objectResponse(ctx, d, obj.ObjectID, http.StatusOK)
}

func removeObjectNote(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	obj, note, err := objectNoteRequest(r, d)
	if err != nil {
		return nil, err
	}
	if err := d.RemoveObjectNote(ctx, obj.ObjectID, note.NoteID); err != nil {
		return nil, err
	}
	return objectResponse(ctx, d, obj.ObjectID, http.StatusAccepted)
}

func addObjectItem(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	projectID, objectID, err := projectAndObjectIDs(r)
	if err != nil {
		return nil, err
	}
	data, err := httpx.GetRequestData(r)
	if err != nil {
		return nil, err
	}
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := projectObject(ctx, d, projectID, objectID); err != nil {
		return nil, err
	}
	item, err := formats.NewItem(ctx, d, data)
	if err != nil {
		return nil, err
	}
	if err := d.AddObjectItem(ctx, objectID, item); err != nil {
		return nil, err
	}
	return itemResponse(ctx, d, item.ItemID, http.StatusOK)
}

func removeObjectItem(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	projectID, objectID, err := projectAndObjectIDs(r)
	if err != nil {
		return nil, err
	}
	itemID, err := httpx.URLParamID(r, "itemID")
	if err != nil {
		return nil, err
	}
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := projectObject(ctx, d, projectID, objectID); err != nil {
		return nil, err
	}
	if err := d.RemoveObjectItem(ctx, objectID, itemID); err != nil {
		return nil, err
	}
	return objectResponse(ctx, d, objectID, http.StatusAccepted)
}
