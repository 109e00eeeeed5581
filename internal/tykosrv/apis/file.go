package apis

import (
	"fmt"
	"net/http"

	"github.com/uiuclibrary/tyko/internal/common/httpx"
	"github.com/uiuclibrary/tyko/internal/tykosrv/db"
	"github.com/uiuclibrary/tyko/internal/tykosrv/db/dberror"
	"github.com/uiuclibrary/tyko/internal/tykosrv/db/models"
	"github.com/uiuclibrary/tyko/internal/tykosrv/serialize"
	"github.com/uiuclibrary/tyko/internal/tykosrv/tykocommon"
)

func addFile(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	data, err := requestData(r, fileSchema)
	if err != nil {
		return nil, err
	}
	if err := requireFields(data, "file_name"); err != nil {
		return nil, err
	}
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	item, err := objectItem(r, d)
	if err != nil {
		return nil, err
	}
	f := &models.InstantiationFile{}
	name, _, _ := stringField(data, "file_name")
	f.FileName = *name
	if f.Generation, _, err = stringField(data, "generation"); err != nil {
		return nil, err
	}
	if err := d.CreateFile(ctx, item.ItemID, f); err != nil {
		return nil, err
	}
	projectID, objectID, _ := projectAndObjectIDs(r)
	return ok(created{ID: f.FileID, URL: paths().ItemFile(projectID, objectID, item.ItemID, f.FileID)}), nil
}

// itemFile resolves the file of an item file route.
func itemFile(r *http.Request, d db.Database) (*models.Item, *models.InstantiationFile, error) {
	item, err := objectItem(r, d)
	if err != nil {
		return nil, nil, err
	}
	fileID, err := httpx.URLParamID(r, "fileID")
	if err != nil {
		return nil, nil, err
	}
	f, err := d.GetFile(r.Context(), fileID)
	if err != nil {
		return nil, nil, err
	}
	if f.ItemID != item.ItemID {
		return nil, nil, dberror.ErrNotFound.Msg(fmt.Sprintf("item %d has no file with id %d", item.ItemID, fileID))
	}
	return item, f, nil
}

func getFile(r *http.Request) (*httpx.Response, error) {
	d, err := getDB(r.Context())
	if err != nil {
		return nil, err
	}
	_, f, err := itemFile(r, d)
	if err != nil {
		return nil, err
	}
	return ok(serialize.NewFile(f)), nil
}

func updateFile(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	data, err := requestData(r, fileSchema)
	if err != nil {
		return nil, err
	}
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	_, f, err := itemFile(r, d)
	if err != nil {
		return nil, err
	}
	if name, present, err := stringField(data, "file_name"); err != nil {
		return nil, err
	} else if present && name != nil {
		f.FileName = *name
	}
	if gen, present, err := stringField(data, "generation"); err != nil {
		return nil, err
	} else if present {
		f.Generation = gen
	}
	if err := d.SaveFile(ctx, f); err != nil {
		return nil, err
	}
	if f, err = d.GetFile(ctx, f.FileID); err != nil {
		return nil, err
	}
	return ok(serialize.NewFile(f)), nil
}

func removeFile(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	item, f, err := itemFile(r, d)
	if err != nil {
		return nil, err
	}
	if err := d.DeleteFile(ctx, f.FileID); err != nil {
		return nil, err
	}
	return itemResponse(ctx, d, item.ItemID, http.StatusAccepted)
}

func listFileNotes(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	fileID, err := httpx.URLParamID(r, "fileID")
	if err != nil {
		return nil, err
	}
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	notes, err := d.ListFileNotes(ctx, fileID)
	if err != nil {
		return nil, err
	}
	return ok(map[string]any{"notes": serialize.NewFileNotes(notes)}), nil
}

func createFileNote(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	fileID, err := httpx.URLParamID(r, "fileID")
	if err != nil {
		return nil, err
	}
	data, err := httpx.GetRequestData(r)
	if err != nil {
		return nil, err
	}
	if err := requireFields(data, "message"); err != nil {
		return nil, err
	}
	msg, _, err := stringField(data, "message")
	if err != nil {
		return nil, err
	}
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	n := &models.FileNote{FileID: fileID, Message: sanitizeText(*msg)}
	if err := d.CreateFileNote(ctx, n); err != nil {
		return nil, err
	}
	return ok(serialize.NewFileNote(n)), nil
}

func updateFileNote(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	fileID, err := httpx.URLParamID(r, "fileID")
	if err != nil {
		return nil, err
	}
	data, err := httpx.GetRequestData(r)
	if err != nil {
		return nil, err
	}
	id, err := bodyID(data)
	if err != nil {
		return nil, err
	}
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	n, err := d.GetFileNote(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.FileID != fileID {
		return nil, dberror.ErrNotFound.Msg(fmt.Sprintf("file %d has no note with id %d", fileID, id))
	}
	if msg, present, err := stringField(data, "message"); err != nil {
		return nil, err
	} else if present && msg != nil {
		n.Message = sanitizeText(*msg)
	}
	if err := d.SaveFileNote(ctx, n); err != nil {
		return nil, err
	}
	return ok(serialize.NewFileNote(n)), nil
}

func deleteFileNote(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	fileID, err := httpx.URLParamID(r, "fileID")
	if err != nil {
		return nil, err
	}
	data, err := httpx.GetRequestData(r)
	if err != nil {
		return nil, err
	}
	id, err := bodyID(data)
	if err != nil {
		return nil, err
	}
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	n, err := d.GetFileNote(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.FileID != fileID {
		return nil, dberror.ErrNotFound.Msg(fmt.Sprintf("file %d has no note with id %d", fileID, id))
	}
	if err := d.DeleteFileNote(ctx, id); err != nil {
		return nil, err
	}
	return noContent(), nil
}

func listAnnotationTypes(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	types, err := d.ListActiveAnnotationTypes(ctx)
	if err != nil {
		return nil, err
	}
	return ok(map[string]any{"annotation_types": serialize.NewAnnotationTypes(types)}), nil
}

func createAnnotationType(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	data, err := httpx.GetRequestData(r)
	if err != nil {
		return nil, err
	}
	if err := requireFields(data, "text"); err != nil {
		return nil, err
	}
	name, _, err := stringField(data, "text")
	if err != nil {
		return nil, err
	}
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	t := &models.FileAnnotationType{Name: *name, Active: true}
	if err := d.CreateAnnotationType(ctx, t); err != nil {
		return nil, err
	}
	return ok(serialize.NewAnnotationType(t)), nil
}

func deactivateAnnotationType(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	data, err := httpx.GetRequestData(r)
	if err != nil {
		return nil, err
	}
	id, err := bodyID(data)
	if err != nil {
		return nil, err
	}
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	if err := d.DeactivateAnnotationType(ctx, id); err != nil {
		return nil, err
	}
	return noContent(), nil
}

func listFileAnnotations(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	fileID, err := httpx.URLParamID(r, "fileID")
	if err != nil {
		return nil, err
	}
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	annotations, err := d.ListFileAnnotations(ctx, fileID)
	if err != nil {
		return nil, err
	}
	return ok(map[string]any{"annotations": serialize.NewAnnotations(annotations)}), nil
}

func applyAnnotation(a *models.FileAnnotation, data map[string]any) error {
	if content, present, err := stringField(data, "content"); err != nil {
		return err
	} else if present && content != nil {
		a.AnnotationContent = *content
	}
	if typeID, present, err := intField(data, "type_id"); err != nil {
		return err
	} else if present && typeID != nil {
		a.TypeID, a.Type = *typeID, nil
	}
	return nil
}

func createFileAnnotation(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	fileID, err := httpx.URLParamID(r, "fileID")
	if err != nil {
		return nil, err
	}
	data, err := httpx.GetRequestData(r)
	if err != nil {
		return nil, err
	}
	if err := requireFields(data, "content", "type_id"); err != nil {
		return nil, err
	}
	a := &models.FileAnnotation{FileID: fileID}
	if err := applyAnnotation(a, data); err != nil {
		return nil, err
	}
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	if err := d.CreateFileAnnotation(ctx, a); err != nil {
		return nil, err
	}
	return ok(map[string]any{"id": a.ID}), nil
}

// fileAnnotation returns the annotation addressed by the body id when it belongs to
// the file of the route.
func fileAnnotation(r *http.Request, d db.Database, data map[string]any) (*models.FileAnnotation, error) {
	fileID, err := httpx.URLParamID(r, "fileID")
	if err != nil {
		return nil, err
	}
	id, err := bodyID(data)
	if err != nil {
		return nil, err
	}
	a, err := d.GetFileAnnotation(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if a.FileID != fileID {
		return nil, dberror.ErrNotFound.Msg(fmt.Sprintf("file %d has no annotation with id %d", fileID, id))
	}
	return a, nil
}

func updateFileAnnotation(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	data, err := httpx.GetRequestData(r)
	if err != nil {
		return nil, err
	}
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	a, err := fileAnnotation(r, d, data)
	if err != nil {
		return nil, err
	}
	if err := applyAnnotation(a, data); err != nil {
		return nil, err
	}
	if a.AnnotationContent == "" {
		return nil, tykocommon.ErrInvalidInput.Msg("Missing required data: content")
	}
	if err := d.SaveFileAnnotation(ctx, a); err != nil {
		return nil, err
	}
	if a, err = d.GetFileAnnotation(ctx, a.ID); err != nil {
		return nil, err
	}
	return ok(serialize.NewAnnotation(a)), nil
}

func deleteFileAnnotation(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	data, err := httpx.GetRequestData(r)
	if err != nil {
		return nil, err
	}
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	a, err := fileAnnotation(r, d, data)
	if err != nil {
		return nil, err
	}
	if err := d.DeleteFileAnnotation(ctx, a.ID); err != nil {
		return nil, err
	}
	return noContent(), nil
}
