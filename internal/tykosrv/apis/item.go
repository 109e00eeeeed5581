package apis

import (
	"context"
	"fmt"
	"net/http"

	"github.com/uiuclibrary/tyko/internal/common/httpx"
	"github.com/uiuclibrary/tyko/internal/tykosrv/db"
	"github.com/uiuclibrary/tyko/internal/tykosrv/db/dberror"
	"github.com/uiuclibrary/tyko/internal/tykosrv/db/models"
	"github.com/uiuclibrary/tyko/internal/tykosrv/formats"
	"github.com/uiuclibrary/tyko/internal/tykosrv/serialize"
)

func listItems(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	items, err := d.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*serialize.Item, 0, len(items))
	for i := range items {
		out = append(out, serialize.NewItem(&items[i], false))
	}
	return listing("items", out, len(out)), nil
}

func createItem(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	data, err := httpx.GetRequestData(r)
	if err != nil {
		return nil, err
	}
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	item, err := formats.NewItem(ctx, d, data)
	if err != nil {
		return nil, err
	}
	if err := d.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	return ok(created{ID: item.ItemID, URL: paths().Item(item.ItemID)}), nil
}

func itemResponse(ctx context.Context, d db.Database, itemID int, status int) (*httpx.Response, error) {
	item, err := d.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return &httpx.Response{
		StatusCode: status,
		Response:   map[string]any{"item": serialize.NewItem(item, true)},
	}, nil
}

func getItem(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	id, err := httpx.URLParamID(r, "itemID")
	if err != nil {
		return nil, err
	}
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	return itemResponse(ctx, d, id, http.StatusOK)
}

func updateItem(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	id, err := httpx.URLParamID(r, "itemID")
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
	item, err := d.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	changes, err := formats.UpdateItem(ctx, d, item, data)
	if err != nil {
		return nil, err
	}
	if changes.SetFiles {
		addMissingFiles(item, changes.Files)
	}
	if err := d.SaveItem(ctx, item); err != nil {
		return nil, err
	}
	return itemResponse(ctx, d, id, http.StatusOK)
}

// addMissingFiles adds a new file to item for every name it does not have yet.
// SaveItem creates them.
func addMissingFiles(item *models.Item, names []string) {
	have := make(map[string]bool, len(item.Files))
	for _, f := range item.Files {
		have[f.FileName] = true
	}
	for _, name := range names {
		if have[name] {
			continue
		}
		have[name] = true
		item.Files = append(item.Files, models.InstantiationFile{FileName: name})
	}
}

func deleteItem(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	id, err := httpx.URLParamID(r, "itemID")
	if err != nil {
		return nil, err
	}
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	if err := d.DeleteItem(ctx, id); err != nil {
		return nil, err
	}
	return noContent(), nil
}

// objectItem resolves the item of a /project/{projectID}/object/{objectID}/item/{itemID}
// route, checking that each part belongs to the one before it.
func objectItem(r *http.Request, d db.Database) (*models.Item, error) {
	ctx := r.Context()
	projectID, objectID, err := projectAndObjectIDs(r)
	if err != nil {
		return nil, err
	}
	itemID, err := httpx.URLParamID(r, "itemID")
	if err != nil {
		return nil, err
	}
	if _, err := projectObject(ctx, d, projectID, objectID); err != nil {
		return nil, err
	}
	item, err := d.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.ObjectID == nil || *item.ObjectID != objectID {
		return nil, dberror.ErrNotFound.Msg(fmt.Sprintf("object %d has no item with id %d", objectID, itemID))
	}
	return item, nil
}

func itemNote(item *models.Item, r *http.Request) (*models.Note, error) {
	noteID, err := httpx.URLParamID(r, "noteID")
	if err != nil {
		return nil, err
	}
	for i := range item.Notes {
		if item.Notes[i].NoteID == noteID {
			return &item.Notes[i], nil
		}
	}
	return nil, dberror.ErrNotFound.Msg(fmt.Sprintf("item %d has no note with id %d", item.ItemID, noteID))
}

func addItemNote(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	item, err := objectItem(r, d)
	if err != nil {
		return nil, err
	}
	note, err := noteFromRequest(r, d)
	if err != nil {
		return nil, err
	}
	if err := d.AddItemNote(ctx, item.ItemID, note); err != nil {
		return nil, err
	}
	return itemResponse(ctx, d, item.ItemID, http.StatusOK)
}

func getItemNote(r *http.Request) (*httpx.Response, error) {
	d, err := getDB(r.Context())
	if err != nil {
		return nil, err
	}
	item, err := objectItem(r, d)
	if err != nil {
		return nil, err
	}
	note, err := itemNote(item, r)
	if err != nil {
		return nil, err
	}
	return ok(serialize.NewNote(note)), nil
}

func updateItemNote(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	item, err := objectItem(r, d)
	if err != nil {
		return nil, err
	}
	note, err := itemNote(item, r)
	if err != nil {
		return nil, err
	}
	if err := updateNoteFromRequest(r, d, note); err != nil {
		return nil, err
	}
	return itemResponse(ctx, d, item.ItemID, http.StatusOK)
}

func removeItemNote(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	item, err := objectItem(r, d)
	if err != nil {
		return nil, err
	}
	note, err := itemNote(item, r)
	if err != nil {
		return nil, err
	}
	if err := d.RemoveItemNote(ctx, item.ItemID, note.NoteID); err != nil {
		return nil, err
	}
	return itemResponse(ctx, d, item.ItemID, http.StatusAccepted)
}

func addTreatment(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	data, err := requestData(r, treatmentSchema)
	if err != nil {
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
	t := &models.Treatment{}
	if t.Type, _, err = stringField(data, "type"); err != nil {
		return nil, err
	}
	if t.Message, _, err = stringField(data, "message"); err != nil {
		return nil, err
	}
	if t.Date, _, err = dateField(data, "date"); err != nil {
		return nil, err
	}
	if err := d.AddTreatment(ctx, item.ItemID, t); err != nil {
		return nil, err
	}
	return itemResponse(ctx, d, item.ItemID, http.StatusOK)
}

func removeTreatment(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	item, err := objectItem(r, d)
	if err != nil {
		return nil, err
	}
	treatmentID, err := httpx.URLParamID(r, "treatmentID")
	if err != nil {
		return nil, err
	}
	if err := d.RemoveTreatment(ctx, item.ItemID, treatmentID); err != nil {
		return nil, err
	}
	return itemResponse(ctx, d, item.ItemID, http.StatusAccepted)
}
