package apis

import (
	"net/http"

	"github.com/uiuclibrary/tyko/internal/common/httpx"
	"github.com/uiuclibrary/tyko/internal/tykosrv/db/models"
	"github.com/uiuclibrary/tyko/internal/tykosrv/serialize"
)

func listCollections(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	collections, err := d.ListCollections(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*serialize.Collection, 0, len(collections))
	for i := range collections {
		out = append(out, serialize.NewCollection(&collections[i]))
	}
	return listing("collections", out, len(out)), nil
}

func createCollection(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	data, err := requestData(r, collectionSchema)
	if err != nil {
		return nil, err
	}
	if err := requireFields(data, "collection_name"); err != nil {
		return nil, err
	}
	c := &models.Collection{}
	if err := applyCollection(c, data); err != nil {
		return nil, err
	}
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	if err := d.CreateCollection(ctx, c); err != nil {
		return nil, err
	}
	p := paths()
	return ok(created{
		ID:          c.ID,
		URL:         p.Collection(c.ID),
		FrontendURL: p.FrontendCollection(c.ID),
	}), nil
}

func applyCollection(c *models.Collection, data map[string]any) error {
	if name, present, err := stringField(data, "collection_name"); err != nil {
		return err
	} else if present && name != nil {
		c.CollectionName = *name
	}
	if v, present, err := stringField(data, "department"); err != nil {
		return err
	} else if present {
		c.Department = v
	}
	if v, present, err := stringField(data, "record_series"); err != nil {
		return err
	} else if present {
		c.RecordSeries = v
	}
	return nil
}

func getCollection(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	id, err := httpx.URLParamID(r, "collectionID")
	if err != nil {
		return nil, err
	}
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	c, err := d.GetCollection(ctx, id)
	if err != nil {
		return nil, err
	}
	return ok(map[string]any{"collection": serialize.NewCollection(c)}), nil
}

func updateCollection(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	id, err := httpx.URLParamID(r, "collectionID")
	if err != nil {
		return nil, err
	}
	data, err := requestData(r, collectionSchema)
	if err != nil {
		return nil, err
	}
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	c, err := d.GetCollection(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyCollection(c, data); err != nil {
		return nil, err
	}
	if err := d.SaveCollection(ctx, c); err != nil {
		return nil, err
	}
	if c, err = d.GetCollection(ctx, id); err != nil {
		return nil, err
	}
	return ok(map[string]any{"collection": serialize.NewCollection(c)}), nil
}

func deleteCollection(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	id, err := httpx.URLParamID(r, "collectionID")
	if err != nil {
		return nil, err
	}
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	if err := d.DeleteCollection(ctx, id); err != nil {
		return nil, err
	}
	return noContent(), nil
}
