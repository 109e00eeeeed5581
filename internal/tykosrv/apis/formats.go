package apis

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/uiuclibrary/tyko/internal/common/httpx"
	"github.com/uiuclibrary/tyko/internal/tykosrv/db/models"
	"github.com/uiuclibrary/tyko/internal/tykosrv/serialize"
	"github.com/uiuclibrary/tyko/internal/tykosrv/tykocommon"
)

func listFormatTypes(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	types, err := d.ListFormatTypes(ctx)
	if err != nil {
		return nil, err
	}
	return ok(serialize.NewFormatTypes(types)), nil
}

func getFormatType(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	id, err := httpx.URLParamID(r, "formatID")
	if err != nil {
		return nil, err
	}
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	t, err := d.GetFormatType(ctx, id)
	if err != nil {
		return nil, err
	}
	return ok(serialize.FormatType{FormatTypesID: t.ID, Name: t.Name}), nil
}

// enumHandler lists the values of one enumeration table.
func enumHandler(table string) httpx.RequestHandler {
	return func(r *http.Request) (*httpx.Response, error) {
		ctx := r.Context()
		d, err := getDB(ctx)
		if err != nil {
			return nil, err
		}
		values, err := d.ListEnum(ctx, table)
		if err != nil {
			return nil, err
		}
		return ok(serialize.NewEnums(values)), nil
	}
}

func cassetteTable(r *http.Request) (models.CassetteTable, error) {
	name := models.CassetteTable(chi.URLParam(r, "cassetteTable"))
	for _, t := range models.CassetteTables {
		if t == name {
			return t, nil
		}
	}
	return "", httpx.ErrNotFound("unknown cassette tape list " + string(name))
}

type cassetteRow struct {
	ID    int     `json:"id"`
	Name  string  `json:"name,omitempty"`
	Value string  `json:"value,omitempty"`
	Unit  *string `json:"unit,omitempty"`
}

func listCassetteRows(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	t, err := cassetteTable(r)
	if err != nil {
		return nil, err
	}
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := d.ListCassetteRows(ctx, t)
	if err != nil {
		return nil, err
	}
	out := make([]cassetteRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, cassetteRow{ID: row.ID, Name: row.Name, Value: row.Value, Unit: row.Unit})
	}
	return ok(out), nil
}

func applyCassetteRow(t models.CassetteTable, row *models.CassetteRow, data map[string]any) error {
	if t.HasValue() {
		value, _, err := stringField(data, "value")
		if err != nil {
			return err
		}
		if value == nil {
			return tykocommon.ErrInvalidInput.Msg("Missing required data: value")
		}
		row.Value = *value
		if row.Unit, _, err = stringField(data, "unit"); err != nil {
			return err
		}
		return nil
	}
	name, _, err := stringField(data, "name")
	if err != nil {
		return err
	}
	if name == nil {
		return tykocommon.ErrInvalidInput.Msg("Missing required data: name")
	}
	row.Name = *name
	return nil
}

func createCassetteRow(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	t, err := cassetteTable(r)
	if err != nil {
		return nil, err
	}
	data, err := httpx.GetRequestData(r)
	if err != nil {
		return nil, err
	}
	row := &models.CassetteRow{}
	if err := applyCassetteRow(t, row, data); err != nil {
		return nil, err
	}
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	if err := d.CreateCassetteRow(ctx, t, row); err != nil {
		return nil, err
	}
	return ok(map[string]any{"id": row.ID}), nil
}

func updateCassetteRow(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	t, err := cassetteTable(r)
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
	row := &models.CassetteRow{ID: id}
	if err := applyCassetteRow(t, row, data); err != nil {
		return nil, err
	}
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	if err := d.SaveCassetteRow(ctx, t, row); err != nil {
		return nil, err
	}
	return ok(cassetteRow{ID: row.ID, Name: row.Name, Value: row.Value, Unit: row.Unit}), nil
}

func deleteCassetteRow(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	t, err := cassetteTable(r)
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
	if err := d.DeleteCassetteRow(ctx, t, id); err != nil {
		return nil, err
	}
	return noContent(), nil
}
