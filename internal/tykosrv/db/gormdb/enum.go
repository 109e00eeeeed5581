package gormdb

import (
	"context"
	"fmt"

	"github.com/uiuclibrary/tyko/internal/common/apperrors"
	"github.com/uiuclibrary/tyko/internal/tykosrv/db/dberror"
	"github.com/uiuclibrary/tyko/internal/tykosrv/db/models"
)

func (h *TykoDb) ListFormatTypes(ctx context.Context) ([]models.FormatType, apperrors.Error) {
	var types []models.FormatType
	if err := h.gdb(ctx).Order("format_id").Find(&types).Error; err != nil {
		return nil, mapError(ctx, err, "format", 0)
	}
	return types, nil
}

func (h *TykoDb) GetFormatType(ctx context.Context, formatID int) (*models.FormatType, apperrors.Error) {
	var t models.FormatType
	if err := h.gdb(ctx).First(&t, "format_id = ?", formatID).Error; err != nil {
		return nil, mapError(ctx, err, "format", formatID)
	}
	return &t, nil
}

func enumTable(table string) (models.EnumTable, apperrors.Error) {
	e, ok := models.EnumTableByName(table)
	if !ok {
		return e, dberror.ErrNoTable.Msg("no enumeration table " + table)
	}
	return e, nil
}

// ListEnum returns the rows of an enumeration table, ordered by id.
func (h *TykoDb) ListEnum(ctx context.Context, table string) ([]models.Enum, apperrors.Error) {
	e, err := enumTable(table)
	if err != nil {
		return nil, err
	}
	var values []models.Enum
	if err := h.gdb(ctx).Table(e.Table).Order("id").Find(&values).Error; err != nil {
		return nil, mapError(ctx, err, e.Table, 0)
	}
	return values, nil
}

func (h *TykoDb) EnumExists(ctx context.Context, table string, id int) (bool, apperrors.Error) {
	e, err := enumTable(table)
	if err != nil {
		return false, err
	}
	var n int64
	if err := h.gdb(ctx).Table(e.Table).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, mapError(ctx, err, e.Table, id)
	}
	return n > 0, nil
}

func cassetteModel(t models.CassetteTable) (any, apperrors.Error) {
	switch t {
	case models.CassetteFormatTypes:
		return &models.CassetteType{}, nil
	case models.CassetteTapeTypes:
		return &models.CassetteTapeType{}, nil
	case models.CassetteTapeThicknessTable:
		return &models.CassetteTapeThickness{}, nil
	}
	return nil, dberror.ErrNoTable.Msg(fmt.Sprintf("no cassette table %s", t))
}

func (h *TykoDb) ListCassetteRows(ctx context.Context, t models.CassetteTable) ([]models.CassetteRow, apperrors.Error) {
	if _, err := cassetteModel(t); err != nil {
		return nil, err
	}
	tx := h.gdb(ctx).Order("table_id")
	var rows []models.CassetteRow
	switch t {
	case models.CassetteTapeThicknessTable:
		var values []models.CassetteTapeThickness
		if err := tx.Find(&values).Error; err != nil {
			return nil, mapError(ctx, err, string(t), 0)
		}
		for _, v := range values {
			rows = append(rows, models.CassetteRow{ID: v.ID, Value: v.Value, Unit: v.Unit})
		}
	case models.CassetteTapeTypes:
		var values []models.CassetteTapeType
		if err := tx.Find(&values).Error; err != nil {
			return nil, mapError(ctx, err, string(t), 0)
		}
		for _, v := range values {
			rows = append(rows, models.CassetteRow{ID: v.ID, Name: v.Name})
		}
	default:
		var values []models.CassetteType
		if err := tx.Find(&values).Error; err != nil {
			return nil, mapError(ctx, err, string(t), 0)
		}
		for _, v := range values {
			rows = append(rows, models.CassetteRow{ID: v.ID, Name: v.Name})
		}
	}
	return rows, nil
}

func cassetteValue(t models.CassetteTable, row *models.CassetteRow) any {
	switch t {
	case models.CassetteTapeThicknessTable:
		return &models.CassetteTapeThickness{ID: row.ID, Value: row.Value, Unit: row.Unit}
	case models.CassetteTapeTypes:
		return &models.CassetteTapeType{ID: row.ID, Name: row.Name}
	default:
		return &models.CassetteType{ID: row.ID, Name: row.Name}
	}
}

func cassetteID(v any) int {
	switch r := v.(type) {
	case *models.CassetteTapeThickness:
		return r.ID
	case *models.CassetteTapeType:
		return r.ID
	case *models.CassetteType:
		return r.ID
	}
	return 0
}

func validCassetteRow(t models.CassetteTable, row *models.CassetteRow) apperrors.Error {
	if t.HasValue() {
		if row.Value == "" {
			return dberror.ErrInvalidInput.Msg("missing value")
		}
		return nil
	}
	if row.Name == "" {
		return dberror.ErrInvalidInput.Msg("missing name")
	}
	return nil
}

func (h *TykoDb) CreateCassetteRow(ctx context.Context, t models.CassetteTable, row *models.CassetteRow) apperrors.Error {
	if _, err := cassetteModel(t); err != nil {
		return err
	}
	if err := validCassetteRow(t, row); err != nil {
		return err
	}
	v := cassetteValue(t, row)
	if err := h.gdb(ctx).Create(v).Error; err != nil {
		return mapError(ctx, err, string(t), 0)
	}
	row.ID = cassetteID(v)
	return nil
}

func (h *TykoDb) SaveCassetteRow(ctx context.Context, t models.CassetteTable, row *models.CassetteRow) apperrors.Error {
	if _, err := cassetteModel(t); err != nil {
		return err
	}
	if err := validCassetteRow(t, row); err != nil {
		return err
	}
	v := cassetteValue(t, row)
	res := h.gdb(ctx).Model(v).Select("*").Updates(v)
	if res.Error != nil {
		return mapError(ctx, res.Error, string(t), row.ID)
	}
	if res.RowsAffected == 0 {
		return notFound(string(t), row.ID)
	}
	return nil
}

func (h *TykoDb) DeleteCassetteRow(ctx context.Context, t models.CassetteTable, id int) apperrors.Error {
	model, err := cassetteModel(t)
	if err != nil {
		return err
	}
	res := h.gdb(ctx).Delete(model, "table_id = ?", id)
	if res.Error != nil {
		return mapError(ctx, res.Error, string(t), id)
	}
	if res.RowsAffected == 0 {
		return notFound(string(t), id)
	}
	return nil
}
