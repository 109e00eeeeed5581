package gormdb

import (
	"context"
	"fmt"

	"github.com/uiuclibrary/tyko/internal/common/apperrors"
	"github.com/uiuclibrary/tyko/internal/tykosrv/db/dberror"
	"github.com/uiuclibrary/tyko/internal/tykosrv/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// itemPreloads loads everything an item serializes: format, notes, files, treatments
// and the detail row with its enumerations. prefix is the association path to the
// items, such as "Items.", or empty.
func itemPreloads(tx *gorm.DB, prefix string) *gorm.DB {
	tx = tx.Preload(prefix+"FormatType").
		Preload(prefix+"Notes", orderBy("notes.note_id")).
		Preload(prefix+"Notes.NoteType").
		Preload(prefix+"Files", orderBy("file_id")).
		Preload(prefix+"Files.Notes", orderBy("note_id")).
		Preload(prefix+"Files.Annotations", orderBy("annotation_id")).
		Preload(prefix+"Files.Annotations.Type").
		Preload(prefix+"Treatments", orderBy("treatment_id"))
	for _, detail := range models.DetailAssociations {
		tx = tx.Preload(prefix + detail)
		for _, enum := range models.DetailEnumAssociations[detail] {
			tx = tx.Preload(prefix + detail + "." + enum)
		}
	}
	return tx
}

func createItem(tx *gorm.DB, item *models.Item) error {
	return tx.Omit("FormatType", "Notes", "Treatments").Create(item).Error
}

// CreateItem creates item with its detail row and files.
func (h *TykoDb) CreateItem(ctx context.Context, item *models.Item) apperrors.Error {
	return h.transaction(ctx, "item", 0, func(tx *gorm.DB) error {
		return createItem(tx, item)
	})
}

func (h *TykoDb) GetItem(ctx context.Context, itemID int) (*models.Item, apperrors.Error) {
	var item models.Item
	err := itemPreloads(h.gdb(ctx), "").First(&item, "item_id = ?", itemID).Error
	if err != nil {
		return nil, mapError(ctx, err, "item", itemID)
	}
	return &item, nil
}

func (h *TykoDb) ListItems(ctx context.Context) ([]models.Item, apperrors.Error) {
	var items []models.Item
	err := itemPreloads(h.gdb(ctx), "").Order("item_id").Find(&items).Error
	if err != nil {
		return nil, mapError(ctx, err, "item", 0)
	}
	return items, nil
}

// SaveItem writes the columns of the item and of its detail row. A detail row that
// does not exist yet is created, and so are files of the item without an id.
func (h *TykoDb) SaveItem(ctx context.Context, item *models.Item) apperrors.Error {
	return h.transaction(ctx, "item", item.ItemID, func(tx *gorm.DB) error {
		res := tx.Model(item).Omit(clause.Associations).Select("*").Updates(item)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return notFound("item", item.ItemID)
		}
		if detail := item.Detail(); detail != nil {
			setDetailItemID(detail, item.ItemID)
			res = tx.Model(detail).Omit(clause.Associations).Select("*").Updates(detail)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				if err := tx.Omit(clause.Associations).Create(detail).Error; err != nil {
					return err
				}
			}
		}
		for i := range item.Files {
			f := &item.Files[i]
			if f.FileID != 0 {
				continue
			}
			f.ItemID = item.ItemID
			if err := tx.Omit(clause.Associations).Create(f).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func setDetailItemID(detail any, id int) {
	switch d := detail.(type) {
	case *models.OpenReel:
		d.ItemID = id
	case *models.GroovedDisc:
		d.ItemID = id
	case *models.Film:
		d.ItemID = id
	case *models.AudioCassette:
		d.ItemID = id
	case *models.Optical:
		d.ItemID = id
	case *models.VideoCassette:
		d.ItemID = id
	}
}

// DeleteItem removes the item with its detail row, files and treatments.
func (h *TykoDb) DeleteItem(ctx context.Context, itemID int) apperrors.Error {
	return h.transaction(ctx, "item", itemID, func(tx *gorm.DB) error {
		return deleteItem(tx, itemID)
	})
}

func deleteItem(tx *gorm.DB, itemID int) error {
	var fileIDs []int
	if err := tx.Model(&models.InstantiationFile{}).Where("item_id = ?", itemID).Pluck("file_id", &fileIDs).Error; err != nil {
		return err
	}
	for _, id := range fileIDs {
		if err := deleteFile(tx, id); err != nil {
			return err
		}
	}
	if err := tx.Where("item_id = ?", itemID).Delete(&models.Treatment{}).Error; err != nil {
		return err
	}
	if err := unlinkAllNotes(tx, "item_has_notes", "item_id", itemID); err != nil {
		return err
	}
	for _, table := range models.DetailTables {
		if err := tx.Exec(fmt.Sprintf("DELETE FROM %s WHERE item_id = ?", table), itemID).Error; err != nil {
			return err
		}
	}
	res := tx.Delete(&models.Item{}, "item_id = ?", itemID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("item", itemID)
	}
	return nil
}

func (h *TykoDb) AddItemNote(ctx context.Context, itemID int, note *models.Note) apperrors.Error {
	return h.transaction(ctx, "note", 0, func(tx *gorm.DB) error {
		ok, err := exists(tx, &models.Item{}, "item_id", itemID)
		if err != nil {
			return err
		}
		if !ok {
			return notFound("item", itemID)
		}
		if err := tx.Omit(clause.Associations).Create(note).Error; err != nil {
			return err
		}
		return linkNote(tx, "item_has_notes", "item_id", itemID, note.NoteID)
	})
}

func (h *TykoDb) RemoveItemNote(ctx context.Context, itemID int, noteID int) apperrors.Error {
	return h.transaction(ctx, "note", noteID, func(tx *gorm.DB) error {
		ok, err := unlinkNote(tx, "item_has_notes", "item_id", itemID, noteID)
		if err != nil {
			return err
		}
		if !ok {
			return dberror.ErrNotFound.Msg(fmt.Sprintf("item %d has no note with id %d", itemID, noteID))
		}
		return nil
	})
}

func (h *TykoDb) AddTreatment(ctx context.Context, itemID int, t *models.Treatment) apperrors.Error {
	return h.transaction(ctx, "treatment", 0, func(tx *gorm.DB) error {
		ok, err := exists(tx, &models.Item{}, "item_id", itemID)
		if err != nil {
			return err
		}
		if !ok {
			return notFound("item", itemID)
		}
		t.ItemID = itemID
		return tx.Create(t).Error
	})
}

func (h *TykoDb) RemoveTreatment(ctx context.Context, itemID int, treatmentID int) apperrors.Error {
	res := h.gdb(ctx).Where("treatment_id = ? AND item_id = ?", treatmentID, itemID).Delete(&models.Treatment{})
	if res.Error != nil {
		return mapError(ctx, res.Error, "treatment", treatmentID)
	}
	if res.RowsAffected == 0 {
		return dberror.ErrNotFound.Msg(fmt.Sprintf("item %d has no treatment with id %d", itemID, treatmentID))
	}
	return nil
}
