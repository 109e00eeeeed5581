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

func (h *TykoDb) CreateObject(ctx context.Context, obj *models.CollectionObject) apperrors.Error {
	err := h.gdb(ctx).Omit(clause.Associations).Create(obj).Error
	return mapError(ctx, err, "object", 0)
}

// GetObject returns the object with everything below it, including the format details
// and files of its items.
func (h *TykoDb) GetObject(ctx context.Context, objectID int) (*models.CollectionObject, apperrors.Error) {
	var obj models.CollectionObject
	tx := h.gdb(ctx).
		Preload("Collection").
		Preload("Collection.Contact").
		Preload("Contact").
		Preload("Project").
		Preload("Project.Status").
		Preload("Project.Notes", orderBy("notes.note_id")).
		Preload("Notes", orderBy("notes.note_id")).
		Preload("Notes.NoteType").
		Preload("Items", orderBy("item_id"))
	tx = itemPreloads(tx, "Items.")
	if err := tx.First(&obj, "object_id = ?", objectID).Error; err != nil {
		return nil, mapError(ctx, err, "object", objectID)
	}
	return &obj, nil
}

func (h *TykoDb) ListObjects(ctx context.Context) ([]models.CollectionObject, apperrors.Error) {
	var objects []models.CollectionObject
	err := h.gdb(ctx).
		Preload("Contact").
		Preload("Notes", orderBy("notes.note_id")).
		Preload("Items", orderBy("item_id")).
		Preload("Items.FormatType").
		Order("object_id").
		Find(&objects).Error
	if err != nil {
		return nil, mapError(ctx, err, "object", 0)
	}
	return objects, nil
}

func (h *TykoDb) SaveObject(ctx context.Context, obj *models.CollectionObject) apperrors.Error {
	res := h.gdb(ctx).Model(obj).Omit(clause.Associations).Select("*").Updates(obj)
	if res.Error != nil {
		return mapError(ctx, res.Error, "object", obj.ObjectID)
	}
	if res.RowsAffected == 0 {
		return notFound("object", obj.ObjectID)
	}
	return nil
}

// DeleteObject removes the object along with its items.
func (h *TykoDb) DeleteObject(ctx context.Context, objectID int) apperrors.Error {
	return h.transaction(ctx, "object", objectID, func(tx *gorm.DB) error {
		return deleteObject(tx, objectID)
	})
}

func deleteObject(tx *gorm.DB, objectID int) error {
	var itemIDs []int
	if err := tx.Model(&models.Item{}).Where("object_id = ?", objectID).Pluck("item_id", &itemIDs).Error; err != nil {
		return err
	}
	for _, id := range itemIDs {
		if err := deleteItem(tx, id); err != nil {
			return err
		}
	}
	if err := unlinkAllNotes(tx, "object_has_notes", "object_id", objectID); err != nil {
		return err
	}
	res := tx.Delete(&models.CollectionObject{}, "object_id = ?", objectID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("object", objectID)
	}
	return nil
}

func (h *TykoDb) AddObjectNote(ctx context.Context, objectID int, note *models.Note) apperrors.Error {
	return h.transaction(ctx, "note", 0, func(tx *gorm.DB) error {
		ok, err := exists(tx, &models.CollectionObject{}, "object_id", objectID)
		if err != nil {
			return err
		}
		if !ok {
			return notFound("object", objectID)
		}
		if err := tx.Omit(clause.Associations).Create(note).Error; err != nil {
			return err
		}
		return linkNote(tx, "object_has_notes", "object_id", objectID, note.NoteID)
	})
}

func (h *TykoDb) RemoveObjectNote(ctx context.Context, objectID int, noteID int) apperrors.Error {
	return h.transaction(ctx, "note", noteID, func(tx *gorm.DB) error {
		ok, err := unlinkNote(tx, "object_has_notes", "object_id", objectID, noteID)
		if err != nil {
			return err
		}
		if !ok {
			return dberror.ErrNotFound.Msg(fmt.Sprintf("object %d has no note with id %d", objectID, noteID))
		}
		return nil
	})
}

// AddObjectItem creates item, with its detail row and files, inside the object.
func (h *TykoDb) AddObjectItem(ctx context.Context, objectID int, item *models.Item) apperrors.Error {
	return h.transaction(ctx, "item", 0, func(tx *gorm.DB) error {
		ok, err := exists(tx, &models.CollectionObject{}, "object_id", objectID)
		if err != nil {
			return err
		}
		if !ok {
			return notFound("object", objectID)
		}
		item.ObjectID = &objectID
		return createItem(tx, item)
	})
}

func (h *TykoDb) RemoveObjectItem(ctx context.Context, objectID int, itemID int) apperrors.Error {
	return h.transaction(ctx, "item", itemID, func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Item{}).
			Where("item_id = ? AND object_id = ?", itemID, objectID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return dberror.ErrNotFound.Msg(fmt.Sprintf("object %d has no item with id %d", objectID, itemID))
		}
		return deleteItem(tx, itemID)
	})
}
