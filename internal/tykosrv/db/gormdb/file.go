package gormdb

import (
	"context"

	"github.com/uiuclibrary/tyko/internal/common/apperrors"
	"github.com/uiuclibrary/tyko/internal/tykosrv/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (h *TykoDb) CreateFile(ctx context.Context, itemID int, f *models.InstantiationFile) apperrors.Error {
	return h.transaction(ctx, "file", 0, func(tx *gorm.DB) error {
		ok, err := exists(tx, &models.Item{}, "item_id", itemID)
		if err != nil {
			return err
		}
		if !ok {
			return notFound("item", itemID)
		}
		f.ItemID = itemID
		return tx.Omit(clause.Associations).Create(f).Error
	})
}

func (h *TykoDb) GetFile(ctx context.Context, fileID int) (*models.InstantiationFile, apperrors.Error) {
	var f models.InstantiationFile
	err := h.gdb(ctx).
		Preload("Notes", orderBy("note_id")).
		Preload("Annotations", orderBy("annotation_id")).
		Preload("Annotations.Type").
		First(&f, "file_id = ?", fileID).Error
	if err != nil {
		return nil, mapError(ctx, err, "file", fileID)
	}
	return &f, nil
}

func (h *TykoDb) SaveFile(ctx context.Context, f *models.InstantiationFile) apperrors.Error {
	res := h.gdb(ctx).Model(f).Omit(clause.Associations).Select("*").Updates(f)
	if res.Error != nil {
		return mapError(ctx, res.Error, "file", f.FileID)
	}
	if res.RowsAffected == 0 {
		return notFound("file", f.FileID)
	}
	return nil
}

// DeleteFile removes the file with its notes and annotations.
func (h *TykoDb) DeleteFile(ctx context.Context, fileID int) apperrors.Error {
	return h.transaction(ctx, "file", fileID, func(tx *gorm.DB) error {
		return deleteFile(tx, fileID)
	})
}

func deleteFile(tx *gorm.DB, fileID int) error {
	if err := tx.Where("file_id = ?", fileID).Delete(&models.FileNote{}).Error; err != nil {
		return err
	}
	if err := tx.Where("file_id = ?", fileID).Delete(&models.FileAnnotation{}).Error; err != nil {
		return err
	}
	res := tx.Delete(&models.InstantiationFile{}, "file_id = ?", fileID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("file", fileID)
	}
	return nil
}

func (h *TykoDb) ListFileNotes(ctx context.Context, fileID int) ([]models.FileNote, apperrors.Error) {
	var notes []models.FileNote
	if err := h.gdb(ctx).Where("file_id = ?", fileID).Order("note_id").Find(&notes).Error; err != nil {
		return nil, mapError(ctx, err, "file note", 0)
	}
	return notes, nil
}

func (h *TykoDb) CreateFileNote(ctx context.Context, n *models.FileNote) apperrors.Error {
	return h.transaction(ctx, "file note", 0, func(tx *gorm.DB) error {
		ok, err := exists(tx, &models.InstantiationFile{}, "file_id", n.FileID)
		if err != nil {
			return err
		}
		if !ok {
			return notFound("file", n.FileID)
		}
		return tx.Create(n).Error
	})
}

func (h *TykoDb) GetFileNote(ctx context.Context, noteID int) (*models.FileNote, apperrors.Error) {
	var n models.FileNote
	if err := h.gdb(ctx).First(&n, "note_id = ?", noteID).Error; err != nil {
		return nil, mapError(ctx, err, "file note", noteID)
	}
	return &n, nil
}

func (h *TykoDb) SaveFileNote(ctx context.Context, n *models.FileNote) apperrors.Error {
	res := h.gdb(ctx).Model(n).Select("*").Updates(n)
	if res.Error != nil {
		return mapError(ctx, res.Error, "file note", n.ID)
	}
	if res.RowsAffected == 0 {
		return notFound("file note", n.ID)
	}
	return nil
}

func (h *TykoDb) DeleteFileNote(ctx context.Context, noteID int) apperrors.Error {
	res := h.gdb(ctx).Delete(&models.FileNote{}, "note_id = ?", noteID)
	if res.Error != nil {
		return mapError(ctx, res.Error, "file note", noteID)
	}
	if res.RowsAffected == 0 {
		return notFound("file note", noteID)
	}
	return nil
}

func (h *TykoDb) ListFileAnnotations(ctx context.Context, fileID int) ([]models.FileAnnotation, apperrors.Error) {
	var annotations []models.FileAnnotation
	err := h.gdb(ctx).Preload("Type").Where("file_id = ?", fileID).Order("annotation_id").Find(&annotations).Error
	if err != nil {
		return nil, mapError(ctx, err, "annotation", 0)
	}
	return annotations, nil
}

func (h *TykoDb) CreateFileAnnotation(ctx context.Context, a *models.FileAnnotation) apperrors.Error {
	return h.transaction(ctx, "annotation", 0, func(tx *gorm.DB) error {
		ok, err := exists(tx, &models.InstantiationFile{}, "file_id", a.FileID)
		if err != nil {
			return err
		}
		if !ok {
			return notFound("file", a.FileID)
		}
		ok, err = exists(tx, &models.FileAnnotationType{}, "type_id", a.TypeID)
		if err != nil {
			return err
		}
		if !ok {
			return notFound("annotation type", a.TypeID)
		}
		return tx.Omit(clause.Associations).Create(a).Error
	})
}

func (h *TykoDb) GetFileAnnotation(ctx context.Context, annotationID int) (*models.FileAnnotation, apperrors.Error) {
	var a models.FileAnnotation
	if err := h.gdb(ctx).Preload("Type").First(&a, "annotation_id = ?", annotationID).Error; err != nil {
		return nil, mapError(ctx, err, "annotation", annotationID)
	}
	return &a, nil
}

func (h *TykoDb) SaveFileAnnotation(ctx context.Context, a *models.FileAnnotation) apperrors.Error {
	res := h.gdb(ctx).Model(a).Omit(clause.Associations).Select("*").Updates(a)
	if res.Error != nil {
		return mapError(ctx, res.Error, "annotation", a.ID)
	}
	if res.RowsAffected == 0 {
		return notFound("annotation", a.ID)
	}
	return nil
}

func (h *TykoDb) DeleteFileAnnotation(ctx context.Context, annotationID int) apperrors.Error {
	res := h.gdb(ctx).Delete(&models.FileAnnotation{}, "annotation_id = ?", annotationID)
	if res.Error != nil {
		return mapError(ctx, res.Error, "annotation", annotationID)
	}
	if res.RowsAffected == 0 {
		return notFound("annotation", annotationID)
	}
	return nil
}

func (h *TykoDb) ListActiveAnnotationTypes(ctx context.Context) ([]models.FileAnnotationType, apperrors.Error) {
	var types []models.FileAnnotationType
	if err := h.gdb(ctx).Where("active = ?", true).Order("type_id").Find(&types).Error; err != nil {
		return nil, mapError(ctx, err, "annotation type", 0)
	}
	return types, nil
}

func (h *TykoDb) CreateAnnotationType(ctx context.Context, t *models.FileAnnotationType) apperrors.Error {
	t.Active = true
	err := h.gdb(ctx).Create(t).Error
	return mapError(ctx, err, "annotation type", 0)
}

// DeactivateAnnotationType hides the type from listings. Annotations using it keep it.
func (h *TykoDb) DeactivateAnnotationType(ctx context.Context, typeID int) apperrors.Error {
	res := h.gdb(ctx).Session(&gorm.Session{SkipHooks: true}).
		Model(&models.FileAnnotationType{}).Where("type_id = ?", typeID).Update("active", false)
	if res.Error != nil {
		return mapError(ctx, res.Error, "annotation type", typeID)
	}
	if res.RowsAffected == 0 {
		return notFound("annotation type", typeID)
	}
	return nil
}
