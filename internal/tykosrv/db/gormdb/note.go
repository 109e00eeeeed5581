package gormdb

import (
	"context"

	"github.com/uiuclibrary/tyko/internal/common/apperrors"
	"github.com/uiuclibrary/tyko/internal/tykosrv/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (h *TykoDb) CreateNote(ctx context.Context, note *models.Note) apperrors.Error {
	err := h.gdb(ctx).Omit(clause.Associations).Create(note).Error
	return mapError(ctx, err, "note", 0)
}

func notePreloads(tx *gorm.DB) *gorm.DB {
	return tx.Preload("NoteType").
		Preload("Projects", orderBy("project.project_id")).
		Preload("Objects", orderBy("tyko_object.object_id")).
		Preload("Items", orderBy("formats.item_id"))
}

// GetNote returns the note with its type and the projects, objects and items it is
// attached to.
func (h *TykoDb) GetNote(ctx context.Context, noteID int) (*models.Note, apperrors.Error) {
	var note models.Note
	if err := notePreloads(h.gdb(ctx)).First(&note, "note_id = ?", noteID).Error; err != nil {
		return nil, mapError(ctx, err, "note", noteID)
	}
	return &note, nil
}

func (h *TykoDb) ListNotes(ctx context.Context) ([]models.Note, apperrors.Error) {
	var notes []models.Note
	if err := notePreloads(h.gdb(ctx)).Order("note_id").Find(&notes).Error; err != nil {
		return nil, mapError(ctx, err, "note", 0)
	}
	return notes, nil
}

func (h *TykoDb) SaveNote(ctx context.Context, note *models.Note) apperrors.Error {
	res := h.gdb(ctx).Model(note).Omit(clause.Associations).Select("*").Updates(note)
	if res.Error != nil {
		return mapError(ctx, res.Error, "note", note.NoteID)
	}
	if res.RowsAffected == 0 {
		return notFound("note", note.NoteID)
	}
	return nil
}

func (h *TykoDb) DeleteNote(ctx context.Context, noteID int) apperrors.Error {
	return h.transaction(ctx, "note", noteID, func(tx *gorm.DB) error {
		ok, err := exists(tx, &models.Note{}, "note_id", noteID)
		if err != nil {
			return err
		}
		if !ok {
			return notFound("note", noteID)
		}
		return deleteNote(tx, noteID)
	})
}

func (h *TykoDb) ListNoteTypes(ctx context.Context) ([]models.NoteType, apperrors.Error) {
	var types []models.NoteType
	if err := h.gdb(ctx).Order("note_types_id").Find(&types).Error; err != nil {
		return nil, mapError(ctx, err, "note type", 0)
	}
	return types, nil
}

func (h *TykoDb) GetNoteType(ctx context.Context, noteTypeID int) (*models.NoteType, apperrors.Error) {
	var t models.NoteType
	if err := h.gdb(ctx).First(&t, "note_types_id = ?", noteTypeID).Error; err != nil {
		return nil, mapError(ctx, err, "note type", noteTypeID)
	}
	return &t, nil
}
