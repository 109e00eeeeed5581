package gormdb

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/uiuclibrary/tyko/internal/common/apperrors"
	"github.com/uiuclibrary/tyko/internal/tykosrv/db/dberror"
	"github.com/uiuclibrary/tyko/internal/tykosrv/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (h *TykoDb) CreateProject(ctx context.Context, p *models.Project) apperrors.Error {
	err := h.gdb(ctx).Omit(clause.Associations).Create(p).Error
	if err != nil {
		return mapError(ctx, err, "project", 0)
	}
	log.Ctx(ctx).Debug().Int("project_id", p.ID).Msg("created project")
	return nil
}

func projectPreloads(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Status").
		Preload("Notes", orderBy("notes.note_id")).
		Preload("Notes.NoteType").
		Preload("Objects", orderBy("object_id")).
		Preload("Objects.Contact").
		Preload("Objects.Collection").
		Preload("Objects.Notes", orderBy("notes.note_id")).
		Preload("Objects.Notes.NoteType").
		Preload("Objects.Items", orderBy("item_id")).
		Preload("Objects.Items.FormatType")
}

// GetProject returns the project with its status, notes and objects. The objects carry
// their items, without format details.
func (h *TykoDb) GetProject(ctx context.Context, projectID int) (*models.Project, apperrors.Error) {
	var p models.Project
	err := projectPreloads(h.gdb(ctx)).First(&p, "project_id = ?", projectID).Error
	if err != nil {
		return nil, mapError(ctx, err, "project", projectID)
	}
	return &p, nil
}

func (h *TykoDb) ListProjects(ctx context.Context) ([]models.Project, apperrors.Error) {
	var projects []models.Project
	err := projectPreloads(h.gdb(ctx)).Order("project_id").Find(&projects).Error
	if err != nil {
		return nil, mapError(ctx, err, "project", 0)
	}
	return projects, nil
}

// SaveProject writes the columns of p. Loaded associations are not written back;
// changing the status is done through StatusID.
func (h *TykoDb) SaveProject(ctx context.Context, p *models.Project) apperrors.Error {
	res := h.gdb(ctx).Model(p).Omit(clause.Associations).Select("*").Updates(p)
	if res.Error != nil {
		return mapError(ctx, res.Error, "project", p.ID)
	}
	if res.RowsAffected == 0 {
		return notFound("project", p.ID)
	}
	return nil
}

// DeleteProject removes the project and its notes. Objects of the project are kept and
// detached from it.
func (h *TykoDb) DeleteProject(ctx context.Context, projectID int) apperrors.Error {
	return h.transaction(ctx, "project", projectID, func(tx *gorm.DB) error {
		if err := tx.Exec("UPDATE tyko_object SET project_id = NULL WHERE project_id = ?", projectID).Error; err != nil {
			return err
		}
		if err := unlinkAllNotes(tx, "project_has_notes", "project_id", projectID); err != nil {
			return err
		}
		res := tx.Delete(&models.Project{}, "project_id = ?", projectID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return notFound("project", projectID)
		}
		return nil
	})
}

func (h *TykoDb) AddProjectNote(ctx context.Context, projectID int, note *models.Note) apperrors.Error {
	return h.transaction(ctx, "note", 0, func(tx *gorm.DB) error {
		ok, err := exists(tx, &models.Project{}, "project_id", projectID)
		if err != nil {
			return err
		}
		if !ok {
			return notFound("project", projectID)
		}
		if err := tx.Omit(clause.Associations).Create(note).Error; err != nil {
			return err
		}
		return linkNote(tx, "project_has_notes", "project_id", projectID, note.NoteID)
	})
}

func (h *TykoDb) RemoveProjectNote(ctx context.Context, projectID int, noteID int) apperrors.Error {
	return h.transaction(ctx, "note", noteID, func(tx *gorm.DB) error {
		ok, err := unlinkNote(tx, "project_has_notes", "project_id", projectID, noteID)
		if err != nil {
			return err
		}
		if !ok {
			return dberror.ErrNotFound.Msg(fmt.Sprintf("project %d has no note with id %d", projectID, noteID))
		}
		return nil
	})
}

// AddProjectObject creates obj as part of the project.
func (h *TykoDb) AddProjectObject(ctx context.Context, projectID int, obj *models.CollectionObject) apperrors.Error {
	return h.transaction(ctx, "object", 0, func(tx *gorm.DB) error {
		ok, err := exists(tx, &models.Project{}, "project_id", projectID)
		if err != nil {
			return err
		}
		if !ok {
			return notFound("project", projectID)
		}
		obj.ProjectID = &projectID
		return tx.Omit(clause.Associations).Create(obj).Error
	})
}

// RemoveProjectObject deletes an object of the project, along with its items.
func (h *TykoDb) RemoveProjectObject(ctx context.Context, projectID int, objectID int) apperrors.Error {
	return h.transaction(ctx, "object", objectID, func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.CollectionObject{}).
			Where("object_id = ? AND project_id = ?", objectID, projectID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return dberror.ErrNotFound.Msg(fmt.Sprintf("project %d has no object with id %d", projectID, objectID))
		}
		return deleteObject(tx, objectID)
	})
}

// GetProjectStatusByName matches the status name case insensitively.
func (h *TykoDb) GetProjectStatusByName(ctx context.Context, name string) (*models.ProjectStatus, apperrors.Error) {
	var statuses []models.ProjectStatus
	err := h.gdb(ctx).Where("LOWER(name) = LOWER(?)", name).Find(&statuses).Error
	if err != nil {
		return nil, mapError(ctx, err, "project status", 0)
	}
	switch len(statuses) {
	case 0:
		return nil, dberror.ErrInvalidInput.Msg(fmt.Sprintf("invalid project status: %s", name))
	case 1:
		return &statuses[0], nil
	default:
		return nil, dberror.ErrAmbiguous.Msg(fmt.Sprintf("more than one project status matches %s", name))
	}
}
