// Package gormdb implements the Tyko data managers on top of gorm. The same code serves
// PostgreSQL and sqlite; driver specific errors are mapped to dberror values here.
package gormdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/rs/zerolog/log"
	"github.com/uiuclibrary/tyko/internal/common/apperrors"
	"github.com/uiuclibrary/tyko/internal/tykosrv/db/dberror"
	"github.com/uiuclibrary/tyko/internal/tykosrv/db/dbmanager"
	"gorm.io/gorm"
)

// TykoDb serves every data manager from a single connection.
type TykoDb struct {
	conn dbmanager.Conn
}

func NewTykoDb(conn dbmanager.Conn) *TykoDb {
	return &TykoDb{conn: conn}
}

func (h *TykoDb) gdb(ctx context.Context) *gorm.DB {
	return h.conn.Gorm().WithContext(ctx)
}

func (h *TykoDb) Close(ctx context.Context) {
	h.conn.Close(ctx)
}

func notFound(entity string, id int) apperrors.Error {
	return dberror.ErrNotFound.Msg(fmt.Sprintf("%s with id %d not found", entity, id))
}

// mapError converts an error from gorm or the driver into a dberror value. A missing
// record is reported as entity not found.
func mapError(ctx context.Context, err error, entity string, id int) apperrors.Error {
	if err == nil {
		return nil
	}
	var appErr apperrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(entity, id)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return dberror.ErrAlreadyExists.Msg(entity + " already exists")
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) || errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return dberror.ErrInvalidInput.Msg("invalid reference in " + entity)
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return dberror.ErrInvalidInput.Msg(validationMessage(entity, verrs))
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return dberror.ErrAlreadyExists.Msg(entity + " already exists")
		case pgerrcode.ForeignKeyViolation:
			return dberror.ErrInvalidInput.Msg("invalid reference in " + entity)
		case pgerrcode.NotNullViolation, pgerrcode.CheckViolation, pgerrcode.InvalidTextRepresentation:
			return dberror.ErrInvalidInput.Msg(pgErr.Message)
		case pgerrcode.UndefinedTable:
			return dberror.ErrNoTable.Msg(pgErr.Message)
		}
	}
	log.Ctx(ctx).Error().Err(err).Str("entity", entity).Msg("database error")
	return dberror.ErrDatabase.Err(err)
}

func validationMessage(entity string, verrs validator.ValidationErrors) string {
	if len(verrs) == 0 {
		return "invalid " + entity
	}
	fe := verrs[0]
	if fe.Tag() == "required" {
		return fmt.Sprintf("%s requires %s", entity, fe.Field())
	}
	return fmt.Sprintf("invalid %s for %s", fe.Field(), entity)
}

// transaction runs fn in a transaction on the connection of h, mapping any error it
// returns.
func (h *TykoDb) transaction(ctx context.Context, entity string, id int, fn func(tx *gorm.DB) error) apperrors.Error {
	err := h.gdb(ctx).Transaction(fn)
	return mapError(ctx, err, entity, id)
}

func exists(tx *gorm.DB, model any, column string, id int) (bool, error) {
	var n int64
	if err := tx.Model(model).Where(column+" = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func linkNote(tx *gorm.DB, joinTable, ownerColumn string, ownerID int, noteID int) error {
	return tx.Exec(fmt.Sprintf("INSERT INTO %s (%s, note_id) VALUES (?, ?)", joinTable, ownerColumn), ownerID, noteID).Error
}

// unlinkNote removes the link between an owner and a note and deletes the note. It
// reports whether the link existed.
func unlinkNote(tx *gorm.DB, joinTable, ownerColumn string, ownerID int, noteID int) (bool, error) {
	res := tx.Exec(fmt.Sprintf("DELETE FROM %s WHERE %s = ? AND note_id = ?", joinTable, ownerColumn), ownerID, noteID)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	return true, deleteNote(tx, noteID)
}

// deleteNote removes a note and every link to it.
func deleteNote(tx *gorm.DB, noteID int) error {
	for _, t := range noteJoinTables {
		if err := tx.Exec(fmt.Sprintf("DELETE FROM %s WHERE note_id = ?", t), noteID).Error; err != nil {
			return err
		}
	}
	return tx.Exec("DELETE FROM notes WHERE note_id = ?", noteID).Error
}

var noteJoinTables = []string{"project_has_notes", "object_has_notes", "item_has_notes"}

func deleteOrphanNote(tx *gorm.DB, noteID int) error {
	for _, t := range noteJoinTables {
		var n int64
		if err := tx.Table(t).Where("note_id = ?", noteID).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
	}
	return tx.Exec("DELETE FROM notes WHERE note_id = ?", noteID).Error
}

// unlinkAllNotes removes every note link of an owner, and the notes left orphaned.
func unlinkAllNotes(tx *gorm.DB, joinTable, ownerColumn string, ownerID int) error {
	var noteIDs []int
	if err := tx.Table(joinTable).Where(ownerColumn+" = ?", ownerID).Pluck("note_id", &noteIDs).Error; err != nil {
		return err
	}
	if err := tx.Exec(fmt.Sprintf("DELETE FROM %s WHERE %s = ?", joinTable, ownerColumn), ownerID).Error; err != nil {
		return err
	}
	for _, id := range noteIDs {
		if err := deleteOrphanNote(tx, id); err != nil {
			return err
		}
	}
	return nil
}

func orderBy(column string) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Order(column)
	}
}
