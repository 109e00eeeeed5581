// Package db provides the data access interfaces of the Tyko server and the
// per-request database session. The managers are split by the part of the ownership
// tree they serve: projects, collections, objects, items, notes, files and the
// enumerations of item formats.
package db

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/uiuclibrary/tyko/internal/common/apperrors"
	"github.com/uiuclibrary/tyko/internal/tykosrv/config"
	"github.com/uiuclibrary/tyko/internal/tykosrv/db/dbmanager"
	"github.com/uiuclibrary/tyko/internal/tykosrv/db/gormdb"
	"github.com/uiuclibrary/tyko/internal/tykosrv/db/models"
)

// ProjectManager handles projects and their notes and objects.
type ProjectManager interface {
	CreateProject(ctx context.Context, p *models.Project) apperrors.Error
	GetProject(ctx context.Context, projectID int) (*models.Project, apperrors.Error)
	ListProjects(ctx context.Context) ([]models.Project, apperrors.Error)
	SaveProject(ctx context.Context, p *models.Project) apperrors.Error
	DeleteProject(ctx context.Context, projectID int) apperrors.Error
	AddProjectNote(ctx context.Context, projectID int, note *models.Note) apperrors.Error
	RemoveProjectNote(ctx context.Context, projectID int, noteID int) apperrors.Error
	AddProjectObject(ctx context.Context, projectID int, obj *models.CollectionObject) apperrors.Error
	RemoveProjectObject(ctx context.Context, projectID int, objectID int) apperrors.Error
	GetProjectStatusByName(ctx context.Context, name string) (*models.ProjectStatus, apperrors.Error)
}

// CollectionManager handles archival collections.
type CollectionManager interface {
	CreateCollection(ctx context.Context, c *models.Collection) apperrors.Error
	GetCollection(ctx context.Context, collectionID int) (*models.Collection, apperrors.Error)
	ListCollections(ctx context.Context) ([]models.Collection, apperrors.Error)
	SaveCollection(ctx context.Context, c *models.Collection) apperrors.Error
	DeleteCollection(ctx context.Context, collectionID int) apperrors.Error
}

// ObjectManager handles collection objects and their notes and items.
type ObjectManager interface {
	CreateObject(ctx context.Context, obj *models.CollectionObject) apperrors.Error
	GetObject(ctx context.Context, objectID int) (*models.CollectionObject, apperrors.Error)
	ListObjects(ctx context.Context) ([]models.CollectionObject, apperrors.Error)
	SaveObject(ctx context.Context, obj *models.CollectionObject) apperrors.Error
	DeleteObject(ctx context.Context, objectID int) apperrors.Error
	AddObjectNote(ctx context.Context, objectID int, note *models.Note) apperrors.Error
	RemoveObjectNote(ctx context.Context, objectID int, noteID int) apperrors.Error
	AddObjectItem(ctx context.Context, objectID int, item *models.Item) apperrors.Error
	RemoveObjectItem(ctx context.Context, objectID int, itemID int) apperrors.Error
}

// ItemManager handles items, including their format detail rows, notes and treatments.
type ItemManager interface {
	CreateItem(ctx context.Context, item *models.Item) apperrors.Error
	GetItem(ctx context.Context, itemID int) (*models.Item, apperrors.Error)
	ListItems(ctx context.Context) ([]models.Item, apperrors.Error)
	SaveItem(ctx context.Context, item *models.Item) apperrors.Error
	DeleteItem(ctx context.Context, itemID int) apperrors.Error
	AddItemNote(ctx context.Context, itemID int, note *models.Note) apperrors.Error
	RemoveItemNote(ctx context.Context, itemID int, noteID int) apperrors.Error
	AddTreatment(ctx context.Context, itemID int, t *models.Treatment) apperrors.Error
	RemoveTreatment(ctx context.Context, itemID int, treatmentID int) apperrors.Error
}

// NoteManager handles notes and note types.
type NoteManager interface {
	CreateNote(ctx context.Context, note *models.Note) apperrors.Error
	GetNote(ctx context.Context, noteID int) (*models.Note, apperrors.Error)
	ListNotes(ctx context.Context) ([]models.Note, apperrors.Error)
	SaveNote(ctx context.Context, note *models.Note) apperrors.Error
	DeleteNote(ctx context.Context, noteID int) apperrors.Error
	ListNoteTypes(ctx context.Context) ([]models.NoteType, apperrors.Error)
	GetNoteType(ctx context.Context, noteTypeID int) (*models.NoteType, apperrors.Error)
}

// FileManager handles instantiation files, their notes and annotations, and the
// annotation types.
type FileManager interface {
	CreateFile(ctx context.Context, itemID int, f *models.InstantiationFile) apperrors.Error
	GetFile(ctx context.Context, fileID int) (*models.InstantiationFile, apperrors.Error)
	SaveFile(ctx context.Context, f *models.InstantiationFile) apperrors.Error
	DeleteFile(ctx context.Context, fileID int) apperrors.Error

	ListFileNotes(ctx context.Context, fileID int) ([]models.FileNote, apperrors.Error)
	CreateFileNote(ctx context.Context, n *models.FileNote) apperrors.Error
	SaveFileNote(ctx context.Context, n *models.FileNote) apperrors.Error
	GetFileNote(ctx context.Context, noteID int) (*models.FileNote, apperrors.Error)
	DeleteFileNote(ctx context.Context, noteID int) apperrors.Error

	ListFileAnnotations(ctx context.Context, fileID int) ([]models.FileAnnotation, apperrors.Error)
	CreateFileAnnotation(ctx context.Context, a *models.FileAnnotation) apperrors.Error
	GetFileAnnotation(ctx context.Context, annotationID int) (*models.FileAnnotation, apperrors.Error)
	SaveFileAnnotation(ctx context.Context, a *models.FileAnnotation) apperrors.Error
	DeleteFileAnnotation(ctx context.Context, annotationID int) apperrors.Error

	ListActiveAnnotationTypes(ctx context.Context) ([]models.FileAnnotationType, apperrors.Error)
	CreateAnnotationType(ctx context.Context, t *models.FileAnnotationType) apperrors.Error
	DeactivateAnnotationType(ctx context.Context, typeID int) apperrors.Error
}

// EnumManager handles format types and the enumerations of format attributes.
type EnumManager interface {
	ListFormatTypes(ctx context.Context) ([]models.FormatType, apperrors.Error)
	GetFormatType(ctx context.Context, formatID int) (*models.FormatType, apperrors.Error)
	ListEnum(ctx context.Context, table string) ([]models.Enum, apperrors.Error)
	EnumExists(ctx context.Context, table string, id int) (bool, apperrors.Error)

	ListCassetteRows(ctx context.Context, t models.CassetteTable) ([]models.CassetteRow, apperrors.Error)
	CreateCassetteRow(ctx context.Context, t models.CassetteTable, row *models.CassetteRow) apperrors.Error
	SaveCassetteRow(ctx context.Context, t models.CassetteTable, row *models.CassetteRow) apperrors.Error
	DeleteCassetteRow(ctx context.Context, t models.CassetteTable, id int) apperrors.Error
}

// ConnectionManager releases the connection behind a Database.
type ConnectionManager interface {
	Close(ctx context.Context)
}

// Database combines all managers into a single interface.
type Database interface {
	ProjectManager
	CollectionManager
	ObjectManager
	ItemManager
	NoteManager
	FileManager
	EnumManager
	ConnectionManager
}

var pool dbmanager.Pool

// Init creates the database pool from the current configuration, and initializes the
// schema when the configuration asks for it.
func Init() {
	ctx := log.Logger.WithContext(context.Background())
	if err := InitWithConfig(ctx, config.Config()); err != nil {
		panic(fmt.Sprintf("unable to create db pool: %v", err))
	}
}

// InitWithConfig is Init with an explicit context and configuration.
func InitWithConfig(ctx context.Context, cfg *config.ConfigParam) error {
	if cfg == nil {
		return fmt.Errorf("configuration not loaded")
	}
	p, err := dbmanager.NewPool(ctx, cfg)
	if err != nil {
		return err
	}
	if cfg.DB.InitOnStart {
		if err := gormdb.InitDatabase(ctx, p.Gorm(ctx), cfg.DB.SampleData); err != nil {
			p.Close()
			return err
		}
	}
	if err := gormdb.CheckSchemaVersion(ctx, p.Gorm(ctx)); err != nil {
		p.Close()
		return err
	}
	if pool != nil {
		pool.Close()
	}
	pool = p
	return nil
}

// Pool returns the database pool.
func Pool() dbmanager.Pool {
	return pool
}

// Conn returns a new database connection from the pool.
func Conn(ctx context.Context) (dbmanager.Conn, error) {
	if pool != nil {
		conn, err := pool.Conn(ctx)
		if err == nil {
			return conn, nil
		}
		log.Ctx(ctx).Error().Err(err).Msg("unable to get db connection")
		return nil, err
	}
	return nil, fmt.Errorf("database pool not initialized")
}

type ctxDbKeyType string

const ctxDbKey ctxDbKeyType = "TykoDb"

// ConnCtx adds a database connection to the context.
func ConnCtx(ctx context.Context) (context.Context, error) {
	conn, err := Conn(ctx)
	if err != nil {
		return nil, err
	}
	return context.WithValue(ctx, ctxDbKey, conn), nil
}

// DB returns the database bound to the connection in ctx, or nil when ctx carries no
// connection.
func DB(ctx context.Context) Database {
	if conn, ok := ctx.Value(ctxDbKey).(dbmanager.Conn); ok {
		return gormdb.NewTykoDb(conn)
	}
	log.Ctx(ctx).Error().Msg("unable to get db connection from context")
	return nil
}
