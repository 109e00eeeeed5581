package gormdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog/log"
	"github.com/uiuclibrary/tyko/internal/tykosrv/db/dberror"
	"github.com/uiuclibrary/tyko/internal/tykosrv/db/models"
	"github.com/uiuclibrary/tyko/internal/tykosrv/tykocommon"
	"gorm.io/gorm"
)

const (
	SampleCollection = "Sample collection"
	SampleProject    = "Sample project"
	SampleObject     = "Sample object"
)

// InitDatabase creates missing tables and columns, seeds the fixed and enumerated
// values, and records the schema version. It is safe to run on an initialized
// database. With sampleData, a sample collection, project and object are added.
func InitDatabase(ctx context.Context, gdb *gorm.DB, sampleData bool) error {
	tx := gdb.WithContext(ctx)
	if err := tx.AutoMigrate(models.AllModels()...); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to create tables")
		return dberror.ErrDatabase.MsgErr("failed to create tables", err)
	}
	err := tx.Transaction(func(tx *gorm.DB) error {
		if err := seedFormatTypes(tx); err != nil {
			return err
		}
		if err := seedNoteTypes(tx); err != nil {
			return err
		}
		if err := seedNames(tx, models.ProjectStatus{}.TableName(), models.ProjectStatusValues); err != nil {
			return err
		}
		for _, e := range models.EnumTables {
			if err := seedNames(tx, e.Table, e.Values); err != nil {
				return err
			}
		}
		if sampleData {
			if err := addSampleData(tx); err != nil {
				return err
			}
		}
		return tx.Save(&models.SchemaVersion{
			ID:        1,
			Version:   tykocommon.SchemaVersion,
			UpdatedAt: time.Now(),
		}).Error
	})
	if err != nil {
		return mapError(ctx, err, "schema", 0)
	}
	log.Ctx(ctx).Info().Str("schema_version", tykocommon.SchemaVersion).Msg("database initialized")
	return nil
}

func seedFormatTypes(tx *gorm.DB) error {
	for _, ft := range models.FixedFormatTypes {
		var existing models.FormatType
		err := tx.First(&existing, "format_id = ?", ft.ID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			v := ft
			if err := tx.Create(&v).Error; err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
		if existing.Name != ft.Name {
			return dberror.ErrInvalidInput.Msg(fmt.Sprintf("enumerated id mismatch: format %d is %q, expected %q", ft.ID, existing.Name, ft.Name))
		}
	}
	return nil
}

func seedNoteTypes(tx *gorm.DB) error {
	for _, nt := range models.FixedNoteTypes {
		var existing models.NoteType
		err := tx.First(&existing, "note_types_id = ?", nt.ID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			v := nt
			if err := tx.Create(&v).Error; err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
		if existing.Name != nt.Name {
			return dberror.ErrInvalidInput.Msg(fmt.Sprintf("enumerated id mismatch: note type %d is %q, expected %q", nt.ID, existing.Name, nt.Name))
		}
	}
	return nil
}

// seedNames inserts each value into a name table unless a row with that name exists.
func seedNames(tx *gorm.DB, table string, values []string) error {
	for _, v := range values {
		var n int64
		if err := tx.Table(table).Where("name = ?", v).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			continue
		}
		if err := tx.Table(table).Create(map[string]any{"name": v}).Error; err != nil {
			return err
		}
	}
	return nil
}

func addSampleData(tx *gorm.DB) error {
	var n int64
	if err := tx.Model(&models.Collection{}).Where("collection_name = ?", SampleCollection).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	collection := models.Collection{CollectionName: SampleCollection}
	if err := tx.Create(&collection).Error; err != nil {
		return err
	}
	var status models.ProjectStatus
	if err := tx.First(&status, "name = ?", models.ProjectStatusValues[0]).Error; err != nil {
		return err
	}
	project := models.Project{Title: SampleProject, StatusID: &status.ID}
	if err := tx.Omit("Status").Create(&project).Error; err != nil {
		return err
	}
	object := models.CollectionObject{
		Name:         SampleObject,
		CollectionID: &collection.ID,
		ProjectID:    &project.ID,
	}
	return tx.Create(&object).Error
}

// tableNames returns the tables of every model, including the note join tables.
func tableNames(gdb *gorm.DB) ([]string, error) {
	var names []string
	for _, m := range models.AllModels() {
		stmt := &gorm.Statement{DB: gdb}
		if err := stmt.Parse(m); err != nil {
			return nil, err
		}
		names = append(names, stmt.Schema.Table)
	}
	return append(names, noteJoinTables...), nil
}

// ValidateDatabase checks that every table exists and that the fixed format and note
// type ids carry their expected names.
func ValidateDatabase(ctx context.Context, gdb *gorm.DB) error {
	tx := gdb.WithContext(ctx)
	names, err := tableNames(tx)
	if err != nil {
		return dberror.ErrDatabase.Err(err)
	}
	for _, name := range names {
		if !tx.Migrator().HasTable(name) {
			return dberror.ErrNoTable.Msg("missing table " + name)
		}
	}
	for _, ft := range models.FixedFormatTypes {
		var existing models.FormatType
		if err := tx.First(&existing, "format_id = ?", ft.ID).Error; err != nil {
			return mapError(ctx, err, "format", ft.ID)
		}
		if existing.Name != ft.Name {
			return dberror.ErrInvalidInput.Msg(fmt.Sprintf("enumerated id mismatch: format %d is %q, expected %q", ft.ID, existing.Name, ft.Name))
		}
	}
	for _, nt := range models.FixedNoteTypes {
		var existing models.NoteType
		if err := tx.First(&existing, "note_types_id = ?", nt.ID).Error; err != nil {
			return mapError(ctx, err, "note type", nt.ID)
		}
		if existing.Name != nt.Name {
			return dberror.ErrInvalidInput.Msg(fmt.Sprintf("enumerated id mismatch: note type %d is %q, expected %q", nt.ID, existing.Name, nt.Name))
		}
	}
	return CheckSchemaVersion(ctx, gdb)
}

// CheckSchemaVersion fails unless the database records a schema version with the same
// major version as this build.
func CheckSchemaVersion(ctx context.Context, gdb *gorm.DB) error {
	tx := gdb.WithContext(ctx)
	if !tx.Migrator().HasTable(&models.SchemaVersion{}) {
		return dberror.ErrNoTable.Msg("missing table schema_version; initialize the database first")
	}
	var sv models.SchemaVersion
	if err := tx.First(&sv, "id = ?", 1).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dberror.ErrSchemaVersion.Msg("schema version not recorded; initialize the database first")
		}
		return mapError(ctx, err, "schema version", 1)
	}
	stored, err := semver.NewVersion(sv.Version)
	if err != nil {
		return dberror.ErrSchemaVersion.Msg(fmt.Sprintf("invalid schema version %q", sv.Version))
	}
	current := semver.MustParse(tykocommon.SchemaVersion)
	c, err := semver.NewConstraint(fmt.Sprintf("^%d", current.Major()))
	if err != nil {
		return dberror.ErrSchemaVersion.Err(err)
	}
	if !c.Check(stored) {
		return dberror.ErrSchemaVersion.Msg(fmt.Sprintf("database schema %s is not compatible with %s", stored, current))
	}
	return nil
}
