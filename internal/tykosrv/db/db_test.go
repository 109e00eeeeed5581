package db

import (
	"context"
	"testing"

	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uiuclibrary/tyko/internal/tykosrv/config"
	"github.com/uiuclibrary/tyko/internal/tykosrv/db/dberror"
	"github.com/uiuclibrary/tyko/internal/tykosrv/db/gormdb"
	"github.com/uiuclibrary/tyko/internal/tykosrv/db/models"
)

func TestInitDatabase(t *testing.T) {
	ctx := log.Logger.WithContext(context.Background())
	ctx = newDb(ctx)
	defer DB(ctx).Close(ctx)

	formats, err := DB(ctx).ListFormatTypes(ctx)
	require.NoError(t, err)
	require.Len(t, formats, len(models.FixedFormatTypes))
	assert.Equal(t, models.FormatOpenReel, formats[0].ID)
	assert.Equal(t, "open reel", formats[0].Name)

	types, err := DB(ctx).ListNoteTypes(ctx)
	require.NoError(t, err)
	assert.Len(t, types, 4)

	values, err := DB(ctx).ListEnum(ctx, "film_film_gauge")
	require.NoError(t, err)
	assert.Len(t, values, 4)
}

// The sqlite test pool has a single connection, so the tests below use the pool
// directly instead of reserving a connection.

func TestInitDatabaseTwice(t *testing.T) {
	ctx := log.Logger.WithContext(context.Background())
	config.TestInit()
	Init()
	g := Pool().Gorm(ctx)

	require.NoError(t, gormdb.InitDatabase(ctx, g, false))
	var n int64
	require.NoError(t, g.Table("film_film_gauge").Count(&n).Error)
	assert.EqualValues(t, 4, n)
	require.NoError(t, gormdb.ValidateDatabase(ctx, g))
}

func TestInitDatabaseMismatch(t *testing.T) {
	ctx := log.Logger.WithContext(context.Background())
	config.TestInit()
	Init()
	g := Pool().Gorm(ctx)

	require.NoError(t, g.Model(&models.FormatType{}).
		Where("format_id = ?", models.FormatFilm).Update("name", "movie").Error)

	err := gormdb.InitDatabase(ctx, g, false)
	assert.ErrorIs(t, err, dberror.ErrInvalidInput)
	err = gormdb.ValidateDatabase(ctx, g)
	assert.ErrorIs(t, err, dberror.ErrInvalidInput)
}

func TestValidateDatabaseMissingTable(t *testing.T) {
	ctx := log.Logger.WithContext(context.Background())
	config.TestInit()
	Init()
	g := Pool().Gorm(ctx)

	require.NoError(t, g.Migrator().DropTable("file_annotations"))
	err := gormdb.ValidateDatabase(ctx, g)
	assert.ErrorIs(t, err, dberror.ErrNoTable)
	assert.Contains(t, err.Error(), "missing table file_annotations")
}

func TestSchemaVersion(t *testing.T) {
	ctx := log.Logger.WithContext(context.Background())
	config.TestInit()
	Init()
	g := Pool().Gorm(ctx)

	require.NoError(t, gormdb.CheckSchemaVersion(ctx, g))

	require.NoError(t, g.Model(&models.SchemaVersion{}).Where("id = ?", 1).Update("version", "99.0.0").Error)
	assert.ErrorIs(t, gormdb.CheckSchemaVersion(ctx, g), dberror.ErrSchemaVersion)
}

func TestSampleData(t *testing.T) {
	config.TestInit()
	config.Config().DB.SampleData = true
	Init()
	config.Config().DB.SampleData = false

	ctx, err := ConnCtx(log.Logger.WithContext(context.Background()))
	require.NoError(t, err)
	defer DB(ctx).Close(ctx)

	projects, aerr := DB(ctx).ListProjects(ctx)
	require.NoError(t, aerr)
	require.Len(t, projects, 1)
	assert.Equal(t, gormdb.SampleProject, projects[0].Title)
	require.Len(t, projects[0].Objects, 1)
	assert.Equal(t, gormdb.SampleObject, projects[0].Objects[0].Name)
	require.NotNil(t, projects[0].Status)
	assert.Equal(t, "In progress", projects[0].Status.Name)
}

func newDb(c ...context.Context) context.Context {
	config.TestInit()
	Init()
	var ctx context.Context
	var err error
	if len(c) > 0 {
		ctx, err = ConnCtx(c[0])
	} else {
		ctx, err = ConnCtx(context.Background())
	}
	if err != nil {
		log.Fatal().Err(err).Msg("unable to get db connection")
	}
	return ctx
}
