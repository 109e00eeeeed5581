package db

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uiuclibrary/tyko/internal/tykosrv/db/dberror"
	"github.com/uiuclibrary/tyko/internal/tykosrv/db/models"
)

func intPtr(i int) *int { return &i }

func enumID(t *testing.T, ctx context.Context, table, name string) int {
	values, err := DB(ctx).ListEnum(ctx, table)
	require.NoError(t, err)
	for _, v := range values {
		if v.Name == name {
			return v.ID
		}
	}
	t.Fatalf("no %q in %s", name, table)
	return 0
}

func TestAddObjectItem(t *testing.T) {
	ctx := log.Logger.WithContext(context.Background())
	ctx = newDb(ctx)
	defer DB(ctx).Close(ctx)

	obj := models.CollectionObject{Name: "reels"}
	require.NoError(t, DB(ctx).CreateObject(ctx, &obj))

	width := enumID(t, ctx, "open_reel_reel_width", "1/4")
	recorded := time.Date(1971, 5, 3, 0, 0, 0, 0, time.UTC)
	item := models.Item{
		Name:         "interview",
		Type:         models.TypeOpenReel,
		FormatTypeID: intPtr(models.FormatOpenReel),
		OpenReel: &models.OpenReel{
			TitleOfReel: strPtr("side 1"),
			ReelWidthID: &width,
			DateOfReel:  &recorded,
		},
		Files: []models.InstantiationFile{{FileName: "interview.wav"}},
	}
	require.NoError(t, DB(ctx).AddObjectItem(ctx, obj.ObjectID, &item))
	require.NotZero(t, item.ItemID)

	got, err := DB(ctx).GetItem(ctx, item.ItemID)
	require.NoError(t, err)
	assert.Equal(t, models.TypeOpenReel, got.Type)
	assert.Equal(t, obj.ObjectID, *got.ObjectID)
	require.NotNil(t, got.FormatType)
	assert.Equal(t, "open reel", got.FormatType.Name)
	require.NotNil(t, got.OpenReel)
	assert.Equal(t, "side 1", *got.OpenReel.TitleOfReel)
	require.NotNil(t, got.OpenReel.ReelWidth)
	assert.Equal(t, "1/4", got.OpenReel.ReelWidth.Name)
	assert.Equal(t, 1971, got.OpenReel.DateOfReel.Year())
	require.Len(t, got.Files, 1)
	assert.Equal(t, "interview.wav", got.Files[0].FileName)

	o, err := DB(ctx).GetObject(ctx, obj.ObjectID)
	require.NoError(t, err)
	require.Len(t, o.Items, 1)
	require.NotNil(t, o.Items[0].OpenReel)

	err = DB(ctx).AddObjectItem(ctx, 999, &models.Item{Name: "orphan"})
	assert.ErrorIs(t, err, dberror.ErrNotFound)
}

func TestSaveItemDetail(t *testing.T) {
	ctx := log.Logger.WithContext(context.Background())
	ctx = newDb(ctx)
	defer DB(ctx).Close(ctx)

	vhs := enumID(t, ctx, "video_cassette_cassette_types", "VHS")
	betamax := enumID(t, ctx, "video_cassette_cassette_types", "Betamax")
	item := models.Item{
		Name:          "tape",
		Type:          models.TypeVideoCassette,
		FormatTypeID:  intPtr(models.FormatVideoCassette),
		VideoCassette: &models.VideoCassette{CassetteTypeID: &vhs},
	}
	require.NoError(t, DB(ctx).CreateItem(ctx, &item))

	loaded, err := DB(ctx).GetItem(ctx, item.ItemID)
	require.NoError(t, err)
	require.NotNil(t, loaded.VideoCassette.CassetteType)
	loaded.Name = "renamed"
	loaded.VideoCassette.CassetteTypeID = &betamax
	loaded.VideoCassette.Label = strPtr("home movies")
	require.NoError(t, DB(ctx).SaveItem(ctx, loaded))

	got, err := DB(ctx).GetItem(ctx, item.ItemID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Name)
	assert.Equal(t, "Betamax", got.VideoCassette.CassetteType.Name)
	assert.Equal(t, "home movies", *got.VideoCassette.Label)

	// an unknown enumeration id violates the foreign key
	got.VideoCassette.CassetteTypeID = intPtr(12345)
	err = DB(ctx).SaveItem(ctx, got)
	assert.ErrorIs(t, err, dberror.ErrInvalidInput)
}

func TestSaveItemFiles(t *testing.T) {
	ctx := log.Logger.WithContext(context.Background())
	ctx = newDb(ctx)
	defer DB(ctx).Close(ctx)

	item := models.Item{Name: "reel", Files: []models.InstantiationFile{{FileName: "a.wav"}}}
	require.NoError(t, DB(ctx).CreateItem(ctx, &item))

	loaded, err := DB(ctx).GetItem(ctx, item.ItemID)
	require.NoError(t, err)
	loaded.Name = "reel 1"
	loaded.Files = append(loaded.Files, models.InstantiationFile{FileName: "b.wav"})
	require.NoError(t, DB(ctx).SaveItem(ctx, loaded))

	got, err := DB(ctx).GetItem(ctx, item.ItemID)
	require.NoError(t, err)
	assert.Equal(t, "reel 1", got.Name)
	require.Len(t, got.Files, 2)
	assert.Equal(t, "a.wav", got.Files[0].FileName)
	assert.Equal(t, "b.wav", got.Files[1].FileName)

	// a file that fails to save rolls back the item update
	got.Name = "reel 2"
	got.Files = append(got.Files, models.InstantiationFile{})
	err = DB(ctx).SaveItem(ctx, got)
	assert.ErrorIs(t, err, dberror.ErrInvalidInput)

	got, err = DB(ctx).GetItem(ctx, item.ItemID)
	require.NoError(t, err)
	assert.Equal(t, "reel 1", got.Name)
	assert.Len(t, got.Files, 2)
}

func TestDeleteItem(t *testing.T) {
	ctx := log.Logger.WithContext(context.Background())
	ctx = newDb(ctx)
	defer DB(ctx).Close(ctx)

	obj := models.CollectionObject{Name: "discs"}
	require.NoError(t, DB(ctx).CreateObject(ctx, &obj))
	item := models.Item{
		Name:         "78",
		Type:         models.TypeGroovedDisc,
		FormatTypeID: intPtr(models.FormatGroovedDisc),
		GroovedDisc:  &models.GroovedDisc{TitleOfDisc: strPtr("waltz")},
		Files:        []models.InstantiationFile{{FileName: "a.wav"}, {FileName: "b.wav"}},
	}
	require.NoError(t, DB(ctx).AddObjectItem(ctx, obj.ObjectID, &item))
	require.NoError(t, DB(ctx).AddItemNote(ctx, item.ItemID, &models.Note{Text: "cracked", NoteTypeID: models.NoteTypeInspection}))
	require.NoError(t, DB(ctx).AddTreatment(ctx, item.ItemID, &models.Treatment{Message: strPtr("cleaned")}))

	fileID := item.Files[0].FileID
	require.NoError(t, DB(ctx).CreateFileNote(ctx, &models.FileNote{FileID: fileID, Message: "clipping"}))

	other := models.CollectionObject{Name: "elsewhere"}
	require.NoError(t, DB(ctx).CreateObject(ctx, &other))
	err := DB(ctx).RemoveObjectItem(ctx, other.ObjectID, item.ItemID)
	assert.ErrorIs(t, err, dberror.ErrNotFound)

	require.NoError(t, DB(ctx).RemoveObjectItem(ctx, obj.ObjectID, item.ItemID))
	_, err = DB(ctx).GetItem(ctx, item.ItemID)
	assert.ErrorIs(t, err, dberror.ErrNotFound)
	_, err = DB(ctx).GetFile(ctx, fileID)
	assert.ErrorIs(t, err, dberror.ErrNotFound)
	notes, err := DB(ctx).ListNotes(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)

	assert.ErrorIs(t, DB(ctx).DeleteItem(ctx, item.ItemID), dberror.ErrNotFound)
}

func TestDeleteObjectCascadesItems(t *testing.T) {
	ctx := log.Logger.WithContext(context.Background())
	ctx = newDb(ctx)
	defer DB(ctx).Close(ctx)

	obj := models.CollectionObject{Name: "box"}
	require.NoError(t, DB(ctx).CreateObject(ctx, &obj))
	item := models.Item{Name: "cd", Type: models.TypeOptical, FormatTypeID: intPtr(models.FormatOptical), Optical: &models.Optical{}}
	require.NoError(t, DB(ctx).AddObjectItem(ctx, obj.ObjectID, &item))
	require.NoError(t, DB(ctx).AddObjectNote(ctx, obj.ObjectID, &models.Note{Text: "dusty", NoteTypeID: models.NoteTypeOther}))

	require.NoError(t, DB(ctx).DeleteObject(ctx, obj.ObjectID))
	_, err := DB(ctx).GetItem(ctx, item.ItemID)
	assert.ErrorIs(t, err, dberror.ErrNotFound)
	items, err := DB(ctx).ListItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestTreatments(t *testing.T) {
	ctx := log.Logger.WithContext(context.Background())
	ctx = newDb(ctx)
	defer DB(ctx).Close(ctx)

	item := models.Item{Name: "generic"}
	require.NoError(t, DB(ctx).CreateItem(ctx, &item))
	tr := models.Treatment{Type: strPtr("needed"), Message: strPtr("rehouse")}
	require.NoError(t, DB(ctx).AddTreatment(ctx, item.ItemID, &tr))

	got, err := DB(ctx).GetItem(ctx, item.ItemID)
	require.NoError(t, err)
	assert.Equal(t, models.TypeItem, got.Type)
	require.Len(t, got.Treatments, 1)
	assert.Equal(t, "rehouse", *got.Treatments[0].Message)

	assert.ErrorIs(t, DB(ctx).RemoveTreatment(ctx, item.ItemID+1, tr.TreatmentID), dberror.ErrNotFound)
	require.NoError(t, DB(ctx).RemoveTreatment(ctx, item.ItemID, tr.TreatmentID))
	assert.ErrorIs(t, DB(ctx).AddTreatment(ctx, 999, &models.Treatment{}), dberror.ErrNotFound)
}
