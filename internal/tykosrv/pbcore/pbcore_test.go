package pbcore

import (
	"context"
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uiuclibrary/tyko/internal/common/apperrors"
	"github.com/uiuclibrary/tyko/internal/tykosrv/db/dberror"
	"github.com/uiuclibrary/tyko/internal/tykosrv/db/models"
)

type objects map[int]*models.CollectionObject

func (o objects) GetObject(ctx context.Context, id int) (*models.CollectionObject, apperrors.Error) {
	if obj, ok := o[id]; ok {
		return obj, nil
	}
	return nil, dberror.ErrNotFound.Msg("object not found")
}

var sources = Sources{Identifier: "University of Illinois at Urbana-Champaign", ObjectIdentifier: "TYKO-OBJECT-ID"}

func TestMediaType(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"reel.wav", MediaSound},
		{"reel.MP3", MediaSound},
		{"film.mov", MediaMovingImage},
		{"film.mp4", MediaMovingImage},
		{"scan.tif", MediaOther},
		{"README", MediaOther},
		{"notes.unknownext", MediaOther},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MediaType(tt.name), tt.name)
	}
}

func TestCreateFromObject(t *testing.T) {
	gen := "master"
	loc := "Basement"
	db := objects{
		3: {
			ObjectID: 3,
			Name:     "Box & tapes",
			Project:  &models.Project{ID: 1, Title: "Oral histories", CurrentLocation: &loc},
			Items: []models.Item{
				{ItemID: 1, Name: "tape 1", Files: []models.InstantiationFile{
					{FileID: 1, FileName: "tape1.wav", Generation: &gen},
					{FileID: 2, FileName: "tape1.mov"},
				}},
				{ItemID: 2, Name: "tape 2"},
			},
		},
		4: {ObjectID: 4, Name: "Loose"},
	}

	out, err := CreateFromObject(context.Background(), db, 3, sources)
	require.Nil(t, err)

	var doc Document
	require.NoError(t, xml.Unmarshal(out, &doc))
	assert.Equal(t, Namespace, doc.XMLName.Space)
	assert.Equal(t, "TYKO-OBJECT-ID", doc.Identifier.Source)
	assert.Equal(t, "3", doc.Identifier.Value)
	assert.Equal(t, "Box & tapes", doc.Title)
	assert.Equal(t, "Oral histories", doc.Description)
	require.Len(t, doc.Instantiations, 3)

	assert.Equal(t, "tape1.wav", doc.Instantiations[0].Identifier.Value)
	assert.Equal(t, sources.Identifier, doc.Instantiations[0].Identifier.Source)
	assert.Equal(t, "Basement", doc.Instantiations[0].Location)
	assert.Equal(t, MediaSound, doc.Instantiations[0].MediaType)
	assert.Equal(t, "master", doc.Instantiations[0].Generations)
	assert.Equal(t, MediaMovingImage, doc.Instantiations[1].MediaType)
	assert.Equal(t, "tape 2", doc.Instantiations[2].Identifier.Value)

	out, err = CreateFromObject(context.Background(), db, 4, sources)
	require.Nil(t, err)
	doc = Document{}
	require.NoError(t, xml.Unmarshal(out, &doc))
	assert.Equal(t, "No description", doc.Description)
	assert.Empty(t, doc.Instantiations)

	_, err = CreateFromObject(context.Background(), db, 99, sources)
	require.NotNil(t, err)
	assert.ErrorIs(t, err, dberror.ErrNotFound)
}
