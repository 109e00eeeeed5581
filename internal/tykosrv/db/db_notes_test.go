package db

import (
	"context"
	"testing"

	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uiuclibrary/tyko/internal/tykosrv/db/dberror"
	"github.com/uiuclibrary/tyko/internal/tykosrv/db/models"
)

func TestNotes(t *testing.T) {
	ctx := log.Logger.WithContext(context.Background())
	ctx = newDb(ctx)
	defer DB(ctx).Close(ctx)

	note := models.Note{Text: "free standing", NoteTypeID: models.NoteTypePlayback}
	require.NoError(t, DB(ctx).CreateNote(ctx, &note))

	got, err := DB(ctx).GetNote(ctx, note.NoteID)
	require.NoError(t, err)
	assert.Equal(t, "Playback", got.NoteType.Name)
	assert.Empty(t, got.Projects)

	got.Text = "edited"
	got.NoteTypeID = models.NoteTypeOther
	require.NoError(t, DB(ctx).SaveNote(ctx, got))
	got, err = DB(ctx).GetNote(ctx, note.NoteID)
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Text)
	assert.Equal(t, "Other", got.NoteType.Name)

	// text is required
	got.Text = ""
	assert.ErrorIs(t, DB(ctx).SaveNote(ctx, got), dberror.ErrInvalidInput)

	require.NoError(t, DB(ctx).DeleteNote(ctx, note.NoteID))
	assert.ErrorIs(t, DB(ctx).DeleteNote(ctx, note.NoteID), dberror.ErrNotFound)
}

func TestNoteParents(t *testing.T) {
	ctx := log.Logger.WithContext(context.Background())
	ctx = newDb(ctx)
	defer DB(ctx).Close(ctx)

	p := models.Project{Title: "parent"}
	require.NoError(t, DB(ctx).CreateProject(ctx, &p))
	note := models.Note{Text: "attached", NoteTypeID: models.NoteTypeProject}
	require.NoError(t, DB(ctx).AddProjectNote(ctx, p.ID, &note))

	notes, err := DB(ctx).ListNotes(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	require.Len(t, notes[0].Projects, 1)
	assert.Equal(t, p.ID, notes[0].Projects[0].ID)

	// deleting the note detaches it from the project
	require.NoError(t, DB(ctx).DeleteNote(ctx, note.NoteID))
	got, err := DB(ctx).GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Notes)
}

func TestNoteTypes(t *testing.T) {
	ctx := log.Logger.WithContext(context.Background())
	ctx = newDb(ctx)
	defer DB(ctx).Close(ctx)

	nt, err := DB(ctx).GetNoteType(ctx, models.NoteTypeInspection)
	require.NoError(t, err)
	assert.Equal(t, "Inspection", nt.Name)

	_, err = DB(ctx).GetNoteType(ctx, 42)
	assert.ErrorIs(t, err, dberror.ErrNotFound)
}
