package apis

import (
	"errors"
	"net/http"

	"github.com/uiuclibrary/tyko/internal/common/httpx"
	"github.com/uiuclibrary/tyko/internal/tykosrv/db"
	"github.com/uiuclibrary/tyko/internal/tykosrv/db/dberror"
	"github.com/uiuclibrary/tyko/internal/tykosrv/db/models"
	"github.com/uiuclibrary/tyko/internal/tykosrv/serialize"
	"github.com/uiuclibrary/tyko/internal/tykosrv/tykocommon"
)

// noteType checks that the note type exists. An unknown type is bad input rather
// than a missing resource.
func noteType(r *http.Request, d db.Database, id int) error {
	if _, err := d.GetNoteType(r.Context(), id); err != nil {
		if errors.Is(err, dberror.ErrNotFound) {
			return tykocommon.ErrInvalidInput.Msg(err.Error())
		}
		return err
	}
	return nil
}

// noteFromRequest builds a new note from a body with text and note_type_id.
func noteFromRequest(r *http.Request, d db.Database) (*models.Note, error) {
	data, err := requestData(r, noteSchema)
	if err != nil {
		return nil, err
	}
	if err := requireFields(data, "text", "note_type_id"); err != nil {
		return nil, err
	}
	text, _, _ := stringField(data, "text")
	typeID, _, err := intField(data, "note_type_id")
	if err != nil {
		return nil, err
	}
	if err := noteType(r, d, *typeID); err != nil {
		return nil, err
	}
	clean := sanitizeText(*text)
	if clean == "" {
		return nil, tykocommon.ErrInvalidInput.Msg("Missing required data: text")
	}
	return &models.Note{Text: clean, NoteTypeID: *typeID}, nil
}

// updateNoteFromRequest changes the text or type of note and saves it.
func updateNoteFromRequest(r *http.Request, d db.Database, note *models.Note) error {
	data, err := requestData(r, noteSchema)
	if err != nil {
		return err
	}
	text, present, err := stringField(data, "text")
	if err != nil {
		return err
	}
	if present {
		if text == nil || sanitizeText(*text) == "" {
			return tykocommon.ErrInvalidInput.Msg("note text cannot be empty")
		}
		note.Text = sanitizeText(*text)
	}
	typeID, present, err := intField(data, "note_type_id")
	if err != nil {
		return err
	}
	if present && typeID != nil {
		if err := noteType(r, d, *typeID); err != nil {
			return err
		}
		note.NoteTypeID, note.NoteType = *typeID, nil
	}
	if err := d.SaveNote(r.Context(), note); err != nil {
		return err
	}
	return nil
}

func listNotes(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	notes, err := d.ListNotes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]serialize.NoteWithParents, 0, len(notes))
	for i := range notes {
		out = append(out, serialize.NewNoteWithParents(&notes[i]))
	}
	return listing("notes", out, len(out)), nil
}

func createNote(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	note, err := noteFromRequest(r, d)
	if err != nil {
		return nil, err
	}
	if err := d.CreateNote(ctx, note); err != nil {
		return nil, err
	}
	return ok(created{ID: note.NoteID, URL: paths().Note(note.NoteID)}), nil
}

func listNoteTypes(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	types, err := d.ListNoteTypes(ctx)
	if err != nil {
		return nil, err
	}
	return ok(map[string]any{"types": serialize.NewNoteTypes(types)}), nil
}

func noteResponse(r *http.Request, d db.Database, noteID int) (*httpx.Response, error) {
	note, err := d.GetNote(r.Context(), noteID)
	if err != nil {
		return nil, err
	}
	return ok(map[string]any{"note": serialize.NewNoteDetail(note, paths())}), nil
}

func getNote(r *http.Request) (*httpx.Response, error) {
	id, err := httpx.URLParamID(r, "noteID")
	if err != nil {
		return nil, err
	}
	d, err := getDB(r.Context())
	if err != nil {
		return nil, err
	}
	return noteResponse(r, d, id)
}

func updateNote(r *http.Request) (*httpx.Response, error) {
	id, err := httpx.URLParamID(r, "noteID")
	if err != nil {
		return nil, err
	}
	d, err := getDB(r.Context())
	if err != nil {
		return nil, err
	}
	note, err := d.GetNote(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if err := updateNoteFromRequest(r, d, note); err != nil {
		return nil, err
	}
	return noteResponse(r, d, id)
}

func deleteNote(r *http.Request) (*httpx.Response, error) {
	id, err := httpx.URLParamID(r, "noteID")
	if err != nil {
		return nil, err
	}
	d, err := getDB(r.Context())
	if err != nil {
		return nil, err
	}
	if err := d.DeleteNote(r.Context(), id); err != nil {
		return nil, err
	}
	return noContent(), nil
}
