package apis

import (
	"context"
	"fmt"
	"net/http"

	"github.com/uiuclibrary/tyko/internal/common/httpx"
	"github.com/uiuclibrary/tyko/internal/tykosrv/db"
	"github.com/uiuclibrary/tyko/internal/tykosrv/db/dberror"
	"github.com/uiuclibrary/tyko/internal/tykosrv/db/models"
	"github.com/uiuclibrary/tyko/internal/tykosrv/serialize"
)

func listProjects(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	limit, err := httpx.QueryInt(r, "limit", -1)
	if err != nil {
		return nil, err
	}
	offset, err := httpx.QueryInt(r, "offset", 0)
	if err != nil {
		return nil, err
	}
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	projects, err := d.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	total := len(projects)
	if limit >= 0 {
		start := min(offset, total)
		end := total
		if limit < total-start {
			end = start + limit
		}
		projects = projects[start:end]
	}
	out := make([]*serialize.ProjectSummary, 0, len(projects))
	for i := range projects {
		out = append(out, serialize.NewProjectSummary(&projects[i]))
	}
	return listing("projects", out, total), nil
}

// applyProject writes the writable fields in data to p. A status is given by name.
func applyProject(ctx context.Context, d db.Database, p *models.Project, data map[string]any) error {
	if title, present, err := stringField(data, "title"); err != nil {
		return err
	} else if present && title != nil {
		p.Title = *title
	}
	if code, present, err := stringField(data, "project_code"); err != nil {
		return err
	} else if present {
		p.ProjectCode = code
	}
	if location, present, err := stringField(data, "current_location"); err != nil {
		return err
	} else if present {
		p.CurrentLocation = location
	}
	if specs, present, err := stringField(data, "specs"); err != nil {
		return err
	} else if present {
		p.Specs = specs
	}
	status, present, err := stringField(data, "status")
	if err != nil {
		return err
	}
	if present {
		if status == nil {
			p.StatusID, p.Status = nil, nil
		} else {
			s, err := d.GetProjectStatusByName(ctx, *status)
			if err != nil {
				return err
			}
			p.StatusID, p.Status = &s.ID, s
		}
	}
	return nil
}

func createProject(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	data, err := requestData(r, projectSchema)
	if err != nil {
		return nil, err
	}
	if err := requireFields(data, "title"); err != nil {
		return nil, err
	}
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	p := &models.Project{}
	if err := applyProject(ctx, d, p, data); err != nil {
		return nil, err
	}
	if err := d.CreateProject(ctx, p); err != nil {
		return nil, err
	}
	return ok(created{ID: p.ID, URL: paths().Project(p.ID)}), nil
}

// projectResponse re-reads the project and renders it recursively.
func projectResponse(ctx context.Context, d db.Database, projectID int, status int) (*httpx.Response, error) {
	p, err := d.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return &httpx.Response{
		StatusCode: status,
		Response:   map[string]any{"project": serialize.NewProject(p, paths())},
	}, nil
}

func getProject(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	id, err := httpx.URLParamID(r, "projectID")
	if err != nil {
		return nil, err
	}
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	return projectResponse(ctx, d, id, http.StatusOK)
}

func updateProject(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	id, err := httpx.URLParamID(r, "projectID")
	if err != nil {
		return nil, err
	}
	data, err := requestData(r, projectSchema)
	if err != nil {
		return nil, err
	}
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	p, err := d.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	delete(data, "specs")
	if err := applyProject(ctx, d, p, data); err != nil {
		return nil, err
	}
	if err := d.SaveProject(ctx, p); err != nil {
		return nil, err
	}
	return projectResponse(ctx, d, id, http.StatusOK)
}

func deleteProject(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	id, err := httpx.URLParamID(r, "projectID")
	if err != nil {
		return nil, err
	}
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	if err := d.DeleteProject(ctx, id); err != nil {
		return nil, err
	}
	return noContent(), nil
}

func addProjectNote(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	id, err := httpx.URLParamID(r, "projectID")
	if err != nil {
		return nil, err
	}
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	note, err := noteFromRequest(r, d)
	if err != nil {
		return nil, err
	}
	if err := d.AddProjectNote(ctx, id, note); err != nil {
		return nil, err
	}
	return projectResponse(ctx, d, id, http.StatusOK)
}

// projectNote returns the note of the project, or not found when the note is not
// attached to it.
func projectNote(ctx context.Context, d db.Database, projectID, noteID int) (*models.Note, error) {
	p, err := d.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	for i := range p.Notes {
		if p.Notes[i].NoteID == noteID {
			return &p.Notes[i], nil
		}
	}
	return nil, dberror.ErrNotFound.Msg(fmt.Sprintf("project %d has no note with id %d", projectID, noteID))
}

func getProjectNote(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	projectID, noteID, err := projectAndNoteIDs(r)
	if err != nil {
		return nil, err
	}
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	note, err := projectNote(ctx, d, projectID, noteID)
	if err != nil {
		return nil, err
	}
	return ok(serialize.NewNote(note)), nil
}

func updateProjectNote(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	projectID, noteID, err := projectAndNoteIDs(r)
	if err != nil {
		return nil, err
	}
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	note, err := projectNote(ctx, d, projectID, noteID)
	if err != nil {
		return nil, err
	}
	if err := updateNoteFromRequest(r, d, note); err != nil {
		return nil, err
	}
	return projectResponse(ctx, d, projectID, http.StatusOK)
}

func removeProjectNote(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	projectID, noteID, err := projectAndNoteIDs(r)
	if err != nil {
		return nil, err
	}
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	if err := d.RemoveProjectNote(ctx, projectID, noteID); err != nil {
		return nil, err
	}
	return projectResponse(ctx, d, projectID, http.StatusAccepted)
}

func projectAndNoteIDs(r *http.Request) (int, int, error) {
	projectID, err := httpx.URLParamID(r, "projectID")
	if err != nil {
		return 0, 0, err
	}
	noteID, err := httpx.URLParamID(r, "noteID")
	if err != nil {
		return 0, 0, err
	}
	return projectID, noteID, nil
}

func addProjectObject(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	projectID, err := httpx.URLParamID(r, "projectID")
	if err != nil {
		return nil, err
	}
	data, err := requestData(r, objectSchema)
	if err != nil {
		return nil, err
	}
	if v, ok := data["collectionId"]; ok {
		if _, dup := data["collection_id"]; !dup {
			data["collection_id"] = v
		}
		delete(data, "collectionId")
	}
	if err := requireFields(data, "name"); err != nil {
		return nil, err
	}
	obj := &models.CollectionObject{}
	if err := applyObject(obj, data); err != nil {
		return nil, err
	}
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	if err := d.AddProjectObject(ctx, projectID, obj); err != nil {
		return nil, err
	}
	return objectResponse(ctx, d, obj.ObjectID, http.StatusOK)
}

func getProjectObject(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	projectID, objectID, err := projectAndObjectIDs(r)
	if err != nil {
		return nil, err
	}
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	obj, err := projectObject(ctx, d, projectID, objectID)
	if err != nil {
		return nil, err
	}
	return ok(map[string]any{"object": serialize.NewProjectObject(projectID, obj, paths())}), nil
}

func removeProjectObject(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	projectID, objectID, err := projectAndObjectIDs(r)
	if err != nil {
		return nil, err
	}
	d, err := getDB(ctx)
	if err != nil {
		return nil, err
	}
	if err := d.RemoveProjectObject(ctx, projectID, objectID); err != nil {
		return nil, err
	}
	return projectResponse(ctx, d, projectID, http.StatusAccepted)
}
