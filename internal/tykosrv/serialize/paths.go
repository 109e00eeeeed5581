package serialize

import (
	"fmt"
	"path"
	"strings"
)

// Paths builds the API and frontend locations of entities.
type Paths struct {
	APIPrefix      string
	FrontendPrefix string
}

func (p Paths) api(format string, args ...any) string {
	return joinPath(p.APIPrefix, fmt.Sprintf(format, args...))
}

func (p Paths) frontend(format string, args ...any) string {
	return joinPath(p.FrontendPrefix, fmt.Sprintf(format, args...))
}

func joinPath(prefix, rel string) string {
	if prefix == "" {
		prefix = "/"
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	return path.Join(prefix, rel)
}

func (p Paths) Project(id int) string    { return p.api("project/%d", id) }
func (p Paths) Collection(id int) string { return p.api("collection/%d", id) }
func (p Paths) Object(id int) string     { return p.api("object/%d", id) }
func (p Paths) Item(id int) string       { return p.api("item/%d", id) }
func (p Paths) Note(id int) string       { return p.api("note/%d", id) }

func (p Paths) ProjectNote(projectID, noteID int) string {
	return p.api("project/%d/notes/%d", projectID, noteID)
}

func (p Paths) ProjectObject(projectID, objectID int) string {
	return p.api("project/%d/object/%d", projectID, objectID)
}

func (p Paths) ObjectNote(projectID, objectID, noteID int) string {
	return p.api("project/%d/object/%d/notes/%d", projectID, objectID, noteID)
}

func (p Paths) ObjectItem(projectID, objectID, itemID int) string {
	return p.api("project/%d/object/%d/item/%d", projectID, objectID, itemID)
}

func (p Paths) ItemFile(projectID, objectID, itemID, fileID int) string {
	return p.api("project/%d/object/%d/item/%d/files/%d", projectID, objectID, itemID, fileID)
}

func (p Paths) FrontendCollection(id int) string { return p.frontend("collection/%d", id) }

func (p Paths) FrontendObject(projectID, objectID int) string {
	return p.frontend("project/%d/object/%d", projectID, objectID)
}

func (p Paths) FrontendItem(projectID, objectID, itemID int) string {
	return p.frontend("project/%d/object/%d/item/%d", projectID, objectID, itemID)
}
