// Package serialize renders Tyko models as the JSON documents returned by the API.
//
// Most entities have two renditions. The recursive one embeds related entities in
// full; the flat one refers to them by id.
package serialize

import (
	"github.com/uiuclibrary/tyko/internal/tykosrv/db/models"
	"github.com/uiuclibrary/tyko/internal/tykosrv/tykocommon"
)

// Routes locates an entity in the API and, when it has a page, in the frontend.
type Routes struct {
	API      string `json:"api"`
	Frontend string `json:"frontend,omitempty"`
}

type EnumRef struct {
	Name string `json:"name"`
	ID   int    `json:"id"`
}

// enumRef accepts any of the enumeration models, which all share the shape of Enum.
func enumRef[T ~struct{ models.Enum }](e *T) *EnumRef {
	if e == nil {
		return nil
	}
	v := struct{ models.Enum }(*e)
	return &EnumRef{Name: v.Name, ID: v.ID}
}

type Contact struct {
	ContactID    int     `json:"contact_id"`
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	EmailAddress *string `json:"email_address"`
}

func NewContact(c *models.Contact) *Contact {
	if c == nil {
		return nil
	}
	return &Contact{
		ContactID:    c.ID,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		EmailAddress: c.EmailAddress,
	}
}

type Collection struct {
	CollectionID   int      `json:"collection_id"`
	RecordSeries   *string  `json:"record_series"`
	CollectionName string   `json:"collection_name"`
	ContactID      *int     `json:"contact_id"`
	Department     *string  `json:"department"`
	Contact        *Contact `json:"contact"`
}

func NewCollection(c *models.Collection) *Collection {
	if c == nil {
		return nil
	}
	return &Collection{
		CollectionID:   c.ID,
		RecordSeries:   c.RecordSeries,
		CollectionName: c.CollectionName,
		ContactID:      c.ContactID,
		Department:     c.Department,
		Contact:        NewContact(c.Contact),
	}
}

type NoteRef struct {
	NoteID int `json:"note_id"`
}

func noteRefs(notes []models.Note) []NoteRef {
	refs := make([]NoteRef, 0, len(notes))
	for _, n := range notes {
		refs = append(refs, NoteRef{NoteID: n.NoteID})
	}
	return refs
}

type Note struct {
	NoteID      int     `json:"note_id"`
	Text        string  `json:"text"`
	NoteTypesID int     `json:"note_types_id"`
	NoteType    *string `json:"note_type"`
	Route       *Routes `json:"route,omitempty"`
}

func NewNote(n *models.Note) Note {
	note := Note{
		NoteID:      n.NoteID,
		Text:        n.Text,
		NoteTypesID: n.NoteTypeID,
	}
	if n.NoteType != nil {
		name := n.NoteType.Name
		note.NoteType = &name
	}
	return note
}

func notes(ns []models.Note) []Note {
	out := make([]Note, 0, len(ns))
	for i := range ns {
		out = append(out, NewNote(&ns[i]))
	}
	return out
}

// NoteWithParents is a note in the note listing.
type NoteWithParents struct {
	Note
	ParentProjectIDs []int `json:"parent_project_ids"`
	ParentObjectIDs  []int `json:"parent_object_ids"`
	ParentItemIDs    []int `json:"parent_item_ids"`
}

func NewNoteWithParents(n *models.Note) NoteWithParents {
	out := NoteWithParents{
		Note:             NewNote(n),
		ParentProjectIDs: make([]int, 0, len(n.Projects)),
		ParentObjectIDs:  make([]int, 0, len(n.Objects)),
		ParentItemIDs:    make([]int, 0, len(n.Items)),
	}
	for _, p := range n.Projects {
		out.ParentProjectIDs = append(out.ParentProjectIDs, p.ID)
	}
	for _, o := range n.Objects {
		out.ParentObjectIDs = append(out.ParentObjectIDs, o.ObjectID)
	}
	for _, i := range n.Items {
		out.ParentItemIDs = append(out.ParentItemIDs, i.ItemID)
	}
	return out
}

// NoteDetail is a single note with the API routes of everything it is attached to.
type NoteDetail struct {
	Note
	Parents []string `json:"parents"`
}

func NewNoteDetail(n *models.Note, paths Paths) NoteDetail {
	out := NoteDetail{Note: NewNote(n), Parents: []string{}}
	for _, p := range n.Projects {
		out.Parents = append(out.Parents, paths.Project(p.ID))
	}
	for _, o := range n.Objects {
		out.Parents = append(out.Parents, paths.Object(o.ObjectID))
	}
	for _, i := range n.Items {
		out.Parents = append(out.Parents, paths.Item(i.ItemID))
	}
	return out
}

type NoteType struct {
	Name string `json:"name"`
	ID   int    `json:"id"`
}

func NewNoteTypes(types []models.NoteType) []NoteType {
	out := make([]NoteType, 0, len(types))
	for _, t := range types {
		out = append(out, NoteType{Name: t.Name, ID: t.ID})
	}
	return out
}

type FormatType struct {
	FormatTypesID int    `json:"format_types_id"`
	Name          string `json:"name"`
}

func NewFormatTypes(types []models.FormatType) []FormatType {
	out := make([]FormatType, 0, len(types))
	for _, t := range types {
		out = append(out, FormatType{FormatTypesID: t.ID, Name: t.Name})
	}
	return out
}

func NewEnums(enums []models.Enum) []EnumRef {
	out := make([]EnumRef, 0, len(enums))
	for _, e := range enums {
		out = append(out, EnumRef{Name: e.Name, ID: e.ID})
	}
	return out
}

// ProjectSummary is the flat rendition of a project.
type ProjectSummary struct {
	ProjectID       int       `json:"project_id"`
	ProjectCode     *string   `json:"project_code"`
	CurrentLocation *string   `json:"current_location"`
	Status          *string   `json:"status"`
	Title           string    `json:"title"`
	Specs           *string   `json:"specs"`
	Notes           []NoteRef `json:"notes"`
}

func projectFields(p *models.Project) ProjectSummary {
	s := ProjectSummary{
		ProjectID:       p.ID,
		ProjectCode:     p.ProjectCode,
		CurrentLocation: p.CurrentLocation,
		Title:           p.Title,
		Specs:           p.Specs,
	}
	if p.Status != nil {
		name := p.Status.Name
		s.Status = &name
	}
	return s
}

func NewProjectSummary(p *models.Project) *ProjectSummary {
	if p == nil {
		return nil
	}
	s := projectFields(p)
	s.Notes = noteRefs(p.Notes)
	return &s
}

// Project is the recursive rendition of a project. Notes carry their API route and
// objects carry their API and frontend routes.
type Project struct {
	ProjectID       int             `json:"project_id"`
	ProjectCode     *string         `json:"project_code"`
	CurrentLocation *string         `json:"current_location"`
	Status          *string         `json:"status"`
	Title           string          `json:"title"`
	Specs           *string         `json:"specs"`
	Notes           []Note          `json:"notes"`
	Objects         []ProjectObject `json:"objects"`
}

// ProjectObject is an object listed in its project, with its notes resolved.
type ProjectObject struct {
	ObjectSummary
	Notes []Note `json:"notes"`
}

func NewProject(p *models.Project, paths Paths) *Project {
	s := projectFields(p)
	out := &Project{
		ProjectID:       s.ProjectID,
		ProjectCode:     s.ProjectCode,
		CurrentLocation: s.CurrentLocation,
		Status:          s.Status,
		Title:           s.Title,
		Specs:           s.Specs,
		Notes:           notes(p.Notes),
		Objects:         make([]ProjectObject, 0, len(p.Objects)),
	}
	for i := range out.Notes {
		out.Notes[i].Route = &Routes{API: paths.ProjectNote(p.ID, out.Notes[i].NoteID)}
	}
	for i := range p.Objects {
		o := &p.Objects[i]
		s := NewObjectSummary(o)
		s.Routes = &Routes{
			API:      paths.ProjectObject(p.ID, o.ObjectID),
			Frontend: paths.FrontendObject(p.ID, o.ObjectID),
		}
		po := ProjectObject{ObjectSummary: *s, Notes: notes(o.Notes)}
		for j := range po.Notes {
			po.Notes[j].Route = &Routes{API: paths.ObjectNote(p.ID, o.ObjectID, po.Notes[j].NoteID)}
		}
		out.Objects = append(out.Objects, po)
	}
	return out
}

type ItemRef struct {
	ItemID int         `json:"item_id"`
	Name   string      `json:"name"`
	Format *FormatType `json:"format"`
}

// ObjectSummary is the flat rendition of an object. Inside a project it carries its
// routes.
type ObjectSummary struct {
	ObjectID            int       `json:"object_id"`
	Name                string    `json:"name"`
	Barcode             *string   `json:"barcode"`
	Items               []ItemRef `json:"items"`
	Notes               []NoteRef `json:"notes"`
	CollectionID        *int      `json:"collection_id"`
	ParentProjectID     *int      `json:"parent_project_id"`
	Contact             *Contact  `json:"contact"`
	OriginalsRecDate    *string   `json:"originals_rec_date"`
	OriginalsReturnDate *string   `json:"originals_return_date"`
	Routes              *Routes   `json:"routes,omitempty"`
}

func NewObjectSummary(o *models.CollectionObject) *ObjectSummary {
	s := &ObjectSummary{
		ObjectID:            o.ObjectID,
		Name:                o.Name,
		Barcode:             o.Barcode,
		Items:               make([]ItemRef, 0, len(o.Items)),
		Notes:               noteRefs(o.Notes),
		CollectionID:        o.CollectionID,
		ParentProjectID:     o.ProjectID,
		Contact:             NewContact(o.Contact),
		OriginalsRecDate:    tykocommon.FormatDate(o.OriginalsRecDate),
		OriginalsReturnDate: tykocommon.FormatDate(o.OriginalsReturnDate),
	}
	items := sortedItems(o.Items)
	for _, it := range items {
		ref := ItemRef{ItemID: it.ItemID, Name: it.Name}
		if it.FormatType != nil {
			ref.Format = &FormatType{FormatTypesID: it.FormatType.ID, Name: it.FormatType.Name}
		}
		s.Items = append(s.Items, ref)
	}
	return s
}
