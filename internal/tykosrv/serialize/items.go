package serialize

import (
	"sort"

	"github.com/uiuclibrary/tyko/internal/tykosrv/db/models"
	"github.com/uiuclibrary/tyko/internal/tykosrv/tykocommon"
)

// sortedItems orders items by their sequence in the object. Items without a sequence
// go last and ties are broken by id.
func sortedItems(items []models.Item) []*models.Item {
	out := make([]*models.Item, 0, len(items))
	for i := range items {
		out = append(out, &items[i])
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case a.ObjSequence == nil && b.ObjSequence == nil:
			return a.ItemID < b.ItemID
		case a.ObjSequence == nil:
			return false
		case b.ObjSequence == nil:
			return true
		case *a.ObjSequence != *b.ObjSequence:
			return *a.ObjSequence < *b.ObjSequence
		}
		return a.ItemID < b.ItemID
	})
	return out
}

// Object is the recursive rendition of an object.
type Object struct {
	ObjectID            int             `json:"object_id"`
	Name                string          `json:"name"`
	Barcode             *string         `json:"barcode"`
	Items               []ObjectItem    `json:"items"`
	Notes               []Note          `json:"notes"`
	Collection          *Collection     `json:"collection"`
	Contact             *Contact        `json:"contact"`
	Project             *ProjectSummary `json:"project"`
	OriginalsRecDate    *string         `json:"originals_rec_date"`
	OriginalsReturnDate *string         `json:"originals_return_date"`
}

// ObjectItem is an item listed in its object. The parent object is implied and
// left out.
type ObjectItem struct {
	Item
	ParentObjectID *int    `json:"parent_object_id,omitempty"`
	Routes         *Routes `json:"routes,omitempty"`
}

func NewObject(o *models.CollectionObject) *Object {
	out := &Object{
		ObjectID:            o.ObjectID,
		Name:                o.Name,
		Barcode:             o.Barcode,
		Items:               make([]ObjectItem, 0, len(o.Items)),
		Notes:               notes(o.Notes),
		Collection:          NewCollection(o.Collection),
		Contact:             NewContact(o.Contact),
		Project:             NewProjectSummary(o.Project),
		OriginalsRecDate:    tykocommon.FormatDate(o.OriginalsRecDate),
		OriginalsReturnDate: tykocommon.FormatDate(o.OriginalsReturnDate),
	}
	for _, it := range sortedItems(o.Items) {
		out.Items = append(out.Items, ObjectItem{Item: *NewItem(it, true)})
	}
	return out
}

// NewProjectObject renders an object reached through its project. Every item
// carries its API and frontend routes.
func NewProjectObject(projectID int, o *models.CollectionObject, paths Paths) *Object {
	out := NewObject(o)
	for i := range out.Items {
		id := out.Items[i].ItemID
		out.Items[i].Routes = &Routes{
			API:      paths.ObjectItem(projectID, o.ObjectID, id),
			Frontend: paths.FrontendItem(projectID, o.ObjectID, id),
		}
	}
	return out
}

type FileRef struct {
	Name       string  `json:"name"`
	ID         int     `json:"id"`
	Generation *string `json:"generation"`
}

type FileNote struct {
	ID      int    `json:"id"`
	FileID  int    `json:"file_id,omitempty"`
	Message string `json:"message"`
}

func NewFileNote(n *models.FileNote) FileNote {
	return FileNote{ID: n.ID, FileID: n.FileID, Message: n.Message}
}

func NewFileNotes(ns []models.FileNote) []FileNote {
	out := make([]FileNote, 0, len(ns))
	for i := range ns {
		out = append(out, NewFileNote(&ns[i]))
	}
	return out
}

type AnnotationType struct {
	TypeID int    `json:"type_id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

func NewAnnotationType(t *models.FileAnnotationType) *AnnotationType {
	if t == nil {
		return nil
	}
	return &AnnotationType{TypeID: t.ID, Name: t.Name, Active: t.Active}
}

func NewAnnotationTypes(types []models.FileAnnotationType) []AnnotationType {
	out := make([]AnnotationType, 0, len(types))
	for i := range types {
		out = append(out, *NewAnnotationType(&types[i]))
	}
	return out
}

type Annotation struct {
	ID      int             `json:"id"`
	Content string          `json:"content"`
	Type    *AnnotationType `json:"type"`
}

func NewAnnotation(a *models.FileAnnotation) Annotation {
	return Annotation{ID: a.ID, Content: a.AnnotationContent, Type: NewAnnotationType(a.Type)}
}

func NewAnnotations(as []models.FileAnnotation) []Annotation {
	out := make([]Annotation, 0, len(as))
	for i := range as {
		out = append(out, NewAnnotation(&as[i]))
	}
	return out
}

type File struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	Generation  *string      `json:"generation"`
	ItemID      int          `json:"item_id"`
	Notes       []FileNote   `json:"notes"`
	Annotations []Annotation `json:"annotations"`
}

func NewFile(f *models.InstantiationFile) *File {
	out := &File{
		ID:          f.FileID,
		Name:        f.FileName,
		Generation:  f.Generation,
		ItemID:      f.ItemID,
		Notes:       make([]FileNote, 0, len(f.Notes)),
		Annotations: NewAnnotations(f.Annotations),
	}
	for _, n := range f.Notes {
		out.Notes = append(out.Notes, FileNote{ID: n.ID, Message: n.Message})
	}
	return out
}

type Treatment struct {
	TreatmentID int     `json:"treatment_id"`
	Message     *string `json:"message"`
	Type        *string `json:"type"`
	Date        *string `json:"date"`
	ItemID      int     `json:"item_id"`
}

type Vendor struct {
	VendorName              *string `json:"vendor_name"`
	DeliverableReceivedDate *string `json:"deliverable_received_date"`
	OriginalsReceivedDate   *string `json:"originals_received_date"`
}

type ItemFormat struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Item renders an item. Files is a list of File when the item is rendered
// recursively and of FileRef otherwise.
type Item struct {
	ItemID         int         `json:"item_id"`
	Name           string      `json:"name"`
	Files          any         `json:"files"`
	ParentObjectID *int        `json:"parent_object_id"`
	ObjSequence    *int        `json:"obj_sequence"`
	Notes          []Note      `json:"notes"`
	Barcode        *string     `json:"barcode"`
	MedusaUUID     *string     `json:"medusa_uuid"`
	Treatment      []Treatment `json:"treatment"`
	Format         *ItemFormat `json:"format"`
	FormatID       *int        `json:"format_id"`
	FormatDetails  any         `json:"format_details"`
	InspectionDate *string     `json:"inspection_date"`
	Vendor         Vendor      `json:"vendor"`
	TransferDate   *string     `json:"transfer_date"`
}

func NewItem(it *models.Item, recurse bool) *Item {
	out := &Item{
		ItemID:         it.ItemID,
		Name:           it.Name,
		ParentObjectID: it.ObjectID,
		ObjSequence:    it.ObjSequence,
		Notes:          notes(it.Notes),
		Barcode:        it.Barcode,
		MedusaUUID:     it.MedusaUUID,
		Treatment:      make([]Treatment, 0, len(it.Treatments)),
		FormatID:       it.FormatTypeID,
		FormatDetails:  NewFormatDetails(it),
		InspectionDate: tykocommon.FormatDate(it.InspectionDate),
		TransferDate:   tykocommon.FormatDate(it.TransferDate),
		Vendor: Vendor{
			VendorName:              it.VendorName,
			DeliverableReceivedDate: tykocommon.FormatDate(it.DeliverableReceivedDate),
			OriginalsReceivedDate:   tykocommon.FormatDate(it.OriginalsReceivedDate),
		},
	}
	if it.FormatType != nil {
		out.Format = &ItemFormat{ID: it.FormatType.ID, Name: it.FormatType.Name}
	}
	if recurse {
		files := make([]*File, 0, len(it.Files))
		for i := range it.Files {
			files = append(files, NewFile(&it.Files[i]))
		}
		out.Files = files
	} else {
		files := make([]FileRef, 0, len(it.Files))
		for _, f := range it.Files {
			files = append(files, FileRef{Name: f.FileName, ID: f.FileID, Generation: f.Generation})
		}
		out.Files = files
	}
	for _, t := range it.Treatments {
		out.Treatment = append(out.Treatment, Treatment{
			TreatmentID: t.TreatmentID,
			Message:     t.Message,
			Type:        t.Type,
			Date:        tykocommon.FormatDate(t.Date),
			ItemID:      t.ItemID,
		})
	}
	return out
}
