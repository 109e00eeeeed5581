// Package models defines the gorm models of the Tyko schema. Items use joined-table
// inheritance: every item has a row in formats, and items of a known format also have
// a detail row keyed by the same item id in the table of that format.
package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

var validate = validator.New()

type ProjectStatus struct {
	ID   int    `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"not null;uniqueIndex"`
}

func (ProjectStatus) TableName() string { return "project_status_type" }

type Project struct {
	ID              int `gorm:"column:project_id;primaryKey;autoIncrement"`
	ProjectCode     *string
	Title           string `gorm:"not null" validate:"required"`
	CurrentLocation *string
	StatusID        *int
	Status          *ProjectStatus `gorm:"foreignKey:StatusID;references:ID"`
	Specs           *string
	Notes           []Note             `gorm:"many2many:project_has_notes;joinForeignKey:project_id;joinReferences:note_id"`
	Objects         []CollectionObject `gorm:"foreignKey:ProjectID;references:ID"`
}

func (Project) TableName() string { return "project" }

func (p *Project) BeforeSave(tx *gorm.DB) error {
	return validate.Struct(p)
}

type Contact struct {
	ID           int `gorm:"column:contact_id;primaryKey;autoIncrement"`
	FirstName    *string
	LastName     *string
	EmailAddress *string
}

func (Contact) TableName() string { return "contact" }

type Collection struct {
	ID             int `gorm:"column:collection_id;primaryKey;autoIncrement"`
	RecordSeries   *string
	CollectionName string `gorm:"not null" validate:"required"`
	Department     *string
	ContactID      *int
	Contact        *Contact `gorm:"foreignKey:ContactID;references:ID"`
}

func (Collection) TableName() string { return "collection" }

func (c *Collection) BeforeSave(tx *gorm.DB) error {
	return validate.Struct(c)
}

// CollectionObject is a physical container, such as a box, holding items.
type CollectionObject struct {
	ObjectID            int    `gorm:"primaryKey;autoIncrement"`
	Name                string `gorm:"not null" validate:"required"`
	Barcode             *string
	CollectionID        *int
	Collection          *Collection `gorm:"foreignKey:CollectionID;references:ID"`
	ProjectID           *int
	Project             *Project   `gorm:"foreignKey:ProjectID;references:ID"`
	OriginalsRecDate    *time.Time `gorm:"type:date"`
	OriginalsReturnDate *time.Time `gorm:"type:date"`
	ContactID           *int
	Contact             *Contact `gorm:"foreignKey:ContactID;references:ID"`
	Notes               []Note   `gorm:"many2many:object_has_notes;joinForeignKey:object_id;joinReferences:note_id"`
	Items               []Item   `gorm:"foreignKey:ObjectID;references:ObjectID"`
}

func (CollectionObject) TableName() string { return "tyko_object" }

func (o *CollectionObject) BeforeSave(tx *gorm.DB) error {
	return validate.Struct(o)
}

// NoteType ids are fixed; see FixedNoteTypes.
type NoteType struct {
	ID   int    `gorm:"column:note_types_id;primaryKey;autoIncrement:false"`
	Name string `gorm:"not null;uniqueIndex"`
}

func (NoteType) TableName() string { return "note_types" }

type Note struct {
	NoteID     int                `gorm:"primaryKey;autoIncrement"`
	Text       string             `gorm:"not null" validate:"required"`
	NoteTypeID int                `gorm:"not null" validate:"required"`
	NoteType   *NoteType          `gorm:"foreignKey:NoteTypeID;references:ID"`
	Projects   []Project          `gorm:"many2many:project_has_notes;joinForeignKey:note_id;joinReferences:project_id"`
	Objects    []CollectionObject `gorm:"many2many:object_has_notes;joinForeignKey:note_id;joinReferences:object_id"`
	Items      []Item             `gorm:"many2many:item_has_notes;joinForeignKey:note_id;joinReferences:item_id"`
}

func (Note) TableName() string { return "notes" }

func (n *Note) BeforeSave(tx *gorm.DB) error {
	return validate.Struct(n)
}

type Treatment struct {
	TreatmentID int `gorm:"primaryKey;autoIncrement"`
	Type        *string
	Message     *string
	Date        *time.Time `gorm:"type:date"`
	ItemID      int        `gorm:"not null;index"`
}

func (Treatment) TableName() string { return "treatment" }

// SchemaVersion records the version of the schema the database was initialized with.
type SchemaVersion struct {
	ID        int    `gorm:"primaryKey;autoIncrement:false"`
	Version   string `gorm:"not null"`
	UpdatedAt time.Time
}

func (SchemaVersion) TableName() string { return "schema_version" }
