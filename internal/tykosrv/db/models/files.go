package models

import "gorm.io/gorm"

// InstantiationFile is a digital file produced from an item.
type InstantiationFile struct {
	FileID      int    `gorm:"primaryKey;autoIncrement"`
	FileName    string `gorm:"not null" validate:"required"`
	Generation  *string
	ItemID      int              `gorm:"not null;index"`
	Notes       []FileNote       `gorm:"foreignKey:FileID;references:FileID"`
	Annotations []FileAnnotation `gorm:"foreignKey:FileID;references:FileID"`
}

func (InstantiationFile) TableName() string { return "instantiation_files" }

func (f *InstantiationFile) BeforeSave(tx *gorm.DB) error {
	return validate.Struct(f)
}

type FileNote struct {
	ID      int    `gorm:"column:note_id;primaryKey;autoIncrement"`
	FileID  int    `gorm:"not null;index"`
	Message string `gorm:"not null"`
}

func (FileNote) TableName() string { return "file_notes" }

// FileAnnotationType is never removed, only deactivated.
type FileAnnotationType struct {
	ID     int    `gorm:"column:type_id;primaryKey;autoIncrement"`
	Name   string `gorm:"not null" validate:"required"`
	Active bool   `gorm:"not null;default:true"`
}

func (FileAnnotationType) TableName() string { return "file_annotation_types" }

func (a *FileAnnotationType) BeforeSave(tx *gorm.DB) error {
	return validate.Struct(a)
}

type FileAnnotation struct {
	ID                int                 `gorm:"column:annotation_id;primaryKey;autoIncrement"`
	FileID            int                 `gorm:"not null;index"`
	AnnotationContent string              `gorm:"not null"`
	TypeID            int                 `gorm:"not null"`
	Type              *FileAnnotationType `gorm:"foreignKey:TypeID;references:ID"`
}

func (FileAnnotation) TableName() string { return "file_annotations" }
