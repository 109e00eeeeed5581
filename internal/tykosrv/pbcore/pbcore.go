// Package pbcore exports collection objects as PBCore description documents.
package pbcore

import (
	"bytes"
	"context"
	"encoding/xml"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/h2non/filetype"
	"github.com/rs/zerolog/log"
	"github.com/uiuclibrary/tyko/internal/common/apperrors"
	"github.com/uiuclibrary/tyko/internal/tykosrv/db/models"
	"github.com/uiuclibrary/tyko/internal/tykosrv/tykocommon"
)

const Namespace = "http://www.pbcore.org/PBCore/PBCoreNamespace.html"

// Media types written into instantiationMediaType.
const (
	MediaMovingImage = "Moving Image"
	MediaSound       = "Sound"
	MediaOther       = "Other"
)

// ObjectGetter loads an object with its project and items.
type ObjectGetter interface {
	GetObject(ctx context.Context, objectID int) (*models.CollectionObject, apperrors.Error)
}

// Sources are the identifier sources of the document.
type Sources struct {
	Identifier       string
	ObjectIdentifier string
}

type Identifier struct {
	Source string `xml:"source,attr"`
	Value  string `xml:",chardata"`
}

type Instantiation struct {
	Identifier  Identifier `xml:"instantiationIdentifier"`
	Location    string     `xml:"instantiationLocation"`
	MediaType   string     `xml:"instantiationMediaType"`
	Generations string     `xml:"instantiationGenerations,omitempty"`
}

// Document is a pbcoreDescriptionDocument.
type Document struct {
	XMLName        xml.Name        `xml:"pbcoreDescriptionDocument"`
	Xmlns          string          `xml:"xmlns,attr"`
	Identifier     Identifier      `xml:"pbcoreIdentifier"`
	Title          string          `xml:"pbcoreTitle"`
	Description    string          `xml:"pbcoreDescription"`
	Instantiations []Instantiation `xml:"pbcoreInstantiation"`
}

// MediaType classifies a file by its extension.
func MediaType(fileName string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fileName)), ".")
	if ext == "" {
		return MediaOther
	}
	t := filetype.GetType(ext)
	if t == filetype.Unknown {
		return MediaOther
	}
	switch t.MIME.Type {
	case "video":
		return MediaMovingImage
	case "audio":
		return MediaSound
	}
	return MediaOther
}

// NewDocument builds the document of an object loaded with its project, items and
// files.
func NewDocument(obj *models.CollectionObject, src Sources) *Document {
	doc := &Document{
		Xmlns:       Namespace,
		Identifier:  Identifier{Source: src.ObjectIdentifier, Value: strconv.Itoa(obj.ObjectID)},
		Title:       obj.Name,
		Description: "No description",
	}
	location := "unknown"
	if obj.Project != nil {
		doc.Description = obj.Project.Title
		if obj.Project.CurrentLocation != nil && *obj.Project.CurrentLocation != "" {
			location = *obj.Project.CurrentLocation
		}
	}
	for _, item := range obj.Items {
		if len(item.Files) == 0 {
			doc.Instantiations = append(doc.Instantiations, Instantiation{
				Identifier: Identifier{Source: src.Identifier, Value: item.Name},
				Location:   location,
				MediaType:  MediaOther,
			})
			continue
		}
		for _, f := range item.Files {
			inst := Instantiation{
				Identifier: Identifier{Source: src.Identifier, Value: f.FileName},
				Location:   location,
				MediaType:  MediaType(f.FileName),
			}
			if f.Generation != nil {
				inst.Generations = *f.Generation
			}
			doc.Instantiations = append(doc.Instantiations, inst)
		}
	}
	return doc
}

// CreateFromObject renders the PBCore document of an object.
func CreateFromObject(ctx context.Context, db ObjectGetter, objectID int, src Sources) ([]byte, apperrors.Error) {
	obj, err := db.GetObject(ctx, objectID)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(NewDocument(obj, src)); err != nil {
		log.Ctx(ctx).Error().Err(err).Int("object_id", objectID).Msg("unable to encode pbcore document")
		return nil, tykocommon.ErrPBCore.MsgErr("unable to render pbcore document", err)
	}
	buf.WriteString("\n")
	return buf.Bytes(), nil
}
