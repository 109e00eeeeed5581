package models

import (
	"time"

	"gorm.io/gorm"
)

// Item discriminators. The value names the detail table of the format, except for
// video cassettes, and is what the API reports as the item type.
const (
	TypeItem          = "items"
	TypeOpenReel      = "open_reels"
	TypeGroovedDisc   = "grooved_discs"
	TypeFilm          = "films"
	TypeAudioCassette = "audio_cassettes"
	TypeOptical       = "optical"
	TypeVideoCassette = "video_cassette"
)

// FormatType ids are fixed; see FixedFormatTypes.
type FormatType struct {
	ID   int    `gorm:"column:format_id;primaryKey;autoIncrement:false"`
	Name string `gorm:"not null;uniqueIndex"`
}

func (FormatType) TableName() string { return "format_types" }

// Item is a single physical AV carrier. Exactly one of the detail fields is set,
// matching Type, unless Type is TypeItem.
type Item struct {
	ItemID                  int    `gorm:"primaryKey;autoIncrement"`
	Name                    string `gorm:"not null" validate:"required"`
	Type                    string `gorm:"not null;default:items;index"`
	ObjSequence             *int
	ObjectID                *int `gorm:"index"`
	FormatTypeID            *int
	FormatType              *FormatType `gorm:"foreignKey:FormatTypeID;references:ID"`
	TransferDate            *time.Time  `gorm:"type:date"`
	InspectionDate          *time.Time  `gorm:"type:date"`
	Barcode                 *string
	MedusaUUID              *string `gorm:"column:medusa_uuid"`
	VendorName              *string
	DeliverableReceivedDate *time.Time          `gorm:"type:date"`
	OriginalsReceivedDate   *time.Time          `gorm:"type:date"`
	Notes                   []Note              `gorm:"many2many:item_has_notes;joinForeignKey:item_id;joinReferences:note_id"`
	Files                   []InstantiationFile `gorm:"foreignKey:ItemID;references:ItemID"`
	Treatments              []Treatment         `gorm:"foreignKey:ItemID;references:ItemID"`

	OpenReel      *OpenReel      `gorm:"foreignKey:ItemID;references:ItemID"`
	GroovedDisc   *GroovedDisc   `gorm:"foreignKey:ItemID;references:ItemID"`
	Film          *Film          `gorm:"foreignKey:ItemID;references:ItemID"`
	AudioCassette *AudioCassette `gorm:"foreignKey:ItemID;references:ItemID"`
	Optical       *Optical       `gorm:"foreignKey:ItemID;references:ItemID"`
	VideoCassette *VideoCassette `gorm:"foreignKey:ItemID;references:ItemID"`
}

func (Item) TableName() string { return "formats" }

func (i *Item) BeforeSave(tx *gorm.DB) error {
	return validate.Struct(i)
}

// DetailAssociations lists the association names of the format detail rows.
var DetailAssociations = []string{"OpenReel", "GroovedDisc", "Film", "AudioCassette", "Optical", "VideoCassette"}

type OpenReel struct {
	ItemID               int `gorm:"primaryKey;autoIncrement:false"`
	TitleOfReel          *string
	DateOfReel           *time.Time `gorm:"column:date_recorded;type:date"`
	SubtypeID            *int
	Subtype              *OpenReelSubType `gorm:"foreignKey:SubtypeID;references:ID"`
	ReelWidthID          *int
	ReelWidth            *OpenReelReelWidth `gorm:"foreignKey:ReelWidthID;references:ID"`
	ReelSize             *int
	TrackCount           *string
	ReelDiameterID       *int
	ReelDiameter         *OpenReelReelDiameter `gorm:"foreignKey:ReelDiameterID;references:ID"`
	ReelType             *string
	ReelThicknessID      *int
	ReelThickness        *OpenReelReelThickness `gorm:"foreignKey:ReelThicknessID;references:ID"`
	ReelBrand            *string                `gorm:"column:tape_brand"`
	BaseID               *int
	Base                 *OpenReelBase `gorm:"foreignKey:BaseID;references:ID"`
	WindID               *int
	Wind                 *OpenReelWind `gorm:"foreignKey:WindID;references:ID"`
	ReelSpeedID          *int
	ReelSpeed            *OpenReelReelSpeed `gorm:"foreignKey:ReelSpeedID;references:ID"`
	TrackConfigurationID *int
	TrackConfiguration   *OpenReelTrackConfiguration `gorm:"foreignKey:TrackConfigurationID;references:ID"`
	Duration             *string                     `gorm:"column:track_duration"`
	GenerationID         *int
	Generation           *OpenReelGeneration `gorm:"foreignKey:GenerationID;references:ID"`
}

func (OpenReel) TableName() string { return "open_reels" }

type Film struct {
	ItemID              int `gorm:"primaryKey;autoIncrement:false"`
	FilmTitle           *string
	FilmShrinkage       *int
	DateOfFilm          *time.Time `gorm:"type:date"`
	DateOfFilmPrecision int        `gorm:"not null;default:3"`
	CanLabel            *string
	LeaderLabel         *string
	Length              *int
	Duration            *string
	FilmBaseID          *int
	FilmBase            *FilmBase `gorm:"foreignKey:FilmBaseID;references:ID"`
	SoundtrackID        *int
	Soundtrack          *FilmSoundtrack `gorm:"foreignKey:SoundtrackID;references:ID"`
	EdgeCodeDate        *int
	ColorID             *int
	Color               *FilmColor `gorm:"foreignKey:ColorID;references:ID"`
	ImageTypeID         *int
	ImageType           *FilmImageType `gorm:"foreignKey:ImageTypeID;references:ID"`
	WindID              *int
	Wind                *FilmWind `gorm:"foreignKey:WindID;references:ID"`
	EmulsionID          *int
	Emulsion            *FilmEmulsion `gorm:"foreignKey:EmulsionID;references:ID"`
	FilmSpeedID         *int
	FilmSpeed           *FilmSpeed `gorm:"foreignKey:FilmSpeedID;references:ID"`
	FilmGaugeID         *int
	FilmGauge           *FilmGauge `gorm:"foreignKey:FilmGaugeID;references:ID"`
	ADTest              *bool      `gorm:"column:ad_test"`
	ADTestDate          *time.Time `gorm:"column:ad_test_date;type:date"`
	ADTestLevel         *string    `gorm:"column:ad_test_level"`
}

func (Film) TableName() string { return "films" }

type GroovedDisc struct {
	ItemID              int `gorm:"primaryKey;autoIncrement:false"`
	TitleOfAlbum        *string
	TitleOfDisc         *string
	SideALabel          *string    `gorm:"column:side_a_label"`
	SideBLabel          *string    `gorm:"column:side_b_label"`
	DateOfDisc          *time.Time `gorm:"type:date"`
	SideADuration       *string    `gorm:"column:side_a_duration"`
	SideBDuration       *string    `gorm:"column:side_b_duration"`
	DiscDiameterID      *int
	DiscDiameter        *GroovedDiscDiameter `gorm:"foreignKey:DiscDiameterID;references:ID"`
	DiscMaterialID      *int
	DiscMaterial        *GroovedDiscMaterial `gorm:"foreignKey:DiscMaterialID;references:ID"`
	DiscBaseID          *int
	DiscBase            *GroovedDiscBase `gorm:"foreignKey:DiscBaseID;references:ID"`
	PlaybackDirectionID *int
	PlaybackDirection   *GroovedDiscPlaybackDirection `gorm:"foreignKey:PlaybackDirectionID;references:ID"`
	PlaybackSpeedID     *int
	PlaybackSpeed       *GroovedDiscPlaybackSpeed `gorm:"foreignKey:PlaybackSpeedID;references:ID"`
}

func (GroovedDisc) TableName() string { return "grooved_discs" }

type Optical struct {
	ItemID        int     `gorm:"primaryKey;autoIncrement:false"`
	TitleOfItem   *string `gorm:"column:title_of_item"`
	Label         *string
	DateOfItem    *time.Time `gorm:"type:date"`
	OpticalTypeID *int
	OpticalType   *OpticalType `gorm:"foreignKey:OpticalTypeID;references:ID"`
	Duration      *string
}

func (Optical) TableName() string { return "optical" }

type VideoCassette struct {
	ItemID          int `gorm:"primaryKey;autoIncrement:false"`
	TitleOfCassette *string
	Label           *string
	DateOfCassette  *time.Time `gorm:"type:date"`
	CassetteTypeID  *int
	CassetteType    *VideoCassetteType `gorm:"foreignKey:CassetteTypeID;references:ID"`
	Duration        *string
	GenerationID    *int
	Generation      *VideoCassetteGeneration `gorm:"foreignKey:GenerationID;references:ID"`
}

func (VideoCassette) TableName() string { return "video_cassettes" }

type AudioCassette struct {
	ItemID                 int `gorm:"primaryKey;autoIncrement:false"`
	TitleOfCassette        *string
	SideALabel             *string `gorm:"column:side_a_label"`
	SideADuration          *string `gorm:"column:side_a_duration"`
	SideBLabel             *string `gorm:"column:side_b_label"`
	SideBDuration          *string `gorm:"column:side_b_duration"`
	GenerationID           *int
	Generation             *AudioCassetteGeneration `gorm:"foreignKey:GenerationID;references:ID"`
	TapeSubtypeID          *int
	TapeSubtype            *AudioCassetteSubtype `gorm:"foreignKey:TapeSubtypeID;references:ID"`
	RecordingDate          *time.Time            `gorm:"type:date"`
	RecordingDatePrecision int                   `gorm:"not null;default:3"`
}

func (AudioCassette) TableName() string { return "audio_cassettes" }

// DetailEnumAssociations lists, per detail association of Item, the enumeration
// associations of that detail row.
var DetailEnumAssociations = map[string][]string{
	"OpenReel":      {"Subtype", "ReelWidth", "ReelDiameter", "ReelThickness", "Base", "Wind", "ReelSpeed", "TrackConfiguration", "Generation"},
	"GroovedDisc":   {"DiscDiameter", "DiscMaterial", "DiscBase", "PlaybackDirection", "PlaybackSpeed"},
	"Film":          {"FilmBase", "Soundtrack", "Color", "ImageType", "Wind", "Emulsion", "FilmSpeed", "FilmGauge"},
	"AudioCassette": {"Generation", "TapeSubtype"},
	"Optical":       {"OpticalType"},
	"VideoCassette": {"CassetteType", "Generation"},
}

// DetailTables maps each discriminator with a detail row to its table.
var DetailTables = map[string]string{
	TypeOpenReel:      "open_reels",
	TypeGroovedDisc:   "grooved_discs",
	TypeFilm:          "films",
	TypeAudioCassette: "audio_cassettes",
	TypeOptical:       "optical",
	TypeVideoCassette: "video_cassettes",
}

// Detail returns the detail row of the item, or nil for a generic item or when the
// detail was not loaded.
func (i *Item) Detail() any {
	switch {
	case i.OpenReel != nil:
		return i.OpenReel
	case i.GroovedDisc != nil:
		return i.GroovedDisc
	case i.Film != nil:
		return i.Film
	case i.AudioCassette != nil:
		return i.AudioCassette
	case i.Optical != nil:
		return i.Optical
	case i.VideoCassette != nil:
		return i.VideoCassette
	}
	return nil
}
