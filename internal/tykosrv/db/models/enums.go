package models

// Enum is the shape of every enumeration table: an id and a unique name.
type Enum struct {
	ID   int    `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"not null;uniqueIndex"`
}

type OpenReelSubType struct{ Enum }

func (OpenReelSubType) TableName() string { return "open_reel_sub_type" }

type OpenReelReelWidth struct{ Enum }

func (OpenReelReelWidth) TableName() string { return "open_reel_reel_width" }

type OpenReelReelDiameter struct{ Enum }

func (OpenReelReelDiameter) TableName() string { return "open_reel_reel_diameter" }

type OpenReelReelThickness struct{ Enum }

func (OpenReelReelThickness) TableName() string { return "open_reel_reel_thickness" }

type OpenReelBase struct{ Enum }

func (OpenReelBase) TableName() string { return "open_reel_base" }

type OpenReelReelSpeed struct{ Enum }

func (OpenReelReelSpeed) TableName() string { return "open_reel_reel_speed" }

type OpenReelTrackConfiguration struct{ Enum }

func (OpenReelTrackConfiguration) TableName() string { return "open_reel_track_configuration" }

type OpenReelGeneration struct{ Enum }

func (OpenReelGeneration) TableName() string { return "open_reel_generation" }

type OpenReelWind struct{ Enum }

func (OpenReelWind) TableName() string { return "open_reel_wind" }

type OpticalType struct{ Enum }

func (OpticalType) TableName() string { return "optical_optical_types" }

type VideoCassetteGeneration struct{ Enum }

func (VideoCassetteGeneration) TableName() string { return "video_cassette_generations" }

type VideoCassetteType struct{ Enum }

func (VideoCassetteType) TableName() string { return "video_cassette_cassette_types" }

type GroovedDiscDiameter struct{ Enum }

func (GroovedDiscDiameter) TableName() string { return "grooved_disc_disc_diameter" }

type GroovedDiscMaterial struct{ Enum }

func (GroovedDiscMaterial) TableName() string { return "grooved_disc_disc_material" }

type GroovedDiscPlaybackDirection struct{ Enum }

func (GroovedDiscPlaybackDirection) TableName() string { return "grooved_disc_playback_direction" }

type GroovedDiscPlaybackSpeed struct{ Enum }

func (GroovedDiscPlaybackSpeed) TableName() string { return "grooved_disc_playback_speed" }

type GroovedDiscBase struct{ Enum }

func (GroovedDiscBase) TableName() string { return "grooved_disc_disc_base" }

type FilmSpeed struct{ Enum }

func (FilmSpeed) TableName() string { return "film_film_speed" }

type FilmGauge struct{ Enum }

func (FilmGauge) TableName() string { return "film_film_gauge" }

type FilmBase struct{ Enum }

func (FilmBase) TableName() string { return "film_film_base" }

type FilmEmulsion struct{ Enum }

func (FilmEmulsion) TableName() string { return "film_emulsion" }

type FilmSoundtrack struct{ Enum }

func (FilmSoundtrack) TableName() string { return "film_soundtrack" }

type FilmColor struct{ Enum }

func (FilmColor) TableName() string { return "film_color" }

type FilmImageType struct{ Enum }

func (FilmImageType) TableName() string { return "film_image_type" }

type FilmWind struct{ Enum }

func (FilmWind) TableName() string { return "film_wind" }

type AudioCassetteSubtype struct{ Enum }

func (AudioCassetteSubtype) TableName() string { return "audio_cassette_subtype" }

type AudioCassetteGeneration struct{ Enum }

func (AudioCassetteGeneration) TableName() string { return "audio_cassette_generation" }

// EnumTable describes an enumeration table, the API route it is listed under and the
// values it is seeded with.
type EnumTable struct {
	Family string
	Route  string
	Table  string
	Model  any
	Values []string
}

// EnumTables lists every enumeration of item format attributes.
var EnumTables = []EnumTable{
	{Family: "open_reel", Route: "sub_types", Table: "open_reel_sub_type", Model: &OpenReelSubType{}, Values: []string{"Video", "Audio"}},
	{Family: "open_reel", Route: "reel_width", Table: "open_reel_reel_width", Model: &OpenReelReelWidth{}, Values: []string{"1/4", "1/2", "1", "2"}},
	{Family: "open_reel", Route: "reel_diameter", Table: "open_reel_reel_diameter", Model: &OpenReelReelDiameter{}, Values: []string{"5", "7", "10.5"}},
	{Family: "open_reel", Route: "reel_thickness", Table: "open_reel_reel_thickness", Model: &OpenReelReelThickness{}, Values: []string{"0.5", "1.0", "1.5"}},
	{Family: "open_reel", Route: "base", Table: "open_reel_base", Model: &OpenReelBase{}, Values: []string{"Acetate", "Polyester"}},
	{Family: "open_reel", Route: "reel_speed", Table: "open_reel_reel_speed", Model: &OpenReelReelSpeed{}, Values: []string{"1 7/8", "3 3/4", "7 1/2", "15"}},
	{Family: "open_reel", Route: "track_configuration", Table: "open_reel_track_configuration", Model: &OpenReelTrackConfiguration{}, Values: []string{"full track", "1/4 track mono", "1/4 stereo", "1/2 track mono", "1/2 track stereo"}},
	{Family: "open_reel", Route: "generation", Table: "open_reel_generation", Model: &OpenReelGeneration{}, Values: []string{"source (original)", "dub", "master", "commercial", "other"}},
	{Family: "open_reel", Route: "wind", Table: "open_reel_wind", Model: &OpenReelWind{}, Values: []string{"Heads out", "Tails out"}},
	{Family: "optical", Route: "optical_types", Table: "optical_optical_types", Model: &OpticalType{}, Values: []string{"DVD", "CD"}},
	{Family: "video_cassette", Route: "generations", Table: "video_cassette_generations", Model: &VideoCassetteGeneration{}, Values: []string{"source (original)", "dub", "master", "commercial", "other"}},
	{Family: "video_cassette", Route: "cassette_type", Table: "video_cassette_cassette_types", Model: &VideoCassetteType{}, Values: []string{"VHS", "3/4″ U-matic", "1″ Type C", "Betamax", "Betacam", "Betacam SP", "Digital Betacam", "Mini DV", "Dvcam", "DVCPro", "HDV", "Hi-8", "other"}},
	{Family: "grooved_disc", Route: "disc_diameter", Table: "grooved_disc_disc_diameter", Model: &GroovedDiscDiameter{}, Values: []string{"7", "8", "10", "12", "16"}},
	{Family: "grooved_disc", Route: "disc_material", Table: "grooved_disc_disc_material", Model: &GroovedDiscMaterial{}, Values: []string{"Shellac/78", "Lacquer", "Vinyl", "Edison Diamond"}},
	{Family: "grooved_disc", Route: "playback_direction", Table: "grooved_disc_playback_direction", Model: &GroovedDiscPlaybackDirection{}, Values: []string{"In to Out", "Out to In"}},
	{Family: "grooved_disc", Route: "playback_speed", Table: "grooved_disc_playback_speed", Model: &GroovedDiscPlaybackSpeed{}, Values: []string{"33 1/3", "45", "78"}},
	{Family: "grooved_disc", Route: "disc_base", Table: "grooved_disc_disc_base", Model: &GroovedDiscBase{}, Values: []string{"Glass", "Cardboard", "Aluminum", "Unknown"}},
	{Family: "film", Route: "film_speed", Table: "film_film_speed", Model: &FilmSpeed{}, Values: []string{"16", "18", "24", "Unknown"}},
	{Family: "film", Route: "film_gauge", Table: "film_film_gauge", Model: &FilmGauge{}, Values: []string{"8", "Super8", "16", "35"}},
	{Family: "film", Route: "film_base", Table: "film_film_base", Model: &FilmBase{}, Values: []string{"Acetate", "Nitrate", "Polyester"}},
	{Family: "film", Route: "film_emulsion", Table: "film_emulsion", Model: &FilmEmulsion{}, Values: []string{"In", "Out"}},
	{Family: "film", Route: "soundtrack", Table: "film_soundtrack", Model: &FilmSoundtrack{}, Values: []string{"Optical", "Magnetic", "Silent"}},
	{Family: "film", Route: "color", Table: "film_color", Model: &FilmColor{}, Values: []string{"Color", "Black & White", "Color/Black & White"}},
	{Family: "film", Route: "image_type", Table: "film_image_type", Model: &FilmImageType{}, Values: []string{"Positive", "Negative", "Reversal"}},
	{Family: "film", Route: "wind", Table: "film_wind", Model: &FilmWind{}, Values: []string{"A", "B"}},
	{Family: "audio_cassette", Route: "subtype", Table: "audio_cassette_subtype", Model: &AudioCassetteSubtype{}, Values: []string{"Compact cassette I", "Compact cassette type II", "Compact cassette type III", "Compact cassette IV", "DAT", "ADAT", "Microcassette", "Continuous loop cartridge", "Other"}},
	{Family: "audio_cassette", Route: "generation", Table: "audio_cassette_generation", Model: &AudioCassetteGeneration{}, Values: []string{"Source (original)", "Dub", "Master", "Commercial", "Other"}},
}

// LookupEnumTable returns the enumeration listed under family/route.
func LookupEnumTable(family, route string) (EnumTable, bool) {
	for _, e := range EnumTables {
		if e.Family == family && e.Route == route {
			return e, true
		}
	}
	return EnumTable{}, false
}

// EnumTableByName returns the enumeration stored in the given table.
func EnumTableByName(table string) (EnumTable, bool) {
	for _, e := range EnumTables {
		if e.Table == table {
			return e, true
		}
	}
	return EnumTable{}, false
}

// CassetteType and CassetteTapeType are editable lists with no seeded values.
type CassetteType struct {
	ID   int    `gorm:"column:table_id;primaryKey;autoIncrement"`
	Name string `gorm:"not null;uniqueIndex"`
}

func (CassetteType) TableName() string { return "cassette_types" }

type CassetteTapeType struct {
	ID   int    `gorm:"column:table_id;primaryKey;autoIncrement"`
	Name string `gorm:"not null;uniqueIndex"`
}

func (CassetteTapeType) TableName() string { return "cassette_tape_types" }

type CassetteTapeThickness struct {
	ID    int    `gorm:"column:table_id;primaryKey;autoIncrement"`
	Value string `gorm:"not null"`
	Unit  *string
}

func (CassetteTapeThickness) TableName() string { return "cassette_tape_thickness" }

// Fixed format type ids. Clients refer to formats by these ids.
const (
	FormatOpenReel      = 4
	FormatGroovedDisc   = 5
	FormatFilm          = 6
	FormatAudioCassette = 7
	FormatOptical       = 8
	FormatVideoCassette = 9
)

var FixedFormatTypes = []FormatType{
	{ID: FormatOpenReel, Name: "open reel"},
	{ID: FormatGroovedDisc, Name: "grooved disc"},
	{ID: FormatFilm, Name: "film"},
	{ID: FormatAudioCassette, Name: "audio cassette"},
	{ID: FormatOptical, Name: "optical"},
	{ID: FormatVideoCassette, Name: "video cassette"},
}

// Fixed note type ids.
const (
	NoteTypeInspection = 1
	NoteTypePlayback   = 2
	NoteTypeProject    = 3
	NoteTypeOther      = 4
)

var FixedNoteTypes = []NoteType{
	{ID: NoteTypeInspection, Name: "Inspection"},
	{ID: NoteTypePlayback, Name: "Playback"},
	{ID: NoteTypeProject, Name: "Project"},
	{ID: NoteTypeOther, Name: "Other"},
}

var ProjectStatusValues = []string{"In progress", "Complete", "No work done"}

// AllModels returns every model, in an order that satisfies foreign keys when the
// tables are created one by one.
func AllModels() []any {
	m := []any{
		&SchemaVersion{},
		&ProjectStatus{},
		&FormatType{},
		&NoteType{},
		&Contact{},
		&CassetteType{},
		&CassetteTapeType{},
		&CassetteTapeThickness{},
		&FileAnnotationType{},
	}
	for _, e := range EnumTables {
		m = append(m, e.Model)
	}
	return append(m,
		&Collection{},
		&Project{},
		&CollectionObject{},
		&Note{},
		&Item{},
		&Treatment{},
		&InstantiationFile{},
		&FileNote{},
		&FileAnnotation{},
		&OpenReel{},
		&GroovedDisc{},
		&Film{},
		&AudioCassette{},
		&Optical{},
		&VideoCassette{},
	)
}

// CassetteTable names one of the editable cassette tape lists by its API route.
type CassetteTable string

const (
	CassetteFormatTypes        CassetteTable = "cassette_tape_format_types"
	CassetteTapeTypes          CassetteTable = "cassette_tape_tape_types"
	CassetteTapeThicknessTable CassetteTable = "cassette_tape_tape_thickness"
)

// CassetteTables lists the editable cassette tape lists.
var CassetteTables = []CassetteTable{CassetteFormatTypes, CassetteTapeTypes, CassetteTapeThicknessTable}

// HasValue reports whether rows of the list carry a value and unit instead of a name.
func (t CassetteTable) HasValue() bool {
	return t == CassetteTapeThicknessTable
}

// CassetteRow is a row of any cassette tape list. Name is used by the type lists,
// Value and Unit by the thickness list.
type CassetteRow struct {
	ID    int
	Name  string
	Value string
	Unit  *string
}
