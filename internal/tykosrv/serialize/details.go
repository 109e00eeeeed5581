package serialize

import (
	"github.com/uiuclibrary/tyko/internal/tykosrv/db/models"
	"github.com/uiuclibrary/tyko/internal/tykosrv/tykocommon"
)

type OpenReelDetails struct {
	TitleOfReel        *string  `json:"title_of_reel"`
	FormatSubtype      *EnumRef `json:"format_subtype"`
	DateOfReel         *string  `json:"date_of_reel"`
	ReelWidth          *EnumRef `json:"reel_width"`
	TrackCount         *string  `json:"track_count"`
	ReelSize           *int     `json:"reel_size"`
	ReelDiameter       *EnumRef `json:"reel_diameter"`
	ReelType           *string  `json:"reel_type"`
	ReelThickness      *EnumRef `json:"reel_thickness"`
	ReelBrand          *string  `json:"reel_brand"`
	Base               *EnumRef `json:"base"`
	Wind               *EnumRef `json:"wind"`
	ReelSpeed          *EnumRef `json:"reel_speed"`
	TrackConfiguration *EnumRef `json:"track_configuration"`
	Duration           *string  `json:"duration"`
	Generation         *EnumRef `json:"generation"`
}

type FilmDetails struct {
	FilmTitle     *string  `json:"film_title"`
	DateOfFilm    *string  `json:"date_of_film"`
	CanLabel      *string  `json:"can_label"`
	LeaderLabel   *string  `json:"leader_label"`
	FilmLength    *int     `json:"film_length"`
	Duration      *string  `json:"duration"`
	FilmBase      *EnumRef `json:"film_base"`
	EdgeCodeDate  *int     `json:"edge_code_date"`
	Soundtrack    *EnumRef `json:"soundtrack"`
	Color         *EnumRef `json:"color"`
	FilmGauge     *EnumRef `json:"film_gauge"`
	FilmSpeed     *EnumRef `json:"film_speed"`
	FilmImageType *EnumRef `json:"film_image_type"`
	Wind          *EnumRef `json:"wind"`
	FilmEmulsion  *EnumRef `json:"film_emulsion"`
	FilmShrinkage *int     `json:"film_shrinkage"`
	ADStripTest   *bool    `json:"ad_strip_test"`
	ADTestDate    *string  `json:"ad_test_date"`
	ADTestLevel   *string  `json:"ad_test_level"`
}

type GroovedDiscDetails struct {
	TitleOfAlbum      *string  `json:"title_of_album"`
	TitleOfDisc       *string  `json:"title_of_disc"`
	SideALabel        *string  `json:"side_a_label"`
	SideBLabel        *string  `json:"side_b_label"`
	DateOfDisc        *string  `json:"date_of_disc"`
	SideADuration     *string  `json:"side_a_duration"`
	SideBDuration     *string  `json:"side_b_duration"`
	DiscDiameter      *EnumRef `json:"disc_diameter"`
	DiscMaterial      *EnumRef `json:"disc_material"`
	DiscBase          *EnumRef `json:"disc_base"`
	PlaybackDirection *EnumRef `json:"playback_direction"`
	PlaybackSpeed     *EnumRef `json:"playback_speed"`
}

type OpticalDetails struct {
	TitleOfItem *string  `json:"title_of_item"`
	Label       *string  `json:"label"`
	DateOfItem  *string  `json:"date_of_item"`
	Type        *EnumRef `json:"type"`
	Duration    *string  `json:"duration"`
}

type VideoCassetteDetails struct {
	TitleOfCassette *string  `json:"title_of_cassette"`
	Generation      *EnumRef `json:"generation"`
	CassetteType    *EnumRef `json:"cassette_type"`
	Duration        *string  `json:"duration"`
	Label           *string  `json:"label"`
	DateOfCassette  *string  `json:"date_of_cassette"`
}

type AudioCassetteDetails struct {
	CassetteTitle  *string  `json:"cassette_title"`
	SideALabel     *string  `json:"side_a_label"`
	SideADuration  *string  `json:"side_a_duration"`
	SideBLabel     *string  `json:"side_b_label"`
	SideBDuration  *string  `json:"side_b_duration"`
	Generation     *EnumRef `json:"generation"`
	CassetteType   *EnumRef `json:"cassette_type"`
	DateOfCassette *string  `json:"date_of_cassette"`
}

// NewFormatDetails renders the format specific attributes of an item. A generic
// item, or one whose detail row is missing, renders as an empty object.
func NewFormatDetails(it *models.Item) any {
	switch d := it.Detail().(type) {
	case *models.OpenReel:
		return &OpenReelDetails{
			TitleOfReel:        d.TitleOfReel,
			FormatSubtype:      enumRef(d.Subtype),
			DateOfReel:         tykocommon.FormatDate(d.DateOfReel),
			ReelWidth:          enumRef(d.ReelWidth),
			TrackCount:         d.TrackCount,
			ReelSize:           d.ReelSize,
			ReelDiameter:       enumRef(d.ReelDiameter),
			ReelType:           d.ReelType,
			ReelThickness:      enumRef(d.ReelThickness),
			ReelBrand:          d.ReelBrand,
			Base:               enumRef(d.Base),
			Wind:               enumRef(d.Wind),
			ReelSpeed:          enumRef(d.ReelSpeed),
			TrackConfiguration: enumRef(d.TrackConfiguration),
			Duration:           d.Duration,
			Generation:         enumRef(d.Generation),
		}
	case *models.Film:
		return &FilmDetails{
			FilmTitle:     d.FilmTitle,
			DateOfFilm:    tykocommon.FormatDateWithPrecision(d.DateOfFilm, tykocommon.Precision(d.DateOfFilmPrecision)),
			CanLabel:      d.CanLabel,
			LeaderLabel:   d.LeaderLabel,
			FilmLength:    d.Length,
			Duration:      d.Duration,
			FilmBase:      enumRef(d.FilmBase),
			EdgeCodeDate:  d.EdgeCodeDate,
			Soundtrack:    enumRef(d.Soundtrack),
			Color:         enumRef(d.Color),
			FilmGauge:     enumRef(d.FilmGauge),
			FilmSpeed:     enumRef(d.FilmSpeed),
			FilmImageType: enumRef(d.ImageType),
			Wind:          enumRef(d.Wind),
			FilmEmulsion:  enumRef(d.Emulsion),
			FilmShrinkage: d.FilmShrinkage,
			ADStripTest:   d.ADTest,
			ADTestDate:    tykocommon.FormatDate(d.ADTestDate),
			ADTestLevel:   d.ADTestLevel,
		}
	case *models.GroovedDisc:
		return &GroovedDiscDetails{
			TitleOfAlbum:      d.TitleOfAlbum,
			TitleOfDisc:       d.TitleOfDisc,
			SideALabel:        d.SideALabel,
			SideBLabel:        d.SideBLabel,
			DateOfDisc:        tykocommon.FormatDate(d.DateOfDisc),
			SideADuration:     d.SideADuration,
			SideBDuration:     d.SideBDuration,
			DiscDiameter:      enumRef(d.DiscDiameter),
			DiscMaterial:      enumRef(d.DiscMaterial),
			DiscBase:          enumRef(d.DiscBase),
			PlaybackDirection: enumRef(d.PlaybackDirection),
			PlaybackSpeed:     enumRef(d.PlaybackSpeed),
		}
	case *models.Optical:
		return &OpticalDetails{
			TitleOfItem: d.TitleOfItem,
			Label:       d.Label,
			DateOfItem:  tykocommon.FormatDate(d.DateOfItem),
			Type:        enumRef(d.OpticalType),
			Duration:    d.Duration,
		}
	case *models.VideoCassette:
		return &VideoCassetteDetails{
			TitleOfCassette: d.TitleOfCassette,
			Generation:      enumRef(d.Generation),
			CassetteType:    enumRef(d.CassetteType),
			Duration:        d.Duration,
			Label:           d.Label,
			DateOfCassette:  tykocommon.FormatDate(d.DateOfCassette),
		}
	case *models.AudioCassette:
		return &AudioCassetteDetails{
			CassetteTitle:  d.TitleOfCassette,
			SideALabel:     d.SideALabel,
			SideADuration:  d.SideADuration,
			SideBLabel:     d.SideBLabel,
			SideBDuration:  d.SideBDuration,
			Generation:     enumRef(d.Generation),
			CassetteType:   enumRef(d.TapeSubtype),
			DateOfCassette: tykocommon.FormatDateWithPrecision(d.RecordingDate, tykocommon.Precision(d.RecordingDatePrecision)),
		}
	}
	return struct{}{}
}
