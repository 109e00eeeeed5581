package formats

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/uiuclibrary/tyko/internal/tykosrv/db/models"
	"github.com/uiuclibrary/tyko/internal/tykosrv/tykocommon"
)

var itemKeys = map[string]bool{
	"name":                      true,
	"medusa_uuid":               true,
	"obj_sequence":              true,
	"files":                     true,
	"barcode":                   true,
	"format_details":            true,
	"vendor_name":               true,
	"deliverable_received_date": true,
	"originals_received_date":   true,
	"inspection_date":           true,
	"transfer_date":             true,
}

// DetailKeys lists the format_details keys accepted for each item type.
var DetailKeys = map[string][]string{
	models.TypeVideoCassette: {"date_of_cassette", "duration", "label", "title_of_cassette", "generation_id", "cassette_type_id"},
	models.TypeOptical:       {"date_of_item", "title_of_item", "duration", "label", "type_id"},
	models.TypeOpenReel: {"date_of_reel", "title_of_reel", "base_id", "format_subtype_id", "generation_id", "reel_brand",
		"duration", "reel_diameter_id", "reel_speed_id", "reel_thickness_id", "reel_width_id", "track_configuration_id",
		"track_count", "wind_id", "reel_type", "reel_size"},
	models.TypeGroovedDisc: {"title_of_album", "title_of_disc", "disc_base_id", "disc_diameter_id", "playback_direction_id",
		"disc_material_id", "playback_speed_id", "side_a_label", "side_a_duration", "side_b_label", "side_b_duration",
		"date_of_disc"},
	models.TypeFilm: {"date_of_film", "ad_test_performed", "ad_test_date", "ad_test_level", "can_label", "duration",
		"film_title", "leader_label", "edge_code_date", "film_length", "film_shrinkage", "film_color_id", "film_base_id",
		"film_emulsion_id", "image_type_id", "film_speed_id", "film_gauge_id", "soundtrack_id", "wind_id"},
	models.TypeAudioCassette: {"date_of_cassette", "cassette_title", "cassette_type_id", "generation_id", "side_a_label",
		"side_a_duration", "side_b_label", "side_b_duration"},
}

// ItemChanges carries the parts of an item update that are not columns of the item.
type ItemChanges struct {
	Files    []string
	SetFiles bool
}

// UpdateItem applies the writable keys of data to item. Files are returned rather than
// applied, since they are rows of their own.
func UpdateItem(ctx context.Context, enums EnumChecker, item *models.Item, data map[string]any) (*ItemChanges, error) {
	var invalid []string
	for k := range data {
		if !itemKeys[k] {
			invalid = append(invalid, k)
		}
	}
	if len(invalid) > 0 {
		sort.Strings(invalid)
		return nil, ErrInvalidKeys.Msg("Invalid Key(s): " + strings.Join(invalid, ", "))
	}

	changes := &ItemChanges{}
	var err error
	for k, v := range data {
		switch k {
		case "name":
			var name *string
			if name, err = toString(v); err == nil {
				if name == nil {
					return nil, ErrInvalidValue.Msg("name cannot be empty")
				}
				item.Name = *name
			}
		case "medusa_uuid":
			item.MedusaUUID, err = toString(v)
		case "obj_sequence":
			item.ObjSequence, err = toInt(v)
		case "barcode":
			item.Barcode, err = toString(v)
		case "vendor_name":
			item.VendorName, err = toString(v)
		case "deliverable_received_date":
			item.DeliverableReceivedDate, err = toDate(v)
		case "originals_received_date":
			item.OriginalsReceivedDate, err = toDate(v)
		case "inspection_date":
			item.InspectionDate, err = toDate(v)
		case "transfer_date":
			item.TransferDate, err = toDate(v)
		case "files":
			changes.Files, err = toStrings(v)
			changes.SetFiles = true
		case "format_details":
			details, ok := v.(map[string]any)
			if !ok && v != nil {
				return nil, ErrInvalidValue.Msg("format_details must be an object")
			}
			err = UpdateDetails(ctx, enums, item, details)
		}
		if err != nil {
			return nil, err
		}
	}
	return changes, nil
}

func toStrings(v any) ([]string, error) {
	switch l := v.(type) {
	case nil:
		return nil, nil
	case string:
		if strings.TrimSpace(l) == "" {
			return nil, nil
		}
		return []string{l}, nil
	case []string:
		return l, nil
	case []any:
		out := make([]string, 0, len(l))
		for _, e := range l {
			s, err := toString(e)
			if err != nil {
				return nil, err
			}
			if s != nil {
				out = append(out, *s)
			}
		}
		return out, nil
	}
	return nil, ErrInvalidValue.Msg(fmt.Sprintf("expected a list of names, got %v", v))
}

// UpdateDetails applies format_details keys to the detail row of item. Null and blank
// values clear the attribute.
func UpdateDetails(ctx context.Context, enums EnumChecker, item *models.Item, details map[string]any) error {
	if len(details) == 0 {
		return nil
	}
	allowed := make(map[string]bool)
	for _, k := range DetailKeys[item.Type] {
		allowed[k] = true
	}
	var invalid []string
	for k := range details {
		if !allowed[k] {
			invalid = append(invalid, k)
		}
	}
	if len(invalid) > 0 {
		sort.Strings(invalid)
		return ErrInvalidKeys.Msg(fmt.Sprintf("Invalid Key(s) for %s: %s", item.Type, strings.Join(invalid, ", ")))
	}

	e := enumRef{enums: enums, ctx: ctx}
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		var err error
		v := details[k]
		switch item.Type {
		case models.TypeVideoCassette:
			if item.VideoCassette == nil {
				item.VideoCassette = &models.VideoCassette{ItemID: item.ItemID}
			}
			err = updateVideoCassette(e, item.VideoCassette, k, v)
		case models.TypeOptical:
			if item.Optical == nil {
				item.Optical = &models.Optical{ItemID: item.ItemID}
			}
			err = updateOptical(e, item.Optical, k, v)
		case models.TypeOpenReel:
			if item.OpenReel == nil {
				item.OpenReel = &models.OpenReel{ItemID: item.ItemID}
			}
			err = updateOpenReel(e, item.OpenReel, k, v)
		case models.TypeGroovedDisc:
			if item.GroovedDisc == nil {
				item.GroovedDisc = &models.GroovedDisc{ItemID: item.ItemID}
			}
			err = updateGroovedDisc(e, item.GroovedDisc, k, v)
		case models.TypeFilm:
			if item.Film == nil {
				item.Film = &models.Film{ItemID: item.ItemID, DateOfFilmPrecision: int(tykocommon.PrecisionDay)}
			}
			err = updateFilm(e, item.Film, k, v)
		case models.TypeAudioCassette:
			if item.AudioCassette == nil {
				item.AudioCassette = &models.AudioCassette{ItemID: item.ItemID, RecordingDatePrecision: int(tykocommon.PrecisionDay)}
			}
			err = updateAudioCassette(e, item.AudioCassette, k, v)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func updateVideoCassette(e enumRef, d *models.VideoCassette, key string, v any) (err error) {
	switch key {
	case "date_of_cassette":
		d.DateOfCassette, err = toDate(v)
	case "duration":
		d.Duration, err = toString(v)
	case "label":
		d.Label, err = toString(v)
	case "title_of_cassette":
		d.TitleOfCassette, err = toString(v)
	case "generation_id":
		d.GenerationID, err = e.id("video_cassette_generations", v)
		d.Generation = nil
	case "cassette_type_id":
		d.CassetteTypeID, err = e.id("video_cassette_cassette_types", v)
		d.CassetteType = nil
	}
	return err
}

func updateOptical(e enumRef, d *models.Optical, key string, v any) (err error) {
	switch key {
	case "date_of_item":
		d.DateOfItem, err = toDate(v)
	case "title_of_item":
		d.TitleOfItem, err = toString(v)
	case "duration":
		d.Duration, err = toString(v)
	case "label":
		d.Label, err = toString(v)
	case "type_id":
		d.OpticalTypeID, err = e.id("optical_optical_types", v)
		d.OpticalType = nil
	}
	return err
}

func updateOpenReel(e enumRef, d *models.OpenReel, key string, v any) (err error) {
	switch key {
	case "date_of_reel":
		d.DateOfReel, err = toDate(v)
	case "title_of_reel":
		d.TitleOfReel, err = toString(v)
	case "base_id":
		d.BaseID, err = e.id("open_reel_base", v)
		d.Base = nil
	case "format_subtype_id":
		d.SubtypeID, err = e.id("open_reel_sub_type", v)
		d.Subtype = nil
	case "generation_id":
		d.GenerationID, err = e.id("open_reel_generation", v)
		d.Generation = nil
	case "reel_brand":
		d.ReelBrand, err = toString(v)
	case "duration":
		d.Duration, err = toString(v)
	case "reel_diameter_id":
		d.ReelDiameterID, err = e.id("open_reel_reel_diameter", v)
		d.ReelDiameter = nil
	case "reel_speed_id":
		d.ReelSpeedID, err = e.id("open_reel_reel_speed", v)
		d.ReelSpeed = nil
	case "reel_thickness_id":
		d.ReelThicknessID, err = e.id("open_reel_reel_thickness", v)
		d.ReelThickness = nil
	case "reel_width_id":
		d.ReelWidthID, err = e.id("open_reel_reel_width", v)
		d.ReelWidth = nil
	case "track_configuration_id":
		d.TrackConfigurationID, err = e.id("open_reel_track_configuration", v)
		d.TrackConfiguration = nil
	case "track_count":
		d.TrackCount, err = toString(v)
	case "wind_id":
		d.WindID, err = e.id("open_reel_wind", v)
		d.Wind = nil
	case "reel_type":
		d.ReelType, err = toString(v)
	case "reel_size":
		d.ReelSize, err = toInt(v)
	}
	return err
}

func updateGroovedDisc(e enumRef, d *models.GroovedDisc, key string, v any) (err error) {
	switch key {
	case "title_of_album":
		d.TitleOfAlbum, err = toString(v)
	case "title_of_disc":
		d.TitleOfDisc, err = toString(v)
	case "disc_base_id":
		d.DiscBaseID, err = e.id("grooved_disc_disc_base", v)
		d.DiscBase = nil
	case "disc_diameter_id":
		d.DiscDiameterID, err = e.id("grooved_disc_disc_diameter", v)
		d.DiscDiameter = nil
	case "playback_direction_id":
		d.PlaybackDirectionID, err = e.id("grooved_disc_playback_direction", v)
		d.PlaybackDirection = nil
	case "disc_material_id":
		d.DiscMaterialID, err = e.id("grooved_disc_disc_material", v)
		d.DiscMaterial = nil
	case "playback_speed_id":
		d.PlaybackSpeedID, err = e.id("grooved_disc_playback_speed", v)
		d.PlaybackSpeed = nil
	case "side_a_label":
		d.SideALabel, err = toString(v)
	case "side_a_duration":
		d.SideADuration, err = toString(v)
	case "side_b_label":
		d.SideBLabel, err = toString(v)
	case "side_b_duration":
		d.SideBDuration, err = toString(v)
	case "date_of_disc":
		d.DateOfDisc, err = toDate(v)
	}
	return err
}

func updateFilm(e enumRef, d *models.Film, key string, v any) (err error) {
	switch key {
	case "date_of_film":
		var p tykocommon.Precision
		d.DateOfFilm, p, err = toPrecisionDate(v)
		d.DateOfFilmPrecision = int(p)
	case "ad_test_performed":
		var b bool
		b, err = parseFlag(v)
		d.ADTest = &b
	case "ad_test_date":
		d.ADTestDate, err = toDate(v)
	case "ad_test_level":
		d.ADTestLevel, err = toString(v)
	case "can_label":
		d.CanLabel, err = toString(v)
	case "duration":
		d.Duration, err = toString(v)
	case "film_title":
		d.FilmTitle, err = toString(v)
	case "leader_label":
		d.LeaderLabel, err = toString(v)
	case "edge_code_date":
		d.EdgeCodeDate, err = toInt(v)
	case "film_length":
		d.Length, err = toInt(v)
	case "film_shrinkage":
		d.FilmShrinkage, err = toInt(v)
	case "film_color_id":
		d.ColorID, err = e.id("film_color", v)
		d.Color = nil
	case "film_base_id":
		d.FilmBaseID, err = e.id("film_film_base", v)
		d.FilmBase = nil
	case "film_emulsion_id":
		d.EmulsionID, err = e.id("film_emulsion", v)
		d.Emulsion = nil
	case "image_type_id":
		d.ImageTypeID, err = e.id("film_image_type", v)
		d.ImageType = nil
	case "film_speed_id":
		d.FilmSpeedID, err = e.id("film_film_speed", v)
		d.FilmSpeed = nil
	case "film_gauge_id":
		d.FilmGaugeID, err = e.id("film_film_gauge", v)
		d.FilmGauge = nil
	case "soundtrack_id":
		d.SoundtrackID, err = e.id("film_soundtrack", v)
		d.Soundtrack = nil
	case "wind_id":
		d.WindID, err = e.id("film_wind", v)
		d.Wind = nil
	}
	return err
}

func updateAudioCassette(e enumRef, d *models.AudioCassette, key string, v any) (err error) {
	switch key {
	case "date_of_cassette":
		var p tykocommon.Precision
		d.RecordingDate, p, err = toPrecisionDate(v)
		d.RecordingDatePrecision = int(p)
	case "cassette_title":
		d.TitleOfCassette, err = toString(v)
	case "cassette_type_id":
		d.TapeSubtypeID, err = e.id("audio_cassette_subtype", v)
		d.TapeSubtype = nil
	case "generation_id":
		d.GenerationID, err = e.id("audio_cassette_generation", v)
		d.Generation = nil
	case "side_a_label":
		d.SideALabel, err = toString(v)
	case "side_a_duration":
		d.SideADuration, err = toString(v)
	case "side_b_label":
		d.SideBLabel, err = toString(v)
	case "side_b_duration":
		d.SideBDuration, err = toString(v)
	}
	return err
}
