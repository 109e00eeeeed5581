// Package formats turns request data into items of each carrier format and applies
// updates to the format details of existing items.
package formats

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/uiuclibrary/tyko/internal/tykosrv/db/models"
	"github.com/uiuclibrary/tyko/internal/tykosrv/tykocommon"
)

// itemFields are the create keys shared by every format.
type itemFields struct {
	Name              string   `mapstructure:"name"`
	FormatID          *int     `mapstructure:"format_id"`
	ItemBarcode       *string  `mapstructure:"itemBarcode"`
	InspectionDate    *string  `mapstructure:"inspectionDate"`
	InspectionDateAlt *string  `mapstructure:"inspection_date"`
	TransferDate      *string  `mapstructure:"transferDate"`
	TransferDateAlt   *string  `mapstructure:"transfer_date"`
	Files             []string `mapstructure:"files"`
	MedusaUUID        *string  `mapstructure:"medusa_uuid"`
	ObjSequence       *int     `mapstructure:"obj_sequence"`
}

// detailFields decodes the keys of one format and fills in the item.
type detailFields interface {
	build(e enumRef, item *models.Item) error
}

type formatSpec struct {
	id     int
	typ    string
	fields func() detailFields
}

var formatSpecs = []formatSpec{
	{models.FormatOpenReel, models.TypeOpenReel, func() detailFields { return &openReelFields{} }},
	{models.FormatGroovedDisc, models.TypeGroovedDisc, func() detailFields { return &groovedDiscFields{} }},
	{models.FormatFilm, models.TypeFilm, func() detailFields { return &filmFields{} }},
	{models.FormatAudioCassette, models.TypeAudioCassette, func() detailFields { return &audioCassetteFields{} }},
	{models.FormatOptical, models.TypeOptical, func() detailFields { return &opticalFields{} }},
	{models.FormatVideoCassette, models.TypeVideoCassette, func() detailFields { return &videoCassetteFields{} }},
}

func specFor(formatID int) (formatSpec, bool) {
	for _, s := range formatSpecs {
		if s.id == formatID {
			return s, true
		}
	}
	return formatSpec{}, false
}

// TypeOf returns the item discriminator used for a format id.
func TypeOf(formatID int) (string, bool) {
	s, ok := specFor(formatID)
	return s.typ, ok
}

// NewItem builds an item, with its detail row and files, from create data. The data is
// dispatched on format_id. Keys that neither the common nor the format mapping use are
// rejected.
func NewItem(ctx context.Context, enums EnumChecker, data map[string]any) (*models.Item, error) {
	data = withoutBlanks(data)

	var common itemFields
	unusedCommon, err := decode(data, &common)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(common.Name) == "" {
		return nil, ErrMissingData.Msg("Missing required data: name")
	}
	if common.FormatID == nil {
		return nil, ErrMissingData.Msg("Missing required data: format_id")
	}
	spec, ok := specFor(*common.FormatID)
	if !ok {
		return nil, ErrUnknownFormat.Msg(fmt.Sprintf("Unknown format_id: %d", *common.FormatID))
	}

	fields := spec.fields()
	unusedDetail, err := decode(data, fields)
	if err != nil {
		return nil, err
	}
	if unused := intersect(unusedCommon, unusedDetail); len(unused) > 0 {
		return nil, ErrUnusedParams.Msg("Unused parameters: " + strings.Join(unused, ", "))
	}

	formatID := spec.id
	item := &models.Item{
		Name:         common.Name,
		Type:         spec.typ,
		FormatTypeID: &formatID,
		Barcode:      common.ItemBarcode,
		MedusaUUID:   common.MedusaUUID,
		ObjSequence:  common.ObjSequence,
	}
	if item.InspectionDate, err = firstDate(common.InspectionDate, common.InspectionDateAlt); err != nil {
		return nil, err
	}
	if item.TransferDate, err = firstDate(common.TransferDate, common.TransferDateAlt); err != nil {
		return nil, err
	}
	for _, f := range common.Files {
		if strings.TrimSpace(f) == "" {
			continue
		}
		item.Files = append(item.Files, models.InstantiationFile{FileName: f})
	}

	if err := fields.build(enumRef{enums: enums, ctx: ctx}, item); err != nil {
		return nil, err
	}
	return item, nil
}

func intersect(a, b []string) []string {
	inB := make(map[string]bool, len(b))
	for _, k := range b {
		inB[k] = true
	}
	var out []string
	for _, k := range a {
		if inB[k] {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

func firstDate(values ...*string) (*time.Time, error) {
	for _, v := range values {
		if v != nil {
			return tykocommon.ParseDate(*v)
		}
	}
	return nil, nil
}

func optionalDate(v *string) (*time.Time, error) {
	if v == nil {
		return nil, nil
	}
	return tykocommon.ParseDate(*v)
}

type audioCassetteFields struct {
	Title          *string `mapstructure:"cassetteTitle"`
	SideALabel     *string `mapstructure:"cassetteSideALabel"`
	SideBLabel     *string `mapstructure:"cassetteSideBLabel"`
	SideADuration  *string `mapstructure:"cassetteSideADuration"`
	SideBDuration  *string `mapstructure:"cassetteSideBDuration"`
	CassetteTypeID *int    `mapstructure:"cassetteTypeId"`
	GenerationID   *int    `mapstructure:"generationId"`
	DateOfCassette *string `mapstructure:"dateOfCassette"`
}

func (f *audioCassetteFields) build(e enumRef, item *models.Item) error {
	d := &models.AudioCassette{
		TitleOfCassette:        f.Title,
		SideALabel:             f.SideALabel,
		SideBLabel:             f.SideBLabel,
		SideADuration:          f.SideADuration,
		SideBDuration:          f.SideBDuration,
		TapeSubtypeID:          f.CassetteTypeID,
		GenerationID:           f.GenerationID,
		RecordingDatePrecision: int(tykocommon.PrecisionDay),
	}
	if err := e.check("audio_cassette_subtype", d.TapeSubtypeID); err != nil {
		return err
	}
	if err := e.check("audio_cassette_generation", d.GenerationID); err != nil {
		return err
	}
	if f.DateOfCassette != nil {
		t, p, err := tykocommon.ParseDetectedDate(*f.DateOfCassette)
		if err != nil {
			return err
		}
		d.RecordingDate = &t
		d.RecordingDatePrecision = int(p)
	}
	item.AudioCassette = d
	return nil
}

type opticalFields struct {
	TitleOfItem *string `mapstructure:"opticalTitleOfItem"`
	Label       *string `mapstructure:"opticalLabel"`
	DateOfItem  *string `mapstructure:"opticalDateOfItem"`
	Duration    *string `mapstructure:"opticalDuration"`
	TypeID      *int    `mapstructure:"opticalTypeId"`
}

func (f *opticalFields) build(e enumRef, item *models.Item) error {
	d := &models.Optical{
		TitleOfItem:   f.TitleOfItem,
		Label:         f.Label,
		Duration:      f.Duration,
		OpticalTypeID: f.TypeID,
	}
	if err := e.check("optical_optical_types", d.OpticalTypeID); err != nil {
		return err
	}
	var err error
	if d.DateOfItem, err = optionalDate(f.DateOfItem); err != nil {
		return err
	}
	item.Optical = d
	return nil
}

type filmFields struct {
	Title        *string `mapstructure:"filmTitle"`
	Shrinkage    *int    `mapstructure:"filmShrinkage"`
	CanLabel     *string `mapstructure:"filmCanLabel"`
	LeaderLabel  *string `mapstructure:"filmLeaderLabel"`
	Length       *int    `mapstructure:"filmLength"`
	Duration     *string `mapstructure:"filmDuration"`
	ADTestLevel  *string `mapstructure:"filmADStripTestLevel"`
	EdgeCodeDate *int    `mapstructure:"filmEdgeCodeDate"`
	ADTest       *Flag   `mapstructure:"filmADStripTest"`
	Date         *string `mapstructure:"filmDate"`
	ADTestDate   *string `mapstructure:"filmADStripTestDate"`
	BaseID       *int    `mapstructure:"filmBaseId"`
	SoundtrackID *int    `mapstructure:"filmSoundtrackId"`
	ColorID      *int    `mapstructure:"filmColorId"`
	ImageTypeID  *int    `mapstructure:"filmImageTypeId"`
	WindID       *int    `mapstructure:"filmWindId"`
	EmulsionID   *int    `mapstructure:"filmEmulsionId"`
	SpeedID      *int    `mapstructure:"filmSpeedId"`
	GaugeID      *int    `mapstructure:"filmGaugeId"`
}

func (f *filmFields) build(e enumRef, item *models.Item) error {
	d := &models.Film{
		FilmTitle:           f.Title,
		FilmShrinkage:       f.Shrinkage,
		CanLabel:            f.CanLabel,
		LeaderLabel:         f.LeaderLabel,
		Length:              f.Length,
		Duration:            f.Duration,
		ADTestLevel:         f.ADTestLevel,
		EdgeCodeDate:        f.EdgeCodeDate,
		FilmBaseID:          f.BaseID,
		SoundtrackID:        f.SoundtrackID,
		ColorID:             f.ColorID,
		ImageTypeID:         f.ImageTypeID,
		WindID:              f.WindID,
		EmulsionID:          f.EmulsionID,
		FilmSpeedID:         f.SpeedID,
		FilmGaugeID:         f.GaugeID,
		DateOfFilmPrecision: int(tykocommon.PrecisionDay),
	}
	if f.ADTest != nil {
		b := bool(*f.ADTest)
		d.ADTest = &b
	}
	checks := []struct {
		table string
		id    *int
	}{
		{"film_film_base", d.FilmBaseID},
		{"film_soundtrack", d.SoundtrackID},
		{"film_color", d.ColorID},
		{"film_image_type", d.ImageTypeID},
		{"film_wind", d.WindID},
		{"film_emulsion", d.EmulsionID},
		{"film_film_speed", d.FilmSpeedID},
		{"film_film_gauge", d.FilmGaugeID},
	}
	for _, c := range checks {
		if err := e.check(c.table, c.id); err != nil {
			return err
		}
	}
	if f.Date != nil {
		t, p, err := tykocommon.ParseDetectedDate(*f.Date)
		if err != nil {
			return err
		}
		d.DateOfFilm = &t
		d.DateOfFilmPrecision = int(p)
	}
	var err error
	if d.ADTestDate, err = optionalDate(f.ADTestDate); err != nil {
		return err
	}
	item.Film = d
	return nil
}

type groovedDiscFields struct {
	TitleOfAlbum    *string `mapstructure:"groovedDiscTitleOfAlbum"`
	TitleOfDisc     *string `mapstructure:"groovedDiscTitleOfDisc"`
	SideALabel      *string `mapstructure:"groovedDiscSideALabel"`
	SideBLabel      *string `mapstructure:"groovedDiscSideBLabel"`
	DateOfDisc      *string `mapstructure:"groovedDiscDateOfDisc"`
	SideADuration   *string `mapstructure:"groovedDiscSideADuration"`
	SideBDuration   *string `mapstructure:"groovedDiscSideBDuration"`
	DiameterID      *int    `mapstructure:"groovedDiscDiscDiameterId"`
	MaterialID      *int    `mapstructure:"groovedDiscDiscMaterialId"`
	BaseID          *int    `mapstructure:"groovedDiscDiscBaseId"`
	DirectionID     *int    `mapstructure:"groovedDiscDiscDirectionId"`
	PlaybackSpeedID *int    `mapstructure:"groovedDiscPlaybackSpeedId"`
}

func (f *groovedDiscFields) build(e enumRef, item *models.Item) error {
	d := &models.GroovedDisc{
		TitleOfAlbum:        f.TitleOfAlbum,
		TitleOfDisc:         f.TitleOfDisc,
		SideALabel:          f.SideALabel,
		SideBLabel:          f.SideBLabel,
		SideADuration:       f.SideADuration,
		SideBDuration:       f.SideBDuration,
		DiscDiameterID:      f.DiameterID,
		DiscMaterialID:      f.MaterialID,
		DiscBaseID:          f.BaseID,
		PlaybackDirectionID: f.DirectionID,
		PlaybackSpeedID:     f.PlaybackSpeedID,
	}
	checks := []struct {
		table string
		id    *int
	}{
		{"grooved_disc_disc_diameter", d.DiscDiameterID},
		{"grooved_disc_disc_material", d.DiscMaterialID},
		{"grooved_disc_disc_base", d.DiscBaseID},
		{"grooved_disc_playback_direction", d.PlaybackDirectionID},
		{"grooved_disc_playback_speed", d.PlaybackSpeedID},
	}
	for _, c := range checks {
		if err := e.check(c.table, c.id); err != nil {
			return err
		}
	}
	var err error
	if d.DateOfDisc, err = optionalDate(f.DateOfDisc); err != nil {
		return err
	}
	item.GroovedDisc = d
	return nil
}

type openReelFields struct {
	Title                *string `mapstructure:"openReelReelTitle"`
	ReelType             *string `mapstructure:"openReelReelType"`
	TrackCount           *string `mapstructure:"openReelTrackCount"`
	ReelSize             *int    `mapstructure:"openReelReelSize"`
	ReelBrand            *string `mapstructure:"openReelReelBrand"`
	Duration             *string `mapstructure:"openReelDuration"`
	SubTypeID            *int    `mapstructure:"openReelSubTypeId"`
	ReelWidthID          *int    `mapstructure:"openReelReelWidthId"`
	ReelDiameterID       *int    `mapstructure:"openReelReelDiameterId"`
	ReelThicknessID      *int    `mapstructure:"openReelReelThicknessId"`
	BaseID               *int    `mapstructure:"openReelBaseId"`
	WindID               *int    `mapstructure:"openReelWindId"`
	ReelSpeedID          *int    `mapstructure:"openReelReelSpeedId"`
	TrackConfigurationID *int    `mapstructure:"openReelTrackConfigurationId"`
	GenerationID         *int    `mapstructure:"openReelGenerationId"`
	DateOfReel           *string `mapstructure:"openReelDateOfReel"`
}

func (f *openReelFields) build(e enumRef, item *models.Item) error {
	d := &models.OpenReel{
		TitleOfReel:          f.Title,
		ReelType:             f.ReelType,
		TrackCount:           f.TrackCount,
		ReelSize:             f.ReelSize,
		ReelBrand:            f.ReelBrand,
		Duration:             f.Duration,
		SubtypeID:            f.SubTypeID,
		ReelWidthID:          f.ReelWidthID,
		ReelDiameterID:       f.ReelDiameterID,
		ReelThicknessID:      f.ReelThicknessID,
		BaseID:               f.BaseID,
		WindID:               f.WindID,
		ReelSpeedID:          f.ReelSpeedID,
		TrackConfigurationID: f.TrackConfigurationID,
		GenerationID:         f.GenerationID,
	}
	checks := []struct {
		table string
		id    *int
	}{
		{"open_reel_sub_type", d.SubtypeID},
		{"open_reel_reel_width", d.ReelWidthID},
		{"open_reel_reel_diameter", d.ReelDiameterID},
		{"open_reel_reel_thickness", d.ReelThicknessID},
		{"open_reel_base", d.BaseID},
		{"open_reel_wind", d.WindID},
		{"open_reel_reel_speed", d.ReelSpeedID},
		{"open_reel_track_configuration", d.TrackConfigurationID},
		{"open_reel_generation", d.GenerationID},
	}
	for _, c := range checks {
		if err := e.check(c.table, c.id); err != nil {
			return err
		}
	}
	var err error
	if d.DateOfReel, err = optionalDate(f.DateOfReel); err != nil {
		return err
	}
	item.OpenReel = d
	return nil
}

type videoCassetteFields struct {
	Title          *string `mapstructure:"titleOfCassette"`
	Label          *string `mapstructure:"label"`
	DateOfCassette *string `mapstructure:"dateOfCassette"`
	Duration       *string `mapstructure:"duration"`
	CassetteTypeID *int    `mapstructure:"cassetteTypeId"`
	GenerationID   *int    `mapstructure:"generationId"`
}

func (f *videoCassetteFields) build(e enumRef, item *models.Item) error {
	d := &models.VideoCassette{
		TitleOfCassette: f.Title,
		Label:           f.Label,
		Duration:        f.Duration,
		CassetteTypeID:  f.CassetteTypeID,
		GenerationID:    f.GenerationID,
	}
	if err := e.check("video_cassette_cassette_types", d.CassetteTypeID); err != nil {
		return err
	}
	if err := e.check("video_cassette_generations", d.GenerationID); err != nil {
		return err
	}
	var err error
	if d.DateOfCassette, err = optionalDate(f.DateOfCassette); err != nil {
		return err
	}
	item.VideoCassette = d
	return nil
}
