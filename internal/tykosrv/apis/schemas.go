package apis

import (
	"errors"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tidwall/gjson"
	"github.com/uiuclibrary/tyko/internal/tykosrv/tykocommon"
)

// Create bodies may come from forms, so integer fields also accept numeric strings.
const (
	intOrString = `{"type": ["integer", "string", "null"], "pattern": "^\\s*\\d*\\s*$"}`
	text        = `{"type": ["string", "null"]}`
)

var (
	projectSchema = `{
		"type": "object",
		"properties": {
			"title": {"type": "string"},
			"project_code": ` + text + `,
			"current_location": ` + text + `,
			"status": ` + text + `,
			"specs": ` + text + `
		}
	}`

	collectionSchema = `{
		"type": "object",
		"properties": {
			"collection_name": {"type": "string"},
			"department": ` + text + `,
			"record_series": ` + text + `
		}
	}`

	objectSchema = `{
		"type": "object",
		"properties": {
			"name": {"type": "string"},
			"barcode": ` + text + `,
			"collection_id": ` + intOrString + `,
			"collectionId": ` + intOrString + `,
			"project_id": ` + intOrString + `,
			"originals_rec_date": ` + text + `,
			"originals_return_date": ` + text + `
		}
	}`

	noteSchema = `{
		"type": "object",
		"properties": {
			"text": {"type": "string"},
			"note_type_id": ` + intOrString + `
		}
	}`

	fileSchema = `{
		"type": "object",
		"properties": {
			"file_name": {"type": "string"},
			"generation": ` + text + `
		}
	}`

	treatmentSchema = `{
		"type": "object",
		"properties": {
			"type": ` + text + `,
			"message": ` + text + `,
			"date": ` + text + `
		}
	}`
)

var (
	schemaMu       sync.Mutex
	compiledSchema = map[string]*jsonschema.Schema{}
)

func compile(schema string) (*jsonschema.Schema, error) {
	schemaMu.Lock()
	defer schemaMu.Unlock()
	if s, ok := compiledSchema[schema]; ok {
		return s, nil
	}
	if !gjson.Valid(schema) {
		return nil, errors.New("invalid JSON schema")
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("inline://schema", strings.NewReader(schema)); err != nil {
		return nil, err
	}
	s, err := compiler.Compile("inline://schema")
	if err != nil {
		return nil, err
	}
	compiledSchema[schema] = s
	return s, nil
}

func validateSchema(schema string, data map[string]any) error {
	s, err := compile(schema)
	if err != nil {
		return err
	}
	if err := s.Validate(data); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return tykocommon.ErrInvalidInput.Msg(schemaMessage(verr))
		}
		return tykocommon.ErrInvalidInput.Msg(err.Error())
	}
	return nil
}

// schemaMessage reports the innermost cause, which names the offending field.
func schemaMessage(verr *jsonschema.ValidationError) string {
	for len(verr.Causes) > 0 {
		verr = verr.Causes[0]
	}
	field := strings.TrimPrefix(verr.InstanceLocation, "/")
	if field == "" {
		return verr.Message
	}
	return "invalid value for " + field + ": " + verr.Message
}
