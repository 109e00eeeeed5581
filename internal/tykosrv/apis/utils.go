package apis

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/uiuclibrary/tyko/internal/common/httpx"
	"github.com/uiuclibrary/tyko/internal/tykosrv/config"
	"github.com/uiuclibrary/tyko/internal/tykosrv/db"
	"github.com/uiuclibrary/tyko/internal/tykosrv/serialize"
	"github.com/uiuclibrary/tyko/internal/tykosrv/tykocommon"
)

var notePolicy = bluemonday.StrictPolicy()

// sanitizeText strips all markup from user supplied note text.
func sanitizeText(s string) string {
	return strings.TrimSpace(notePolicy.Sanitize(s))
}

func getDB(ctx context.Context) (db.Database, error) {
	d := db.DB(ctx)
	if d == nil {
		return nil, httpx.ErrUnableToServeRequest()
	}
	return d, nil
}

func paths() serialize.Paths {
	cfg := config.Config()
	return serialize.Paths{APIPrefix: cfg.APIPrefix, FrontendPrefix: cfg.FrontendPrefix}
}

func ok(body any) *httpx.Response {
	return &httpx.Response{StatusCode: http.StatusOK, Response: body}
}

func accepted(body any) *httpx.Response {
	return &httpx.Response{StatusCode: http.StatusAccepted, Response: body}
}

func noContent() *httpx.Response {
	return &httpx.Response{StatusCode: http.StatusNoContent}
}

// listing answers a list endpoint. The body is cacheable so clients can revalidate
// with If-None-Match.
func listing(key string, values any, total int) *httpx.Response {
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   map[string]any{key: values, "total": total},
		Cacheable:  true,
	}
}

type created struct {
	ID          int    `json:"id"`
	URL         string `json:"url"`
	FrontendURL string `json:"frontend_url,omitempty"`
}

// requestData reads the request body and checks it against the schema of the
// operation, when one is given.
func requestData(r *http.Request, schema string) (map[string]any, error) {
	data, err := httpx.GetRequestData(r)
	if err != nil {
		return nil, err
	}
	if schema != "" {
		if err := validateSchema(schema, data); err != nil {
			return nil, err
		}
	}
	return data, nil
}

func requireFields(data map[string]any, fields ...string) error {
	for _, f := range fields {
		if isBlank(data[f]) {
			return tykocommon.ErrInvalidInput.Msg("Missing required data: " + f)
		}
	}
	return nil
}

func isBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	}
	return false
}

// stringField returns the value of key as a string. present is false when the key is
// not in data; a blank value is returned as nil.
func stringField(data map[string]any, key string) (value *string, present bool, err error) {
	v, present := data[key]
	if !present || isBlank(v) {
		return nil, present, nil
	}
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		return &s, true, nil
	case json.Number:
		s := t.String()
		return &s, true, nil
	case bool:
		s := strconv.FormatBool(t)
		return &s, true, nil
	}
	return nil, true, tykocommon.ErrInvalidInput.Msg(fmt.Sprintf("invalid value for %s", key))
}

// intField is stringField for integers. Numbers and numeric strings are accepted.
func intField(data map[string]any, key string) (value *int, present bool, err error) {
	v, present := data[key]
	if !present || isBlank(v) {
		return nil, present, nil
	}
	var s string
	switch t := v.(type) {
	case json.Number:
		s = t.String()
	case string:
		s = strings.TrimSpace(t)
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return nil, true, tykocommon.ErrInvalidInput.Msg(fmt.Sprintf("invalid value for %s", key))
	}
	i, convErr := strconv.Atoi(s)
	if convErr != nil {
		return nil, true, tykocommon.ErrInvalidInput.Msg(fmt.Sprintf("%s must be an integer", key))
	}
	return &i, true, nil
}

func dateField(data map[string]any, key string) (*time.Time, bool, error) {
	s, present, err := stringField(data, key)
	if err != nil || s == nil {
		return nil, present, err
	}
	t, err := tykocommon.ParseDate(*s)
	if err != nil {
		return nil, true, err
	}
	return t, true, nil
}

// bodyID returns the id field of request bodies that address a row by id rather than
// by path.
func bodyID(data map[string]any) (int, error) {
	id, _, err := intField(data, "id")
	if err != nil {
		return 0, err
	}
	if id == nil {
		return 0, tykocommon.ErrInvalidInput.Msg("Missing required data: id")
	}
	return *id, nil
}
