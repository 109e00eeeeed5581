package formats

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/uiuclibrary/tyko/internal/common/apperrors"
	"github.com/uiuclibrary/tyko/internal/tykosrv/tykocommon"
)

// EnumChecker reports whether an id exists in an enumeration table.
type EnumChecker interface {
	EnumExists(ctx context.Context, table string, id int) (bool, apperrors.Error)
}

// Flag is a boolean that also accepts the values sent by HTML checkboxes.
type Flag bool

var flagType = reflect.TypeOf(Flag(false))

func parseFlag(v any) (bool, error) {
	switch b := v.(type) {
	case nil:
		return false, nil
	case bool:
		return b, nil
	case Flag:
		return bool(b), nil
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "on", "true", "yes", "1":
			return true, nil
		case "", "off", "false", "no", "0":
			return false, nil
		}
	case json.Number:
		return b.String() != "0", nil
	case float64:
		return b != 0, nil
	}
	return false, ErrInvalidValue.Msg(fmt.Sprintf("invalid boolean: %v", v))
}

func flagHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != flagType {
		return data, nil
	}
	b, err := parseFlag(data)
	if err != nil {
		return nil, err
	}
	return Flag(b), nil
}

// decode decodes the keys of data into the mapstructure tagged fields of out, and
// returns the keys it did not use.
func decode(data map[string]any, out any) ([]string, error) {
	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Metadata:         &md,
		Result:           out,
		WeaklyTypedInput: true,
		DecodeHook:       flagHook,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(data); err != nil {
		return nil, ErrInvalidValue.Msg(err.Error())
	}
	return md.Unused, nil
}

// withoutBlanks returns a copy of data without nil values and blank strings.
func withoutBlanks(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
			continue
		}
		out[k] = v
	}
	return out
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

func toString(v any) (*string, error) {
	if isBlank(v) {
		return nil, nil
	}
	switch s := v.(type) {
	case string:
		return &s, nil
	case json.Number:
		str := s.String()
		return &str, nil
	case float64:
		str := strconv.FormatFloat(s, 'f', -1, 64)
		return &str, nil
	case int:
		str := strconv.Itoa(s)
		return &str, nil
	}
	return nil, ErrInvalidValue.Msg(fmt.Sprintf("expected text, got %v", v))
}

func toInt(v any) (*int, error) {
	if isBlank(v) {
		return nil, nil
	}
	var i int
	switch n := v.(type) {
	case int:
		i = n
	case int64:
		i = int(n)
	case json.Number:
		x, err := n.Int64()
		if err != nil {
			return nil, ErrInvalidValue.Msg(fmt.Sprintf("expected an integer, got %s", n))
		}
		i = int(x)
	case float64:
		if n != math.Trunc(n) {
			return nil, ErrInvalidValue.Msg(fmt.Sprintf("expected an integer, got %v", n))
		}
		i = int(n)
	case string:
		x, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return nil, ErrInvalidValue.Msg(fmt.Sprintf("expected an integer, got %q", n))
		}
		i = x
	default:
		return nil, ErrInvalidValue.Msg(fmt.Sprintf("expected an integer, got %v", v))
	}
	return &i, nil
}

func toDate(v any) (*time.Time, error) {
	s, err := toString(v)
	if err != nil || s == nil {
		return nil, err
	}
	return tykocommon.ParseDate(*s)
}

func toPrecisionDate(v any) (*time.Time, tykocommon.Precision, error) {
	s, err := toString(v)
	if err != nil || s == nil {
		return nil, tykocommon.PrecisionDay, err
	}
	t, p, err := tykocommon.ParseDetectedDate(*s)
	if err != nil {
		return nil, 0, err
	}
	return &t, p, nil
}

// enumRef validates an optional enumeration id against its table.
type enumRef struct {
	enums EnumChecker
	ctx   context.Context
}

func (e enumRef) check(table string, id *int) error {
	if id == nil {
		return nil
	}
	ok, err := e.enums.EnumExists(e.ctx, table, *id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidEnum.Msg(fmt.Sprintf("no %s with id %d", table, *id))
	}
	return nil
}

func (e enumRef) id(table string, v any) (*int, error) {
	id, err := toInt(v)
	if err != nil {
		return nil, err
	}
	if err := e.check(table, id); err != nil {
		return nil, err
	}
	return id, nil
}
