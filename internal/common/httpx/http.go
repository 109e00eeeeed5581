// Package httpx provides request parsing and response writing helpers shared by the
// Tyko server. Handlers return a *Response or an error and WrapHttpRsp turns either into
// an HTTP response, so handlers never touch the http.ResponseWriter directly.
package httpx

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/anand-gl/jsoncanonicalizer"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/uiuclibrary/tyko/internal/common/apperrors"
)

// Response content types understood by WrapHttpRsp.
const (
	ContentTypeJSON = "application/json"
	ContentTypeXML  = "text/xml"
	ContentTypeText = "text/plain"
)

// Response represents an HTTP response produced by a RequestHandler.
type Response struct {
	StatusCode  int
	Location    string
	Response    any
	ContentType string
	// Cacheable adds an ETag computed from the canonical JSON body. A request whose
	// If-None-Match matches the tag is answered with 304.
	Cacheable bool
	Headers   map[string]string
}

// RequestHandler defines a function type for handling HTTP requests.
type RequestHandler func(r *http.Request) (*Response, error)

// WrapHttpRsp adapts a RequestHandler to an http.HandlerFunc.
func WrapHttpRsp(handler RequestHandler) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rsp, err := handler(r)
		if err != nil {
			SendErr(r, w, err)
			return
		}
		if rsp == nil {
			ErrApplicationError().Send(w)
			return
		}
		for k, v := range rsp.Headers {
			w.Header().Set(k, v)
		}
		if rsp.ContentType == "" {
			rsp.ContentType = ContentTypeJSON
		}
		var location []string
		if rsp.Location != "" {
			location = append(location, rsp.Location)
		}
		switch rsp.ContentType {
		case ContentTypeJSON:
			if rsp.StatusCode == http.StatusNoContent || rsp.Response == nil {
				w.WriteHeader(rsp.StatusCode)
				return
			}
			if rsp.Cacheable {
				sendCacheableJsonRsp(r, w, rsp.StatusCode, rsp.Response)
				return
			}
			SendJsonRsp(r.Context(), w, rsp.StatusCode, rsp.Response, location...)
		case ContentTypeXML, ContentTypeText:
			w.Header().Set("Content-Type", rsp.ContentType+"; charset=utf-8")
			w.WriteHeader(rsp.StatusCode)
			switch body := rsp.Response.(type) {
			case string:
				w.Write([]byte(body))
			case []byte:
				w.Write(body)
			}
		default:
			ErrApplicationError("unsupported response type").Send(w)
		}
	})
}

// SendErr writes err as an error response. Application errors keep their status code
// and payload. Anything else is reported as a 500.
func SendErr(r *http.Request, w http.ResponseWriter, err error) {
	var httperror *Error
	if errors.As(err, &httperror) {
		httperror.Send(w)
		return
	}
	var appErr apperrors.Error
	if errors.As(err, &appErr) {
		SendError(w, appErr)
		return
	}
	log.Ctx(r.Context()).Error().Err(err).Msg("unhandled error")
	ErrApplicationError(err.Error()).Send(w)
}

func sendCacheableJsonRsp(r *http.Request, w http.ResponseWriter, statusCode int, msg any) {
	body, err := json.Marshal(msg)
	if err != nil {
		log.Ctx(r.Context()).Err(err).Msg("unable to marshal json")
		ErrApplicationError().Send(w)
		return
	}
	tag, err := ETag(body)
	if err != nil {
		log.Ctx(r.Context()).Err(err).Msg("unable to compute etag")
		ErrApplicationError().Send(w)
		return
	}
	w.Header().Set("ETag", tag)
	w.Header().Set("Cache-Control", "private, max-age=0")
	if match := r.Header.Get("If-None-Match"); match != "" && etagMatches(match, tag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	SendJsonRsp(r.Context(), w, statusCode, body)
}

// ETag returns a quoted entity tag for a JSON document. The tag is the sha256 of the
// canonical form of the document, so key order and whitespace do not change it.
func ETag(jsonDoc []byte) (string, error) {
	canonical, err := jsoncanonicalizer.Transform(jsonDoc)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canonical)
	return `"` + hex.EncodeToString(sum[:]) + `"`, nil
}

func etagMatches(header, tag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		candidate = strings.TrimPrefix(candidate, "W/")
		if candidate == "*" || candidate == tag {
			return true
		}
	}
	return false
}

// GetRequestData parses the request body into a field map. JSON objects and
// url-encoded forms are accepted. Form values are kept as strings, and a key sent
// more than once keeps all its values as a []any.
func GetRequestData(r *http.Request) (map[string]any, error) {
	if r.Method != http.MethodPost && r.Method != http.MethodPut && r.Method != http.MethodDelete {
		return nil, ErrReqMethodNotSupported()
	}
	if r.Body == nil {
		log.Ctx(r.Context()).Error().Msg("Empty request body")
		return nil, ErrUnableToParseReqData()
	}
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseForm(); err != nil {
			return nil, ErrUnableToParseReqData()
		}
		data := make(map[string]any, len(r.PostForm))
		for k, v := range r.PostForm {
			if len(v) == 1 {
				data[k] = v[0]
				continue
			}
			values := make([]any, len(v))
			for i := range v {
				values[i] = v[i]
			}
			data[k] = values
		}
		return data, nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, ErrRequestTooLarge(maxErr.Limit)
		}
		return nil, ErrUnableToReadRequest()
	}
	data := make(map[string]any)
	if len(strings.TrimSpace(string(body))) == 0 {
		return data, nil
	}
	dec := json.NewDecoder(strings.NewReader(string(body)))
	dec.UseNumber()
	if err := dec.Decode(&data); err != nil {
		return nil, ErrUnableToParseReqData()
	}
	return data, nil
}

// URLParamID returns the integer path parameter with the given name. Route patterns
// restrict ids to digits, so a failure here means the route and handler disagree.
func URLParamID(r *http.Request, name string) (int, error) {
	v := chi.URLParam(r, name)
	id, err := strconv.Atoi(v)
	if err != nil || id < 0 {
		return 0, ErrInvalidRequest("invalid " + name + ": " + v)
	}
	return id, nil
}

// QueryInt returns the integer query parameter with the given name, or def when the
// parameter is absent.
func QueryInt(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil || i < 0 {
		return 0, ErrInvalidRequest("invalid value for " + name)
	}
	return i, nil
}
