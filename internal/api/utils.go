package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/lealre/reelstate/internal/errs"
	"github.com/lealre/reelstate/internal/logx"
)

var ErrInvalidJSON = errs.Validation("", "invalid JSON in request body")

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) error {
	response, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)

	return nil
}

func respondWithError(w http.ResponseWriter, code int, msg string) error {
	messageBody := ErrorResponse{
		StatusCode:   code,
		ErrorMessage: msg,
	}
	return respondWithJSON(w, code, messageBody)
}

// RespondWithUnauthorized is used by the auth middleware.
func RespondWithUnauthorized(w http.ResponseWriter, err error) error {
	return respondWithError(w, http.StatusUnauthorized, formatErrorMessage(err))
}

// respondWithServiceError answers with the status of err's kind. Storage and
// foreign errors are logged and answered with a generic message.
func respondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	kind := errs.KindOf(err)
	if kind == errs.KindStorage || kind == errs.KindUnknown {
		logger := logx.FromContext(r.Context())
		logger.Error().Err(unwrapStorage(err)).Msg("request failed")
		respondWithError(w, http.StatusInternalServerError, "Unexpected error occurred")
		return
	}

	code := errs.HTTPStatus(err)
	respondWithJSON(w, code, ErrorResponse{
		StatusCode:   code,
		ErrorMessage: formatErrorMessage(err),
		Field:        errs.FieldOf(err),
	})
}

func unwrapStorage(err error) error {
	var e *errs.Error
	if errors.As(err, &e) && e.Err != nil {
		return e.Err
	}
	return err
}

func formatErrorMessage(err error) string {
	errorMsg := err.Error()
	if len(errorMsg) > 0 {
		return strings.ToUpper(errorMsg[:1]) + errorMsg[1:]
	}
	return ""
}

// decodeJSON reads the request body into dst. Type mismatches come back as
// validation errors naming the offending field.
func decodeJSON(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		field := jsonFieldName(typeErr.Field)
		return errs.Validation(field, fmt.Sprintf("%s must be %s", field, describeType(typeErr.Type)))
	}
	if errors.Is(err, io.EOF) {
		return errs.Validation("", "request body is required")
	}
	return ErrInvalidJSON
}

// jsonFieldName turns a decoder field path ("MediaId", "item.mediaId") into
// the json key of its last segment.
func jsonFieldName(path string) string {
	if i := strings.LastIndex(path, "."); i >= 0 {
		path = path[i+1:]
	}
	if path == "" {
		return path
	}
	return strings.ToLower(path[:1]) + path[1:]
}

func describeType(t reflect.Type) string {
	if t == nil {
		return "valid"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	default:
		return "valid"
	}
}

// parseMediaId reads a numeric id from a path or query value.
func parseMediaId(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, errs.Validation("mediaId", "mediaId must be a positive number")
	}
	return id, nil
}

func parseLimit(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}
