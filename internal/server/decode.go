package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"reflect"
	"sort"
	"strings"

	"donormatch/internal/utils"
	"donormatch/pkg/types"

	"github.com/go-playground/form/v4"
)

const maxBodyBytes = 1 << 20

var decoder = newFormDecoder()

func newFormDecoder() *form.Decoder {
	d := form.NewDecoder()

	d.RegisterCustomTypeFunc(func(vals []string) (interface{}, error) {
		return types.ParseUrgency(vals[0])
	}, types.Urgency(0))

	d.RegisterCustomTypeFunc(func(vals []string) (interface{}, error) {
		b, err := types.ParseYesNo(vals[0])
		if err != nil {
			return nil, err
		}
		return types.YesNo(b), nil
	}, types.YesNo(false))

	return d
}

// decodeRecord fills dst from a JSON or form encoded body. Every failure is
// reported as a *types.ValidationError; fields outside dst's schema are
// rejected.
func decodeRecord(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType := ""
	if ct := r.Header.Get("Content-Type"); ct != "" {
		var err error
		mediaType, _, err = mime.ParseMediaType(ct)
		if err != nil {
			return types.NewValidationError("body", "invalid content type")
		}
	}

	switch {
	case mediaType == "" || mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
		return decodeJSON(r.Body, dst)
	case mediaType == "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return bodyError(err)
		}
		return decodeForm(r, dst)
	case mediaType == "multipart/form-data":
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
			return bodyError(err)
		}
		return decodeForm(r, dst)
	}

	return types.NewValidationError("body", fmt.Sprintf("unsupported content type %q", mediaType))
}

// decodeJSON matches keys exactly. encoding/json alone would accept
// "NAME" for "name".
func decodeJSON(body io.Reader, dst any) error {
	dec := json.NewDecoder(body)

	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return jsonError(err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return types.NewValidationError("body", "must contain a single JSON object")
	}

	var object map[string]json.RawMessage
	if err := json.Unmarshal(raw, &object); err != nil {
		return jsonError(err)
	}
	if object == nil {
		return types.NewValidationError("body", "must be a JSON object")
	}

	if err := rejectUnknownKeys(object, dst, utils.JSONTag); err != nil {
		return err
	}

	strict := json.NewDecoder(bytes.NewReader(raw))
	strict.DisallowUnknownFields()
	if err := strict.Decode(dst); err != nil {
		return jsonError(err)
	}

	return nil
}

func rejectUnknownKeys[V any](values map[string]V, dst any, tag string) error {
	allowed := make(map[string]bool)
	for _, name := range utils.StructTagValues(dst, tag) {
		allowed[name] = true
	}

	verr := new(types.ValidationError)
	for key := range values {
		if !allowed[key] {
			verr.Add(key, "unknown field")
		}
	}

	return verr.OrNil()
}

func jsonError(err error) error {
	var (
		verr      *types.ValidationError
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)

	switch {
	case errors.As(err, &verr):
		return verr
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return types.NewValidationError("body", "malformed JSON")
	case errors.As(err, &typeErr):
		if typeErr.Field == "" {
			return types.NewValidationError("body", "must be a JSON object")
		}
		return types.NewValidationError(typeErr.Field, typeMessage(typeErr))
	case errors.Is(err, io.EOF):
		return types.NewValidationError("body", "is required")
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return types.NewValidationError(field, "unknown field")
	}

	return bodyError(err)
}

func typeMessage(e *json.UnmarshalTypeError) string {
	switch e.Type.Kind() {
	case reflect.Int, reflect.Int64:
		return "must be a whole number"
	case reflect.String:
		return "must be a string"
	}
	return "has the wrong type"
}

func decodeForm(r *http.Request, dst any) error {
	if err := rejectUnknownKeys(r.PostForm, dst, utils.FormTag); err != nil {
		return err
	}

	err := decoder.Decode(dst, r.PostForm)
	if err == nil {
		return nil
	}

	var decodeErrs form.DecodeErrors
	if !errors.As(err, &decodeErrs) {
		return bodyError(err)
	}

	verr := new(types.ValidationError)
	keys := make([]string, 0, len(decodeErrs))
	for k := range decodeErrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		var fieldErr *types.ValidationError
		if errors.As(decodeErrs[k], &fieldErr) {
			for f, msg := range fieldErr.Fields {
				verr.Add(f, msg)
			}
			continue
		}
		verr.Add(k, "invalid value")
	}

	return verr
}

func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return types.NewValidationError("body", "too large")
	}
	return types.NewValidationError("body", "could not be read")
}
