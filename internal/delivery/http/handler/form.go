package handler

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"reflect"
	"strings"

	"medical-data-app/internal/delivery/http/middleware"
	"medical-data-app/internal/service"
	"medical-data-app/internal/usecase"
	"medical-data-app/pkg/validator"

	"github.com/go-viper/mapstructure/v2"
)

var errUnsupportedContentType = errors.New("unsupported content type")

// decodeForm fills dst from either a JSON body or a url-encoded form post.
// Empty form inputs are left unset so required checks catch them. A value
// that does not fit its field is reported in the returned map, keyed by
// input name, and the remaining fields are still decoded. The error is only
// set when the body itself cannot be read.
func decodeForm(r *http.Request, dst interface{}) (map[string]string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "application/json":
		err := json.NewDecoder(r.Body).Decode(dst)
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return map[string]string{typeErr.Field: malformedMessage(dst, typeErr.Field)}, nil
		}
		return nil, err
	case "application/x-www-form-urlencoded", "":
		if err := r.ParseForm(); err != nil {
			return nil, err
		}

		var fieldErrs map[string]string
		for key, vals := range r.PostForm {
			if key == middleware.AntiForgeryFormField || len(vals) == 0 || vals[0] == "" {
				continue
			}
			if err := decodeField(key, vals[0], dst); err != nil {
				if fieldErrs == nil {
					fieldErrs = make(map[string]string)
				}
				fieldErrs[key] = malformedMessage(dst, key)
			}
		}
		return fieldErrs, nil
	default:
		return nil, errUnsupportedContentType
	}
}

// decodeField sets the single field tagged key, leaving the rest of dst
// untouched. Unknown keys are ignored.
func decodeField(key, value string, dst interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
		Result:           dst,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(map[string]interface{}{key: value})
}

func malformedMessage(dst interface{}, name string) string {
	switch fieldKind(dst, name) {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return name + " must be a whole number"
	case reflect.Float32, reflect.Float64:
		return name + " must be a number"
	case reflect.Bool:
		return name + " must be true or false"
	}
	return name + " is invalid"
}

// fieldKind finds the kind behind the struct field whose json name is name.
func fieldKind(dst interface{}, name string) reflect.Kind {
	t := reflect.TypeOf(dst)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return reflect.Invalid
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if strings.SplitN(field.Tag.Get("json"), ",", 2)[0] != name {
			continue
		}
		ft := field.Type
		for ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}
		return ft.Kind()
	}
	return reflect.Invalid
}

// formErrors merges validator messages with decode failures. A decode
// failure replaces the validator message for the same field, since the
// field was left unset.
func formErrors(v *validator.CustomValidator, validationErr error, decodeErrs map[string]string) map[string]string {
	errs := make(map[string]string)
	if validationErr != nil {
		for field, msg := range v.FormatValidationErrors(validationErr) {
			errs[field] = msg
		}
	}
	for field, msg := range decodeErrs {
		errs[field] = msg
	}
	return errs
}

// issueToken signs a fresh anti-forgery token for the caller's session.
func issueToken(ctx context.Context, antiForgery service.AntiForgeryService) (string, error) {
	sessionID, _ := middleware.GetSessionIDFromContext(ctx)
	return antiForgery.Issue(ctx, sessionID)
}

// fieldErrors unwraps the per-field messages of a usecase validation failure.
func fieldErrors(err error) (map[string]string, bool) {
	var verr *usecase.ValidationError
	if errors.As(err, &verr) {
		return verr.Fields, true
	}
	return nil, false
}
