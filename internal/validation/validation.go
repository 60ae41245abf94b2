// Package validation turns untrusted request bodies into typed records.
// Every input struct states its constraints as validator tags; the first
// failing field is reported as a common.ValidationError.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"edustack/internal/common"
)

// Validator checks request bodies and renders English messages.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

// New builds a Validator with the custom tags and translations registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(intField, Int{})
	_ = v.RegisterValidation("whole", func(fl validator.FieldLevel) bool {
		return fl.Field().Kind() == reflect.Int64
	})

	english := en.New()
	trans, _ := ut.New(english, english).GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(v, trans)
	registerTranslation(v, trans, "whole", "{0} must be a whole number")
	registerTranslation(v, trans, "datetime", "{0} must use the {1} format")

	return &Validator{validate: v, trans: trans}
}

func registerTranslation(v *validator.Validate, trans ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, trans, func(t ut.Translator) error {
		return t.Add(tag, text, true)
	}, func(t ut.Translator, fe validator.FieldError) string {
		msg, err := t.T(tag, fe.Field(), layoutName(fe.Param()))
		if err != nil {
			return fe.Field() + " is invalid"
		}
		return msg
	})
}

// layoutName shows Go time layouts the way API clients know them.
func layoutName(layout string) string {
	switch layout {
	case dateLayout:
		return "YYYY-MM-DD"
	case clockLayout:
		return "HH:MM"
	}
	return layout
}

// parse decodes data into dst and checks it.
func (v *Validator) parse(data []byte, dst interface{}) error {
	if err := decode(data, dst); err != nil {
		return err
	}
	return v.check(dst)
}

func (v *Validator) check(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return fmt.Errorf("validate %T: %w", s, err)
	}
	first := errs[0]
	return &common.ValidationError{Field: first.Field(), Message: first.Translate(v.trans)}
}

func decode(data []byte, dst interface{}) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return &common.ValidationError{Message: "Request body must be a JSON object"}
	}
	err := json.Unmarshal(data, dst)
	if err == nil {
		return nil
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return &common.ValidationError{
			Field:   typeErr.Field,
			Message: fmt.Sprintf("%s must be a %s", typeErr.Field, jsonKind(typeErr.Type)),
		}
	}
	return &common.ValidationError{Message: "Request body must be a JSON object"}
}

func jsonKind(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int32, reflect.Int64:
		return "number"
	}
	return "value"
}

// ParseID reads a positive path identifier.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, &common.ValidationError{Field: "id", Message: "id must be a positive whole number"}
	}
	return id, nil
}
