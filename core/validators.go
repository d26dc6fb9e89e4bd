package core

import (
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
)

var (
	requiredTag     = "required"
	requiredWithTag = "required_with"
	requiredText    = "this field is required"

	gtTag   = "gt"
	gtText  = "must be greater than {0}"
	gteTag  = "gte"
	gteText = "must be {0} or greater"
)

// NewTranslator returns the english translator used for validation messages.
func NewTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

// NewValidator returns a validator with the core validators and translations registered.
// Domain packages register their own on top of it.
func NewValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	translator := NewTranslator()
	InitValidators(validate, translator)
	return validate, translator
}

// InitValidators instantiates the validator for use.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// validate dates and nullable columns by their underlying value
	validate.RegisterCustomTypeFunc(dateValue, Date{})
	validate.RegisterCustomTypeFunc(nullValue, null.String{}, null.Int{})

	RegisterCustomTranslation(validate, translator, requiredTag, requiredText, true)
	RegisterCustomTranslation(validate, translator, requiredWithTag, requiredText, true)
	registerParamTranslation(validate, translator, gtTag, gtText)
	registerParamTranslation(validate, translator, gteTag, gteText)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
// It panics when the translation cannot be registered.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	mustRegisterTranslation(validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag)
			return s
		},
	))
}

// registerParamTranslation registers a translation whose text renders the tag's param as {0}.
func registerParamTranslation(validate *validator.Validate, translator ut.Translator, tag, text string) {
	mustRegisterTranslation(validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Param())
			return s
		},
	))
}

func mustRegisterTranslation(err error) {
	if err != nil {
		panic(errors.Wrap(err, "registering validation translation"))
	}
}

func dateValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(Date); ok {
		if d.IsZero() {
			return ""
		}
		return d.String()
	}
	return nil
}

func nullValue(field reflect.Value) interface{} {
	switch v := field.Interface().(type) {
	case null.String:
		if v.Valid {
			return v.String
		}
	case null.Int:
		if v.Valid {
			return v.Int
		}
	}
	return nil
}
