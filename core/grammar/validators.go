package grammar

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/jamespares/chinaprof/core"
)

var (
	errCodeTag  = "errcode"
	errCodeText = "unknown error code"
)

// InitValidators registers the grammar validators on validate.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(errCodeTag, errCodeValidation)
	core.RegisterCustomTranslation(validate, translator, errCodeTag, errCodeText)
}

// errCodeValidation only accepts codes from the catalog.
func errCodeValidation(fl validator.FieldLevel) bool {
	return IsKnownCode(fl.Field().String())
}
