package validator

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

const isoDate = "2006-01-02"

var (
	trans     ut.Translator
	setupOnce sync.Once
	// now is replaced in tests.
	now = time.Now
)

// rule is a custom tag with its English message.
type rule struct {
	tag     string
	fn      govalidator.Func
	message string
}

var rules = []rule{
	{"cccd", validCCCD, "{0} must be a 9-digit ID card or 12-digit citizen ID number"},
	{"birthdate", validBirthDate, "{0} must be a past date in YYYY-MM-DD format"},
}

// Setup registers the validator with English translations and the
// admission rules on Gin's binding engine. Safe to call more than once.
func Setup() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*govalidator.Validate)
		if !ok {
			return
		}

		// Field names in messages follow the json tag.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		enLocale := en.New()
		uni := ut.New(enLocale, enLocale)
		trans, _ = uni.GetTranslator("en")
		_ = en_translations.RegisterDefaultTranslations(v, trans)

		for _, r := range rules {
			_ = v.RegisterValidation(r.tag, r.fn)
			_ = v.RegisterTranslation(r.tag, trans,
				func(ut ut.Translator) error { return ut.Add(r.tag, r.message, true) },
				func(ut ut.Translator, fe govalidator.FieldError) string {
					msg, _ := ut.T(fe.Tag(), fe.Field())
					return msg
				})
		}
	})
}

// validCCCD accepts the legacy 9-digit CMND and the 12-digit CCCD.
func validCCCD(fl govalidator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) != 9 && len(s) != 12 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func validBirthDate(fl govalidator.FieldLevel) bool {
	d, err := time.Parse(isoDate, fl.Field().String())
	if err != nil {
		return false
	}
	return d.Before(now()) && d.Year() >= 1900
}

// TranslateErrors maps a binding error to field name → message. Errors
// that are not validation errors (bad JSON, bad multipart) land under
// "detail".
func TranslateErrors(err error) map[string]string {
	var ve govalidator.ValidationErrors
	if !errors.As(err, &ve) {
		return map[string]string{"detail": err.Error()}
	}

	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		if trans == nil {
			fields[fe.Field()] = fe.Error()
			continue
		}
		fields[fe.Field()] = fe.Translate(trans)
	}
	return fields
}

// BindForm binds and validates a urlencoded or multipart form into dst.
// Field names in the returned map follow the json tags, which the admission
// form keeps identical to its form tags.
func BindForm(c *gin.Context, dst any) map[string]string {
	return check(c.ShouldBindWith(dst, binding.Form))
}

// Bind binds and validates a JSON body into dst.
func Bind(c *gin.Context, dst any) map[string]string {
	return check(c.ShouldBindJSON(dst))
}

func check(err error) map[string]string {
	if err == nil {
		return nil
	}
	return TranslateErrors(err)
}
