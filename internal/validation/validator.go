package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	zipCodeRegex = regexp.MustCompile(`^\d{5}-?\d{3}$`)
	cnpjRegex    = regexp.MustCompile(`^\d{2}\.\d{3}\.\d{3}/\d{4}-\d{2}$`)
	phoneRegex   = regexp.MustCompile(`^(\(\d{2}\)\s?\d{4,5}-?\d{4}|\d{10,13})$`)
	colorRegex   = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	usernameRe   = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON name so clients can map errors back to
	// the payload they sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			for _, tag := range []string{"query", "param", "form"} {
				if alt := fld.Tag.Get(tag); alt != "" {
					return alt
				}
			}
			return fld.Name
		}
		return name
	})

	mustRegister(v, "zipcode", matchString(zipCodeRegex))
	mustRegister(v, "cnpj", matchString(cnpjRegex))
	mustRegister(v, "phone", matchString(phoneRegex))
	mustRegister(v, "color", matchString(colorRegex))
	mustRegister(v, "username", matchString(usernameRe))
	mustRegister(v, "imageref", func(fl validator.FieldLevel) bool {
		return IsImageRef(fl.Field().String())
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

func matchString(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// Struct validates s against its struct tags using the shared validator.
func Struct(s any) error {
	return validate.Struct(s)
}

// IsImageRef accepts absolute http(s) URLs, inline data:image URLs and
// paths of files served from the upload directory.
func IsImageRef(s string) bool {
	return strings.HasPrefix(s, "http://") ||
		strings.HasPrefix(s, "https://") ||
		strings.HasPrefix(s, "data:image/") ||
		strings.HasPrefix(s, "/uploads/")
}
