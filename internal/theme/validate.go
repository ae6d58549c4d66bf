package theme

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/jmylchreest/bstheme/internal/colour"
	"github.com/jmylchreest/bstheme/internal/font"
	"github.com/jmylchreest/bstheme/internal/palette"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// ValidationError describes the first field of a document that failed validation.
type ValidationError struct {
	Field string
	Tag   string
	Value any
}

func (e *ValidationError) Error() string {
	switch e.Tag {
	case "hexcolour":
		return fmt.Sprintf("%s: invalid hex colour %q", e.Field, e.Value)
	case "fontname":
		return fmt.Sprintf("%s: unknown font %q", e.Field, e.Value)
	case "role":
		return fmt.Sprintf("%s: unknown role %q", e.Field, e.Value)
	case "required":
		return fmt.Sprintf("%s: is required", e.Field)
	}
	return fmt.Sprintf("%s failed validation for tag '%s'", e.Field, e.Tag)
}

// validatorInstance returns the shared validator with the theme tags registered.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		// Report fields by their exchange names rather than Go names.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		_ = v.RegisterValidation("hexcolour", func(fl validator.FieldLevel) bool {
			return colour.IsValidHex(fl.Field().String())
		})

		_ = v.RegisterValidation("fontname", func(fl validator.FieldLevel) bool {
			_, ok := font.ByName(fl.Field().String())
			return ok
		})

		_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
			return palette.Role(fl.Field().String()).Valid()
		})

		validateInst = v
	})

	return validateInst
}

// Validate checks that every role holds a hex colour, the font is in the
// catalog and every lock names a known role.
func (d Document) Validate() error {
	if err := validatorInstance().Struct(d); err != nil {
		return convertValidationError(err)
	}
	return nil
}

// ValidatePalette checks a palette on its own.
func ValidatePalette(p palette.Palette) error {
	if err := validatorInstance().Struct(p); err != nil {
		return convertValidationError(err)
	}
	return nil
}

func convertValidationError(err error) error {
	if ves, ok := err.(validator.ValidationErrors); ok && len(ves) > 0 {
		fe := ves[0]
		return &ValidationError{Field: fieldName(fe), Tag: fe.Tag(), Value: fe.Value()}
	}
	return fmt.Errorf("invalid theme: %w", err)
}

// fieldName drops the root type from the namespace, so "Document.palette.primary"
// becomes "palette.primary".
func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
