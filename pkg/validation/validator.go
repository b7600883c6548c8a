package validation

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate

	// MaxTokenLength bounds labels, relationship types and property keys
	MaxTokenLength = 100

	tokenPattern   = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	propKeyPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
	graphPattern   = regexp.MustCompile(`^[a-zA-Z0-9_.\-]+$`)
)

func init() {
	validate = validator.New()
}

// ValidateStruct checks `validate` struct tags and returns the first failure
// as a *FieldError. Embedded structs are checked too.
func ValidateStruct(configName string, v any) error {
	if v == nil {
		return errors.New("config cannot be nil")
	}
	if err := validate.Struct(v); err != nil {
		return formatValidationError(configName, err)
	}
	return nil
}

// ValidateToken validates a node label or relationship type
func ValidateToken(kind, token string) error {
	if token == "" {
		return fmt.Errorf("%s cannot be empty", kind)
	}
	if len(token) > MaxTokenLength {
		return fmt.Errorf("%s '%s' exceeds maximum length of %d characters", kind, token, MaxTokenLength)
	}
	if !tokenPattern.MatchString(token) {
		return fmt.Errorf("%s '%s' contains invalid characters (only alphanumeric and underscore allowed)", kind, token)
	}
	return nil
}

// ValidatePropertyKey validates a node or relationship property key
func ValidatePropertyKey(key string) error {
	if key == "" {
		return errors.New("property key cannot be empty")
	}
	if len(key) > MaxTokenLength {
		return fmt.Errorf("property key '%s' exceeds maximum length of %d characters", key, MaxTokenLength)
	}
	if !propKeyPattern.MatchString(key) {
		return fmt.Errorf("property key '%s' is invalid (must start with letter or underscore, followed by alphanumeric or underscore)", key)
	}
	return nil
}

// ValidateGraphName validates a catalog graph name
func ValidateGraphName(name string) error {
	if name == "" {
		return errors.New("graph name cannot be empty")
	}
	if len(name) > MaxTokenLength {
		return fmt.Errorf("graph name '%s' exceeds maximum length of %d characters", name, MaxTokenLength)
	}
	if !graphPattern.MatchString(name) {
		return fmt.Errorf("graph name '%s' contains invalid characters", name)
	}
	return nil
}

func formatValidationError(configName string, err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	for _, e := range validationErrs {
		fe := &FieldError{Config: configName, Field: e.Field()}
		switch e.Tag() {
		case "required":
			fe.Message = "field is required"
		case "min", "gte":
			fe.Message = fmt.Sprintf("must be at least %s", e.Param())
		case "max", "lte":
			fe.Message = fmt.Sprintf("must not exceed %s", e.Param())
		case "gt":
			fe.Message = fmt.Sprintf("must be greater than %s", e.Param())
		case "lt":
			fe.Message = fmt.Sprintf("must be less than %s", e.Param())
		case "oneof":
			fe.Message = fmt.Sprintf("must be one of [%s]", e.Param())
		case "dive":
			fe.Message = "invalid element in list"
		default:
			fe.Message = fmt.Sprintf("validation failed (%s)", e.Tag())
		}
		return fe
	}

	return err
}
