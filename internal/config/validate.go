package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/ndcmsl/workflows/internal/changeset"
	"github.com/ndcmsl/workflows/internal/generate"
)

// ValidationError points at the config file, and the line or key, that is wrong.
type ValidationError struct {
	FilePath string
	// Line is set for syntax errors, Field for invalid values.
	Line    int
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Line > 0:
		return fmt.Sprintf("%s:%d: %s", e.FilePath, e.Line, e.Message)
	case e.Field != "":
		return fmt.Sprintf("%s: %s %s", e.FilePath, e.Field, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
	}
}

var yamlLine = regexp.MustCompile(`^yaml: line (\d+): (.*)$`)

// ValidateYAMLSyntax parses filePath as YAML. A missing or blank file is valid.
func ValidateYAMLSyntax(filePath string) error {
	data, err := os.ReadFile(filePath)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return &ValidationError{FilePath: filePath, Message: err.Error()}
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil
	}

	var node yaml.Node
	err = yaml.Unmarshal(data, &node)
	if err == nil {
		return nil
	}
	verr := &ValidationError{FilePath: filePath, Message: err.Error()}
	if m := yamlLine.FindStringSubmatch(err.Error()); m != nil {
		verr.Line, _ = strconv.Atoi(m[1])
		verr.Message = m[2]
	}
	return verr
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(koanfTagName)
	return v
}

// ValidateConfigValues checks cfg against its struct tags, then the rules
// tags cannot express. It reports the first problem found.
func ValidateConfigValues(cfg *Configuration, filePath string) error {
	err := validate.Struct(cfg)
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return &ValidationError{
			FilePath: filePath,
			Field:    fieldPath(fieldErrs[0]),
			Message:  describe(fieldErrs[0]),
		}
	}
	if err != nil {
		return &ValidationError{FilePath: filePath, Message: err.Error()}
	}

	if cfg.Generator == generate.KindAgent && !strings.Contains(cfg.Agent.Command, "{{PROMPT}}") {
		return &ValidationError{FilePath: filePath, Field: "agent.command", Message: "must contain the {{PROMPT}} placeholder"}
	}
	if err := changeset.ValidatePatterns(cfg.ExcludePaths); err != nil {
		return &ValidationError{FilePath: filePath, Field: "exclude_paths", Message: err.Error()}
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte", "min":
		return "must be at least " + fe.Param()
	case "lte", "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "url":
		return "must be a valid URL"
	default:
		return "failed the " + fe.Tag() + " check"
	}
}

// koanfTagName names struct fields by their config key.
func koanfTagName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("koanf"), ",")
	if name == "-" {
		return ""
	}
	return name
}

// fieldPath returns the dotted key of a failed field, e.g. "openai.max_tokens".
func fieldPath(fe validator.FieldError) string {
	if _, key, ok := strings.Cut(fe.Namespace(), "."); ok {
		return key
	}
	return fe.Field()
}
