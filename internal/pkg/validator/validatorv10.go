package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

// reHint matches a destination hint that is safe to echo in status lines and
// SSE frames: printable, single line, at most 64 runes.
var reHint = regexp.MustCompile(`^[^\x00-\x1f\x7f]{1,64}$`)

var (
	reAcronymWord = regexp.MustCompile(`([A-Z]+)([A-Z][a-z])`)
	reLowerUpper  = regexp.MustCompile(`([a-z0-9])([A-Z])`)
)

// snakeCase turns a Go field name into its snake_case form, keeping
// initialisms whole: SessionID is session_id, HTTPServer is http_server.
func snakeCase(s string) string {
	s = reAcronymWord.ReplaceAllString(s, "${1}_${2}")
	s = reLowerUpper.ReplaceAllString(s, "${1}_${2}")
	return strings.ToLower(s)
}

// fieldName reports a field by its json name, or the snake_case Go name when
// it has none.
func fieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return snakeCase(fld.Name)
	default:
		return name
	}
}

// ErrTranslatorNotFound indicates the requested translator is unavailable.
var ErrTranslatorNotFound = errors.New("translator not found")

// V10Validator implements Validator using go-playground/validator v10.
type V10Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// V10ValidationError is a field-to-message map returned when validation fails.
//
// Keys are json field names, or snake_case Go names for untagged fields.
type V10ValidationError map[string]string

// Error renders the map as JSON.
func (vs V10ValidationError) Error() string {
	if len(vs) == 0 {
		return "validation error"
	}

	b, err := json.Marshal(vs)
	if err != nil {
		return fmt.Sprintf("validation error (failed to marshal: %v)", err)
	}
	return string(b)
}

func (vs V10ValidationError) Values() map[string]string {
	return vs
}

// customRule is a tag this package adds on top of the built-in ones.
type customRule struct {
	tag     string
	message string
	check   validator.Func
}

var customRules = []customRule{
	{
		tag:     "hint",
		message: "{0} must be a single printable line of at most 64 characters",
		check: func(fl validator.FieldLevel) bool {
			h, ok := fl.Field().Interface().(string)
			return ok && reHint.MatchString(h)
		},
	},
}

func registerRule(validate *validator.Validate, trans ut.Translator, rule customRule) error {
	if err := validate.RegisterValidation(rule.tag, rule.check); err != nil {
		return err
	}
	return validate.RegisterTranslation(rule.tag, trans,
		func(t ut.Translator) error { return t.Add(rule.tag, rule.message, false) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, err := t.T(fe.Tag(), fe.Field())
			if err != nil {
				slog.Warn("failed to translate validation error", "tag", fe.Tag(), "error", err)
				return fe.Error()
			}
			return msg
		},
	)
}

// NewV10Validator builds a validator with English messages and the custom rules.
func NewV10Validator() (*V10Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(fieldName)

	enLang := en.New()
	trans, ok := ut.New(enLang, enLang).GetTranslator("en")
	if !ok {
		return nil, ErrTranslatorNotFound
	}
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}
	for _, rule := range customRules {
		if err := registerRule(validate, trans, rule); err != nil {
			return nil, fmt.Errorf("validator: register %q: %w", rule.tag, err)
		}
	}

	return &V10Validator{validate: validate, translator: trans}, nil
}

// Validate returns V10ValidationError when data breaks a rule, or the
// validator's own error when data is not a struct.
func (v *V10Validator) Validate(data any) error {
	err := v.validate.Struct(data)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := make(V10ValidationError, len(fieldErrs))
	for _, fe := range fieldErrs {
		out[fe.Field()] = fe.Translate(v.translator)
	}
	return out
}
