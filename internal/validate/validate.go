// Package validate checks raw JSON payloads against named shapes.
//
// A shape lists the fields it accepts, whether each is required and the
// rules its value must satisfy. Payload returns only the recognized fields
// that were present, so partial updates touch exactly what the client sent.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Shape names a payload specification.
type Shape string

const (
	NewAccount   Shape = "NewAccount"
	PatchAccount Shape = "PatchAccount"
	NewListing   Shape = "NewListing"
	PatchListing Shape = "PatchListing"
)

// Violation describes why one field was rejected.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error lists every rejected field of a payload.
type Error struct {
	Violations []Violation
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Fields is a pruned payload: only recognized fields that were supplied.
type Fields map[string]string

// Ptr returns a pointer to the named value, or nil when it was not supplied.
func (f Fields) Ptr(name string) *string {
	v, ok := f[name]
	if !ok {
		return nil
	}
	return &v
}

// check is one rule of a field, expressed as a validator tag.
type check struct {
	tag     string
	message string
}

type field struct {
	name   string
	checks []check
}

type shape struct {
	required bool
	fields   []field
}

var (
	nameField = field{name: "name", checks: []check{
		{tag: "required,alphaunicode", message: "the name must contain only letters"},
	}}
	passwordField = field{name: "password", checks: []check{
		{tag: "min=8", message: "the password is too short, the minimum length is 8 characters"},
		{tag: "hasdigit", message: "the password must contain at least one number"},
		{tag: "hasupper", message: "the password must contain at least one uppercase letter"},
		{tag: "haslower", message: "the password must contain at least one lowercase letter"},
	}}
	emailField = field{name: "email", checks: []check{
		{tag: "emailaddr", message: "incorrect email format"},
	}}
	titleField = field{name: "title", checks: []check{
		{tag: "min=2,max=300", message: "the title must be between 2 and 300 characters long"},
	}}
	descriptionField = field{name: "description", checks: []check{
		{tag: "min=2,max=500", message: "the description must be between 2 and 500 characters long"},
	}}
)

var shapes = map[Shape]shape{
	NewAccount:   {required: true, fields: []field{nameField, passwordField, emailField}},
	PatchAccount: {required: false, fields: []field{nameField, passwordField, emailField}},
	NewListing:   {required: true, fields: []field{titleField, descriptionField}},
	PatchListing: {required: false, fields: []field{titleField, descriptionField}},
}

var emailPattern = regexp.MustCompile(`^[\p{L}\p{N}_.-]+@[\p{L}\p{N}_.-]+\.[\p{L}\p{N}_]+$`)

var rules = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	custom := map[string]validator.Func{
		"hasdigit":  containsRune(unicode.IsDigit),
		"hasupper":  containsRune(unicode.IsUpper),
		"haslower":  containsRune(unicode.IsLower),
		"emailaddr": func(fl validator.FieldLevel) bool { return emailPattern.MatchString(fl.Field().String()) },
	}
	for tag, fn := range custom {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register %s validation: %v", tag, err))
		}
	}
	return v
}

func containsRune(pred func(rune) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return strings.IndexFunc(fl.Field().String(), pred) >= 0
	}
}

// Payload validates raw against the named shape. Every field is checked and
// all violations are reported together.
func Payload(raw map[string]any, name Shape) (Fields, error) {
	spec, ok := shapes[name]
	if !ok {
		return nil, fmt.Errorf("unknown shape %q", name)
	}

	out := Fields{}
	var violations []Violation
	for _, f := range spec.fields {
		value, present := raw[f.name]
		if !present || value == nil {
			if spec.required {
				violations = append(violations, Violation{Field: f.name, Message: "field required"})
			}
			continue
		}
		s, isString := value.(string)
		if !isString {
			violations = append(violations, Violation{Field: f.name, Message: "must be a string"})
			continue
		}
		if msg, ok := f.apply(s); !ok {
			violations = append(violations, Violation{Field: f.name, Message: msg})
			continue
		}
		out[f.name] = s
	}

	if len(violations) > 0 {
		return nil, &Error{Violations: violations}
	}
	return out, nil
}

// apply runs the field's checks in order and returns the first failure.
func (f field) apply(value string) (string, bool) {
	for _, c := range f.checks {
		if err := rules.Var(value, c.tag); err != nil {
			return c.message, false
		}
	}
	return "", true
}
