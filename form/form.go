// Package form validates submitted posting fields.
package form

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"jobboard/domain"

	"github.com/go-playground/validator/v10"
)

const (
	MsgRequired      = "This field is required."
	MsgInvalidEmail  = "Enter a valid e-mail address."
	MsgInvalidChoice = "Select a valid choice. That choice is not one of the available choices."
)

// Errors maps a form field to its messages.
type Errors map[string][]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+strings.Join(e[f], " "))
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

func (e Errors) add(field, msg string) {
	e[field] = append(e[field], msg)
}

// AsErrors unwraps err into field errors.
func AsErrors(err error) (Errors, bool) {
	var fe Errors
	ok := errors.As(err, &fe)
	return fe, ok
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// check runs the struct rules on f and translates failures.
func check(f any) Errors {
	errs := Errors{}
	err := validate.Struct(f)
	if err == nil {
		return errs
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.add("__all__", err.Error())
		return errs
	}
	for _, fe := range verrs {
		errs.add(fe.Field(), message(fe))
	}
	return errs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return MsgRequired
	case "email":
		return MsgInvalidEmail
	case "max":
		s, _ := fe.Value().(string)
		return fmt.Sprintf("Ensure this value has at most %s characters (it has %d).", fe.Param(), utf8.RuneCountInString(s))
	default:
		return fmt.Sprintf("Failed the %q rule.", fe.Tag())
	}
}

// position resolves the submitted position id against the known choices.
func position(raw string, positions []domain.Position, errs Errors) domain.Position {
	if raw == "" {
		if _, ok := errs["position"]; !ok {
			errs.add("position", MsgRequired)
		}
		return domain.Position{}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err == nil {
		for _, p := range positions {
			if p.ID == id {
				return p
			}
		}
	}
	errs.add("position", MsgInvalidChoice)
	return domain.Position{}
}

func text(values url.Values, key string) string {
	return strings.TrimSpace(values.Get(key))
}

// firstLine reduces a single-line field to its first line.
func firstLine(s string) string {
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}

// Checked reports whether a checkbox value counts as ticked.
func Checked(values url.Values, key string) bool {
	switch strings.ToLower(values.Get(key)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
