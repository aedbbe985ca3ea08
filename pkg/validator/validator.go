package validator

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// DefaultMessages maps validator tags onto the messages shown next to form fields.
var DefaultMessages = map[string]string{
	"required": "This field is required.",
	"email":    "Enter a valid email address.",
	"max":      "Ensure this value has at most %s characters.",
	"min":      "Ensure this value has at least %s characters.",
	"oneof":    "Select a valid choice.",
	"gte":      "Ensure this value is greater than or equal to %s.",
	"lte":      "Ensure this value is less than or equal to %s.",
	"url":      "Enter a valid URL.",
	"eqfield":  "The two password fields didn’t match.",

	"full_name_max": "Ensure the full name has at most %s characters.",
}

// FieldErrors holds one message per form field name.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, f[name]))
	}
	return strings.Join(parts, "; ")
}

var registerOnce sync.Once

// UseFormNames makes gin's binding validator report fields by their `form` tag, so
// errors line up with the submitted input names.
func UseFormNames() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(formTagName)
		}
	})
}

// New returns a standalone validator that names fields like UseFormNames does.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(formTagName)
	return v
}

func formTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
	if name == "" || name == "-" {
		return fld.Name
	}
	return name
}

// Translate turns validator errors into FieldErrors. Errors of any other kind are
// returned under the empty field name.
func Translate(err error) FieldErrors {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"": err.Error()}
	}

	out := make(FieldErrors, len(verrs))
	for _, e := range verrs {
		if _, seen := out[e.Field()]; seen {
			continue
		}
		out[e.Field()] = Message(e.Tag(), e.Param())
	}
	return out
}

// Message renders the message for a single tag.
func Message(tag, param string) string {
	msg, ok := DefaultMessages[tag]
	if !ok {
		return "Enter a valid value."
	}
	if strings.Contains(msg, "%s") {
		return fmt.Sprintf(msg, param)
	}
	return msg
}
