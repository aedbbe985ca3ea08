package forms

import (
	"strconv"
	"strings"
	"unicode/utf8"

	playground "github.com/go-playground/validator/v10"

	"github.com/tuaha311/aesthetics-clinic/internal/model"
	"github.com/tuaha311/aesthetics-clinic/pkg/validator"
)

// MaxNameLength bounds the stored contact name, first and last name joined by a space.
const MaxNameLength = 100

// ContactForm is the public enquiry form. All fields are required.
type ContactForm struct {
	FirstName string `form:"first_name" validate:"required,max=50"`
	LastName  string `form:"last_name" validate:"required,max=50"`
	Email     string `form:"email" validate:"required,email,max=254"`
	Phone     string `form:"phone" validate:"required,max=20"`
	Message   string `form:"message" validate:"required"`

	Errors validator.FieldErrors `form:"-"`
}

var contactLayout = Layout{
	Rows: []Row{
		{Columns: []Column{
			{Width: 6, Fields: []Field{{Name: "first_name", Label: "First Name", Type: "text", Placeholder: "First Name"}}},
			{Width: 6, Fields: []Field{{Name: "last_name", Label: "Last Name", Type: "text", Placeholder: "Last Name"}}},
		}},
		{Columns: []Column{
			{Width: 6, Fields: []Field{{Name: "email", Label: "Email", Type: "email", Placeholder: "Email"}}},
			{Width: 6, Fields: []Field{{Name: "phone", Label: "Phone", Type: "tel", Placeholder: "Phone"}}},
		}},
		{Columns: []Column{
			{Width: 12, Fields: []Field{{Name: "message", Label: "Message", Type: "textarea", Placeholder: "Your Message", Rows: 5}}},
		}},
	},
	Submit: "Send Message",
}

func (f *ContactForm) Layout() Layout { return contactLayout }

// Normalize trims surrounding whitespace from every field.
func (f *ContactForm) Normalize() {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Message = strings.TrimSpace(f.Message)
}

// Value returns the submitted value of a field by its input name.
func (f *ContactForm) Value(name string) string {
	switch name {
	case "first_name":
		return f.FirstName
	case "last_name":
		return f.LastName
	case "email":
		return f.Email
	case "phone":
		return f.Phone
	case "message":
		return f.Message
	}
	return ""
}

func (f *ContactForm) Error(name string) string {
	return f.Errors[name]
}

func (f *ContactForm) FullName() string {
	return strings.TrimSpace(f.FirstName + " " + f.LastName)
}

// RegisterContactRules adds the cross-field checks of ContactForm to v.
func RegisterContactRules(v *playground.Validate) {
	v.RegisterStructValidation(validateContactForm, ContactForm{})
}

func validateContactForm(sl playground.StructLevel) {
	f := sl.Current().Interface().(ContactForm)
	if utf8.RuneCountInString(f.FullName()) > MaxNameLength {
		sl.ReportError(f.LastName, "last_name", "LastName", "full_name_max", strconv.Itoa(MaxNameLength))
	}
}

// Contact builds the entity stored for a valid submission.
func (f *ContactForm) Contact() *model.Contact {
	return &model.Contact{
		Name:    f.FullName(),
		Email:   f.Email,
		Phone:   f.Phone,
		Message: f.Message,
	}
}
