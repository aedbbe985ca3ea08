package admin

import (
	"context"
	"database/sql"
	"reflect"
	"time"

	"github.com/google/uuid"

	"github.com/tuaha311/aesthetics-clinic/internal/web"
)

// BoundField is a field ready for the form templates: its input name, current value,
// options and error.
type BoundField struct {
	Field
	Name    string
	Value   string
	Choices []Option
	Error   string
	// Display is the rendered value of read-only fields.
	Display string
}

// Option is a choice as the select widget renders it.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

var widgets = map[Kind]string{
	KindText:       "text",
	KindTextarea:   "textarea",
	KindEmail:      "email",
	KindSlug:       "text",
	KindNumber:     "number",
	KindBool:       "checkbox",
	KindDate:       "date",
	KindDateTime:   "datetime-local",
	KindSelect:     "select",
	KindForeignKey: "select",
	KindImage:      "file",
}

// Widget names the input the template renders.
func (f BoundField) Widget() string {
	if f.ReadOnly {
		return "readonly"
	}
	return widgets[f.Kind]
}

func (f BoundField) Checked() bool { return f.Value != "" }

// boundField prepares f of row under prefix. A binder supplies the submitted input and
// errors of a form being shown again.
func boundField(ctx context.Context, row reflect.Value, prefix string, f Field, b *binder) (BoundField, error) {
	name := prefix + f.Column
	v := column(row, f.Column)
	bf := BoundField{Field: f, Name: name, Value: formatValue(v, f.Kind)}
	if b != nil {
		if raw, ok := b.raw[name]; ok {
			bf.Value = raw
		}
		bf.Error = b.errors[name]
	}

	var labels map[string]string
	if f.Choices != nil {
		choices, err := f.Choices(ctx)
		if err != nil {
			return bf, err
		}
		labels = make(map[string]string, len(choices))
		for _, choice := range choices {
			labels[choice.Value] = choice.Label
			bf.Choices = append(bf.Choices, Option{Value: choice.Value, Label: choice.Label, Selected: choice.Value == bf.Value})
		}
	}
	if f.ReadOnly {
		bf.Display = display(v, f, labels)
	}
	return bf, nil
}

func boundFields(ctx context.Context, row reflect.Value, prefix string, fields []Field, b *binder) ([]BoundField, error) {
	out := make([]BoundField, 0, len(fields))
	for _, f := range fields {
		bf, err := boundField(ctx, row, prefix, f, b)
		if err != nil {
			return nil, err
		}
		out = append(out, bf)
	}
	return out, nil
}

func choiceLabels(ctx context.Context, f Field) (map[string]string, error) {
	choices, err := f.Choices(ctx)
	if err != nil {
		return nil, err
	}
	labels := make(map[string]string, len(choices))
	for _, choice := range choices {
		labels[choice.Value] = choice.Label
	}
	return labels, nil
}

const empty = "-"

// display renders a stored value for reading, resolving choices through labels.
func display(v reflect.Value, f Field, labels map[string]string) string {
	switch x := v.Interface().(type) {
	case time.Time:
		if x.IsZero() {
			return empty
		}
		if f.Kind == KindDate {
			return web.FormatDate(x)
		}
		return web.FormatDateTime(x)
	case sql.NullTime:
		if !x.Valid {
			return empty
		}
		return web.FormatDateTime(x.Time)
	case bool:
		if x {
			return "Yes"
		}
		return "No"
	case uuid.NullUUID:
		if !x.Valid {
			return empty
		}
	}

	s := formatValue(v, f.Kind)
	if s == "" {
		return empty
	}
	if label, ok := labels[s]; ok {
		return label
	}
	return s
}
