package admin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/reflectx"
)

// Kind selects the widget a field is edited with and how its input is parsed.
type Kind int

const (
	KindText Kind = iota
	KindTextarea
	KindEmail
	KindSlug
	KindNumber
	KindBool
	KindDate
	KindDateTime
	KindSelect
	KindForeignKey
	KindImage
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04"
)

// Choice is one option of a select or foreign key field.
type Choice struct {
	Value string
	Label string
}

// ChoiceLoader lists the options of a select or foreign key field.
type ChoiceLoader func(ctx context.Context) ([]Choice, error)

// StaticChoices wraps a fixed option list.
func StaticChoices(choices ...Choice) ChoiceLoader {
	return func(context.Context) ([]Choice, error) { return choices, nil }
}

// Field describes one editable column of a model.
type Field struct {
	// Column is the db tag of the struct field, which is also the input name.
	Column string
	Label  string
	Kind   Kind
	// Rules are validator tags applied to the trimmed raw input, e.g. "required,max=100".
	Rules   string
	Choices ChoiceLoader
	// UploadDir is the media directory of image fields.
	UploadDir string
	// PrepopulateFrom names the column a blank slug is derived from.
	PrepopulateFrom string
	// Unique fields are checked against the other stored rows before a save.
	Unique   bool
	ReadOnly bool
	Help     string
}

func (f Field) Required() bool {
	for _, rule := range strings.Split(f.Rules, ",") {
		if rule == "required" {
			return true
		}
	}
	return false
}

// blankable fields count towards deciding whether an inline row was filled in.
func (f Field) blankable() bool {
	return f.Kind != KindBool && f.Kind != KindNumber && !f.ReadOnly
}

var (
	errInvalidNumber   = errors.New("Enter a whole number.")
	errInvalidDate     = errors.New("Enter a valid date.")
	errInvalidDateTime = errors.New("Enter a valid date/time.")
	errInvalidChoice   = errors.New("Select a valid choice. That choice is not one of the available choices.")
	errInvalidSlug     = errors.New("Enter a valid “slug” consisting of letters, numbers, underscores or hyphens.")
)

var mapper = reflectx.NewMapperFunc("db", strings.ToLower)

// column returns the struct field of row tagged col. row must be an addressable struct.
func column(row reflect.Value, col string) reflect.Value {
	fi := mapper.TypeMap(row.Type()).GetByPath(col)
	if fi == nil {
		panic(fmt.Sprintf("admin: %s has no column %q", row.Type(), col))
	}
	return reflectx.FieldByIndexes(row, fi.Index)
}

// formatValue renders a stored value as form input text.
func formatValue(v reflect.Value, kind Kind) string {
	switch x := v.Interface().(type) {
	case time.Time:
		if x.IsZero() {
			return ""
		}
		if kind == KindDate {
			return x.Format(dateLayout)
		}
		return x.Local().Format(dateTimeLayout)
	case uuid.UUID:
		if x == uuid.Nil {
			return ""
		}
		return x.String()
	case uuid.NullUUID:
		if !x.Valid {
			return ""
		}
		return x.UUID.String()
	case sql.NullInt32:
		if !x.Valid {
			return ""
		}
		return strconv.Itoa(int(x.Int32))
	case sql.NullTime:
		if !x.Valid {
			return ""
		}
		return x.Time.Local().Format(dateTimeLayout)
	case bool:
		if x {
			return "on"
		}
		return ""
	}
	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Int, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	}
	return fmt.Sprint(v.Interface())
}

// setValue parses raw into the struct field v. Blank input clears nullable values.
func setValue(v reflect.Value, kind Kind, raw string) error {
	switch p := v.Addr().Interface().(type) {
	case *time.Time:
		if raw == "" {
			*p = time.Time{}
			return nil
		}
		if kind == KindDate {
			t, err := time.Parse(dateLayout, raw)
			if err != nil {
				return errInvalidDate
			}
			*p = t
			return nil
		}
		t, err := time.ParseInLocation(dateTimeLayout, raw, time.Local)
		if err != nil {
			return errInvalidDateTime
		}
		*p = t.UTC()
		return nil
	case *uuid.UUID:
		id, err := uuid.Parse(raw)
		if err != nil {
			return errInvalidChoice
		}
		*p = id
		return nil
	case *uuid.NullUUID:
		if raw == "" {
			*p = uuid.NullUUID{}
			return nil
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return errInvalidChoice
		}
		*p = uuid.NullUUID{UUID: id, Valid: true}
		return nil
	case *sql.NullInt32:
		if raw == "" {
			*p = sql.NullInt32{}
			return nil
		}
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || n < 0 {
			return errInvalidNumber
		}
		*p = sql.NullInt32{Int32: int32(n), Valid: true}
		return nil
	case *bool:
		*p = raw != ""
		return nil
	}

	switch v.Kind() {
	case reflect.String:
		v.SetString(raw)
		return nil
	case reflect.Int, reflect.Int32, reflect.Int64:
		if raw == "" {
			v.SetInt(0)
			return nil
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 0 {
			return errInvalidNumber
		}
		v.SetInt(n)
		return nil
	}
	return fmt.Errorf("admin: unsupported field type %s", v.Type())
}

// changedColumns lists the columns whose values differ between two rows of one type.
func changedColumns(before, after reflect.Value, fields []Field) []string {
	var changed []string
	for _, f := range fields {
		if f.ReadOnly {
			continue
		}
		if !reflect.DeepEqual(column(before, f.Column).Interface(), column(after, f.Column).Interface()) {
			changed = append(changed, f.Column)
		}
	}
	return changed
}
